package account

import (
	"time"

	"github.com/amirasaad/corebank/pkg/domain"
	"github.com/amirasaad/corebank/pkg/money"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType is the kind of money movement a transaction records.
type TransactionType string

const (
	TypeDeposit  TransactionType = "DEPOSIT"
	TypeWithdraw TransactionType = "WITHDRAW"
	TypeTransfer TransactionType = "TRANSFER"
)

// TransactionStatus is the lifecycle state of a transaction.
type TransactionStatus string

const (
	TransactionPending  TransactionStatus = "PENDING"
	TransactionApproved TransactionStatus = "APPROVED"
	TransactionRejected TransactionStatus = "REJECTED"
)

// IsTerminal reports whether no further transition leaves s.
func (s TransactionStatus) IsTerminal() bool {
	return s == TransactionApproved || s == TransactionRejected
}

// RiskResult is the outcome of the risk pipeline recorded on a transaction.
type RiskResult string

const (
	RiskPassed   RiskResult = "PASSED"
	RiskRejected RiskResult = "REJECTED"
)

// Metadata is the audit information gathered while a transaction is PENDING.
type Metadata struct {
	Fee         *decimal.Decimal `json:"fee,omitempty"`
	RiskResult  RiskResult       `json:"risk_result,omitempty"`
	RiskMessage string           `json:"risk_message,omitempty"`
	ValidatedAt *time.Time       `json:"validated_at,omitempty"`
	Reason      string           `json:"reason,omitempty"`
}

// Transaction records a single deposit, withdrawal or transfer attempt.
type Transaction struct {
	ID              uuid.UUID
	Type            TransactionType
	AccountID       uuid.UUID
	TargetAccountID *uuid.UUID
	Amount          decimal.Decimal
	Currency        money.Code
	Status          TransactionStatus
	Metadata        Metadata
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TransactionParams carries everything needed to create a transaction.
type TransactionParams struct {
	Type            TransactionType
	AccountID       uuid.UUID
	TargetAccountID *uuid.UUID
	Amount          decimal.Decimal
	Currency        money.Code
	CreatedAt       time.Time
}

// NewTransaction validates p and returns a PENDING transaction.
func NewTransaction(p TransactionParams) (*Transaction, error) {
	if !p.Amount.IsPositive() {
		return nil, domain.Validationf("transaction amount must be positive, got %s", p.Amount)
	}
	if p.AccountID == uuid.Nil {
		return nil, domain.Validationf("account id is required")
	}
	switch p.Type {
	case TypeTransfer:
		if p.TargetAccountID == nil || *p.TargetAccountID == uuid.Nil {
			return nil, domain.Validationf("transfer requires a target account")
		}
		if *p.TargetAccountID == p.AccountID {
			return nil, domain.Validationf("cannot transfer to the same account")
		}
	case TypeDeposit, TypeWithdraw:
		if p.TargetAccountID != nil {
			return nil, domain.Validationf("%s cannot have a target account", p.Type)
		}
	default:
		return nil, domain.Validationf("unknown transaction type %q", p.Type)
	}
	if !p.Currency.IsValid() {
		return nil, domain.Validationf("%v: %q", money.ErrInvalidCurrency, p.Currency)
	}
	created := p.CreatedAt
	if created.IsZero() {
		created = time.Now().UTC()
	}
	return &Transaction{
		ID:              uuid.New(),
		Type:            p.Type,
		AccountID:       p.AccountID,
		TargetAccountID: p.TargetAccountID,
		Amount:          p.Amount,
		Currency:        p.Currency,
		Status:          TransactionPending,
		CreatedAt:       created,
		UpdatedAt:       created,
	}, nil
}

// NewTransactionFromData rebuilds a Transaction from storage without validation.
func NewTransactionFromData(
	id uuid.UUID,
	typ TransactionType,
	accountID uuid.UUID,
	targetAccountID *uuid.UUID,
	amount decimal.Decimal,
	currency money.Code,
	status TransactionStatus,
	meta Metadata,
	created, updated time.Time,
) *Transaction {
	return &Transaction{
		ID:              id,
		Type:            typ,
		AccountID:       accountID,
		TargetAccountID: targetAccountID,
		Amount:          amount,
		Currency:        currency,
		Status:          status,
		Metadata:        meta,
		CreatedAt:       created,
		UpdatedAt:       updated,
	}
}

// TransitionTo moves the transaction to next. Asking for the current status
// is a no-op that leaves timestamps and metadata untouched.
func (t *Transaction) TransitionTo(next TransactionStatus) error {
	if t.Status == next {
		return nil
	}
	if t.Status != TransactionPending || !next.IsTerminal() {
		return &domain.StatusTransitionError{Entity: "transaction", From: string(t.Status), To: string(next)}
	}
	t.Status = next
	t.UpdatedAt = time.Now().UTC()
	return nil
}

// RecordFee stores the applied fee. Only allowed while PENDING.
func (t *Transaction) RecordFee(fee decimal.Decimal) error {
	if t.Status != TransactionPending {
		return &domain.StatusTransitionError{Entity: "transaction metadata", From: string(t.Status), To: "fee"}
	}
	t.Metadata.Fee = &fee
	return nil
}

// RecordRisk stores the risk pipeline outcome. Only allowed while PENDING.
func (t *Transaction) RecordRisk(result RiskResult, message string, at time.Time) error {
	if t.Status != TransactionPending {
		return &domain.StatusTransitionError{Entity: "transaction metadata", From: string(t.Status), To: "risk"}
	}
	t.Metadata.RiskResult = result
	t.Metadata.RiskMessage = message
	t.Metadata.ValidatedAt = &at
	return nil
}

// RecordReason stores why the transaction is about to be rejected. Only allowed while PENDING.
func (t *Transaction) RecordReason(reason string) {
	if t.Status == TransactionPending {
		t.Metadata.Reason = reason
	}
}

// Fee returns the recorded fee, or zero when none was recorded.
func (t *Transaction) Fee() decimal.Decimal {
	if t.Metadata.Fee == nil {
		return decimal.Zero
	}
	return *t.Metadata.Fee
}

// Involves reports whether the account is the source or target of t.
func (t *Transaction) Involves(accountID uuid.UUID) bool {
	return t.AccountID == accountID || (t.TargetAccountID != nil && *t.TargetAccountID == accountID)
}
