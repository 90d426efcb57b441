package transaction

import (
	"time"

	"github.com/amirasaad/corebank/pkg/domain/account"
	"github.com/shopspring/decimal"
)

//revive:disable

// DepositRequest represents the request body for depositing funds into an account.
type DepositRequest struct {
	AccountID string          `json:"account_id" validate:"required,uuid"`
	Amount    decimal.Decimal `json:"amount" swaggertype:"string" example:"100.50" validate:"required,numeric,money"`
}

// WithdrawRequest represents the request body for withdrawing funds from an account.
type WithdrawRequest struct {
	AccountID string          `json:"account_id" validate:"required,uuid"`
	Amount    decimal.Decimal `json:"amount" swaggertype:"string" example:"20.00" validate:"required,numeric,money"`
}

// TransferRequest represents the request body for transferring funds between accounts.
type TransferRequest struct {
	FromAccountID string          `json:"from_account_id" validate:"required,uuid"`
	ToAccountID   string          `json:"to_account_id" validate:"required,uuid"`
	Amount        decimal.Decimal `json:"amount" swaggertype:"string" example:"50" validate:"required,numeric,money"`
}

// TransactionDTO is the API response representation of a transaction.
type TransactionDTO struct {
	ID              string     `json:"id"`
	Type            string     `json:"type"`
	AccountID       string     `json:"account_id"`
	TargetAccountID string     `json:"target_account_id,omitempty"`
	Amount          string     `json:"amount"`
	Fee             string     `json:"fee"`
	Currency        string     `json:"currency"`
	Status          string     `json:"status"`
	RiskResult      string     `json:"risk_result,omitempty"`
	RiskMessage     string     `json:"risk_message,omitempty"`
	Reason          string     `json:"reason,omitempty"`
	ValidatedAt     *time.Time `json:"validated_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// ToTransactionDTO maps a domain transaction to its API representation.
func ToTransactionDTO(tx *account.Transaction) *TransactionDTO {
	if tx == nil {
		return nil
	}
	dto := &TransactionDTO{
		ID:          tx.ID.String(),
		Type:        string(tx.Type),
		AccountID:   tx.AccountID.String(),
		Amount:      tx.Amount.String(),
		Fee:         tx.Fee().String(),
		Currency:    string(tx.Currency),
		Status:      string(tx.Status),
		RiskResult:  string(tx.Metadata.RiskResult),
		RiskMessage: tx.Metadata.RiskMessage,
		Reason:      tx.Metadata.Reason,
		ValidatedAt: tx.Metadata.ValidatedAt,
		CreatedAt:   tx.CreatedAt,
		UpdatedAt:   tx.UpdatedAt,
	}
	if tx.TargetAccountID != nil {
		dto.TargetAccountID = tx.TargetAccountID.String()
	}
	return dto
}

// ToTransactionDTOs maps a page of transactions.
func ToTransactionDTOs(txs []*account.Transaction) []*TransactionDTO {
	out := make([]*TransactionDTO, 0, len(txs))
	for _, tx := range txs {
		out = append(out, ToTransactionDTO(tx))
	}
	return out
}
