package account

import (
	"time"

	"github.com/amirasaad/corebank/pkg/domain"
	"github.com/amirasaad/corebank/pkg/money"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Status is the lifecycle state of an account.
type Status string

const (
	StatusActive Status = "ACTIVE"
	StatusFrozen Status = "FROZEN"
	StatusClosed Status = "CLOSED"
)

// IsValid reports whether s is a known account status.
func (s Status) IsValid() bool {
	switch s {
	case StatusActive, StatusFrozen, StatusClosed:
		return true
	}
	return false
}

// ParseStatus converts a raw status name into a Status.
func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if !st.IsValid() {
		return "", domain.Validationf("unknown account status %q", s)
	}
	return st, nil
}

var accountTransitions = map[Status][]Status{
	StatusActive: {StatusFrozen, StatusClosed},
	StatusFrozen: {StatusActive, StatusClosed},
	StatusClosed: nil,
}

// Account is the aggregate holding a customer's balance in a single currency.
//
// Invariants:
//   - The balance is never negative and only changes through ApplyCredit and ApplyDebit.
//   - CLOSED is terminal.
type Account struct {
	ID         uuid.UUID
	CustomerID uuid.UUID
	Currency   money.Code
	Status     Status
	CreatedAt  time.Time
	UpdatedAt  time.Time

	balance decimal.Decimal
}

// Builder provides a fluent API for constructing Account instances.
type Builder struct {
	id         uuid.UUID
	customerID uuid.UUID
	currency   money.Code
	balance    decimal.Decimal
	status     Status
	createdAt  time.Time
	updatedAt  time.Time
}

// New creates a Builder for a fresh ACTIVE account with zero balance in the default currency.
func New() *Builder {
	now := time.Now().UTC()
	return &Builder{
		id:        uuid.New(),
		currency:  money.DefaultCode,
		status:    StatusActive,
		balance:   decimal.Zero,
		createdAt: now,
		updatedAt: now,
	}
}

// WithID sets the account id.
func (b *Builder) WithID(id uuid.UUID) *Builder {
	b.id = id
	return b
}

// WithCustomerID sets the owning customer. This is a mandatory field.
func (b *Builder) WithCustomerID(customerID uuid.UUID) *Builder {
	b.customerID = customerID
	return b
}

// WithCurrency sets the account currency.
func (b *Builder) WithCurrency(code money.Code) *Builder {
	b.currency = code
	return b
}

// WithBalance sets the balance. Only meant for hydrating a stored account
// or for test setup.
func (b *Builder) WithBalance(balance decimal.Decimal) *Builder {
	b.balance = balance
	return b
}

// WithStatus sets the status. Only meant for hydrating a stored account.
func (b *Builder) WithStatus(status Status) *Builder {
	b.status = status
	return b
}

// WithCreatedAt sets the creation timestamp.
func (b *Builder) WithCreatedAt(t time.Time) *Builder {
	b.createdAt = t
	return b
}

// WithUpdatedAt sets the last-updated timestamp.
func (b *Builder) WithUpdatedAt(t time.Time) *Builder {
	b.updatedAt = t
	return b
}

// Build validates the collected fields and returns the Account.
func (b *Builder) Build() (*Account, error) {
	if b.customerID == uuid.Nil {
		return nil, domain.Validationf("customer id is required")
	}
	if !b.currency.IsValid() {
		return nil, domain.Validationf("%v: %q", money.ErrInvalidCurrency, b.currency)
	}
	if !b.status.IsValid() {
		return nil, domain.Validationf("unknown account status %q", b.status)
	}
	if b.balance.IsNegative() {
		return nil, domain.Validationf("balance cannot be negative")
	}
	return &Account{
		ID:         b.id,
		CustomerID: b.customerID,
		Currency:   b.currency,
		Status:     b.status,
		CreatedAt:  b.createdAt,
		UpdatedAt:  b.updatedAt,
		balance:    b.balance,
	}, nil
}

// Balance returns the current balance.
func (a *Account) Balance() decimal.Decimal {
	return a.balance
}

// CheckCanOperate fails when the account status does not permit balance changes.
func (a *Account) CheckCanOperate() error {
	switch a.Status {
	case StatusFrozen:
		return domain.ErrAccountFrozen
	case StatusClosed:
		return domain.ErrAccountClosed
	}
	return nil
}

// TransitionTo moves the account to next. Asking for the current status is a no-op.
func (a *Account) TransitionTo(next Status) error {
	if a.Status == next {
		return nil
	}
	for _, allowed := range accountTransitions[a.Status] {
		if allowed == next {
			a.Status = next
			a.UpdatedAt = time.Now().UTC()
			return nil
		}
	}
	return &domain.StatusTransitionError{Entity: "account", From: string(a.Status), To: string(next)}
}

// ApplyCredit adds amount to the balance.
func (a *Account) ApplyCredit(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return domain.Validationf("credit amount must be positive, got %s", amount)
	}
	if err := a.CheckCanOperate(); err != nil {
		return err
	}
	if err := money.CheckRange(a.balance.Add(amount)); err != nil {
		return domain.Validationf("%v", err)
	}
	a.balance = a.balance.Add(amount)
	a.UpdatedAt = time.Now().UTC()
	return nil
}

// ApplyDebit removes amount from the balance. It never lets the balance go negative.
func (a *Account) ApplyDebit(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return domain.Validationf("debit amount must be positive, got %s", amount)
	}
	if err := a.CheckCanOperate(); err != nil {
		return err
	}
	if a.balance.LessThan(amount) {
		return domain.ErrInsufficientFunds
	}
	a.balance = a.balance.Sub(amount)
	a.UpdatedAt = time.Now().UTC()
	return nil
}

// CanCover reports whether the balance covers amount.
func (a *Account) CanCover(amount decimal.Decimal) bool {
	return a.balance.GreaterThanOrEqual(amount)
}
