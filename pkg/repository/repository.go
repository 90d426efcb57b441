// Package repository declares the storage boundary the services consume.
// Implementations map storage failures onto the domain error taxonomy:
// a missing row is domain.ErrNotFound, a unique violation is
// domain.ErrAlreadyExists; anything else is returned as is and treated as
// an infrastructure failure by callers.
package repository

import (
	"context"
	"time"

	"github.com/amirasaad/corebank/pkg/domain/account"
	"github.com/amirasaad/corebank/pkg/domain/customer"
	"github.com/google/uuid"
)

// AccountRepository defines the interface for account data access operations.
type AccountRepository interface {
	Get(ctx context.Context, id uuid.UUID) (*account.Account, error)
	// GetForUpdate loads the account and holds a write lock on it until the
	// surrounding unit of work ends.
	GetForUpdate(ctx context.Context, id uuid.UUID) (*account.Account, error)
	Create(ctx context.Context, acc *account.Account) error
	Update(ctx context.Context, acc *account.Account) error
}

// TransactionRepository defines the interface for transaction data access operations.
type TransactionRepository interface {
	Create(ctx context.Context, tx *account.Transaction) error
	// UpdateStatus moves a PENDING transaction to status and stores meta with it.
	UpdateStatus(ctx context.Context, id uuid.UUID, status account.TransactionStatus, meta account.Metadata) error
	Get(ctx context.Context, id uuid.UUID) (*account.Transaction, error)
	// ListByAccount pages through transactions where the account is source or
	// target, newest first.
	ListByAccount(ctx context.Context, accountID uuid.UUID, limit, offset int) ([]*account.Transaction, error)
	// ListSince returns transactions drawn on the account (as source) created
	// at or after since, oldest first.
	ListSince(ctx context.Context, accountID uuid.UUID, since time.Time) ([]*account.Transaction, error)
}

// CustomerRepository defines the interface for customer data access operations.
type CustomerRepository interface {
	Get(ctx context.Context, id uuid.UUID) (*customer.Customer, error)
	GetByEmail(ctx context.Context, email string) (*customer.Customer, error)
	Create(ctx context.Context, c *customer.Customer) error
}
