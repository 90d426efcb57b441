package repository

import (
	"context"
	"errors"
	"time"

	"github.com/amirasaad/corebank/pkg/domain"
	"github.com/amirasaad/corebank/pkg/domain/account"
	"github.com/amirasaad/corebank/pkg/domain/customer"
	"github.com/amirasaad/corebank/pkg/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type accountRepository struct {
	db *gorm.DB
}

// NewAccountRepository creates an account repository over db.
func NewAccountRepository(db *gorm.DB) repository.AccountRepository {
	return &accountRepository{db: db}
}

func (r *accountRepository) get(ctx context.Context, id uuid.UUID, lock bool) (*account.Account, error) {
	q := r.db.WithContext(ctx)
	if lock {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var m Account
	if err := q.First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NotFoundf("account %s", id)
		}
		return nil, MapGormErrorToDomain(err)
	}
	return accountFromModel(&m)
}

func (r *accountRepository) Get(ctx context.Context, id uuid.UUID) (*account.Account, error) {
	return r.get(ctx, id, false)
}

// GetForUpdate reads the account with SELECT ... FOR UPDATE. The lock is
// held until the surrounding unit of work ends.
func (r *accountRepository) GetForUpdate(ctx context.Context, id uuid.UUID) (*account.Account, error) {
	return r.get(ctx, id, true)
}

func (r *accountRepository) Create(ctx context.Context, a *account.Account) error {
	return WrapError(func() error {
		return r.db.WithContext(ctx).Create(accountToModel(a)).Error
	})
}

func (r *accountRepository) Update(ctx context.Context, a *account.Account) error {
	res := r.db.WithContext(ctx).
		Model(&Account{}).
		Where("id = ?", a.ID).
		Updates(map[string]any{
			"balance":    Decimal{a.Balance()},
			"status":     string(a.Status),
			"updated_at": time.Now().UTC(),
		})
	if res.Error != nil {
		return MapGormErrorToDomain(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.NotFoundf("account %s", a.ID)
	}
	return nil
}

type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a transaction repository over db.
func NewTransactionRepository(db *gorm.DB) repository.TransactionRepository {
	return &transactionRepository{db: db}
}

func (r *transactionRepository) Create(ctx context.Context, t *account.Transaction) error {
	return WrapError(func() error {
		return r.db.WithContext(ctx).Create(transactionToModel(t)).Error
	})
}

// UpdateStatus only moves PENDING rows. Asking for the status a row
// already has is a no-op; any other change to a terminal row fails.
func (r *transactionRepository) UpdateStatus(
	ctx context.Context,
	id uuid.UUID,
	status account.TransactionStatus,
	meta account.Metadata,
) error {
	res := r.db.WithContext(ctx).
		Model(&Transaction{}).
		Where("id = ? AND status = ?", id, string(account.TransactionPending)).
		Updates(&Transaction{
			Status:    string(status),
			Metadata:  meta,
			UpdatedAt: time.Now().UTC(),
		})
	if res.Error != nil {
		return MapGormErrorToDomain(res.Error)
	}
	if res.RowsAffected == 1 {
		return nil
	}

	current, err := r.Get(ctx, id)
	if err != nil {
		return err
	}
	if current.Status == status {
		return nil
	}
	return &domain.StatusTransitionError{Entity: "transaction", From: string(current.Status), To: string(status)}
}

func (r *transactionRepository) Get(ctx context.Context, id uuid.UUID) (*account.Transaction, error) {
	var m Transaction
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NotFoundf("transaction %s", id)
		}
		return nil, MapGormErrorToDomain(err)
	}
	return transactionFromModel(&m), nil
}

func (r *transactionRepository) ListByAccount(
	ctx context.Context,
	accountID uuid.UUID,
	limit, offset int,
) ([]*account.Transaction, error) {
	var rows []Transaction
	err := r.db.WithContext(ctx).
		Where("account_id = ? OR target_account_id = ?", accountID, accountID).
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Offset(offset).
		Find(&rows).Error
	if err != nil {
		return nil, MapGormErrorToDomain(err)
	}
	return toDomain(rows), nil
}

func (r *transactionRepository) ListSince(
	ctx context.Context,
	accountID uuid.UUID,
	since time.Time,
) ([]*account.Transaction, error) {
	var rows []Transaction
	err := r.db.WithContext(ctx).
		Where("account_id = ? AND created_at >= ?", accountID, since).
		Order("created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, MapGormErrorToDomain(err)
	}
	return toDomain(rows), nil
}

func toDomain(rows []Transaction) []*account.Transaction {
	out := make([]*account.Transaction, 0, len(rows))
	for i := range rows {
		out = append(out, transactionFromModel(&rows[i]))
	}
	return out
}

type customerRepository struct {
	db *gorm.DB
}

// NewCustomerRepository creates a customer repository over db.
func NewCustomerRepository(db *gorm.DB) repository.CustomerRepository {
	return &customerRepository{db: db}
}

func (r *customerRepository) Get(ctx context.Context, id uuid.UUID) (*customer.Customer, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *customerRepository) GetByEmail(ctx context.Context, email string) (*customer.Customer, error) {
	return r.first(ctx, "email = ?", email)
}

func (r *customerRepository) first(ctx context.Context, query string, arg any) (*customer.Customer, error) {
	var m Customer
	if err := r.db.WithContext(ctx).First(&m, query, arg).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NotFoundf("customer %v", arg)
		}
		return nil, MapGormErrorToDomain(err)
	}
	return customer.NewFromData(m.ID, m.Name, m.Email, customer.Status(m.Status), m.CreatedAt, m.UpdatedAt), nil
}

func (r *customerRepository) Create(ctx context.Context, c *customer.Customer) error {
	return WrapError(func() error {
		return r.db.WithContext(ctx).Create(&Customer{
			ID:        c.ID,
			Name:      c.Name,
			Email:     c.Email,
			Status:    string(c.Status),
			CreatedAt: c.CreatedAt,
			UpdatedAt: c.UpdatedAt,
		}).Error
	})
}
