package repository

import (
	"database/sql/driver"
	"time"

	"github.com/amirasaad/corebank/pkg/domain/account"
	"github.com/amirasaad/corebank/pkg/money"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// Decimal is an exact decimal column. Postgres stores it as NUMERIC; other
// dialects store the string form, since sqlite would coerce NUMERIC to REAL.
type Decimal struct {
	decimal.Decimal
}

// GormDBDataType picks the column type for the connected dialect.
func (Decimal) GormDBDataType(db *gorm.DB, _ *schema.Field) string {
	if db.Dialector.Name() == "postgres" {
		return "decimal(20,8)"
	}
	return "text"
}

// Value implements driver.Valuer.
func (d Decimal) Value() (driver.Value, error) {
	return d.Decimal.Value()
}

// Scan implements sql.Scanner.
func (d *Decimal) Scan(value any) error {
	return d.Decimal.Scan(value)
}

// Customer represents a customer record in the database.
type Customer struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"size:255;not null"`
	Email     string    `gorm:"uniqueIndex;size:255;not null"`
	Status    string    `gorm:"type:varchar(16);not null;default:'ACTIVE'"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName specifies the table name for the Customer model.
func (Customer) TableName() string { return "customers" }

// Account represents an account record in the database.
type Account struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	CustomerID uuid.UUID `gorm:"type:uuid;index;not null"`
	Balance    Decimal   `gorm:"not null"`
	Currency   string    `gorm:"type:varchar(3);not null;default:'USD'"`
	Status     string    `gorm:"type:varchar(16);not null;default:'ACTIVE'"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TableName specifies the table name for the Account model.
func (Account) TableName() string { return "accounts" }

// Transaction represents a persisted money movement. Metadata is stored
// as a JSON document.
type Transaction struct {
	ID              uuid.UUID        `gorm:"type:uuid;primaryKey"`
	Type            string           `gorm:"type:varchar(16);not null"`
	AccountID       uuid.UUID        `gorm:"type:uuid;not null;index:idx_transactions_account_created,priority:1"`
	TargetAccountID *uuid.UUID       `gorm:"type:uuid;index"`
	Amount          Decimal          `gorm:"not null"`
	Currency        string           `gorm:"type:varchar(3);not null"`
	Status          string           `gorm:"type:varchar(16);not null;index"`
	Metadata        account.Metadata `gorm:"serializer:json;type:text"`
	CreatedAt       time.Time        `gorm:"index:idx_transactions_account_created,priority:2"`
	UpdatedAt       time.Time
}

// TableName specifies the table name for the Transaction model.
func (Transaction) TableName() string { return "transactions" }

// Models lists every table for AutoMigrate.
func Models() []any {
	return []any{&Customer{}, &Account{}, &Transaction{}}
}

func accountFromModel(m *Account) (*account.Account, error) {
	return account.New().
		WithID(m.ID).
		WithCustomerID(m.CustomerID).
		WithCurrency(money.Code(m.Currency)).
		WithBalance(m.Balance.Decimal).
		WithStatus(account.Status(m.Status)).
		WithCreatedAt(m.CreatedAt).
		WithUpdatedAt(m.UpdatedAt).
		Build()
}

func accountToModel(a *account.Account) *Account {
	return &Account{
		ID:         a.ID,
		CustomerID: a.CustomerID,
		Balance:    Decimal{a.Balance()},
		Currency:   string(a.Currency),
		Status:     string(a.Status),
		CreatedAt:  a.CreatedAt,
		UpdatedAt:  a.UpdatedAt,
	}
}

func transactionFromModel(m *Transaction) *account.Transaction {
	return account.NewTransactionFromData(
		m.ID,
		account.TransactionType(m.Type),
		m.AccountID,
		m.TargetAccountID,
		m.Amount.Decimal,
		money.Code(m.Currency),
		account.TransactionStatus(m.Status),
		m.Metadata,
		m.CreatedAt,
		m.UpdatedAt,
	)
}

func transactionToModel(t *account.Transaction) *Transaction {
	return &Transaction{
		ID:              t.ID,
		Type:            string(t.Type),
		AccountID:       t.AccountID,
		TargetAccountID: t.TargetAccountID,
		Amount:          Decimal{t.Amount},
		Currency:        string(t.Currency),
		Status:          string(t.Status),
		Metadata:        t.Metadata,
		CreatedAt:       t.CreatedAt,
		UpdatedAt:       t.UpdatedAt,
	}
}
