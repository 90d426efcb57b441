package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/amirasaad/corebank/pkg/domain"
	"github.com/amirasaad/corebank/pkg/domain/account"
	"github.com/amirasaad/corebank/pkg/domain/customer"
	"github.com/amirasaad/corebank/pkg/money"
	"github.com/amirasaad/corebank/pkg/repository"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type RepositorySuite struct {
	suite.Suite
	db  *gorm.DB
	uow *UoW
	ctx context.Context
}

func TestRepositorySuite(t *testing.T) {
	suite.Run(t, new(RepositorySuite))
}

func (s *RepositorySuite) SetupTest() {
	name := strings.NewReplacer("/", "_", " ", "_").Replace(s.T().Name())
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name)), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	s.Require().NoError(err)
	s.Require().NoError(db.AutoMigrate(Models()...))
	s.db = db
	s.uow = NewUoW(db)
	s.ctx = context.Background()
}

func (s *RepositorySuite) TearDownTest() {
	sqlDB, err := s.db.DB()
	s.Require().NoError(err)
	s.Require().NoError(sqlDB.Close())
}

func (s *RepositorySuite) newAccount(balance string) *account.Account {
	acc, err := account.New().
		WithCustomerID(uuid.New()).
		WithBalance(money.MustParse(balance)).
		Build()
	s.Require().NoError(err)
	repo, err := s.uow.AccountRepository()
	s.Require().NoError(err)
	s.Require().NoError(repo.Create(s.ctx, acc))
	return acc
}

func (s *RepositorySuite) newTransaction(accountID uuid.UUID, amount string, at time.Time) *account.Transaction {
	tx, err := account.NewTransaction(account.TransactionParams{
		Type:      account.TypeDeposit,
		AccountID: accountID,
		Amount:    money.MustParse(amount),
		Currency:  money.USD,
		CreatedAt: at,
	})
	s.Require().NoError(err)
	repo, err := s.uow.TransactionRepository()
	s.Require().NoError(err)
	s.Require().NoError(repo.Create(s.ctx, tx))
	return tx
}

func (s *RepositorySuite) TestAccountRoundTrip() {
	acc := s.newAccount("100.25")
	repo, err := s.uow.AccountRepository()
	s.Require().NoError(err)

	got, err := repo.Get(s.ctx, acc.ID)
	s.Require().NoError(err)
	s.True(got.Balance().Equal(money.MustParse("100.25")))
	s.Equal(acc.CustomerID, got.CustomerID)
	s.Equal(account.StatusActive, got.Status)

	s.Require().NoError(got.ApplyDebit(money.MustParse("0.25")))
	s.Require().NoError(got.TransitionTo(account.StatusFrozen))
	s.Require().NoError(repo.Update(s.ctx, got))

	again, err := repo.GetForUpdate(s.ctx, acc.ID)
	s.Require().NoError(err)
	s.True(again.Balance().Equal(money.MustParse("100")))
	s.Equal(account.StatusFrozen, again.Status)

	_, err = repo.Get(s.ctx, uuid.New())
	s.ErrorIs(err, domain.ErrNotFound)
	s.ErrorIs(repo.Create(s.ctx, acc), domain.ErrAlreadyExists)

	missing, err := account.New().WithCustomerID(uuid.New()).Build()
	s.Require().NoError(err)
	s.ErrorIs(repo.Update(s.ctx, missing), domain.ErrNotFound)
}

func (s *RepositorySuite) TestDecimalsAreStoredExactly() {
	acc := s.newAccount("9007199254740993.01")
	repo, err := s.uow.AccountRepository()
	s.Require().NoError(err)

	got, err := repo.Get(s.ctx, acc.ID)
	s.Require().NoError(err)
	s.Equal("9007199254740993.01", got.Balance().String())

	var storage string
	s.Require().NoError(s.db.Raw("SELECT typeof(balance) FROM accounts WHERE id = ?", acc.ID).Scan(&storage).Error)
	s.Equal("text", storage)

	bumped, err := account.New().
		WithID(acc.ID).
		WithCustomerID(acc.CustomerID).
		WithBalance(money.MustParse("9007199254740993.02")).
		Build()
	s.Require().NoError(err)
	s.Require().NoError(repo.Update(s.ctx, bumped))
	got, err = repo.Get(s.ctx, acc.ID)
	s.Require().NoError(err)
	s.Equal("9007199254740993.02", got.Balance().String())

	tx := s.newTransaction(acc.ID, "999999999999.99", time.Time{})
	txRepo, err := s.uow.TransactionRepository()
	s.Require().NoError(err)
	stored, err := txRepo.Get(s.ctx, tx.ID)
	s.Require().NoError(err)
	s.Equal("999999999999.99", stored.Amount.String())
}

func (s *RepositorySuite) TestTransactionMetadataIsPersisted() {
	acc := s.newAccount("0")
	tx := s.newTransaction(acc.ID, "12.50", time.Time{})
	repo, err := s.uow.TransactionRepository()
	s.Require().NoError(err)

	validated := time.Date(2025, 3, 14, 15, 0, 0, 0, time.UTC)
	s.Require().NoError(tx.RecordFee(money.MustParse("0.50")))
	s.Require().NoError(tx.RecordRisk(account.RiskPassed, "", validated))
	s.Require().NoError(repo.UpdateStatus(s.ctx, tx.ID, account.TransactionApproved, tx.Metadata))

	got, err := repo.Get(s.ctx, tx.ID)
	s.Require().NoError(err)
	s.Equal(account.TransactionApproved, got.Status)
	s.True(got.Amount.Equal(money.MustParse("12.50")))
	s.True(got.Fee().Equal(money.MustParse("0.50")))
	s.Equal(account.RiskPassed, got.Metadata.RiskResult)
	s.Require().NotNil(got.Metadata.ValidatedAt)
	s.True(got.Metadata.ValidatedAt.Equal(validated))
}

func (s *RepositorySuite) TestUpdateStatusKeepsTerminalRows() {
	acc := s.newAccount("0")
	tx := s.newTransaction(acc.ID, "1", time.Time{})
	repo, err := s.uow.TransactionRepository()
	s.Require().NoError(err)

	s.Require().NoError(repo.UpdateStatus(s.ctx, tx.ID, account.TransactionRejected, account.Metadata{Reason: "limit"}))
	s.Require().NoError(repo.UpdateStatus(s.ctx, tx.ID, account.TransactionRejected, account.Metadata{}))

	err = repo.UpdateStatus(s.ctx, tx.ID, account.TransactionApproved, account.Metadata{})
	s.ErrorIs(err, domain.ErrInvalidStatusTransition)

	got, err := repo.Get(s.ctx, tx.ID)
	s.Require().NoError(err)
	s.Equal(account.TransactionRejected, got.Status)
	s.Equal("limit", got.Metadata.Reason)

	err = repo.UpdateStatus(s.ctx, uuid.New(), account.TransactionApproved, account.Metadata{})
	s.ErrorIs(err, domain.ErrNotFound)
}

func (s *RepositorySuite) TestListQueries() {
	acc := s.newAccount("0")
	other := s.newAccount("0")
	base := time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)

	var ids []uuid.UUID
	for i := range 4 {
		ids = append(ids, s.newTransaction(acc.ID, "1", base.Add(time.Duration(i)*time.Hour)).ID)
	}
	target := acc.ID
	transfer, err := account.NewTransaction(account.TransactionParams{
		Type:            account.TypeTransfer,
		AccountID:       other.ID,
		TargetAccountID: &target,
		Amount:          money.MustParse("2"),
		Currency:        money.USD,
		CreatedAt:       base.Add(5 * time.Hour),
	})
	s.Require().NoError(err)
	repo, err := s.uow.TransactionRepository()
	s.Require().NoError(err)
	s.Require().NoError(repo.Create(s.ctx, transfer))

	page, err := repo.ListByAccount(s.ctx, acc.ID, 2, 0)
	s.Require().NoError(err)
	s.Require().Len(page, 2)
	s.Equal(transfer.ID, page[0].ID)
	s.Equal(ids[3], page[1].ID)

	page, err = repo.ListByAccount(s.ctx, acc.ID, 10, 3)
	s.Require().NoError(err)
	s.Require().Len(page, 2)
	s.Equal(ids[0], page[1].ID)

	// only the account's own transactions count as its history
	recent, err := repo.ListSince(s.ctx, acc.ID, base.Add(2*time.Hour))
	s.Require().NoError(err)
	s.Require().Len(recent, 2)
	s.Equal(ids[2], recent[0].ID)
	s.Equal(ids[3], recent[1].ID)
}

func (s *RepositorySuite) TestCustomerRepository() {
	repo, err := s.uow.CustomerRepository()
	s.Require().NoError(err)

	c, err := customer.New("Ada Lovelace", "ada@example.com")
	s.Require().NoError(err)
	s.Require().NoError(repo.Create(s.ctx, c))

	got, err := repo.GetByEmail(s.ctx, "ada@example.com")
	s.Require().NoError(err)
	s.Equal(c.ID, got.ID)
	s.Equal(customer.StatusActive, got.Status)

	dup, err := customer.New("Ada Again", "ada@example.com")
	s.Require().NoError(err)
	s.ErrorIs(repo.Create(s.ctx, dup), domain.ErrAlreadyExists)

	_, err = repo.Get(s.ctx, uuid.New())
	s.ErrorIs(err, domain.ErrNotFound)
}

func (s *RepositorySuite) TestDoRollsBackEveryWrite() {
	acc := s.newAccount("50")
	boom := errors.New("boom")

	err := s.uow.Do(s.ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		locked, err := repo.GetForUpdate(s.ctx, acc.ID)
		if err != nil {
			return err
		}
		if err := locked.ApplyDebit(money.MustParse("50")); err != nil {
			return err
		}
		if err := repo.Update(s.ctx, locked); err != nil {
			return err
		}
		return boom
	})
	s.ErrorIs(err, boom)

	repo, err := s.uow.AccountRepository()
	s.Require().NoError(err)
	got, err := repo.Get(s.ctx, acc.ID)
	s.Require().NoError(err)
	s.True(got.Balance().Equal(money.MustParse("50")))
}
