// Package account provides the use cases for opening accounts, looking
// them up and driving their status lifecycle.
package account

import (
	"context"
	"log/slog"
	"time"

	"github.com/amirasaad/corebank/pkg/config"
	"github.com/amirasaad/corebank/pkg/domain"
	"github.com/amirasaad/corebank/pkg/domain/account"
	"github.com/amirasaad/corebank/pkg/money"
	"github.com/amirasaad/corebank/pkg/repository"
	"github.com/google/uuid"
)

// Service provides account management operations.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

// NewService creates a new Service with the provided dependencies.
func NewService(deps config.Deps) *Service {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		uow:    deps.Uow,
		logger: logger,
	}
}

// Open creates an ACTIVE, zero-balance account for an existing customer.
// An empty currency opens a USD account.
func (s *Service) Open(ctx context.Context, customerID uuid.UUID, currency string) (acc *account.Account, err error) {
	logger := s.logger.With("customer_id", customerID, "currency", currency)

	code, err := money.ParseCode(currency)
	if err != nil {
		return nil, domain.Validationf("%v: %q", err, currency)
	}

	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		customers, err := uow.CustomerRepository()
		if err != nil {
			return err
		}
		if _, err := customers.Get(ctx, customerID); err != nil {
			return err
		}
		repo, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		acc, err = account.New().
			WithCustomerID(customerID).
			WithCurrency(code).
			Build()
		if err != nil {
			return err
		}
		return repo.Create(ctx, acc)
	})
	if err != nil {
		logger.Warn("Open failed", "error", err)
		return nil, domain.Classify("open account", err)
	}
	logger.Info("account opened", "account_id", acc.ID)
	return acc, nil
}

// Get returns the account with the given id.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*account.Account, error) {
	repo, err := s.uow.AccountRepository()
	if err != nil {
		return nil, domain.Classify("account repository", err)
	}
	acc, err := repo.Get(ctx, id)
	if err != nil {
		return nil, domain.Classify("load account", err)
	}
	return acc, nil
}

// ChangeStatus moves the account through its lifecycle (freeze, unfreeze, close).
// Requesting the current status succeeds without writing anything.
func (s *Service) ChangeStatus(ctx context.Context, id uuid.UUID, status string) (acc *account.Account, err error) {
	next, err := account.ParseStatus(status)
	if err != nil {
		return nil, err
	}
	logger := s.logger.With("account_id", id, "status", next)

	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		acc, err = repo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if acc.Status == next {
			return nil
		}
		if err := acc.TransitionTo(next); err != nil {
			return err
		}
		acc.UpdatedAt = time.Now().UTC()
		return repo.Update(ctx, acc)
	})
	if err != nil {
		logger.Warn("ChangeStatus failed", "error", err)
		return nil, domain.Classify("change account status", err)
	}
	logger.Info("account status changed")
	return acc, nil
}
