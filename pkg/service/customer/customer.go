// Package customer provides customer registration and lookup.
package customer

import (
	"context"
	"errors"
	"log/slog"

	"github.com/amirasaad/corebank/pkg/config"
	"github.com/amirasaad/corebank/pkg/domain"
	"github.com/amirasaad/corebank/pkg/domain/customer"
	"github.com/amirasaad/corebank/pkg/repository"
	"github.com/google/uuid"
)

// Service provides business logic for customer operations.
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
	return &Service{uow: deps.Uow, logger: logger}
}

// Register creates a customer. Emails are unique after normalization.
func (s *Service) Register(ctx context.Context, name, email string) (c *customer.Customer, err error) {
	c, err = customer.New(name, email)
	if err != nil {
		return nil, err
	}
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.CustomerRepository()
		if err != nil {
			return err
		}
		_, err = repo.GetByEmail(ctx, c.Email)
		switch {
		case err == nil:
			return domain.ErrAlreadyExists
		case !errors.Is(err, domain.ErrNotFound):
			return err
		}
		return repo.Create(ctx, c)
	})
	if err != nil {
		s.logger.Warn("Register failed", "email", c.Email, "error", err)
		return nil, domain.Classify("register customer", err)
	}
	s.logger.Info("customer registered", "customer_id", c.ID)
	return c, nil
}

// Get returns the customer with the given id.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*customer.Customer, error) {
	repo, err := s.uow.CustomerRepository()
	if err != nil {
		return nil, domain.Classify("customer repository", err)
	}
	c, err := repo.Get(ctx, id)
	if err != nil {
		return nil, domain.Classify("load customer", err)
	}
	return c, nil
}
