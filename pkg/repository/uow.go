package repository

import (
	"context"
	"reflect"
)

// UnitOfWork defines the contract for transactional work and type-safe repository access.
//
// Repositories obtained from the UnitOfWork passed to Do share its storage
// transaction; everything written inside fn commits or rolls back together.
//
//	repoAny, err := uow.GetRepository(reflect.TypeOf((*AccountRepository)(nil)).Elem())
//	repo := repoAny.(AccountRepository)
type UnitOfWork interface {
	// Do executes fn within a transaction boundary. If fn returns an error
	// the transaction is rolled back.
	Do(ctx context.Context, fn func(uow UnitOfWork) error) error

	// GetRepository returns a repository of the requested type, bound to the current session.
	GetRepository(repoType reflect.Type) (any, error)

	AccountRepository() (AccountRepository, error)
	TransactionRepository() (TransactionRepository, error)
	CustomerRepository() (CustomerRepository, error)
}

// Repository type keys for GetRepository.
var (
	AccountRepositoryType     = reflect.TypeOf((*AccountRepository)(nil)).Elem()
	TransactionRepositoryType = reflect.TypeOf((*TransactionRepository)(nil)).Elem()
	CustomerRepositoryType    = reflect.TypeOf((*CustomerRepository)(nil)).Elem()
)

// Typed resolves a repository of type T from uow.
func Typed[T any](uow UnitOfWork) (T, error) {
	var zero T
	repoAny, err := uow.GetRepository(reflect.TypeOf((*T)(nil)).Elem())
	if err != nil {
		return zero, err
	}
	repo, ok := repoAny.(T)
	if !ok {
		return zero, &UnsupportedRepositoryError{Type: reflect.TypeOf((*T)(nil)).Elem()}
	}
	return repo, nil
}

// UnsupportedRepositoryError is returned for repository types a UnitOfWork cannot build.
type UnsupportedRepositoryError struct {
	Type reflect.Type
}

func (e *UnsupportedRepositoryError) Error() string {
	return "unsupported repository type: " + e.Type.String()
}
