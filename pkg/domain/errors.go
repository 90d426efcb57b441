package domain

import (
	"errors"
	"fmt"
)

// Common domain errors. Every error the core returns matches exactly one of
// these with errors.Is.
var (
	// ErrValidation is returned when input validation fails
	ErrValidation = errors.New("validation error")
	// ErrNotFound is returned when a requested resource is not found
	ErrNotFound = errors.New("resource not found")
	// ErrAlreadyExists is returned when trying to create a resource that already exists
	ErrAlreadyExists = errors.New("resource already exists")
	// ErrAccountFrozen is returned when a frozen account is asked to move money
	ErrAccountFrozen = errors.New("account is frozen")
	// ErrAccountClosed is returned when a closed account is asked to move money
	ErrAccountClosed = errors.New("account is closed")
	// ErrInsufficientFunds is returned when a debit would make a balance negative
	ErrInsufficientFunds = errors.New("insufficient funds")
	// ErrTransactionRejected is returned when a risk rule rejects a transaction
	ErrTransactionRejected = errors.New("transaction rejected")
	// ErrInvalidStatusTransition is returned when a state machine is asked for a forbidden move
	ErrInvalidStatusTransition = errors.New("invalid status transition")
	// ErrInfrastructure is returned when the storage boundary fails
	ErrInfrastructure = errors.New("infrastructure error")
)

// Validationf builds an ErrValidation with a formatted detail message.
func Validationf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// NotFoundf builds an ErrNotFound with a formatted detail message.
func NotFoundf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}

// RejectionError carries the reason of the risk rule that rejected a transaction.
type RejectionError struct {
	Rule   string
	Reason string
}

func (e *RejectionError) Error() string {
	return fmt.Sprintf("transaction rejected by %s: %s", e.Rule, e.Reason)
}

// Unwrap lets errors.Is match ErrTransactionRejected.
func (e *RejectionError) Unwrap() error { return ErrTransactionRejected }

// StatusTransitionError describes a forbidden state machine move.
type StatusTransitionError struct {
	Entity string
	From   string
	To     string
}

func (e *StatusTransitionError) Error() string {
	return fmt.Sprintf("%s: cannot transition from %s to %s", e.Entity, e.From, e.To)
}

// Unwrap lets errors.Is match ErrInvalidStatusTransition.
func (e *StatusTransitionError) Unwrap() error { return ErrInvalidStatusTransition }

// InfrastructureError wraps a failure of the repository boundary.
type InfrastructureError struct {
	Op  string
	Err error
}

// NewInfrastructureError wraps err unless it is nil or already classified.
func NewInfrastructureError(op string, err error) error {
	if err == nil {
		return nil
	}
	var infra *InfrastructureError
	if errors.As(err, &infra) {
		return err
	}
	return &InfrastructureError{Op: op, Err: err}
}

func (e *InfrastructureError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

// Unwrap exposes both ErrInfrastructure and the underlying cause.
func (e *InfrastructureError) Unwrap() []error { return []error{ErrInfrastructure, e.Err} }

var classified = []error{
	ErrValidation,
	ErrNotFound,
	ErrAlreadyExists,
	ErrAccountFrozen,
	ErrAccountClosed,
	ErrInsufficientFunds,
	ErrTransactionRejected,
	ErrInvalidStatusTransition,
	ErrInfrastructure,
}

// Classify passes domain errors through and wraps anything else coming out
// of the repository boundary as an InfrastructureError.
func Classify(op string, err error) error {
	if err == nil {
		return nil
	}
	for _, target := range classified {
		if errors.Is(err, target) {
			return err
		}
	}
	return &InfrastructureError{Op: op, Err: err}
}
