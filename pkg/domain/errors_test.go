package domain

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRejectionError(t *testing.T) {
	err := error(&RejectionError{Rule: "max_amount", Reason: "too big"})
	assert.ErrorIs(t, err, ErrTransactionRejected)
	assert.Contains(t, err.Error(), "too big")

	var rej *RejectionError
	assert.True(t, errors.As(err, &rej))
	assert.Equal(t, "max_amount", rej.Rule)
}

func TestStatusTransitionError(t *testing.T) {
	err := error(&StatusTransitionError{Entity: "account", From: "CLOSED", To: "ACTIVE"})
	assert.ErrorIs(t, err, ErrInvalidStatusTransition)
	assert.Equal(t, "account: cannot transition from CLOSED to ACTIVE", err.Error())
}

func TestInfrastructureError(t *testing.T) {
	assert.NoError(t, NewInfrastructureError("save", nil))

	err := NewInfrastructureError("save account", context.DeadlineExceeded)
	assert.ErrorIs(t, err, ErrInfrastructure)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	again := NewInfrastructureError("outer", err)
	assert.Same(t, err, again)
}

func TestValidationf(t *testing.T) {
	err := Validationf("amount must be positive, got %s", "-1")
	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, "validation error: amount must be positive, got -1", err.Error())
	assert.ErrorIs(t, NotFoundf("account %d", 1), ErrNotFound)
}

func TestClassify(t *testing.T) {
	assert.NoError(t, Classify("op", nil))
	assert.Same(t, ErrNotFound, Classify("op", ErrNotFound))

	wrapped := Classify("load account", errors.New("connection reset"))
	var infra *InfrastructureError
	require.ErrorAs(t, wrapped, &infra)
	assert.Equal(t, "load account", infra.Op)
	assert.Equal(t, "load account: connection reset", wrapped.Error())
}
