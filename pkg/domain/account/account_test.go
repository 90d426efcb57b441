package account_test

import (
	"io"
	"log/slog"
	"os"
	"testing"

	"github.com/amirasaad/corebank/pkg/domain"
	"github.com/amirasaad/corebank/pkg/domain/account"
	"github.com/amirasaad/corebank/pkg/money"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMain runs before any tests and applies globally for all tests in the package.
func TestMain(m *testing.M) {
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
	os.Exit(m.Run())
}

func newAccount(t *testing.T, balance string) *account.Account {
	t.Helper()
	acc, err := account.New().
		WithCustomerID(uuid.New()).
		WithCurrency(money.USD).
		WithBalance(money.MustParse(balance)).
		Build()
	require.NoError(t, err)
	return acc
}

func TestNewAccount(t *testing.T) {
	t.Parallel()
	acc, err := account.New().WithCustomerID(uuid.New()).Build()
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, acc.ID)
	assert.True(t, acc.Balance().IsZero())
	assert.Equal(t, account.StatusActive, acc.Status)
	assert.Equal(t, money.USD, acc.Currency)
}

func TestNewAccount_Invalid(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		b    *account.Builder
	}{
		{"missing customer", account.New()},
		{"bad currency", account.New().WithCustomerID(uuid.New()).WithCurrency("US")},
		{"negative balance", account.New().WithCustomerID(uuid.New()).WithBalance(decimal.NewFromInt(-1))},
		{"bad status", account.New().WithCustomerID(uuid.New()).WithStatus("DORMANT")},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.b.Build()
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestAccountTransitions(t *testing.T) {
	t.Parallel()
	tests := []struct {
		from, to account.Status
		ok       bool
	}{
		{account.StatusActive, account.StatusFrozen, true},
		{account.StatusFrozen, account.StatusActive, true},
		{account.StatusActive, account.StatusClosed, true},
		{account.StatusFrozen, account.StatusClosed, true},
		{account.StatusActive, account.StatusActive, true},
		{account.StatusClosed, account.StatusClosed, true},
		{account.StatusClosed, account.StatusActive, false},
		{account.StatusClosed, account.StatusFrozen, false},
	}
	for _, tc := range tests {
		t.Run(string(tc.from)+"->"+string(tc.to), func(t *testing.T) {
			acc, err := account.New().WithCustomerID(uuid.New()).WithStatus(tc.from).Build()
			require.NoError(t, err)
			err = acc.TransitionTo(tc.to)
			if tc.ok {
				require.NoError(t, err)
				assert.Equal(t, tc.to, acc.Status)
				return
			}
			assert.ErrorIs(t, err, domain.ErrInvalidStatusTransition)
			assert.Equal(t, tc.from, acc.Status)
		})
	}
}

func TestCheckCanOperate(t *testing.T) {
	t.Parallel()
	acc := newAccount(t, "10")
	assert.NoError(t, acc.CheckCanOperate())

	require.NoError(t, acc.TransitionTo(account.StatusFrozen))
	assert.ErrorIs(t, acc.CheckCanOperate(), domain.ErrAccountFrozen)

	require.NoError(t, acc.TransitionTo(account.StatusClosed))
	assert.ErrorIs(t, acc.CheckCanOperate(), domain.ErrAccountClosed)
}

func TestApplyCredit(t *testing.T) {
	t.Parallel()
	acc := newAccount(t, "0")

	require.NoError(t, acc.ApplyCredit(money.MustParse("100.50")))
	assert.True(t, acc.Balance().Equal(money.MustParse("100.50")))

	assert.ErrorIs(t, acc.ApplyCredit(decimal.Zero), domain.ErrValidation)
	assert.ErrorIs(t, acc.ApplyCredit(money.MustParse("-1")), domain.ErrValidation)
	assert.True(t, acc.Balance().Equal(money.MustParse("100.50")))

	full := newAccount(t, "999999999999")
	assert.ErrorIs(t, full.ApplyCredit(money.MustParse("1")), domain.ErrValidation)
	assert.True(t, full.Balance().Equal(money.MustParse("999999999999")))

	require.NoError(t, acc.TransitionTo(account.StatusFrozen))
	assert.ErrorIs(t, acc.ApplyCredit(money.MustParse("1")), domain.ErrAccountFrozen)
	assert.True(t, acc.Balance().Equal(money.MustParse("100.50")))
}

func TestApplyDebit(t *testing.T) {
	t.Parallel()
	acc := newAccount(t, "100")

	t.Run("insufficient funds leaves balance unchanged", func(t *testing.T) {
		err := acc.ApplyDebit(money.MustParse("100.01"))
		assert.ErrorIs(t, err, domain.ErrInsufficientFunds)
		assert.True(t, acc.Balance().Equal(money.MustParse("100")))
	})

	t.Run("non-positive amount", func(t *testing.T) {
		assert.ErrorIs(t, acc.ApplyDebit(decimal.Zero), domain.ErrValidation)
	})

	t.Run("debit whole balance", func(t *testing.T) {
		require.NoError(t, acc.ApplyDebit(money.MustParse("100")))
		assert.True(t, acc.Balance().IsZero())
	})

	t.Run("closed account", func(t *testing.T) {
		closed := newAccount(t, "50")
		require.NoError(t, closed.TransitionTo(account.StatusClosed))
		assert.ErrorIs(t, closed.ApplyDebit(money.MustParse("1")), domain.ErrAccountClosed)
	})
}

func TestBalanceEqualsSumOfDeltas(t *testing.T) {
	t.Parallel()
	acc := newAccount(t, "0")
	deltas := []string{"+10", "+5.25", "-3", "-12.25", "+1", "-2"}
	want := decimal.Zero
	for _, d := range deltas {
		amt := money.MustParse(d[1:])
		var err error
		if d[0] == '+' {
			err = acc.ApplyCredit(amt)
			if err == nil {
				want = want.Add(amt)
			}
		} else {
			err = acc.ApplyDebit(amt)
			if err == nil {
				want = want.Sub(amt)
			}
		}
		assert.False(t, acc.Balance().IsNegative())
	}
	assert.True(t, want.Equal(acc.Balance()), "want %s got %s", want, acc.Balance())
}
