package risk_test

import (
	"testing"
	"time"

	"github.com/amirasaad/corebank/pkg/domain"
	"github.com/amirasaad/corebank/pkg/domain/account"
	"github.com/amirasaad/corebank/pkg/money"
	"github.com/amirasaad/corebank/pkg/risk"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 3, 14, 15, 0, 0, 0, time.UTC)

func testAccount(t *testing.T) *account.Account {
	t.Helper()
	acc, err := account.New().WithCustomerID(uuid.New()).Build()
	require.NoError(t, err)
	return acc
}

func candidate(t *testing.T, acc *account.Account, amount string) *account.Transaction {
	t.Helper()
	tx, err := account.NewTransaction(account.TransactionParams{
		Type:      account.TypeWithdraw,
		AccountID: acc.ID,
		Amount:    money.MustParse(amount),
		Currency:  acc.Currency,
		CreatedAt: now,
	})
	require.NoError(t, err)
	return tx
}

func past(acc *account.Account, amount string, at time.Time, status account.TransactionStatus) *account.Transaction {
	return account.NewTransactionFromData(uuid.New(), account.TypeDeposit, acc.ID, nil,
		money.MustParse(amount), acc.Currency, status, account.Metadata{}, at, at)
}

func TestMaxAmount(t *testing.T) {
	t.Parallel()
	acc := testAccount(t)
	rule := risk.MaxAmount(money.MustParse("1000"))

	ok, _ := rule.Validate(candidate(t, acc, "1000"), acc, nil, now)
	assert.True(t, ok)

	ok, reason := rule.Validate(candidate(t, acc, "1000.01"), acc, nil, now)
	assert.False(t, ok)
	assert.Contains(t, reason, "exceeds the limit of 1000")
}

func TestVelocity(t *testing.T) {
	t.Parallel()
	acc := testAccount(t)
	rule := risk.Velocity(5, 10*time.Minute)

	history := func(n int) []*account.Transaction {
		out := make([]*account.Transaction, 0, n+1)
		for i := 0; i < n; i++ {
			out = append(out, past(acc, "1", now.Add(-time.Duration(i+1)*time.Minute), account.TransactionApproved))
		}
		// outside the trailing window
		out = append(out, past(acc, "1", now.Add(-11*time.Minute), account.TransactionApproved))
		return out
	}

	t.Run("five prior rejects the sixth", func(t *testing.T) {
		ok, reason := rule.Validate(candidate(t, acc, "1"), acc, history(5), now)
		assert.False(t, ok)
		assert.Contains(t, reason, "(5)")
	})

	t.Run("four prior accepts", func(t *testing.T) {
		ok, _ := rule.Validate(candidate(t, acc, "1"), acc, history(4), now)
		assert.True(t, ok)
	})

	t.Run("candidate is not counted", func(t *testing.T) {
		c := candidate(t, acc, "1")
		h := append(history(4), c)
		ok, _ := rule.Validate(c, acc, h, now)
		assert.True(t, ok)
	})

	t.Run("rejected attempts count", func(t *testing.T) {
		h := history(4)
		h = append(h, past(acc, "1", now.Add(-30*time.Second), account.TransactionRejected))
		ok, _ := rule.Validate(candidate(t, acc, "1"), acc, h, now)
		assert.False(t, ok)
	})
}

func TestDailyLimit(t *testing.T) {
	t.Parallel()
	acc := testAccount(t)
	rule := risk.DailyLimit(money.MustParse("2000"), time.UTC)

	history := []*account.Transaction{
		past(acc, "1000", now.Add(-14*time.Hour), account.TransactionApproved),
		past(acc, "990", now.Add(-2*time.Hour), account.TransactionPending),
		// yesterday
		past(acc, "900", now.Add(-16*time.Hour), account.TransactionApproved),
	}

	ok, reason := rule.Validate(candidate(t, acc, "20"), acc, history, now)
	assert.False(t, ok)
	assert.Contains(t, reason, "2010")

	ok, _ = rule.Validate(candidate(t, acc, "10"), acc, history, now)
	assert.True(t, ok)

	t.Run("rejected attempts count", func(t *testing.T) {
		h := append(history, past(acc, "20", now.Add(-time.Minute), account.TransactionRejected))
		ok, reason := rule.Validate(candidate(t, acc, "10"), acc, h, now)
		assert.False(t, ok)
		assert.Contains(t, reason, "2020")
	})
}

func TestDailyLimitUsesCalendarDayInLocation(t *testing.T) {
	t.Parallel()
	acc := testAccount(t)
	loc := time.FixedZone("UTC-5", -5*3600)
	rule := risk.DailyLimit(money.MustParse("100"), loc)

	// 15:00 UTC is 10:00 local, so local midnight is 05:00 UTC.
	assert.Equal(t, time.Date(2025, 3, 14, 5, 0, 0, 0, time.UTC), rule.StartOfDay(now).UTC())

	history := []*account.Transaction{
		past(acc, "90", time.Date(2025, 3, 14, 4, 59, 0, 0, time.UTC), account.TransactionApproved),
	}
	ok, _ := rule.Validate(candidate(t, acc, "50"), acc, history, now)
	assert.True(t, ok)
}

func TestSince(t *testing.T) {
	t.Parallel()
	_, ok := risk.MaxAmount(money.MustParse("1")).Since(now)
	assert.False(t, ok)

	since, ok := risk.Velocity(5, 10*time.Minute).Since(now)
	assert.True(t, ok)
	assert.Equal(t, now.Add(-10*time.Minute), since)

	since, ok = risk.DailyLimit(money.MustParse("1"), time.UTC).Since(now)
	assert.True(t, ok)
	assert.Equal(t, time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC), since)
}

func TestValidateParams(t *testing.T) {
	t.Parallel()
	for _, k := range risk.Kinds {
		r, err := risk.Defaults(k)
		require.NoError(t, err)
		assert.NoError(t, r.ValidateParams())
	}
	assert.ErrorIs(t, risk.Velocity(0, time.Minute).ValidateParams(), domain.ErrValidation)
	assert.ErrorIs(t, risk.MaxAmount(money.MustParse("0")).ValidateParams(), domain.ErrValidation)
	_, err := risk.ParseKind("geo")
	assert.ErrorIs(t, err, domain.ErrValidation)
}
