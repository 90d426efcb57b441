package settings_test

import (
	"io"
	"log/slog"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/amirasaad/corebank/pkg/config"
	"github.com/amirasaad/corebank/pkg/domain"
	"github.com/amirasaad/corebank/pkg/fee"
	"github.com/amirasaad/corebank/pkg/money"
	"github.com/amirasaad/corebank/pkg/risk"
	"github.com/amirasaad/corebank/pkg/service/settings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
	os.Exit(m.Run())
}

func kinds(p risk.Pipeline) []risk.Kind {
	var out []risk.Kind
	for _, r := range p.Rules() {
		out = append(out, r.Kind)
	}
	return out
}

func TestNewServiceWithoutConfig(t *testing.T) {
	svc, err := settings.NewService(config.Deps{})
	require.NoError(t, err)

	snap := svc.Snapshot()
	assert.Equal(t, fee.KindNone, snap.Fee.Kind)
	assert.Equal(t, risk.Kinds, kinds(snap.Pipeline))
}

func TestNewServiceFromConfig(t *testing.T) {
	cfg := &config.App{
		Fee: &config.Fee{Policy: "flat", Flat: money.MustParse("0.25")},
		Risk: &config.Risk{
			Rules:          []string{"daily_limit", "max_amount"},
			MaxAmount:      money.MustParse("500"),
			VelocityMax:    3,
			VelocityWindow: time.Minute,
			DailyLimit:     money.MustParse("900"),
			Timezone:       "UTC",
		},
	}
	svc, err := settings.NewService(config.Deps{Config: cfg})
	require.NoError(t, err)

	snap := svc.Snapshot()
	assert.True(t, snap.Fee.Flat.Equal(money.MustParse("0.25")))
	// catalog order wins over the order rules were listed in
	assert.Equal(t, []risk.Kind{risk.KindMaxAmount, risk.KindDailyLimit}, kinds(snap.Pipeline))
	assert.True(t, snap.Pipeline.Rules()[0].Threshold.Equal(money.MustParse("500")))
}

func TestNewServiceRejectsUnknownRule(t *testing.T) {
	_, err := settings.New(fee.None(), nil, []risk.Kind{"geo_fence"}, nil)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestSetFeePolicy(t *testing.T) {
	svc, err := settings.New(fee.None(), nil, nil, nil)
	require.NoError(t, err)

	p, err := svc.SetFeePolicy("percent", settings.FeeParams{})
	require.NoError(t, err)
	assert.True(t, p.Rate.Equal(money.MustParse("0.015")))

	rate := money.MustParse("0.02")
	p, err = svc.SetFeePolicy(" Percent ", settings.FeeParams{Rate: &rate})
	require.NoError(t, err)
	assert.True(t, svc.FeePolicy().Rate.Equal(rate))
	assert.Equal(t, p, svc.FeePolicy())

	_, err = svc.SetFeePolicy("surcharge", settings.FeeParams{})
	assert.ErrorIs(t, err, domain.ErrValidation)

	negative := money.MustParse("-1")
	_, err = svc.SetFeePolicy("flat", settings.FeeParams{Flat: &negative})
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, fee.KindPercent, svc.FeePolicy().Kind)
}

func TestToggleRules(t *testing.T) {
	svc, err := settings.New(fee.None(), nil, nil, nil)
	require.NoError(t, err)
	assert.Empty(t, svc.Snapshot().Pipeline.Rules())

	require.NoError(t, svc.SetRuleEnabled("velocity", true))
	require.NoError(t, svc.SetRuleEnabled("MAX_AMOUNT", true))
	assert.Equal(t, []risk.Kind{risk.KindMaxAmount, risk.KindVelocity}, kinds(svc.Snapshot().Pipeline))

	require.NoError(t, svc.SetRuleEnabled("velocity", false))
	assert.Equal(t, []risk.Kind{risk.KindMaxAmount}, kinds(svc.Snapshot().Pipeline))

	assert.ErrorIs(t, svc.SetRuleEnabled("unknown", true), domain.ErrValidation)

	states := svc.Rules()
	require.Len(t, states, 3)
	assert.True(t, states[0].Enabled)
	assert.False(t, states[1].Enabled)
}

func TestUpdateRule(t *testing.T) {
	svc, err := settings.New(fee.None(), nil, []risk.Kind{risk.KindMaxAmount}, nil)
	require.NoError(t, err)

	require.NoError(t, svc.UpdateRule(risk.MaxAmount(money.MustParse("50"))))
	rules := svc.Snapshot().Pipeline.Rules()
	require.Len(t, rules, 1)
	assert.True(t, rules[0].Threshold.Equal(money.MustParse("50")))

	err = svc.UpdateRule(risk.MaxAmount(money.MustParse("0")))
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestSnapshotIsStableUnderConcurrentChanges(t *testing.T) {
	svc, err := settings.New(fee.None(), nil, risk.Kinds, nil)
	require.NoError(t, err)
	snap := svc.Snapshot()

	var wg sync.WaitGroup
	for i := range 20 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = svc.SetRuleEnabled("velocity", i%2 == 0)
		}()
		go func() {
			defer wg.Done()
			_ = svc.Snapshot()
		}()
	}
	wg.Wait()
	assert.Len(t, snap.Pipeline.Rules(), 3)
}
