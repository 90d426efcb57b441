package eventbus

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/amirasaad/corebank/pkg/domain/events"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestMemoryEventBus_EmitDispatchesByType(t *testing.T) {
	bus := NewWithMemory(discardLogger())

	var approved, rejected int
	bus.Register(events.TransactionApprovedType, func(ctx context.Context, e events.Event) error {
		approved++
		return nil
	})
	bus.Register(events.TransactionRejectedType, func(ctx context.Context, e events.Event) error {
		rejected++
		return errors.New("handler failure is logged only")
	})

	require.NoError(t, bus.Emit(context.Background(), &events.TransactionApproved{}))
	require.NoError(t, bus.Emit(context.Background(), &events.TransactionRejected{}))
	require.NoError(t, bus.Emit(context.Background(), &events.TransactionRejected{}))

	assert.Equal(t, 1, approved)
	assert.Equal(t, 2, rejected)
	assert.Len(t, bus.Published(), 3)

	bus.ClearPublished()
	assert.Empty(t, bus.Published())
}

func TestMemoryEventBus_KeepsOnlyRecentEvents(t *testing.T) {
	bus := NewWithMemory(discardLogger(), WithPublishedLimit(2))
	ids := make([]uuid.UUID, 7)
	for i := range ids {
		ids[i] = uuid.New()
		require.NoError(t, bus.Emit(context.Background(), &events.TransactionApproved{
			TransactionEvent: events.TransactionEvent{TransactionID: ids[i]},
		}))
		assert.LessOrEqual(t, len(bus.published), 3)
	}

	published := bus.Published()
	require.Len(t, published, 2)
	assert.Equal(t, ids[5], published[0].(*events.TransactionApproved).TransactionID)
	assert.Equal(t, ids[6], published[1].(*events.TransactionApproved).TransactionID)

	silent := NewWithMemory(discardLogger(), WithPublishedLimit(0))
	called := false
	silent.Register(events.TransactionApprovedType, func(ctx context.Context, e events.Event) error {
		called = true
		return nil
	})
	require.NoError(t, silent.Emit(context.Background(), &events.TransactionApproved{}))
	assert.True(t, called)
	assert.Empty(t, silent.Published())
}

func TestMemoryEventBus_RecoversFromPanics(t *testing.T) {
	bus := NewWithMemory(discardLogger())
	called := false
	bus.Register(events.TransactionApprovedType, func(ctx context.Context, e events.Event) error {
		panic("boom")
	})
	bus.Register(events.TransactionApprovedType, func(ctx context.Context, e events.Event) error {
		called = true
		return nil
	})
	assert.NotPanics(t, func() {
		_ = bus.Emit(context.Background(), &events.TransactionApproved{})
	})
	assert.True(t, called)
}

func TestEnvelopeRoundTrip(t *testing.T) {
	id := uuid.New()
	raw, err := encode(&events.TransactionRejected{
		TransactionEvent: events.TransactionEvent{TransactionID: id, Amount: decimal.RequireFromString("12.34")},
		Reason:           "daily limit",
	})
	require.NoError(t, err)

	typ, evt, err := decode(raw, events.EventTypes)
	require.NoError(t, err)
	assert.Equal(t, events.TransactionRejectedType, typ)
	rejected, ok := evt.(*events.TransactionRejected)
	require.True(t, ok)
	assert.Equal(t, id, rejected.TransactionID)
	assert.Equal(t, "daily limit", rejected.Reason)
	assert.True(t, rejected.Amount.Equal(decimal.RequireFromString("12.34")))
}

func TestDecodeErrors(t *testing.T) {
	_, _, err := decode([]byte("not json"), events.EventTypes)
	assert.Error(t, err)

	_, _, err = decode([]byte(`{"type":"","payload":{}}`), events.EventTypes)
	assert.Error(t, err)

	typ, _, err := decode([]byte(`{"type":"account.deleted","payload":{}}`), events.EventTypes)
	assert.Error(t, err)
	assert.Equal(t, "account.deleted", typ)
}

func TestKafkaNaming(t *testing.T) {
	assert.Equal(t, []string{"a:9092", "b:9092"}, parseBrokers(" a:9092, ,b:9092"))
	assert.Equal(t, "corebank.events.transaction.approved", topicNameFor("corebank.events", events.TransactionApprovedType))
	assert.Equal(t, "x.transaction.rejected", topicNameFor("x.", "Transaction.Rejected"))
}
