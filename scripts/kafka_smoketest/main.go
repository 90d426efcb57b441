package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"strings"
	"time"

	infra_eventbus "github.com/amirasaad/corebank/infra/eventbus"
	"github.com/amirasaad/corebank/pkg/domain/events"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RunSmokeTest emits an approved-transaction event through the Kafka event
// bus and waits until the registered handler receives it.
func RunSmokeTest() error {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	brokers := strings.TrimSpace(os.Getenv("BROKERS"))
	if brokers == "" {
		brokers = "localhost:9093,localhost:9092"
	}
	groupID := strings.TrimSpace(os.Getenv("GROUP_ID"))
	if groupID == "" {
		groupID = "corebank-smoketest-" + uuid.NewString()[:8]
	}

	bus, err := infra_eventbus.NewWithKafka(brokers, events.EventTypes, logger, &infra_eventbus.KafkaEventBusConfig{
		GroupID:     groupID,
		TopicPrefix: "corebank.smoketest",
	})
	if err != nil {
		logger.Error("kafka bus init failed", "error", err)
		return err
	}
	defer func() { _ = bus.Close() }()

	want := uuid.New()
	received := make(chan uuid.UUID, 1)
	bus.Register(events.TransactionApprovedType, func(_ context.Context, e events.Event) error {
		if approved, ok := e.(*events.TransactionApproved); ok && approved.TransactionID == want {
			select {
			case received <- approved.TransactionID:
			default:
			}
		}
		return nil
	})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	err = bus.Emit(ctx, &events.TransactionApproved{TransactionEvent: events.TransactionEvent{
		TransactionID:   want,
		TransactionType: "DEPOSIT",
		AccountID:       uuid.New(),
		Amount:          decimal.NewFromInt(10),
		Fee:             decimal.Zero,
		Currency:        "USD",
		OccurredAt:      time.Now().UTC(),
	}})
	if err != nil {
		logger.Error("emit failed", "error", err)
		return err
	}
	logger.Info("produced", "transaction_id", want)

	select {
	case id := <-received:
		logger.Info("consumed", "transaction_id", id)
	case <-ctx.Done():
		logger.Error("event not consumed in time")
		return errors.New("kafka smoke test timed out")
	}

	logger.Info("kafka smoke test passed")
	return nil
}

// main runs the smoke test and exits non-zero on failure.
func main() {
	if err := RunSmokeTest(); err != nil {
		os.Exit(1)
	}
}
