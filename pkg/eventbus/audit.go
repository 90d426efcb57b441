package eventbus

import (
	"context"
	"log/slog"

	"github.com/amirasaad/corebank/pkg/domain/events"
)

// RegisterAuditLog subscribes a handler that writes every terminal
// transaction outcome to logger.
func RegisterAuditLog(bus Bus, logger *slog.Logger) {
	logger = logger.With("handler", "audit")
	bus.Register(events.TransactionApprovedType, func(ctx context.Context, e events.Event) error {
		evt, ok := e.(*events.TransactionApproved)
		if !ok {
			logger.WarnContext(ctx, "unexpected event payload", "type", e.Type())
			return nil
		}
		logger.InfoContext(ctx, "transaction approved",
			"transaction_id", evt.TransactionID,
			"type", evt.TransactionType,
			"account_id", evt.AccountID,
			"amount", evt.Amount.String(),
			"fee", evt.Fee.String(),
			"currency", evt.Currency,
		)
		return nil
	})
	bus.Register(events.TransactionRejectedType, func(ctx context.Context, e events.Event) error {
		evt, ok := e.(*events.TransactionRejected)
		if !ok {
			logger.WarnContext(ctx, "unexpected event payload", "type", e.Type())
			return nil
		}
		logger.InfoContext(ctx, "transaction rejected",
			"transaction_id", evt.TransactionID,
			"type", evt.TransactionType,
			"account_id", evt.AccountID,
			"amount", evt.Amount.String(),
			"reason", evt.Reason,
		)
		return nil
	})
}
