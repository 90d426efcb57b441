// Package app wires the services together and registers the event
// handlers on the bus.
package app

import (
	"log/slog"

	"github.com/amirasaad/corebank/pkg/eventbus"
)

func (a *App) setupEventBus() {
	if a.Deps.EventBus == nil {
		return
	}
	logger := a.Deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	eventbus.RegisterAuditLog(a.Deps.EventBus, logger.With("component", "eventbus"))
}
