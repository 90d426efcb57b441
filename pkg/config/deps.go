package config

import (
	"log/slog"

	"github.com/amirasaad/corebank/pkg/cache"
	"github.com/amirasaad/corebank/pkg/eventbus"
	"github.com/amirasaad/corebank/pkg/repository"
	"go.opentelemetry.io/otel/trace"
)

// Deps holds all infrastructure dependencies for building the app and services.
type Deps struct {
	Uow      repository.UnitOfWork
	EventBus eventbus.Bus
	Cache    cache.IdempotencyCache
	Tracer   trace.Tracer
	Logger   *slog.Logger
	Config   *App
}
