package initializer

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/amirasaad/corebank/infra"
	infra_cache "github.com/amirasaad/corebank/infra/cache"
	infra_eventbus "github.com/amirasaad/corebank/infra/eventbus"
	"github.com/amirasaad/corebank/infra/memory"
	infra_repository "github.com/amirasaad/corebank/infra/repository"
	"github.com/amirasaad/corebank/pkg/cache"
	"github.com/amirasaad/corebank/pkg/config"
	"github.com/amirasaad/corebank/pkg/domain/events"
	"github.com/amirasaad/corebank/pkg/eventbus"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

type closer func() error

// InitializeDependencies initializes all the application dependencies. The
// returned cleanup releases connections and flushes the tracer; it is safe
// to call once.
func InitializeDependencies(cfg *config.App) (
	deps *config.Deps,
	cleanup func(),
	err error,
) {
	logger := setupLogger(cfg.Log)
	deps = &config.Deps{Logger: logger, Config: cfg}

	var closers []closer
	cleanup = func() {
		for i := len(closers) - 1; i >= 0; i-- {
			if err := closers[i](); err != nil {
				logger.Warn("Failed to release dependency", "error", err)
			}
		}
	}
	defer func() {
		if err != nil {
			cleanup()
		}
	}()

	// Initialize tracing
	tp := sdktrace.NewTracerProvider()
	otel.SetTracerProvider(tp)
	deps.Tracer = tp.Tracer("github.com/amirasaad/corebank")
	closers = append(closers, func() error {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return tp.Shutdown(ctx)
	})

	// Initialize database
	db, err := infra.NewDBConnection(cfg.DB, cfg.Env)
	if err != nil {
		logger.Error("Failed to initialize database", "error", err)
		return nil, nil, err
	}
	if db != nil {
		deps.Uow = infra_repository.NewUoW(db)
		sqlDB, err := db.DB()
		if err != nil {
			return nil, nil, err
		}
		closers = append(closers, sqlDB.Close)
		logger.Info("Using SQL store", "dialect", db.Name())
	} else {
		deps.Uow = memory.NewUoW(memory.NewStore())
		logger.Warn("DATABASE_URL not set; using in-memory store")
	}

	// Initialize idempotency cache
	idempotency, err := initCache(cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	deps.Cache = idempotency
	if c, ok := idempotency.(interface{ Close() error }); ok {
		closers = append(closers, c.Close)
	}

	// Initialize event bus
	bus, err := initEventBus(cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	deps.EventBus = bus
	if c, ok := bus.(interface{ Close() error }); ok {
		closers = append(closers, c.Close)
	}

	return deps, cleanup, nil
}

func initCache(cfg *config.App, logger *slog.Logger) (cache.IdempotencyCache, error) {
	if cfg.Redis == nil || cfg.Redis.URL == "" {
		logger.Info("Using in-memory idempotency cache")
		return infra_cache.NewMemoryCache(), nil
	}
	c, err := infra_cache.NewRedisCache(cfg.Redis.URL, cfg.Redis.KeyPrefix+"idem:", logger)
	if err != nil {
		logger.Error("Invalid Redis URL", "error", err)
		return nil, err
	}
	logger.Info("Using Redis for idempotency cache")
	return c, nil
}

// initEventBus builds the bus named by EVENTBUS_DRIVER. A configured broker
// that cannot be reached degrades to the in-memory bus; a missing address
// or an unknown driver is a configuration error.
func initEventBus(cfg *config.App, logger *slog.Logger) (eventbus.Bus, error) {
	driver := ""
	if cfg.EventBus != nil {
		driver = strings.ToLower(strings.TrimSpace(cfg.EventBus.Driver))
	}

	switch driver {
	case "", "memory":
		return infra_eventbus.NewWithMemory(logger, infra_eventbus.WithPublishedLimit(0)), nil
	case "redis":
		if cfg.Redis == nil || cfg.Redis.URL == "" {
			return nil, fmt.Errorf("event bus driver redis requires REDIS_URL")
		}
		bus, err := infra_eventbus.NewWithRedis(
			cfg.Redis.URL,
			cfg.EventBus.Stream,
			cfg.EventBus.Group,
			events.EventTypes,
			logger,
		)
		if err != nil {
			logger.Warn("Redis event bus unavailable; falling back to memory", "error", err)
			return infra_eventbus.NewWithMemory(logger, infra_eventbus.WithPublishedLimit(0)), nil
		}
		return bus, nil
	case "kafka":
		if cfg.Kafka == nil || cfg.Kafka.Brokers == "" {
			return nil, fmt.Errorf("event bus driver kafka requires KAFKA_BROKERS")
		}
		bus, err := infra_eventbus.NewWithKafka(
			cfg.Kafka.Brokers,
			events.EventTypes,
			logger,
			&infra_eventbus.KafkaEventBusConfig{
				GroupID:     cfg.Kafka.GroupID,
				TopicPrefix: cfg.Kafka.Topic,
			},
		)
		if err != nil {
			logger.Warn("Kafka event bus unavailable; falling back to memory", "error", err)
			return infra_eventbus.NewWithMemory(logger, infra_eventbus.WithPublishedLimit(0)), nil
		}
		return bus, nil
	default:
		return nil, fmt.Errorf("unsupported event bus driver %q", driver)
	}
}
