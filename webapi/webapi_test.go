package webapi_test

import (
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"
	"time"

	infra_cache "github.com/amirasaad/corebank/infra/cache"
	infra_eventbus "github.com/amirasaad/corebank/infra/eventbus"
	"github.com/amirasaad/corebank/infra/memory"
	"github.com/amirasaad/corebank/pkg/app"
	"github.com/amirasaad/corebank/pkg/config"
	"github.com/amirasaad/corebank/webapi"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newApp(t *testing.T, maxRequests int) *fiber.App {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	a, err := app.New(&config.Deps{
		Uow:      memory.NewUoW(memory.NewStore()),
		EventBus: infra_eventbus.NewWithMemory(logger),
		Cache:    infra_cache.NewMemoryCache(),
		Logger:   logger,
		Config: &config.App{
			RateLimit: &config.RateLimit{MaxRequests: maxRequests, Window: time.Minute},
		},
	})
	require.NoError(t, err)
	return webapi.SetupApp(a)
}

func TestHealth(t *testing.T) {
	resp, err := newApp(t, 10).Test(httptest.NewRequest(fiber.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRateLimitPerClient(t *testing.T) {
	fiberApp := newApp(t, 2)
	get := func(forwardedFor string) int {
		req := httptest.NewRequest(fiber.MethodGet, "/", nil)
		req.Header.Set("X-Forwarded-For", forwardedFor)
		resp, err := fiberApp.Test(req)
		require.NoError(t, err)
		return resp.StatusCode
	}

	assert.Equal(t, fiber.StatusOK, get("10.0.0.1"))
	assert.Equal(t, fiber.StatusOK, get("10.0.0.1, 172.16.0.1"))
	assert.Equal(t, fiber.StatusTooManyRequests, get("10.0.0.1"))
	assert.Equal(t, fiber.StatusOK, get("10.0.0.2"))
}

func TestUnknownRouteIsProblemJSON(t *testing.T) {
	resp, err := newApp(t, 10).Test(httptest.NewRequest(fiber.MethodGet, "/nope", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "application/problem+json", resp.Header.Get(fiber.HeaderContentType))
}
