// Package handler is the serverless entry point. The platform calls Handler
// for every request; the application is built on the first one.
package handler

import (
	"log/slog"
	"net/http"
	"sync"

	"github.com/amirasaad/corebank/infra/initializer"
	"github.com/amirasaad/corebank/pkg/app"
	"github.com/amirasaad/corebank/pkg/config"
	"github.com/amirasaad/corebank/webapi"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
)

var (
	once    sync.Once
	served  http.HandlerFunc
	initErr error
)

// Handler is the main entry point of the application.
// Think of it like the main() method
func Handler(w http.ResponseWriter, r *http.Request) {
	// This is needed to set the proper request path in `*fiber.Ctx`
	r.RequestURI = r.URL.String()

	once.Do(func() {
		served, initErr = build()
	})
	if initErr != nil {
		slog.Error("corebank failed to start", "error", initErr)
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		return
	}
	served.ServeHTTP(w, r)
}

// build wires the application once per instance. Connections stay open for
// the lifetime of the instance, so the cleanup function is not used.
func build() (http.HandlerFunc, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	deps, _, err := initializer.InitializeDependencies(cfg)
	if err != nil {
		return nil, err
	}
	a, err := app.New(deps)
	if err != nil {
		return nil, err
	}
	return adaptor.FiberApp(webapi.SetupApp(a)), nil
}
