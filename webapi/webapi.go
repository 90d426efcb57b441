// Package webapi exposes the banking engine over HTTP. It is organized into
// sub-packages per resource:
//   - customer: customer registration and lookup
//   - account: account lifecycle and history
//   - transaction: deposits, withdrawals and transfers
//   - settings: runtime fee policy and risk rules
package webapi

import (
	"errors"
	"strings"
	"time"

	_ "github.com/amirasaad/corebank/cmd/server/swagger"
	"github.com/amirasaad/corebank/pkg/app"
	accountweb "github.com/amirasaad/corebank/webapi/account"
	"github.com/amirasaad/corebank/webapi/common"
	customerweb "github.com/amirasaad/corebank/webapi/customer"
	settingsweb "github.com/amirasaad/corebank/webapi/settings"
	transactionweb "github.com/amirasaad/corebank/webapi/transaction"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
)

// SetupApp Initialize Fiber with custom configuration
func SetupApp(a *app.App) *fiber.App {
	cfg := a.Config

	fiberApp := fiber.New(fiber.Config{
		AppName: "corebank",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return common.ProblemDetailsJSON(c, "Request failed", err)
		},
	})
	fiberApp.Use(recover.New())
	fiberApp.Use(logger.New())

	maxRequests, window := 100, time.Minute
	if cfg != nil && cfg.RateLimit != nil {
		maxRequests, window = cfg.RateLimit.MaxRequests, cfg.RateLimit.Window
	}
	fiberApp.Use(limiter.New(limiter.Config{
		Max:        maxRequests,
		Expiration: window,
		KeyGenerator: func(c *fiber.Ctx) string {
			// first hop of X-Forwarded-For, then X-Real-IP, then the peer
			if forwardedFor := c.Get("X-Forwarded-For"); forwardedFor != "" {
				if commaIndex := strings.Index(forwardedFor, ","); commaIndex != -1 {
					return strings.TrimSpace(forwardedFor[:commaIndex])
				}
				return strings.TrimSpace(forwardedFor)
			}
			if realIP := c.Get("X-Real-IP"); realIP != "" {
				return realIP
			}
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return common.ProblemDetailsJSON(
				c,
				"Too Many Requests",
				errors.New("rate limit exceeded"),
				fiber.StatusTooManyRequests,
			)
		},
	}))

	fiberApp.Get("/swagger/*", swagger.New(swagger.Config{
		TryItOutEnabled:      true,
		PersistAuthorization: true,
	}))
	fiberApp.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("corebank API is running")
	})

	var (
		jwtSecret string
		ttl       = 24 * time.Hour
	)
	if cfg != nil && cfg.Auth != nil {
		jwtSecret = cfg.Auth.JwtSecret
	}
	if cfg != nil && cfg.Idempotency != nil {
		ttl = cfg.Idempotency.TTL
	}

	customerweb.Routes(fiberApp, a.CustomerService)
	accountweb.Routes(fiberApp, a.AccountService, a.TransactionService)
	transactionweb.Routes(fiberApp, a.TransactionService, a.Deps.Cache, ttl)
	settingsweb.Routes(fiberApp, a.SettingsService, jwtSecret)
	return fiberApp
}
