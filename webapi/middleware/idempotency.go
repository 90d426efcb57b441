package middleware

import (
	"log/slog"
	"time"

	"github.com/amirasaad/corebank/pkg/cache"
	"github.com/gofiber/fiber/v2"
	"golang.org/x/sync/singleflight"
)

const (
	HeaderIdempotencyKey = "Idempotency-Key"
	HeaderReplayed       = "Idempotent-Replayed"
)

// Idempotency replays the stored response of a request that carried the
// same Idempotency-Key within ttl. Concurrent requests with the same key
// wait for the first one and share its response. Server errors are not
// stored so the client can retry them.
func Idempotency(store cache.IdempotencyCache, ttl time.Duration, logger *slog.Logger) fiber.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("middleware", "idempotency")
	var inflight singleflight.Group

	return func(c *fiber.Ctx) error {
		key := c.Get(HeaderIdempotencyKey)
		if key == "" || store == nil {
			return c.Next()
		}
		cacheKey := c.Method() + " " + c.Path() + " " + key

		cached, err := store.Get(c.UserContext(), cacheKey)
		if err != nil {
			logger.Warn("idempotency lookup failed", "error", err)
		} else if cached != nil {
			return replay(c, cached)
		}

		leader := false
		v, err, _ := inflight.Do(cacheKey, func() (any, error) {
			leader = true
			if err := c.Next(); err != nil {
				return nil, err
			}
			resp := &cache.Response{
				Status:      c.Response().StatusCode(),
				ContentType: string(c.Response().Header.ContentType()),
				Body:        append([]byte(nil), c.Response().Body()...),
			}
			if resp.Status < fiber.StatusInternalServerError {
				if err := store.Set(c.UserContext(), cacheKey, resp, ttl); err != nil {
					logger.Warn("idempotency store failed", "error", err)
				}
			}
			return resp, nil
		})
		if err != nil || leader {
			return err
		}
		return replay(c, v.(*cache.Response))
	}
}

func replay(c *fiber.Ctx, resp *cache.Response) error {
	c.Set(HeaderReplayed, "true")
	c.Set(fiber.HeaderContentType, resp.ContentType)
	return c.Status(resp.Status).Send(resp.Body)
}
