package middleware

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	infra_cache "github.com/amirasaad/corebank/infra/cache"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProtected_Unauthorized(t *testing.T) {
	app := fiber.New()
	app.Use(JwtProtected("secret"))
	app.Get("/", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestProtected_ValidToken(t *testing.T) {
	app := fiber.New()
	app.Use(JwtProtected("secret"))
	app.Get("/", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "operator",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte("secret"))
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestProtected_DisabledWithoutSecret(t *testing.T) {
	app := fiber.New()
	app.Use(JwtProtected(""))
	app.Get("/", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestJwtError_Invalid(t *testing.T) {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		return jwtError(c, errors.New("any other error"))
	})
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestIdempotency_ReplaysStoredResponse(t *testing.T) {
	store := infra_cache.NewMemoryCache()
	defer store.Close() //nolint:errcheck
	calls := 0
	app := fiber.New()
	app.Post("/pay", Idempotency(store, time.Minute, slog.New(slog.NewTextHandler(io.Discard, nil))), func(c *fiber.Ctx) error {
		calls++
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"call": calls})
	})

	send := func(key string) (*http.Response, string) {
		req := httptest.NewRequest(http.MethodPost, "/pay", nil)
		if key != "" {
			req.Header.Set(HeaderIdempotencyKey, key)
		}
		resp, err := app.Test(req)
		require.NoError(t, err)
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		return resp, string(body)
	}

	first, body := send("k1")
	assert.Equal(t, fiber.StatusCreated, first.StatusCode)
	assert.JSONEq(t, `{"call":1}`, body)

	replay, body := send("k1")
	assert.Equal(t, fiber.StatusCreated, replay.StatusCode)
	assert.Equal(t, "true", replay.Header.Get(HeaderReplayed))
	assert.JSONEq(t, `{"call":1}`, body)

	_, body = send("k2")
	assert.JSONEq(t, `{"call":2}`, body)
	_, body = send("")
	assert.JSONEq(t, `{"call":3}`, body)
	assert.Equal(t, 3, calls)
}

func TestIdempotency_SkipsServerErrors(t *testing.T) {
	store := infra_cache.NewMemoryCache()
	defer store.Close() //nolint:errcheck
	calls := 0
	app := fiber.New()
	app.Post("/pay", Idempotency(store, time.Minute, nil), func(c *fiber.Ctx) error {
		calls++
		return c.SendStatus(fiber.StatusServiceUnavailable)
	})

	for range 2 {
		req := httptest.NewRequest(http.MethodPost, "/pay", nil)
		req.Header.Set(HeaderIdempotencyKey, "same")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
	}
	assert.Equal(t, 2, calls)
}

func TestIdempotency_ConcurrentDuplicatesShareOneExecution(t *testing.T) {
	store := infra_cache.NewMemoryCache()
	defer store.Close() //nolint:errcheck
	var calls atomic.Int32
	release := make(chan struct{})
	app := fiber.New()
	app.Post("/pay", Idempotency(store, time.Minute, nil), func(c *fiber.Ctx) error {
		calls.Add(1)
		<-release
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"ok": true})
	})

	const n = 5
	var wg sync.WaitGroup
	codes := make([]int, n)
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			req := httptest.NewRequest(http.MethodPost, "/pay", nil)
			req.Header.Set(HeaderIdempotencyKey, "race")
			resp, err := app.Test(req, -1)
			if err == nil {
				codes[i] = resp.StatusCode
			}
		}()
	}
	require.Eventually(t, func() bool { return calls.Load() >= 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
	for _, code := range codes {
		assert.Equal(t, fiber.StatusCreated, code)
	}
}
