// Package testutils builds an in-memory API for handler tests.
package testutils

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	infra_cache "github.com/amirasaad/corebank/infra/cache"
	infra_eventbus "github.com/amirasaad/corebank/infra/eventbus"
	"github.com/amirasaad/corebank/infra/memory"
	"github.com/amirasaad/corebank/pkg/app"
	"github.com/amirasaad/corebank/pkg/config"
	"github.com/amirasaad/corebank/pkg/money"
	"github.com/amirasaad/corebank/pkg/service/settings"
	"github.com/amirasaad/corebank/webapi"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const JwtSecret = "test-secret"

// E2ETestSuite runs requests against a fresh in-memory application per test.
type E2ETestSuite struct {
	suite.Suite
	App   *app.App
	Fiber *fiber.App
	Bus   *infra_eventbus.MemoryEventBus
	cache *infra_cache.MemoryCache
}

// SetupTest builds a new application so tests never share balances.
func (s *E2ETestSuite) SetupTest() {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.Bus = infra_eventbus.NewWithMemory(logger)
	s.cache = infra_cache.NewMemoryCache()
	cfg := &config.App{
		Env:         "test",
		RateLimit:   &config.RateLimit{MaxRequests: 10000, Window: time.Minute},
		Auth:        &config.Auth{JwtSecret: JwtSecret},
		Idempotency: &config.Idempotency{TTL: time.Hour},
	}
	deps := &config.Deps{
		Uow:      memory.NewUoW(memory.NewStore()),
		EventBus: s.Bus,
		Cache:    s.cache,
		Logger:   logger,
		Config:   cfg,
	}
	a, err := app.New(deps)
	s.Require().NoError(err)
	s.App = a
	s.Fiber = webapi.SetupApp(a)
}

func (s *E2ETestSuite) TearDownTest() {
	_ = s.cache.Close()
}

// MakeRequest is a helper for making HTTP requests in tests
func (s *E2ETestSuite) MakeRequest(method, path, body, token string, headers ...string) *http.Response {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	resp, err := s.Fiber.Test(req, -1)
	s.Require().NoError(err)
	return resp
}

// Token mints a bearer token accepted by the settings endpoints.
func (s *E2ETestSuite) Token() string {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "operator",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(JwtSecret))
	s.Require().NoError(err)
	return signed
}

// CreateAccount registers a customer and opens a USD account holding balance.
func (s *E2ETestSuite) CreateAccount(balance string) uuid.UUID {
	ctx := s.T().Context()
	c, err := s.App.CustomerService.Register(ctx, "Test Customer", fmt.Sprintf("%s@example.com", uuid.NewString()[:8]))
	s.Require().NoError(err)
	acc, err := s.App.AccountService.Open(ctx, c.ID, "USD")
	s.Require().NoError(err)
	amount := money.MustParse(balance)
	if amount.IsPositive() {
		// fund through the engine so the balance has a matching transaction
		s.WithoutRisk(func() {
			_, err = s.App.TransactionService.Deposit(ctx, acc.ID, amount)
			s.Require().NoError(err)
		})
	}
	s.Bus.ClearPublished()
	return acc.ID
}

// WithoutRisk runs fn with every risk rule disabled and restores them after.
func (s *E2ETestSuite) WithoutRisk(fn func()) {
	states := s.App.SettingsService.Rules()
	for _, st := range states {
		s.Require().NoError(s.App.SettingsService.SetRuleEnabled(string(st.Rule.Kind), false))
	}
	defer func() {
		for _, st := range states {
			s.Require().NoError(s.App.SettingsService.SetRuleEnabled(string(st.Rule.Kind), st.Enabled))
		}
	}()
	fn()
}

// SetFlatFee switches the fee policy to a flat fee.
func (s *E2ETestSuite) SetFlatFee(amount string) {
	flat := decimal.RequireFromString(amount)
	_, err := s.App.SettingsService.SetFeePolicy("flat", settings.FeeParams{Flat: &flat})
	s.Require().NoError(err)
}

// DecodeData reads a Response envelope and returns its data field as T.
func DecodeData[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close() //nolint:errcheck
	var env struct {
		Status  int    `json:"status"`
		Message string `json:"message"`
		Data    T      `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return env.Data
}

// Problem is the decoded problem+json body.
type Problem struct {
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail"`
}

// DecodeProblem reads a problem+json body.
func DecodeProblem(t *testing.T, resp *http.Response) Problem {
	t.Helper()
	defer resp.Body.Close() //nolint:errcheck
	var p Problem
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&p))
	return p
}
