package account_test

import (
	"fmt"
	"testing"

	"github.com/amirasaad/corebank/pkg/money"
	"github.com/amirasaad/corebank/webapi/account"
	"github.com/amirasaad/corebank/webapi/testutils"
	"github.com/amirasaad/corebank/webapi/transaction"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type AccountTestSuite struct {
	testutils.E2ETestSuite
}

func TestAccountTestSuite(t *testing.T) {
	suite.Run(t, new(AccountTestSuite))
}

func (s *AccountTestSuite) TestOpenAccount() {
	c, err := s.App.CustomerService.Register(s.T().Context(), "Grace Hopper", "grace@example.com")
	s.Require().NoError(err)

	resp := s.MakeRequest(fiber.MethodPost, "/accounts", fmt.Sprintf(`{"customer_id":%q}`, c.ID), "")
	s.Require().Equal(fiber.StatusCreated, resp.StatusCode)
	acc := testutils.DecodeData[account.AccountDTO](s.T(), resp)
	s.Equal("USD", acc.Currency)
	s.Equal("0.00", acc.Balance)
	s.Equal("ACTIVE", acc.Status)

	resp = s.MakeRequest(fiber.MethodPost, "/accounts", fmt.Sprintf(`{"customer_id":%q,"currency":"JPY"}`, c.ID), "")
	s.Require().Equal(fiber.StatusCreated, resp.StatusCode)
	s.Equal("0", testutils.DecodeData[account.AccountDTO](s.T(), resp).Balance)

	resp = s.MakeRequest(fiber.MethodPost, "/accounts", fmt.Sprintf(`{"customer_id":%q}`, uuid.New()), "")
	s.Equal(fiber.StatusNotFound, resp.StatusCode)

	resp = s.MakeRequest(fiber.MethodPost, "/accounts", `{"customer_id":"nope"}`, "")
	s.Equal(fiber.StatusBadRequest, resp.StatusCode)
}

func (s *AccountTestSuite) TestGetAccount() {
	id := s.CreateAccount("42.5")

	resp := s.MakeRequest(fiber.MethodGet, "/accounts/"+id.String(), "", "")
	s.Require().Equal(fiber.StatusOK, resp.StatusCode)
	s.Equal("42.50", testutils.DecodeData[account.AccountDTO](s.T(), resp).Balance)

	resp = s.MakeRequest(fiber.MethodGet, "/accounts/"+uuid.NewString(), "", "")
	s.Equal(fiber.StatusNotFound, resp.StatusCode)

	resp = s.MakeRequest(fiber.MethodGet, "/accounts/123", "", "")
	s.Equal(fiber.StatusBadRequest, resp.StatusCode)
}

func (s *AccountTestSuite) TestChangeStatus() {
	id := s.CreateAccount("0")
	path := "/accounts/" + id.String() + "/status"

	resp := s.MakeRequest(fiber.MethodPatch, path, `{"status":"FROZEN"}`, "")
	s.Require().Equal(fiber.StatusOK, resp.StatusCode)
	s.Equal("FROZEN", testutils.DecodeData[account.AccountDTO](s.T(), resp).Status)

	resp = s.MakeRequest(fiber.MethodPatch, path, `{"status":"active"}`, "")
	s.Require().Equal(fiber.StatusOK, resp.StatusCode)

	resp = s.MakeRequest(fiber.MethodPatch, path, `{"status":"CLOSED"}`, "")
	s.Require().Equal(fiber.StatusOK, resp.StatusCode)

	resp = s.MakeRequest(fiber.MethodPatch, path, `{"status":"ACTIVE"}`, "")
	s.Equal(fiber.StatusConflict, resp.StatusCode)

	resp = s.MakeRequest(fiber.MethodPatch, path, `{"status":"DORMANT"}`, "")
	s.Equal(fiber.StatusBadRequest, resp.StatusCode)
}

func (s *AccountTestSuite) TestGetTransactionsPaging() {
	id := s.CreateAccount("0")
	s.WithoutRisk(func() {
		for i := 1; i <= 3; i++ {
			_, err := s.App.TransactionService.Deposit(s.T().Context(), id, money.MustParse(fmt.Sprint(i)))
			s.Require().NoError(err)
		}
	})
	base := "/accounts/" + id.String() + "/transactions"

	resp := s.MakeRequest(fiber.MethodGet, base, "", "")
	s.Require().Equal(fiber.StatusOK, resp.StatusCode)
	all := testutils.DecodeData[[]transaction.TransactionDTO](s.T(), resp)
	s.Len(all, 3)

	resp = s.MakeRequest(fiber.MethodGet, base+"?limit=2&offset=2", "", "")
	s.Require().Equal(fiber.StatusOK, resp.StatusCode)
	page := testutils.DecodeData[[]transaction.TransactionDTO](s.T(), resp)
	s.Require().Len(page, 1)
	s.Equal(all[2].ID, page[0].ID)

	resp = s.MakeRequest(fiber.MethodGet, base+"?limit=abc", "", "")
	s.Equal(fiber.StatusBadRequest, resp.StatusCode)

	resp = s.MakeRequest(fiber.MethodGet, "/accounts/"+uuid.NewString()+"/transactions", "", "")
	s.Equal(fiber.StatusNotFound, resp.StatusCode)
}
