package account

import (
	"strconv"

	accountsvc "github.com/amirasaad/corebank/pkg/service/account"
	txsvc "github.com/amirasaad/corebank/pkg/service/transaction"
	"github.com/amirasaad/corebank/webapi/common"
	transactionweb "github.com/amirasaad/corebank/webapi/transaction"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Routes registers HTTP routes for account lifecycle and history.
//
// Routes:
//   - POST  /accounts                  : Open an account for an existing customer.
//   - GET   /accounts/:id              : Retrieve an account with its balance.
//   - PATCH /accounts/:id/status       : Freeze, unfreeze or close an account.
//   - GET   /accounts/:id/transactions : List the account's transactions, newest first.
func Routes(app *fiber.App, accountSvc *accountsvc.Service, txSvc *txsvc.Service) {
	app.Post("/accounts", OpenAccount(accountSvc))
	app.Get("/accounts/:id", GetAccount(accountSvc))
	app.Patch("/accounts/:id/status", ChangeStatus(accountSvc))
	app.Get("/accounts/:id/transactions", GetTransactions(txSvc))
}

// OpenAccount returns a Fiber handler for opening an account.
// @Summary Open a new account
// @Description Opens an ACTIVE, zero-balance account for an existing customer. Currency defaults to USD.
// @Tags accounts
// @Accept json
// @Produce json
// @Param request body OpenAccountRequest true "Account details"
// @Success 201 {object} common.Response{data=AccountDTO} "Account created"
// @Failure 400 {object} common.ProblemDetails "Invalid request"
// @Failure 404 {object} common.ProblemDetails "Customer not found"
// @Failure 500 {object} common.ProblemDetails "Internal server error"
// @Router /accounts [post]
func OpenAccount(svc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[OpenAccountRequest](c)
		if input == nil {
			return err
		}
		a, err := svc.Open(c.UserContext(), uuid.MustParse(input.CustomerID), input.Currency)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to open account", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Account created", ToAccountDTO(a))
	}
}

// GetAccount returns a Fiber handler for reading an account.
// @Summary Get an account
// @Tags accounts
// @Produce json
// @Param id path string true "Account ID"
// @Success 200 {object} common.Response{data=AccountDTO} "Account fetched"
// @Failure 400 {object} common.ProblemDetails "Invalid account ID"
// @Failure 404 {object} common.ProblemDetails "Account not found"
// @Router /accounts/{id} [get]
func GetAccount(svc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid account ID", err, "Account ID must be a valid UUID", fiber.StatusBadRequest)
		}
		a, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to get account", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Account fetched", ToAccountDTO(a))
	}
}

// ChangeStatus returns a Fiber handler for moving an account through its lifecycle.
// @Summary Change account status
// @Description ACTIVE and FROZEN switch freely; CLOSED is terminal.
// @Tags accounts
// @Accept json
// @Produce json
// @Param id path string true "Account ID"
// @Param request body ChangeStatusRequest true "Target status"
// @Success 200 {object} common.Response{data=AccountDTO} "Status changed"
// @Failure 400 {object} common.ProblemDetails "Invalid request"
// @Failure 404 {object} common.ProblemDetails "Account not found"
// @Failure 409 {object} common.ProblemDetails "Transition not allowed"
// @Router /accounts/{id}/status [patch]
func ChangeStatus(svc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid account ID", err, "Account ID must be a valid UUID", fiber.StatusBadRequest)
		}
		input, err := common.BindAndValidate[ChangeStatusRequest](c)
		if input == nil {
			return err
		}
		a, err := svc.ChangeStatus(c.UserContext(), id, input.Status)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to change account status", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Status changed", ToAccountDTO(a))
	}
}

// GetTransactions returns a Fiber handler for paging through an account's transactions.
// @Summary List account transactions
// @Description Includes transfers the account received. limit defaults to 10 and is capped at 100.
// @Tags accounts
// @Produce json
// @Param id path string true "Account ID"
// @Param limit query int false "Page size"
// @Param offset query int false "Rows to skip"
// @Success 200 {object} common.Response{data=[]transaction.TransactionDTO} "Transactions fetched"
// @Failure 400 {object} common.ProblemDetails "Invalid request"
// @Failure 404 {object} common.ProblemDetails "Account not found"
// @Router /accounts/{id}/transactions [get]
func GetTransactions(svc *txsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid account ID", err, "Account ID must be a valid UUID", fiber.StatusBadRequest)
		}
		limit, err := queryInt(c, "limit")
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid limit", err, fiber.StatusBadRequest)
		}
		offset, err := queryInt(c, "offset")
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid offset", err, fiber.StatusBadRequest)
		}
		txs, err := svc.ListTransactions(c.UserContext(), id, limit, offset)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to list transactions", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Transactions fetched", transactionweb.ToTransactionDTOs(txs))
	}
}

func queryInt(c *fiber.Ctx, name string) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}
