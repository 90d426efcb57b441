package transaction

import (
	"time"

	"github.com/amirasaad/corebank/pkg/cache"
	txsvc "github.com/amirasaad/corebank/pkg/service/transaction"
	"github.com/amirasaad/corebank/webapi/common"
	"github.com/amirasaad/corebank/webapi/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Routes registers the money movement endpoints. Each honours an
// Idempotency-Key header.
//
// Routes:
//   - POST /transactions/deposit  : Credit an account.
//   - POST /transactions/withdraw : Debit an account.
//   - POST /transactions/transfer : Move funds between two accounts.
func Routes(app *fiber.App, svc *txsvc.Service, idempotency cache.IdempotencyCache, ttl time.Duration) {
	group := app.Group("/transactions", middleware.Idempotency(idempotency, ttl, nil))
	group.Post("/deposit", Deposit(svc))
	group.Post("/withdraw", Withdraw(svc))
	group.Post("/transfer", Transfer(svc))
}

// Deposit returns a Fiber handler for depositing funds into an account.
// @Summary Deposit funds into an account
// @Description Credits the account with the amount net of the active fee. Risk rules run before any balance change.
// @Tags transactions
// @Accept json
// @Produce json
// @Param Idempotency-Key header string false "Replays the first response for repeated keys"
// @Param request body DepositRequest true "Deposit details"
// @Success 201 {object} common.Response{data=TransactionDTO} "Deposit approved"
// @Failure 400 {object} common.ProblemDetails "Invalid request"
// @Failure 403 {object} common.ProblemDetails "Account frozen or closed"
// @Failure 404 {object} common.ProblemDetails "Account not found"
// @Failure 422 {object} common.ProblemDetails "Rejected by a risk rule"
// @Failure 500 {object} common.ProblemDetails "Internal server error"
// @Router /transactions/deposit [post]
func Deposit(svc *txsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[DepositRequest](c)
		if input == nil {
			return err
		}
		tx, err := svc.Deposit(c.UserContext(), uuid.MustParse(input.AccountID), input.Amount)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Deposit failed", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Deposit approved", ToTransactionDTO(tx))
	}
}

// Withdraw returns a Fiber handler for withdrawing funds from an account.
// @Summary Withdraw funds from an account
// @Description Debits the amount plus the active fee. Fails when the balance cannot cover both.
// @Tags transactions
// @Accept json
// @Produce json
// @Param Idempotency-Key header string false "Replays the first response for repeated keys"
// @Param request body WithdrawRequest true "Withdrawal details"
// @Success 201 {object} common.Response{data=TransactionDTO} "Withdrawal approved"
// @Failure 400 {object} common.ProblemDetails "Invalid request"
// @Failure 403 {object} common.ProblemDetails "Account frozen or closed"
// @Failure 404 {object} common.ProblemDetails "Account not found"
// @Failure 422 {object} common.ProblemDetails "Insufficient funds or rejected by a risk rule"
// @Failure 500 {object} common.ProblemDetails "Internal server error"
// @Router /transactions/withdraw [post]
func Withdraw(svc *txsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[WithdrawRequest](c)
		if input == nil {
			return err
		}
		tx, err := svc.Withdraw(c.UserContext(), uuid.MustParse(input.AccountID), input.Amount)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Withdrawal failed", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Withdrawal approved", ToTransactionDTO(tx))
	}
}

// Transfer returns a Fiber handler for moving funds between two accounts of the same currency.
// @Summary Transfer funds between accounts
// @Description Debits amount plus fee from the source and credits amount to the target in one storage transaction.
// @Tags transactions
// @Accept json
// @Produce json
// @Param Idempotency-Key header string false "Replays the first response for repeated keys"
// @Param request body TransferRequest true "Transfer details"
// @Success 201 {object} common.Response{data=TransactionDTO} "Transfer approved"
// @Failure 400 {object} common.ProblemDetails "Invalid request"
// @Failure 403 {object} common.ProblemDetails "Account frozen or closed"
// @Failure 404 {object} common.ProblemDetails "Account not found"
// @Failure 422 {object} common.ProblemDetails "Insufficient funds or rejected by a risk rule"
// @Failure 500 {object} common.ProblemDetails "Internal server error"
// @Router /transactions/transfer [post]
func Transfer(svc *txsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[TransferRequest](c)
		if input == nil {
			return err
		}
		tx, err := svc.Transfer(
			c.UserContext(),
			uuid.MustParse(input.FromAccountID),
			uuid.MustParse(input.ToAccountID),
			input.Amount,
		)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Transfer failed", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Transfer approved", ToTransactionDTO(tx))
	}
}
