package customer

import (
	"time"

	domaincustomer "github.com/amirasaad/corebank/pkg/domain/customer"
	customersvc "github.com/amirasaad/corebank/pkg/service/customer"
	"github.com/amirasaad/corebank/webapi/common"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

//revive:disable

// RegisterRequest represents the request body for registering a customer.
type RegisterRequest struct {
	Name  string `json:"name" example:"Ada Lovelace" validate:"required,min=2,max=255"`
	Email string `json:"email" example:"ada@example.com" validate:"required,email,max=255"`
}

// CustomerDTO is the API response representation of a customer.
type CustomerDTO struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

func toDTO(c *domaincustomer.Customer) *CustomerDTO {
	return &CustomerDTO{
		ID:        c.ID.String(),
		Name:      c.Name,
		Email:     c.Email,
		Status:    string(c.Status),
		CreatedAt: c.CreatedAt,
	}
}

// Routes registers the customer endpoints.
//
// Routes:
//   - POST /customers     : Register a customer.
//   - GET  /customers/:id : Retrieve a customer.
func Routes(app *fiber.App, svc *customersvc.Service) {
	app.Post("/customers", Register(svc))
	app.Get("/customers/:id", GetCustomer(svc))
}

// Register returns a Fiber handler for registering a customer.
// @Summary Register a customer
// @Description Emails are normalized to lower case and must be unique.
// @Tags customers
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Customer details"
// @Success 201 {object} common.Response{data=CustomerDTO} "Customer registered"
// @Failure 400 {object} common.ProblemDetails "Invalid request"
// @Failure 409 {object} common.ProblemDetails "Email already registered"
// @Router /customers [post]
func Register(svc *customersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[RegisterRequest](c)
		if input == nil {
			return err
		}
		registered, err := svc.Register(c.UserContext(), input.Name, input.Email)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to register customer", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Customer registered", toDTO(registered))
	}
}

// GetCustomer returns a Fiber handler for reading a customer.
// @Summary Get a customer
// @Tags customers
// @Produce json
// @Param id path string true "Customer ID"
// @Success 200 {object} common.Response{data=CustomerDTO} "Customer fetched"
// @Failure 400 {object} common.ProblemDetails "Invalid customer ID"
// @Failure 404 {object} common.ProblemDetails "Customer not found"
// @Router /customers/{id} [get]
func GetCustomer(svc *customersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid customer ID", err, "Customer ID must be a valid UUID", fiber.StatusBadRequest)
		}
		found, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to get customer", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Customer fetched", toDTO(found))
	}
}
