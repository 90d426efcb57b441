package account

import (
	"time"

	"github.com/amirasaad/corebank/pkg/domain/account"
)

//revive:disable

// OpenAccountRequest represents the request body for opening a new account.
type OpenAccountRequest struct {
	CustomerID string `json:"customer_id" validate:"required,uuid"`
	Currency   string `json:"currency" example:"USD" validate:"omitempty,len=3,alpha"`
}

// ChangeStatusRequest represents the request body for freezing, unfreezing or closing an account.
type ChangeStatusRequest struct {
	Status string `json:"status" example:"FROZEN" validate:"required,oneof=ACTIVE FROZEN CLOSED active frozen closed"`
}

// AccountDTO is the API response representation of an account.
type AccountDTO struct {
	ID         string    `json:"id"`
	CustomerID string    `json:"customer_id"`
	Currency   string    `json:"currency"`
	Balance    string    `json:"balance"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// ToAccountDTO maps a domain account to its API representation.
func ToAccountDTO(a *account.Account) *AccountDTO {
	if a == nil {
		return nil
	}
	return &AccountDTO{
		ID:         a.ID.String(),
		CustomerID: a.CustomerID.String(),
		Currency:   string(a.Currency),
		Balance:    a.Balance().StringFixed(a.Currency.Decimals()),
		Status:     string(a.Status),
		CreatedAt:  a.CreatedAt,
		UpdatedAt:  a.UpdatedAt,
	}
}
