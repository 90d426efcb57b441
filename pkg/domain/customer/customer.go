package customer

import (
	"strings"
	"time"

	"github.com/amirasaad/corebank/pkg/domain"
	"github.com/google/uuid"
)

// Status of a customer record.
type Status string

const (
	StatusActive   Status = "ACTIVE"
	StatusInactive Status = "INACTIVE"
)

// Customer owns one or more accounts.
type Customer struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"created"`
	UpdatedAt time.Time `json:"updated"`
}

// NormalizeEmail trims and lowercases an email address and checks it has
// a local part and a dotted domain.
func NormalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	at := strings.LastIndex(email, "@")
	if at <= 0 || at == len(email)-1 {
		return "", domain.Validationf("invalid email format")
	}
	host := email[at+1:]
	if !strings.Contains(host, ".") || strings.HasPrefix(host, ".") || strings.HasSuffix(host, ".") {
		return "", domain.Validationf("invalid email format")
	}
	return email, nil
}

// New creates an ACTIVE customer with a trimmed name and normalized email.
func New(name, email string) (*Customer, error) {
	name = strings.TrimSpace(name)
	if len([]rune(name)) < 2 {
		return nil, domain.Validationf("name must have at least 2 characters")
	}
	email, err := NormalizeEmail(email)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	return &Customer{
		ID:        uuid.New(),
		Name:      name,
		Email:     email,
		Status:    StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// NewFromData rebuilds a Customer from storage.
func NewFromData(id uuid.UUID, name, email string, status Status, created, updated time.Time) *Customer {
	return &Customer{
		ID:        id,
		Name:      name,
		Email:     email,
		Status:    status,
		CreatedAt: created,
		UpdatedAt: updated,
	}
}
