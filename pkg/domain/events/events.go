// Package events holds the domain events published after a transaction
// reaches a terminal status.
package events

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Event is anything that can be published on the event bus.
type Event interface {
	Type() string
}

const (
	TransactionApprovedType = "transaction.approved"
	TransactionRejectedType = "transaction.rejected"
)

// TransactionEvent is the payload shared by the terminal transaction events.
type TransactionEvent struct {
	TransactionID   uuid.UUID       `json:"transaction_id"`
	TransactionType string          `json:"transaction_type"`
	AccountID       uuid.UUID       `json:"account_id"`
	TargetAccountID *uuid.UUID      `json:"target_account_id,omitempty"`
	Amount          decimal.Decimal `json:"amount"`
	Fee             decimal.Decimal `json:"fee"`
	Currency        string          `json:"currency"`
	OccurredAt      time.Time       `json:"occurred_at"`
}

// TransactionApproved is emitted once balances were moved and the approval committed.
type TransactionApproved struct {
	TransactionEvent
}

func (TransactionApproved) Type() string { return TransactionApprovedType }

// TransactionRejected is emitted once a transaction was persisted as REJECTED.
type TransactionRejected struct {
	TransactionEvent
	Reason string `json:"reason"`
}

func (TransactionRejected) Type() string { return TransactionRejectedType }

// EventTypes maps an event type name to a factory used when decoding
// envelopes read back from a broker.
var EventTypes = map[string]func() Event{
	TransactionApprovedType: func() Event { return &TransactionApproved{} },
	TransactionRejectedType: func() Event { return &TransactionRejected{} },
}
