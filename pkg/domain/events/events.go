// Package events defines the domain events published by the ledger services.
package events

import (
	"github.com/google/uuid"

	"github.com/onramptee/openbank/pkg/currency"
)

// Event is the marker interface for all domain events.
type Event interface {
	Type() string
}

// UserRegistered is published after a user is created.
type UserRegistered struct {
	UserID uuid.UUID
	Email  string
}

// Type implements Event.
func (UserRegistered) Type() string { return "user.registered" }

// AccountOpened is published after a deposit-tracking account is created.
type AccountOpened struct {
	AccountID uuid.UUID
	UserID    uuid.UUID
	Currency  currency.Code
}

// Type implements Event.
func (AccountOpened) Type() string { return "account.opened" }

// DepositRecorded is published after a deposit transaction is appended to the
// ledger.
type DepositRecorded struct {
	TransactionID uuid.UUID
	AccountID     uuid.UUID
	UserID        uuid.UUID
	Amount        float64
	Currency      currency.Code
	BalanceAfter  float64
}

// Type implements Event.
func (DepositRecorded) Type() string { return "transaction.deposit_recorded" }

// WithdrawalSettled is published after the external settlement system
// confirmed an outflow. No local ledger entry exists for it.
type WithdrawalSettled struct {
	UserID      uuid.UUID
	Destination string
	MinorUnits  int64
}

// Type implements Event.
func (WithdrawalSettled) Type() string { return "withdrawal.settled" }
