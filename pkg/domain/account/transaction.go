package account

import (
	"time"

	"github.com/google/uuid"

	"github.com/onramptee/openbank/pkg/domain/money"
)

// TransactionKind is the type of a ledger entry.
type TransactionKind string

const (
	// TransactionDeposit records funds entering an account.
	TransactionDeposit TransactionKind = "deposit"
	// TransactionTransfer records funds moving between accounts.
	TransactionTransfer TransactionKind = "transfer"
)

// Transaction is an append-only ledger entry. It is immutable once created;
// BalanceAfter is the point-in-time balance immediately after this entry was
// applied and is written atomically with the balance update.
type Transaction struct {
	ID           uuid.UUID       `json:"id"`
	UserID       uuid.UUID       `json:"user_id"`
	AccountID    uuid.UUID       `json:"account_id"`
	Kind         TransactionKind `json:"kind"`
	Amount       money.Money     `json:"amount"`
	Description  string          `json:"description"`
	Timestamp    time.Time       `json:"timestamp"`
	BalanceAfter money.Money     `json:"balance_after"`
}

// NewDeposit builds a deposit ledger entry for the given account snapshot.
// The description is stored verbatim; defaulting is the caller's policy.
func NewDeposit(a *Account, amount, balanceAfter money.Money, description string) Transaction {
	return Transaction{
		ID:           uuid.New(),
		UserID:       a.UserID,
		AccountID:    a.ID,
		Kind:         TransactionDeposit,
		Amount:       amount,
		Description:  description,
		Timestamp:    time.Now().UTC(),
		BalanceAfter: balanceAfter,
	}
}
