// Package repository defines the contract of the ledger store: the
// authoritative mapping of users, accounts, and transactions. Implementations
// own all mutation and enforce the referential and balance invariants; no raw
// collection handles ever escape the store.
package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/onramptee/openbank/pkg/domain/account"
	"github.com/onramptee/openbank/pkg/domain/money"
	"github.com/onramptee/openbank/pkg/domain/user"
)

// Ledger is the operation set of the ledger store.
//
// Concurrency contract: each account's balance update plus transaction append
// is a single serialization point; operations on different accounts proceed
// independently. User-creation uniqueness checks are check-and-insert atomic.
type Ledger interface {
	// CreateUser inserts the user, enforcing email and wallet-address
	// uniqueness atomically. Fails with domain.DuplicateEmailError or
	// domain.DuplicateWalletError.
	CreateUser(ctx context.Context, u *user.User) error

	// GetUser returns a copy of the user or domain.NotFoundError.
	GetUser(ctx context.Context, id uuid.UUID) (*user.User, error)

	// CreateAccount inserts the account, appends its id to the owner's
	// account list, and initializes an empty transaction history, as one
	// atomic unit. Fails with domain.NotFoundError if the owner is unknown.
	CreateAccount(ctx context.Context, a *account.Account) error

	// GetAccount returns a copy of the account or domain.NotFoundError.
	GetAccount(ctx context.Context, id uuid.UUID) (*account.Account, error)

	// RecordDeposit atomically adds the amount to the account balance and
	// appends a deposit transaction whose BalanceAfter snapshots the new
	// balance. Concurrent deposits on the same account serialize; fails with
	// domain.NotFoundError or domain.InvalidAmountError.
	RecordDeposit(
		ctx context.Context,
		accountID uuid.UUID,
		amount money.Money,
		description string,
	) (*account.Transaction, error)

	// ListTransactions returns the account's history in application order,
	// or domain.NotFoundError for an unknown account.
	ListTransactions(ctx context.Context, accountID uuid.UUID) ([]account.Transaction, error)

	// ListAccountsForUser returns copies of the user's accounts in creation
	// order, or domain.NotFoundError for an unknown user.
	ListAccountsForUser(ctx context.Context, userID uuid.UUID) ([]*account.Account, error)
}
