// Package account defines the Account aggregate and its append-only
// transaction history entries.
package account

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/onramptee/openbank/pkg/currency"
	"github.com/onramptee/openbank/pkg/domain"
	"github.com/onramptee/openbank/pkg/domain/money"
)

var (
	// ErrUserIDRequired is returned when an account is built without an
	// owner.
	ErrUserIDRequired = errors.New("userID is required")
	// ErrUnsupportedCurrency is returned when the currency code is not
	// registered.
	ErrUnsupportedCurrency = errors.New("unsupported currency")
	// ErrCurrencyMismatch is returned when a transaction currency differs
	// from the account currency.
	ErrCurrencyMismatch = errors.New("currency mismatch")
)

// Kind is the account variant. Only deposit-tracking accounts exist today.
type Kind string

// KindDeposit is an account that tracks deposited funds.
const KindDeposit Kind = "deposit"

// Account represents a user's deposit-tracking account.
//
// Invariants:
//   - Exactly one owning user, set at creation, immutable.
//   - Balance is never negative and always equals the sum of the deposit
//     transactions recorded against the account.
type Account struct {
	ID        uuid.UUID   `json:"id"`
	UserID    uuid.UUID   `json:"user_id"`
	Kind      Kind        `json:"kind"`
	Balance   money.Money `json:"balance"`
	CreatedAt time.Time   `json:"created_at"`
	Active    bool        `json:"active"`
}

// Builder provides a fluent API for constructing Account instances.
type Builder struct {
	id       uuid.UUID
	userID   uuid.UUID
	currency currency.Code
	balance  int64
	created  time.Time
}

// New creates a Builder with a fresh id and the default currency.
func New() *Builder {
	return &Builder{
		id:       uuid.New(),
		currency: currency.DefaultCurrency,
		created:  time.Now().UTC(),
	}
}

// WithID sets the account id, for hydration in tests.
func (b *Builder) WithID(id uuid.UUID) *Builder {
	b.id = id
	return b
}

// WithUserID sets the owning user. Mandatory.
func (b *Builder) WithUserID(userID uuid.UUID) *Builder {
	b.userID = userID
	return b
}

// WithCurrency sets the account currency.
func (b *Builder) WithCurrency(code currency.Code) *Builder {
	b.currency = code
	return b
}

// WithBalance sets an initial balance in the smallest currency unit. Only for
// hydration and test setup.
func (b *Builder) WithBalance(balance int64) *Builder {
	b.balance = balance
	return b
}

// Build validates the invariants and returns the Account.
func (b *Builder) Build() (*Account, error) {
	if b.userID == uuid.Nil {
		return nil, ErrUserIDRequired
	}
	if !currency.IsValidFormat(string(b.currency)) || !currency.IsSupported(b.currency) {
		return nil, ErrUnsupportedCurrency
	}
	return &Account{
		ID:        b.id,
		UserID:    b.userID,
		Kind:      KindDeposit,
		Balance:   money.NewFromSmallestUnit(b.balance, b.currency),
		CreatedAt: b.created,
		Active:    true,
	}, nil
}

// Currency returns the account's currency code.
func (a *Account) Currency() currency.Code { return a.Balance.Currency() }

// ValidateDeposit checks that an amount can be deposited: it must be positive
// and in the account's currency.
func (a *Account) ValidateDeposit(amount money.Money) error {
	if !amount.IsPositive() {
		return &domain.InvalidAmountError{Amount: amount.AmountFloat()}
	}
	if !a.Balance.IsSameCurrency(amount) {
		return ErrCurrencyMismatch
	}
	return nil
}

// ApplyDeposit adds the amount to the balance and returns the new balance.
// Callers are responsible for serializing concurrent applications.
func (a *Account) ApplyDeposit(amount money.Money) (money.Money, error) {
	if err := a.ValidateDeposit(amount); err != nil {
		return money.Money{}, err
	}
	newBalance, err := a.Balance.Add(amount)
	if err != nil {
		return money.Money{}, err
	}
	a.Balance = newBalance
	return newBalance, nil
}

// Clone returns a copy of the account.
func (a *Account) Clone() *Account {
	cp := *a
	return &cp
}
