// Package user defines the User entity of the ledger.
package user

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/onramptee/openbank/pkg/domain"
)

// ErrEmailRequired is returned when a user is created without an email.
var ErrEmailRequired = errors.New("email cannot be empty")

// ErrNameRequired is returned when a user is created without a display name.
var ErrNameRequired = errors.New("name cannot be empty")

// User represents a registered user. AccountIDs is append-only: a user gains
// accounts over time and never loses one.
type User struct {
	ID            uuid.UUID   `json:"id"`
	Email         string      `json:"email"`
	Name          string      `json:"name"`
	WalletAddress *string     `json:"wallet_address,omitempty"`
	CreatedAt     time.Time   `json:"created_at"`
	AccountIDs    []uuid.UUID `json:"accounts"`
}

// New creates a User with a fresh id. The wallet address, when present, must
// be a well-formed external address; uniqueness of email and wallet is
// enforced by the ledger store, not here.
func New(email, name string, walletAddress *string) (*User, error) {
	if email == "" {
		return nil, ErrEmailRequired
	}
	if name == "" {
		return nil, ErrNameRequired
	}
	if walletAddress != nil && !domain.IsValidWalletAddress(*walletAddress) {
		return nil, &domain.InvalidAddressError{Address: *walletAddress}
	}
	return &User{
		ID:            uuid.New(),
		Email:         email,
		Name:          name,
		WalletAddress: walletAddress,
		CreatedAt:     time.Now().UTC(),
		AccountIDs:    []uuid.UUID{},
	}, nil
}

// Clone returns a deep copy, so callers never share the stored AccountIDs
// slice.
func (u *User) Clone() *User {
	cp := *u
	cp.AccountIDs = append([]uuid.UUID(nil), u.AccountIDs...)
	if u.WalletAddress != nil {
		addr := *u.WalletAddress
		cp.WalletAddress = &addr
	}
	return &cp
}
