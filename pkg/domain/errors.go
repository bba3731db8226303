// Package domain defines the error taxonomy shared by the ledger's domain
// packages. Every error kind carries structured fields so callers can render
// precise messages without re-deriving context, and each typed error matches
// its sentinel through errors.Is.
package domain

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	// ErrNotFound is matched by any NotFoundError.
	ErrNotFound = errors.New("not found")
	// ErrDuplicateEmail is matched when a registration reuses an email.
	ErrDuplicateEmail = errors.New("email already registered")
	// ErrDuplicateWallet is matched when a registration reuses a wallet
	// address.
	ErrDuplicateWallet = errors.New("wallet address already registered")
	// ErrInvalidAmount is matched when a transaction amount is not positive
	// or cannot be represented exactly.
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrNoWalletAddress is matched when a withdrawal is requested for a user
	// without a settlement address.
	ErrNoWalletAddress = errors.New("user has no wallet address")
	// ErrInvalidAddress is matched when an external address is malformed.
	ErrInvalidAddress = errors.New("invalid wallet address")
	// ErrSettlementUnavailable is matched when the external settlement system
	// is unreachable or errored.
	ErrSettlementUnavailable = errors.New("settlement system unavailable")
	// ErrSettlementRejected is matched when the external settlement system
	// explicitly refused the operation.
	ErrSettlementRejected = errors.New("settlement rejected")
	// ErrSettlementUncertain is matched when the outcome of an external call
	// could not be determined. Callers must re-query the external balance
	// instead of retrying the send.
	ErrSettlementUncertain = errors.New("settlement outcome uncertain")
)

// Entity names used in NotFoundError.
const (
	EntityUser    = "user"
	EntityAccount = "account"
)

// NotFoundError reports that a referenced user or account is absent.
type NotFoundError struct {
	Entity string
	ID     uuid.UUID
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Entity, e.ID)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// NewUserNotFound builds a NotFoundError for a user id.
func NewUserNotFound(id uuid.UUID) *NotFoundError {
	return &NotFoundError{Entity: EntityUser, ID: id}
}

// NewAccountNotFound builds a NotFoundError for an account id.
func NewAccountNotFound(id uuid.UUID) *NotFoundError {
	return &NotFoundError{Entity: EntityAccount, ID: id}
}

// DuplicateEmailError reports an email uniqueness violation at registration.
type DuplicateEmailError struct {
	Email string
}

func (e *DuplicateEmailError) Error() string {
	return fmt.Sprintf("email already registered: %s", e.Email)
}

func (e *DuplicateEmailError) Is(target error) bool { return target == ErrDuplicateEmail }

// DuplicateWalletError reports a wallet-address uniqueness violation at
// registration.
type DuplicateWalletError struct {
	Address string
}

func (e *DuplicateWalletError) Error() string {
	return fmt.Sprintf("wallet address already registered: %s", e.Address)
}

func (e *DuplicateWalletError) Is(target error) bool { return target == ErrDuplicateWallet }

// InvalidAmountError reports a non-positive or unrepresentable amount.
type InvalidAmountError struct {
	Amount float64
}

func (e *InvalidAmountError) Error() string {
	return fmt.Sprintf("invalid amount: %v, amount must be positive", e.Amount)
}

func (e *InvalidAmountError) Is(target error) bool { return target == ErrInvalidAmount }

// NoWalletAddressError reports a withdrawal attempt for a user lacking a
// settlement address.
type NoWalletAddressError struct {
	UserID uuid.UUID
}

func (e *NoWalletAddressError) Error() string {
	return fmt.Sprintf("user %s has no wallet address", e.UserID)
}

func (e *NoWalletAddressError) Is(target error) bool { return target == ErrNoWalletAddress }

// InvalidAddressError reports a malformed external address.
type InvalidAddressError struct {
	Address string
}

func (e *InvalidAddressError) Error() string {
	return fmt.Sprintf("invalid wallet address: %s", e.Address)
}

func (e *InvalidAddressError) Is(target error) bool { return target == ErrInvalidAddress }
