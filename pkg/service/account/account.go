// Package account provides business logic for account and transaction
// operations.
package account

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/onramptee/openbank/pkg/currency"
	"github.com/onramptee/openbank/pkg/domain/account"
	"github.com/onramptee/openbank/pkg/domain/events"
	"github.com/onramptee/openbank/pkg/domain/money"
	"github.com/onramptee/openbank/pkg/eventbus"
	"github.com/onramptee/openbank/pkg/repository"
)

// DefaultDepositDescription is used when a deposit request carries no
// description of its own.
const DefaultDepositDescription = "Deposit"

// Service provides business logic for account operations.
type Service struct {
	ledger repository.Ledger
	bus    eventbus.Bus
	logger *slog.Logger
}

// New creates a new Service.
func New(
	ledger repository.Ledger,
	bus eventbus.Bus,
	logger *slog.Logger,
) *Service {
	return &Service{
		ledger: ledger,
		bus:    bus,
		logger: logger,
	}
}

// CreateAccount opens a new deposit account for the given user with a zero
// starting balance. An empty currency code falls back to the default.
func (s *Service) CreateAccount(
	ctx context.Context,
	userID uuid.UUID,
	currencyCode currency.Code,
) (*account.Account, error) {
	logger := s.logger.With("handler", "CreateAccount", "user_id", userID)

	if currencyCode == "" {
		currencyCode = currency.Code(currency.DefaultCurrency)
	}
	acct, err := account.New().
		WithUserID(userID).
		WithCurrency(currencyCode).
		Build()
	if err != nil {
		logger.Warn("account validation failed", "error", err)
		return nil, err
	}
	if err := s.ledger.CreateAccount(ctx, acct); err != nil {
		logger.Warn("account creation failed", "error", err)
		return nil, err
	}

	if err := s.bus.Publish(ctx, events.AccountOpened{
		AccountID: acct.ID,
		UserID:    acct.UserID,
		Currency:  acct.Currency(),
	}); err != nil {
		logger.Error("failed to publish account opened event", "error", err)
	}

	logger.Info("account created", "account_id", acct.ID)
	return acct, nil
}

// GetAccount returns the account with the given ID.
func (s *Service) GetAccount(
	ctx context.Context,
	accountID uuid.UUID,
) (*account.Account, error) {
	return s.ledger.GetAccount(ctx, accountID)
}

// Deposit credits the given amount to the account and records the matching
// transaction. The amount is interpreted in the account's currency.
func (s *Service) Deposit(
	ctx context.Context,
	accountID uuid.UUID,
	amount float64,
	description string,
) (*account.Transaction, error) {
	logger := s.logger.With("handler", "Deposit", "account_id", accountID)

	acct, err := s.ledger.GetAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	m, err := money.New(amount, acct.Currency())
	if err != nil {
		logger.Warn("invalid deposit amount", "amount", amount, "error", err)
		return nil, err
	}
	if description == "" {
		description = DefaultDepositDescription
	}

	tx, err := s.ledger.RecordDeposit(ctx, accountID, m, description)
	if err != nil {
		logger.Warn("deposit failed", "error", err)
		return nil, err
	}

	if err := s.bus.Publish(ctx, events.DepositRecorded{
		TransactionID: tx.ID,
		AccountID:     tx.AccountID,
		UserID:        tx.UserID,
		Amount:        tx.Amount.AmountFloat(),
		Currency:      tx.Amount.Currency(),
		BalanceAfter:  tx.BalanceAfter.AmountFloat(),
	}); err != nil {
		logger.Error("failed to publish deposit event", "error", err)
	}

	logger.Info("deposit recorded",
		"transaction_id", tx.ID,
		"amount", tx.Amount.String(),
		"balance_after", tx.BalanceAfter.String(),
	)
	return tx, nil
}

// ListTransactions returns the account's transaction history in the order the
// transactions were recorded.
func (s *Service) ListTransactions(
	ctx context.Context,
	accountID uuid.UUID,
) ([]account.Transaction, error) {
	return s.ledger.ListTransactions(ctx, accountID)
}
