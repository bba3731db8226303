// Package user provides business logic for user registration and lookup.
package user

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/onramptee/openbank/pkg/domain/account"
	"github.com/onramptee/openbank/pkg/domain/events"
	"github.com/onramptee/openbank/pkg/domain/user"
	"github.com/onramptee/openbank/pkg/eventbus"
	"github.com/onramptee/openbank/pkg/provider/settlement"
	"github.com/onramptee/openbank/pkg/repository"
)

// Service provides business logic for user operations.
type Service struct {
	ledger     repository.Ledger
	settlement settlement.Client
	bus        eventbus.Bus
	logger     *slog.Logger
}

// New creates a new Service.
func New(
	ledger repository.Ledger,
	settlementClient settlement.Client,
	bus eventbus.Bus,
	logger *slog.Logger,
) *Service {
	return &Service{
		ledger:     ledger,
		settlement: settlementClient,
		bus:        bus,
		logger:     logger,
	}
}

// CreateUser registers a new user. Email and wallet address must be unique
// across all users; the wallet address, when present, must be well formed.
func (s *Service) CreateUser(
	ctx context.Context,
	email, name string,
	walletAddress *string,
) (*user.User, error) {
	logger := s.logger.With("handler", "CreateUser", "email", email)

	u, err := user.New(email, name, walletAddress)
	if err != nil {
		logger.Warn("user validation failed", "error", err)
		return nil, err
	}
	if err := s.ledger.CreateUser(ctx, u); err != nil {
		logger.Warn("user creation failed", "error", err)
		return nil, err
	}

	if err := s.bus.Publish(ctx, events.UserRegistered{
		UserID: u.ID,
		Email:  u.Email,
	}); err != nil {
		logger.Error("failed to publish user registered event", "error", err)
	}

	// Best effort: surface the external balance for users that register with
	// a wallet. A gateway failure here never fails the registration.
	if u.WalletAddress != nil {
		if bal, err := s.settlement.GetExternalBalance(ctx, *u.WalletAddress); err != nil {
			logger.Warn("external balance probe failed", "error", err)
		} else {
			logger.Info("external balance at registration",
				"wallet", *u.WalletAddress,
				"deposited", bal.Deposited,
				"withdrawn", bal.Withdrawn,
			)
		}
	}

	logger.Info("user created", "user_id", u.ID)
	return u, nil
}

// GetUser returns the user with the given ID.
func (s *Service) GetUser(ctx context.Context, userID uuid.UUID) (*user.User, error) {
	return s.ledger.GetUser(ctx, userID)
}

// ListAccounts returns all accounts owned by the given user.
func (s *Service) ListAccounts(
	ctx context.Context,
	userID uuid.UUID,
) ([]*account.Account, error) {
	return s.ledger.ListAccountsForUser(ctx, userID)
}
