// Package withdraw provides business logic for withdrawals settled through
// the external contract gateway.
//
// Withdrawals are validated locally and then handed to the settlement client,
// which is authoritative for the funds movement. No local account balance is
// debited here. When the gateway outcome is unknown the withdrawal is
// reported as uncertain rather than failed, so callers can reconcile with
// GetExternalBalance instead of blindly resending funds.
package withdraw

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/onramptee/openbank/pkg/currency"
	"github.com/onramptee/openbank/pkg/domain"
	"github.com/onramptee/openbank/pkg/domain/events"
	"github.com/onramptee/openbank/pkg/domain/money"
	"github.com/onramptee/openbank/pkg/eventbus"
	"github.com/onramptee/openbank/pkg/provider/settlement"
	"github.com/onramptee/openbank/pkg/repository"
)

// DefaultDescription is attached to withdrawals that carry no description of
// their own.
const DefaultDescription = "API withdrawal"

// DefaultCallTimeout bounds a single settlement call.
const DefaultCallTimeout = 30 * time.Second

// Status is the terminal state of a withdrawal attempt.
type Status string

const (
	// StatusSettled means the gateway confirmed the transfer.
	StatusSettled Status = "settled"
	// StatusUncertain means the call was sent but the outcome is unknown.
	// The funds may or may not have moved.
	StatusUncertain Status = "uncertain"
)

// Outcome describes the result of a withdrawal attempt.
type Outcome struct {
	Status      Status
	UserID      uuid.UUID
	Destination string
	MinorUnits  int64
}

// Service provides business logic for withdrawal operations.
type Service struct {
	ledger      repository.Ledger
	settlement  settlement.Client
	bus         eventbus.Bus
	logger      *slog.Logger
	callTimeout time.Duration
}

// New creates a new Service.
func New(
	ledger repository.Ledger,
	settlementClient settlement.Client,
	bus eventbus.Bus,
	logger *slog.Logger,
) *Service {
	return &Service{
		ledger:      ledger,
		settlement:  settlementClient,
		bus:         bus,
		logger:      logger,
		callTimeout: DefaultCallTimeout,
	}
}

// WithCallTimeout overrides the per-call settlement timeout.
func (s *Service) WithCallTimeout(d time.Duration) *Service {
	s.callTimeout = d
	return s
}

// Withdraw sends the given amount to the user's registered wallet address
// through the settlement gateway. The amount is interpreted in the default
// currency and converted exactly to the gateway's minor units; amounts that
// cannot be represented exactly are rejected.
func (s *Service) Withdraw(
	ctx context.Context,
	userID uuid.UUID,
	amount float64,
	description string,
) (*Outcome, error) {
	logger := s.logger.With("handler", "Withdraw", "user_id", userID)

	if amount <= 0 {
		logger.Warn("rejected non-positive amount", "amount", amount)
		return nil, &domain.InvalidAmountError{Amount: amount}
	}

	u, err := s.ledger.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u.WalletAddress == nil {
		logger.Warn("user has no wallet address")
		return nil, &domain.NoWalletAddressError{UserID: userID}
	}
	destination := *u.WalletAddress

	m, err := money.New(amount, currency.Code(currency.DefaultCurrency))
	if err != nil {
		logger.Warn("invalid withdrawal amount", "amount", amount, "error", err)
		return nil, err
	}
	minorUnits, err := m.MinorUnits(settlement.MinorUnitDecimals)
	if err != nil {
		logger.Warn("amount not representable in minor units",
			"amount", amount, "error", err)
		return nil, err
	}
	if description == "" {
		description = DefaultDescription
	}

	callCtx, cancel := context.WithTimeout(ctx, s.callTimeout)
	defer cancel()

	logger.Info("sending funds",
		"destination", destination, "minor_units", minorUnits)
	if err := s.settlement.SendFunds(callCtx, destination, minorUnits, description); err != nil {
		if errors.Is(err, domain.ErrSettlementUncertain) {
			// The request may have been delivered. Do not resend; report
			// the ambiguity so callers can reconcile against the external
			// balance.
			logger.Warn("settlement outcome unknown", "error", err)
			return &Outcome{
				Status:      StatusUncertain,
				UserID:      userID,
				Destination: destination,
				MinorUnits:  minorUnits,
			}, err
		}
		logger.Warn("settlement failed", "error", err)
		return nil, err
	}

	if err := s.bus.Publish(ctx, events.WithdrawalSettled{
		UserID:      userID,
		Destination: destination,
		MinorUnits:  minorUnits,
	}); err != nil {
		logger.Error("failed to publish withdrawal event", "error", err)
	}

	logger.Info("withdrawal settled",
		"destination", destination, "minor_units", minorUnits)
	return &Outcome{
		Status:      StatusSettled,
		UserID:      userID,
		Destination: destination,
		MinorUnits:  minorUnits,
	}, nil
}

// ExternalBalance returns the settlement-side balance for the user's
// registered wallet address. It is the reconciliation path for withdrawals
// that ended in an uncertain state.
func (s *Service) ExternalBalance(
	ctx context.Context,
	userID uuid.UUID,
) (*settlement.ExternalBalance, error) {
	u, err := s.ledger.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u.WalletAddress == nil {
		return nil, &domain.NoWalletAddressError{UserID: userID}
	}

	callCtx, cancel := context.WithTimeout(ctx, s.callTimeout)
	defer cancel()
	return s.settlement.GetExternalBalance(callCtx, *u.WalletAddress)
}

// Stats returns aggregate settlement-side statistics.
func (s *Service) Stats(ctx context.Context) (*settlement.Stats, error) {
	callCtx, cancel := context.WithTimeout(ctx, s.callTimeout)
	defer cancel()
	return s.settlement.Stats(callCtx)
}
