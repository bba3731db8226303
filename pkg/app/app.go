// Package app builds the application's services from their dependencies and
// registers the event subscribers.
package app

import (
	"context"
	"log/slog"

	"github.com/onramptee/openbank/config"
	"github.com/onramptee/openbank/pkg/domain/events"
	"github.com/onramptee/openbank/pkg/eventbus"
	"github.com/onramptee/openbank/pkg/provider/settlement"
	"github.com/onramptee/openbank/pkg/repository"
	accountsvc "github.com/onramptee/openbank/pkg/service/account"
	usersvc "github.com/onramptee/openbank/pkg/service/user"
	withdrawsvc "github.com/onramptee/openbank/pkg/service/withdraw"
)

// Deps carries the infrastructure dependencies of the application.
type Deps struct {
	Ledger     repository.Ledger
	Settlement settlement.Client
	Bus        eventbus.Bus
	Logger     *slog.Logger
	Config     *config.App
}

// App holds the built services.
type App struct {
	Deps

	UserService     *usersvc.Service
	AccountService  *accountsvc.Service
	WithdrawService *withdrawsvc.Service
}

// New builds all services and registers the event subscribers.
func New(deps Deps) *App {
	registerAuditLog(deps.Bus, deps.Logger)

	return &App{
		Deps:            deps,
		UserService:     usersvc.New(deps.Ledger, deps.Settlement, deps.Bus, deps.Logger),
		AccountService:  accountsvc.New(deps.Ledger, deps.Bus, deps.Logger),
		WithdrawService: withdrawsvc.New(deps.Ledger, deps.Settlement, deps.Bus, deps.Logger),
	}
}

// registerAuditLog subscribes a structured audit line for every published
// domain event.
func registerAuditLog(bus eventbus.Bus, logger *slog.Logger) {
	audit := logger.With("component", "audit")

	bus.Subscribe(events.UserRegistered{}.Type(), func(ctx context.Context, e events.Event) {
		if ev, ok := e.(events.UserRegistered); ok {
			audit.Info(ev.Type(), "user_id", ev.UserID, "email", ev.Email)
		}
	})
	bus.Subscribe(events.AccountOpened{}.Type(), func(ctx context.Context, e events.Event) {
		if ev, ok := e.(events.AccountOpened); ok {
			audit.Info(ev.Type(),
				"account_id", ev.AccountID, "user_id", ev.UserID, "currency", ev.Currency)
		}
	})
	bus.Subscribe(events.DepositRecorded{}.Type(), func(ctx context.Context, e events.Event) {
		if ev, ok := e.(events.DepositRecorded); ok {
			audit.Info(ev.Type(),
				"transaction_id", ev.TransactionID,
				"account_id", ev.AccountID,
				"amount", ev.Amount,
				"currency", ev.Currency,
				"balance_after", ev.BalanceAfter,
			)
		}
	})
	bus.Subscribe(events.WithdrawalSettled{}.Type(), func(ctx context.Context, e events.Event) {
		if ev, ok := e.(events.WithdrawalSettled); ok {
			audit.Info(ev.Type(),
				"user_id", ev.UserID,
				"destination", ev.Destination,
				"minor_units", ev.MinorUnits,
			)
		}
	})
}
