package account_test

import (
	"context"
	"io"
	"log"
	"log/slog"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onramptee/openbank/infra/repository/memory"
	"github.com/onramptee/openbank/pkg/currency"
	"github.com/onramptee/openbank/pkg/domain"
	"github.com/onramptee/openbank/pkg/domain/events"
	"github.com/onramptee/openbank/pkg/domain/user"
	"github.com/onramptee/openbank/pkg/eventbus"
	accountsvc "github.com/onramptee/openbank/pkg/service/account"
)

func TestMain(m *testing.M) {
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
	log.SetOutput(io.Discard)

	os.Exit(m.Run())
}

func newFixture(t *testing.T) (*accountsvc.Service, *memory.Store, *eventbus.SimpleBus) {
	t.Helper()
	store := memory.New()
	bus := eventbus.NewSimpleBus()
	return accountsvc.New(store, bus, slog.Default()), store, bus
}

func registerUser(t *testing.T, store *memory.Store) *user.User {
	t.Helper()
	u, err := user.New(uuid.NewString()+"@example.com", "Owner", nil)
	require.NoError(t, err)
	require.NoError(t, store.CreateUser(context.Background(), u))
	return u
}

func TestCreateAccountDefaultsCurrency(t *testing.T) {
	t.Parallel()
	svc, store, bus := newFixture(t)
	u := registerUser(t, store)

	var opened []events.AccountOpened
	bus.Subscribe(events.AccountOpened{}.Type(), func(ctx context.Context, e events.Event) {
		opened = append(opened, e.(events.AccountOpened))
	})

	acct, err := svc.CreateAccount(context.Background(), u.ID, "")
	require.NoError(t, err)
	assert.Equal(t, currency.USD, acct.Currency())
	require.Len(t, opened, 1)
	assert.Equal(t, acct.ID, opened[0].AccountID)
}

func TestCreateAccountUnknownUser(t *testing.T) {
	t.Parallel()
	svc, _, _ := newFixture(t)
	_, err := svc.CreateAccount(context.Background(), uuid.New(), currency.USD)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDepositPublishesEvent(t *testing.T) {
	t.Parallel()
	svc, store, bus := newFixture(t)
	u := registerUser(t, store)
	acct, err := svc.CreateAccount(context.Background(), u.ID, currency.USD)
	require.NoError(t, err)

	var recorded []events.DepositRecorded
	bus.Subscribe(events.DepositRecorded{}.Type(), func(ctx context.Context, e events.Event) {
		recorded = append(recorded, e.(events.DepositRecorded))
	})

	tx, err := svc.Deposit(context.Background(), acct.ID, 100.0, "")
	require.NoError(t, err)
	assert.Equal(t, "Deposit", tx.Description)
	assert.Equal(t, int64(10000), tx.BalanceAfter.Amount())

	require.Len(t, recorded, 1)
	assert.Equal(t, tx.ID, recorded[0].TransactionID)
	assert.Equal(t, 100.0, recorded[0].Amount)
	assert.Equal(t, 100.0, recorded[0].BalanceAfter)
}

func TestDepositRejectsExcessPrecision(t *testing.T) {
	t.Parallel()
	svc, store, _ := newFixture(t)
	u := registerUser(t, store)
	acct, err := svc.CreateAccount(context.Background(), u.ID, currency.USD)
	require.NoError(t, err)

	_, err = svc.Deposit(context.Background(), acct.ID, 1.005, "")
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)

	got, err := svc.GetAccount(context.Background(), acct.ID)
	require.NoError(t, err)
	assert.True(t, got.Balance.IsZero())
}
