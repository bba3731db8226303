package memory_test

import (
	"context"
	"io"
	"log"
	"log/slog"
	"os"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onramptee/openbank/infra/repository/memory"
	"github.com/onramptee/openbank/pkg/currency"
	"github.com/onramptee/openbank/pkg/domain"
	domainaccount "github.com/onramptee/openbank/pkg/domain/account"
	"github.com/onramptee/openbank/pkg/domain/money"
	"github.com/onramptee/openbank/pkg/domain/user"
)

func TestMain(m *testing.M) {
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
	log.SetOutput(io.Discard)

	os.Exit(m.Run())
}

func strptr(s string) *string { return &s }

func newTestUser(t *testing.T, store *memory.Store, wallet *string) *user.User {
	t.Helper()
	u, err := user.New(uuid.NewString()+"@example.com", "Test User", wallet)
	require.NoError(t, err)
	require.NoError(t, store.CreateUser(context.Background(), u))
	return u
}

func newTestAccount(t *testing.T, store *memory.Store, userID uuid.UUID) *domainaccount.Account {
	t.Helper()
	acct, err := domainaccount.New().
		WithUserID(userID).
		WithCurrency(currency.USD).
		Build()
	require.NoError(t, err)
	require.NoError(t, store.CreateAccount(context.Background(), acct))
	return acct
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	t.Parallel()
	store := memory.New()
	ctx := context.Background()

	u1, err := user.New("dup@example.com", "First", nil)
	require.NoError(t, err)
	require.NoError(t, store.CreateUser(ctx, u1))

	u2, err := user.New("dup@example.com", "Second", nil)
	require.NoError(t, err)
	err = store.CreateUser(ctx, u2)
	assert.ErrorIs(t, err, domain.ErrDuplicateEmail)
}

func TestCreateUserDuplicateWallet(t *testing.T) {
	t.Parallel()
	store := memory.New()
	ctx := context.Background()
	addr := "0x1234567890abcdef1234567890abcdef12345678"

	u1, err := user.New("w1@example.com", "First", strptr(addr))
	require.NoError(t, err)
	require.NoError(t, store.CreateUser(ctx, u1))

	u2, err := user.New("w2@example.com", "Second", strptr(addr))
	require.NoError(t, err)
	assert.ErrorIs(t, store.CreateUser(ctx, u2), domain.ErrDuplicateWallet)
}

func TestConcurrentDuplicateEmailExactlyOneWins(t *testing.T) {
	t.Parallel()
	store := memory.New()
	ctx := context.Background()
	const racers = 16

	var wg sync.WaitGroup
	errs := make([]error, racers)
	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			u, err := user.New("race@example.com", "Racer", nil)
			if err != nil {
				errs[i] = err
				return
			}
			errs[i] = store.CreateUser(ctx, u)
		}(i)
	}
	wg.Wait()

	winners := 0
	for _, err := range errs {
		if err == nil {
			winners++
		} else {
			assert.ErrorIs(t, err, domain.ErrDuplicateEmail)
		}
	}
	assert.Equal(t, 1, winners, "exactly one registration should win")
}

func TestGetUserNotFound(t *testing.T) {
	t.Parallel()
	store := memory.New()
	_, err := store.GetUser(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGetUserReturnsCopy(t *testing.T) {
	t.Parallel()
	store := memory.New()
	u := newTestUser(t, store, nil)

	got, err := store.GetUser(context.Background(), u.ID)
	require.NoError(t, err)
	got.Name = "mutated"
	got.AccountIDs = append(got.AccountIDs, uuid.New())

	again, err := store.GetUser(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Equal(t, "Test User", again.Name)
	assert.Empty(t, again.AccountIDs)
}

func TestCreateAccountUnknownUser(t *testing.T) {
	t.Parallel()
	store := memory.New()
	acct, err := domainaccount.New().WithUserID(uuid.New()).Build()
	require.NoError(t, err)
	assert.ErrorIs(t, store.CreateAccount(context.Background(), acct), domain.ErrNotFound)
}

func TestCreateAccountLinksOwnerAndHistory(t *testing.T) {
	t.Parallel()
	store := memory.New()
	ctx := context.Background()
	u := newTestUser(t, store, nil)
	acct := newTestAccount(t, store, u.ID)

	owner, err := store.GetUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{acct.ID}, owner.AccountIDs)

	history, err := store.ListTransactions(ctx, acct.ID)
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestRecordDepositScenario(t *testing.T) {
	t.Parallel()
	store := memory.New()
	ctx := context.Background()
	u := newTestUser(t, store, nil)
	acct := newTestAccount(t, store, u.ID)

	first, err := money.New(100, currency.USD)
	require.NoError(t, err)
	tx1, err := store.RecordDeposit(ctx, acct.ID, first, "first")
	require.NoError(t, err)
	assert.Equal(t, int64(10000), tx1.BalanceAfter.Amount())

	second, err := money.New(150.5, currency.USD)
	require.NoError(t, err)
	tx2, err := store.RecordDeposit(ctx, acct.ID, second, "second")
	require.NoError(t, err)
	assert.Equal(t, int64(25050), tx2.BalanceAfter.Amount())
	assert.Equal(t, "second", tx2.Description)

	got, err := store.GetAccount(ctx, acct.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(25050), got.Balance.Amount())

	history, err := store.ListTransactions(ctx, acct.ID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, tx1.ID, history[0].ID)
	assert.Equal(t, tx2.ID, history[1].ID)
}

func TestRecordDepositRejectsNonPositive(t *testing.T) {
	t.Parallel()
	store := memory.New()
	ctx := context.Background()
	u := newTestUser(t, store, nil)
	acct := newTestAccount(t, store, u.ID)

	_, err := store.RecordDeposit(ctx, acct.ID, money.Zero(currency.USD), "")
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)

	_, err = store.RecordDeposit(
		ctx, acct.ID, money.NewFromSmallestUnit(-500, currency.USD), "")
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)

	// A rejected deposit leaves no trace.
	got, err := store.GetAccount(ctx, acct.ID)
	require.NoError(t, err)
	assert.True(t, got.Balance.IsZero())
	history, err := store.ListTransactions(ctx, acct.ID)
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestRecordDepositUnknownAccount(t *testing.T) {
	t.Parallel()
	store := memory.New()
	amount, err := money.New(10, currency.USD)
	require.NoError(t, err)
	_, err = store.RecordDeposit(context.Background(), uuid.New(), amount, "")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestConcurrentDepositsNoLostUpdates(t *testing.T) {
	t.Parallel()
	store := memory.New()
	ctx := context.Background()
	u := newTestUser(t, store, nil)
	acct := newTestAccount(t, store, u.ID)

	const depositors = 32
	amount, err := money.New(1.25, currency.USD)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < depositors; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.RecordDeposit(ctx, acct.ID, amount, "concurrent")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	got, err := store.GetAccount(ctx, acct.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(depositors*125), got.Balance.Amount())

	history, err := store.ListTransactions(ctx, acct.ID)
	require.NoError(t, err)
	require.Len(t, history, depositors)

	// The balance always equals the sum of deposits, and every snapshot in
	// the history is consistent with its position.
	var sum int64
	seen := make(map[int64]bool)
	for _, tx := range history {
		sum += tx.Amount.Amount()
		assert.False(t, seen[tx.BalanceAfter.Amount()],
			"balance snapshots must be distinct under a fixed deposit size")
		seen[tx.BalanceAfter.Amount()] = true
	}
	assert.Equal(t, got.Balance.Amount(), sum)
}

func TestListTransactionsUnknownAccount(t *testing.T) {
	t.Parallel()
	store := memory.New()
	_, err := store.ListTransactions(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListTransactionsReturnsCopy(t *testing.T) {
	t.Parallel()
	store := memory.New()
	ctx := context.Background()
	u := newTestUser(t, store, nil)
	acct := newTestAccount(t, store, u.ID)

	amount, err := money.New(5, currency.USD)
	require.NoError(t, err)
	_, err = store.RecordDeposit(ctx, acct.ID, amount, "init")
	require.NoError(t, err)

	history, err := store.ListTransactions(ctx, acct.ID)
	require.NoError(t, err)
	history[0].Description = "mutated"

	again, err := store.ListTransactions(ctx, acct.ID)
	require.NoError(t, err)
	assert.Equal(t, "init", again[0].Description)
}

func TestListAccountsForUser(t *testing.T) {
	t.Parallel()
	store := memory.New()
	ctx := context.Background()
	u := newTestUser(t, store, nil)
	a1 := newTestAccount(t, store, u.ID)
	a2 := newTestAccount(t, store, u.ID)

	accounts, err := store.ListAccountsForUser(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, accounts, 2)
	assert.Equal(t, a1.ID, accounts[0].ID)
	assert.Equal(t, a2.ID, accounts[1].ID)

	_, err = store.ListAccountsForUser(ctx, uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
