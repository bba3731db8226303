// Package memory implements the ledger store as process-lifetime in-memory
// collections. This is the authoritative state of the system; restart loses
// all data by design.
package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/onramptee/openbank/pkg/domain"
	"github.com/onramptee/openbank/pkg/domain/account"
	"github.com/onramptee/openbank/pkg/domain/money"
	"github.com/onramptee/openbank/pkg/domain/user"
	"github.com/onramptee/openbank/pkg/repository"
)

// Store holds the three entity collections behind per-collection RWMutexes,
// plus a per-account mutex that serializes balance updates.
//
// Lock order, always: account lock -> users -> accounts -> transactions.
// Multi-collection operations acquire every lock they need before mutating,
// so a reader never observes a half-applied unit (e.g. an account without its
// transaction history).
type Store struct {
	usersMu sync.RWMutex
	users   map[uuid.UUID]*user.User
	emails  map[string]uuid.UUID
	wallets map[string]uuid.UUID

	accountsMu sync.RWMutex
	accounts   map[uuid.UUID]*account.Account

	txMu         sync.RWMutex
	transactions map[uuid.UUID][]account.Transaction

	locksMu      sync.Mutex
	accountLocks map[uuid.UUID]*sync.Mutex
}

// New creates an empty store.
func New() *Store {
	return &Store{
		users:        make(map[uuid.UUID]*user.User),
		emails:       make(map[string]uuid.UUID),
		wallets:      make(map[string]uuid.UUID),
		accounts:     make(map[uuid.UUID]*account.Account),
		transactions: make(map[uuid.UUID][]account.Transaction),
		accountLocks: make(map[uuid.UUID]*sync.Mutex),
	}
}

// accountLock returns the serialization mutex for one account, creating it on
// first use.
func (s *Store) accountLock(id uuid.UUID) *sync.Mutex {
	s.locksMu.Lock()
	defer s.locksMu.Unlock()
	l, ok := s.accountLocks[id]
	if !ok {
		l = &sync.Mutex{}
		s.accountLocks[id] = l
	}
	return l
}

// CreateUser inserts the user. The uniqueness checks and the insert happen
// under one write lock, so two concurrent registrations with the same email
// cannot both succeed.
func (s *Store) CreateUser(ctx context.Context, u *user.User) error {
	s.usersMu.Lock()
	defer s.usersMu.Unlock()

	if _, exists := s.emails[u.Email]; exists {
		return &domain.DuplicateEmailError{Email: u.Email}
	}
	if u.WalletAddress != nil {
		if _, exists := s.wallets[*u.WalletAddress]; exists {
			return &domain.DuplicateWalletError{Address: *u.WalletAddress}
		}
	}

	cp := u.Clone()
	s.users[cp.ID] = cp
	s.emails[cp.Email] = cp.ID
	if cp.WalletAddress != nil {
		s.wallets[*cp.WalletAddress] = cp.ID
	}
	return nil
}

// GetUser returns a copy of the user.
func (s *Store) GetUser(ctx context.Context, id uuid.UUID) (*user.User, error) {
	s.usersMu.RLock()
	defer s.usersMu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return nil, domain.NewUserNotFound(id)
	}
	return u.Clone(), nil
}

// CreateAccount inserts the account, appends it to the owner's account list,
// and initializes the transaction history. All three collections are locked
// for the duration, so the effects become visible together or not at all.
func (s *Store) CreateAccount(ctx context.Context, a *account.Account) error {
	s.usersMu.Lock()
	defer s.usersMu.Unlock()
	s.accountsMu.Lock()
	defer s.accountsMu.Unlock()
	s.txMu.Lock()
	defer s.txMu.Unlock()

	owner, ok := s.users[a.UserID]
	if !ok {
		return domain.NewUserNotFound(a.UserID)
	}

	cp := a.Clone()
	s.accounts[cp.ID] = cp
	owner.AccountIDs = append(owner.AccountIDs, cp.ID)
	s.transactions[cp.ID] = []account.Transaction{}
	return nil
}

// GetAccount returns a copy of the account.
func (s *Store) GetAccount(ctx context.Context, id uuid.UUID) (*account.Account, error) {
	s.accountsMu.RLock()
	defer s.accountsMu.RUnlock()
	a, ok := s.accounts[id]
	if !ok {
		return nil, domain.NewAccountNotFound(id)
	}
	return a.Clone(), nil
}

// RecordDeposit applies a deposit to the account and appends the transaction
// entry with its balance snapshot. The per-account lock serializes concurrent
// deposits on the same account; both collection write locks are held while
// the pair is applied, so no reader sees the new balance without the entry.
func (s *Store) RecordDeposit(
	ctx context.Context,
	accountID uuid.UUID,
	amount money.Money,
	description string,
) (*account.Transaction, error) {
	if !amount.IsPositive() {
		return nil, &domain.InvalidAmountError{Amount: amount.AmountFloat()}
	}

	lock := s.accountLock(accountID)
	lock.Lock()
	defer lock.Unlock()

	s.accountsMu.Lock()
	defer s.accountsMu.Unlock()
	s.txMu.Lock()
	defer s.txMu.Unlock()

	a, ok := s.accounts[accountID]
	if !ok {
		return nil, domain.NewAccountNotFound(accountID)
	}

	balanceAfter, err := a.ApplyDeposit(amount)
	if err != nil {
		return nil, err
	}

	tx := account.NewDeposit(a, amount, balanceAfter, description)
	s.transactions[accountID] = append(s.transactions[accountID], tx)
	return &tx, nil
}

// ListTransactions returns the account history in application order.
func (s *Store) ListTransactions(
	ctx context.Context,
	accountID uuid.UUID,
) ([]account.Transaction, error) {
	s.txMu.RLock()
	defer s.txMu.RUnlock()
	history, ok := s.transactions[accountID]
	if !ok {
		return nil, domain.NewAccountNotFound(accountID)
	}
	return append([]account.Transaction(nil), history...), nil
}

// ListAccountsForUser returns the user's accounts in creation order.
func (s *Store) ListAccountsForUser(
	ctx context.Context,
	userID uuid.UUID,
) ([]*account.Account, error) {
	s.usersMu.RLock()
	u, ok := s.users[userID]
	if !ok {
		s.usersMu.RUnlock()
		return nil, domain.NewUserNotFound(userID)
	}
	ids := append([]uuid.UUID(nil), u.AccountIDs...)
	s.usersMu.RUnlock()

	s.accountsMu.RLock()
	defer s.accountsMu.RUnlock()
	accounts := make([]*account.Account, 0, len(ids))
	for _, id := range ids {
		if a, ok := s.accounts[id]; ok {
			accounts = append(accounts, a.Clone())
		}
	}
	return accounts, nil
}

var _ repository.Ledger = (*Store)(nil)
