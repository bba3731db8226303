// Package mocksettlement simulates the external settlement system for tests
// and local development.
//
// Usage:
//   - SendFunds records the call and applies it to an in-memory balance
//     table, unless a failure mode is armed via FailSendWith.
//   - GetExternalBalance reads the in-memory table, so tests can exercise
//     the recovery path after an uncertain send.
//
// This is NOT for production use; the real system settles through the
// contract gateway.
package mocksettlement

import (
	"context"
	"sync"
	"time"

	"github.com/onramptee/openbank/pkg/domain"
	"github.com/onramptee/openbank/pkg/provider/settlement"
)

type record struct {
	deposited        int64
	withdrawn        int64
	lastDepositAt    time.Time
	lastWithdrawalAt time.Time
	hasDeposited     bool
}

// MockSettlement is an in-memory settlement.Client.
type MockSettlement struct {
	mu         sync.Mutex
	balances   map[string]*record
	sendErr    error
	balanceErr error
	// applyDespiteError mimics a delivered-but-timed-out call: the transfer
	// is applied even though SendFunds reports an error.
	applyDespiteError bool

	sendCalls int
}

// New creates an empty mock settlement system.
func New() *MockSettlement {
	return &MockSettlement{balances: make(map[string]*record)}
}

// FailSendWith arms a failure for subsequent SendFunds calls. With
// applyAnyway true the transfer is still applied, simulating an uncertain
// outcome where the external system actually executed the call.
func (m *MockSettlement) FailSendWith(err error, applyAnyway bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sendErr = err
	m.applyDespiteError = applyAnyway
}

// FailBalanceWith arms a failure for subsequent GetExternalBalance calls.
func (m *MockSettlement) FailBalanceWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.balanceErr = err
}

// SendCalls reports how many times SendFunds was invoked.
func (m *MockSettlement) SendCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sendCalls
}

// Credit seeds a deposited balance for an address.
func (m *MockSettlement) Credit(address string, minorUnits int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r := m.recordFor(address)
	r.deposited += minorUnits
	r.lastDepositAt = time.Now().UTC()
	r.hasDeposited = true
}

func (m *MockSettlement) recordFor(address string) *record {
	r, ok := m.balances[address]
	if !ok {
		r = &record{}
		m.balances[address] = r
	}
	return r
}

// GetExternalBalance implements settlement.Client.
func (m *MockSettlement) GetExternalBalance(
	ctx context.Context,
	address string,
) (*settlement.ExternalBalance, error) {
	if !domain.IsValidWalletAddress(address) {
		return nil, &domain.InvalidAddressError{Address: address}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.balanceErr != nil {
		return nil, m.balanceErr
	}
	r := m.recordFor(address)
	return &settlement.ExternalBalance{
		Deposited:        r.deposited,
		Withdrawn:        r.withdrawn,
		LastDepositAt:    r.lastDepositAt,
		LastWithdrawalAt: r.lastWithdrawalAt,
		HasDeposited:     r.hasDeposited,
	}, nil
}

// SendFunds implements settlement.Client.
func (m *MockSettlement) SendFunds(
	ctx context.Context,
	destination string,
	minorUnits int64,
	description string,
) error {
	if !domain.IsValidWalletAddress(destination) {
		return &domain.InvalidAddressError{Address: destination}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sendCalls++

	if m.sendErr != nil && !m.applyDespiteError {
		return m.sendErr
	}
	r := m.recordFor(destination)
	r.withdrawn += minorUnits
	r.lastWithdrawalAt = time.Now().UTC()
	if m.sendErr != nil {
		return m.sendErr
	}
	return nil
}

// Stats implements settlement.Client.
func (m *MockSettlement) Stats(ctx context.Context) (*settlement.Stats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var stats settlement.Stats
	for _, r := range m.balances {
		stats.TotalDeposited += r.deposited
		stats.TotalWithdrawn += r.withdrawn
		if r.hasDeposited {
			stats.Depositors++
		}
	}
	stats.Balance = stats.TotalDeposited - stats.TotalWithdrawn
	return &stats, nil
}

var _ settlement.Client = (*MockSettlement)(nil)
