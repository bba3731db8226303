// Package settlement defines the narrow boundary to the external
// value-transfer system. The ledger core depends only on this contract and
// its error taxonomy; wire format, signing, and chain details live behind it.
package settlement

import "context"

// Client is the interface to the external settlement system.
//
// Error taxonomy: implementations return domain.ErrSettlementUnavailable for
// transport or parse failures, domain.InvalidAddressError for malformed
// destinations, domain.ErrSettlementRejected when the external system refused
// the call, and domain.ErrSettlementUncertain when a request may have been
// delivered but its outcome is unknown (e.g. timeout waiting for the
// response).
type Client interface {
	// GetExternalBalance queries the external system's own balance record
	// for an address. This is the idempotent recovery path after an
	// uncertain send.
	GetExternalBalance(ctx context.Context, address string) (*ExternalBalance, error)

	// SendFunds moves funds out of the ledger to the destination address.
	// The amount is in the external system's minor units.
	SendFunds(ctx context.Context, destination string, minorUnits int64, description string) error

	// Stats returns aggregate counters from the external system, for
	// operational visibility.
	Stats(ctx context.Context) (*Stats, error)
}
