package settlement

import "time"

// MinorUnitDecimals is the fixed-point scale of the external system's amount
// representation (USDT uses 6 decimals). Converting a ledger amount to minor
// units is a pure, exact function; amounts that would lose precision are
// rejected before any call is made.
const MinorUnitDecimals = 6

// ExternalBalance is the external system's own record for one address.
type ExternalBalance struct {
	Deposited        int64     `json:"deposited"`
	Withdrawn        int64     `json:"withdrawn"`
	LastDepositAt    time.Time `json:"last_deposit_at"`
	LastWithdrawalAt time.Time `json:"last_withdrawal_at"`
	HasDeposited     bool      `json:"has_deposited"`
}

// Stats holds aggregate counters reported by the external system.
type Stats struct {
	TotalDeposited int64 `json:"total_deposited"`
	TotalWithdrawn int64 `json:"total_withdrawn"`
	Balance        int64 `json:"balance"`
	Depositors     int64 `json:"depositors"`
	Transfers      int64 `json:"transfers"`
}
