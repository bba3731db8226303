// Package money provides the Money value object used across the ledger.
//
// Invariants:
//   - Amount is always stored in the smallest currency unit (e.g. cents for
//     USD).
//   - Currency code must be valid ISO 4217 (3 uppercase letters) and
//     registered.
//   - All arithmetic operations require matching currencies.
package money

import (
	"encoding/json"
	"fmt"
	"math"
	"math/big"
	"strings"

	"github.com/onramptee/openbank/pkg/currency"
	"github.com/onramptee/openbank/pkg/domain"
)

// Amount represents a monetary amount as an integer in the smallest currency
// unit.
type Amount = int64

var (
	// ErrCurrencyMismatch is returned when performing arithmetic on money
	// with different currencies.
	ErrCurrencyMismatch = fmt.Errorf("currency mismatch")
	// ErrAmountExceedsMaxSafeInt is returned when an amount exceeds the
	// maximum safe integer value.
	ErrAmountExceedsMaxSafeInt = fmt.Errorf("amount exceeds maximum safe integer value")
)

// Money represents a monetary value in a specific currency.
type Money struct {
	amount   Amount
	currency currency.Code
}

// New creates a Money value from a main-unit float amount (e.g. dollars).
// The conversion to the smallest unit is exact: amounts with more decimal
// places than the currency allows are rejected rather than rounded.
func New(amount float64, code currency.Code) (Money, error) {
	if code == "" {
		code = currency.DefaultCurrency
	}
	if !currency.IsValidFormat(string(code)) {
		return Money{}, &domain.InvalidAmountError{Amount: amount}
	}
	smallest, err := convertToSmallestUnit(amount, code)
	if err != nil {
		return Money{}, err
	}
	return Money{amount: smallest, currency: code}, nil
}

// NewFromSmallestUnit creates a Money value directly from the smallest
// currency unit. Used for hydrating stored balances.
func NewFromSmallestUnit(amount int64, code currency.Code) Money {
	if code == "" {
		code = currency.DefaultCurrency
	}
	return Money{amount: amount, currency: code}
}

// Zero returns a zero-valued Money in the given currency.
func Zero(code currency.Code) Money {
	return NewFromSmallestUnit(0, code)
}

// Amount returns the amount in the smallest currency unit.
func (m Money) Amount() Amount { return m.amount }

// Currency returns the currency code.
func (m Money) Currency() currency.Code { return m.currency }

// AmountFloat returns the amount as a float64 in the main currency unit.
func (m Money) AmountFloat() float64 {
	meta, err := currency.Get(m.currency)
	if err != nil {
		meta = currency.Meta{Decimals: currency.DefaultDecimals}
	}
	return float64(m.amount) / math.Pow10(meta.Decimals)
}

// Add adds another Money value of the same currency.
func (m Money) Add(other Money) (Money, error) {
	if !m.IsSameCurrency(other) {
		return Money{}, ErrCurrencyMismatch
	}
	return Money{amount: m.amount + other.amount, currency: m.currency}, nil
}

// Subtract subtracts another Money value of the same currency.
func (m Money) Subtract(other Money) (Money, error) {
	if !m.IsSameCurrency(other) {
		return Money{}, ErrCurrencyMismatch
	}
	return Money{amount: m.amount - other.amount, currency: m.currency}, nil
}

// Equals checks equality of amount and currency.
func (m Money) Equals(other Money) bool {
	return m.IsSameCurrency(other) && m.amount == other.amount
}

// GreaterThan compares amounts of the same currency.
func (m Money) GreaterThan(other Money) (bool, error) {
	if !m.IsSameCurrency(other) {
		return false, ErrCurrencyMismatch
	}
	return m.amount > other.amount, nil
}

// IsSameCurrency reports whether both values share a currency.
func (m Money) IsSameCurrency(other Money) bool { return m.currency == other.currency }

// IsPositive reports whether the amount is greater than zero.
func (m Money) IsPositive() bool { return m.amount > 0 }

// IsNegative reports whether the amount is less than zero.
func (m Money) IsNegative() bool { return m.amount < 0 }

// IsZero reports whether the amount is zero.
func (m Money) IsZero() bool { return m.amount == 0 }

// String renders the amount with the currency's decimal places.
func (m Money) String() string {
	meta, err := currency.Get(m.currency)
	if err != nil {
		meta = currency.Meta{Decimals: currency.DefaultDecimals}
	}
	return fmt.Sprintf("%.*f %s", meta.Decimals, m.AmountFloat(), m.currency)
}

// MarshalJSON implements json.Marshaler.
func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]any{
		"amount":   m.amount,
		"currency": m.currency,
	})
}

// UnmarshalJSON implements json.Unmarshaler.
func (m *Money) UnmarshalJSON(data []byte) error {
	var aux struct {
		Amount   int64         `json:"amount"`
		Currency currency.Code `json:"currency"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*m = NewFromSmallestUnit(aux.Amount, aux.Currency)
	return nil
}

// MinorUnits rescales the amount to a fixed-point representation with the
// given number of decimals, as used by external settlement systems (e.g. 6
// for USDT). The conversion is exact: if the rescale would lose precision the
// amount is rejected.
func (m Money) MinorUnits(decimals int) (int64, error) {
	meta, err := currency.Get(m.currency)
	if err != nil {
		meta = currency.Meta{Decimals: currency.DefaultDecimals}
	}
	shift := decimals - meta.Decimals
	if shift >= 0 {
		scaled := new(big.Int).Mul(
			big.NewInt(m.amount),
			new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(shift)), nil),
		)
		if !scaled.IsInt64() {
			return 0, ErrAmountExceedsMaxSafeInt
		}
		return scaled.Int64(), nil
	}
	divisor := int64(math.Pow10(-shift))
	if m.amount%divisor != 0 {
		return 0, &domain.InvalidAmountError{Amount: m.AmountFloat()}
	}
	return m.amount / divisor, nil
}

// convertToSmallestUnit converts a float64 amount to the smallest currency
// unit without floating-point rounding surprises.
func convertToSmallestUnit(amount float64, code currency.Code) (int64, error) {
	meta, err := currency.Get(code)
	if err != nil {
		meta = currency.Meta{Decimals: currency.DefaultDecimals}
	}

	// Reject amounts with more decimal places than the currency allows.
	amountStr := fmt.Sprintf("%.10f", amount)
	if parts := strings.Split(amountStr, "."); len(parts) > 1 {
		decimals := strings.TrimRight(parts[1], "0")
		if len(decimals) > meta.Decimals {
			return 0, &domain.InvalidAmountError{Amount: amount}
		}
	}

	amountStr = fmt.Sprintf("%.*f", meta.Decimals, amount)
	amountRat, ok := new(big.Rat).SetString(amountStr)
	if !ok {
		return 0, &domain.InvalidAmountError{Amount: amount}
	}

	multiplier := int64(math.Pow10(meta.Decimals))
	smallestRat := new(big.Rat).Mul(amountRat, big.NewRat(multiplier, 1))
	if !smallestRat.IsInt() {
		return 0, &domain.InvalidAmountError{Amount: amount}
	}
	smallest := smallestRat.Num()
	if !smallest.IsInt64() {
		return 0, ErrAmountExceedsMaxSafeInt
	}
	return smallest.Int64(), nil
}
