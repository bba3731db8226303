// Package currency provides the registry of currencies the ledger accepts and
// helpers for validating ISO 4217 currency codes.
package currency

import (
	"fmt"
	"sync"
)

const (
	// DefaultCurrency is the fallback currency code.
	DefaultCurrency = "USD"
	// DefaultDecimals is the default number of decimal places for currencies.
	DefaultDecimals = 2
)

// Code represents a 3-letter ISO 4217 currency code (e.g. "USD").
type Code string

// String returns the string representation of the currency code.
func (c Code) String() string { return string(c) }

// Common currency codes.
const (
	USD Code = "USD"
	EUR Code = "EUR"
	GBP Code = "GBP"
	JPY Code = "JPY"
)

// Meta holds currency-specific metadata.
type Meta struct {
	Decimals int
	Symbol   string
}

// Registry maps currency codes to their metadata. It is safe for concurrent
// use.
type Registry struct {
	mu         sync.RWMutex
	currencies map[Code]Meta
}

// NewRegistry creates a registry pre-populated with the default currency set.
func NewRegistry() *Registry {
	r := &Registry{currencies: make(map[Code]Meta)}
	for code, meta := range map[Code]Meta{
		"USD": {Decimals: 2, Symbol: "$"},
		"EUR": {Decimals: 2, Symbol: "€"},
		"GBP": {Decimals: 2, Symbol: "£"},
		"JPY": {Decimals: 0, Symbol: "¥"},
		"CAD": {Decimals: 2, Symbol: "C$"},
		"AUD": {Decimals: 2, Symbol: "A$"},
		"CHF": {Decimals: 2, Symbol: "CHF"},
	} {
		r.Register(code, meta)
	}
	return r
}

// Register adds or updates a currency in the registry.
func (r *Registry) Register(code Code, meta Meta) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.currencies[code] = meta
}

// Get returns currency metadata for the given code.
func (r *Registry) Get(code Code) (Meta, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	meta, ok := r.currencies[code]
	if !ok {
		return Meta{}, fmt.Errorf("unsupported currency: %s", code)
	}
	return meta, nil
}

// IsSupported reports whether the code is registered.
func (r *Registry) IsSupported(code Code) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.currencies[code]
	return ok
}

var defaultRegistry = NewRegistry()

// Default returns the process-wide registry.
func Default() *Registry { return defaultRegistry }

// Get returns currency metadata from the process-wide registry.
func Get(code Code) (Meta, error) { return defaultRegistry.Get(code) }

// IsSupported reports whether the code is registered in the process-wide
// registry.
func IsSupported(code Code) bool { return defaultRegistry.IsSupported(code) }

// IsValidFormat checks that a code is three uppercase ASCII letters.
func IsValidFormat(code string) bool {
	if len(code) != 3 {
		return false
	}
	for i := 0; i < 3; i++ {
		if code[i] < 'A' || code[i] > 'Z' {
			return false
		}
	}
	return true
}
