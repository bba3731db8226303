package currency_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onramptee/openbank/pkg/currency"
)

func TestDefaultRegistrySupportsCommonCurrencies(t *testing.T) {
	t.Parallel()
	for _, code := range []currency.Code{"USD", "EUR", "GBP", "JPY"} {
		assert.True(t, currency.IsSupported(code), "expected %s to be supported", code)
	}
	assert.False(t, currency.IsSupported("XXX"))
}

func TestGetMeta(t *testing.T) {
	t.Parallel()
	meta, err := currency.Get(currency.USD)
	require.NoError(t, err)
	assert.Equal(t, 2, meta.Decimals)

	meta, err = currency.Get(currency.JPY)
	require.NoError(t, err)
	assert.Equal(t, 0, meta.Decimals)

	_, err = currency.Get("ZZZ")
	assert.Error(t, err)
}

func TestRegister(t *testing.T) {
	t.Parallel()
	r := currency.NewRegistry()
	r.Register("BHD", currency.Meta{Decimals: 3, Symbol: ".د.ب"})

	meta, err := r.Get("BHD")
	require.NoError(t, err)
	assert.Equal(t, 3, meta.Decimals)
}

func TestIsValidFormat(t *testing.T) {
	t.Parallel()
	assert.True(t, currency.IsValidFormat("USD"))
	assert.False(t, currency.IsValidFormat("usd"))
	assert.False(t, currency.IsValidFormat("US"))
	assert.False(t, currency.IsValidFormat("USDT"))
	assert.False(t, currency.IsValidFormat("U5D"))
	assert.False(t, currency.IsValidFormat(""))
}
