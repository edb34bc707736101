package types

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestRoundToCurrencyPrecision(t *testing.T) {
	tests := []struct {
		name     string
		amount   string
		currency string
		expected string
	}{
		{"usd_half_up", "19.995", "usd", "20"},
		{"usd_half_up_cent", "0.005", "usd", "0.01"},
		{"usd_down", "10.274", "usd", "10.27"},
		{"usd_up", "10.275", "usd", "10.28"},
		{"eur_default_precision", "10.275", "eur", "10.28"},
		{"jpy_no_decimals", "1000.5", "jpy", "1001"},
		{"kwd_three_decimals", "1.2345", "kwd", "1.235"},
		{"unknown_currency_defaults_to_two", "10.275", "xyz", "10.28"},
		{"already_rounded", "10.27", "usd", "10.27"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			amount, err := decimal.NewFromString(tt.amount)
			assert.NoError(t, err)

			rounded := RoundToCurrencyPrecision(amount, tt.currency)
			assert.Equal(t, tt.expected, rounded.String())
		})
	}
}

func TestRoundToCurrencyPrecisionIsIdempotent(t *testing.T) {
	amount, _ := decimal.NewFromString("10.275")
	once := RoundToCurrencyPrecision(amount, "usd")
	twice := RoundToCurrencyPrecision(once, "usd")
	assert.True(t, once.Equal(twice))
}
