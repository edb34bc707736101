package types

import (
	"strings"

	"github.com/shopspring/decimal"
)

// DefaultCurrencyPrecision applies to any currency not listed below
const DefaultCurrencyPrecision int32 = 2

// zero-decimal currencies per ISO 4217 minor units
var currencyPrecision = map[string]int32{
	"jpy": 0,
	"krw": 0,
	"vnd": 0,
	"clp": 0,
	"bhd": 3,
	"kwd": 3,
	"omr": 3,
}

// GetCurrencyPrecision returns the number of decimal places for a currency code
func GetCurrencyPrecision(currency string) int32 {
	if p, ok := currencyPrecision[strings.ToLower(currency)]; ok {
		return p
	}
	return DefaultCurrencyPrecision
}

// RoundToCurrencyPrecision rounds a monetary amount to the currency's precision
// using round half up ("0.005" -> "0.01"). All monetary comparisons and sums in
// this codebase happen on values already passed through this function so the
// same rounding policy applies everywhere.
func RoundToCurrencyPrecision(amount decimal.Decimal, currency string) decimal.Decimal {
	return amount.Round(GetCurrencyPrecision(currency))
}
