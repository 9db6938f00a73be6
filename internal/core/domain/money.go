package domain

import "github.com/shopspring/decimal"

// FormatAmount renders minor units for humans, e.g. 150050 USD -> "$1500.50".
func FormatAmount(minor int64, currency Currency) string {
	major := decimal.New(minor, -2).StringFixed(2)
	switch currency {
	case CurrencyUSD:
		return "$" + major
	case CurrencyEUR:
		return "€" + major
	case CurrencyUZS:
		return "UZS " + major
	default:
		return string(currency) + " " + major
	}
}
