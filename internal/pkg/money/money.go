// Package money formats integer minor-unit amounts for display.
// Balances are stored as cents throughout; decimals are presentation only.
package money

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// FormatCents renders cents as a dollar string, e.g. 2000 -> "$20.00"
// and -125 -> "-$1.25".
func FormatCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	amount := decimal.NewFromInt(cents).Div(hundred)
	return sign + "$" + amount.StringFixed(2)
}
