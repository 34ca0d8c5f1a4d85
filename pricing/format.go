package pricing

import "github.com/shopspring/decimal"

// FormatPrice renders a price with exactly two decimals. Halves are rounded
// away from zero on the decimal value, so 1.005 becomes "1.01".
func FormatPrice(price float64) string {
	return decimal.NewFromFloat(price).StringFixed(2)
}
