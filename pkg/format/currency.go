// Package format renders amounts the way Colombian readers expect them:
// pesos with "." as thousands separator and "," before the decimals.
package format

import (
	"strings"

	"github.com/shopspring/decimal"
)

const (
	thousandsSeparator = "."
	decimalSeparator   = ","
)

// Currency returns whole pesos with a symbol and separators (e.g., "-$1.234.568").
func Currency(amount float64) string {
	return withSymbol(amount, 0)
}

// Plain returns a machine-readable amount rounded to cents (e.g., "-1234567.89").
func Plain(amount float64) string {
	return decimal.NewFromFloat(amount).StringFixed(2)
}

// Percent renders a percentage value with two decimals (e.g., "12,50%").
func Percent(rate float64) string {
	return group(decimal.NewFromFloat(rate), 2) + "%"
}

// Days renders a day count, dropping the decimals of whole values (e.g., "15,21").
func Days(days float64) string {
	d := decimal.NewFromFloat(days).Round(2)
	if d.Equal(d.Truncate(0)) {
		return group(d, 0)
	}
	return group(d, 2)
}

func withSymbol(amount float64, places int32) string {
	d := decimal.NewFromFloat(amount)
	if d.Round(places).IsNegative() {
		return "-$" + group(d.Abs(), places)
	}
	return "$" + group(d.Abs(), places)
}

// group rounds half away from zero and inserts the separators.
func group(d decimal.Decimal, places int32) string {
	formatted := d.StringFixed(places)
	sign := ""
	if strings.HasPrefix(formatted, "-") {
		sign = "-"
		formatted = formatted[1:]
	}
	parts := strings.SplitN(formatted, ".", 2)
	intPart := parts[0]

	if len(intPart) > 3 {
		var builder strings.Builder
		for i, digit := range intPart {
			if i > 0 && (len(intPart)-i)%3 == 0 {
				builder.WriteString(thousandsSeparator)
			}
			builder.WriteRune(digit)
		}
		intPart = builder.String()
	}

	if len(parts) == 2 {
		return sign + intPart + decimalSeparator + parts[1]
	}
	return sign + intPart
}
