// Package format renders monetary and numeric values for display.
package format

import (
	"strings"

	"github.com/iwvelando/capital-simulator/pkg/constants"
	"github.com/shopspring/decimal"
)

// Currency returns a currency string with the real prefix and Brazilian
// separators (e.g., "R$ 1.234,56", "-R$ 0,50").
func Currency(amount decimal.Decimal) string {
	formatted := formatPositiveCurrency(amount.Abs())
	if amount.IsNegative() {
		return "-" + constants.CurrencyPrefix + formatted
	}
	return constants.CurrencyPrefix + formatted
}

// Number returns the shortest decimal representation of value, without
// grouping or trailing zeros (e.g., "4000", "8.5").
func Number(value decimal.Decimal) string {
	return value.String()
}

// GroupThousands inserts sep every three digits from the right of digits.
func GroupThousands(digits string, sep byte) string {
	if len(digits) <= 3 {
		return digits
	}

	var builder strings.Builder
	builder.Grow(len(digits) + len(digits)/3)
	for i := 0; i < len(digits); i++ {
		if i > 0 && (len(digits)-i)%3 == 0 {
			builder.WriteByte(sep)
		}
		builder.WriteByte(digits[i])
	}
	return builder.String()
}

func formatPositiveCurrency(value decimal.Decimal) string {
	formatted := value.StringFixed(2)
	parts := strings.SplitN(formatted, ".", 2)
	intPart := parts[0]
	decPart := "00"
	if len(parts) == 2 {
		decPart = parts[1]
	}

	return GroupThousands(intPart, constants.ThousandsSeparator) + string(constants.DecimalSeparator) + decPart
}
