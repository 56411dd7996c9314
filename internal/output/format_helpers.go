package output

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatCurrency renders whole US dollars with thousands separators, e.g.
// "$1,234,568" or "-$50".
func FormatCurrency(amount decimal.Decimal) string {
	rounded := amount.Round(0)
	sign := ""
	if rounded.IsNegative() {
		sign = "-"
		rounded = rounded.Abs()
	}
	return sign + "$" + groupThousands(rounded.StringFixed(0))
}

// FormatCurrencyCents renders dollars and cents with thousands separators
func FormatCurrencyCents(amount decimal.Decimal) string {
	rounded := amount.Round(2)
	sign := ""
	if rounded.IsNegative() {
		sign = "-"
		rounded = rounded.Abs()
	}
	s := rounded.StringFixed(2)
	whole, cents := s[:len(s)-3], s[len(s)-2:]
	return sign + "$" + groupThousands(whole) + "." + cents
}

// FormatPercentage renders a fraction as a percentage with two decimals,
// e.g. 0.0221 as "2.21%".
func FormatPercentage(rate decimal.Decimal) string {
	return rate.Mul(decimal.NewFromInt(100)).StringFixed(2) + "%"
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var sb strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		sb.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if sb.Len() > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(digits[i : i+3])
	}
	return sb.String()
}
