package compare

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// TableFormatter formats a state comparison as a console table
type TableFormatter struct{}

// Format generates a table with the base state first, then the alternatives
func (tf *TableFormatter) Format(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString("STATE TAX COMPARISON\n")
	sb.WriteString(strings.Repeat("=", 88) + "\n")
	sb.WriteString(fmt.Sprintf("Jackpot: $%s  Cash value: %s%%  Filing status: %s\n",
		tf.formatDecimal(compSet.AdvertisedJackpot),
		compSet.CashValuePercent.StringFixed(1),
		compSet.FilingStatus.Label()))
	sb.WriteString(fmt.Sprintf("Base State: %s\n\n", compSet.BaseState))

	nameWidth := 24
	numWidth := 15

	sb.WriteString(fmt.Sprintf("%-*s %*s %*s %*s %*s\n",
		nameWidth, "State",
		numWidth-6, "Rate",
		numWidth, "Lump Sum Net",
		numWidth, "Annuity Net",
		numWidth, "Breakeven"))
	sb.WriteString(strings.Repeat("-", 88) + "\n")

	if compSet.BaseResult != nil {
		sb.WriteString(tf.formatRow(compSet.BaseResult, nameWidth, numWidth, true))
	}

	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString(strings.Repeat("-", 88) + "\n")
		for i := range compSet.AlternativeResults {
			sb.WriteString(tf.formatRow(&compSet.AlternativeResults[i], nameWidth, numWidth, false))
		}
	}

	sb.WriteString(strings.Repeat("=", 88) + "\n")

	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString("\nCOMPARISON TO BASE\n")
		sb.WriteString(strings.Repeat("-", 88) + "\n")
		for _, alt := range compSet.AlternativeResults {
			sb.WriteString(fmt.Sprintf("%-*s lump sum %s$%s (%s%%), annuity %s$%s\n",
				nameWidth, tf.truncate(alt.StateName+":", nameWidth),
				tf.deltaSymbol(alt.LumpSumDiffFromBase),
				tf.formatDecimal(alt.LumpSumDiffFromBase.Abs()),
				alt.LumpSumPctFromBase.StringFixed(1),
				tf.deltaSymbol(alt.AnnuityDiffFromBase),
				tf.formatDecimal(alt.AnnuityDiffFromBase.Abs())))
		}
	}

	if len(compSet.Recommendations) > 0 {
		sb.WriteString("\nRECOMMENDATIONS\n")
		sb.WriteString(strings.Repeat("-", 88) + "\n")
		for _, rec := range compSet.Recommendations {
			sb.WriteString(fmt.Sprintf("• %s\n", rec))
		}
	}

	return sb.String()
}

func (tf *TableFormatter) formatRow(result *ComparisonResult, nameWidth, numWidth int, isBase bool) string {
	name := result.StateName
	if isBase {
		name += " (base)"
	}

	rate := "exempt"
	if result.StateRate.IsPositive() {
		rate = result.StateRate.Mul(decimal.NewFromInt(100)).StringFixed(2) + "%"
	}

	return fmt.Sprintf("%-*s %*s %*s %*s %*s\n",
		nameWidth, tf.truncate(name, nameWidth),
		numWidth-6, rate,
		numWidth, "$"+tf.formatDecimal(result.LumpSumNet),
		numWidth, "$"+tf.formatDecimal(result.AnnuityNet),
		numWidth, result.BreakevenRate.Mul(decimal.NewFromInt(100)).StringFixed(2)+"%")
}

// formatDecimal abbreviates large amounts (millions, thousands)
func (tf *TableFormatter) formatDecimal(d decimal.Decimal) string {
	if d.Abs().GreaterThanOrEqual(decimal.NewFromInt(1000000)) {
		return d.Div(decimal.NewFromInt(1000000)).StringFixed(2) + "M"
	} else if d.Abs().GreaterThanOrEqual(decimal.NewFromInt(1000)) {
		return d.Div(decimal.NewFromInt(1000)).StringFixed(1) + "K"
	}
	return d.StringFixed(0)
}

func (tf *TableFormatter) deltaSymbol(delta decimal.Decimal) string {
	if delta.IsNegative() {
		return "-"
	}
	return "+"
}

func (tf *TableFormatter) truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

// FormatCompact creates a one-line summary of lump-sum deltas
func (tf *TableFormatter) FormatCompact(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Base: %s | ", compSet.BaseState))
	for i, alt := range compSet.AlternativeResults {
		if i > 0 {
			sb.WriteString(" | ")
		}
		change := "="
		if !alt.LumpSumDiffFromBase.IsZero() {
			change = tf.deltaSymbol(alt.LumpSumDiffFromBase) + "$" + tf.formatDecimal(alt.LumpSumDiffFromBase.Abs())
		}
		sb.WriteString(fmt.Sprintf("%s: %s", alt.StateCode, change))
	}
	return sb.String()
}
