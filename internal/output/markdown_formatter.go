package output

import (
	"bytes"
	"fmt"

	"github.com/rgehrsitz/jackpot/internal/compare"
	"github.com/rgehrsitz/jackpot/internal/domain"
)

// MarkdownFormatter renders the report as GitHub-flavored Markdown
type MarkdownFormatter struct{}

func (m MarkdownFormatter) Name() string      { return "markdown" }
func (m MarkdownFormatter) Extension() string { return "md" }

func (m MarkdownFormatter) Format(eval *domain.Evaluation) ([]byte, error) {
	var buf bytes.Buffer
	in := eval.Input

	fmt.Fprintf(&buf, "# Lottery Payout Analysis\n\n")
	fmt.Fprintf(&buf, "- **Advertised jackpot:** %s\n", FormatCurrency(in.AdvertisedJackpot))
	fmt.Fprintf(&buf, "- **Cash value:** %s%%\n", in.CashValuePercent.StringFixed(1))
	fmt.Fprintf(&buf, "- **State:** %s (%s)\n", eval.StateName, in.StateCode)
	fmt.Fprintf(&buf, "- **Filing status:** %s\n\n", in.FilingStatus.Label())

	fmt.Fprintf(&buf, "## Lump Sum vs. Annuity\n\n")
	fmt.Fprintf(&buf, "| | Lump Sum | Annuity | Difference |\n")
	fmt.Fprintf(&buf, "|---|---:|---:|---:|\n")
	for _, row := range compare.Payouts(eval).Rows {
		label := row.Label
		if row.Label == compare.RowNet {
			label = "**" + label + "**"
		}
		fmt.Fprintf(&buf, "| %s | %s | %s | %s |\n",
			label, FormatCurrency(row.LumpSum), FormatCurrency(row.Annuity), FormatCurrency(row.Difference))
	}

	fmt.Fprintf(&buf, "\n## Breakeven\n\n")
	fmt.Fprintf(&buf, "The lump sum must earn **%s** a year for %d years to match the annuity's total net payout.\n\n",
		FormatPercentage(eval.BreakevenRate), eval.Assumptions.AnnuityYears)
	fmt.Fprintf(&buf, "First-year annuity payment after taxes: **%s**\n\n", FormatCurrency(eval.Annuity.FirstYearNet))

	if len(eval.Schedule) > 0 {
		fmt.Fprintf(&buf, "## Annuity Schedule\n\n")
		fmt.Fprintf(&buf, "| Year | Gross | Federal Tax | State Tax | Net | Cumulative Net |\n")
		fmt.Fprintf(&buf, "|---:|---:|---:|---:|---:|---:|\n")
		for _, y := range eval.Schedule {
			year := fmt.Sprintf("%d", y.Year)
			if y.Milestone {
				year = "**" + year + "**"
			}
			fmt.Fprintf(&buf, "| %s | %s | %s | %s | %s | %s |\n",
				year,
				FormatCurrencyCents(y.GrossPayment),
				FormatCurrencyCents(y.FederalTax),
				FormatCurrencyCents(y.StateTax),
				FormatCurrencyCents(y.NetPayment),
				FormatCurrencyCents(y.CumulativeNet))
		}
		fmt.Fprintln(&buf)
	}

	fmt.Fprintf(&buf, "## Assumptions\n\n")
	for _, line := range Assumptions(eval.Assumptions) {
		fmt.Fprintf(&buf, "- %s\n", line)
	}

	return buf.Bytes(), nil
}

// Assumptions lists the modeling assumptions behind an evaluation
func Assumptions(a domain.Assumptions) []string {
	return []string{
		fmt.Sprintf("Federal withholding on winnings: %s", FormatPercentage(a.FederalWithholdingRate)),
		fmt.Sprintf("Annuity payments grow %s a year over %d payments", FormatPercentage(a.AnnuityGrowthRate), a.AnnuityYears),
		"Each payment is taxed as a standalone year of income with no deductions",
		"Federal brackets held at current levels (no inflation indexing)",
		"State tax is a flat rate on winnings; exempt states owe nothing",
	}
}
