package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/rgehrsitz/jackpot/internal/compare"
	"github.com/rgehrsitz/jackpot/internal/domain"
)

// ConsoleFormatter prints the payout comparison table, and optionally the
// full year-by-year annuity schedule.
type ConsoleFormatter struct {
	ShowSchedule bool
}

func (c ConsoleFormatter) Name() string {
	if c.ShowSchedule {
		return "console-schedule"
	}
	return "console"
}

func (c ConsoleFormatter) Extension() string { return "txt" }

func (c ConsoleFormatter) Format(eval *domain.Evaluation) ([]byte, error) {
	var buf bytes.Buffer
	in := eval.Input

	fmt.Fprintln(&buf, "LOTTERY PAYOUT ANALYSIS")
	fmt.Fprintln(&buf, strings.Repeat("=", 78))
	fmt.Fprintf(&buf, "Advertised Jackpot: %s\n", FormatCurrency(in.AdvertisedJackpot))
	fmt.Fprintf(&buf, "Cash Value:         %s%%\n", in.CashValuePercent.StringFixed(1))
	fmt.Fprintf(&buf, "State:              %s (%s)\n", eval.StateName, in.StateCode)
	fmt.Fprintf(&buf, "Filing Status:      %s\n", in.FilingStatus.Label())
	fmt.Fprintln(&buf)

	pc := compare.Payouts(eval)
	fmt.Fprintf(&buf, "%-24s %17s %17s %17s\n", "", "Lump Sum", "Annuity", "Difference")
	fmt.Fprintln(&buf, strings.Repeat("-", 78))
	for _, row := range pc.Rows {
		if row.Label == compare.RowNet {
			fmt.Fprintln(&buf, strings.Repeat("-", 78))
		}
		fmt.Fprintf(&buf, "%-24s %17s %17s %17s\n",
			row.Label,
			FormatCurrency(row.LumpSum),
			FormatCurrency(row.Annuity),
			FormatCurrency(row.Difference))
	}
	fmt.Fprintln(&buf, strings.Repeat("=", 78))
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, "BREAKEVEN ANALYSIS")
	fmt.Fprintln(&buf, strings.Repeat("-", 78))
	fmt.Fprintf(&buf, "Breakeven Rate:           %s\n", FormatPercentage(eval.BreakevenRate))
	fmt.Fprintf(&buf, "First Year Annuity (net): %s\n", FormatCurrency(eval.Annuity.FirstYearNet))
	fmt.Fprintf(&buf, "Average Annual Net:       %s\n", FormatCurrency(eval.Annuity.AverageAnnualNet))
	if eval.BreakevenRate.IsZero() {
		fmt.Fprintln(&buf, "The lump sum already meets or exceeds the annuity's total net payout.")
	} else {
		fmt.Fprintf(&buf, "The lump sum must earn at least %s a year for %d years to match the annuity.\n",
			FormatPercentage(eval.BreakevenRate), eval.Assumptions.AnnuityYears)
	}

	if c.ShowSchedule {
		fmt.Fprintln(&buf)
		writeSchedule(&buf, eval.Schedule)
	}

	return buf.Bytes(), nil
}

func writeSchedule(buf *bytes.Buffer, schedule domain.AnnuitySchedule) {
	fmt.Fprintln(buf, "ANNUITY PAYMENT SCHEDULE")
	fmt.Fprintln(buf, strings.Repeat("=", 86))
	fmt.Fprintf(buf, "%-6s %15s %15s %15s %15s %15s\n", "Year", "Gross", "Federal Tax", "State Tax", "Net", "Cumulative")
	fmt.Fprintln(buf, strings.Repeat("-", 86))
	for _, y := range schedule {
		marker := " "
		if y.Milestone {
			marker = "*"
		}
		fmt.Fprintf(buf, "%-5d%s %15s %15s %15s %15s %15s\n",
			y.Year, marker,
			FormatCurrency(y.GrossPayment),
			FormatCurrency(y.FederalTax),
			FormatCurrency(y.StateTax),
			FormatCurrency(y.NetPayment),
			FormatCurrency(y.CumulativeNet))
	}
	fmt.Fprintln(buf, strings.Repeat("-", 86))
	fmt.Fprintf(buf, "%-6s %15s\n", "Total", FormatCurrency(schedule.TotalGross()))
	fmt.Fprintln(buf, "* milestone year")
}
