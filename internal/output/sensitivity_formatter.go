package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rgehrsitz/jackpot/internal/domain"
)

// SensitivityFormatter renders a cash-value sweep
type SensitivityFormatter interface {
	FormatSensitivity(points []domain.SensitivityPoint) (string, error)
	Name() string
}

// SensitivityConsoleFormatter prints the sweep as a table
type SensitivityConsoleFormatter struct{}

func (scf SensitivityConsoleFormatter) Name() string { return "console" }

func (scf SensitivityConsoleFormatter) FormatSensitivity(points []domain.SensitivityPoint) (string, error) {
	if len(points) == 0 {
		return "", fmt.Errorf("no sensitivity points to format")
	}

	var buf bytes.Buffer
	fmt.Fprintln(&buf, "SENSITIVITY ANALYSIS: CASH VALUE PERCENTAGE")
	fmt.Fprintln(&buf, strings.Repeat("=", 66))
	fmt.Fprintf(&buf, "Range: %s%% to %s%% (%d steps)\n\n",
		points[0].CashValuePercent.StringFixed(1),
		points[len(points)-1].CashValuePercent.StringFixed(1),
		len(points))

	fmt.Fprintf(&buf, "%-10s %18s %18s %15s\n", "Cash %", "Lump Sum Net", "Annuity Net", "Breakeven")
	fmt.Fprintln(&buf, strings.Repeat("-", 66))
	for _, p := range points {
		fmt.Fprintf(&buf, "%-10s %18s %18s %15s\n",
			p.CashValuePercent.StringFixed(1)+"%",
			FormatCurrency(p.LumpSumNet),
			FormatCurrency(p.AnnuityNet),
			FormatPercentage(p.BreakevenRate))
	}

	// the first percentage at which the lump sum alone matches the annuity
	for _, p := range points {
		if p.BreakevenRate.IsZero() {
			fmt.Fprintf(&buf, "\nAt %s%% cash value or above the lump sum needs no growth to match the annuity.\n",
				p.CashValuePercent.StringFixed(1))
			break
		}
	}
	return buf.String(), nil
}

// SensitivityCSVFormatter exports the sweep as CSV
type SensitivityCSVFormatter struct{}

func (scf SensitivityCSVFormatter) Name() string { return "csv" }

func (scf SensitivityCSVFormatter) FormatSensitivity(points []domain.SensitivityPoint) (string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"CashValuePercent", "LumpSumNet", "AnnuityNet", "BreakevenRate"}); err != nil {
		return "", err
	}
	for _, p := range points {
		if err := w.Write([]string{
			p.CashValuePercent.StringFixed(2),
			p.LumpSumNet.StringFixed(2),
			p.AnnuityNet.StringFixed(2),
			p.BreakevenRate.StringFixed(6),
		}); err != nil {
			return "", err
		}
	}
	w.Flush()
	return buf.String(), w.Error()
}

// SensitivityJSONFormatter exports the sweep as JSON
type SensitivityJSONFormatter struct{}

func (sjf SensitivityJSONFormatter) Name() string { return "json" }

func (sjf SensitivityJSONFormatter) FormatSensitivity(points []domain.SensitivityPoint) (string, error) {
	rounded := make([]domain.SensitivityPoint, len(points))
	for i, p := range points {
		rounded[i] = domain.SensitivityPoint{
			CashValuePercent: p.CashValuePercent,
			LumpSumNet:       p.LumpSumNet.Round(2),
			AnnuityNet:       p.AnnuityNet.Round(2),
			BreakevenRate:    p.BreakevenRate.Round(6),
		}
	}
	data, err := json.MarshalIndent(rounded, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// NewSensitivityFormatter creates a sensitivity formatter based on the format name
func NewSensitivityFormatter(format string) SensitivityFormatter {
	switch NormalizeFormatName(format) {
	case "csv":
		return SensitivityCSVFormatter{}
	case "json":
		return SensitivityJSONFormatter{}
	default:
		return SensitivityConsoleFormatter{}
	}
}

// FormatStates renders the lottery state picker as a table
func FormatStates(states []domain.StateOption) string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%-5s %-24s %8s\n", "Code", "State", "Rate")
	fmt.Fprintln(&buf, strings.Repeat("-", 39))
	for _, s := range states {
		rate := "exempt"
		if s.Taxable {
			rate = FormatPercentage(s.Rate)
		}
		fmt.Fprintf(&buf, "%-5s %-24s %8s\n", s.Code, s.Name, rate)
	}
	return buf.String()
}
