package compare

import (
	"encoding/csv"
	"strings"
)

// CSVFormatter formats a state comparison as CSV
type CSVFormatter struct{}

// Format writes one row for the base state and one per alternative
func (cf *CSVFormatter) Format(compSet *ComparisonSet) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	header := []string{
		"State",
		"Name",
		"Type",
		"State Rate",
		"Lump Sum Net",
		"Lump Sum Taxes",
		"Annuity Net",
		"Annuity Taxes",
		"First Year Net",
		"Breakeven Rate",
		"Lump Sum Diff from Base",
		"Lump Sum % Change",
		"Annuity Diff from Base",
	}
	if err := writer.Write(header); err != nil {
		return "", err
	}

	if compSet.BaseResult != nil {
		if err := writer.Write(cf.formatRow(compSet.BaseResult, "base")); err != nil {
			return "", err
		}
	}
	for i := range compSet.AlternativeResults {
		if err := writer.Write(cf.formatRow(&compSet.AlternativeResults[i], "alternative")); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func (cf *CSVFormatter) formatRow(result *ComparisonResult, kind string) []string {
	return []string{
		result.StateCode,
		result.StateName,
		kind,
		result.StateRate.StringFixed(4),
		result.LumpSumNet.StringFixed(2),
		result.LumpSumTaxes.StringFixed(2),
		result.AnnuityNet.StringFixed(2),
		result.AnnuityTaxes.StringFixed(2),
		result.FirstYearNet.StringFixed(2),
		result.BreakevenRate.StringFixed(6),
		result.LumpSumDiffFromBase.StringFixed(2),
		result.LumpSumPctFromBase.StringFixed(2),
		result.AnnuityDiffFromBase.StringFixed(2),
	}
}
