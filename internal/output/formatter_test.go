package output

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rgehrsitz/jackpot/internal/calculation"
	"github.com/rgehrsitz/jackpot/internal/config"
	"github.com/rgehrsitz/jackpot/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEngine(t *testing.T) *calculation.Engine {
	t.Helper()
	engine, err := calculation.NewEngineForProduct(config.MustDefaultRegulatoryConfig(), "powerball")
	require.NoError(t, err)
	return engine
}

func sampleEvaluation(t *testing.T) *domain.Evaluation {
	t.Helper()
	eval, err := newEngine(t).Evaluate(context.Background(), domain.Input{
		AdvertisedJackpot: decimal.NewFromInt(1_000_000_000),
		CashValuePercent:  decimal.NewFromInt(52),
		StateCode:         "CA",
		FilingStatus:      domain.FilingSingle,
	})
	require.NoError(t, err)
	return eval
}

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "$0"},
		{"999.49", "$999"},
		{"999.5", "$1,000"},
		{"1234567.89", "$1,234,568"},
		{"520000000", "$520,000,000"},
		{"-50", "-$50"},
		{"-1234567", "-$1,234,567"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatCurrency(decimal.RequireFromString(tt.in)))
		})
	}
}

func TestFormatCurrencyCents(t *testing.T) {
	assert.Equal(t, "$192,357,020.25", FormatCurrencyCents(decimal.RequireFromString("192357020.25")))
	assert.Equal(t, "$0.50", FormatCurrencyCents(decimal.RequireFromString("0.5")))
	assert.Equal(t, "-$1,000.00", FormatCurrencyCents(decimal.RequireFromString("-1000")))
}

func TestFormatPercentage(t *testing.T) {
	assert.Equal(t, "2.21%", FormatPercentage(decimal.RequireFromString("0.0221020378")))
	assert.Equal(t, "0.00%", FormatPercentage(decimal.Zero))
	assert.Equal(t, "10.75%", FormatPercentage(decimal.RequireFromString("0.1075")))
}

func TestGetFormatterByName(t *testing.T) {
	tests := map[string]string{
		"console":     "console",
		"TABLE":       "console",
		"verbose":     "console-schedule",
		"json":        "json",
		"csv":         "csv",
		"md":          "markdown",
		" html ":      "html",
		"json-pretty": "json",
	}
	for in, want := range tests {
		f := GetFormatterByName(in)
		require.NotNil(t, f, in)
		assert.Equal(t, want, f.Name())
	}

	assert.Nil(t, GetFormatterByName("pdf"))
	assert.Equal(t, []string{"console", "console-schedule", "csv", "html", "json", "markdown"}, AvailableFormatterNames())
}

func TestConsoleFormatter(t *testing.T) {
	eval := sampleEvaluation(t)

	out, err := ConsoleFormatter{}.Format(eval)
	require.NoError(t, err)
	s := string(out)

	assert.Contains(t, s, "LOTTERY PAYOUT ANALYSIS")
	assert.Contains(t, s, "California (CA)")
	assert.Contains(t, s, "$520,000,000")
	assert.Contains(t, s, "$327,642,980")
	assert.Contains(t, s, "Breakeven Rate:           2.21%")
	assert.NotContains(t, s, "ANNUITY PAYMENT SCHEDULE")

	out, err = ConsoleFormatter{ShowSchedule: true}.Format(eval)
	require.NoError(t, err)
	s = string(out)
	assert.Contains(t, s, "ANNUITY PAYMENT SCHEDULE")
	assert.Contains(t, s, "$15,051,435")
	assert.Contains(t, s, "$1,000,000,000")
}

func TestJSONFormatter(t *testing.T) {
	out, err := JSONFormatter{}.Format(sampleEvaluation(t))
	require.NoError(t, err)

	var decoded struct {
		StateName     string `json:"stateName"`
		BreakevenRate string `json:"breakevenRate"`
		LumpSum       struct {
			TotalFederalTax string `json:"totalFederalTax"`
		} `json:"lumpSum"`
		Schedule   []json.RawMessage `json:"schedule"`
		Comparison struct {
			Rows []struct {
				Label string `json:"label"`
			} `json:"rows"`
		} `json:"comparison"`
	}
	require.NoError(t, json.Unmarshal(out, &decoded))

	assert.Equal(t, "California", decoded.StateName)
	assert.Equal(t, "0.022102", decoded.BreakevenRate)
	assert.Equal(t, "192357020.25", decoded.LumpSum.TotalFederalTax)
	assert.Len(t, decoded.Schedule, 30)
	assert.Len(t, decoded.Comparison.Rows, 5)
}

func TestScheduleCSVFormatter(t *testing.T) {
	out, err := ScheduleCSVFormatter{}.Format(sampleEvaluation(t))
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(string(out))).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 31)
	assert.Equal(t, "Year", records[0][0])
	assert.Equal(t, []string{"1", "15051435.08"}, records[1][:2])
	assert.Equal(t, "true", records[1][6])
	assert.Equal(t, "false", records[2][6])
}

func TestMarkdownAndHTMLFormatters(t *testing.T) {
	eval := sampleEvaluation(t)

	md, err := MarkdownFormatter{}.Format(eval)
	require.NoError(t, err)
	assert.Contains(t, string(md), "# Lottery Payout Analysis")
	assert.Contains(t, string(md), "| **Net Payout** |")
	assert.Contains(t, string(md), "**2.21%**")
	assert.Contains(t, string(md), "## Annuity Schedule")
	assert.Contains(t, string(md), "| **1** | $15,051,435.08 |", "schedule rows are shown to the cent")

	html, err := HTMLFormatter{}.Format(eval)
	require.NoError(t, err)
	s := string(html)
	assert.True(t, strings.HasPrefix(s, "<!DOCTYPE html>"))
	assert.Contains(t, s, "<title>$1,000,000,000 jackpot in California</title>")
	assert.Contains(t, s, "<h1>Lottery Payout Analysis</h1>")
	assert.Contains(t, s, "<table>")
	assert.Contains(t, s, "<strong>Net Payout</strong>")
}

func TestWriteFormatted(t *testing.T) {
	dir := t.TempDir()
	path, err := WriteFormatted(MarkdownFormatter{}, sampleEvaluation(t), dir)
	require.NoError(t, err)

	assert.Equal(t, dir, filepath.Dir(path))
	assert.True(t, strings.HasSuffix(path, ".md"))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}

func TestSensitivityFormatters(t *testing.T) {
	in := domain.Input{
		AdvertisedJackpot: decimal.NewFromInt(1_000_000_000),
		StateCode:         "CA",
		FilingStatus:      domain.FilingSingle,
	}
	points, err := newEngine(t).CashValueSensitivity(context.Background(), in, calculation.DefaultSensitivityRange())
	require.NoError(t, err)

	console, err := NewSensitivityFormatter("table").FormatSensitivity(points)
	require.NoError(t, err)
	assert.Contains(t, console, "SENSITIVITY ANALYSIS")
	assert.Contains(t, console, "Range: 40.0% to 65.0% (26 steps)")

	csvOut, err := NewSensitivityFormatter("csv").FormatSensitivity(points)
	require.NoError(t, err)
	assert.Equal(t, 27, strings.Count(csvOut, "\n"))

	jsonOut, err := NewSensitivityFormatter("json").FormatSensitivity(points)
	require.NoError(t, err)
	var decoded []map[string]string
	require.NoError(t, json.Unmarshal([]byte(jsonOut), &decoded))
	assert.Len(t, decoded, 26)

	_, err = SensitivityConsoleFormatter{}.FormatSensitivity(nil)
	assert.Error(t, err)
}

func TestFormatStates(t *testing.T) {
	states := config.MustDefaultRegulatoryConfig().LotteryStates()
	out := FormatStates(states)

	assert.Contains(t, out, "NJ    New Jersey")
	assert.Contains(t, out, "10.75%")
	assert.Contains(t, out, "exempt")
	assert.NotContains(t, out, "Nevada")
}
