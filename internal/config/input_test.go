package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rgehrsitz/jackpot/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		wantErr  bool
	}{
		{"plain", "1000000000", "1000000000", false},
		{"commas", "1,000,000,000", "1000000000", false},
		{"dollar sign", "$1,000,000,000", "1000000000", false},
		{"whitespace", "  $ 250,000 ", "250000", false},
		{"decimals", "1234.56", "1234.56", false},
		{"millions suffix", "750M", "750000000", false},
		{"billions suffix", "1.5b", "1500000000", false},
		{"empty", "", "", true},
		{"dollar only", "$", "", true},
		{"garbage", "lots", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAmount(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, domain.ErrInvalidInput))
				return
			}
			require.NoError(t, err)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.expected)), "got %s", got)
		})
	}
}

func TestParsePercent(t *testing.T) {
	got, err := ParsePercent("52%")
	require.NoError(t, err)
	assert.True(t, got.Equal(decimal.NewFromInt(52)))

	got, err = ParsePercent(" 48.5 % ")
	require.NoError(t, err)
	assert.True(t, got.Equal(decimal.RequireFromString("48.5")))

	_, err = ParsePercent("%")
	assert.Error(t, err)
}

func TestInputParser_Parse(t *testing.T) {
	tables := &MustDefaultRegulatoryConfig().TaxTables
	parser := NewInputParser(tables)

	doc := []byte(`
product: powerball
scenarios:
  - name: california
    advertised_jackpot: 1000000000
    cash_value_percent: 52
    state: ca
    filing_status: single
  - advertised_jackpot: 500000000
    cash_value_percent: 48
    state: NJ
    filing_status: mfj
`)

	file, err := parser.Parse(doc)
	require.NoError(t, err)
	require.Len(t, file.Scenarios, 2)

	assert.Equal(t, "powerball", file.Product)
	assert.Equal(t, "california", file.Scenarios[0].Name)
	assert.Equal(t, "CA", file.Scenarios[0].StateCode)
	assert.Equal(t, domain.FilingSingle, file.Scenarios[0].FilingStatus)
	assert.True(t, file.Scenarios[0].AdvertisedJackpot.Equal(decimal.NewFromInt(1_000_000_000)))

	assert.Equal(t, "scenario-2", file.Scenarios[1].Name)
	assert.Equal(t, domain.FilingMarriedJoint, file.Scenarios[1].FilingStatus)
}

func TestInputParser_Validation(t *testing.T) {
	parser := NewInputParser(&MustDefaultRegulatoryConfig().TaxTables)

	valid := func() domain.Input {
		return domain.Input{
			AdvertisedJackpot: decimal.NewFromInt(100_000_000),
			CashValuePercent:  decimal.NewFromInt(50),
			StateCode:         "TX",
			FilingStatus:      domain.FilingSingle,
		}
	}

	tests := []struct {
		name   string
		mutate func(*domain.Input)
		field  string
	}{
		{"zero jackpot", func(in *domain.Input) { in.AdvertisedJackpot = decimal.Zero }, "advertised_jackpot"},
		{"negative jackpot", func(in *domain.Input) { in.AdvertisedJackpot = decimal.NewFromInt(-5) }, "advertised_jackpot"},
		{"zero percent", func(in *domain.Input) { in.CashValuePercent = decimal.Zero }, "cash_value_percent"},
		{"percent over 100", func(in *domain.Input) { in.CashValuePercent = decimal.NewFromInt(101) }, "cash_value_percent"},
		{"bad status", func(in *domain.Input) { in.FilingStatus = "widowed" }, "filing_status"},
		{"missing state", func(in *domain.Input) { in.StateCode = " " }, "state"},
		{"unknown state", func(in *domain.Input) { in.StateCode = "ZZ" }, "state"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid()
			tt.mutate(&in)
			err := parser.ValidateInput(&in)
			require.Error(t, err)
			var inputErr *domain.InputError
			require.True(t, errors.As(err, &inputErr))
			assert.Equal(t, tt.field, inputErr.Field)
		})
	}

	t.Run("valid passes", func(t *testing.T) {
		in := valid()
		assert.NoError(t, parser.ValidateInput(&in))
	})

	t.Run("percent of exactly 100 is allowed", func(t *testing.T) {
		in := valid()
		in.CashValuePercent = decimal.NewFromInt(100)
		assert.NoError(t, parser.ValidateInput(&in))
	})
}

func TestInputParser_ScenarioFileErrors(t *testing.T) {
	parser := NewInputParser(nil)

	_, err := parser.Parse([]byte("scenarios: []\n"))
	assert.ErrorContains(t, err, "no scenarios provided")

	dup := []byte(`
scenarios:
  - { name: a, advertised_jackpot: 1000, cash_value_percent: 50, state: TX, filing_status: single }
  - { name: a, advertised_jackpot: 1000, cash_value_percent: 50, state: TX, filing_status: single }
`)
	_, err = parser.Parse(dup)
	assert.ErrorContains(t, err, "duplicate name")

	_, err = parser.Parse([]byte("scenarios: [unterminated"))
	assert.ErrorContains(t, err, "failed to parse YAML")
}

func TestInputParser_LoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scenarios.yaml")
	content := `
scenarios:
  - name: texas
    advertised_jackpot: "1,000,000"
    cash_value_percent: 50
    state: TX
    filing_status: single
`
	// quoted amounts with commas are not valid decimals
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	_, err := NewInputParser(nil).LoadFromFile(path)
	assert.Error(t, err)

	_, err = NewInputParser(nil).LoadFromFile(filepath.Join(dir, "missing.yaml"))
	assert.ErrorContains(t, err, "failed to read file")
}
