package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rgehrsitz/jackpot/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRegulatoryConfig(t *testing.T) {
	cfg, err := DefaultRegulatoryConfig()
	require.NoError(t, err)

	assert.Equal(t, 2025, cfg.Metadata.TaxYear)

	for _, status := range domain.FilingStatuses {
		brackets, ok := cfg.Brackets(status)
		require.True(t, ok, "brackets for %s", status)
		assert.Len(t, brackets, 7)
		assert.True(t, brackets[len(brackets)-1].Unbounded())
		assert.True(t, brackets[len(brackets)-1].Rate.Equal(decimal.NewFromFloat(0.37)))
	}

	single, _ := cfg.Brackets(domain.FilingSingle)
	require.NotNil(t, single[0].Max)
	assert.True(t, single[0].Max.Equal(decimal.NewFromInt(11925)))

	// 50 states plus DC
	assert.Len(t, cfg.States, 51)

	nj, ok := cfg.StateProfile("nj")
	require.True(t, ok)
	assert.True(t, nj.EffectiveRate().Equal(decimal.NewFromFloat(0.1075)))

	ca, ok := cfg.StateProfile("CA")
	require.True(t, ok)
	assert.True(t, ca.HasLottery)
	assert.False(t, ca.TaxesWinnings)
	assert.True(t, ca.EffectiveRate().IsZero())

	nv, ok := cfg.StateProfile("NV")
	require.True(t, ok)
	assert.False(t, nv.HasLottery)

	pb, err := domain.ProductAssumptions(cfg.Products, "Powerball")
	require.NoError(t, err)
	assert.Equal(t, 30, pb.AnnuityYears)
	assert.True(t, pb.FederalWithholdingRate.Equal(decimal.NewFromFloat(0.24)))

	_, err = domain.ProductAssumptions(cfg.Products, "mega-millions")
	assert.NoError(t, err)
}

func TestDefaultRegulatoryConfig_IndependentCopies(t *testing.T) {
	a := MustDefaultRegulatoryConfig()
	b := MustDefaultRegulatoryConfig()

	a.States["TX"] = domain.StateTaxProfile{Name: "Changed"}
	tx, _ := b.StateProfile("TX")
	assert.Equal(t, "Texas", tx.Name)
}

func TestLotteryStates(t *testing.T) {
	cfg := MustDefaultRegulatoryConfig()
	states := cfg.LotteryStates()

	for _, s := range states {
		assert.NotContains(t, []string{"AL", "AK", "HI", "NV", "UT"}, s.Code)
	}
	for i := 1; i < len(states); i++ {
		assert.True(t, states[i-1].Name < states[i].Name, "sorted by name")
	}

	labels := make(map[string]string)
	for _, s := range states {
		labels[s.Code] = s.Label
	}
	assert.Equal(t, "California (Tax-Free)", labels["CA"])
	assert.Equal(t, "New Jersey (10.8% tax)", labels["NJ"])
}

func TestParseRegulatoryConfig_Invalid(t *testing.T) {
	base, err := os.ReadFile(filepath.Join("taxdata", "tax_tables_2025.yaml"))
	require.NoError(t, err)

	tests := []struct {
		name    string
		mutate  func(string) string
		wantErr string
	}{
		{
			name: "gap between brackets",
			mutate: func(s string) string {
				return strings.Replace(s, "{ min: 11925, max: 48475, rate: 0.12 }", "{ min: 12000, max: 48475, rate: 0.12 }", 1)
			},
			wantErr: "bracket 0 ends at",
		},
		{
			name: "bounded top bracket",
			mutate: func(s string) string {
				return strings.Replace(s, "{ min: 626350, rate: 0.37 }", "{ min: 626350, max: 999999999, rate: 0.37 }", 1)
			},
			wantErr: "last bracket must be unbounded",
		},
		{
			name: "bad withholding",
			mutate: func(s string) string {
				return strings.Replace(s, "federal_withholding_rate: 0.24", "federal_withholding_rate: 1.5", 1)
			},
			wantErr: "federal_withholding_rate",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseRegulatoryConfig([]byte(tt.mutate(string(base))))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestParseRegulatoryConfig_MissingStatus(t *testing.T) {
	doc := `
federal:
  single:
    - { min: 0, rate: 0.10 }
states:
  TX: { name: Texas, rate: 0, has_lottery: true, taxes_winnings: false }
`
	_, err := ParseRegulatoryConfig([]byte(doc))
	assert.ErrorContains(t, err, "federal brackets missing")
}

func TestParseRegulatoryConfig_ProductKeys(t *testing.T) {
	base, err := os.ReadFile(filepath.Join("taxdata", "tax_tables_2025.yaml"))
	require.NoError(t, err)

	doc := strings.Replace(string(base), "  megamillions:\n", "  Mega_Millions:\n", 1)
	require.NotEqual(t, string(base), doc)

	cfg, err := ParseRegulatoryConfig([]byte(doc))
	require.NoError(t, err)
	assert.Contains(t, cfg.Products, domain.ProductMegaMillions)
	assert.NotContains(t, cfg.Products, "Mega_Millions")

	for _, name := range []string{"megamillions", "Mega-Millions", "mega millions"} {
		a, err := domain.ProductAssumptions(cfg.Products, name)
		require.NoError(t, err, name)
		assert.Equal(t, 30, a.AnnuityYears)
	}

	dup := strings.Replace(string(base), "  megamillions:\n", "  mega-millions:\n    federal_withholding_rate: 0.24\n    annuity_growth_rate: 0.05\n    annuity_years: 30\n  megamillions:\n", 1)
	_, err = ParseRegulatoryConfig([]byte(dup))
	assert.ErrorContains(t, err, "declared more than once")
}

func TestLoadRegulatoryConfigOrDefault(t *testing.T) {
	cfg, err := LoadRegulatoryConfigOrDefault("")
	require.NoError(t, err)
	assert.NotEmpty(t, cfg.States)

	_, err = LoadRegulatoryConfigOrDefault(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorContains(t, err, "failed to read regulatory config")
}
