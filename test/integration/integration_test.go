package integration

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgehrsitz/jackpot/internal/breakeven"
	"github.com/rgehrsitz/jackpot/internal/calculation"
	"github.com/rgehrsitz/jackpot/internal/compare"
	"github.com/rgehrsitz/jackpot/internal/config"
	"github.com/rgehrsitz/jackpot/internal/domain"
	"github.com/rgehrsitz/jackpot/internal/output"
)

const scenarioFile = "../testdata/scenarios.yaml"

// loadScenarios returns an engine for the file's product and its evaluations
func loadScenarios(t *testing.T) (*calculation.Engine, *domain.ScenarioFile, []*domain.Evaluation) {
	t.Helper()
	cfg := config.MustDefaultRegulatoryConfig()

	file, err := config.NewInputParser(&cfg.TaxTables).LoadFromFile(scenarioFile)
	require.NoError(t, err)

	engine, err := calculation.NewEngineForProduct(cfg, file.Product)
	require.NoError(t, err)

	evals := make([]*domain.Evaluation, 0, len(file.Scenarios))
	for _, sc := range file.Scenarios {
		eval, err := engine.Evaluate(context.Background(), sc.Input)
		require.NoError(t, err, sc.Name)
		evals = append(evals, eval)
	}
	return engine, file, evals
}

// TestIntegrationSmokeTest runs a quick smoke test of core functionality
func TestIntegrationSmokeTest(t *testing.T) {
	_, file, evals := loadScenarios(t)
	require.Len(t, file.Scenarios, 4)
	assert.Equal(t, "NJ", file.Scenarios[2].StateCode, "state codes are normalized")
	assert.Equal(t, domain.FilingHeadOfHousehold, file.Scenarios[2].FilingStatus)

	t.Run("reference_jackpot", func(t *testing.T) {
		eval := evals[0]
		assert.Equal(t, "192357020.25", eval.LumpSum.TotalFederalTax.StringFixed(2))
		assert.Equal(t, "327642979.75", eval.LumpSum.NetAmount.StringFixed(2))
		assert.Equal(t, "15051435.08", eval.Annuity.FirstYearGross.StringFixed(2))
		assert.Equal(t, "631289392.50", eval.Annuity.TotalNetPayments.StringFixed(2))
		assert.Equal(t, "0.022102", eval.BreakevenRate.StringFixed(6))
	})

	t.Run("every_format", func(t *testing.T) {
		for _, name := range output.AvailableFormatterNames() {
			f := output.GetFormatterByName(name)
			for _, eval := range evals {
				data, err := f.Format(eval)
				require.NoError(t, err, "%s / %s", name, eval.StateName)
				assert.NotEmpty(t, data)
			}
		}
	})
}

// TestIntegrationDataConsistency checks the relationships every evaluation must hold
func TestIntegrationDataConsistency(t *testing.T) {
	engine, file, evals := loadScenarios(t)
	years := engine.Assumptions.AnnuityYears
	cent := decimal.NewFromFloat(0.01)

	for i, eval := range evals {
		in := file.Scenarios[i].Input
		t.Run(file.Scenarios[i].Name, func(t *testing.T) {
			lump := eval.LumpSum
			cash := in.AdvertisedJackpot.Mul(in.CashValuePercent).Div(decimal.NewFromInt(100))
			assert.True(t, lump.CashValue.Equal(cash), "cash value is the advertised share")
			assert.True(t, lump.NetAmount.Equal(lump.CashValue.Sub(lump.TotalFederalTax).Sub(lump.StateTax)))
			assert.True(t, lump.FederalShortage.Equal(lump.TotalFederalTax.Sub(lump.FederalWithholding)))
			assert.True(t, lump.DisplayShortage().GreaterThanOrEqual(decimal.Zero))

			require.Len(t, eval.Schedule, years)
			assert.True(t, eval.Schedule.TotalGross().Sub(in.AdvertisedJackpot).Abs().LessThan(cent),
				"payments sum to the advertised jackpot, got %s", eval.Schedule.TotalGross())

			last := eval.Schedule[len(eval.Schedule)-1]
			assert.True(t, last.CumulativeNet.Equal(eval.Annuity.TotalNetPayments))
			assert.True(t, last.Milestone)
			for j := 1; j < len(eval.Schedule); j++ {
				assert.True(t, eval.Schedule[j].GrossPayment.GreaterThan(eval.Schedule[j-1].GrossPayment),
					"payments grow every year")
			}

			annuity := eval.Annuity
			assert.True(t, annuity.TotalTaxes.Equal(annuity.TotalFederalTaxes.Add(annuity.TotalStateTaxes)))
			assert.True(t, annuity.TotalNetPayments.Add(annuity.TotalTaxes).Sub(in.AdvertisedJackpot).Abs().LessThan(cent))

			// the lump sum compounded at the breakeven rate reaches the annuity total
			if eval.BreakevenRate.IsPositive() {
				fv := breakeven.FutureValue(lump.NetAmount, eval.BreakevenRate, years)
				relErr := fv.Sub(annuity.TotalNetPayments).Abs().Div(annuity.TotalNetPayments)
				assert.True(t, relErr.LessThan(decimal.NewFromFloat(1e-6)), "relative error %s", relErr)
			}
		})
	}
}

// TestIntegrationCompare runs a state comparison end to end
func TestIntegrationCompare(t *testing.T) {
	engine, _, evals := loadScenarios(t)
	base := evals[1]

	set, err := compare.NewCompareEngine(engine).CompareStates(context.Background(), compare.CompareOptions{
		AdvertisedJackpot: base.Input.AdvertisedJackpot,
		CashValuePercent:  base.Input.CashValuePercent,
		FilingStatus:      base.Input.FilingStatus,
		BaseState:         base.Input.StateCode,
	})
	require.NoError(t, err)

	assert.Equal(t, "NY", set.BaseState)
	assert.True(t, set.BaseResult.LumpSumNet.Equal(base.LumpSum.NetAmount))
	assert.Len(t, set.AlternativeResults, len(engine.Tables.LotteryStates())-1)

	for _, alt := range set.AlternativeResults {
		assert.NotEqual(t, "NY", alt.StateCode)
		assert.True(t, alt.LumpSumDiffFromBase.Equal(alt.LumpSumNet.Sub(set.BaseResult.LumpSumNet)))
	}

	out, err := (&compare.JSONFormatter{}).Format(set.Rounded())
	require.NoError(t, err)
	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, "NY", decoded["baseState"])
}

// TestIntegrationSensitivity sweeps the default cash-value range
func TestIntegrationSensitivity(t *testing.T) {
	engine, file, _ := loadScenarios(t)

	points, err := engine.CashValueSensitivity(context.Background(), file.Scenarios[0].Input, calculation.DefaultSensitivityRange())
	require.NoError(t, err)
	require.Len(t, points, 26)

	for i := 1; i < len(points); i++ {
		assert.True(t, points[i].LumpSumNet.GreaterThan(points[i-1].LumpSumNet), "more cash nets more")
		assert.True(t, points[i].BreakevenRate.LessThanOrEqual(points[i-1].BreakevenRate), "more cash needs a lower return")
		assert.True(t, points[i].AnnuityNet.Equal(points[0].AnnuityNet), "the annuity does not depend on the cash share")
	}
}

// TestIntegrationBenchmarks runs performance checks
func TestIntegrationBenchmarks(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping benchmarks in short mode")
	}

	engine, file, _ := loadScenarios(t)

	t.Run("evaluation_performance", func(t *testing.T) {
		start := time.Now()
		for i := 0; i < 100; i++ {
			for _, sc := range file.Scenarios {
				_, err := engine.Evaluate(context.Background(), sc.Input)
				require.NoError(t, err)
			}
		}
		duration := time.Since(start)
		assert.Less(t, duration, 30*time.Second, "400 evaluations should complete within 30 seconds")
		t.Logf("400 evaluations completed in %v", duration)
	})

	t.Run("comparison_performance", func(t *testing.T) {
		in := file.Scenarios[0].Input
		start := time.Now()
		_, err := compare.NewCompareEngine(engine).CompareStates(context.Background(), compare.CompareOptions{
			AdvertisedJackpot: in.AdvertisedJackpot,
			CashValuePercent:  in.CashValuePercent,
			FilingStatus:      in.FilingStatus,
			BaseState:         in.StateCode,
		})
		require.NoError(t, err)
		t.Logf("all-state comparison completed in %v", time.Since(start))
	})
}
