package compare

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rgehrsitz/jackpot/internal/calculation"
	"github.com/rgehrsitz/jackpot/internal/config"
	"github.com/rgehrsitz/jackpot/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCalcEngine(t *testing.T) *calculation.Engine {
	t.Helper()
	engine, err := calculation.NewEngineForProduct(config.MustDefaultRegulatoryConfig(), "")
	require.NoError(t, err)
	return engine
}

func evaluate(t *testing.T, engine *calculation.Engine, jackpot int64, pct int64, state string) *domain.Evaluation {
	t.Helper()
	eval, err := engine.Evaluate(context.Background(), domain.Input{
		AdvertisedJackpot: decimal.NewFromInt(jackpot),
		CashValuePercent:  decimal.NewFromInt(pct),
		StateCode:         state,
		FilingStatus:      domain.FilingSingle,
	})
	require.NoError(t, err)
	return eval
}

func TestPayouts(t *testing.T) {
	eval := evaluate(t, newCalcEngine(t), 1_000_000_000, 52, "CA")
	pc := Payouts(eval)

	require.Len(t, pc.Rows, 5)
	labels := []string{RowGross, RowWithholding, RowAdditional, RowStateTax, RowNet}
	for i, label := range labels {
		assert.Equal(t, label, pc.Rows[i].Label)
		assert.True(t, pc.Rows[i].Difference.Equal(pc.Rows[i].Annuity.Sub(pc.Rows[i].LumpSum)))
	}

	gross, _ := pc.Row(RowGross)
	assert.True(t, gross.LumpSum.Equal(decimal.NewFromInt(520_000_000)))
	assert.True(t, gross.Annuity.Equal(decimal.NewFromInt(1_000_000_000)))

	withholding, _ := pc.Row(RowWithholding)
	assert.True(t, withholding.LumpSum.Equal(decimal.NewFromInt(124_800_000)))
	assert.True(t, withholding.Annuity.Equal(decimal.NewFromInt(240_000_000)))

	additional, _ := pc.Row(RowAdditional)
	assert.True(t, additional.LumpSum.Equal(decimal.RequireFromString("67557020.25")))
	assert.InDelta(t, 368710607.50-240_000_000, additional.Annuity.InexactFloat64(), 0.01)

	net, _ := pc.Row(RowNet)
	assert.True(t, net.LumpSum.Equal(eval.LumpSum.NetAmount))
	assert.True(t, net.Annuity.Equal(eval.Annuity.TotalNetPayments))

	assert.True(t, pc.BreakevenRate.Equal(eval.BreakevenRate))

	_, ok := pc.Row("missing")
	assert.False(t, ok)
}

func TestPayouts_AdditionalFederalClampsAtZero(t *testing.T) {
	// small prizes are over-withheld on both sides
	eval := evaluate(t, newCalcEngine(t), 40_000, 50, "TX")
	pc := Payouts(eval)

	additional, _ := pc.Row(RowAdditional)
	assert.True(t, additional.LumpSum.IsZero())
	assert.True(t, additional.Annuity.IsZero())
	assert.True(t, eval.LumpSum.FederalShortage.IsNegative(), "stored shortage keeps its sign")
}

func TestCompareEngine_CompareStates(t *testing.T) {
	ce := NewCompareEngine(newCalcEngine(t))

	compSet, err := ce.CompareStates(context.Background(), CompareOptions{
		AdvertisedJackpot: decimal.NewFromInt(500_000_000),
		CashValuePercent:  decimal.NewFromInt(50),
		FilingStatus:      domain.FilingSingle,
		BaseState:         "nj",
		States:            []string{"TX", "NY"},
	})
	require.NoError(t, err)

	assert.Equal(t, "NJ", compSet.BaseState)
	require.NotNil(t, compSet.BaseResult)
	assert.Equal(t, "New Jersey", compSet.BaseResult.StateName)
	assert.True(t, compSet.BaseResult.StateRate.Equal(decimal.RequireFromString("0.1075")))
	require.Len(t, compSet.AlternativeResults, 2)

	tx := compSet.AlternativeResults[0]
	assert.Equal(t, "TX", tx.StateCode)
	assert.True(t, tx.StateRate.IsZero())
	assert.True(t, tx.LumpSumDiffFromBase.IsPositive(), "Texas keeps more than New Jersey")
	assert.True(t, tx.LumpSumPctFromBase.IsPositive())
	assert.True(t, tx.AnnuityDiffFromBase.IsPositive())

	require.NotEmpty(t, compSet.Recommendations)
	assert.Contains(t, compSet.Recommendations[0], "Best Lump Sum: Texas")
}

func TestCompareEngine_AllStates(t *testing.T) {
	engine := newCalcEngine(t)
	ce := NewCompareEngine(engine)

	compSet, err := ce.CompareStates(context.Background(), CompareOptions{
		AdvertisedJackpot: decimal.NewFromInt(100_000_000),
		CashValuePercent:  decimal.NewFromInt(50),
		FilingStatus:      domain.FilingMarriedJoint,
		BaseState:         "CA",
	})
	require.NoError(t, err)
	assert.Len(t, compSet.AlternativeResults, len(engine.Tables.LotteryStates())-1)
	for _, alt := range compSet.AlternativeResults {
		assert.NotEqual(t, "CA", alt.StateCode)
	}
}

func TestCompareEngine_InvalidBase(t *testing.T) {
	ce := NewCompareEngine(newCalcEngine(t))

	_, err := ce.CompareStates(context.Background(), CompareOptions{
		AdvertisedJackpot: decimal.NewFromInt(100_000_000),
		CashValuePercent:  decimal.NewFromInt(50),
		FilingStatus:      domain.FilingSingle,
		BaseState:         "ZZ",
		States:            []string{"TX"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to evaluate states")
}

func sampleSet(t *testing.T) *ComparisonSet {
	t.Helper()
	ce := NewCompareEngine(newCalcEngine(t))
	compSet, err := ce.CompareStates(context.Background(), CompareOptions{
		AdvertisedJackpot: decimal.NewFromInt(750_000_000),
		CashValuePercent:  decimal.NewFromInt(48),
		FilingStatus:      domain.FilingSingle,
		BaseState:         "NY",
		States:            []string{"FL", "NJ"},
	})
	require.NoError(t, err)
	return compSet
}

func TestTableFormatter_Format(t *testing.T) {
	formatter := &TableFormatter{}
	result := formatter.Format(sampleSet(t))

	assert.Contains(t, result, "STATE TAX COMPARISON")
	assert.Contains(t, result, "New York (base)")
	assert.Contains(t, result, "Florida")
	assert.Contains(t, result, "exempt")
	assert.Contains(t, result, "COMPARISON TO BASE")
	assert.Contains(t, result, "RECOMMENDATIONS")

	compact := formatter.FormatCompact(sampleSet(t))
	assert.True(t, strings.HasPrefix(compact, "Base: NY | FL: +$"))
}

func TestCSVFormatter_Format(t *testing.T) {
	out, err := (&CSVFormatter{}).Format(sampleSet(t))
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4)
	assert.Equal(t, "State", records[0][0])
	assert.Equal(t, []string{"NY", "New York", "base"}, records[1][:3])
	assert.Equal(t, "alternative", records[2][2])
}

func TestJSONFormatter_Format(t *testing.T) {
	for _, pretty := range []bool{false, true} {
		out, err := (&JSONFormatter{Pretty: pretty}).Format(sampleSet(t))
		require.NoError(t, err)

		var decoded map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(out), &decoded))
		assert.Equal(t, "NY", decoded["baseState"])
		assert.Len(t, decoded["alternativeResults"], 2)
		assert.Equal(t, pretty, strings.Contains(out, "\n  "))
	}
}
