package compare

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/jackpot/internal/calculation"
	"github.com/rgehrsitz/jackpot/internal/domain"
	"github.com/shopspring/decimal"
)

// CompareEngine orchestrates state comparison
type CompareEngine struct {
	CalcEngine        *calculation.Engine
	MetricsCalculator *MetricsCalculator
}

// NewCompareEngine creates a new comparison engine
func NewCompareEngine(calcEngine *calculation.Engine) *CompareEngine {
	return &CompareEngine{
		CalcEngine:        calcEngine,
		MetricsCalculator: NewMetricsCalculator(),
	}
}

// CompareOptions configures comparison behavior
type CompareOptions struct {
	AdvertisedJackpot decimal.Decimal
	CashValuePercent  decimal.Decimal
	FilingStatus      domain.FilingStatus
	BaseState         string   // state every alternative is compared against
	States            []string // alternatives; empty means every lottery state
}

// CompareStates evaluates the base state and each alternative
func (ce *CompareEngine) CompareStates(ctx context.Context, options CompareOptions) (*ComparisonSet, error) {
	alternatives := options.States
	base := domain.NormalizeStateCode(options.BaseState)
	if len(alternatives) == 0 {
		for _, opt := range ce.CalcEngine.Tables.LotteryStates() {
			if opt.Code != base {
				alternatives = append(alternatives, opt.Code)
			}
		}
	}

	codes := append([]string{base}, alternatives...)
	evals, err := ce.CalcEngine.CompareStates(ctx, options.AdvertisedJackpot, options.CashValuePercent, options.FilingStatus, codes)
	if err != nil {
		return nil, fmt.Errorf("failed to evaluate states: %w", err)
	}

	baseResult := ce.MetricsCalculator.CalculateMetrics(evals[0])
	baseResult.StateRate = ce.stateRate(baseResult.StateCode)

	results := make([]ComparisonResult, 0, len(evals)-1)
	for _, eval := range evals[1:] {
		alt := ce.MetricsCalculator.CalculateMetrics(eval)
		alt.StateRate = ce.stateRate(alt.StateCode)
		results = append(results, ce.MetricsCalculator.CalculateComparison(alt, baseResult))
	}

	compSet := &ComparisonSet{
		AdvertisedJackpot:  options.AdvertisedJackpot,
		CashValuePercent:   options.CashValuePercent,
		FilingStatus:       evals[0].Input.FilingStatus,
		BaseState:          baseResult.StateCode,
		BaseResult:         &baseResult,
		AlternativeResults: results,
	}
	compSet.Recommendations = GenerateRecommendations(compSet)

	return compSet, nil
}

func (ce *CompareEngine) stateRate(code string) decimal.Decimal {
	profile, _ := ce.CalcEngine.Tables.StateProfile(code)
	return profile.EffectiveRate()
}

// GenerateRecommendations summarizes where the winner keeps the most
func GenerateRecommendations(compSet *ComparisonSet) []string {
	recommendations := []string{}

	if compSet.BaseResult == nil || len(compSet.AlternativeResults) == 0 {
		return recommendations
	}

	bestLump := compSet.BaseResult
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.LumpSumNet.GreaterThan(bestLump.LumpSumNet) {
			bestLump = alt
		}
	}
	if bestLump != compSet.BaseResult {
		diff := bestLump.LumpSumNet.Sub(compSet.BaseResult.LumpSumNet)
		recommendations = append(recommendations,
			"Best Lump Sum: "+bestLump.StateName+" keeps $"+diff.StringFixed(0)+
				" more of the cash option than "+compSet.BaseResult.StateName)
	}

	bestAnnuity := compSet.BaseResult
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.AnnuityNet.GreaterThan(bestAnnuity.AnnuityNet) {
			bestAnnuity = alt
		}
	}
	if bestAnnuity != compSet.BaseResult {
		diff := bestAnnuity.AnnuityNet.Sub(compSet.BaseResult.AnnuityNet)
		recommendations = append(recommendations,
			"Best Annuity: "+bestAnnuity.StateName+" keeps $"+diff.StringFixed(0)+
				" more over the annuity term than "+compSet.BaseResult.StateName)
	}

	if compSet.BaseResult.BreakevenRate.IsZero() {
		recommendations = append(recommendations,
			fmt.Sprintf("In %s the lump sum already matches the annuity's total net payout", compSet.BaseResult.StateName))
	} else {
		recommendations = append(recommendations,
			fmt.Sprintf("In %s the lump sum must earn %s%% a year to match the annuity",
				compSet.BaseResult.StateName, compSet.BaseResult.BreakevenRate.Mul(decimal.NewFromInt(100)).StringFixed(2)))
	}

	return recommendations
}
