package compare

import (
	"github.com/rgehrsitz/jackpot/internal/domain"
	"github.com/shopspring/decimal"
)

// Row is one line of the lump sum versus annuity table
type Row struct {
	Label      string          `json:"label"`
	LumpSum    decimal.Decimal `json:"lumpSum"`
	Annuity    decimal.Decimal `json:"annuity"`
	Difference decimal.Decimal `json:"difference"`
}

func newRow(label string, lump, annuity decimal.Decimal) Row {
	return Row{Label: label, LumpSum: lump, Annuity: annuity, Difference: annuity.Sub(lump)}
}

// Row labels in display order
const (
	RowGross       = "Gross Payout"
	RowWithholding = "Federal Withholding"
	RowAdditional  = "Additional Federal Tax"
	RowStateTax    = "State Tax"
	RowNet         = "Net Payout"
)

// PayoutComparison is the side-by-side view of both payout options
type PayoutComparison struct {
	Rows                []Row           `json:"rows"`
	BreakevenRate       decimal.Decimal `json:"breakevenRate"`
	FirstYearAnnuityNet decimal.Decimal `json:"firstYearAnnuityNet"`
}

// Payouts builds the comparison table for an evaluation. Annuity withholding
// is the withholding rate applied to the whole annuity value; additional
// federal tax is what is owed beyond withholding, shown as zero when
// withholding already covers it.
func Payouts(eval *domain.Evaluation) PayoutComparison {
	rate := eval.Assumptions.FederalWithholdingRate
	lump := eval.LumpSum
	annuity := eval.Annuity

	annuityWithholding := annuity.AnnuityValue.Mul(rate)
	annuityAdditional := decimal.Max(decimal.Zero, annuity.TotalFederalTaxes.Sub(annuityWithholding))

	return PayoutComparison{
		Rows: []Row{
			newRow(RowGross, lump.CashValue, annuity.AnnuityValue),
			newRow(RowWithholding, lump.FederalWithholding, annuityWithholding),
			newRow(RowAdditional, lump.DisplayShortage(), annuityAdditional),
			newRow(RowStateTax, lump.StateTax, annuity.TotalStateTaxes),
			newRow(RowNet, lump.NetAmount, annuity.TotalNetPayments),
		},
		BreakevenRate:       eval.BreakevenRate,
		FirstYearAnnuityNet: annuity.FirstYearNet,
	}
}

// Row returns the row with the given label
func (pc PayoutComparison) Row(label string) (Row, bool) {
	for _, r := range pc.Rows {
		if r.Label == label {
			return r, true
		}
	}
	return Row{}, false
}

// ComparisonResult is one state's outcome in a state comparison
type ComparisonResult struct {
	StateCode  string             `json:"stateCode"`
	StateName  string             `json:"stateName"`
	StateRate  decimal.Decimal    `json:"stateRate"`
	Evaluation *domain.Evaluation `json:"-"`

	// Key Metrics
	LumpSumNet    decimal.Decimal `json:"lumpSumNet"`
	AnnuityNet    decimal.Decimal `json:"annuityNet"`
	LumpSumTaxes  decimal.Decimal `json:"lumpSumTaxes"`
	AnnuityTaxes  decimal.Decimal `json:"annuityTaxes"`
	FirstYearNet  decimal.Decimal `json:"firstYearNet"`
	BreakevenRate decimal.Decimal `json:"breakevenRate"`

	// Comparison to Base
	LumpSumDiffFromBase decimal.Decimal `json:"lumpSumDiffFromBase"`
	LumpSumPctFromBase  decimal.Decimal `json:"lumpSumPctFromBase"`
	AnnuityDiffFromBase decimal.Decimal `json:"annuityDiffFromBase"`
}

// ComparisonSet compares one base state against alternatives
type ComparisonSet struct {
	AdvertisedJackpot  decimal.Decimal     `json:"advertisedJackpot"`
	CashValuePercent   decimal.Decimal     `json:"cashValuePercent"`
	FilingStatus       domain.FilingStatus `json:"filingStatus"`
	BaseState          string              `json:"baseState"`
	BaseResult         *ComparisonResult   `json:"baseResult"`
	AlternativeResults []ComparisonResult  `json:"alternativeResults"`
	Recommendations    []string            `json:"recommendations"`
}

// MetricsCalculator extracts key metrics from evaluations
type MetricsCalculator struct{}

// NewMetricsCalculator creates a new metrics calculator
func NewMetricsCalculator() *MetricsCalculator {
	return &MetricsCalculator{}
}

// CalculateMetrics computes the comparison metrics for one evaluation
func (mc *MetricsCalculator) CalculateMetrics(eval *domain.Evaluation) ComparisonResult {
	return ComparisonResult{
		StateCode:     eval.Input.StateCode,
		StateName:     eval.StateName,
		Evaluation:    eval,
		LumpSumNet:    eval.LumpSum.NetAmount,
		AnnuityNet:    eval.Annuity.TotalNetPayments,
		LumpSumTaxes:  eval.LumpSum.TotalTaxes(),
		AnnuityTaxes:  eval.Annuity.TotalTaxes,
		FirstYearNet:  eval.Annuity.FirstYearNet,
		BreakevenRate: eval.BreakevenRate,
	}
}

// CalculateComparison computes deltas between a state and the base
func (mc *MetricsCalculator) CalculateComparison(state, base ComparisonResult) ComparisonResult {
	state.LumpSumDiffFromBase = state.LumpSumNet.Sub(base.LumpSumNet)
	if !base.LumpSumNet.IsZero() {
		state.LumpSumPctFromBase = state.LumpSumDiffFromBase.
			Div(base.LumpSumNet).
			Mul(decimal.NewFromInt(100))
	}
	state.AnnuityDiffFromBase = state.AnnuityNet.Sub(base.AnnuityNet)
	return state
}

func (r ComparisonResult) rounded() ComparisonResult {
	r.LumpSumNet = r.LumpSumNet.Round(2)
	r.AnnuityNet = r.AnnuityNet.Round(2)
	r.LumpSumTaxes = r.LumpSumTaxes.Round(2)
	r.AnnuityTaxes = r.AnnuityTaxes.Round(2)
	r.FirstYearNet = r.FirstYearNet.Round(2)
	r.BreakevenRate = r.BreakevenRate.Round(6)
	r.LumpSumDiffFromBase = r.LumpSumDiffFromBase.Round(2)
	r.LumpSumPctFromBase = r.LumpSumPctFromBase.Round(2)
	r.AnnuityDiffFromBase = r.AnnuityDiffFromBase.Round(2)
	return r
}

// Rounded returns a copy with cents-level amounts for serialization
func (cs *ComparisonSet) Rounded() *ComparisonSet {
	out := *cs
	if cs.BaseResult != nil {
		base := cs.BaseResult.rounded()
		out.BaseResult = &base
	}
	out.AlternativeResults = make([]ComparisonResult, len(cs.AlternativeResults))
	for i, alt := range cs.AlternativeResults {
		out.AlternativeResults[i] = alt.rounded()
	}
	return &out
}
