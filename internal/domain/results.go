package domain

import (
	"github.com/shopspring/decimal"
)

// Input is one evaluation request. Amounts are already parsed; the engine
// still rejects out-of-range values.
type Input struct {
	AdvertisedJackpot decimal.Decimal `yaml:"advertised_jackpot" json:"advertisedJackpot"`
	CashValuePercent  decimal.Decimal `yaml:"cash_value_percent" json:"cashValuePercent"`
	StateCode         string          `yaml:"state" json:"state"`
	FilingStatus      FilingStatus    `yaml:"filing_status" json:"filingStatus"`
}

// LumpSumResult is the net outcome of taking the cash option
type LumpSumResult struct {
	CashValue          decimal.Decimal `json:"cashValue"`
	FederalWithholding decimal.Decimal `json:"federalWithholding"`
	TotalFederalTax    decimal.Decimal `json:"totalFederalTax"`
	// FederalShortage is negative when withholding exceeds the liability
	FederalShortage decimal.Decimal `json:"federalShortage"`
	StateTax        decimal.Decimal `json:"stateTax"`
	NetAmount       decimal.Decimal `json:"netAmount"`
}

// DisplayShortage is the additional federal tax owed at filing time, never negative
func (r LumpSumResult) DisplayShortage() decimal.Decimal {
	return decimal.Max(decimal.Zero, r.FederalShortage)
}

// TotalTaxes is federal plus state liability
func (r LumpSumResult) TotalTaxes() decimal.Decimal {
	return r.TotalFederalTax.Add(r.StateTax)
}

// Round returns a copy with every amount rounded to places
func (r LumpSumResult) Round(places int32) LumpSumResult {
	return LumpSumResult{
		CashValue:          r.CashValue.Round(places),
		FederalWithholding: r.FederalWithholding.Round(places),
		TotalFederalTax:    r.TotalFederalTax.Round(places),
		FederalShortage:    r.FederalShortage.Round(places),
		StateTax:           r.StateTax.Round(places),
		NetAmount:          r.NetAmount.Round(places),
	}
}

// AnnuityResult aggregates the annuity payment stream
type AnnuityResult struct {
	AnnuityValue      decimal.Decimal `json:"annuityValue"`
	FirstYearGross    decimal.Decimal `json:"firstYearGross"`
	FirstYearNet      decimal.Decimal `json:"firstYearNet"`
	FinalYearGross    decimal.Decimal `json:"finalYearGross"`
	TotalNetPayments  decimal.Decimal `json:"totalNetPayments"`
	TotalFederalTaxes decimal.Decimal `json:"totalFederalTaxes"`
	TotalStateTaxes   decimal.Decimal `json:"totalStateTaxes"`
	TotalTaxes        decimal.Decimal `json:"totalTaxes"`
	AverageAnnualNet  decimal.Decimal `json:"averageAnnualNet"`
}

// Round returns a copy with every amount rounded to places
func (r AnnuityResult) Round(places int32) AnnuityResult {
	return AnnuityResult{
		AnnuityValue:      r.AnnuityValue.Round(places),
		FirstYearGross:    r.FirstYearGross.Round(places),
		FirstYearNet:      r.FirstYearNet.Round(places),
		FinalYearGross:    r.FinalYearGross.Round(places),
		TotalNetPayments:  r.TotalNetPayments.Round(places),
		TotalFederalTaxes: r.TotalFederalTaxes.Round(places),
		TotalStateTaxes:   r.TotalStateTaxes.Round(places),
		TotalTaxes:        r.TotalTaxes.Round(places),
		AverageAnnualNet:  r.AverageAnnualNet.Round(places),
	}
}

// AnnuityYear is one row of the payment schedule
type AnnuityYear struct {
	Year          int             `json:"year"`
	GrossPayment  decimal.Decimal `json:"grossPayment"`
	FederalTax    decimal.Decimal `json:"federalTax"`
	StateTax      decimal.Decimal `json:"stateTax"`
	NetPayment    decimal.Decimal `json:"netPayment"`
	CumulativeNet decimal.Decimal `json:"cumulativeNet"`
	Milestone     bool            `json:"milestone"`
}

// AnnuitySchedule is the ordered year-by-year payment stream
type AnnuitySchedule []AnnuityYear

// TotalGross sums the gross payments
func (s AnnuitySchedule) TotalGross() decimal.Decimal {
	total := decimal.Zero
	for _, y := range s {
		total = total.Add(y.GrossPayment)
	}
	return total
}

// Round returns a copy with every amount rounded to places
func (s AnnuitySchedule) Round(places int32) AnnuitySchedule {
	out := make(AnnuitySchedule, len(s))
	for i, y := range s {
		out[i] = AnnuityYear{
			Year:          y.Year,
			GrossPayment:  y.GrossPayment.Round(places),
			FederalTax:    y.FederalTax.Round(places),
			StateTax:      y.StateTax.Round(places),
			NetPayment:    y.NetPayment.Round(places),
			CumulativeNet: y.CumulativeNet.Round(places),
			Milestone:     y.Milestone,
		}
	}
	return out
}

// IsMilestoneYear reports whether a 1-based year is highlighted in the
// schedule: the first year, every fifth year, and the final year.
func IsMilestoneYear(year, horizon int) bool {
	return year == 1 || year%5 == 0 || year == horizon
}

// Evaluation is the complete answer for one Input
type Evaluation struct {
	Input         Input           `json:"input"`
	StateName     string          `json:"stateName"`
	Assumptions   Assumptions     `json:"assumptions"`
	LumpSum       LumpSumResult   `json:"lumpSum"`
	Annuity       AnnuityResult   `json:"annuity"`
	Schedule      AnnuitySchedule `json:"schedule,omitempty"`
	BreakevenRate decimal.Decimal `json:"breakevenRate"`
}

// NetDifference is annuity total net minus lump-sum net
func (e *Evaluation) NetDifference() decimal.Decimal {
	return e.Annuity.TotalNetPayments.Sub(e.LumpSum.NetAmount)
}

// Rounded returns a copy with cents-level amounts, suitable for display and
// serialization. The breakeven rate keeps six decimal places.
func (e *Evaluation) Rounded() *Evaluation {
	return &Evaluation{
		Input:         e.Input,
		StateName:     e.StateName,
		Assumptions:   e.Assumptions,
		LumpSum:       e.LumpSum.Round(2),
		Annuity:       e.Annuity.Round(2),
		Schedule:      e.Schedule.Round(2),
		BreakevenRate: e.BreakevenRate.Round(6),
	}
}

// SensitivityPoint is one sample of a cash-value sweep
type SensitivityPoint struct {
	CashValuePercent decimal.Decimal `json:"cashValuePercent"`
	LumpSumNet       decimal.Decimal `json:"lumpSumNet"`
	AnnuityNet       decimal.Decimal `json:"annuityNet"`
	BreakevenRate    decimal.Decimal `json:"breakevenRate"`
}

// Scenario is a named Input in a batch file
type Scenario struct {
	Name  string `yaml:"name" json:"name"`
	Input `yaml:",inline"`
}

// ScenarioFile is the on-disk shape of a batch of evaluations
type ScenarioFile struct {
	Product   string     `yaml:"product" json:"product"`
	Scenarios []Scenario `yaml:"scenarios" json:"scenarios"`
}
