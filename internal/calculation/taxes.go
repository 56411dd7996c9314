package calculation

import (
	"github.com/rgehrsitz/jackpot/internal/domain"
	"github.com/shopspring/decimal"
)

// TAX MODEL:
//
// 1. Federal: progressive brackets per filing status, applied to each payout
//    as a standalone income event. No deductions, credits, or other income.
//
// 2. State: a single flat rate on winnings. States that exempt lottery
//    winnings (or have no state income tax) contribute nothing, whatever
//    rate is stored for them.
//
// 3. Annuity payments are taxed year by year with fresh brackets each year.

// FederalTaxCalculator walks a progressive bracket schedule
type FederalTaxCalculator struct {
	brackets map[domain.FilingStatus][]domain.TaxBracket
}

// NewFederalTaxCalculator creates a calculator over the given tables
func NewFederalTaxCalculator(tables *domain.TaxTables) *FederalTaxCalculator {
	return &FederalTaxCalculator{brackets: tables.Federal}
}

// Calculate returns the federal tax owed on income. Income <= 0 owes nothing.
// An unknown filing status is rejected.
func (ftc *FederalTaxCalculator) Calculate(income decimal.Decimal, status domain.FilingStatus) (decimal.Decimal, error) {
	brackets, ok := ftc.brackets[status]
	if !ok || len(brackets) == 0 {
		return decimal.Zero, &domain.InputError{Field: "filing_status", Value: string(status), Message: "no federal brackets for filing status"}
	}
	return bracketTax(income, brackets), nil
}

// MarginalRate returns the rate of the bracket income falls in
func (ftc *FederalTaxCalculator) MarginalRate(income decimal.Decimal, status domain.FilingStatus) decimal.Decimal {
	brackets := ftc.brackets[status]
	rate := decimal.Zero
	for _, b := range brackets {
		if income.LessThanOrEqual(b.Min) {
			break
		}
		rate = b.Rate
	}
	return rate
}

func bracketTax(income decimal.Decimal, brackets []domain.TaxBracket) decimal.Decimal {
	if !income.IsPositive() {
		return decimal.Zero
	}

	totalTax := decimal.Zero
	for _, bracket := range brackets {
		if income.LessThanOrEqual(bracket.Min) {
			break
		}
		upper := income
		if !bracket.Unbounded() {
			upper = decimal.Min(income, *bracket.Max)
		}
		totalTax = totalTax.Add(upper.Sub(bracket.Min).Mul(bracket.Rate))
	}
	return totalTax
}

// StateTaxCalculator applies flat state rates to winnings
type StateTaxCalculator struct {
	states map[string]domain.StateTaxProfile
}

// NewStateTaxCalculator creates a calculator over the given tables
func NewStateTaxCalculator(tables *domain.TaxTables) *StateTaxCalculator {
	return &StateTaxCalculator{states: tables.States}
}

// Calculate returns income times the state's rate, or zero when the state is
// unknown or does not tax winnings.
func (stc *StateTaxCalculator) Calculate(income decimal.Decimal, stateCode string) decimal.Decimal {
	profile, ok := stc.states[domain.NormalizeStateCode(stateCode)]
	if !ok || !profile.TaxesWinnings {
		return decimal.Zero
	}
	return income.Mul(profile.Rate)
}
