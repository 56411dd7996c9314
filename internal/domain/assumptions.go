package domain

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// Product names for the built-in assumption presets
const (
	ProductPowerball    = "powerball"
	ProductMegaMillions = "megamillions"
)

// Assumptions are the fixed constants the engine depends on. They differ
// between lottery products and tax years, so they are configuration rather
// than code.
type Assumptions struct {
	FederalWithholdingRate decimal.Decimal `yaml:"federal_withholding_rate" json:"federalWithholdingRate"`
	AnnuityGrowthRate      decimal.Decimal `yaml:"annuity_growth_rate" json:"annuityGrowthRate"`
	AnnuityYears           int             `yaml:"annuity_years" json:"annuityYears"`
}

// DefaultAssumptions returns the Powerball assumptions: 24% withholding, 5%
// annual growth, 30 payments.
func DefaultAssumptions() Assumptions {
	return Assumptions{
		FederalWithholdingRate: decimal.NewFromFloat(0.24),
		AnnuityGrowthRate:      decimal.NewFromFloat(0.05),
		AnnuityYears:           30,
	}
}

// Validate rejects assumptions the annuity and withholding math cannot use
func (a Assumptions) Validate() error {
	one := decimal.NewFromInt(1)
	if a.FederalWithholdingRate.IsNegative() || a.FederalWithholdingRate.GreaterThanOrEqual(one) {
		return &InputError{Field: "federal_withholding_rate", Value: a.FederalWithholdingRate.String(), Message: "must be in [0, 1)"}
	}
	// the closed-form first payment divides by g
	if !a.AnnuityGrowthRate.IsPositive() || a.AnnuityGrowthRate.GreaterThanOrEqual(one) {
		return &InputError{Field: "annuity_growth_rate", Value: a.AnnuityGrowthRate.String(), Message: "must be in (0, 1)"}
	}
	if a.AnnuityYears < 1 {
		return &InputError{Field: "annuity_years", Value: fmt.Sprintf("%d", a.AnnuityYears), Message: "must be at least 1"}
	}
	return nil
}

var productNameReplacer = strings.NewReplacer(" ", "", "-", "", "_", "")

// NormalizeProductName lowercases a product name and strips spaces, dashes
// and underscores, so "Mega Millions" and "mega_millions" share one key.
func NormalizeProductName(name string) string {
	return productNameReplacer.Replace(strings.ToLower(strings.TrimSpace(name)))
}

// ProductAssumptions resolves a product preset by name. Names are matched
// case-insensitively, ignoring spaces, dashes and underscores.
func ProductAssumptions(products map[string]Assumptions, name string) (Assumptions, error) {
	key := NormalizeProductName(name)
	if key == "" {
		key = ProductPowerball
	}
	if a, ok := products[key]; ok {
		return a, nil
	}
	known := make([]string, 0, len(products))
	for k := range products {
		known = append(known, k)
	}
	sort.Strings(known)
	return Assumptions{}, &InputError{
		Field:   "product",
		Value:   name,
		Message: "unknown product (known: " + strings.Join(known, ", ") + ")",
	}
}
