package breakeven

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// Result describes the reinvestment rate at which a lump sum grows into the
// annuity's total net payout over the annuity horizon.
type Result struct {
	// Rate is the minimum annual return needed, never negative
	Rate decimal.Decimal `json:"rate"`
	// SignedRate keeps the negative solution when the lump sum already wins
	SignedRate decimal.Decimal `json:"signedRate"`
	// LumpSumDominates is true when the lump sum alone meets the annuity total
	LumpSumDominates bool `json:"lumpSumDominates"`
	// Degenerate is true when the lump sum is not positive and no rate exists
	Degenerate bool `json:"degenerate"`
	HorizonYears int  `json:"horizonYears"`
}

// Error reports a breakeven request the solver cannot interpret
type Error struct {
	Horizon int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("breakeven (horizon %d): %s", e.Horizon, e.Message)
}

// Solve computes the breakeven rate for a lump sum against an annuity total.
// A non-positive lump sum is a valid but degenerate outcome and yields a zero
// rate; a non-positive horizon is an error.
func Solve(lumpSumNet, annuityTotalNet decimal.Decimal, horizonYears int) (Result, error) {
	if horizonYears < 1 {
		return Result{}, &Error{Horizon: horizonYears, Message: "horizon must be at least one year"}
	}

	res := Result{
		Rate:         decimal.Zero,
		SignedRate:   decimal.Zero,
		HorizonYears: horizonYears,
	}
	if !lumpSumNet.IsPositive() {
		res.Degenerate = true
		return res, nil
	}

	res.SignedRate = SignedRate(lumpSumNet, annuityTotalNet, horizonYears)
	res.LumpSumDominates = !res.SignedRate.IsPositive()
	if !res.LumpSumDominates {
		res.Rate = res.SignedRate
	}
	return res, nil
}

// Rate solves lumpSumNet*(1+r)^horizon = annuityTotalNet for r, floored at
// zero. Returns zero when lumpSumNet <= 0 or horizon < 1.
func Rate(lumpSumNet, annuityTotalNet decimal.Decimal, horizonYears int) decimal.Decimal {
	r := SignedRate(lumpSumNet, annuityTotalNet, horizonYears)
	if r.IsNegative() {
		return decimal.Zero
	}
	return r
}

// SignedRate is Rate without the floor. A non-positive annuity total maps to
// a rate of -100%.
func SignedRate(lumpSumNet, annuityTotalNet decimal.Decimal, horizonYears int) decimal.Decimal {
	if horizonYears < 1 || !lumpSumNet.IsPositive() {
		return decimal.Zero
	}
	if !annuityTotalNet.IsPositive() {
		return decimal.NewFromInt(-1)
	}

	// decimal.Pow only handles integer exponents, so the nth root runs in float64
	ratio := annuityTotalNet.Div(lumpSumNet).InexactFloat64()
	r := math.Pow(ratio, 1/float64(horizonYears)) - 1
	return decimal.NewFromFloat(r)
}

// FutureValue compounds principal at rate for the given number of years
func FutureValue(principal, rate decimal.Decimal, years int) decimal.Decimal {
	return principal.Mul(GrowthFactor(rate, years))
}

// GrowthFactor returns (1+rate)^years by repeated multiplication, so integer
// powers stay exact in decimal arithmetic.
func GrowthFactor(rate decimal.Decimal, years int) decimal.Decimal {
	factor := decimal.NewFromInt(1)
	step := decimal.NewFromInt(1).Add(rate)
	for i := 0; i < years; i++ {
		factor = factor.Mul(step)
	}
	return factor
}
