package calculation

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/jackpot/internal/breakeven"
	"github.com/rgehrsitz/jackpot/internal/domain"
	"github.com/shopspring/decimal"
)

// SensitivityRange is an evenly spaced sweep of cash-value percentages
type SensitivityRange struct {
	MinPercent decimal.Decimal
	MaxPercent decimal.Decimal
	Steps      int
}

// DefaultSensitivityRange sweeps 40% to 65% in 1-point steps, which covers
// the cash values advertised for recent Powerball and Mega Millions draws.
func DefaultSensitivityRange() SensitivityRange {
	return SensitivityRange{
		MinPercent: decimal.NewFromInt(40),
		MaxPercent: decimal.NewFromInt(65),
		Steps:      26,
	}
}

// Values returns the percentages in the sweep
func (r SensitivityRange) Values() []decimal.Decimal {
	if r.Steps <= 1 {
		return []decimal.Decimal{r.MinPercent}
	}

	values := make([]decimal.Decimal, 0, r.Steps)
	stepSize := r.MaxPercent.Sub(r.MinPercent).Div(decimal.NewFromInt(int64(r.Steps - 1)))
	for i := 0; i < r.Steps; i++ {
		values = append(values, r.MinPercent.Add(stepSize.Mul(decimal.NewFromInt(int64(i)))))
	}
	return values
}

// CashValueSensitivity shows how the lump-sum net and breakeven rate move as
// the cash-value percentage changes. The annuity side does not depend on the
// percentage and is computed once. in.CashValuePercent is ignored.
func (e *Engine) CashValueSensitivity(ctx context.Context, in domain.Input, r SensitivityRange) ([]domain.SensitivityPoint, error) {
	if err := validateJackpot(in.AdvertisedJackpot); err != nil {
		return nil, err
	}
	stateCode, status, err := e.resolve(in.StateCode, in.FilingStatus)
	if err != nil {
		return nil, err
	}

	values := r.Values()
	for _, pct := range values {
		if err := validateCashValuePercent(pct); err != nil {
			return nil, fmt.Errorf("sensitivity range: %w", err)
		}
	}

	annuity, _, err := e.annuity(in.AdvertisedJackpot, stateCode, status)
	if err != nil {
		return nil, err
	}

	points := make([]domain.SensitivityPoint, 0, len(values))
	for _, pct := range values {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		lump, err := e.lumpSum(in.AdvertisedJackpot, pct, stateCode, status)
		if err != nil {
			return nil, fmt.Errorf("cash value %s%%: %w", pct, err)
		}
		points = append(points, domain.SensitivityPoint{
			CashValuePercent: pct,
			LumpSumNet:       lump.NetAmount,
			AnnuityNet:       annuity.TotalNetPayments,
			BreakevenRate:    breakeven.Rate(lump.NetAmount, annuity.TotalNetPayments, e.Assumptions.AnnuityYears),
		})
	}
	return points, nil
}
