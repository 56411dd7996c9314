package breakeven

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestRate_RoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		lump    string
		annuity string
		horizon int
	}{
		{"typical jackpot", "327642979.75", "613000000", 30},
		{"small gap", "1000000", "1000001", 30},
		{"double over ten years", "500", "1000", 10},
		{"single year", "100", "105", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lump, annuity := d(tt.lump), d(tt.annuity)
			r := Rate(lump, annuity, tt.horizon)
			require.True(t, r.IsPositive())

			fv := FutureValue(lump, r, tt.horizon)
			rel := fv.Sub(annuity).Abs().Div(annuity).InexactFloat64()
			assert.Less(t, rel, 1e-9, "future value %s vs annuity %s", fv, annuity)
		})
	}
}

func TestRate_KnownValue(t *testing.T) {
	// doubling over 10 years is 2^(1/10)-1
	r := Rate(d("1000"), d("2000"), 10)
	assert.InDelta(t, 0.0717734625, r.InexactFloat64(), 1e-9)

	r = Rate(d("100"), d("105"), 1)
	assert.InDelta(t, 0.05, r.InexactFloat64(), 1e-12)
}

func TestRate_ClampsNegativeToZero(t *testing.T) {
	r := Rate(d("600"), d("500"), 30)
	assert.True(t, r.IsZero())

	signed := SignedRate(d("600"), d("500"), 30)
	assert.True(t, signed.IsNegative())
}

func TestRate_Degenerate(t *testing.T) {
	assert.True(t, Rate(decimal.Zero, d("1000"), 30).IsZero())
	assert.True(t, Rate(d("-5"), d("1000"), 30).IsZero())
	assert.True(t, Rate(d("100"), d("1000"), 0).IsZero())
	assert.True(t, SignedRate(d("100"), decimal.Zero, 30).Equal(decimal.NewFromInt(-1)))
}

func TestRate_EqualAmounts(t *testing.T) {
	assert.True(t, Rate(d("1000"), d("1000"), 30).IsZero())
}

func TestSolve(t *testing.T) {
	res, err := Solve(d("1000"), d("2000"), 10)
	require.NoError(t, err)
	assert.False(t, res.Degenerate)
	assert.False(t, res.LumpSumDominates)
	assert.True(t, res.Rate.Equal(res.SignedRate))
	assert.Equal(t, 10, res.HorizonYears)

	res, err = Solve(d("2000"), d("1000"), 10)
	require.NoError(t, err)
	assert.True(t, res.LumpSumDominates)
	assert.True(t, res.Rate.IsZero())
	assert.True(t, res.SignedRate.IsNegative())

	res, err = Solve(decimal.Zero, d("1000"), 30)
	require.NoError(t, err)
	assert.True(t, res.Degenerate)
	assert.True(t, res.Rate.IsZero())

	_, err = Solve(d("1000"), d("2000"), 0)
	require.Error(t, err)
	var bErr *Error
	require.True(t, errors.As(err, &bErr))
	assert.Equal(t, 0, bErr.Horizon)
	assert.Contains(t, err.Error(), "horizon must be at least one year")
}

func TestGrowthFactor(t *testing.T) {
	assert.True(t, GrowthFactor(d("0.05"), 0).Equal(decimal.NewFromInt(1)))
	assert.True(t, GrowthFactor(d("0.05"), 2).Equal(d("1.1025")))
	assert.True(t, GrowthFactor(d("0.1"), 3).Equal(d("1.331")))
}
