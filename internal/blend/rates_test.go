package blend

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestUtilizationRate(t *testing.T) {
	require.True(t, UtilizationRate(decimal.Zero, decimal.NewFromInt(100)).IsZero())
	require.True(t, UtilizationRate(decimal.NewFromInt(-5), decimal.NewFromInt(100)).IsZero())

	rate := UtilizationRate(decimal.NewFromInt(200), decimal.NewFromInt(50))
	require.True(t, rate.Equal(decimal.NewFromFloat(0.25)), "got %s", rate)

	// borrowed above supplied caps at 1
	capped := UtilizationRate(decimal.NewFromInt(100), decimal.NewFromInt(150))
	require.True(t, capped.Equal(One), "got %s", capped)
}

func TestBorrowRateKinkContinuity(t *testing.T) {
	var (
		base      = decimal.NewFromFloat(0.01)
		mult      = decimal.NewFromFloat(0.05)
		jumpPoint = decimal.NewFromFloat(0.8)
		jumpMult  = decimal.NewFromFloat(0.5)
	)

	// both branches must agree exactly at the jump point
	below := BorrowRate(jumpPoint, base, mult, jumpPoint, jumpMult)
	above := BorrowRate(jumpPoint.Add(decimal.New(1, -12)), base, mult, jumpPoint, jumpMult)
	atKink := jumpPoint.Mul(mult).Add(base)

	require.True(t, below.Equal(atKink.Truncate(MaxPrecision)), "below kink: %s", below)
	require.True(t, above.Sub(below).LessThan(decimal.NewFromFloat(0.000001)), "jump at kink: %s vs %s", above, below)

	// post-kink slope uses the jump multiplier
	full := BorrowRate(One, base, mult, jumpPoint, jumpMult)
	want := atKink.Add(One.Sub(jumpPoint).Mul(jumpMult)).Truncate(MaxPrecision)
	require.True(t, full.Equal(want), "got %s want %s", full, want)
}

func TestBorrowRateZeroJumpPoint(t *testing.T) {
	rate := BorrowRate(decimal.NewFromFloat(0.5), decimal.NewFromFloat(0.02), decimal.NewFromFloat(0.1), decimal.Zero, decimal.NewFromFloat(2))
	want := decimal.NewFromFloat(0.07)
	require.True(t, rate.Equal(want), "got %s", rate)
}

func TestSupplyRate(t *testing.T) {
	util := decimal.NewFromFloat(0.5)
	borrowRate := decimal.NewFromFloat(0.1)
	take := decimal.NewFromFloat(0.2)

	rate := SupplyRate(util, borrowRate, take)
	want := decimal.NewFromFloat(0.04)
	require.True(t, rate.Equal(want), "got %s", rate)

	// no backstop take passes the full utilization-weighted rate through
	rate = SupplyRate(util, borrowRate, decimal.Zero)
	require.True(t, rate.Equal(decimal.NewFromFloat(0.05)), "got %s", rate)
}
