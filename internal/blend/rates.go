package blend

import (
	"github.com/shopspring/decimal"
)

var (
	// MaxPrecision max precision
	MaxPrecision int32 = 16
	// SecondsPerYear seconds per year
	SecondsPerYear = decimal.NewFromInt(31536000)
	// One 1
	One = decimal.New(1, 0)
)

// UtilizationRate fraction of supplied value currently borrowed, capped at 1.
// utilization = min(borrowed/supplied, 1); 0 when nothing is supplied.
func UtilizationRate(supplied, borrowed decimal.Decimal) decimal.Decimal {
	if supplied.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}

	rate := borrowed.Div(supplied).Truncate(MaxPrecision)
	if rate.GreaterThan(One) {
		return One
	}
	return rate
}

// BorrowRate piecewise-linear kinked curve, per year.
// Below the jump point: base + utilization * multiplier.
// Above it the slope switches to the jump multiplier.
func BorrowRate(utilization, baseRate, utilMultiplier, jumpPoint, jumpMultiplier decimal.Decimal) decimal.Decimal {
	if jumpPoint.Equal(decimal.Zero) ||
		utilization.LessThanOrEqual(jumpPoint) {
		return utilization.Mul(utilMultiplier).Add(baseRate).Truncate(MaxPrecision)
	}

	normalRate := jumpPoint.Mul(utilMultiplier).Add(baseRate)
	excessUtil := utilization.Sub(jumpPoint)
	return excessUtil.Mul(jumpMultiplier).Add(normalRate).Truncate(MaxPrecision)
}

// SupplyRate borrow-side interest flowing to suppliers after the backstop
// take, per year.
func SupplyRate(utilization, borrowRate, backstopTakeRate decimal.Decimal) decimal.Decimal {
	rateToPool := borrowRate.Mul(One.Sub(backstopTakeRate))
	return utilization.Mul(rateToPool).Truncate(MaxPrecision)
}
