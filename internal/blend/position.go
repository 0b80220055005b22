package blend

import (
	"time"

	"github.com/shopspring/decimal"
)

// HealthFactorMax sentinel for a position with no borrows. Such a position
// carries no liquidation risk, so the factor is reported as this maximum
// instead of dividing by zero.
var HealthFactorMax = decimal.New(1, 9)

// Year projection horizon for annualized accrual.
const Year = 365 * 24 * time.Hour

// Leg one risk-adjusted slice of a position: a priced amount and the factor
// applied to it.
type Leg struct {
	Value  decimal.Decimal
	Factor decimal.Decimal
}

// HealthFactor sum(collateralValue*collateralFactor) over
// sum(borrowValue/liabilityFactor). Below 1 the position is liquidatable.
func HealthFactor(collateral, borrows []Leg) decimal.Decimal {
	collateralValue := decimal.Zero
	for _, leg := range collateral {
		collateralValue = collateralValue.Add(leg.Value.Mul(leg.Factor))
	}

	borrowValue := decimal.Zero
	for _, leg := range borrows {
		if leg.Factor.LessThanOrEqual(decimal.Zero) {
			continue
		}
		borrowValue = borrowValue.Add(leg.Value.Div(leg.Factor))
	}

	if borrowValue.LessThanOrEqual(decimal.Zero) {
		return HealthFactorMax
	}

	return collateralValue.Div(borrowValue).Truncate(MaxPrecision)
}

// YieldEarned current supply-side value minus the principal contributed.
// Zero at the moment of first deposit; non-decreasing between snapshots as
// long as no withdrawal happens in between, because the supply exchange
// rate never decreases.
func YieldEarned(currentValue, principal decimal.Decimal) decimal.Decimal {
	yield := currentValue.Sub(principal)
	if yield.IsNegative() {
		return decimal.Zero
	}
	return yield.Truncate(MaxPrecision)
}

// AccruedValue principal grown under continuous compounding at an annual
// rate for the elapsed duration.
func AccruedValue(principal, annualRate decimal.Decimal, elapsed time.Duration) decimal.Decimal {
	if elapsed <= 0 || annualRate.LessThanOrEqual(decimal.Zero) {
		return principal
	}

	years := decimal.NewFromInt(int64(elapsed / time.Second)).Div(SecondsPerYear)
	growth, err := annualRate.Mul(years).ExpTaylor(MaxPrecision)
	if err != nil {
		return principal
	}
	return principal.Mul(growth).Truncate(MaxPrecision)
}

// MaxSafeBorrow largest extra risk-adjusted borrow value that keeps the
// health factor at or above minFactor. Zero when already below.
func MaxSafeBorrow(collateral, borrows []Leg, minFactor decimal.Decimal) decimal.Decimal {
	if minFactor.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}

	collateralValue := decimal.Zero
	for _, leg := range collateral {
		collateralValue = collateralValue.Add(leg.Value.Mul(leg.Factor))
	}
	borrowValue := decimal.Zero
	for _, leg := range borrows {
		if leg.Factor.LessThanOrEqual(decimal.Zero) {
			continue
		}
		borrowValue = borrowValue.Add(leg.Value.Div(leg.Factor))
	}

	headroom := collateralValue.Div(minFactor).Sub(borrowValue)
	if headroom.IsNegative() {
		return decimal.Zero
	}
	return headroom.Truncate(MaxPrecision)
}

// MaxSafeWithdraw largest risk-adjusted collateral value removable while the
// health factor stays at or above minFactor. Zero when already below; the
// full adjusted collateral when nothing is borrowed.
func MaxSafeWithdraw(collateral, borrows []Leg, minFactor decimal.Decimal) decimal.Decimal {
	collateralValue := decimal.Zero
	for _, leg := range collateral {
		collateralValue = collateralValue.Add(leg.Value.Mul(leg.Factor))
	}
	borrowValue := decimal.Zero
	for _, leg := range borrows {
		if leg.Factor.LessThanOrEqual(decimal.Zero) {
			continue
		}
		borrowValue = borrowValue.Add(leg.Value.Div(leg.Factor))
	}

	headroom := collateralValue.Sub(minFactor.Mul(borrowValue))
	if headroom.IsNegative() {
		return decimal.Zero
	}
	return headroom.Truncate(MaxPrecision)
}
