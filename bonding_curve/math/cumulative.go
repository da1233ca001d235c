package math

import (
	"fmt"

	"github.com/krazyTry/cast-tickets/bonding_curve/shared"
	"github.com/shopspring/decimal"
)

// NewCurve builds the curve for tier index i of table.
func NewCurve(table shared.TierTable, i int) (shared.Curve, error) {
	if i < 0 || i >= table.Len() {
		return nil, fmt.Errorf("%w: %d", shared.ErrTierOutOfRange, i)
	}
	switch table.Model {
	case shared.CurveModelExponential:
		return NewExponentialCurve(table.Exponential[i])
	case shared.CurveModelPowerLaw:
		return NewPowerLawCurve(table.PowerLaw[i])
	default:
		return nil, fmt.Errorf("%w: %s", shared.ErrUnknownCurveModel, table.Model)
	}
}

// CumulativeBuyPrice walks the curve upwards from supply:
// sum of UnitPrice(supply+i) for i in [0, amount).
func CumulativeBuyPrice(curve shared.Curve, supply, amount int64) decimal.Decimal {
	total := decimal.Zero
	for i := int64(0); i < amount; i++ {
		total = total.Add(curve.UnitPrice(supply + i))
	}
	return total
}

// CumulativeSellPrice walks the curve downwards starting one unit below
// supply: sum of UnitPrice(supply-i-1) for i in [0, amount), stopping
// before the supply point goes negative.
//
// Against an empty market the result is UnitPrice(0) * zeroSupplyFactor.
func CumulativeSellPrice(curve shared.Curve, supply, amount int64, zeroSupplyFactor decimal.Decimal) decimal.Decimal {
	if amount == 0 {
		return decimal.Zero
	}
	if supply == 0 {
		return curve.UnitPrice(0).Mul(zeroSupplyFactor).Round(shared.PriceScale)
	}

	total := decimal.Zero
	for i := int64(0); i < amount; i++ {
		point := supply - i - 1
		if point < 0 {
			break
		}
		total = total.Add(curve.UnitPrice(point))
	}
	return total
}
