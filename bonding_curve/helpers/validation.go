package helpers

import (
	"fmt"

	mathutil "github.com/krazyTry/cast-tickets/bonding_curve/math"
	"github.com/krazyTry/cast-tickets/bonding_curve/shared"
	"github.com/shopspring/decimal"
)

// BuildCurves validates every tier of table and returns one curve per tier.
func BuildCurves(table shared.TierTable) ([]shared.Curve, error) {
	switch table.Model {
	case shared.CurveModelExponential:
		if len(table.PowerLaw) != 0 {
			return nil, fmt.Errorf("%w: power law tiers present in an exponential table", shared.ErrInvalidTierTable)
		}
	case shared.CurveModelPowerLaw:
		if len(table.Exponential) != 0 {
			return nil, fmt.Errorf("%w: exponential tiers present in a power law table", shared.ErrInvalidTierTable)
		}
	default:
		return nil, fmt.Errorf("%w: %s", shared.ErrUnknownCurveModel, table.Model)
	}

	n := table.Len()
	if n == 0 {
		return nil, fmt.Errorf("%w: no tiers", shared.ErrInvalidTierTable)
	}

	curves := make([]shared.Curve, 0, n)
	for i := 0; i < n; i++ {
		curve, err := mathutil.NewCurve(table, i)
		if err != nil {
			return nil, fmt.Errorf("tier %d: %w", i, err)
		}
		curves = append(curves, curve)
	}
	return curves, nil
}

func ValidateTierTable(table shared.TierTable) error {
	_, err := BuildCurves(table)
	return err
}

// ValidateZeroSupplySellFactor requires 0 < factor < 1 so an empty-market
// sell always quotes below the first buy.
func ValidateZeroSupplySellFactor(factor decimal.Decimal) error {
	if !factor.IsPositive() || !factor.LessThan(shared.N1) {
		return fmt.Errorf("%w: zero supply sell factor %s must be in (0, 1)", shared.ErrInvalidTierTable, factor)
	}
	return nil
}

func ValidateSettlementDecimals(decimals int32) error {
	if decimals < 0 || decimals > shared.SettlementDecimalsMax {
		return fmt.Errorf("%w: settlement decimals %d must be in [0, %d]", shared.ErrInvalidTierTable, decimals, shared.SettlementDecimalsMax)
	}
	return nil
}
