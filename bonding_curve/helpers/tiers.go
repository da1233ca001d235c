package helpers

import (
	"fmt"

	"github.com/krazyTry/cast-tickets/bonding_curve/shared"
	"github.com/shopspring/decimal"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// DefaultExponentialTiers returns the exponential tier table, lowest
// influence bracket first.
func DefaultExponentialTiers() []shared.ExponentialTier {
	return []shared.ExponentialTier{
		{StartingPrice: d("25"), PriceAt50: d("4000")},
		{StartingPrice: d("50"), PriceAt50: d("6000")},
		{StartingPrice: d("100"), PriceAt50: d("10000")},
		{StartingPrice: d("250"), PriceAt50: d("20000")},
		{StartingPrice: d("500"), PriceAt50: d("40000")},
	}
}

// DefaultPowerLawTiers returns the power-law tier table, lowest influence
// bracket first.
func DefaultPowerLawTiers() []shared.PowerLawTier {
	return []shared.PowerLawTier{
		{BasePrice: d("0.0001"), CurveExponent: d("1.1"), ScaleFactor: d("0.00005")},
		{BasePrice: d("0.0002"), CurveExponent: d("1.2"), ScaleFactor: d("0.0001")},
		{BasePrice: d("0.0004"), CurveExponent: d("1.3"), ScaleFactor: d("0.00015")},
		{BasePrice: d("0.0008"), CurveExponent: d("1.4"), ScaleFactor: d("0.0002")},
		{BasePrice: d("0.0016"), CurveExponent: d("1.5"), ScaleFactor: d("0.0003")},
	}
}

func DefaultTierTable(model shared.CurveModel) (shared.TierTable, error) {
	switch model {
	case shared.CurveModelExponential:
		return shared.TierTable{Model: model, Exponential: DefaultExponentialTiers()}, nil
	case shared.CurveModelPowerLaw:
		return shared.TierTable{Model: model, PowerLaw: DefaultPowerLawTiers()}, nil
	default:
		return shared.TierTable{}, fmt.Errorf("%w: %s", shared.ErrUnknownCurveModel, model)
	}
}
