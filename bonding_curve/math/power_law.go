package math

import (
	"fmt"

	"github.com/krazyTry/cast-tickets/bonding_curve/shared"
	dmath "github.com/krazyTry/cast-tickets/decimal_math"
	"github.com/shopspring/decimal"
)

// PowerLawCurve is BasePrice + ScaleFactor * supply^CurveExponent.
type PowerLawCurve struct {
	basePrice     decimal.Decimal
	curveExponent decimal.Decimal
	scaleFactor   decimal.Decimal
}

func NewPowerLawCurve(tier shared.PowerLawTier) (*PowerLawCurve, error) {
	if !tier.BasePrice.IsPositive() {
		return nil, fmt.Errorf("%w: base price %s must be positive", shared.ErrInvalidTierTable, tier.BasePrice)
	}
	if !tier.CurveExponent.IsPositive() {
		return nil, fmt.Errorf("%w: curve exponent %s must be positive", shared.ErrInvalidTierTable, tier.CurveExponent)
	}
	if !tier.ScaleFactor.IsPositive() {
		return nil, fmt.Errorf("%w: scale factor %s must be positive", shared.ErrInvalidTierTable, tier.ScaleFactor)
	}
	return &PowerLawCurve{
		basePrice:     tier.BasePrice,
		curveExponent: tier.CurveExponent,
		scaleFactor:   tier.ScaleFactor,
	}, nil
}

// UnitPrice is normalised to PriceScale. Display rounding is left to the
// caller.
//
// The caller must ensure supply >= 0, as for every shared.Curve. Engine
// rejects a negative supply with ErrNegativeSupply before pricing; a direct
// call with one panics.
func (c *PowerLawCurve) UnitPrice(supply int64) decimal.Decimal {
	p, err := dmath.Pow(decimal.NewFromInt(supply), c.curveExponent, shared.MathScale)
	if err != nil {
		panic(fmt.Sprintf("power law curve at supply %d: %v", supply, err))
	}
	return c.basePrice.Add(c.scaleFactor.Mul(p)).Round(shared.PriceScale)
}

func (c *PowerLawCurve) BasePrice() decimal.Decimal {
	return c.basePrice
}
