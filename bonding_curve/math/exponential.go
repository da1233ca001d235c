package math

import (
	"fmt"

	"github.com/krazyTry/cast-tickets/bonding_curve/shared"
	dmath "github.com/krazyTry/cast-tickets/decimal_math"
	"github.com/shopspring/decimal"
)

// minExponentialStep is one price tick plus the normalisation error of
// PriceScale.
var minExponentialStep = decimal.New(1, -shared.ExponentialPriceDecimals).Add(decimal.New(1, -shared.PriceScale))

// ExponentialCurve is StartingPrice * e^(GrowthRate * supply).
type ExponentialCurve struct {
	startingPrice decimal.Decimal
	growthRate    decimal.Decimal
}

// NewExponentialCurve solves the growth rate once so that the curve passes
// through PriceAt50 at supply 50: g = ln(PriceAt50 / StartingPrice) / 50.
//
// Prices are quoted in ticks of 10^-ExponentialPriceDecimals, so the
// starting price must sit on a tick and the first step of the curve must be
// wider than one tick. Otherwise rounding up would flatten the curve.
func NewExponentialCurve(tier shared.ExponentialTier) (*ExponentialCurve, error) {
	if !tier.StartingPrice.IsPositive() {
		return nil, fmt.Errorf("%w: starting price %s must be positive", shared.ErrInvalidTierTable, tier.StartingPrice)
	}
	if !tier.PriceAt50.GreaterThan(tier.StartingPrice) {
		return nil, fmt.Errorf("%w: price at 50 (%s) must exceed starting price (%s)", shared.ErrInvalidTierTable, tier.PriceAt50, tier.StartingPrice)
	}
	if !tier.StartingPrice.Equal(tier.StartingPrice.Round(shared.ExponentialPriceDecimals)) {
		return nil, fmt.Errorf("%w: starting price %s has more than %d decimal places", shared.ErrInvalidTierTable, tier.StartingPrice, shared.ExponentialPriceDecimals)
	}

	ratio := tier.PriceAt50.DivRound(tier.StartingPrice, shared.MathScale)
	lnRatio, err := dmath.Ln(ratio, shared.MathScale)
	if err != nil {
		return nil, err
	}

	growthRate := lnRatio.DivRound(shared.N50, shared.MathScale)

	// steps only widen with supply, so the first one is the narrowest
	firstStep := tier.StartingPrice.Mul(dmath.Exp(growthRate, shared.MathScale).Sub(shared.N1))
	if firstStep.LessThan(minExponentialStep) {
		return nil, fmt.Errorf("%w: first price step %s of tier (%s, %s) is narrower than %s", shared.ErrInvalidTierTable,
			firstStep.Round(shared.PriceScale), tier.StartingPrice, tier.PriceAt50, minExponentialStep)
	}

	return &ExponentialCurve{
		startingPrice: tier.StartingPrice,
		growthRate:    growthRate,
	}, nil
}

// UnitPrice rounds up to ExponentialPriceDecimals so a buyer is never
// under-charged. The raw value is first cut to PriceScale, which keeps the
// calibration points (supply 0 and 50) exact.
func (c *ExponentialCurve) UnitPrice(supply int64) decimal.Decimal {
	x := c.growthRate.Mul(decimal.NewFromInt(supply))
	raw := c.startingPrice.Mul(dmath.Exp(x, shared.MathScale))
	return raw.Round(shared.PriceScale).RoundCeil(shared.ExponentialPriceDecimals)
}

func (c *ExponentialCurve) StartingPrice() decimal.Decimal {
	return c.startingPrice
}

func (c *ExponentialCurve) GrowthRate() decimal.Decimal {
	return c.growthRate
}
