package shared

import (
	"errors"

	"github.com/shopspring/decimal"
)

const (
	// CalibrationSupply is the supply at which an exponential tier is pinned
	// to its PriceAt50.
	CalibrationSupply = 50

	// ExponentialPriceDecimals is the number of places exponential unit
	// prices are rounded up to.
	ExponentialPriceDecimals = 5

	// PriceScale is the precision every unit price is normalised to before
	// any model-specific rounding. It matches an 18-decimal token.
	PriceScale = 18

	// MathScale is the working precision of exp/ln/pow evaluation.
	MathScale = 40

	SettlementDecimalsDefault = 18
	SettlementDecimalsMax     = 38

	FiatDecimals = 2
)

var (
	// ZeroSupplySellFactorDefault scales the supply-0 unit price when a sell
	// is quoted against an empty market.
	ZeroSupplySellFactorDefault = decimal.NewFromFloat(0.8)

	N0  = decimal.Zero
	N1  = decimal.NewFromInt(1)
	N50 = decimal.NewFromInt(CalibrationSupply)
)

// Configuration errors are fatal at load time, the rest are caller contract
// violations returned per call.
var (
	ErrInvalidTierTable      = errors.New("invalid tier table")
	ErrUnknownCurveModel     = errors.New("unknown curve model")
	ErrTierOutOfRange        = errors.New("tier index out of range")
	ErrNegativeSupply        = errors.New("supply cannot be negative")
	ErrNegativeAmount        = errors.New("amount cannot be negative")
	ErrInvalidTradeDirection = errors.New("invalid trade direction")
	ErrNegativePrice         = errors.New("price cannot be negative")
)
