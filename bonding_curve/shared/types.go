package shared

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// CurveModel selects the price function a tier table describes.
type CurveModel uint8

const (
	CurveModelExponential CurveModel = iota
	CurveModelPowerLaw
)

func (m CurveModel) String() string {
	switch m {
	case CurveModelExponential:
		return "exponential"
	case CurveModelPowerLaw:
		return "power_law"
	default:
		return fmt.Sprintf("CurveModel(%d)", uint8(m))
	}
}

func ParseCurveModel(s string) (CurveModel, error) {
	switch s {
	case "exponential":
		return CurveModelExponential, nil
	case "power_law":
		return CurveModelPowerLaw, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownCurveModel, s)
	}
}

// TradeDirection defines the side of a ticket trade
type TradeDirection uint8

const (
	TradeDirectionBuy TradeDirection = iota
	TradeDirectionSell
)

func (d TradeDirection) String() string {
	switch d {
	case TradeDirectionBuy:
		return "buy"
	case TradeDirectionSell:
		return "sell"
	default:
		return fmt.Sprintf("TradeDirection(%d)", uint8(d))
	}
}

// ExponentialTier prices ticket n at StartingPrice * e^(g*n), with g chosen
// so that ticket 50 costs PriceAt50.
type ExponentialTier struct {
	StartingPrice decimal.Decimal `json:"starting_price"`
	PriceAt50     decimal.Decimal `json:"price_at_50"`
}

// PowerLawTier prices ticket n at BasePrice + ScaleFactor * n^CurveExponent.
type PowerLawTier struct {
	BasePrice     decimal.Decimal `json:"base_price"`
	CurveExponent decimal.Decimal `json:"curve_exponent"`
	ScaleFactor   decimal.Decimal `json:"scale_factor"`
}

// TierTable is the static per-tier curve configuration. Only the slice
// matching Model is read.
type TierTable struct {
	Model       CurveModel
	Exponential []ExponentialTier
	PowerLaw    []PowerLawTier
}

func (t TierTable) Len() int {
	switch t.Model {
	case CurveModelExponential:
		return len(t.Exponential)
	case CurveModelPowerLaw:
		return len(t.PowerLaw)
	default:
		return 0
	}
}

// Curve is a single tier's unit price function.
type Curve interface {
	// UnitPrice is the price of the ticket minted on top of supply.
	// supply must be >= 0.
	UnitPrice(supply int64) decimal.Decimal
}

type EngineConfig struct {
	Table TierTable

	// ZeroSupplySellFactor defaults to ZeroSupplySellFactorDefault when zero.
	ZeroSupplySellFactor decimal.Decimal

	// SettlementDecimals defaults to SettlementDecimalsDefault when nil.
	// An explicit 0 settles in whole units.
	SettlementDecimals *int32
}
