package bonding_curve

import (
	"fmt"

	"github.com/krazyTry/cast-tickets/bonding_curve/helpers"
	mathutil "github.com/krazyTry/cast-tickets/bonding_curve/math"
	"github.com/krazyTry/cast-tickets/bonding_curve/shared"

	binary "github.com/gagliardetto/binary"
	"github.com/shopspring/decimal"
)

// Engine prices ticket trades against a fixed tier table.
//
// An Engine is immutable once built and safe for concurrent use.
type Engine struct {
	model                shared.CurveModel
	curves               []shared.Curve
	zeroSupplySellFactor decimal.Decimal
	settlementDecimals   int32
}

// NewEngine validates config and precomputes one curve per tier. Any error
// here is a configuration error and should stop the process.
//
// Example:
//
// table, _ := helpers.DefaultTierTable(shared.CurveModelPowerLaw)
//
// engine, _ := NewEngine(shared.EngineConfig{Table: table})
//
// total, _ := engine.CumulativePrice(2, 10, 3, shared.TradeDirectionBuy)
func NewEngine(config shared.EngineConfig) (*Engine, error) {
	curves, err := helpers.BuildCurves(config.Table)
	if err != nil {
		return nil, err
	}

	factor := config.ZeroSupplySellFactor
	if factor.IsZero() {
		factor = shared.ZeroSupplySellFactorDefault
	}
	if err := helpers.ValidateZeroSupplySellFactor(factor); err != nil {
		return nil, err
	}

	decimals := int32(shared.SettlementDecimalsDefault)
	if config.SettlementDecimals != nil {
		decimals = *config.SettlementDecimals
	}
	if err := helpers.ValidateSettlementDecimals(decimals); err != nil {
		return nil, err
	}

	return &Engine{
		model:                config.Table.Model,
		curves:               curves,
		zeroSupplySellFactor: factor,
		settlementDecimals:   decimals,
	}, nil
}

func (e *Engine) curve(tier int) (shared.Curve, error) {
	if tier < 0 || tier >= len(e.curves) {
		return nil, fmt.Errorf("%w: %d not in [0, %d]", shared.ErrTierOutOfRange, tier, len(e.curves)-1)
	}
	return e.curves[tier], nil
}

// Price is the unit price of the next ticket on top of supply.
func (e *Engine) Price(tier int, supply int64) (decimal.Decimal, error) {
	curve, err := e.curve(tier)
	if err != nil {
		return decimal.Decimal{}, err
	}
	if supply < 0 {
		return decimal.Decimal{}, fmt.Errorf("%w: %d", shared.ErrNegativeSupply, supply)
	}
	return curve.UnitPrice(supply), nil
}

// CumulativePrice is the total cost (buy) or proceeds (sell) of trading
// amount tickets at the current supply.
func (e *Engine) CumulativePrice(tier int, supply, amount int64, direction shared.TradeDirection) (decimal.Decimal, error) {
	curve, err := e.curve(tier)
	if err != nil {
		return decimal.Decimal{}, err
	}
	if supply < 0 {
		return decimal.Decimal{}, fmt.Errorf("%w: %d", shared.ErrNegativeSupply, supply)
	}
	if amount < 0 {
		return decimal.Decimal{}, fmt.Errorf("%w: %d", shared.ErrNegativeAmount, amount)
	}

	switch direction {
	case shared.TradeDirectionBuy:
		return mathutil.CumulativeBuyPrice(curve, supply, amount), nil
	case shared.TradeDirectionSell:
		return mathutil.CumulativeSellPrice(curve, supply, amount, e.zeroSupplySellFactor), nil
	default:
		return decimal.Decimal{}, fmt.Errorf("%w: %s", shared.ErrInvalidTradeDirection, direction)
	}
}

func (e *Engine) BuyPrice(tier int, supply, amount int64) (decimal.Decimal, error) {
	return e.CumulativePrice(tier, supply, amount, shared.TradeDirectionBuy)
}

func (e *Engine) SellPrice(tier int, supply, amount int64) (decimal.Decimal, error) {
	return e.CumulativePrice(tier, supply, amount, shared.TradeDirectionSell)
}

// Settle converts a price into on-chain base units using the engine's
// settlement decimals.
func (e *Engine) Settle(price decimal.Decimal, direction shared.TradeDirection) (binary.Uint128, error) {
	return helpers.ToBaseUnits(price, e.settlementDecimals, direction)
}

func (e *Engine) Tiers() int {
	return len(e.curves)
}

func (e *Engine) Model() shared.CurveModel {
	return e.model
}

func (e *Engine) SettlementDecimals() int32 {
	return e.settlementDecimals
}

func (e *Engine) ZeroSupplySellFactor() decimal.Decimal {
	return e.zeroSupplySellFactor
}
