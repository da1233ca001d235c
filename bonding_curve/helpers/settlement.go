package helpers

import (
	"fmt"

	"github.com/krazyTry/cast-tickets/bonding_curve/shared"
	"github.com/krazyTry/cast-tickets/u128"

	binary "github.com/gagliardetto/binary"
	"github.com/shopspring/decimal"
)

// ToBaseUnits converts a price into the smallest currency unit with the
// given number of decimals. Buys round up and sells round down, so the
// protocol never under-charges a buyer or over-pays a seller.
func ToBaseUnits(price decimal.Decimal, decimals int32, direction shared.TradeDirection) (binary.Uint128, error) {
	if price.IsNegative() {
		return binary.Uint128{}, fmt.Errorf("%w: %s", shared.ErrNegativePrice, price)
	}

	units := price.Shift(decimals)
	switch direction {
	case shared.TradeDirectionBuy:
		units = units.Ceil()
	case shared.TradeDirectionSell:
		units = units.Floor()
	default:
		return binary.Uint128{}, fmt.Errorf("%w: %s", shared.ErrInvalidTradeDirection, direction)
	}
	return u128.FromDecimal(units)
}

// FromBaseUnits is the inverse of ToBaseUnits up to rounding.
func FromBaseUnits(units binary.Uint128, decimals int32) decimal.Decimal {
	return u128.ToDecimal(units).Shift(-decimals)
}
