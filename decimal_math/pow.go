package decimal_math

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	ErrZeroToNonPositive      = errors.New("0 raised to a non-positive power")
	ErrNegativeBaseNonInteger = errors.New("negative base with non-integer exponent")
)

// Pow returns base^exponent rounded to scale decimal places.
//
// Non-negative integer exponents use exact multiplication, everything else
// is evaluated as exp(exponent * ln(base)).
func Pow(base, exponent decimal.Decimal, scale int32) (decimal.Decimal, error) {
	if base.IsZero() {
		if !exponent.IsPositive() {
			return decimal.Decimal{}, ErrZeroToNonPositive
		}
		return decimal.Zero, nil
	}
	if exponent.IsZero() {
		return one, nil
	}

	isInteger := exponent.Equal(exponent.Truncate(0))
	if isInteger && exponent.IsPositive() {
		return base.Pow(exponent).Round(scale), nil
	}
	if base.IsNegative() {
		if !isInteger {
			return decimal.Decimal{}, ErrNegativeBaseNonInteger
		}
		p, err := Pow(base.Neg(), exponent, scale)
		if err != nil {
			return decimal.Decimal{}, err
		}
		if exponent.Mod(decimal.NewFromInt(2)).IsZero() {
			return p, nil
		}
		return p.Neg(), nil
	}

	prec := scale + guardDigits
	lnBase, err := Ln(base, prec)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return Exp(exponent.Mul(lnBase), prec).Round(scale), nil
}
