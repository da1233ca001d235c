package decimal_math

import (
	"github.com/shopspring/decimal"
)

// guardDigits are carried past the requested scale while iterating and
// dropped by the final Round.
const guardDigits = 10

const maxIterations = 500

var (
	one  = decimal.NewFromInt(1)
	half = decimal.NewFromFloat(0.5)
)

// Exp returns e^x rounded to scale decimal places.
//
// The argument is halved until |r| <= 0.5, the Taylor series is summed for
// e^r and the result is squared back k times: e^x = (e^r)^(2^k).
func Exp(x decimal.Decimal, scale int32) decimal.Decimal {
	if x.IsZero() {
		return one
	}

	// halving is exact in base 10, so the reduction itself loses nothing
	r := x
	k := int32(0)
	for r.Abs().GreaterThan(half) {
		r = r.Mul(half)
		k++
	}

	// every squaring doubles the relative error
	prec := scale + guardDigits + k/3 + 1
	eps := decimal.New(1, -prec)

	sum := one
	term := one
	for i := int64(1); i < maxIterations; i++ {
		term = term.Mul(r).DivRound(decimal.NewFromInt(i), prec)
		if term.Abs().LessThan(eps) {
			break
		}
		sum = sum.Add(term)
	}

	for ; k > 0; k-- {
		sum = sum.Mul(sum).Round(prec)
	}
	return sum.Round(scale)
}
