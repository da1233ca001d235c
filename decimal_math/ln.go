package decimal_math

import (
	"errors"
	"math"

	"github.com/shopspring/decimal"
)

var ErrLnNonPositive = errors.New("ln undefined for values <= 0")

// Ln returns the natural logarithm of x rounded to scale decimal places.
//
// A float64 estimate seeds Newton's iteration y' = y + x/e^y - 1, which
// converges quadratically.
func Ln(x decimal.Decimal, scale int32) (decimal.Decimal, error) {
	if !x.IsPositive() {
		return decimal.Decimal{}, ErrLnNonPositive
	}
	if x.Equal(one) {
		return decimal.Zero, nil
	}

	prec := scale + guardDigits
	eps := decimal.New(1, -prec)

	y := decimal.NewFromFloat(lnEstimate(x))
	for i := 0; i < maxIterations; i++ {
		delta := x.DivRound(Exp(y, prec), prec).Sub(one)
		y = y.Add(delta)
		if delta.Abs().LessThan(eps) {
			break
		}
	}
	return y.Round(scale), nil
}

func lnEstimate(x decimal.Decimal) float64 {
	f, _ := x.Float64()
	if f > 0 && !math.IsInf(f, 0) {
		return math.Log(f)
	}
	// out of float64 range: ln(c * 10^e) ~= (digits(c) + e) * ln(10)
	digits := len(x.Coefficient().String())
	return float64(digits+int(x.Exponent())) * math.Ln10
}
