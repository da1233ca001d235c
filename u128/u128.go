package u128

import (
	"errors"
	"fmt"
	"math/big"

	binary "github.com/gagliardetto/binary"
	"github.com/shopspring/decimal"
)

var (
	ErrNegative   = errors.New("value cannot be negative")
	ErrOverflow   = errors.New("value overflows Uint128")
	ErrFractional = errors.New("value has a fractional part")
)

type Uint128 binary.Uint128

func (u *Uint128) Scan(s fmt.ScanState, ch rune) error {
	i := new(big.Int)
	if err := i.Scan(s, ch); err != nil {
		return err
	}
	return u.setBig(i)
}

func (u *Uint128) setBig(i *big.Int) error {
	if i.Sign() < 0 {
		return ErrNegative
	} else if i.BitLen() > 128 {
		return ErrOverflow
	}
	lo := new(big.Int).And(i, new(big.Int).SetUint64(^uint64(0)))
	u.Lo = lo.Uint64()
	u.Hi = new(big.Int).Rsh(i, 64).Uint64()
	return nil
}

// GenUint128FromString parses a base-10 integer and panics on failure.
// Intended for constants.
func GenUint128FromString(num string) binary.Uint128 {
	u128 := binary.NewUint128LittleEndian()
	if _, err := fmt.Sscan(num, (*Uint128)(u128)); err != nil {
		panic(err)
	}
	return *u128
}

// FromDecimal converts a non-negative integral decimal into a Uint128.
// Rounding to an integer is the caller's responsibility.
func FromDecimal(d decimal.Decimal) (binary.Uint128, error) {
	if d.IsNegative() {
		return binary.Uint128{}, ErrNegative
	}
	if !d.Equal(d.Truncate(0)) {
		return binary.Uint128{}, ErrFractional
	}
	u128 := binary.NewUint128LittleEndian()
	if err := (*Uint128)(u128).setBig(d.BigInt()); err != nil {
		return binary.Uint128{}, err
	}
	return *u128, nil
}

func ToDecimal(v binary.Uint128) decimal.Decimal {
	return decimal.NewFromBigInt(v.BigInt(), 0)
}
