package u128

import (
	"math/big"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenUint128FromString(t *testing.T) {
	v := GenUint128FromString("340282366920938463463374607431768211455")
	assert.Equal(t, ^uint64(0), v.Lo)
	assert.Equal(t, ^uint64(0), v.Hi)

	v = GenUint128FromString("18446744073709551616")
	assert.Equal(t, uint64(0), v.Lo)
	assert.Equal(t, uint64(1), v.Hi)

	assert.Panics(t, func() { GenUint128FromString("-1") })
	assert.Panics(t, func() { GenUint128FromString("340282366920938463463374607431768211456") })
}

func TestFromDecimal(t *testing.T) {
	// 4000 tokens with 18 decimals
	d := decimal.NewFromInt(4000).Shift(18)
	v, err := FromDecimal(d)
	require.NoError(t, err)
	want, _ := new(big.Int).SetString("4000000000000000000000", 10)
	assert.Equal(t, 0, want.Cmp(v.BigInt()))
	assert.True(t, ToDecimal(v).Equal(d))

	v, err = FromDecimal(decimal.Zero)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), v.Lo)
	assert.Equal(t, uint64(0), v.Hi)

	_, err = FromDecimal(decimal.NewFromInt(-1))
	assert.ErrorIs(t, err, ErrNegative)

	_, err = FromDecimal(decimal.RequireFromString("1.5"))
	assert.ErrorIs(t, err, ErrFractional)

	_, err = FromDecimal(decimal.New(1, 39))
	assert.ErrorIs(t, err, ErrOverflow)
}
