package bonding_curve

import (
	"math"
	"sync"
	"testing"

	"github.com/krazyTry/cast-tickets/bonding_curve/helpers"
	"github.com/krazyTry/cast-tickets/bonding_curve/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T, model shared.CurveModel) *Engine {
	t.Helper()
	table, err := helpers.DefaultTierTable(model)
	require.NoError(t, err)
	engine, err := NewEngine(shared.EngineConfig{Table: table})
	require.NoError(t, err)
	return engine
}

func TestNewEngineDefaults(t *testing.T) {
	engine := newTestEngine(t, shared.CurveModelPowerLaw)
	assert.Equal(t, 5, engine.Tiers())
	assert.Equal(t, shared.CurveModelPowerLaw, engine.Model())
	assert.Equal(t, int32(18), engine.SettlementDecimals())
	assert.True(t, engine.ZeroSupplySellFactor().Equal(decimal.NewFromFloat(0.8)))
}

func TestNewEngineErrors(t *testing.T) {
	_, err := NewEngine(shared.EngineConfig{Table: shared.TierTable{Model: shared.CurveModelExponential}})
	assert.ErrorIs(t, err, shared.ErrInvalidTierTable)

	table, err := helpers.DefaultTierTable(shared.CurveModelExponential)
	require.NoError(t, err)

	_, err = NewEngine(shared.EngineConfig{Table: table, ZeroSupplySellFactor: decimal.NewFromFloat(1.2)})
	assert.ErrorIs(t, err, shared.ErrInvalidTierTable)

	tooMany := int32(40)
	_, err = NewEngine(shared.EngineConfig{Table: table, SettlementDecimals: &tooMany})
	assert.ErrorIs(t, err, shared.ErrInvalidTierTable)
}

func TestNewEngineExplicitSettlementDecimals(t *testing.T) {
	table, err := helpers.DefaultTierTable(shared.CurveModelExponential)
	require.NoError(t, err)

	for _, decimals := range []int32{0, 6, 38} {
		decimals := decimals
		engine, err := NewEngine(shared.EngineConfig{Table: table, SettlementDecimals: &decimals})
		require.NoError(t, err)
		assert.Equal(t, decimals, engine.SettlementDecimals())
	}

	whole := int32(0)
	engine, err := NewEngine(shared.EngineConfig{Table: table, SettlementDecimals: &whole})
	require.NoError(t, err)
	units, err := engine.Settle(decimal.RequireFromString("25.00001"), shared.TradeDirectionBuy)
	require.NoError(t, err)
	assert.Equal(t, uint64(26), units.BigInt().Uint64())
	units, err = engine.Settle(decimal.RequireFromString("25.99999"), shared.TradeDirectionSell)
	require.NoError(t, err)
	assert.Equal(t, uint64(25), units.BigInt().Uint64())
}

func TestEnginePrice(t *testing.T) {
	engine := newTestEngine(t, shared.CurveModelExponential)

	p, err := engine.Price(0, 0)
	require.NoError(t, err)
	assert.True(t, p.Equal(decimal.NewFromInt(25)))

	p, err = engine.Price(0, 50)
	require.NoError(t, err)
	assert.True(t, p.Equal(decimal.NewFromInt(4000)))

	_, err = engine.Price(5, 0)
	assert.ErrorIs(t, err, shared.ErrTierOutOfRange)
	_, err = engine.Price(-1, 0)
	assert.ErrorIs(t, err, shared.ErrTierOutOfRange)
	_, err = engine.Price(0, -1)
	assert.ErrorIs(t, err, shared.ErrNegativeSupply)
}

func TestEngineCumulativePrice(t *testing.T) {
	engine := newTestEngine(t, shared.CurveModelPowerLaw)

	for tier := 0; tier < engine.Tiers(); tier++ {
		for _, supply := range []int64{0, 3, 10} {
			zero, err := engine.BuyPrice(tier, supply, 0)
			require.NoError(t, err)
			assert.True(t, zero.IsZero())
		}
	}

	got, err := engine.BuyPrice(2, 10, 3)
	require.NoError(t, err)
	want := 3*0.0004 + 0.00015*(math.Pow(10, 1.3)+math.Pow(11, 1.3)+math.Pow(12, 1.3))
	assert.InDelta(t, want, got.InexactFloat64(), 1e-14)

	sum := decimal.Zero
	for i := int64(0); i < 3; i++ {
		p, err := engine.Price(2, 10+i)
		require.NoError(t, err)
		sum = sum.Add(p)
	}
	assert.True(t, got.Equal(sum))

	sell, err := engine.SellPrice(2, 0, 1)
	require.NoError(t, err)
	assert.True(t, sell.Equal(decimal.RequireFromString("0.00032")))

	_, err = engine.CumulativePrice(2, 10, -1, shared.TradeDirectionBuy)
	assert.ErrorIs(t, err, shared.ErrNegativeAmount)
	_, err = engine.CumulativePrice(2, -3, 1, shared.TradeDirectionSell)
	assert.ErrorIs(t, err, shared.ErrNegativeSupply)
	_, err = engine.CumulativePrice(2, 10, 1, shared.TradeDirection(2))
	assert.ErrorIs(t, err, shared.ErrInvalidTradeDirection)
	_, err = engine.CumulativePrice(9, 10, 1, shared.TradeDirectionBuy)
	assert.ErrorIs(t, err, shared.ErrTierOutOfRange)
}

func TestEngineSellBelowBuy(t *testing.T) {
	for _, model := range []shared.CurveModel{shared.CurveModelExponential, shared.CurveModelPowerLaw} {
		engine := newTestEngine(t, model)
		for tier := 0; tier < engine.Tiers(); tier++ {
			for supply := int64(0); supply <= 55; supply++ {
				buy, err := engine.BuyPrice(tier, supply, 1)
				require.NoError(t, err)
				sell, err := engine.SellPrice(tier, supply, 1)
				require.NoError(t, err)
				require.True(t, sell.LessThan(buy), "%s tier %d supply %d", model, tier, supply)
			}
		}
	}
}

func TestEngineSettle(t *testing.T) {
	engine := newTestEngine(t, shared.CurveModelExponential)

	price, err := engine.BuyPrice(0, 0, 2)
	require.NoError(t, err)

	units, err := engine.Settle(price, shared.TradeDirectionBuy)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromBigInt(units.BigInt(), -18).Equal(price))
}

func TestEngineConcurrentUse(t *testing.T) {
	engine := newTestEngine(t, shared.CurveModelExponential)
	want, err := engine.BuyPrice(3, 20, 4)
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([]decimal.Decimal, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = engine.BuyPrice(3, 20, 4)
		}(i)
	}
	wg.Wait()

	for _, got := range results {
		assert.True(t, got.Equal(want))
	}
}
