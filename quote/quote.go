package quote

import (
	"errors"
	"fmt"

	"github.com/krazyTry/cast-tickets/bonding_curve"
	"github.com/krazyTry/cast-tickets/bonding_curve/shared"
	"github.com/krazyTry/cast-tickets/tier"

	binary "github.com/gagliardetto/binary"
	"github.com/shopspring/decimal"
)

var (
	ErrTierCountMismatch = errors.New("classifier and tier table disagree on tier count")
	ErrNegativeRate      = errors.New("fiat rate cannot be negative")
)

// MarketState is the indexer's view of a cast's ticket market.
type MarketState struct {
	// Key is the cast hash the market is keyed by.
	Key string

	// Exists is false until the first ticket is bought.
	Exists bool

	// ActiveTier was assigned at first purchase and never changes.
	ActiveTier int

	Supply int64
}

type Quote struct {
	Key        string
	ActiveTier int
	Supply     int64
	Amount     int64

	// Classified is set when the tier came from the author's profile
	// rather than an existing market.
	Classified bool

	BuyPrice  decimal.Decimal
	SellPrice decimal.Decimal

	// BuyUnits and SellUnits are the settlement amounts in base units.
	BuyUnits  binary.Uint128
	SellUnits binary.Uint128
}

// Fiat converts the buy and sell prices with rate (fiat per unit of the
// quote currency), rounded to cents.
func (q *Quote) Fiat(rate decimal.Decimal) (buy, sell decimal.Decimal, err error) {
	if rate.IsNegative() {
		return decimal.Decimal{}, decimal.Decimal{}, fmt.Errorf("%w: %s", ErrNegativeRate, rate)
	}
	return q.BuyPrice.Mul(rate).Round(shared.FiatDecimals), q.SellPrice.Mul(rate).Round(shared.FiatDecimals), nil
}

// Quoter prices trades for a market, classifying the author when the
// market does not exist yet.
type Quoter struct {
	engine     *bonding_curve.Engine
	classifier *tier.Classifier
}

func NewQuoter(engine *bonding_curve.Engine, classifier *tier.Classifier) (*Quoter, error) {
	if engine.Tiers() != classifier.Tiers() {
		return nil, fmt.Errorf("%w: table has %d, classifier has %d", ErrTierCountMismatch, engine.Tiers(), classifier.Tiers())
	}
	return &Quoter{engine: engine, classifier: classifier}, nil
}

// Tier resolves the tier a trade on market is priced at. An existing
// market keeps the tier it was created with, even if the author's
// follower count has changed since.
func (q *Quoter) Tier(market MarketState, author tier.SocialProfile) (activeTier int, classified bool) {
	if market.Exists {
		return market.ActiveTier, false
	}
	return q.classifier.Classify(author), true
}

// Quote prices buying and selling amount tickets on market.
func (q *Quoter) Quote(market MarketState, author tier.SocialProfile, amount int64) (*Quote, error) {
	activeTier, classified := q.Tier(market, author)

	supply := market.Supply
	if !market.Exists {
		supply = 0
	}

	buy, err := q.engine.BuyPrice(activeTier, supply, amount)
	if err != nil {
		return nil, err
	}
	sell, err := q.engine.SellPrice(activeTier, supply, amount)
	if err != nil {
		return nil, err
	}

	buyUnits, err := q.engine.Settle(buy, shared.TradeDirectionBuy)
	if err != nil {
		return nil, err
	}
	sellUnits, err := q.engine.Settle(sell, shared.TradeDirectionSell)
	if err != nil {
		return nil, err
	}

	return &Quote{
		Key:        market.Key,
		ActiveTier: activeTier,
		Supply:     supply,
		Amount:     amount,
		Classified: classified,
		BuyPrice:   buy,
		SellPrice:  sell,
		BuyUnits:   buyUnits,
		SellUnits:  sellUnits,
	}, nil
}

func (q *Quoter) Engine() *bonding_curve.Engine {
	return q.engine
}

func (q *Quoter) Classifier() *tier.Classifier {
	return q.classifier
}
