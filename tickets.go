package tickets

import (
	"github.com/krazyTry/cast-tickets/bonding_curve"
	"github.com/krazyTry/cast-tickets/config"
	"github.com/krazyTry/cast-tickets/quote"
	"github.com/krazyTry/cast-tickets/tier"
)

// NewEngine creates a price engine over an immutable tier table.
//
// Example:
//
// table, _ := helpers.DefaultTierTable(shared.CurveModelPowerLaw)
//
// engine, _ := NewEngine(shared.EngineConfig{Table: table})
//
// engine.BuyPrice(2, 10, 1)
var NewEngine = bonding_curve.NewEngine

// NewClassifier creates a tier classifier from ascending follower thresholds.
//
// Example:
//
// classifier, _ := NewClassifier([]uint64{400, 1000, 10000, 50000}, true)
//
// classifier.Classify(tier.SocialProfile{FollowerCount: 1200, HasPowerBadge: true})
var NewClassifier = tier.NewClassifier

// NewQuoter prices trades on a market, keeping an existing market's tier.
//
// Example:
//
// quoter, _ := NewQuoter(engine, classifier)
//
// quoter.Quote(quote.MarketState{Key: castHash}, author, 1)
var NewQuoter = quote.NewQuoter

// LoadConfig reads a JSON config document.
//
// Example:
//
// cfg, _ := LoadConfig("tickets.json")
//
// engine, classifier, quoter, _ := cfg.Build()
var LoadConfig = config.Load

// ConfigFromEnv builds the config from TICKET_* environment variables and .env.
var ConfigFromEnv = config.FromEnv
