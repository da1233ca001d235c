package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/krazyTry/cast-tickets/bonding_curve"
	"github.com/krazyTry/cast-tickets/config"
	"github.com/krazyTry/cast-tickets/feed"
	"github.com/krazyTry/cast-tickets/logger"
	"github.com/krazyTry/cast-tickets/quote"
	"github.com/krazyTry/cast-tickets/tier"

	jsoniter "github.com/json-iterator/go"
	"github.com/shopspring/decimal"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type options struct {
	configPath string
	followers  uint64
	badge      bool
	authorPath string
	tier       int
	supply     int64
	marketPath string
	castHash   string
	amount     int64
	rate       string
	table      int64
}

func parseFlags(args []string) (*options, error) {
	opts := &options{}
	fs := flag.NewFlagSet("ticketprice", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	// Config
	fs.StringVar(&opts.configPath, "config", "", "Config JSON path (default: TICKET_CONFIG_PATH or built-in tables)")

	// Author
	fs.Uint64Var(&opts.followers, "followers", 0, "Author follower count")
	fs.BoolVar(&opts.badge, "badge", false, "Author holds a power badge")
	fs.StringVar(&opts.authorPath, "author", "", "Social graph user or cast JSON for the author")

	// Market
	fs.IntVar(&opts.tier, "tier", -1, "Active tier of an existing market (-1: market does not exist)")
	fs.Int64Var(&opts.supply, "supply", 0, "Ticket supply of an existing market")
	fs.StringVar(&opts.marketPath, "market", "", "Indexer ticket JSON for the market")
	fs.StringVar(&opts.castHash, "cast", "", "Cast hash the market is keyed by")

	// Trade
	fs.Int64Var(&opts.amount, "amount", 1, "Number of tickets to quote")
	fs.StringVar(&opts.rate, "rate", "", "Quote currency to USD rate for fiat prices")

	// Output
	fs.Int64Var(&opts.table, "table", 0, "Print unit prices for supply 0..N-1 of every tier instead of a quote")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if opts.tier >= 0 && opts.marketPath != "" {
		return nil, errors.New("-tier and -market are mutually exclusive")
	}
	if opts.table < 0 {
		return nil, fmt.Errorf("-table must not be negative: %d", opts.table)
	}
	return opts, nil
}

type quoteOutput struct {
	Market     string `json:"market,omitempty"`
	Tier       int    `json:"tier"`
	Classified bool   `json:"classified"`
	Supply     int64  `json:"supply"`
	Amount     int64  `json:"amount"`
	BuyPrice   string `json:"buy_price"`
	SellPrice  string `json:"sell_price"`
	BuyUnits   string `json:"buy_units"`
	SellUnits  string `json:"sell_units"`
	BuyFiat    string `json:"buy_fiat,omitempty"`
	SellFiat   string `json:"sell_fiat,omitempty"`
}

type tableRow struct {
	Supply int64    `json:"supply"`
	Prices []string `json:"prices"`
}

type tableOutput struct {
	Model string     `json:"model"`
	Rows  []tableRow `json:"rows"`
}

func loadConfig(opts *options) (*config.Config, error) {
	if opts.configPath == "" {
		return config.FromEnv()
	}
	return config.Load(opts.configPath)
}

func resolveMarket(opts *options) (quote.MarketState, error) {
	if opts.marketPath != "" {
		body, err := os.ReadFile(opts.marketPath)
		if err != nil {
			return quote.MarketState{}, err
		}
		return feed.ParseTicket(opts.castHash, body)
	}
	if opts.tier >= 0 {
		return quote.MarketState{Key: opts.castHash, Exists: true, ActiveTier: opts.tier, Supply: opts.supply}, nil
	}
	return quote.MarketState{Key: opts.castHash}, nil
}

func resolveAuthor(opts *options) (tier.SocialProfile, error) {
	if opts.authorPath == "" {
		return tier.SocialProfile{FollowerCount: opts.followers, HasPowerBadge: opts.badge}, nil
	}
	body, err := os.ReadFile(opts.authorPath)
	if err != nil {
		return tier.SocialProfile{}, err
	}
	if profile, err := feed.ParseCastAuthor(body); err == nil {
		return profile, nil
	}
	return feed.ParseUser(body)
}

func curveTable(engine *bonding_curve.Engine, n int64) (*tableOutput, error) {
	out := &tableOutput{Model: engine.Model().String()}
	for supply := int64(0); supply < n; supply++ {
		row := tableRow{Supply: supply}
		for i := 0; i < engine.Tiers(); i++ {
			price, err := engine.Price(i, supply)
			if err != nil {
				return nil, err
			}
			row.Prices = append(row.Prices, price.String())
		}
		out.Rows = append(out.Rows, row)
	}
	return out, nil
}

func quoteTrade(quoter *quote.Quoter, opts *options, log *logger.Logger) (*quoteOutput, error) {
	market, err := resolveMarket(opts)
	if err != nil {
		return nil, err
	}
	author, err := resolveAuthor(opts)
	if err != nil {
		return nil, err
	}

	q, err := quoter.Quote(market, author, opts.amount)
	if err != nil {
		return nil, err
	}
	log.WithMarket(q.Key).WithField("amount", q.Amount).Debug("market resolved")
	log.WithTier(q.ActiveTier, q.Classified).Debug("tier resolved")

	out := &quoteOutput{
		Market:     q.Key,
		Tier:       q.ActiveTier,
		Classified: q.Classified,
		Supply:     q.Supply,
		Amount:     q.Amount,
		BuyPrice:   q.BuyPrice.String(),
		SellPrice:  q.SellPrice.String(),
		BuyUnits:   q.BuyUnits.BigInt().String(),
		SellUnits:  q.SellUnits.BigInt().String(),
	}
	if opts.rate != "" {
		rate, err := decimal.NewFromString(opts.rate)
		if err != nil {
			return nil, fmt.Errorf("invalid -rate %q: %w", opts.rate, err)
		}
		buy, sell, err := q.Fiat(rate)
		if err != nil {
			return nil, err
		}
		out.BuyFiat = buy.StringFixed(2)
		out.SellFiat = sell.StringFixed(2)
	}
	return out, nil
}

func run(args []string, stdout io.Writer, log *logger.Logger) error {
	opts, err := parseFlags(args)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	engine, classifier, quoter, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("build engine: %w", err)
	}
	log.Entry().WithFields(map[string]interface{}{
		"model":       engine.Model().String(),
		"tiers":       engine.Tiers(),
		"thresholds":  classifier.Thresholds(),
		"badge_rule":  classifier.PowerBadgePenalty(),
		"settle_dps":  engine.SettlementDecimals(),
		"sell_factor": engine.ZeroSupplySellFactor().String(),
	}).Info("config loaded")

	var out interface{}
	if opts.table > 0 {
		out, err = curveTable(engine, opts.table)
	} else {
		out, err = quoteTrade(quoter, opts, log)
	}
	if err != nil {
		return err
	}

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func main() {
	log := logger.New("ticketprice")
	if err := run(os.Args[1:], os.Stdout, log); err != nil {
		log.Entry().WithError(err).Error("ticketprice failed")
		os.Exit(1)
	}
}
