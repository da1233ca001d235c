package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/krazyTry/cast-tickets/bonding_curve"
	"github.com/krazyTry/cast-tickets/bonding_curve/helpers"
	"github.com/krazyTry/cast-tickets/bonding_curve/shared"
	"github.com/krazyTry/cast-tickets/quote"
	"github.com/krazyTry/cast-tickets/tier"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/tidwall/gjson"
)

const (
	EnvConfigPath        = "TICKET_CONFIG_PATH"
	EnvCurveModel        = "TICKET_CURVE_MODEL"
	EnvPowerBadgePenalty = "TICKET_POWER_BADGE_PENALTY"

	DefaultModel = "power_law"
)

var (
	ErrInvalidConfig     = errors.New("invalid ticket pricing config")
	ErrTierCountMismatch = errors.New("thresholds do not match tier count")
)

var validate = validator.New()

// Config is everything needed to price tickets: the tier table and how
// authors are bucketed into it.
type Config struct {
	Model                string           `json:"model" validate:"required,oneof=exponential power_law"`
	PowerBadgePenalty    bool             `json:"power_badge_penalty"`
	Thresholds           []uint64         `json:"thresholds" validate:"required,min=1,dive,gt=0"`
	ZeroSupplySellFactor decimal.Decimal  `json:"zero_supply_sell_factor" validate:"-"`
	SettlementDecimals   int32            `json:"settlement_decimals" validate:"gte=0,lte=38"`
	Table                shared.TierTable `json:"-" validate:"-"`
}

// Default returns the built-in configuration for model.
func Default(model string) (*Config, error) {
	m, err := shared.ParseCurveModel(model)
	if err != nil {
		return nil, err
	}
	table, err := helpers.DefaultTierTable(m)
	if err != nil {
		return nil, err
	}
	return &Config{
		Model:                model,
		PowerBadgePenalty:    true,
		Thresholds:           tier.DefaultThresholds(),
		ZeroSupplySellFactor: shared.ZeroSupplySellFactorDefault,
		SettlementDecimals:   shared.SettlementDecimalsDefault,
		Table:                table,
	}, nil
}

// Parse reads a JSON config document. Absent fields keep their defaults;
// absent tiers select the default table for the model.
//
//	{
//	  "model": "power_law",
//	  "power_badge_penalty": true,
//	  "thresholds": [400, 1000, 10000, 50000],
//	  "zero_supply_sell_factor": "0.8",
//	  "settlement_decimals": 18,
//	  "tiers": [{"base_price": "0.0001", "curve_exponent": 1.1, "scale_factor": "0.00005"}, ...]
//	}
func Parse(data []byte) (*Config, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: malformed json", ErrInvalidConfig)
	}
	root := gjson.ParseBytes(data)

	model := DefaultModel
	if m := root.Get("model"); m.Exists() {
		model = m.String()
	}
	cfg, err := Default(model)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	if r := root.Get("power_badge_penalty"); r.Exists() {
		if r.Type != gjson.True && r.Type != gjson.False {
			return nil, fmt.Errorf("%w: power_badge_penalty=%s", ErrInvalidConfig, r.Raw)
		}
		cfg.PowerBadgePenalty = r.Bool()
	}

	if r := root.Get("thresholds"); r.Exists() {
		if !r.IsArray() {
			return nil, fmt.Errorf("%w: thresholds must be an array", ErrInvalidConfig)
		}
		cfg.Thresholds = cfg.Thresholds[:0]
		for i, v := range r.Array() {
			if v.Type != gjson.Number {
				return nil, fmt.Errorf("%w: thresholds[%d]=%s", ErrInvalidConfig, i, v.Raw)
			}
			n, err := strconv.ParseUint(v.Raw, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: thresholds[%d]=%s", ErrInvalidConfig, i, v.Raw)
			}
			cfg.Thresholds = append(cfg.Thresholds, n)
		}
	}

	if r := root.Get("zero_supply_sell_factor"); r.Exists() {
		if cfg.ZeroSupplySellFactor, err = decimalField(r, "zero_supply_sell_factor"); err != nil {
			return nil, err
		}
	}

	if r := root.Get("settlement_decimals"); r.Exists() {
		n, err := strconv.ParseInt(r.Raw, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("%w: settlement_decimals=%s", ErrInvalidConfig, r.Raw)
		}
		cfg.SettlementDecimals = int32(n)
	}

	if r := root.Get("tiers"); r.Exists() {
		if !r.IsArray() {
			return nil, fmt.Errorf("%w: tiers must be an array", ErrInvalidConfig)
		}
		if cfg.Table, err = parseTiers(cfg.Table.Model, r.Array()); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

func parseTiers(model shared.CurveModel, items []gjson.Result) (shared.TierTable, error) {
	table := shared.TierTable{Model: model}
	for i, item := range items {
		if !item.IsObject() {
			return shared.TierTable{}, fmt.Errorf("%w: tiers[%d] must be an object", ErrInvalidConfig, i)
		}
		field := func(name string) (decimal.Decimal, error) {
			return decimalField(item.Get(name), fmt.Sprintf("tiers[%d].%s", i, name))
		}

		switch model {
		case shared.CurveModelExponential:
			start, err := field("starting_price")
			if err != nil {
				return shared.TierTable{}, err
			}
			at50, err := field("price_at_50")
			if err != nil {
				return shared.TierTable{}, err
			}
			table.Exponential = append(table.Exponential, shared.ExponentialTier{StartingPrice: start, PriceAt50: at50})
		case shared.CurveModelPowerLaw:
			base, err := field("base_price")
			if err != nil {
				return shared.TierTable{}, err
			}
			exponent, err := field("curve_exponent")
			if err != nil {
				return shared.TierTable{}, err
			}
			scale, err := field("scale_factor")
			if err != nil {
				return shared.TierTable{}, err
			}
			table.PowerLaw = append(table.PowerLaw, shared.PowerLawTier{BasePrice: base, CurveExponent: exponent, ScaleFactor: scale})
		}
	}
	return table, nil
}

// decimalField reads a JSON number or numeric string from its raw text so
// no float64 round trip happens.
func decimalField(r gjson.Result, name string) (decimal.Decimal, error) {
	var text string
	switch r.Type {
	case gjson.Number:
		text = r.Raw
	case gjson.String:
		text = r.Str
	default:
		if !r.Exists() {
			return decimal.Decimal{}, fmt.Errorf("%w: %s is missing", ErrInvalidConfig, name)
		}
		return decimal.Decimal{}, fmt.Errorf("%w: %s=%s", ErrInvalidConfig, name, r.Raw)
	}
	d, err := decimal.NewFromString(text)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: %s=%s: %v", ErrInvalidConfig, name, r.Raw, err)
	}
	return d, nil
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// FromEnv loads envFiles (or ./.env when present) and builds the config
// from TICKET_CONFIG_PATH, falling back to the defaults for
// TICKET_CURVE_MODEL. TICKET_POWER_BADGE_PENALTY overrides the document.
func FromEnv(envFiles ...string) (*Config, error) {
	if len(envFiles) > 0 {
		if err := godotenv.Load(envFiles...); err != nil {
			return nil, err
		}
	} else if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	var (
		cfg *Config
		err error
	)
	if path := os.Getenv(EnvConfigPath); path != "" {
		cfg, err = Load(path)
	} else {
		model := os.Getenv(EnvCurveModel)
		if model == "" {
			model = DefaultModel
		}
		cfg, err = Default(model)
	}
	if err != nil {
		return nil, err
	}

	if v := os.Getenv(EnvPowerBadgePenalty); v != "" {
		penalty, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %s=%q", ErrInvalidConfig, EnvPowerBadgePenalty, v)
		}
		cfg.PowerBadgePenalty = penalty
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the whole config. A failure here is fatal at startup.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if err := helpers.ValidateTierTable(c.Table); err != nil {
		return err
	}
	if c.Table.Model.String() != c.Model {
		return fmt.Errorf("%w: model %s but table is %s", ErrInvalidConfig, c.Model, c.Table.Model)
	}
	if len(c.Thresholds)+1 != c.Table.Len() {
		return fmt.Errorf("%w: %d thresholds for %d tiers", ErrTierCountMismatch, len(c.Thresholds), c.Table.Len())
	}
	if err := helpers.ValidateZeroSupplySellFactor(c.ZeroSupplySellFactor); err != nil {
		return err
	}
	return helpers.ValidateSettlementDecimals(c.SettlementDecimals)
}

// Build validates the config and wires the engine, classifier and quoter.
func (c *Config) Build() (*bonding_curve.Engine, *tier.Classifier, *quote.Quoter, error) {
	if err := c.Validate(); err != nil {
		return nil, nil, nil, err
	}
	decimals := c.SettlementDecimals
	engine, err := bonding_curve.NewEngine(shared.EngineConfig{
		Table:                c.Table,
		ZeroSupplySellFactor: c.ZeroSupplySellFactor,
		SettlementDecimals:   &decimals,
	})
	if err != nil {
		return nil, nil, nil, err
	}
	classifier, err := tier.NewClassifier(c.Thresholds, c.PowerBadgePenalty)
	if err != nil {
		return nil, nil, nil, err
	}
	quoter, err := quote.NewQuoter(engine, classifier)
	if err != nil {
		return nil, nil, nil, err
	}
	return engine, classifier, quoter, nil
}
