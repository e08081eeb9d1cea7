package types

import (
	"fmt"
	"math"
	"time"
)

// HTTPConfig holds shared HTTP settings used by components that make
// network requests.
type HTTPConfig struct {
	// Timeout bounds a single shared fetch. Zero means no timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "diligence-engine/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`
}

// BreakerConfig configures the circuit breaker around the feed client.
type BreakerConfig struct {
	// ConsecutiveFailures trips the breaker open (default 5).
	ConsecutiveFailures uint32 `json:"consecutive_failures" yaml:"consecutive_failures" mapstructure:"consecutive_failures"`

	// OpenTimeout is how long the breaker stays open before probing (default 30s).
	OpenTimeout time.Duration `json:"open_timeout" yaml:"open_timeout" mapstructure:"open_timeout"`
}

// FeedConfig holds settings for the remote molecule feed.
type FeedConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// URL is the JSON endpoint returning the molecule dataset.
	URL string `json:"url" yaml:"url" mapstructure:"url"`

	// Token is an optional bearer token. Usually loaded from .secrets/feed-token.
	Token string `json:"token,omitempty" yaml:"token,omitempty" mapstructure:"token"`

	Breaker BreakerConfig `json:"breaker" yaml:"breaker" mapstructure:"breaker"`
}

// FactorWeights blends the four scoring factors. Must sum to 1.
type FactorWeights struct {
	Clinical  float64 `json:"clinical" yaml:"clinical" mapstructure:"clinical"`
	Market    float64 `json:"market" yaml:"market" mapstructure:"market"`
	Strategic float64 `json:"strategic" yaml:"strategic" mapstructure:"strategic"`
	Financial float64 `json:"financial" yaml:"financial" mapstructure:"financial"`
}

// Sum returns the total of all weights.
func (w FactorWeights) Sum() float64 {
	return w.Clinical + w.Market + w.Strategic + w.Financial
}

// CompositeWeights blends the weighted factor share, time-to-market
// progress and projected revenue into the overall score. Must sum to 1.
type CompositeWeights struct {
	Factors      float64 `json:"factors" yaml:"factors" mapstructure:"factors"`
	TimeToMarket float64 `json:"time_to_market" yaml:"time_to_market" mapstructure:"time_to_market"`
	Revenue      float64 `json:"revenue" yaml:"revenue" mapstructure:"revenue"`
}

// Sum returns the total of all weights.
func (w CompositeWeights) Sum() float64 {
	return w.Factors + w.TimeToMarket + w.Revenue
}

// ScoringConfig holds the coefficients of the scoring and aggregation
// formulas. They are business policy, not algorithm.
type ScoringConfig struct {
	Factors   FactorWeights    `json:"factors" yaml:"factors" mapstructure:"factors"`
	Composite CompositeWeights `json:"composite" yaml:"composite" mapstructure:"composite"`

	// ManufacturingWeight is the share of the composite that scales with the
	// manufacturing scale-up index, in [0, 1].
	ManufacturingWeight float64 `json:"manufacturing_weight" yaml:"manufacturing_weight" mapstructure:"manufacturing_weight"`

	// RevenueCeilingUSDM is the total year-2 revenue (USD millions) that
	// earns the full revenue share.
	RevenueCeilingUSDM float64 `json:"revenue_ceiling_usd_m" yaml:"revenue_ceiling_usd_m" mapstructure:"revenue_ceiling_usd_m"`

	// MinProbability and MaxProbability clip non-terminal probabilities (percent).
	MinProbability float64 `json:"min_probability" yaml:"min_probability" mapstructure:"min_probability"`
	MaxProbability float64 `json:"max_probability" yaml:"max_probability" mapstructure:"max_probability"`
}

// DefaultScoringConfig returns the standard coefficient set.
func DefaultScoringConfig() ScoringConfig {
	return ScoringConfig{
		Factors: FactorWeights{
			Clinical:  0.35,
			Market:    0.25,
			Strategic: 0.15,
			Financial: 0.25,
		},
		Composite: CompositeWeights{
			Factors:      0.80,
			TimeToMarket: 0.10,
			Revenue:      0.10,
		},
		ManufacturingWeight: 0.15,
		RevenueCeilingUSDM:  5000,
		MinProbability:      5,
		MaxProbability:      95,
	}
}

const weightTolerance = 0.001

// Validate checks that weights are non-negative and each blend sums to 1.
func (c ScoringConfig) Validate() error {
	for name, v := range map[string]float64{
		"factors.clinical":         c.Factors.Clinical,
		"factors.market":           c.Factors.Market,
		"factors.strategic":        c.Factors.Strategic,
		"factors.financial":        c.Factors.Financial,
		"composite.factors":        c.Composite.Factors,
		"composite.time_to_market": c.Composite.TimeToMarket,
		"composite.revenue":        c.Composite.Revenue,
		"manufacturing_weight":     c.ManufacturingWeight,
	} {
		if v < 0 {
			return fmt.Errorf("negative weight %s: %f", name, v)
		}
	}
	if math.Abs(c.Factors.Sum()-1.0) > weightTolerance {
		return fmt.Errorf("factor weights sum to %.4f, must sum to 1.0", c.Factors.Sum())
	}
	if math.Abs(c.Composite.Sum()-1.0) > weightTolerance {
		return fmt.Errorf("composite weights sum to %.4f, must sum to 1.0", c.Composite.Sum())
	}
	if c.ManufacturingWeight > 1 {
		return fmt.Errorf("manufacturing_weight %.4f exceeds 1.0", c.ManufacturingWeight)
	}
	if c.RevenueCeilingUSDM <= 0 {
		return fmt.Errorf("revenue_ceiling_usd_m must be positive, got %.2f", c.RevenueCeilingUSDM)
	}
	if c.MinProbability < 0 || c.MaxProbability > 100 || c.MinProbability > c.MaxProbability {
		return fmt.Errorf("probability bounds [%.1f, %.1f] must lie within [0, 100]", c.MinProbability, c.MaxProbability)
	}
	return nil
}

// StoreConfig holds settings for the snapshot and watchlist database.
type StoreConfig struct {
	// Path is the SQLite database file (e.g. "data/diligence.db").
	Path string `json:"path" yaml:"path" mapstructure:"path"`
}

// ServerConfig holds settings for the HTTP API.
type ServerConfig struct {
	Addr         string        `json:"addr" yaml:"addr" mapstructure:"addr"`
	ReadTimeout  time.Duration `json:"read_timeout" yaml:"read_timeout" mapstructure:"read_timeout"`
	WriteTimeout time.Duration `json:"write_timeout" yaml:"write_timeout" mapstructure:"write_timeout"`
}

// LogConfig selects the log level and formatter.
type LogConfig struct {
	Level  string `json:"level" yaml:"level" mapstructure:"level"`
	Format string `json:"format" yaml:"format" mapstructure:"format"`
}

// Config groups all settings for the diligence-engine CLI.
type Config struct {
	Feed    FeedConfig    `json:"feed" yaml:"feed" mapstructure:"feed"`
	Scoring ScoringConfig `json:"scoring" yaml:"scoring" mapstructure:"scoring"`
	Store   StoreConfig   `json:"store" yaml:"store" mapstructure:"store"`
	Server  ServerConfig  `json:"server" yaml:"server" mapstructure:"server"`
	Log     LogConfig     `json:"log" yaml:"log" mapstructure:"log"`
}
