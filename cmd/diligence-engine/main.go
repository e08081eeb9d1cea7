// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the diligence-engine CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/diligence-engine/internal/api"
	"github.com/pdiddy/diligence-engine/internal/ingest"
	"github.com/pdiddy/diligence-engine/internal/logging"
	"github.com/pdiddy/diligence-engine/internal/secrets"
	"github.com/pdiddy/diligence-engine/internal/store"
	"github.com/pdiddy/diligence-engine/pkg/types"
)

// appConfig is decoded from viper before any subcommand runs.
var appConfig types.Config

// logger is built from appConfig.Log. Diagnostics go to stderr; command
// output goes to stdout.
var logger = logging.Discard()

// rootCmd is the base command for the diligence-engine CLI.
var rootCmd = &cobra.Command{
	Use:   "diligence-engine",
	Short: "Score and rank clinical-stage molecules for pharma due diligence",
	Long: `diligence-engine fetches a molecule/trial feed, normalizes phases and
therapeutic areas, and scores each program for probability of success,
market potential and overall attractiveness.

Use molecules to rank the live feed, score to evaluate a single program,
snapshot to persist rankings over time, watchlist to track molecules of
interest, and serve to expose everything over HTTP.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		log, err := logging.New(cfg.Log.Level, cfg.Log.Format, os.Stderr)
		if err != nil {
			return err
		}
		logger = log

		s, err := secrets.Load(secrets.DefaultDir, logger)
		if err != nil {
			return err
		}
		if secrets.ApplyFeed(s, &cfg.Feed) {
			logger.WithField("secret", secrets.FeedTokenKey).Debug("loaded feed token")
		}
		appConfig = cfg
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./diligence-engine.yaml or ~/.config/diligence-engine/diligence-engine.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("diligence-engine")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "diligence-engine"))
		}
	}

	setDefaults()
	viper.SetEnvPrefix("DILIGENCE_ENGINE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// setDefaults registers every key so environment overrides resolve even
// without a config file.
func setDefaults() {
	sc := types.DefaultScoringConfig()

	viper.SetDefault("feed.url", "")
	viper.SetDefault("feed.token", "")
	viper.SetDefault("feed.timeout", "30s")
	viper.SetDefault("feed.user_agent", "diligence-engine/"+version)
	viper.SetDefault("feed.breaker.consecutive_failures", ingest.DefaultConsecutiveFailures)
	viper.SetDefault("feed.breaker.open_timeout", ingest.DefaultOpenTimeout.String())

	viper.SetDefault("scoring.factors.clinical", sc.Factors.Clinical)
	viper.SetDefault("scoring.factors.market", sc.Factors.Market)
	viper.SetDefault("scoring.factors.strategic", sc.Factors.Strategic)
	viper.SetDefault("scoring.factors.financial", sc.Factors.Financial)
	viper.SetDefault("scoring.composite.factors", sc.Composite.Factors)
	viper.SetDefault("scoring.composite.time_to_market", sc.Composite.TimeToMarket)
	viper.SetDefault("scoring.composite.revenue", sc.Composite.Revenue)
	viper.SetDefault("scoring.manufacturing_weight", sc.ManufacturingWeight)
	viper.SetDefault("scoring.revenue_ceiling_usd_m", sc.RevenueCeilingUSDM)
	viper.SetDefault("scoring.min_probability", sc.MinProbability)
	viper.SetDefault("scoring.max_probability", sc.MaxProbability)

	viper.SetDefault("store.path", store.DefaultPath)

	viper.SetDefault("server.addr", api.DefaultAddr)
	viper.SetDefault("server.read_timeout", "15s")
	viper.SetDefault("server.write_timeout", "30s")

	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", logging.FormatText)
}

func loadConfig() (types.Config, error) {
	var cfg types.Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return types.Config{}, fmt.Errorf("decoding config: %w", err)
	}
	return cfg, nil
}

// newPipeline builds the scoring pipeline from the configured weights.
func newPipeline() (*ingest.Pipeline, error) {
	p, err := ingest.NewPipeline(appConfig.Scoring, nil)
	if err != nil {
		return nil, err
	}
	p.SetLogger(logger)
	return p, nil
}

// newCache wires the feed client, pipeline and single-flight cache.
func newCache() (*ingest.Cache, *ingest.Pipeline, error) {
	pipeline, err := newPipeline()
	if err != nil {
		return nil, nil, err
	}
	client := ingest.NewFeedClient(appConfig.Feed, logger)
	return ingest.NewCache(client, pipeline, appConfig.Feed.Timeout, logger), pipeline, nil
}

// loadMolecules fetches and ranks the live feed once.
func loadMolecules(ctx context.Context) ([]types.MoleculeProfile, error) {
	cache, _, err := newCache()
	if err != nil {
		return nil, err
	}
	return cache.Get(ctx)
}

func openStore() (*store.Store, error) {
	return store.NewStore(appConfig.Store)
}

// signalContext is cancelled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
