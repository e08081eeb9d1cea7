// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/diligence-engine/pkg/types"
)

var weightsCmd = &cobra.Command{
	Use:   "weights",
	Short: "Print the scoring weights in effect",
	Long: `Weights prints the scoring section of the configuration as YAML after
defaults, the config file and environment overrides are applied. The
output can be pasted under "scoring:" in diligence-engine.yaml.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := appConfig.Scoring
		if defaults, _ := cmd.Flags().GetBool("defaults"); defaults {
			cfg = types.DefaultScoringConfig()
		}

		enc := yaml.NewEncoder(os.Stdout)
		enc.SetIndent(2)
		if err := enc.Encode(cfg); err != nil {
			return fmt.Errorf("encoding weights: %w", err)
		}
		if err := enc.Close(); err != nil {
			return err
		}

		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid scoring config: %w", err)
		}
		return nil
	},
}

func init() {
	weightsCmd.Flags().Bool("defaults", false, "print the built-in defaults instead of the effective config")

	rootCmd.AddCommand(weightsCmd)
}
