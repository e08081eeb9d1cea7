// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/diligence-engine/internal/ingest"
	"github.com/pdiddy/diligence-engine/internal/normalize"
	"github.com/pdiddy/diligence-engine/internal/report"
	"github.com/pdiddy/diligence-engine/pkg/types"
)

var moleculesCmd = &cobra.Command{
	Use:   "molecules",
	Short: "Fetch the feed and list molecules ranked by overall score",
	Long: `Molecules fetches the configured feed (feed.url), scores every record
and prints the ranking. Filters accept the same free-text labels as the
feed: --ta cardio and --phase "phase 3" both work.

Use --id to print the full score and market breakdown for one molecule.`,
	RunE: runMolecules,
}

func runMolecules(cmd *cobra.Command, args []string) error {
	q, err := moleculeQuery(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signalContext()
	defer stop()

	profiles, err := loadMolecules(ctx)
	if err != nil {
		return err
	}

	if id, _ := cmd.Flags().GetString("id"); id != "" {
		p, ok := ingest.Find(profiles, id)
		if !ok {
			return fmt.Errorf("molecule %q not found in feed", id)
		}
		format, _ := cmd.Flags().GetString("format")
		if format != report.FormatNameTable {
			return report.Write(format, []types.MoleculeProfile{p}, os.Stdout)
		}
		d := report.Display(p)
		fmt.Printf("%s  %s (%s)  %s  %s  overall %.1f\n\n", d.ID, d.Drug, d.Company, d.Phase, d.TherapeuticArea, d.OverallScore)
		report.FormatScores(p.Scores, os.Stdout)
		fmt.Println()
		report.FormatMarkets(p.Markets, os.Stdout)
		return nil
	}

	format, _ := cmd.Flags().GetString("format")
	return report.Write(format, q.Apply(profiles), os.Stdout)
}

// moleculeQuery builds the list filter from flags. An unrecognized --ta
// label is an error; it would otherwise select GENERAL.
func moleculeQuery(cmd *cobra.Command) (ingest.Query, error) {
	q := ingest.Query{}
	if raw, _ := cmd.Flags().GetString("ta"); raw != "" {
		ta, ok := normalize.LookupTherapeuticArea(raw)
		if !ok {
			return q, fmt.Errorf("unknown therapeutic area %q", raw)
		}
		q.Area = ta
	}
	if phase, _ := cmd.Flags().GetString("phase"); phase != "" {
		q.Phase = normalize.NormalizePhase(phase)
	}
	q.Limit, _ = cmd.Flags().GetInt("limit")
	q.ExcludeFailed, _ = cmd.Flags().GetBool("exclude-failed")
	return q, nil
}

func addMoleculeFlags(cmd *cobra.Command) {
	cmd.Flags().String("ta", "", "filter by therapeutic area")
	cmd.Flags().String("phase", "", "filter by phase")
	cmd.Flags().Int("limit", 0, "maximum molecules to list (0 = all)")
	cmd.Flags().Bool("exclude-failed", false, "hide terminated and withdrawn programs")
	cmd.Flags().String("id", "", "show the full breakdown for one molecule")
	cmd.Flags().String("format", report.FormatNameTable, "output format: table, json or yaml")
}

func init() {
	addMoleculeFlags(moleculesCmd)
	rootCmd.AddCommand(moleculesCmd)
}
