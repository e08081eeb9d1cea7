// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/diligence-engine/internal/report"
	"github.com/pdiddy/diligence-engine/pkg/types"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score a single program without fetching the feed",
	Long: `Score runs one record through the full pipeline: normalization,
probability scoring, market projection and the overall score.

Describe the program with flags, or pass --file with a JSON record in the
feed's format ("-" reads stdin). Flags override fields from the file.`,
	RunE: runScore,
}

func runScore(cmd *cobra.Command, args []string) error {
	rec, err := scoreRecord(cmd)
	if err != nil {
		return err
	}

	pipeline, err := newPipeline()
	if err != nil {
		return err
	}
	p := pipeline.Build(rec)

	format, _ := cmd.Flags().GetString("format")
	if format != "" && format != report.FormatNameTable {
		return report.Write(format, []types.MoleculeProfile{p}, os.Stdout)
	}

	d := report.Display(p)
	fmt.Printf("%s (%s)\n", d.Drug, d.Sponsor)
	fmt.Printf("  Phase: %s  Area: %s  Track record: %s  Manufacturing tier: %d\n",
		d.Phase, d.TherapeuticArea, d.TrackRecord, d.ManufacturingTier)
	if d.Failed {
		fmt.Printf("  Status: %s (failed program)\n", d.Status)
	}
	fmt.Printf("  Overall score: %.1f  TTM progress: %.0f%%\n\n", d.OverallScore, d.TTMProgress*100)
	report.FormatScores(p.Scores, os.Stdout)
	fmt.Println()
	report.FormatMarkets(p.Markets, os.Stdout)
	return nil
}

// scoreRecord reads --file when given, then applies any field flags on top.
func scoreRecord(cmd *cobra.Command) (types.RawTrialRecord, error) {
	var rec types.RawTrialRecord

	if path, _ := cmd.Flags().GetString("file"); path != "" {
		var r io.Reader = os.Stdin
		if path != "-" {
			f, err := os.Open(path)
			if err != nil {
				return rec, fmt.Errorf("opening record file: %w", err)
			}
			defer f.Close()
			r = f
		}
		if err := json.NewDecoder(r).Decode(&rec); err != nil {
			return rec, fmt.Errorf("decoding record: %w", err)
		}
	}

	set := func(flag string, dst *string) {
		if cmd.Flags().Changed(flag) {
			*dst, _ = cmd.Flags().GetString(flag)
		}
	}
	set("id", &rec.NCTID)
	set("drug", &rec.PrimaryDrug)
	set("sponsor", &rec.Sponsor)
	set("phase", &rec.Phase)
	set("ta", &rec.TherapeuticArea)
	set("status", &rec.Status)
	set("start", &rec.StartDate)
	if cmd.Flags().Changed("conditions") {
		conditions, _ := cmd.Flags().GetString("conditions")
		rec.Conditions = nil
		for _, c := range strings.Split(conditions, ",") {
			if c = strings.TrimSpace(c); c != "" {
				rec.Conditions = append(rec.Conditions, c)
			}
		}
	}

	if rec.NCTID == "" && rec.PrimaryDrug == "" {
		return rec, fmt.Errorf("record needs at least --id or --drug")
	}
	if rec.NCTID == "" {
		rec.NCTID = "adhoc"
	}
	return rec, nil
}

func init() {
	scoreCmd.Flags().String("file", "", "JSON record in the feed format (\"-\" for stdin)")
	scoreCmd.Flags().String("id", "", "trial id (NCT number)")
	scoreCmd.Flags().String("drug", "", "primary drug name")
	scoreCmd.Flags().String("sponsor", "", "sponsor company")
	scoreCmd.Flags().String("phase", "", "raw phase label")
	scoreCmd.Flags().String("ta", "", "therapeutic area")
	scoreCmd.Flags().String("conditions", "", "comma-separated conditions; the first is the indication")
	scoreCmd.Flags().String("status", "", "trial status (TERMINATED and WITHDRAWN mark a failed program)")
	scoreCmd.Flags().String("start", "", "trial start date (YYYY-MM-DD)")
	scoreCmd.Flags().String("format", "table", "output format: table, json or yaml")

	rootCmd.AddCommand(scoreCmd)
}
