// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/diligence-engine/internal/normalize"
	"github.com/pdiddy/diligence-engine/pkg/types"
)

var normalizeCmd = &cobra.Command{
	Use:   "normalize",
	Short: "Map raw phase and therapeutic-area strings to canonical keys",
	Long: `Normalize shows how the pipeline reads free-text phase labels and
therapeutic areas. Unrecognized phases fall back to Phase II and unknown
areas to GENERAL. With --conditions, the area is inferred from the
comma-separated condition list instead.`,
	RunE: runNormalize,
}

type normalizeResult struct {
	RawPhase        string                `json:"raw_phase"`
	Phase           types.Phase           `json:"phase"`
	PhaseRule       string                `json:"phase_rule"`
	RawArea         string                `json:"raw_therapeutic_area,omitempty"`
	TherapeuticArea types.TherapeuticArea `json:"therapeutic_area"`
	Inferred        bool                  `json:"inferred,omitempty"`
}

func runNormalize(cmd *cobra.Command, args []string) error {
	rawPhase, _ := cmd.Flags().GetString("phase")
	rawArea, _ := cmd.Flags().GetString("ta")
	conditions, _ := cmd.Flags().GetString("conditions")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	phase, rule := normalize.MatchPhase(rawPhase)
	res := normalizeResult{RawPhase: rawPhase, Phase: phase, PhaseRule: rule, RawArea: rawArea}
	if strings.TrimSpace(rawArea) == "" && conditions != "" {
		res.TherapeuticArea = normalize.InferTherapeuticArea(strings.Split(conditions, ","))
		res.Inferred = true
	} else {
		res.TherapeuticArea = normalize.NormalizeTherapeuticArea(rawArea)
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}

	fmt.Printf("Phase:            %q -> %s (rule: %s)\n", rawPhase, res.Phase, res.PhaseRule)
	source := fmt.Sprintf("%q", rawArea)
	if res.Inferred {
		source = fmt.Sprintf("conditions %q", conditions)
	}
	fmt.Printf("Therapeutic area: %s -> %s\n", source, res.TherapeuticArea)
	return nil
}

func init() {
	normalizeCmd.Flags().String("phase", "", "raw phase label (e.g. \"Phase 2/3\", \"PHASE1\")")
	normalizeCmd.Flags().String("ta", "", "raw therapeutic area (e.g. \"Cardio\", \"Immunology\")")
	normalizeCmd.Flags().String("conditions", "", "comma-separated conditions to infer the area from when --ta is empty")
	normalizeCmd.Flags().Bool("json", false, "output as JSON")

	rootCmd.AddCommand(normalizeCmd)
}
