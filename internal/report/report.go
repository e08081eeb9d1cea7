// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report renders molecule profiles, score sets and watchlists as
// text tables, JSON or YAML. Values are rounded to one decimal here and
// nowhere earlier.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/diligence-engine/pkg/types"
)

// Output formats accepted by Write.
const (
	FormatNameTable = "table"
	FormatNameJSON  = "json"
	FormatNameYAML  = "yaml"
)

// Display returns a copy of p with every score, probability, progress and
// revenue figure rounded to one decimal.
func Display(p types.MoleculeProfile) types.MoleculeProfile {
	p.Scores = p.Scores.Rounded()
	p.OverallScore = types.Round1(p.OverallScore)
	p.TTMProgress = types.Round1(p.TTMProgress*100) / 100
	p.ManufacturingIndex = types.Round1(p.ManufacturingIndex*100) / 100

	markets := make([]types.MarketData, len(p.Markets))
	for i, m := range p.Markets {
		m.Revenue.Year1 = types.Round1(m.Revenue.Year1)
		m.Revenue.Year2 = types.Round1(m.Revenue.Year2)
		markets[i] = m
	}
	p.Markets = markets
	return p
}

func displayAll(profiles []types.MoleculeProfile) []types.MoleculeProfile {
	out := make([]types.MoleculeProfile, len(profiles))
	for i, p := range profiles {
		out[i] = Display(p)
	}
	return out
}

// Write renders profiles in the named format.
func Write(format string, profiles []types.MoleculeProfile, w io.Writer) error {
	switch strings.ToLower(format) {
	case "", FormatNameTable:
		FormatTable(profiles, w)
		return nil
	case FormatNameJSON:
		return FormatJSON(profiles, w)
	case FormatNameYAML:
		return FormatYAML(profiles, w)
	default:
		return fmt.Errorf("unknown format %q (want table, json or yaml)", format)
	}
}

// FormatTable writes ranked profiles as a human-readable table.
func FormatTable(profiles []types.MoleculeProfile, w io.Writer) {
	if len(profiles) == 0 {
		fmt.Fprintln(w, "No molecules found.")
		return
	}

	fmt.Fprintf(w, "%-4s  %-12s  %-24s  %-20s  %-12s  %-18s  %6s  %6s  %7s  %s\n",
		"Rank", "ID", "Drug", "Company", "Phase", "Area", "PTRS", "Total", "Overall", "Y2 Rev $M")
	fmt.Fprintln(w, strings.Repeat("-", 140))

	var failed int
	for i, p := range profiles {
		d := Display(p)
		phase := string(d.Phase)
		if d.Failed {
			phase += "*"
			failed++
		}
		fmt.Fprintf(w, "%-4d  %-12s  %-24s  %-20s  %-12s  %-18s  %6.1f  %6.1f  %7.1f  %.1f\n",
			i+1, truncate(d.ID, 12), truncate(d.Drug, 24), truncate(d.Company, 20), phase,
			string(d.TherapeuticArea), d.Scores.Probabilities.PTRS, d.Scores.Total,
			d.OverallScore, types.Round1(p.TotalRevenue().Year2))
	}

	fmt.Fprintf(w, "\n%d molecules", len(profiles))
	if failed > 0 {
		fmt.Fprintf(w, " (%d terminated or withdrawn, marked *)", failed)
	}
	fmt.Fprintln(w)
}

// FormatJSON writes profiles as indented JSON.
func FormatJSON(profiles []types.MoleculeProfile, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(displayAll(profiles))
}

// FormatYAML writes profiles as YAML.
func FormatYAML(profiles []types.MoleculeProfile, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(displayAll(profiles)); err != nil {
		return fmt.Errorf("encoding YAML: %w", err)
	}
	return enc.Close()
}

// FormatScores writes one score set as a two-column breakdown.
func FormatScores(s types.ScoreSet, w io.Writer) {
	r := s.Rounded()
	rows := []struct {
		label string
		value float64
		max   float64
	}{
		{"Clinical", r.Factors.Clinical, types.MaxFactorScore},
		{"Market", r.Factors.Market, types.MaxFactorScore},
		{"Strategic", r.Factors.Strategic, types.MaxFactorScore},
		{"Financial", r.Factors.Financial, types.MaxFactorScore},
		{"Total", r.Total, 4 * types.MaxFactorScore},
	}
	for _, row := range rows {
		fmt.Fprintf(w, "%-18s %6.1f / %.0f\n", row.label, row.value, row.max)
	}
	fmt.Fprintln(w)

	probs := []struct {
		label string
		value float64
	}{
		{"PTS", r.Probabilities.PTS},
		{"PRS", r.Probabilities.PRS},
		{"PTRS", r.Probabilities.PTRS},
		{"Next phase", r.Probabilities.NextPhase},
		{"Approval", r.Probabilities.Approval},
	}
	for _, p := range probs {
		fmt.Fprintf(w, "%-18s %6.1f%%\n", p.label, p.value)
	}
}

// FormatMarkets writes per-country projections.
func FormatMarkets(markets []types.MarketData, w io.Writer) {
	if len(markets) == 0 {
		fmt.Fprintln(w, "No market projections.")
		return
	}
	fmt.Fprintf(w, "%-16s  %-4s  %-10s  %9s  %9s  %7s  %7s  %s\n",
		"Country", "Code", "Launch", "Y1 $M", "Y2 $M", "Payer%", "Price%", "Strategy")
	fmt.Fprintln(w, strings.Repeat("-", 110))
	for _, m := range markets {
		launch := "-"
		if !m.LaunchDate.IsZero() {
			launch = m.LaunchDate.Format("2006-01")
		}
		fmt.Fprintf(w, "%-16s  %-4s  %-10s  %9.1f  %9.1f  %7.0f  %7.0f  %s\n",
			truncate(m.Country, 16), m.Code, launch,
			types.Round1(m.Revenue.Year1), types.Round1(m.Revenue.Year2),
			m.Access.PayerCoveragePct, m.Access.PriceIndexPct, m.Access.Strategy)
	}
}

// FormatWatchlist writes watched ids alongside their current rank and
// overall score when they appear in profiles.
func FormatWatchlist(entries []types.WatchEntry, profiles []types.MoleculeProfile, w io.Writer) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "Watchlist is empty.")
		return
	}
	rank := make(map[string]int, len(profiles))
	for i, p := range profiles {
		rank[p.ID] = i
	}

	fmt.Fprintf(w, "%-12s  %-10s  %-4s  %7s  %s\n", "ID", "Added", "Rank", "Overall", "Note")
	fmt.Fprintln(w, strings.Repeat("-", 70))
	for _, e := range entries {
		rankCol, scoreCol := "-", "-"
		if i, ok := rank[e.ID]; ok {
			rankCol = fmt.Sprintf("%d", i+1)
			scoreCol = fmt.Sprintf("%.1f", types.Round1(profiles[i].OverallScore))
		}
		fmt.Fprintf(w, "%-12s  %-10s  %-4s  %7s  %s\n",
			truncate(e.ID, 12), e.AddedAt.Format("2006-01-02"), rankCol, scoreCol, e.Note)
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
