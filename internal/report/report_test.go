// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/diligence-engine/pkg/types"
)

func sampleProfiles() []types.MoleculeProfile {
	return []types.MoleculeProfile{
		{
			ID:              "NCT001",
			Drug:            "Pembrolizumab combination with a very long name",
			Company:         "Merck & Co",
			Phase:           types.PhaseIII,
			TherapeuticArea: types.TAOncology,
			OverallScore:    81.2549,
			TTMProgress:     0.45678,
			Scores: types.NewScoreSet(
				types.FactorScores{Clinical: 20.04, Market: 22.26, Strategic: 18.13, Financial: 15.55},
				types.Probabilities{PTS: 48.04, PRS: 92, PTRS: 44.1968, NextPhase: 48.04, Approval: 44.1968},
			),
			Markets: []types.MarketData{
				{Country: "United States", Code: "US", LaunchDate: time.Date(2028, 4, 1, 0, 0, 0, 0, time.UTC), Revenue: types.RevenueProjection{Year1: 120.04, Year2: 280.16}},
				{Country: "Germany", Code: "DE", Revenue: types.RevenueProjection{Year1: 18.66, Year2: 43.55}},
			},
		},
		{ID: "NCT002", Drug: "Drug B", Company: "Acme", Phase: types.PhaseI, TherapeuticArea: types.TANeurology, Failed: true},
	}
}

func TestDisplay_RoundsOnlyTheCopy(t *testing.T) {
	in := sampleProfiles()[0]
	got := Display(in)

	assert.Equal(t, 81.3, got.OverallScore)
	assert.Equal(t, 44.2, got.Scores.Probabilities.PTRS)
	assert.Equal(t, 280.2, got.Markets[0].Revenue.Year2)
	assert.InDelta(t, 0.457, got.TTMProgress, 1e-12)
	assert.Equal(t, 81.2549, in.OverallScore, "input is not modified")
	assert.Equal(t, 280.16, in.Markets[0].Revenue.Year2, "input markets are not modified")
}

func TestFormatTable(t *testing.T) {
	var buf bytes.Buffer
	FormatTable(sampleProfiles(), &buf)
	out := buf.String()

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.GreaterOrEqual(t, len(lines), 4)
	assert.Contains(t, lines[0], "Rank")
	assert.Contains(t, lines[2], "NCT001")
	assert.Contains(t, lines[2], "Pembrolizumab combina...")
	assert.Contains(t, lines[2], "81.3")
	assert.Contains(t, lines[3], "Phase I*")
	assert.Contains(t, out, "2 molecules (1 terminated or withdrawn, marked *)")
}

func TestFormatTable_Empty(t *testing.T) {
	var buf bytes.Buffer
	FormatTable(nil, &buf)
	assert.Equal(t, "No molecules found.\n", buf.String())
}

func TestFormatJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, FormatJSON(sampleProfiles(), &buf))

	var got []types.MoleculeProfile
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, 81.3, got[0].OverallScore)
	assert.Equal(t, types.PhaseIII, got[0].Phase)
	assert.True(t, got[1].Failed)
}

func TestFormatYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, FormatYAML(sampleProfiles(), &buf))

	var got []map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "NCT001", got[0]["id"])
	assert.Equal(t, "ONCOLOGY", got[0]["therapeutic_area"])
	assert.Equal(t, 81.3, got[0]["overall_score"])
}

func TestWrite(t *testing.T) {
	for _, format := range []string{"", "table", "JSON", "yaml"} {
		var buf bytes.Buffer
		assert.NoError(t, Write(format, sampleProfiles(), &buf), format)
		assert.NotEmpty(t, buf.String(), format)
	}
	assert.ErrorContains(t, Write("csv", nil, &bytes.Buffer{}), "unknown format")
}

func TestFormatScores(t *testing.T) {
	var buf bytes.Buffer
	FormatScores(sampleProfiles()[0].Scores, &buf)
	out := buf.String()

	assert.Contains(t, out, fmt.Sprintf("%-18s %6.1f / 25", "Clinical", 20.0))
	assert.Contains(t, out, fmt.Sprintf("%-18s %6.1f / 100", "Total", 76.0))
	assert.Contains(t, out, fmt.Sprintf("%-18s %6.1f%%", "PTRS", 44.2))
}

func TestFormatMarkets(t *testing.T) {
	var buf bytes.Buffer
	FormatMarkets(sampleProfiles()[0].Markets, &buf)
	out := buf.String()

	assert.Contains(t, out, "2028-04")
	assert.Contains(t, out, "280.2")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[3], " -  ", "zero launch date prints a dash")

	buf.Reset()
	FormatMarkets(nil, &buf)
	assert.Equal(t, "No market projections.\n", buf.String())
}

func TestFormatWatchlist(t *testing.T) {
	entries := []types.WatchEntry{
		{ID: "NCT002", Note: "safety signal", AddedAt: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)},
		{ID: "NCT404", AddedAt: time.Date(2026, 2, 2, 0, 0, 0, 0, time.UTC)},
	}
	var buf bytes.Buffer
	FormatWatchlist(entries, sampleProfiles(), &buf)
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")

	require.Len(t, lines, 4)
	assert.Contains(t, lines[2], "2026-02-01")
	assert.Contains(t, lines[2], "2  ")
	assert.Contains(t, lines[2], "safety signal")
	assert.Contains(t, lines[3], "NCT404")

	buf.Reset()
	FormatWatchlist(nil, nil, &buf)
	assert.Equal(t, "Watchlist is empty.\n", buf.String())
}
