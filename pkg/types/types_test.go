// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewScoreSet_ClampsAndTotals(t *testing.T) {
	s := NewScoreSet(FactorScores{Clinical: 30, Market: -2, Strategic: 12.5, Financial: 7.25}, Probabilities{PTS: 40})

	assert.Equal(t, FactorScores{Clinical: 25, Market: 0, Strategic: 12.5, Financial: 7.25}, s.Factors)
	assert.Equal(t, 44.75, s.Total)
	assert.Equal(t, 40.0, s.Probabilities.PTS)
}

func TestScoreSet_Rounded(t *testing.T) {
	s := NewScoreSet(FactorScores{Clinical: 10.04, Market: 10.04, Strategic: 10.04, Financial: 0}, Probabilities{PTRS: 44.16, NextPhase: 47.96})
	r := s.Rounded()

	assert.Equal(t, 10.0, r.Factors.Clinical)
	assert.Equal(t, 30.1, r.Total)
	assert.Equal(t, 44.2, r.Probabilities.PTRS)
	assert.Equal(t, 48.0, r.Probabilities.NextPhase)
	assert.InDelta(t, 30.12, s.Total, 1e-9)
}

func TestMoleculeProfile_TotalRevenue(t *testing.T) {
	p := MoleculeProfile{Markets: []MarketData{
		{Revenue: RevenueProjection{Year1: 10, Year2: 20}},
		{Revenue: RevenueProjection{Year1: 1.5, Year2: 3}},
	}}
	assert.Equal(t, RevenueProjection{Year1: 11.5, Year2: 23}, p.TotalRevenue())
	assert.Equal(t, RevenueProjection{}, MoleculeProfile{}.TotalRevenue())
}

func TestScoringConfig_Validate(t *testing.T) {
	require.NoError(t, DefaultScoringConfig().Validate())

	tests := []struct {
		name   string
		modify func(*ScoringConfig)
		errMsg string
	}{
		{"negative weight", func(c *ScoringConfig) { c.Factors.Market = -0.25; c.Factors.Clinical = 0.85 }, "negative weight factors.market"},
		{"factors sum", func(c *ScoringConfig) { c.Factors.Clinical = 0.5 }, "factor weights sum to"},
		{"composite sum", func(c *ScoringConfig) { c.Composite.Revenue = 0.5 }, "composite weights sum to"},
		{"manufacturing weight", func(c *ScoringConfig) { c.ManufacturingWeight = 1.5 }, "manufacturing_weight"},
		{"revenue ceiling", func(c *ScoringConfig) { c.RevenueCeilingUSDM = 0 }, "revenue_ceiling_usd_m"},
		{"probability bounds", func(c *ScoringConfig) { c.MinProbability = 60; c.MaxProbability = 40 }, "probability bounds"},
		{"probability over 100", func(c *ScoringConfig) { c.MaxProbability = 120 }, "probability bounds"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultScoringConfig()
			tt.modify(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestPhase_Valid(t *testing.T) {
	for _, p := range Phases {
		assert.True(t, p.Valid(), p)
	}
	assert.False(t, Phase("Phase IV").Valid())
	assert.False(t, Phase("").Valid())
}

func TestStringList_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  StringList
	}{
		{"array", `["Asthma", "COPD"]`, StringList{"Asthma", "COPD"}},
		{"comma string", `"Asthma, COPD ,"`, StringList{"Asthma", "COPD"}},
		{"single string", `"Asthma"`, StringList{"Asthma"}},
		{"null", `null`, nil},
		{"number", `42`, nil},
		{"object", `{"a": 1}`, nil},
		{"mixed array", `["Asthma", 2, null]`, StringList{"Asthma", "2"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var l StringList
			require.NoError(t, json.Unmarshal([]byte(tt.input), &l))
			assert.Equal(t, tt.want, l)
		})
	}
}

func TestRawTrialRecord(t *testing.T) {
	assert.True(t, RawTrialRecord{Status: "terminated"}.IsFailed())
	assert.True(t, RawTrialRecord{Status: " WITHDRAWN "}.IsFailed())
	assert.False(t, RawTrialRecord{Status: "RECRUITING"}.IsFailed())
	assert.False(t, RawTrialRecord{}.IsFailed())

	assert.Equal(t, "Asthma", RawTrialRecord{Conditions: StringList{" ", "Asthma"}}.Indication())
	assert.Equal(t, "", RawTrialRecord{}.Indication())
}

func TestRawTrialRecord_UnmarshalJSON_Lenient(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  RawTrialRecord
	}{
		{
			name:  "array phase",
			input: `{"nct_id": "NCT1", "phase": ["PHASE2", "PHASE3"], "conditions": "Asthma"}`,
			want:  RawTrialRecord{NCTID: "NCT1", Phase: "PHASE2/PHASE3", Conditions: StringList{"Asthma"}},
		},
		{
			name:  "numeric id",
			input: `{"nct_id": 4021, "phase": "Phase 1"}`,
			want:  RawTrialRecord{NCTID: "4021", Phase: "Phase 1"},
		},
		{
			name:  "odd shapes become empty",
			input: `{"nct_id": "NCT2", "sponsor": {"name": "Acme"}, "status": true, "start_date": null}`,
			want:  RawTrialRecord{NCTID: "NCT2"},
		},
		{
			name:  "plain record",
			input: `{"nct_id": "NCT3", "primary_drug": "X-1", "interventions": ["X-1", "placebo"], "primary_outcome": "OS"}`,
			want:  RawTrialRecord{NCTID: "NCT3", PrimaryDrug: "X-1", Interventions: StringList{"X-1", "placebo"}, PrimaryOutcome: "OS"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var rec RawTrialRecord
			require.NoError(t, json.Unmarshal([]byte(tt.input), &rec))
			assert.Equal(t, tt.want, rec)
		})
	}
}

func TestRawTrialRecord_Started(t *testing.T) {
	tests := []struct {
		input string
		want  time.Time
	}{
		{"2021-03-15", time.Date(2021, 3, 15, 0, 0, 0, 0, time.UTC)},
		{"2021-03", time.Date(2021, 3, 1, 0, 0, 0, 0, time.UTC)},
		{"March 15, 2021", time.Date(2021, 3, 15, 0, 0, 0, 0, time.UTC)},
		{"March 2021", time.Date(2021, 3, 1, 0, 0, 0, 0, time.UTC)},
		{"", time.Time{}},
		{"soon", time.Time{}},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := RawTrialRecord{StartDate: tt.input}.Started()
			assert.True(t, tt.want.Equal(got), "got %v", got)
		})
	}
}
