// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package reference

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/diligence-engine/pkg/types"
)

// --- therapeutic areas ---

func TestTA_EveryKeyHasProfile(t *testing.T) {
	for _, ta := range types.TherapeuticAreas {
		p := TA(ta)
		assert.Equal(t, ta, p.Area)
		for i, rate := range p.Transitions {
			assert.Greater(t, rate, 0.0, "%s transition %d", ta, i)
			assert.LessOrEqual(t, rate, 1.0, "%s transition %d", ta, i)
		}
		assert.Greater(t, p.BenchmarkTTMYears, 0.0, ta)
		assert.Greater(t, p.PeakSalesUSDM, 0.0, ta)
		assert.LessOrEqual(t, p.PeakSalesUSDM, MaxPeakSalesUSDM(), ta)
		assert.InDelta(t, 0.5, p.StrategicPriority, 0.5, ta)
	}
}

func TestTA_UnknownFallsBackToGeneral(t *testing.T) {
	assert.Equal(t, TA(types.TAGeneral), TA("VETERINARY_ONCOLOGY"))
	assert.Equal(t, GeneralTTMBenchmarkYears, TTMBenchmark("VETERINARY_ONCOLOGY"))
	assert.Equal(t, GeneralTTMBenchmarkYears, TTMBenchmark(""))
	assert.Equal(t, 10.0, TTMBenchmark(types.TAOncology))
}

func TestMaxPeakSales(t *testing.T) {
	assert.Equal(t, 2500.0, MaxPeakSalesUSDM())
}

// --- phases ---

func TestPhaseFactors_Ordered(t *testing.T) {
	for i := 1; i < len(types.Phases); i++ {
		prev, cur := types.Phases[i-1], types.Phases[i]
		assert.Less(t, PhaseMultiplier(prev), PhaseMultiplier(cur), "%s -> %s", prev, cur)
		assert.Greater(t, RemainingFraction(prev), RemainingFraction(cur), "%s -> %s", prev, cur)
	}
	assert.Equal(t, 1.0, PhaseMultiplier(types.PhaseApproved))
	assert.Zero(t, RemainingFraction(types.PhaseApproved))
}

func TestPhaseFactors_UnknownUsesDefault(t *testing.T) {
	assert.Equal(t, PhaseMultiplier(types.DefaultPhase), PhaseMultiplier("Phase V"))
	assert.Equal(t, RemainingFraction(types.DefaultPhase), RemainingFraction(""))
}

func TestModifierFor(t *testing.T) {
	tests := []struct {
		indication string
		want       string
	}{
		{"Spinal Muscular Atrophy", "orphan"},
		{"Rare pediatric epilepsy", "orphan"},
		{"HER2-positive Breast Cancer", "biomarker-selected"},
		{"KRAS G12C mutant NSCLC", "biomarker-selected"},
		{"Relapsed or Refractory Multiple Myeloma", "relapsed-refractory"},
		{"Newly Diagnosed Glioblastoma", "first-line"},
		{"Hypertension", "none"},
		{"", "none"},
	}
	for _, tt := range tests {
		t.Run(tt.indication, func(t *testing.T) {
			assert.Equal(t, tt.want, ModifierFor(tt.indication).Name)
		})
	}
}

// --- companies ---

func TestBaseCompanyName(t *testing.T) {
	tests := []struct {
		sponsor string
		want    string
	}{
		{"Pfizer/BioNTech", "Pfizer"},
		{"  Amgen  ", "Amgen"},
		{"Bristol-Myers Squibb / Ono", "Bristol-Myers Squibb"},
		{"Novo Nordisk A/S", "Novo Nordisk"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := BaseCompanyName(tt.sponsor); got != tt.want {
			t.Errorf("BaseCompanyName(%q) = %q, want %q", tt.sponsor, got, tt.want)
		}
	}
}

func TestIsTopTier(t *testing.T) {
	tests := []struct {
		sponsor string
		want    bool
	}{
		{"Pfizer", true},
		{"Genentech, Inc.", true},
		{"Janssen Research & Development, LLC", true},
		{"Johnson & Johnson", true},
		{"Bristol-Myers Squibb", true},
		{"Eli Lilly and Company", true},
		{"Hoffmann-La Roche", true},
		{"Rochester Medical Center", false},
		{"Merckx Biotech", false},
		{"Acme Therapeutics", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.sponsor, func(t *testing.T) {
			assert.Equal(t, tt.want, IsTopTier(tt.sponsor))
		})
	}
}

func TestManufacturingTier(t *testing.T) {
	tests := []struct {
		sponsor string
		tier    types.ManufacturingTier
	}{
		{"Pfizer Inc.", Tier1},
		{"Pfizer/BioNTech", Tier1},
		{"Vertex Pharmaceuticals", Tier2},
		{"Alnylam Pharmaceuticals, Inc.", Tier3},
		{"Genentech, Inc.", Tier1},
		{"Merck Sharp & Dohme LLC", Tier1},
		{"Tiny Startup Bio", Tier4},
		{"Rochester Medical Center", Tier4},
		{"", LowestTier},
	}
	for _, tt := range tests {
		t.Run(tt.sponsor, func(t *testing.T) {
			tier, index := ManufacturingTier(tt.sponsor)
			assert.Equal(t, tt.tier, tier)
			assert.Equal(t, TierIndex(tt.tier), index)
		})
	}
}

func TestTierIndex(t *testing.T) {
	assert.Equal(t, 1.0, TierIndex(Tier1))
	assert.Equal(t, 0.25, TierIndex(Tier4))
	assert.Equal(t, TierIndex(LowestTier), TierIndex(types.ManufacturingTier(9)))
	for tier := Tier1; tier < Tier4; tier++ {
		assert.Greater(t, TierIndex(tier), TierIndex(tier+1))
	}
}

func TestTierRules_CapexBeforeTopTier(t *testing.T) {
	require.Len(t, TierRules, 2)
	assert.Equal(t, "capex", TierRules[0].Name)

	// AbbVie is top-tier by name but its CAPEX listing puts it in Tier 2.
	tier, _ := ManufacturingTier("AbbVie")
	assert.Equal(t, Tier2, tier)
}

func TestTrackRecordFor(t *testing.T) {
	assert.Equal(t, types.TrackTopTier, TrackRecordFor("F. Hoffmann-La Roche Ltd"))
	assert.Equal(t, types.TrackEstablished, TrackRecordFor("Gilead Sciences"))
	assert.Equal(t, types.TrackEstablished, TrackRecordFor("Vertex Pharmaceuticals Incorporated"))
	assert.Equal(t, types.TrackEmerging, TrackRecordFor("Acme Bio"))
	assert.Equal(t, types.TrackEmerging, TrackRecordFor(""))
}

func TestCapexUSDBn(t *testing.T) {
	v, ok := CapexUSDBn("Novo Nordisk A/S")
	assert.True(t, ok)
	assert.Equal(t, 6.0, v)

	_, ok = CapexUSDBn("Unknown Co")
	assert.False(t, ok)
}

// --- countries ---

func TestCountries(t *testing.T) {
	cs := Countries()
	require.Len(t, cs, 9)
	assert.Equal(t, "US", cs[0].Code)
	assert.Zero(t, cs[0].LaunchLagMonths)

	seen := map[string]bool{}
	var share float64
	for _, c := range cs {
		assert.False(t, seen[c.Code], "duplicate %s", c.Code)
		seen[c.Code] = true
		share += c.RevenueShare
		assert.NotEmpty(t, c.AccessStrategy, c.Code)
	}
	assert.LessOrEqual(t, share, 1.0)

	cs[0].Code = "XX"
	assert.Equal(t, "US", Countries()[0].Code, "Countries returns a copy")
}
