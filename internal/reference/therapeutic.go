// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package reference holds the static lookup tables behind the scoring
// pipeline: therapeutic-area base rates and benchmarks, phase multipliers,
// sponsor manufacturing tiers and tracked country markets. Every lookup
// returns a documented default for unknown keys.
package reference

import "github.com/pdiddy/diligence-engine/pkg/types"

// Transition indexes into TAProfile.Transitions.
const (
	PhaseIToII = iota
	PhaseIIToIII
	PhaseIIIToFiling
	FilingToApproval
)

// TAProfile is the reference data for one therapeutic area.
type TAProfile struct {
	Area types.TherapeuticArea

	// Transitions holds historical phase transition success rates:
	// I→II, II→III, III→filing, filing→approval.
	Transitions [4]float64

	// BenchmarkTTMYears is the typical time from first-in-human to launch.
	BenchmarkTTMYears float64

	// PeakSalesUSDM is a representative peak annual sales figure for a
	// successful asset, in USD millions.
	PeakSalesUSDM float64

	// StrategicPriority in [0, 1] reflects industry deal appetite.
	StrategicPriority float64
}

// GeneralTTMBenchmarkYears is the benchmark used for unrecognized areas.
const GeneralTTMBenchmarkYears = 10.5

var taProfiles = map[types.TherapeuticArea]TAProfile{
	types.TAOncology: {
		Area:              types.TAOncology,
		Transitions:       [4]float64{0.48, 0.25, 0.48, 0.92},
		BenchmarkTTMYears: 10.0,
		PeakSalesUSDM:     2500,
		StrategicPriority: 0.95,
	},
	types.TAHematology: {
		Area:              types.TAHematology,
		Transitions:       [4]float64{0.52, 0.37, 0.70, 0.93},
		BenchmarkTTMYears: 9.5,
		PeakSalesUSDM:     1800,
		StrategicPriority: 0.75,
	},
	types.TACardiovascular: {
		Area:              types.TACardiovascular,
		Transitions:       [4]float64{0.59, 0.24, 0.55, 0.84},
		BenchmarkTTMYears: 12.0,
		PeakSalesUSDM:     2000,
		StrategicPriority: 0.60,
	},
	types.TAMetabolic: {
		Area:              types.TAMetabolic,
		Transitions:       [4]float64{0.53, 0.29, 0.60, 0.90},
		BenchmarkTTMYears: 11.0,
		PeakSalesUSDM:     2200,
		StrategicPriority: 0.80,
	},
	types.TANeurology: {
		Area:              types.TANeurology,
		Transitions:       [4]float64{0.52, 0.27, 0.51, 0.88},
		BenchmarkTTMYears: 12.5,
		PeakSalesUSDM:     1800,
		StrategicPriority: 0.80,
	},
	types.TAPsychiatry: {
		Area:              types.TAPsychiatry,
		Transitions:       [4]float64{0.54, 0.28, 0.55, 0.88},
		BenchmarkTTMYears: 11.5,
		PeakSalesUSDM:     1200,
		StrategicPriority: 0.55,
	},
	types.TAInfectiousDisease: {
		Area:              types.TAInfectiousDisease,
		Transitions:       [4]float64{0.58, 0.35, 0.66, 0.89},
		BenchmarkTTMYears: 9.0,
		PeakSalesUSDM:     1000,
		StrategicPriority: 0.50,
	},
	types.TAImmunology: {
		Area:              types.TAImmunology,
		Transitions:       [4]float64{0.56, 0.31, 0.63, 0.90},
		BenchmarkTTMYears: 10.0,
		PeakSalesUSDM:     2400,
		StrategicPriority: 0.85,
	},
	types.TARespiratory: {
		Area:              types.TARespiratory,
		Transitions:       [4]float64{0.53, 0.28, 0.60, 0.92},
		BenchmarkTTMYears: 11.0,
		PeakSalesUSDM:     1500,
		StrategicPriority: 0.55,
	},
	types.TARareDisease: {
		Area:              types.TARareDisease,
		Transitions:       [4]float64{0.65, 0.45, 0.70, 0.94},
		BenchmarkTTMYears: 9.0,
		PeakSalesUSDM:     900,
		StrategicPriority: 0.90,
	},
	types.TAOphthalmology: {
		Area:              types.TAOphthalmology,
		Transitions:       [4]float64{0.62, 0.26, 0.56, 0.86},
		BenchmarkTTMYears: 10.0,
		PeakSalesUSDM:     1100,
		StrategicPriority: 0.60,
	},
	types.TADermatology: {
		Area:              types.TADermatology,
		Transitions:       [4]float64{0.60, 0.35, 0.70, 0.89},
		BenchmarkTTMYears: 9.0,
		PeakSalesUSDM:     900,
		StrategicPriority: 0.50,
	},
	types.TAGastroenterology: {
		Area:              types.TAGastroenterology,
		Transitions:       [4]float64{0.57, 0.30, 0.61, 0.90},
		BenchmarkTTMYears: 10.5,
		PeakSalesUSDM:     1300,
		StrategicPriority: 0.60,
	},
	types.TAGeneral: {
		Area:              types.TAGeneral,
		Transitions:       [4]float64{0.52, 0.29, 0.58, 0.91},
		BenchmarkTTMYears: GeneralTTMBenchmarkYears,
		PeakSalesUSDM:     1200,
		StrategicPriority: 0.50,
	},
}

// TA returns the reference profile for area, or the GENERAL profile when
// the key is unknown.
func TA(area types.TherapeuticArea) TAProfile {
	if p, ok := taProfiles[area]; ok {
		return p
	}
	return taProfiles[types.TAGeneral]
}

// TTMBenchmark returns the benchmark time-to-market in years for area.
func TTMBenchmark(area types.TherapeuticArea) float64 {
	return TA(area).BenchmarkTTMYears
}

// MaxPeakSalesUSDM is the largest peak-sales figure in the table, used to
// normalize market attractiveness.
func MaxPeakSalesUSDM() float64 {
	max := 0.0
	for _, p := range taProfiles {
		if p.PeakSalesUSDM > max {
			max = p.PeakSalesUSDM
		}
	}
	return max
}
