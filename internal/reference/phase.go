// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package reference

import (
	"strings"

	"github.com/pdiddy/diligence-engine/pkg/types"
)

type phaseFactors struct {
	multiplier float64
	remaining  float64
}

var phaseTable = map[types.Phase]phaseFactors{
	types.PhaseI:        {multiplier: 0.40, remaining: 0.85},
	types.PhaseIToII:    {multiplier: 0.50, remaining: 0.75},
	types.PhaseII:       {multiplier: 0.60, remaining: 0.65},
	types.PhaseIIToIII:  {multiplier: 0.75, remaining: 0.50},
	types.PhaseIII:      {multiplier: 0.85, remaining: 0.35},
	types.PhaseNDABLA:   {multiplier: 0.95, remaining: 0.10},
	types.PhaseApproved: {multiplier: 1.00, remaining: 0},
}

// PhaseMultiplier scales value by development maturity, in (0, 1].
// Unknown phases use the default phase's multiplier.
func PhaseMultiplier(p types.Phase) float64 {
	return lookupPhase(p).multiplier
}

// RemainingFraction is the share of the benchmark time-to-market still
// ahead of a program in phase p.
func RemainingFraction(p types.Phase) float64 {
	return lookupPhase(p).remaining
}

func lookupPhase(p types.Phase) phaseFactors {
	if f, ok := phaseTable[p]; ok {
		return f
	}
	return phaseTable[types.DefaultPhase]
}

// IndicationModifier adjusts technical and commercial expectations for an
// indication.
type IndicationModifier struct {
	Name       string
	Keywords   []string
	Technical  float64
	Commercial float64
}

// NeutralModifier applies when no indication rule matches.
var NeutralModifier = IndicationModifier{Name: "none", Technical: 1, Commercial: 1}

// IndicationModifiers is an ordered rule table; the first match wins.
// Orphan programs clear development more often but address smaller
// populations; relapsed/refractory settings are the reverse.
var IndicationModifiers = []IndicationModifier{
	{Name: "orphan", Keywords: []string{"orphan", "rare", "duchenne", "spinal muscular atrophy", "fabry", "gaucher", "pompe"}, Technical: 1.15, Commercial: 0.70},
	{Name: "biomarker-selected", Keywords: []string{"biomarker", "mutation", "mutant", "her2", "egfr", "brca", "kras", "positive"}, Technical: 1.10, Commercial: 0.90},
	{Name: "relapsed-refractory", Keywords: []string{"relapsed", "refractory", "resistant", "second-line", "third-line"}, Technical: 0.85, Commercial: 0.85},
	{Name: "first-line", Keywords: []string{"first-line", "newly diagnosed", "treatment-naive", "treatment naive"}, Technical: 1.0, Commercial: 1.15},
}

// ModifierFor returns the first indication rule whose keyword appears in
// indication, or NeutralModifier.
func ModifierFor(indication string) IndicationModifier {
	s := strings.ToLower(indication)
	if strings.TrimSpace(s) == "" {
		return NeutralModifier
	}
	for _, m := range IndicationModifiers {
		for _, kw := range m.Keywords {
			if strings.Contains(s, kw) {
				return m
			}
		}
	}
	return NeutralModifier
}
