// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package scoring computes probability-of-success metrics and the four
// weighted scoring factors for a normalized molecule.
package scoring

import (
	"math"

	"github.com/pdiddy/diligence-engine/internal/reference"
	"github.com/pdiddy/diligence-engine/pkg/types"
)

// financialCeilingUSDM is the risk-adjusted peak sales that earns the full
// financial factor.
const financialCeilingUSDM = 1000.0

// Engine scores molecules against the reference tables. It is stateless and
// safe for concurrent use.
type Engine struct {
	cfg types.ScoringConfig
}

// NewEngine returns an Engine using cfg's probability bounds.
func NewEngine(cfg types.ScoringConfig) *Engine {
	return &Engine{cfg: cfg}
}

// Score returns the ScoreSet for a molecule. A failed program scores zero
// on every forward-looking metric regardless of its other inputs.
func (e *Engine) Score(phase types.Phase, indication string, ta types.TherapeuticArea, failed bool) types.ScoreSet {
	profile := reference.TA(ta)
	mod := reference.ModifierFor(indication)
	probs := e.probabilities(phase, profile, mod, failed)

	phaseMult := reference.PhaseMultiplier(phase)
	if failed {
		phaseMult = 0
	}
	ptrs := probs.PTRS / 100

	factors := types.FactorScores{
		Clinical:  types.MaxFactorScore * (0.5*phaseMult + 0.5*ptrs),
		Market:    types.MaxFactorScore * math.Min(1, profile.PeakSalesUSDM*mod.Commercial/reference.MaxPeakSalesUSDM()),
		Strategic: types.MaxFactorScore * (0.6*profile.StrategicPriority + 0.4*phaseMult),
		Financial: types.MaxFactorScore * math.Min(1, profile.PeakSalesUSDM*mod.Commercial*ptrs/financialCeilingUSDM),
	}
	return types.NewScoreSet(factors, probs)
}

// Probabilities returns only the probability metrics.
func (e *Engine) Probabilities(phase types.Phase, indication string, ta types.TherapeuticArea, failed bool) types.Probabilities {
	return e.probabilities(phase, reference.TA(ta), reference.ModifierFor(indication), failed)
}

func (e *Engine) probabilities(phase types.Phase, profile reference.TAProfile, mod reference.IndicationModifier, failed bool) types.Probabilities {
	if failed {
		return types.Probabilities{}
	}
	if phase == types.PhaseApproved {
		return types.Probabilities{PTS: 100, PRS: 100, PTRS: 100, NextPhase: 100, Approval: 100}
	}

	t := profile.Transitions
	pts := math.Min(1, technicalPath(phase, t)*mod.Technical)
	next := math.Min(1, clearCurrent(phase, t)*mod.Technical)
	prs := t[reference.FilingToApproval]
	ptrs := pts * prs

	return types.Probabilities{
		PTS:       e.bound(pts * 100),
		PRS:       e.bound(prs * 100),
		PTRS:      e.bound(ptrs * 100),
		NextPhase: e.bound(next * 100),
		Approval:  e.bound(ptrs * 100),
	}
}

func (e *Engine) bound(pct float64) float64 {
	return types.Clamp(pct, e.cfg.MinProbability, e.cfg.MaxProbability)
}

// technicalPath is the probability of clearing every remaining clinical
// phase through filing. A combined phase counts its earlier transition as
// half complete, hence the square root.
func technicalPath(phase types.Phase, t [4]float64) float64 {
	i2, i3, f := t[reference.PhaseIToII], t[reference.PhaseIIToIII], t[reference.PhaseIIIToFiling]
	switch phase {
	case types.PhaseI:
		return i2 * i3 * f
	case types.PhaseIToII:
		return math.Sqrt(i2) * i3 * f
	case types.PhaseII:
		return i3 * f
	case types.PhaseIIToIII:
		return math.Sqrt(i3) * f
	case types.PhaseIII:
		return f
	case types.PhaseNDABLA:
		return 1
	default:
		return i3 * f
	}
}

// clearCurrent is the probability of clearing the current phase.
func clearCurrent(phase types.Phase, t [4]float64) float64 {
	switch phase {
	case types.PhaseI:
		return t[reference.PhaseIToII]
	case types.PhaseIToII:
		return math.Sqrt(t[reference.PhaseIToII] * t[reference.PhaseIIToIII])
	case types.PhaseII:
		return t[reference.PhaseIIToIII]
	case types.PhaseIIToIII:
		return math.Sqrt(t[reference.PhaseIIToIII] * t[reference.PhaseIIIToFiling])
	case types.PhaseIII:
		return t[reference.PhaseIIIToFiling]
	case types.PhaseNDABLA:
		return t[reference.FilingToApproval]
	default:
		return t[reference.PhaseIIToIII]
	}
}
