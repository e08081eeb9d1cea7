// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package aggregate combines a molecule's scores, market projections,
// time-to-market progress and manufacturing capacity into one ranking score.
package aggregate

import (
	"math"
	"time"

	"github.com/pdiddy/diligence-engine/internal/reference"
	"github.com/pdiddy/diligence-engine/pkg/types"
)

const yearDuration = 365.25 * 24 * time.Hour

// Input holds everything the aggregator reads.
type Input struct {
	Scores  types.ScoreSet
	Markets []types.MarketData
	Phase   types.Phase
	Area    types.TherapeuticArea

	// Elapsed is the time since the trial started. Zero or negative
	// counts as no progress.
	Elapsed time.Duration

	// ManufacturingIndex is the sponsor's scale-up index in [0, 1].
	ManufacturingIndex float64
}

// Aggregator computes the overall score. The result is non-decreasing in
// every factor, in projected revenue, in elapsed time and in the
// manufacturing index.
type Aggregator struct {
	cfg types.ScoringConfig
}

// NewAggregator returns an Aggregator using cfg's weights. cfg should have
// passed Validate; negative weights break monotonicity.
func NewAggregator(cfg types.ScoringConfig) *Aggregator {
	return &Aggregator{cfg: cfg}
}

// Aggregate returns the overall score in [0, 100].
func (a *Aggregator) Aggregate(in Input) float64 {
	w := a.cfg.Factors
	f := in.Scores.Factors
	factorShare := (w.Clinical*f.Clinical + w.Market*f.Market +
		w.Strategic*f.Strategic + w.Financial*f.Financial) / types.MaxFactorScore

	var year2 float64
	for _, m := range in.Markets {
		year2 += m.Revenue.Year2
	}
	revenueShare := math.Min(1, math.Max(0, year2)/a.cfg.RevenueCeilingUSDM)

	c := a.cfg.Composite
	base := c.Factors*factorShare + c.TimeToMarket*TTMProgress(in.Phase, in.Area, in.Elapsed) + c.Revenue*revenueShare

	mw := a.cfg.ManufacturingWeight
	mfg := 1 - mw + mw*types.Clamp(in.ManufacturingIndex, 0, 1)

	return types.Clamp(100*base*mfg, 0, 100)
}

// TTMProgress is elapsed time as a fraction of the therapeutic area's
// benchmark time-to-market, capped at 1. Approved products are at 1.
func TTMProgress(phase types.Phase, area types.TherapeuticArea, elapsed time.Duration) float64 {
	if phase == types.PhaseApproved {
		return 1
	}
	if elapsed <= 0 {
		return 0
	}
	years := float64(elapsed) / float64(yearDuration)
	return math.Min(1, years/reference.TTMBenchmark(area))
}
