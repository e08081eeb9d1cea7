// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package market projects per-country launch dates and early revenue for a
// molecule. Projections are synthetic: they derive from phase, therapeutic
// area, indication and sponsor track record, never from fetched data.
package market

import (
	"hash/fnv"
	"time"

	"github.com/pdiddy/diligence-engine/internal/reference"
	"github.com/pdiddy/diligence-engine/pkg/types"
)

// Revenue ramp as a share of country peak sales in the first two years.
const (
	rampYear1 = 0.15
	rampYear2 = 0.35
)

// NoAccessStrategy labels markets for failed programs.
const NoAccessStrategy = "None"

type trackAdjustment struct {
	delayYears float64
	revenue    float64
}

var trackAdjustments = map[types.TrackRecord]trackAdjustment{
	types.TrackTopTier:     {delayYears: 0, revenue: 1.2},
	types.TrackEstablished: {delayYears: 0.25, revenue: 1.0},
	types.TrackEmerging:    {delayYears: 0.75, revenue: 0.8},
}

// Generator produces market projections relative to a clock.
type Generator struct {
	now func() time.Time
}

// NewGenerator returns a Generator that dates launches from now(). A nil
// now uses time.Now.
func NewGenerator(now func() time.Time) *Generator {
	if now == nil {
		now = time.Now
	}
	return &Generator{now: now}
}

// Project returns one MarketData entry per tracked country, in
// reference.Countries order. A failed program projects zero revenue, zero
// access and no launch date in every market.
func (g *Generator) Project(drugKey string, phase types.Phase, indication string, ta types.TherapeuticArea, track types.TrackRecord, failed bool) []types.MarketData {
	countries := reference.Countries()
	out := make([]types.MarketData, 0, len(countries))

	if failed {
		for _, c := range countries {
			out = append(out, types.MarketData{
				Country: c.Name,
				Code:    c.Code,
				Access:  types.MarketAccess{Strategy: NoAccessStrategy},
			})
		}
		return out
	}

	adj, ok := trackAdjustments[track]
	if !ok {
		adj = trackAdjustments[types.TrackEmerging]
	}
	profile := reference.TA(ta)
	mod := reference.ModifierFor(indication)

	yearsToLaunch := profile.BenchmarkTTMYears*reference.RemainingFraction(phase) + adj.delayYears
	firstLaunch := g.now().AddDate(0, int(yearsToLaunch*12+0.5), 0)

	peak := profile.PeakSalesUSDM * reference.PhaseMultiplier(phase) * adj.revenue * mod.Commercial * spread(drugKey)

	for _, c := range countries {
		countryPeak := peak * c.RevenueShare
		out = append(out, types.MarketData{
			Country:    c.Name,
			Code:       c.Code,
			LaunchDate: firstLaunch.AddDate(0, c.LaunchLagMonths, 0),
			Revenue: types.RevenueProjection{
				Year1: countryPeak * rampYear1,
				Year2: countryPeak * rampYear2,
			},
			Access: types.MarketAccess{
				PayerCoveragePct: c.PayerCoveragePct,
				PriceIndexPct:    c.PriceIndexPct,
				Strategy:         c.AccessStrategy,
			},
		})
	}
	return out
}

// spread maps drugKey deterministically onto [0.9, 1.1] so molecules with
// identical inputs do not project identical revenue.
func spread(drugKey string) float64 {
	if drugKey == "" {
		return 1
	}
	h := fnv.New32a()
	h.Write([]byte(drugKey))
	return 0.9 + 0.2*float64(h.Sum32()%1001)/1000
}
