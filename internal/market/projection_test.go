// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package market

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/diligence-engine/internal/reference"
	"github.com/pdiddy/diligence-engine/pkg/types"
)

var fixedNow = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func testGenerator() *Generator {
	return NewGenerator(func() time.Time { return fixedNow })
}

func TestProject_FailedProgram(t *testing.T) {
	markets := testGenerator().Project("Drug X", types.PhaseIII, "", types.TAOncology, types.TrackTopTier, true)

	require.Len(t, markets, len(reference.Countries()))
	for _, m := range markets {
		assert.Zero(t, m.Revenue.Year1, m.Country)
		assert.Zero(t, m.Revenue.Year2, m.Country)
		assert.True(t, m.LaunchDate.IsZero(), m.Country)
		assert.Equal(t, NoAccessStrategy, m.Access.Strategy)
		assert.Zero(t, m.Access.PayerCoveragePct)
	}
}

func TestProject_CountryOrder(t *testing.T) {
	markets := testGenerator().Project("Drug X", types.PhaseII, "", types.TAImmunology, types.TrackEstablished, false)
	countries := reference.Countries()

	require.Len(t, markets, len(countries))
	for i, c := range countries {
		assert.Equal(t, c.Code, markets[i].Code)
		assert.Equal(t, c.Name, markets[i].Country)
		assert.Equal(t, c.AccessStrategy, markets[i].Access.Strategy)
		assert.False(t, markets[i].LaunchDate.Before(markets[0].LaunchDate), c.Code)
	}
}

func TestProject_Deterministic(t *testing.T) {
	g := testGenerator()
	a := g.Project("Drug X", types.PhaseII, "HER2-positive breast cancer", types.TAOncology, types.TrackEmerging, false)
	b := g.Project("Drug X", types.PhaseII, "HER2-positive breast cancer", types.TAOncology, types.TrackEmerging, false)
	assert.Equal(t, a, b)
}

func TestProject_OncologyPhaseIIILaunch(t *testing.T) {
	markets := testGenerator().Project("Drug X", types.PhaseIII, "", types.TAOncology, types.TrackTopTier, false)

	require.Equal(t, "US", markets[0].Code)
	assert.Equal(t, time.Date(2029, 7, 1, 0, 0, 0, 0, time.UTC), markets[0].LaunchDate)
	assert.Equal(t, time.Date(2029, 10, 1, 0, 0, 0, 0, time.UTC), markets[1].LaunchDate)
}

func TestProject_LaterPhaseLaunchesSoonerAndEarnsMore(t *testing.T) {
	g := testGenerator()
	var prev []types.MarketData
	for _, phase := range types.Phases {
		cur := g.Project("Drug X", phase, "", types.TACardiovascular, types.TrackEstablished, false)
		if prev != nil {
			assert.False(t, cur[0].LaunchDate.After(prev[0].LaunchDate), phase)
			assert.GreaterOrEqual(t, cur[0].Revenue.Year2, prev[0].Revenue.Year2, phase)
		}
		prev = cur
	}
}

func TestProject_TrackRecord(t *testing.T) {
	g := testGenerator()
	top := g.Project("Drug X", types.PhaseII, "", types.TANeurology, types.TrackTopTier, false)
	emerging := g.Project("Drug X", types.PhaseII, "", types.TANeurology, types.TrackEmerging, false)
	unknown := g.Project("Drug X", types.PhaseII, "", types.TANeurology, "", false)

	assert.Greater(t, top[0].Revenue.Year2, emerging[0].Revenue.Year2)
	assert.True(t, top[0].LaunchDate.Before(emerging[0].LaunchDate))
	assert.Equal(t, emerging, unknown)
}

func TestProject_RevenueRamp(t *testing.T) {
	for _, m := range testGenerator().Project("Drug X", types.PhaseII, "", types.TAOncology, types.TrackEstablished, false) {
		assert.Greater(t, m.Revenue.Year1, 0.0, m.Code)
		assert.Greater(t, m.Revenue.Year2, m.Revenue.Year1, m.Code)
	}
}

func TestSpread(t *testing.T) {
	assert.Equal(t, 1.0, spread(""))
	for _, key := range []string{"a", "Pembrolizumab", "Drug X", "NCT0001", "zzzzzzzz"} {
		v := spread(key)
		assert.GreaterOrEqual(t, v, 0.9, key)
		assert.LessOrEqual(t, v, 1.1, key)
		assert.Equal(t, v, spread(key))
	}
}

func TestNewGenerator_DefaultClock(t *testing.T) {
	g := NewGenerator(nil)
	markets := g.Project("Drug X", types.PhaseApproved, "", types.TAOncology, types.TrackTopTier, false)
	assert.WithinDuration(t, time.Now(), markets[0].LaunchDate, time.Minute)
}
