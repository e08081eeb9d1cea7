// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ingest

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/pdiddy/diligence-engine/internal/aggregate"
	"github.com/pdiddy/diligence-engine/internal/logging"
	"github.com/pdiddy/diligence-engine/internal/market"
	"github.com/pdiddy/diligence-engine/internal/normalize"
	"github.com/pdiddy/diligence-engine/internal/reference"
	"github.com/pdiddy/diligence-engine/internal/scoring"
	"github.com/pdiddy/diligence-engine/pkg/types"
)

// Pipeline turns raw feed records into scored molecule profiles.
type Pipeline struct {
	now        func() time.Time
	engine     *scoring.Engine
	markets    *market.Generator
	aggregator *aggregate.Aggregator
	log        *logrus.Logger
}

// NewPipeline validates cfg and returns a Pipeline dated from now(). A nil
// now uses time.Now.
func NewPipeline(cfg types.ScoringConfig, now func() time.Time) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scoring config: %w", err)
	}
	if now == nil {
		now = time.Now
	}
	return &Pipeline{
		now:        now,
		engine:     scoring.NewEngine(cfg),
		markets:    market.NewGenerator(now),
		aggregator: aggregate.NewAggregator(cfg),
		log:        logging.Discard(),
	}, nil
}

// SetLogger sets where BuildAll reports renamed records. A nil log
// discards them.
func (p *Pipeline) SetLogger(log *logrus.Logger) {
	if log == nil {
		log = logging.Discard()
	}
	p.log = log
}

// Build scores one record. The therapeutic area comes from the record's
// label, or from its conditions when the label is empty.
func (p *Pipeline) Build(rec types.RawTrialRecord) types.MoleculeProfile {
	phase := normalize.NormalizePhase(rec.Phase)
	ta := normalize.NormalizeTherapeuticArea(rec.TherapeuticArea)
	if strings.TrimSpace(rec.TherapeuticArea) == "" {
		ta = normalize.InferTherapeuticArea(rec.Conditions)
	}
	failed := rec.IsFailed()
	indication := rec.Indication()
	drug := drugName(rec)
	track := reference.TrackRecordFor(rec.Sponsor)
	tier, mfgIndex := reference.ManufacturingTier(rec.Sponsor)

	scores := p.engine.Score(phase, indication, ta, failed)
	markets := p.markets.Project(drug, phase, indication, ta, track, failed)

	started := rec.Started()
	var elapsed time.Duration
	if !started.IsZero() {
		elapsed = p.now().Sub(started)
	}

	return types.MoleculeProfile{
		ID:                 rec.NCTID,
		Drug:               drug,
		Sponsor:            rec.Sponsor,
		Company:            reference.BaseCompanyName(rec.Sponsor),
		Indication:         indication,
		Status:             rec.Status,
		RawPhase:           rec.Phase,
		StudyTitle:         rec.StudyTitle,
		Outcome:            rec.PrimaryOutcome,
		Phase:              phase,
		TherapeuticArea:    ta,
		TrackRecord:        track,
		Failed:             failed,
		StartDate:          started,
		ManufacturingTier:  tier,
		ManufacturingIndex: mfgIndex,
		Scores:             scores,
		Markets:            markets,
		TTMProgress:        aggregate.TTMProgress(phase, ta, elapsed),
		OverallScore: p.aggregator.Aggregate(aggregate.Input{
			Scores:             scores,
			Markets:            markets,
			Phase:              phase,
			Area:               ta,
			Elapsed:            elapsed,
			ManufacturingIndex: mfgIndex,
		}),
	}
}

// BuildAll scores every record in order. Records without an NCT id get a
// positional id ("record-1", ...) and repeated ids get a "#N" suffix
// ("NCT1", "NCT1#2", ...) so every profile stays addressable.
func (p *Pipeline) BuildAll(records []types.RawTrialRecord) []types.MoleculeProfile {
	out := make([]types.MoleculeProfile, 0, len(records))
	seen := make(map[string]bool, len(records))
	for i, rec := range records {
		prof := p.Build(rec)
		prof.ID = strings.TrimSpace(prof.ID)
		if prof.ID == "" {
			prof.ID = fmt.Sprintf("record-%d", i+1)
		}
		if seen[prof.ID] {
			id := uniqueID(prof.ID, seen)
			p.log.WithFields(logrus.Fields{
				"id":       prof.ID,
				"position": i + 1,
				"renamed":  id,
			}).Warn("duplicate molecule id in feed")
			prof.ID = id
		}
		seen[prof.ID] = true
		out = append(out, prof)
	}
	return out
}

// uniqueID returns the first "id#N", N >= 2, not already in seen.
func uniqueID(id string, seen map[string]bool) string {
	for n := 2; ; n++ {
		if c := fmt.Sprintf("%s#%d", id, n); !seen[c] {
			return c
		}
	}
}

// Rank returns a copy of profiles ordered by overall score, highest first,
// with ties broken by id.
func Rank(profiles []types.MoleculeProfile) []types.MoleculeProfile {
	out := make([]types.MoleculeProfile, len(profiles))
	copy(out, profiles)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].OverallScore != out[j].OverallScore {
			return out[i].OverallScore > out[j].OverallScore
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// drugName picks the display name: the primary drug, else the first
// intervention, else the NCT id.
func drugName(rec types.RawTrialRecord) string {
	if d := strings.TrimSpace(rec.PrimaryDrug); d != "" {
		return d
	}
	for _, iv := range rec.Interventions {
		if iv = strings.TrimSpace(iv); iv != "" {
			return iv
		}
	}
	return rec.NCTID
}
