// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"math"
	"time"
)

// MaxFactorScore bounds each scoring factor; four factors sum to at most 100.
const MaxFactorScore = 25.0

// FactorScores holds the four weighted scoring factors, each in [0, 25].
type FactorScores struct {
	Clinical  float64 `json:"clinical" yaml:"clinical"`
	Market    float64 `json:"market" yaml:"market"`
	Strategic float64 `json:"strategic" yaml:"strategic"`
	Financial float64 `json:"financial" yaml:"financial"`
}

// Sum returns the unweighted total of the factors.
func (f FactorScores) Sum() float64 {
	return f.Clinical + f.Market + f.Strategic + f.Financial
}

func (f FactorScores) clamped() FactorScores {
	return FactorScores{
		Clinical:  Clamp(f.Clinical, 0, MaxFactorScore),
		Market:    Clamp(f.Market, 0, MaxFactorScore),
		Strategic: Clamp(f.Strategic, 0, MaxFactorScore),
		Financial: Clamp(f.Financial, 0, MaxFactorScore),
	}
}

// Probabilities holds risk-adjustment metrics as percentages in [0, 100].
type Probabilities struct {
	// PTS is the probability of technical success: clearing the remaining
	// clinical phases through filing.
	PTS float64 `json:"pts" yaml:"pts"`

	// PRS is the probability of regulatory success once filed.
	PRS float64 `json:"prs" yaml:"prs"`

	// PTRS is PTS × PRS.
	PTRS float64 `json:"ptrs" yaml:"ptrs"`

	// NextPhase is the probability of clearing the current phase.
	NextPhase float64 `json:"next_phase" yaml:"next_phase"`

	// Approval is the overall probability of reaching approval.
	Approval float64 `json:"approval" yaml:"approval"`
}

// ScoreSet is the output of the probability scoring engine. Total is always
// the sum of Factors; construct with NewScoreSet.
type ScoreSet struct {
	Factors       FactorScores  `json:"factors" yaml:"factors"`
	Probabilities Probabilities `json:"probabilities" yaml:"probabilities"`
	Total         float64       `json:"total" yaml:"total"`
}

// NewScoreSet clamps each factor to [0, 25] and derives Total from them.
func NewScoreSet(f FactorScores, p Probabilities) ScoreSet {
	f = f.clamped()
	return ScoreSet{Factors: f, Probabilities: p, Total: f.Sum()}
}

// Rounded returns a display copy with every value rounded to one decimal.
// Total is rounded from the exact sum, not re-summed from rounded factors.
func (s ScoreSet) Rounded() ScoreSet {
	return ScoreSet{
		Factors: FactorScores{
			Clinical:  Round1(s.Factors.Clinical),
			Market:    Round1(s.Factors.Market),
			Strategic: Round1(s.Factors.Strategic),
			Financial: Round1(s.Factors.Financial),
		},
		Probabilities: Probabilities{
			PTS:       Round1(s.Probabilities.PTS),
			PRS:       Round1(s.Probabilities.PRS),
			PTRS:      Round1(s.Probabilities.PTRS),
			NextPhase: Round1(s.Probabilities.NextPhase),
			Approval:  Round1(s.Probabilities.Approval),
		},
		Total: Round1(s.Total),
	}
}

// RevenueProjection is projected revenue in USD millions.
type RevenueProjection struct {
	Year1 float64 `json:"year1" yaml:"year1"`
	Year2 float64 `json:"year2" yaml:"year2"`
}

// MarketAccess describes the expected reimbursement position in a market.
type MarketAccess struct {
	PayerCoveragePct float64 `json:"payer_coverage_pct" yaml:"payer_coverage_pct"`
	PriceIndexPct    float64 `json:"price_index_pct" yaml:"price_index_pct"`
	Strategy         string  `json:"strategy" yaml:"strategy"`
}

// MarketData is the launch and revenue projection for one country.
type MarketData struct {
	Country    string            `json:"country" yaml:"country"`
	Code       string            `json:"code" yaml:"code"`
	LaunchDate time.Time         `json:"launch_date" yaml:"launch_date"`
	Revenue    RevenueProjection `json:"revenue_projection" yaml:"revenue_projection"`
	Access     MarketAccess      `json:"market_access" yaml:"market_access"`
}

// ManufacturingTier ranks a sponsor's manufacturing scale-up capacity;
// Tier 1 is the strongest.
type ManufacturingTier int

// MoleculeProfile is the fully scored view of one feed record. It is built
// once during ingestion and only read afterwards.
type MoleculeProfile struct {
	ID         string `json:"id" yaml:"id"`
	Drug       string `json:"drug" yaml:"drug"`
	Sponsor    string `json:"sponsor" yaml:"sponsor"`
	Company    string `json:"company" yaml:"company"`
	Indication string `json:"indication" yaml:"indication"`
	Status     string `json:"status" yaml:"status"`
	RawPhase   string `json:"raw_phase" yaml:"raw_phase"`
	StudyTitle string `json:"study_title,omitempty" yaml:"study_title,omitempty"`
	Outcome    string `json:"primary_outcome,omitempty" yaml:"primary_outcome,omitempty"`

	Phase           Phase           `json:"phase" yaml:"phase"`
	TherapeuticArea TherapeuticArea `json:"therapeutic_area" yaml:"therapeutic_area"`
	TrackRecord     TrackRecord     `json:"track_record" yaml:"track_record"`
	Failed          bool            `json:"failed" yaml:"failed"`
	StartDate       time.Time       `json:"start_date" yaml:"start_date"`

	ManufacturingTier  ManufacturingTier `json:"manufacturing_tier" yaml:"manufacturing_tier"`
	ManufacturingIndex float64           `json:"manufacturing_index" yaml:"manufacturing_index"`

	Scores  ScoreSet     `json:"scores" yaml:"scores"`
	Markets []MarketData `json:"markets" yaml:"markets"`

	// TTMProgress is elapsed time since trial start as a fraction of the
	// therapeutic-area benchmark, capped at 1.
	TTMProgress  float64 `json:"ttm_progress" yaml:"ttm_progress"`
	OverallScore float64 `json:"overall_score" yaml:"overall_score"`
}

// TotalRevenue sums projected revenue across markets.
func (p MoleculeProfile) TotalRevenue() RevenueProjection {
	var r RevenueProjection
	for _, m := range p.Markets {
		r.Year1 += m.Revenue.Year1
		r.Year2 += m.Revenue.Year2
	}
	return r
}

// Clamp bounds v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// Round1 rounds to one decimal place.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}
