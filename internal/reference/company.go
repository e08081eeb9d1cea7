// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package reference

import (
	"strings"
	"unicode"

	"github.com/pdiddy/diligence-engine/pkg/types"
)

// Manufacturing scale-up tiers. Tier 4 is the default for unknown sponsors.
const (
	Tier1 types.ManufacturingTier = 1
	Tier2 types.ManufacturingTier = 2
	Tier3 types.ManufacturingTier = 3
	Tier4 types.ManufacturingTier = 4

	LowestTier = Tier4
)

var tierIndex = map[types.ManufacturingTier]float64{
	Tier1: 1.00,
	Tier2: 0.75,
	Tier3: 0.50,
	Tier4: 0.25,
}

// TierIndex returns the scale-up index in [0, 1] for tier. Unknown tiers
// get the lowest tier's index.
func TierIndex(tier types.ManufacturingTier) float64 {
	if v, ok := tierIndex[tier]; ok {
		return v
	}
	return tierIndex[LowestTier]
}

// TopTierCompanies is matched by case-insensitive containment on word
// boundaries so subsidiaries and long legal names resolve ("Genentech, Inc.",
// "Janssen Research & Development") without "roche" matching "Rochester".
var TopTierCompanies = []string{
	"pfizer", "roche", "genentech", "novartis", "merck", "msd",
	"johnson & johnson", "janssen", "astrazeneca", "sanofi", "gsk",
	"glaxosmithkline", "abbvie", "bristol myers", "lilly",
	"novo nordisk", "amgen", "takeda", "bayer", "boehringer",
}

// capexUSDBn is annual capital expenditure in USD billions keyed by the
// normalized base company name.
var capexUSDBn = map[string]float64{
	"pfizer":                3.2,
	"roche":                 4.0,
	"novartis":              1.5,
	"merck":                 4.4,
	"merck & co":            4.4,
	"johnson & johnson":     4.5,
	"astrazeneca":           2.2,
	"sanofi":                2.0,
	"gsk":                   1.6,
	"glaxosmithkline":       1.6,
	"abbvie":                0.8,
	"bristol-myers squibb":  1.2,
	"eli lilly":             5.0,
	"eli lilly and company": 5.0,
	"novo nordisk":          6.0,
	"amgen":                 1.1,
	"takeda":                1.3,
	"bayer":                 1.9,
	"boehringer ingelheim":  1.4,
	"gilead sciences":       0.6,
	"regeneron":             0.9,
	"vertex":                0.3,
	"biogen":                0.3,
	"moderna":               0.4,
	"biontech":              0.3,
	"daiichi sankyo":        0.5,
	"astellas":              0.3,
	"eisai":                 0.2,
	"alnylam":               0.1,
	"incyte":                0.1,
	"jazz":                  0.05,
	"seagen":                0.2,
	"beigene":               0.4,
	"ucb":                   0.2,
}

// CapexUSDBn returns the sponsor's annual CAPEX and whether it is listed.
func CapexUSDBn(sponsor string) (float64, bool) {
	v, ok := capexUSDBn[capexKey(BaseCompanyName(sponsor))]
	return v, ok
}

// BaseCompanyName strips partnership suffixes ("Pfizer/BioNTech" →
// "Pfizer") and surrounding whitespace. The Danish legal form "A/S" is
// removed first so it is not read as a partnership.
func BaseCompanyName(sponsor string) string {
	sponsor = strings.TrimSpace(sponsor)
	if n := len(sponsor); n > 4 && strings.EqualFold(sponsor[n-4:], " a/s") {
		sponsor = sponsor[:n-4]
	}
	if i := strings.Index(sponsor, "/"); i >= 0 {
		sponsor = sponsor[:i]
	}
	return strings.TrimSpace(sponsor)
}

var legalSuffixes = []string{
	", inc.", ", inc", " inc.", " inc", " incorporated", " corporation", " corp.", " corp",
	" ltd.", " ltd", " plc", " ag", " s.a.", " sa", " gmbh", " llc",
	" co., ltd.", " pharmaceuticals", " pharmaceutical", " pharma",
}

// capexKey lowercases name and trims trailing legal-entity suffixes.
func capexKey(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	for trimmed := true; trimmed; {
		trimmed = false
		for _, suf := range legalSuffixes {
			if strings.HasSuffix(s, suf) {
				s = strings.TrimSpace(strings.TrimSuffix(s, suf))
				trimmed = true
			}
		}
	}
	return strings.TrimRight(s, ",. ")
}

// IsTopTier reports whether sponsor contains a top-tier company name.
func IsTopTier(sponsor string) bool {
	words := nameTokens(sponsor)
	for _, c := range TopTierCompanies {
		if containsRun(words, nameTokens(c)) {
			return true
		}
	}
	return false
}

func nameTokens(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '&'
	})
}

// containsRun reports whether run appears as a contiguous subsequence of words.
func containsRun(words, run []string) bool {
	if len(run) == 0 {
		return false
	}
	for i := 0; i+len(run) <= len(words); i++ {
		match := true
		for j := range run {
			if words[i+j] != run[j] {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}

// TierRule resolves a manufacturing tier for a sponsor when Match reports true.
type TierRule struct {
	Name  string
	Match func(sponsor string) (types.ManufacturingTier, bool)
}

// TierRules is evaluated in order: an exact CAPEX listing wins over the
// top-tier name list, and everything else falls to LowestTier.
var TierRules = []TierRule{
	{Name: "capex", Match: func(sponsor string) (types.ManufacturingTier, bool) {
		capex, ok := CapexUSDBn(sponsor)
		if !ok {
			return 0, false
		}
		switch {
		case capex >= 1.0:
			return Tier1, true
		case capex >= 0.3:
			return Tier2, true
		default:
			return Tier3, true
		}
	}},
	{Name: "top-tier", Match: func(sponsor string) (types.ManufacturingTier, bool) {
		if IsTopTier(sponsor) {
			return Tier1, true
		}
		return 0, false
	}},
}

// ManufacturingTier returns the sponsor's scale-up tier and index.
func ManufacturingTier(sponsor string) (types.ManufacturingTier, float64) {
	for _, r := range TierRules {
		if tier, ok := r.Match(sponsor); ok {
			return tier, TierIndex(tier)
		}
	}
	return LowestTier, TierIndex(LowestTier)
}

// TrackRecordFor classifies a sponsor: top-tier names first, then any
// CAPEX-listed company as established, otherwise emerging.
func TrackRecordFor(sponsor string) types.TrackRecord {
	if IsTopTier(sponsor) {
		return types.TrackTopTier
	}
	if _, ok := CapexUSDBn(sponsor); ok {
		return types.TrackEstablished
	}
	return types.TrackEmerging
}
