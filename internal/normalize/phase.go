// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package normalize maps free-text clinical-trial phase, therapeutic-area
// and condition strings onto the closed key sets in pkg/types. Every
// function here is total: unrecognized input resolves to a documented
// default instead of an error.
package normalize

import (
	"strings"

	"github.com/pdiddy/diligence-engine/pkg/types"
)

// PhaseRule maps a tokenized phase string to a canonical phase when Match
// reports true. Rules are evaluated in order; the first match wins.
type PhaseRule struct {
	Name  string
	Match func(key string) bool
	Phase types.Phase
}

// PhaseRules is the ordered rule table. Status words are checked before
// phase numbers, and Phase 4 is folded into Phase III.
var PhaseRules = []PhaseRule{
	{Name: "approved", Match: hasToken("approved", "marketed", "launched"), Phase: types.PhaseApproved},
	{Name: "filed", Match: hasToken("nda", "bla", "maa", "filed", "submitted", "registration"), Phase: types.PhaseNDABLA},
	{Name: "phase 1/2", Match: hasToken("1/2", "0/1/2"), Phase: types.PhaseIToII},
	{Name: "phase 2/3", Match: hasToken("2/3"), Phase: types.PhaseIIToIII},
	{Name: "phase 4", Match: hasToken("4", "3/4"), Phase: types.PhaseIII},
	{Name: "phase 3", Match: hasToken("3"), Phase: types.PhaseIII},
	{Name: "phase 2", Match: hasToken("2"), Phase: types.PhaseII},
	{Name: "phase 1", Match: hasToken("1", "0", "0/1"), Phase: types.PhaseI},
}

// NormalizePhase returns the canonical phase for raw. Empty and
// unrecognized strings return types.DefaultPhase.
func NormalizePhase(raw string) types.Phase {
	phase, _ := MatchPhase(raw)
	return phase
}

// MatchPhase is NormalizePhase that also reports which rule matched.
// The rule name is "default" when nothing matched.
func MatchPhase(raw string) (types.Phase, string) {
	key := phaseKey(raw)
	if key == "" {
		return types.DefaultPhase, "default"
	}
	for _, r := range PhaseRules {
		if r.Match(key) {
			return r.Phase, r.Name
		}
	}
	return types.DefaultPhase, "default"
}

var romanNumerals = map[string]string{
	"i":   "1",
	"ii":  "2",
	"iii": "3",
	"iv":  "4",
}

// phaseWords are the non-numeric tokens phaseKey keeps.
var phaseWords = map[string]bool{
	"early": true, "approved": true, "marketed": true, "launched": true,
	"nda": true, "bla": true, "maa": true, "filed": true, "submitted": true,
	"registration": true,
}

// joiners combine the phase numbers on either side of them.
var joiners = map[string]bool{"/": true, ",": true, "|": true, "&": true, "+": true, "and": true}

// phaseKey reduces a raw phase to status words followed by one phase-number
// group: "PHASE1/PHASE2" → "1/2", "PHASE2, PHASE3" → "2/3",
// "Early Phase 1" → "early 1", "Phase 1b/2a" → "1/2", "Phase 1 (2024)" → "1".
// Only the numbers 0 to 4 count as phases, so years, counts and n= values
// are dropped. When several groups appear the first wins.
func phaseKey(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	s = strings.NewReplacer(
		"_", " ", "(", " ", ")", " ", ":", " ", ";", " ",
		"-", " / ", "/", " / ", ",", " , ", "|", " | ", "&", " & ", "+", " + ",
	).Replace(s)

	var words []string
	var groups [][]string
	join := false
	for _, tok := range strings.Fields(s) {
		if joiners[tok] {
			join = true
			continue
		}
		if phaseWords[tok] {
			words = append(words, tok)
			join = false
			continue
		}
		tok = strings.TrimPrefix(tok, "phase")
		if tok == "" {
			continue
		}
		n, ok := phaseNumber(tok)
		if !ok {
			join = false
			continue
		}
		if join && len(groups) > 0 {
			groups[len(groups)-1] = append(groups[len(groups)-1], n)
		} else {
			groups = append(groups, []string{n})
		}
		join = false
	}

	if len(groups) > 0 {
		words = append(words, combine(groups[0]))
	}
	return strings.Join(words, " ")
}

// phaseNumber reads a phase number token. Sub-phases such as IIb and 1a
// collapse onto their phase.
func phaseNumber(tok string) (string, bool) {
	base := strings.TrimRight(tok, "ab")
	if d, ok := romanNumerals[base]; ok {
		return d, true
	}
	if len(base) == 1 && base[0] >= '0' && base[0] <= '4' {
		return base, true
	}
	return "", false
}

// combine orders and deduplicates a group of phase numbers: "3,2" → "2/3".
func combine(group []string) string {
	seen := make(map[string]bool, len(group))
	var out []string
	for _, d := range []string{"0", "1", "2", "3", "4"} {
		for _, g := range group {
			if g == d && !seen[d] {
				seen[d] = true
				out = append(out, d)
			}
		}
	}
	return strings.Join(out, "/")
}

// hasToken matches whole space-separated tokens of a phase key.
func hasToken(words ...string) func(string) bool {
	return func(key string) bool {
		for _, tok := range strings.Fields(key) {
			for _, w := range words {
				if tok == w {
					return true
				}
			}
		}
		return false
	}
}
