// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ingest

import "github.com/pdiddy/diligence-engine/pkg/types"

// Query filters a ranked profile list. Zero fields match everything.
type Query struct {
	Area  types.TherapeuticArea
	Phase types.Phase
	// Limit caps the result length when positive.
	Limit int
	// ExcludeFailed drops terminated and withdrawn programs.
	ExcludeFailed bool
}

// Apply returns the profiles matching q, preserving order.
func (q Query) Apply(profiles []types.MoleculeProfile) []types.MoleculeProfile {
	var out []types.MoleculeProfile
	for _, p := range profiles {
		if q.Area != "" && p.TherapeuticArea != q.Area {
			continue
		}
		if q.Phase != "" && p.Phase != q.Phase {
			continue
		}
		if q.ExcludeFailed && p.Failed {
			continue
		}
		out = append(out, p)
		if q.Limit > 0 && len(out) == q.Limit {
			break
		}
	}
	return out
}

// Find returns the profile with the given id.
func Find(profiles []types.MoleculeProfile, id string) (types.MoleculeProfile, bool) {
	for _, p := range profiles {
		if p.ID == id {
			return p, true
		}
	}
	return types.MoleculeProfile{}, false
}
