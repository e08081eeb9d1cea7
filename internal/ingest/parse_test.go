// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/diligence-engine/internal/normalize"
	"github.com/pdiddy/diligence-engine/pkg/types"
)

const twoRecords = `[
  {"nct_id": "NCT001", "phase": "Phase 2/3", "therapeutic_area": "Oncology", "sponsor": "Pfizer Inc.", "conditions": ["Breast Cancer"], "primary_drug": "Drug A", "status": "RECRUITING", "start_date": "2022-03-01"},
  {"nct_id": "NCT002", "phase": "PHASE1", "sponsor": "Acme Bio", "conditions": "Atopic Dermatitis, Eczema", "status": "TERMINATED"}
]`

func TestParseFeed_Shapes(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		shape FeedShape
		ids   []string
	}{
		{"top-level array", twoRecords, ShapeArray, []string{"NCT001", "NCT002"}},
		{"molecules field", `{"molecules": ` + twoRecords + `}`, ShapeMolecules, []string{"NCT001", "NCT002"}},
		{"nested data.molecules", `{"data": {"molecules": ` + twoRecords + `}}`, ShapeDataMolecules, []string{"NCT001", "NCT002"}},
		{"empty array", `[]`, ShapeArray, nil},
		{"surrounding whitespace", "\n\t" + twoRecords + "\n", ShapeArray, []string{"NCT001", "NCT002"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseFeed([]byte(tt.body))
			assert.Equal(t, tt.shape, got.Shape)
			var ids []string
			for _, r := range got.Records {
				ids = append(ids, r.NCTID)
			}
			assert.Equal(t, tt.ids, ids)
		})
	}
}

func TestParseFeed_MalformedIsEmpty(t *testing.T) {
	for _, body := range []string{
		``,
		`not json`,
		`null`,
		`42`,
		`"molecules"`,
		`{"items": []}`,
		`{"molecules": "none"}`,
		`{"data": {"molecules": {"nct_id": "NCT1"}}}`,
		`[{"nct_id": "NCT1"`,
	} {
		t.Run(body, func(t *testing.T) {
			got := ParseFeed([]byte(body))
			assert.Equal(t, ShapeEmpty, got.Shape)
			assert.Empty(t, got.Records)
		})
	}
}

func TestParseFeed_SkipsNonRecordElements(t *testing.T) {
	got := ParseFeed([]byte(`[1, "x", null, {"nct_id": "NCT9"}, {"nct_id": 7}]`))
	assert.Equal(t, ShapeArray, got.Shape)
	require.Len(t, got.Records, 2)
	assert.Equal(t, "NCT9", got.Records[0].NCTID)
	assert.Equal(t, "7", got.Records[1].NCTID)
	assert.Equal(t, 3, got.Skipped)
}

func TestParseFeed_KeepsMistypedFields(t *testing.T) {
	got := ParseFeed([]byte(`{"molecules": [
		{"nct_id": "NCT1", "phase": ["PHASE2", "PHASE3"], "sponsor": "Pfizer"},
		{"nct_id": 20240017, "phase": "PHASE1"},
		{"nct_id": "NCT3", "phase": "PHASE3", "conditions": ["Asthma", 7]}
	]}`))
	assert.Equal(t, ShapeMolecules, got.Shape)
	assert.Zero(t, got.Skipped)
	require.Len(t, got.Records, 3)

	assert.Equal(t, types.PhaseIIToIII, normalize.NormalizePhase(got.Records[0].Phase))
	assert.Equal(t, "20240017", got.Records[1].NCTID)
	assert.Equal(t, []string{"Asthma", "7"}, []string(got.Records[2].Conditions))
}

func TestParseFeed_ConditionsAsString(t *testing.T) {
	got := ParseFeed([]byte(twoRecords))
	require.Len(t, got.Records, 2)
	assert.Equal(t, []string{"Atopic Dermatitis", "Eczema"}, []string(got.Records[1].Conditions))
	assert.True(t, got.Records[1].IsFailed())
}
