// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ingest

import (
	"bytes"
	"encoding/json"

	"github.com/pdiddy/diligence-engine/pkg/types"
)

// FeedShape names which accepted layout a payload matched.
type FeedShape string

const (
	ShapeArray         FeedShape = "array"
	ShapeMolecules     FeedShape = "molecules"
	ShapeDataMolecules FeedShape = "data.molecules"
	ShapeEmpty         FeedShape = "empty"
)

// FeedParse is the result of ParseFeed. Shape is ShapeEmpty when the payload
// matched none of the accepted layouts; Records is then nil. Skipped counts
// array elements that were not record objects.
type FeedParse struct {
	Shape   FeedShape
	Records []types.RawTrialRecord
	Skipped int
}

type shapeAttempt struct {
	shape   FeedShape
	extract func(body []byte) (json.RawMessage, bool)
}

// shapeAttempts is tried in order; the first layout that yields a JSON
// array wins.
var shapeAttempts = []shapeAttempt{
	{shape: ShapeArray, extract: func(body []byte) (json.RawMessage, bool) {
		return body, true
	}},
	{shape: ShapeMolecules, extract: func(body []byte) (json.RawMessage, bool) {
		var env struct {
			Molecules json.RawMessage `json:"molecules"`
		}
		if json.Unmarshal(body, &env) != nil {
			return nil, false
		}
		return env.Molecules, true
	}},
	{shape: ShapeDataMolecules, extract: func(body []byte) (json.RawMessage, bool) {
		var env struct {
			Data struct {
				Molecules json.RawMessage `json:"molecules"`
			} `json:"data"`
		}
		if json.Unmarshal(body, &env) != nil {
			return nil, false
		}
		return env.Data.Molecules, true
	}},
}

// ParseFeed decodes a feed payload. It never fails: invalid JSON and
// unrecognized layouts produce an empty parse. Array elements that are not
// record objects are skipped.
func ParseFeed(body []byte) FeedParse {
	body = bytes.TrimSpace(body)
	for _, a := range shapeAttempts {
		raw, ok := a.extract(body)
		if !ok {
			continue
		}
		if records, skipped, ok := decodeRecords(raw); ok {
			return FeedParse{Shape: a.shape, Records: records, Skipped: skipped}
		}
	}
	return FeedParse{Shape: ShapeEmpty}
}

func decodeRecords(raw json.RawMessage) (records []types.RawTrialRecord, skipped int, ok bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '[' {
		return nil, 0, false
	}
	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil {
		return nil, 0, false
	}
	records = make([]types.RawTrialRecord, 0, len(elems))
	for _, e := range elems {
		e = bytes.TrimSpace(e)
		if len(e) == 0 || e[0] != '{' {
			skipped++
			continue
		}
		var rec types.RawTrialRecord
		if err := json.Unmarshal(e, &rec); err != nil {
			skipped++
			continue
		}
		records = append(records, rec)
	}
	return records, skipped, true
}
