// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/diligence-engine/pkg/types"
)

// SnapshotExport is the document written by ExportLatest.
type SnapshotExport struct {
	Snapshot  types.Snapshot          `json:"snapshot" yaml:"snapshot"`
	Molecules []types.MoleculeProfile `json:"molecules" yaml:"molecules"`
}

// ExportLatest writes the newest snapshot to path. A ".json" extension
// selects JSON; anything else is written as YAML.
func (s *Store) ExportLatest(ctx context.Context, path string) error {
	snap, profiles, err := s.LatestSnapshot(ctx)
	if err != nil {
		return err
	}
	doc := SnapshotExport{Snapshot: snap, Molecules: profiles}

	var data []byte
	if strings.EqualFold(filepath.Ext(path), ".json") {
		data, err = json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
	} else {
		data, err = yaml.Marshal(doc)
		if err != nil {
			return fmt.Errorf("marshaling YAML: %w", err)
		}
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating export directory: %w", err)
		}
	}
	return os.WriteFile(path, data, 0o644)
}
