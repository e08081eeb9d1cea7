// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// Snapshot describes one persisted ranking run.
type Snapshot struct {
	ID        int64     `json:"id" yaml:"id"`
	TakenAt   time.Time `json:"taken_at" yaml:"taken_at"`
	Source    string    `json:"source" yaml:"source"`
	Molecules int       `json:"molecules" yaml:"molecules"`
}

// ScorePoint is a molecule's overall score in one snapshot.
type ScorePoint struct {
	SnapshotID   int64     `json:"snapshot_id" yaml:"snapshot_id"`
	TakenAt      time.Time `json:"taken_at" yaml:"taken_at"`
	Rank         int       `json:"rank" yaml:"rank"`
	OverallScore float64   `json:"overall_score" yaml:"overall_score"`
}

// WatchEntry is a molecule id on the user's watchlist.
type WatchEntry struct {
	ID      string    `json:"id" yaml:"id"`
	Note    string    `json:"note,omitempty" yaml:"note,omitempty"`
	AddedAt time.Time `json:"added_at" yaml:"added_at"`
}
