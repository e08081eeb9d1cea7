// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store persists ranked snapshots and the molecule watchlist in a
// SQLite database.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/diligence-engine/pkg/types"
)

// DefaultPath is used when the config leaves store.path empty.
const DefaultPath = "data/diligence.db"

// ErrNoSnapshot is returned when no snapshot has been saved yet.
var ErrNoSnapshot = errors.New("no snapshot saved")

// Store manages the snapshot and watchlist database.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// NewStore opens or creates the database at cfg.Path, creating parent
// directories and the schema as needed.
func NewStore(cfg types.StoreConfig) (*Store, error) {
	path := cfg.Path
	if path == "" {
		path = DefaultPath
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating store directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db, now: time.Now}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS snapshots (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			taken_at TEXT NOT NULL,
			source TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS profiles (
			snapshot_id INTEGER NOT NULL REFERENCES snapshots(id) ON DELETE CASCADE,
			rank INTEGER NOT NULL,
			id TEXT NOT NULL,
			therapeutic_area TEXT,
			phase TEXT,
			overall_score REAL,
			data TEXT NOT NULL,
			PRIMARY KEY (snapshot_id, rank)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_profiles_id ON profiles(id)`,
		`CREATE TABLE IF NOT EXISTS watchlist (
			id TEXT PRIMARY KEY,
			note TEXT,
			added_at TEXT NOT NULL
		)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// SaveSnapshot stores profiles in rank order as a new snapshot. Each
// profile is kept as JSON so later reads return exactly what was ranked.
func (s *Store) SaveSnapshot(ctx context.Context, source string, profiles []types.MoleculeProfile) (types.Snapshot, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return types.Snapshot{}, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	takenAt := s.now().UTC()
	res, err := tx.ExecContext(ctx,
		`INSERT INTO snapshots (taken_at, source) VALUES (?, ?)`,
		takenAt.Format(time.RFC3339Nano), source,
	)
	if err != nil {
		return types.Snapshot{}, fmt.Errorf("inserting snapshot: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return types.Snapshot{}, fmt.Errorf("reading snapshot id: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO profiles (snapshot_id, rank, id, therapeutic_area, phase, overall_score, data)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return types.Snapshot{}, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i, p := range profiles {
		data, err := json.Marshal(p)
		if err != nil {
			return types.Snapshot{}, fmt.Errorf("encoding profile %s: %w", p.ID, err)
		}
		if _, err := stmt.ExecContext(ctx,
			id, i+1, p.ID, string(p.TherapeuticArea), string(p.Phase), p.OverallScore, string(data),
		); err != nil {
			return types.Snapshot{}, fmt.Errorf("inserting profile %s: %w", p.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return types.Snapshot{}, fmt.Errorf("committing snapshot: %w", err)
	}
	return types.Snapshot{ID: id, TakenAt: takenAt, Source: source, Molecules: len(profiles)}, nil
}

// Snapshots lists saved snapshots, newest first.
func (s *Store) Snapshots(ctx context.Context) ([]types.Snapshot, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT s.id, s.taken_at, COALESCE(s.source, ''), COUNT(p.id)
		 FROM snapshots s LEFT JOIN profiles p ON p.snapshot_id = s.id
		 GROUP BY s.id ORDER BY s.id DESC`)
	if err != nil {
		return nil, fmt.Errorf("querying snapshots: %w", err)
	}
	defer rows.Close()

	var out []types.Snapshot
	for rows.Next() {
		var snap types.Snapshot
		var takenAt string
		if err := rows.Scan(&snap.ID, &takenAt, &snap.Source, &snap.Molecules); err != nil {
			return nil, fmt.Errorf("scanning snapshot: %w", err)
		}
		snap.TakenAt, _ = time.Parse(time.RFC3339Nano, takenAt)
		out = append(out, snap)
	}
	return out, rows.Err()
}

// LatestSnapshot returns the newest snapshot and its profiles in rank order.
// It returns ErrNoSnapshot when nothing has been saved.
func (s *Store) LatestSnapshot(ctx context.Context) (types.Snapshot, []types.MoleculeProfile, error) {
	snaps, err := s.Snapshots(ctx)
	if err != nil {
		return types.Snapshot{}, nil, err
	}
	if len(snaps) == 0 {
		return types.Snapshot{}, nil, ErrNoSnapshot
	}
	snap := snaps[0]

	rows, err := s.db.QueryContext(ctx,
		`SELECT data FROM profiles WHERE snapshot_id = ? ORDER BY rank`, snap.ID)
	if err != nil {
		return types.Snapshot{}, nil, fmt.Errorf("querying profiles: %w", err)
	}
	defer rows.Close()

	profiles := make([]types.MoleculeProfile, 0, snap.Molecules)
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return types.Snapshot{}, nil, fmt.Errorf("scanning profile: %w", err)
		}
		var p types.MoleculeProfile
		if err := json.Unmarshal([]byte(data), &p); err != nil {
			return types.Snapshot{}, nil, fmt.Errorf("decoding profile: %w", err)
		}
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		return types.Snapshot{}, nil, err
	}
	return snap, profiles, nil
}

// History returns a molecule's overall score in every snapshot that
// contains it, oldest first.
func (s *Store) History(ctx context.Context, moleculeID string) ([]types.ScorePoint, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT s.id, s.taken_at, p.rank, p.overall_score
		 FROM profiles p JOIN snapshots s ON s.id = p.snapshot_id
		 WHERE p.id = ? ORDER BY s.id`, moleculeID)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	var out []types.ScorePoint
	for rows.Next() {
		var pt types.ScorePoint
		var takenAt string
		if err := rows.Scan(&pt.SnapshotID, &takenAt, &pt.Rank, &pt.OverallScore); err != nil {
			return nil, fmt.Errorf("scanning history: %w", err)
		}
		pt.TakenAt, _ = time.Parse(time.RFC3339Nano, takenAt)
		out = append(out, pt)
	}
	return out, rows.Err()
}

// Prune keeps the newest keep snapshots and deletes the rest. It returns
// the number of snapshots removed.
func (s *Store) Prune(ctx context.Context, keep int) (int, error) {
	if keep < 0 {
		keep = 0
	}
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM snapshots WHERE id NOT IN (SELECT id FROM snapshots ORDER BY id DESC LIMIT ?)`, keep)
	if err != nil {
		return 0, fmt.Errorf("pruning snapshots: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("reading pruned count: %w", err)
	}
	return int(n), nil
}
