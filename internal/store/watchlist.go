// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pdiddy/diligence-engine/pkg/types"
)

// AddWatch puts a molecule on the watchlist. Adding an id that is already
// present replaces its note and keeps the original date.
func (s *Store) AddWatch(ctx context.Context, id, note string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return fmt.Errorf("watchlist id is empty")
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO watchlist (id, note, added_at) VALUES (?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET note=excluded.note`,
		id, note, s.now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("adding %s to watchlist: %w", id, err)
	}
	return nil
}

// RemoveWatch deletes a molecule from the watchlist and reports whether it
// was present.
func (s *Store) RemoveWatch(ctx context.Context, id string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM watchlist WHERE id = ?`, strings.TrimSpace(id))
	if err != nil {
		return false, fmt.Errorf("removing %s from watchlist: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("reading removed count: %w", err)
	}
	return n > 0, nil
}

// Watchlist returns every watched molecule in the order it was added.
func (s *Store) Watchlist(ctx context.Context) ([]types.WatchEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, COALESCE(note, ''), added_at FROM watchlist ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("querying watchlist: %w", err)
	}
	defer rows.Close()

	var out []types.WatchEntry
	for rows.Next() {
		var e types.WatchEntry
		var addedAt string
		if err := rows.Scan(&e.ID, &e.Note, &addedAt); err != nil {
			return nil, fmt.Errorf("scanning watchlist: %w", err)
		}
		e.AddedAt, _ = time.Parse(time.RFC3339Nano, addedAt)
		out = append(out, e)
	}
	return out, rows.Err()
}

// Watching reports whether id is on the watchlist.
func (s *Store) Watching(ctx context.Context, id string) (bool, error) {
	var n int
	if err := s.db.QueryRowContext(ctx,
		`SELECT count(*) FROM watchlist WHERE id = ?`, id,
	).Scan(&n); err != nil {
		return false, fmt.Errorf("checking watchlist: %w", err)
	}
	return n > 0, nil
}
