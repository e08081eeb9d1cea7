// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ingest

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"github.com/pdiddy/diligence-engine/internal/logging"
	"github.com/pdiddy/diligence-engine/pkg/types"
)

// State is the cache's position in its load cycle:
// EMPTY -> FETCHING -> READY or FAILED. FAILED behaves like EMPTY on the
// next Get.
type State int

const (
	StateEmpty State = iota
	StateFetching
	StateReady
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "EMPTY"
	case StateFetching:
		return "FETCHING"
	case StateReady:
		return "READY"
	case StateFailed:
		return "FAILED"
	default:
		return "UNKNOWN"
	}
}

const flightKey = "molecules"

// Cache loads the ranked molecule list once and serves it to every caller.
// Concurrent Gets during a fetch share that fetch. A failed fetch is not
// cached; the next Get starts a new one. Cache is safe for concurrent use.
type Cache struct {
	fetcher  Fetcher
	pipeline *Pipeline
	timeout  time.Duration
	log      *logrus.Logger

	group   singleflight.Group
	fetches atomic.Int64

	mu       sync.Mutex
	state    State
	gen      uint64
	profiles []types.MoleculeProfile
	lastErr  error
}

// NewCache returns an empty cache. timeout bounds each shared fetch; zero
// means the fetch runs until the fetcher returns. A nil log discards output.
func NewCache(fetcher Fetcher, pipeline *Pipeline, timeout time.Duration, log *logrus.Logger) *Cache {
	if log == nil {
		log = logging.Discard()
	}
	return &Cache{fetcher: fetcher, pipeline: pipeline, timeout: timeout, log: log}
}

// Get returns the ranked profiles, fetching them on first use. ctx bounds
// only this caller's wait; cancelling it does not cancel the shared fetch.
// The returned slice is shared by all callers and must not be modified.
func (c *Cache) Get(ctx context.Context) ([]types.MoleculeProfile, error) {
	if p, ok := c.ready(); ok {
		return p, nil
	}

	ch := c.group.DoChan(flightKey, c.load)
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.([]types.MoleculeProfile), nil
	}
}

func (c *Cache) ready() ([]types.MoleculeProfile, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.profiles, c.state == StateReady
}

func (c *Cache) load() (interface{}, error) {
	c.mu.Lock()
	if c.state == StateReady {
		p := c.profiles
		c.mu.Unlock()
		return p, nil
	}
	c.state = StateFetching
	gen := c.gen
	c.mu.Unlock()

	n := c.fetches.Add(1)
	ctx := context.Background()
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	start := time.Now()
	body, err := c.fetcher.Fetch(ctx)
	if err != nil {
		fe := asFetchError(err)
		c.settle(gen, StateFailed, nil, fe)
		c.log.WithFields(logrus.Fields{
			"attempt": n,
			"elapsed": time.Since(start).String(),
			"status":  fe.StatusCode,
		}).WithError(fe).Warn("molecule feed fetch failed")
		return nil, fe
	}

	parsed := ParseFeed(body)
	profiles := Rank(c.pipeline.BuildAll(parsed.Records))
	c.settle(gen, StateReady, profiles, nil)
	entry := c.log.WithFields(logrus.Fields{
		"attempt":   n,
		"elapsed":   time.Since(start).String(),
		"shape":     string(parsed.Shape),
		"molecules": len(profiles),
		"skipped":   parsed.Skipped,
	})
	if parsed.Skipped > 0 {
		entry.Warn("molecule feed loaded with skipped elements")
	} else {
		entry.Info("molecule feed loaded")
	}
	return profiles, nil
}

// settle records a load outcome unless Invalidate ran since the load began.
func (c *Cache) settle(gen uint64, state State, profiles []types.MoleculeProfile, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		return
	}
	c.state = state
	c.profiles = profiles
	c.lastErr = err
}

// Invalidate drops any cached profiles and returns the cache to EMPTY. A
// fetch already in flight still completes for its waiters but its result
// is discarded.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	c.gen++
	c.state = StateEmpty
	c.profiles = nil
	c.lastErr = nil
	c.mu.Unlock()
	c.group.Forget(flightKey)
}

// State reports the current load state.
func (c *Cache) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// LastError returns the failure from the most recent load, or nil.
func (c *Cache) LastError() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

// Fetches counts fetcher calls made over the cache's lifetime.
func (c *Cache) Fetches() int64 {
	return c.fetches.Load()
}
