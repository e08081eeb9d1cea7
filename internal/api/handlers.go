// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/pdiddy/diligence-engine/internal/ingest"
	"github.com/pdiddy/diligence-engine/internal/normalize"
	"github.com/pdiddy/diligence-engine/internal/report"
	"github.com/pdiddy/diligence-engine/pkg/types"
)

// stateReporter is implemented by ingest.Cache.
type stateReporter interface {
	State() ingest.State
}

type invalidator interface {
	Invalidate()
}

func (s *Server) handleHealth(c *gin.Context) {
	body := gin.H{"status": "ok"}
	if sr, ok := s.source.(stateReporter); ok {
		body["feed"] = sr.State().String()
	}
	c.JSON(http.StatusOK, body)
}

// loadMolecules writes the error response and returns false on failure.
func (s *Server) loadMolecules(c *gin.Context) ([]types.MoleculeProfile, bool) {
	profiles, err := s.source.Get(c.Request.Context())
	if err == nil {
		return profiles, true
	}

	var fe *ingest.FetchError
	if errors.As(err, &fe) {
		body := gin.H{"error": fe.Error()}
		if fe.StatusCode != 0 {
			body["upstream_status"] = fe.StatusCode
		}
		c.JSON(http.StatusBadGateway, body)
		return nil, false
	}
	c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	return nil, false
}

func (s *Server) handleListMolecules(c *gin.Context) {
	q := ingest.Query{}
	if raw := strings.TrimSpace(c.Query("ta")); raw != "" {
		ta, ok := normalize.LookupTherapeuticArea(raw)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown therapeutic area " + strconv.Quote(raw)})
			return
		}
		q.Area = ta
	}
	if phase := strings.TrimSpace(c.Query("phase")); phase != "" {
		q.Phase = normalize.NormalizePhase(phase)
	}
	if limit := c.Query("limit"); limit != "" {
		n, err := strconv.Atoi(limit)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a non-negative integer"})
			return
		}
		q.Limit = n
	}
	if v := c.Query("exclude_failed"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "exclude_failed must be a boolean"})
			return
		}
		q.ExcludeFailed = b
	}

	profiles, ok := s.loadMolecules(c)
	if !ok {
		return
	}
	matched := q.Apply(profiles)
	out := make([]types.MoleculeProfile, len(matched))
	for i, p := range matched {
		out[i] = report.Display(p)
	}
	c.JSON(http.StatusOK, gin.H{"count": len(out), "molecules": out})
}

func (s *Server) handleGetMolecule(c *gin.Context) {
	profiles, ok := s.loadMolecules(c)
	if !ok {
		return
	}
	p, found := ingest.Find(profiles, c.Param("id"))
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "molecule not found"})
		return
	}
	c.JSON(http.StatusOK, report.Display(p))
}

func (s *Server) handleNormalize(c *gin.Context) {
	phase, rule := normalize.MatchPhase(c.Query("phase"))
	c.JSON(http.StatusOK, gin.H{
		"phase":            phase,
		"phase_rule":       rule,
		"therapeutic_area": normalize.NormalizeTherapeuticArea(c.Query("ta")),
	})
}

// handleScore scores a record posted in the feed's record format.
func (s *Server) handleScore(c *gin.Context) {
	var rec types.RawTrialRecord
	if err := c.ShouldBindJSON(&rec); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid record: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, report.Display(s.pipeline.Build(rec)))
}

func (s *Server) handleRefresh(c *gin.Context) {
	inv, ok := s.source.(invalidator)
	if !ok {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "source cannot be refreshed"})
		return
	}
	inv.Invalidate()
	c.Status(http.StatusAccepted)
}

func (s *Server) requireWatchlist(c *gin.Context) bool {
	if s.watch == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "watchlist store is not configured"})
		return false
	}
	return true
}

func (s *Server) handleListWatch(c *gin.Context) {
	if !s.requireWatchlist(c) {
		return
	}
	entries, err := s.watch.Watchlist(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if entries == nil {
		entries = []types.WatchEntry{}
	}
	c.JSON(http.StatusOK, gin.H{"count": len(entries), "watchlist": entries})
}

type watchRequest struct {
	Note string `json:"note"`
}

func (s *Server) handlePutWatch(c *gin.Context) {
	if !s.requireWatchlist(c) {
		return
	}
	var req watchRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body: " + err.Error()})
			return
		}
	}
	if err := s.watch.AddWatch(c.Request.Context(), c.Param("id"), req.Note); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) handleDeleteWatch(c *gin.Context) {
	if !s.requireWatchlist(c) {
		return
	}
	removed, err := s.watch.RemoveWatch(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if !removed {
		c.JSON(http.StatusNotFound, gin.H{"error": "molecule is not on the watchlist"})
		return
	}
	c.Status(http.StatusNoContent)
}
