// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package api serves ranked molecule profiles, ad hoc scoring and the
// watchlist over HTTP.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/pdiddy/diligence-engine/internal/ingest"
	"github.com/pdiddy/diligence-engine/internal/logging"
	"github.com/pdiddy/diligence-engine/pkg/types"
)

// DefaultAddr is used when the config leaves server.addr empty.
const DefaultAddr = ":8080"

const shutdownTimeout = 15 * time.Second

// MoleculeSource supplies the ranked profile list.
type MoleculeSource interface {
	Get(ctx context.Context) ([]types.MoleculeProfile, error)
}

// Watchlist persists watched molecule ids.
type Watchlist interface {
	AddWatch(ctx context.Context, id, note string) error
	RemoveWatch(ctx context.Context, id string) (bool, error)
	Watchlist(ctx context.Context) ([]types.WatchEntry, error)
}

// Server is the HTTP front end.
type Server struct {
	cfg      types.ServerConfig
	source   MoleculeSource
	pipeline *ingest.Pipeline
	watch    Watchlist
	log      *logrus.Logger
	router   *gin.Engine
}

// NewServer wires the routes. watch may be nil, in which case the
// watchlist routes answer 503.
func NewServer(cfg types.ServerConfig, source MoleculeSource, pipeline *ingest.Pipeline, watch Watchlist, log *logrus.Logger) *Server {
	if log == nil {
		log = logging.Discard()
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestLogger(log))

	s := &Server{
		cfg:      cfg,
		source:   source,
		pipeline: pipeline,
		watch:    watch,
		log:      log,
		router:   router,
	}
	s.setupRoutes()
	return s
}

// Handler returns the router, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run listens until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	addr := s.cfg.Addr
	if addr == "" {
		addr = DefaultAddr
	}
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.WithField("addr", addr).Info("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	s.log.Info("http server shutting down")
	return srv.Shutdown(shutdownCtx)
}

func (s *Server) setupRoutes() {
	s.router.GET("/health", s.handleHealth)

	v1 := s.router.Group("/api/v1")
	{
		v1.GET("/molecules", s.handleListMolecules)
		v1.GET("/molecules/:id", s.handleGetMolecule)
		v1.GET("/normalize", s.handleNormalize)
		v1.POST("/score", s.handleScore)
		v1.POST("/refresh", s.handleRefresh)

		v1.GET("/watchlist", s.handleListWatch)
		v1.PUT("/watchlist/:id", s.handlePutWatch)
		v1.DELETE("/watchlist/:id", s.handleDeleteWatch)
	}
}

// requestLogger logs one line per request through logrus.
func requestLogger(log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.WithFields(logrus.Fields{
			"method":  c.Request.Method,
			"path":    c.Request.URL.Path,
			"status":  c.Writer.Status(),
			"latency": time.Since(start).String(),
		}).Debug("http request")
	}
}
