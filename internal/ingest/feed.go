// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ingest fetches the remote molecule feed, decodes its accepted
// shapes and turns raw records into ranked molecule profiles. Cache shares
// one in-flight fetch across concurrent callers.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"

	"github.com/pdiddy/diligence-engine/internal/httputil"
	"github.com/pdiddy/diligence-engine/internal/logging"
	"github.com/pdiddy/diligence-engine/pkg/types"
)

// Fetcher retrieves the raw feed payload.
type Fetcher interface {
	Fetch(ctx context.Context) ([]byte, error)
}

// FetchError is the typed failure returned for every unsuccessful fetch.
type FetchError struct {
	Message string
	// StatusCode is the HTTP status when the feed answered, else 0.
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *FetchError) Unwrap() error { return e.Err }

// asFetchError returns err unchanged when it already is a *FetchError and
// wraps it otherwise.
func asFetchError(err error) *FetchError {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe
	}
	return &FetchError{Message: "fetching feed", Err: err}
}

// Breaker defaults applied when the config leaves them zero.
const (
	DefaultConsecutiveFailures = 5
	DefaultOpenTimeout         = 30 * time.Second
)

// FeedClient fetches the molecule feed over HTTP behind a circuit breaker.
// It issues exactly one request per Fetch; retries are the caller's choice.
type FeedClient struct {
	Client *http.Client

	cfg     types.FeedConfig
	breaker *gobreaker.CircuitBreaker
	log     *logrus.Logger
}

// NewFeedClient returns a client for cfg.URL. A nil log discards output.
func NewFeedClient(cfg types.FeedConfig, log *logrus.Logger) *FeedClient {
	if log == nil {
		log = logging.Discard()
	}
	trip := cfg.Breaker.ConsecutiveFailures
	if trip == 0 {
		trip = DefaultConsecutiveFailures
	}
	open := cfg.Breaker.OpenTimeout
	if open <= 0 {
		open = DefaultOpenTimeout
	}

	c := &FeedClient{Client: &http.Client{}, cfg: cfg, log: log}
	c.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "feed",
		MaxRequests: 1,
		Timeout:     open,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= trip
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.WithFields(logrus.Fields{
				"breaker": name,
				"from":    from.String(),
				"to":      to.String(),
			}).Warn("circuit breaker state changed")
		},
	})
	return c
}

// BreakerState reports the circuit breaker's current state.
func (c *FeedClient) BreakerState() gobreaker.State {
	return c.breaker.State()
}

// Fetch performs one GET against the feed URL.
func (c *FeedClient) Fetch(ctx context.Context) ([]byte, error) {
	if c.cfg.URL == "" {
		return nil, &FetchError{Message: "feed url is not configured"}
	}

	out, err := c.breaker.Execute(func() (interface{}, error) {
		return httputil.GetBody(ctx, c.Client, c.cfg.URL, httputil.Options{
			UserAgent:   c.cfg.UserAgent,
			BearerToken: c.cfg.Token,
		})
	})
	if err != nil {
		return nil, c.fetchError(err)
	}
	return out.([]byte), nil
}

func (c *FeedClient) fetchError(err error) *FetchError {
	var se *httputil.StatusError
	switch {
	case errors.As(err, &se):
		return &FetchError{Message: fmt.Sprintf("feed returned HTTP %d", se.StatusCode), StatusCode: se.StatusCode, Err: err}
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		return &FetchError{Message: "feed circuit breaker open", Err: err}
	case errors.Is(err, context.DeadlineExceeded):
		return &FetchError{Message: "feed fetch timed out", Err: err}
	default:
		return &FetchError{Message: "fetching feed", Err: err}
	}
}
