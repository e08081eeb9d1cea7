// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package httputil

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetBody_Success(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		assert.Equal(t, "diligence-engine/test", r.Header.Get("User-Agent"))
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		w.Write([]byte(`[{"nct_id":"NCT1"}]`))
	}))
	defer ts.Close()

	body, err := GetBody(context.Background(), ts.Client(), ts.URL, Options{UserAgent: "diligence-engine/test", BearerToken: "tok"})
	require.NoError(t, err)
	assert.JSONEq(t, `[{"nct_id":"NCT1"}]`, string(body))
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestGetBody_NoAuthorizationWithoutToken(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		w.Write([]byte(`{}`))
	}))
	defer ts.Close()

	_, err := GetBody(context.Background(), ts.Client(), ts.URL, Options{})
	require.NoError(t, err)
}

func TestGetBody_StatusErrorDoesNotRetry(t *testing.T) {
	for _, code := range []int{http.StatusTooManyRequests, http.StatusInternalServerError, http.StatusNotFound} {
		t.Run(http.StatusText(code), func(t *testing.T) {
			var calls int32
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				atomic.AddInt32(&calls, 1)
				http.Error(w, "feed unavailable", code)
			}))
			defer ts.Close()

			_, err := GetBody(context.Background(), ts.Client(), ts.URL, Options{})
			require.Error(t, err)

			var se *StatusError
			require.True(t, errors.As(err, &se))
			assert.Equal(t, code, se.StatusCode)
			assert.Equal(t, "feed unavailable", se.Snippet)
			assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
		})
	}
}

func TestGetBody_BodyTooLarge(t *testing.T) {
	old := MaxBodyBytes
	MaxBodyBytes = 8
	defer func() { MaxBodyBytes = old }()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`[1,2,3,4,5,6,7,8,9]`))
	}))
	defer ts.Close()

	_, err := GetBody(context.Background(), ts.Client(), ts.URL, Options{})
	assert.ErrorContains(t, err, "exceeds 8 bytes")
}

func TestGetBody_ContextCancelled(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer ts.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := GetBody(ctx, ts.Client(), ts.URL, Options{})
	assert.ErrorIs(t, err, context.Canceled)
}
