package account

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gaeliza/gaeliza-api/internal/platform/logging"
	"github.com/gaeliza/gaeliza-api/internal/platform/resilience"
	"github.com/gaeliza/gaeliza-api/internal/usecase"
)

func newTestVerifier(t *testing.T, handler http.HandlerFunc) *Verifier {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewVerifier(VerifierConfig{
		BaseURL:  server.URL,
		Timeout:  2 * time.Second,
		CacheTTL: time.Minute,
		Logger:   logging.NewNop(),
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          true,
			FailureThreshold: 2,
			OpenTimeout:      time.Minute,
			HalfOpenMaxReq:   1,
		},
	})
}

func TestVerifier_VerifyCachesPrincipal(t *testing.T) {
	var calls atomic.Int32
	verifier := newTestVerifier(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		if r.Header.Get("Authorization") != "Bearer tok-1" {
			t.Errorf("unexpected authorization header %q", r.Header.Get("Authorization"))
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"active":true,"user_id":"user-7","username":"treixadura"}`))
	})

	for i := 0; i < 3; i++ {
		principal, err := verifier.Verify(t.Context(), "tok-1")
		if err != nil {
			t.Fatalf("verify failed: %v", err)
		}
		if principal.UserID != "user-7" || principal.Username != "treixadura" {
			t.Fatalf("unexpected principal %+v", principal)
		}
	}

	if got := calls.Load(); got != 1 {
		t.Fatalf("expected a single upstream call, got %d", got)
	}
}

func TestVerifier_VerifyRejected(t *testing.T) {
	verifier := newTestVerifier(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	if _, err := verifier.Verify(t.Context(), "bad"); !errors.Is(err, usecase.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestVerifier_VerifyInactiveToken(t *testing.T) {
	verifier := newTestVerifier(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"active":false}`))
	})

	if _, err := verifier.Verify(t.Context(), "stale"); !errors.Is(err, usecase.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestVerifier_CircuitOpensOnServerErrors(t *testing.T) {
	verifier := newTestVerifier(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	// Distinct tokens bypass the cache; two failures trip the breaker.
	for _, token := range []string{"t1", "t2"} {
		if _, err := verifier.Verify(t.Context(), token); !errors.Is(err, usecase.ErrDependencyUnavailable) {
			t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
		}
	}

	if _, err := verifier.Verify(t.Context(), "t3"); !errors.Is(err, usecase.ErrDependencyUnavailable) {
		t.Fatalf("open breaker should reject fast, got %v", err)
	}
}

func TestVerifier_EmptyToken(t *testing.T) {
	verifier := NewVerifier(VerifierConfig{BaseURL: "http://127.0.0.1:1"})
	if _, err := verifier.Verify(t.Context(), ""); !errors.Is(err, usecase.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for empty token, got %v", err)
	}
}
