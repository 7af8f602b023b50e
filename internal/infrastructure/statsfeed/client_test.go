package statsfeed

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/pondside/fantasy-hockey/internal/platform/logging"
	"github.com/pondside/fantasy-hockey/internal/platform/resilience"
	"github.com/pondside/fantasy-hockey/internal/usecase"
)

func newTestClient(baseURL string, maxRetries int, breaker resilience.CircuitBreakerConfig) *Client {
	return NewClient(ClientConfig{
		BaseURL:        baseURL,
		APIKey:         "test-key",
		Timeout:        2 * time.Second,
		MaxRetries:     maxRetries,
		Logger:         logging.NewNop(),
		CircuitBreaker: breaker,
	})
}

func TestGetDailyStatLineDecodesPayload(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/players/nhl-c-mcdavid/statlines/2024-01-05" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("X-Api-Key") != "test-key" {
			t.Errorf("missing api key header")
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"player_id":"nhl-c-mcdavid","date":"2024-01-05","goals":2,"assists":1,"shots_on_goal":8,"saves":0}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, 0, resilience.CircuitBreakerConfig{})

	line, found, err := c.GetDailyStatLine(context.Background(), "nhl-c-mcdavid", "2024-01-05")
	if err != nil {
		t.Fatalf("GetDailyStatLine returned error: %v", err)
	}
	if !found {
		t.Fatal("expected a stat line")
	}
	if line.Goals != 2 || line.Assists != 1 || line.ShotsOnGoal != 8 {
		t.Fatalf("decoded line = %+v", line)
	}
}

func TestGetDailyStatLineNotFoundIsNotAnError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "no line", http.StatusNotFound)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, 0, resilience.CircuitBreakerConfig{})

	_, found, err := c.GetDailyStatLine(context.Background(), "nhl-x", "2024-01-05")
	if err != nil {
		t.Fatalf("404 must map to found=false, got error: %v", err)
	}
	if found {
		t.Fatal("found = true for a 404")
	}
}

func TestAreGamesCompleteRetriesTransientFailures(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if hits.Add(1) == 1 {
			http.Error(w, "flaky", http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`{"date":"2024-01-05","games_complete":true}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, 2, resilience.CircuitBreakerConfig{})

	complete, err := c.AreGamesComplete(context.Background(), "2024-01-05")
	if err != nil {
		t.Fatalf("AreGamesComplete returned error: %v", err)
	}
	if !complete {
		t.Fatal("expected games complete after retry")
	}
	if hits.Load() != 2 {
		t.Fatalf("requests = %d, want 2", hits.Load())
	}
}

func TestCircuitBreakerRejectsAfterRepeatedFailures(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "down", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, 0, resilience.CircuitBreakerConfig{
		Enabled:          true,
		FailureThreshold: 2,
		OpenTimeout:      time.Minute,
		HalfOpenMaxReq:   1,
	})
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if _, err := c.AreGamesComplete(ctx, "2024-01-05"); err == nil {
			t.Fatal("expected failure from a 500 response")
		}
	}

	_, err := c.AreGamesComplete(ctx, "2024-01-05")
	if !errors.Is(err, usecase.ErrDependencyUnavailable) {
		t.Fatalf("error = %v, want ErrDependencyUnavailable once the breaker opens", err)
	}
}
