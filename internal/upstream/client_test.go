package upstream

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"
)

type recordingCollector struct {
	mu        sync.Mutex
	operation string
	attempts  int
	reports   int
}

func (c *recordingCollector) ReportFailure(operation string, attempts int, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.operation = operation
	c.attempts = attempts
	c.reports++
}

func newTestClient(t *testing.T, url string) (*Client, *recordingCollector) {
	t.Helper()

	collector := &recordingCollector{}
	client, err := New(Config{
		BaseURL:       url,
		AccessToken:   "test-token",
		Timeout:       2 * time.Second,
		BackoffBase:   time.Millisecond,
		BackoffJitter: time.Millisecond,
	}, collector, zap.NewNop().Sugar())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	return client, collector
}

func TestDo_RetriesServerErrorsThenSucceeds(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`{"locations":[{"id":"LOC1","name":"Downtown"}]}`))
	}))
	defer srv.Close()

	client, collector := newTestClient(t, srv.URL)

	locations, err := client.ListLocations(context.Background())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if calls != 3 {
		t.Fatalf("expected 3 attempts, got %d", calls)
	}
	if len(locations) != 1 || locations[0].ID != "LOC1" {
		t.Fatalf("unexpected locations: %+v", locations)
	}
	if collector.reports != 0 {
		t.Fatalf("expected no exhaustion report on success")
	}
}

func TestDo_ClientErrorIsTerminal(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client, _ := newTestClient(t, srv.URL)

	_, err := client.ListLocations(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	if calls != 1 {
		t.Fatalf("expected exactly 1 attempt for 4xx, got %d", calls)
	}

	var clientErr *ClientError
	if !errors.As(err, &clientErr) {
		t.Fatalf("expected ClientError, got %T: %v", err, err)
	}
	if clientErr.Status != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", clientErr.Status)
	}
}

func TestDo_ExhaustionReportsToCollector(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client, collector := newTestClient(t, srv.URL)

	_, err := client.ListLocations(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	if calls != 3 {
		t.Fatalf("expected 3 attempts, got %d", calls)
	}
	if collector.reports != 1 {
		t.Fatalf("expected 1 exhaustion report, got %d", collector.reports)
	}
	if collector.operation != "list-locations" || collector.attempts != 3 {
		t.Fatalf("unexpected report: %s/%d", collector.operation, collector.attempts)
	}

	var serverErr *ServerError
	if !errors.As(err, &serverErr) {
		t.Fatalf("expected wrapped ServerError, got %v", err)
	}
}

func TestDo_MissingExpectedFieldIsNotRetried(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Write([]byte(`{"unexpected":true}`))
	}))
	defer srv.Close()

	client, _ := newTestClient(t, srv.URL)

	_, err := client.ListLocations(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	if calls != 1 {
		t.Fatalf("expected 1 attempt for validation failure, got %d", calls)
	}

	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected ValidationError, got %T: %v", err, err)
	}
	if len(validationErr.Missing) != 1 || validationErr.Missing[0] != "locations" {
		t.Fatalf("unexpected missing fields: %v", validationErr.Missing)
	}
}

func TestDo_NetworkErrorIsRetried(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse all connections

	client, collector := newTestClient(t, srv.URL)

	_, err := client.ListLocations(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	if collector.reports != 1 || collector.attempts != 3 {
		t.Fatalf("expected exhaustion report after 3 attempts, got %d/%d", collector.reports, collector.attempts)
	}

	var netErr *NetworkError
	if !errors.As(err, &netErr) {
		t.Fatalf("expected wrapped NetworkError, got %v", err)
	}
}
