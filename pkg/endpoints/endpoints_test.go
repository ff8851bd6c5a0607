package endpoints

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestChecker_Check(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/health":
			w.WriteHeader(http.StatusOK)
		case "/broken":
			w.WriteHeader(http.StatusInternalServerError)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	checker := &Checker{Workers: 2}
	urls := []string{
		srv.URL + "/health",
		srv.URL + "/broken",
		srv.URL + "/missing",
	}

	results := checker.Check(context.Background(), urls)
	if len(results) != 3 {
		t.Fatalf("len(results) = %d, want 3", len(results))
	}

	// Results come back in input order regardless of worker scheduling.
	for i, r := range results {
		if r.URL != urls[i] {
			t.Errorf("result %d URL = %s, want %s", i, r.URL, urls[i])
		}
	}

	if !results[0].OK || results[0].Status != 200 {
		t.Errorf("health = %+v, want OK 200", results[0])
	}
	if results[1].OK || results[1].Status != 500 {
		t.Errorf("broken = %+v, want not-OK 500", results[1])
	}
	if results[2].OK || results[2].Status != 404 {
		t.Errorf("missing = %+v, want not-OK 404", results[2])
	}
}

func TestChecker_UnreachableHost(t *testing.T) {
	checker := &Checker{Timeout: 2 * time.Second}
	results := checker.Check(context.Background(), []string{"http://127.0.0.1:1/nope"})

	if len(results) != 1 {
		t.Fatalf("len(results) = %d, want 1", len(results))
	}
	r := results[0]
	if r.OK {
		t.Error("OK = true for an unreachable host")
	}
	if r.Error == "" {
		t.Error("Error should carry the transport failure")
	}
}

func TestChecker_BoundedParallelism(t *testing.T) {
	var active, peak int64
	var mu sync.Mutex

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt64(&active, 1)
		mu.Lock()
		if n > peak {
			peak = n
		}
		mu.Unlock()
		time.Sleep(20 * time.Millisecond)
		atomic.AddInt64(&active, -1)
	}))
	defer srv.Close()

	checker := &Checker{Workers: 2}
	urls := make([]string, 10)
	for i := range urls {
		urls[i] = srv.URL
	}
	checker.Check(context.Background(), urls)

	mu.Lock()
	defer mu.Unlock()
	if peak > 2 {
		t.Errorf("peak concurrency = %d, want at most 2", peak)
	}
}
