package pipeline

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ppiankov/authlink/internal/cache"
	"github.com/ppiankov/authlink/internal/model"
)

func testConfig(endpoint string) *model.Config {
	cfg := model.DefaultConfig()
	cfg.HTTP.CheckRobots = false
	cfg.HTTP.RatePerHost = 1000
	cfg.HTTP.RateBurst = 100
	cfg.Cache.Enabled = false
	cfg.Sources.Endpoints = map[string]model.EndpointConfig{
		"EXAMPLE": {URL: endpoint + "/auth/{id}.rdf", Format: "rdfxml"},
	}
	return cfg
}

func TestFetch_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("User-Agent") == "" {
			t.Error("missing User-Agent header")
		}
		if !strings.Contains(r.Header.Get("Accept"), "application/rdf+xml") {
			t.Errorf("unexpected Accept header: %s", r.Header.Get("Accept"))
		}
		fmt.Fprint(w, "<rdf/>")
	}))
	defer server.Close()

	f, err := NewFetcher(testConfig(server.URL), nil)
	if err != nil {
		t.Fatal(err)
	}
	result, err := f.Fetch(context.Background(), model.AuthorityReference{SourceType: "EXAMPLE", ExternalID: "42"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(result.Data) != "<rdf/>" {
		t.Errorf("unexpected data: %q", result.Data)
	}
	if result.RetrievedAt.IsZero() || result.RetrievedAt.Location() != time.UTC {
		t.Errorf("retrieval timestamp wrong: %v", result.RetrievedAt)
	}
	if result.FromCache {
		t.Error("fresh fetch must not be marked cached")
	}
}

func TestFetch_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	f, err := NewFetcher(testConfig(server.URL), nil)
	if err != nil {
		t.Fatal(err)
	}
	_, err = f.Fetch(context.Background(), model.AuthorityReference{SourceType: "EXAMPLE", ExternalID: "42"})
	if err == nil {
		t.Fatal("expected error for missing record")
	}
	if model.KindOf(err) != model.KindFetch {
		t.Errorf("expected fetch kind, got %s", model.KindOf(err))
	}
	if !strings.Contains(err.Error(), "record not found") {
		t.Errorf("unexpected message: %v", err)
	}
}

func TestFetch_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	f, err := NewFetcher(testConfig(server.URL), nil)
	if err != nil {
		t.Fatal(err)
	}
	_, err = f.Fetch(context.Background(), model.AuthorityReference{SourceType: "EXAMPLE", ExternalID: "42"})
	if err == nil || model.KindOf(err) != model.KindFetch {
		t.Fatalf("expected fetch error, got %v", err)
	}
}

func TestFetch_UnknownEndpoint(t *testing.T) {
	f, err := NewFetcher(testConfig("http://unused.invalid"), nil)
	if err != nil {
		t.Fatal(err)
	}
	_, err = f.Fetch(context.Background(), model.AuthorityReference{SourceType: "NOWHERE", ExternalID: "1"})
	if err == nil || model.KindOf(err) != model.KindFetch {
		t.Fatalf("expected fetch error for missing endpoint, got %v", err)
	}
}

func TestFetch_Cached(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		fmt.Fprint(w, "<rdf/>")
	}))
	defer server.Close()

	store := cache.NewMemoryCache(time.Minute, time.Minute)
	f, err := NewFetcher(testConfig(server.URL), store)
	if err != nil {
		t.Fatal(err)
	}
	ref := model.AuthorityReference{SourceType: "EXAMPLE", ExternalID: "42"}

	first, err := f.Fetch(context.Background(), ref)
	if err != nil {
		t.Fatal(err)
	}
	second, err := f.Fetch(context.Background(), ref)
	if err != nil {
		t.Fatal(err)
	}
	if hits.Load() != 1 {
		t.Errorf("expected a single network fetch, got %d", hits.Load())
	}
	if !second.FromCache {
		t.Error("second fetch should come from cache")
	}
	if string(second.Data) != string(first.Data) {
		t.Error("cached data differs")
	}
	if !second.RetrievedAt.Equal(first.RetrievedAt) {
		t.Error("cached retrieval timestamp must be the original one")
	}
}

func TestFetch_BodyLimit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, strings.Repeat("x", 100))
	}))
	defer server.Close()

	cfg := testConfig(server.URL)
	cfg.HTTP.MaxBodyBytes = 10
	f, err := NewFetcher(cfg, nil)
	if err != nil {
		t.Fatal(err)
	}
	result, err := f.Fetch(context.Background(), model.AuthorityReference{SourceType: "EXAMPLE", ExternalID: "42"})
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Data) != 10 {
		t.Errorf("expected truncation at 10 bytes, got %d", len(result.Data))
	}
}

func TestNewFetcher_BadOverrideFormat(t *testing.T) {
	cfg := model.DefaultConfig()
	cfg.Sources.Endpoints = map[string]model.EndpointConfig{
		"EXAMPLE": {URL: "http://x/{id}", Format: "turtle"},
	}
	if _, err := NewFetcher(cfg, nil); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}
