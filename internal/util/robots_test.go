package util

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func TestRobotsChecker_DisallowedPath(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/robots.txt" {
			t.Errorf("unexpected request path: %s", r.URL.Path)
		}
		fmt.Fprint(w, "User-agent: *\nDisallow: /private/\nCrawl-delay: 1\n")
	}))
	defer server.Close()

	c := NewRobotsChecker("authlink-test", 5*time.Second)

	allowed, delay, err := c.Allowed(context.Background(), server.URL+"/records/1.rdf")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !allowed {
		t.Error("expected allowed path")
	}
	if delay != time.Second {
		t.Errorf("expected 1s crawl delay, got %v", delay)
	}

	allowed, _, err = c.Allowed(context.Background(), server.URL+"/private/1.rdf")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if allowed {
		t.Error("expected disallowed path")
	}
}

func TestRobotsChecker_CachesPerHost(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		fmt.Fprint(w, "User-agent: *\nAllow: /\n")
	}))
	defer server.Close()

	c := NewRobotsChecker("authlink-test", 5*time.Second)
	for i := 0; i < 3; i++ {
		if _, _, err := c.Allowed(context.Background(), fmt.Sprintf("%s/records/%d.rdf", server.URL, i)); err != nil {
			t.Fatal(err)
		}
	}
	if hits.Load() != 1 {
		t.Errorf("expected a single robots.txt fetch, got %d", hits.Load())
	}
}

func TestRobotsChecker_UnreachableAllows(t *testing.T) {
	c := NewRobotsChecker("authlink-test", 100*time.Millisecond)
	allowed, _, err := c.Allowed(context.Background(), "http://127.0.0.1:1/records/1.rdf")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !allowed {
		t.Error("unreachable robots.txt must allow the fetch")
	}
}

func TestNewProxyFunc(t *testing.T) {
	proxy := NewProxyFunc("http://proxy.example:3128", "http://sproxy.example:3128")

	req, _ := http.NewRequest(http.MethodGet, "http://viaf.org/viaf/1", nil)
	u, err := proxy(req)
	if err != nil || u.Host != "proxy.example:3128" {
		t.Errorf("expected http proxy, got %v %v", u, err)
	}

	req, _ = http.NewRequest(http.MethodGet, "https://viaf.org/viaf/1", nil)
	u, err = proxy(req)
	if err != nil || u.Host != "sproxy.example:3128" {
		t.Errorf("expected https proxy, got %v %v", u, err)
	}
}
