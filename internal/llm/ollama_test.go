package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ppiankov/authlink/internal/model"
)

func TestOllamaProvider_Generate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/generate" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		var req ollamaRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.Model != "llama3" || req.Stream {
			t.Errorf("unexpected request: %+v", req)
		}
		if !strings.Contains(req.Prompt, "review note") {
			t.Errorf("prompt not forwarded: %q", req.Prompt)
		}
		fmt.Fprint(w, `{"response":"The record proposes two statements.","done":true}`)
	}))
	defer server.Close()

	p, err := newOllamaProvider(Config{Provider: "ollama", Model: "llama3", BaseURL: server.URL})
	if err != nil {
		t.Fatal(err)
	}
	out, err := p.Generate(context.Background(), buildPrompt(&model.ConversionResult{
		Authority: model.AuthorityReference{SourceType: model.SourceVIAF, ExternalID: "1"},
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "The record proposes two statements." {
		t.Errorf("unexpected output: %q", out)
	}
}

func TestOllamaProvider_Error(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"error":"model not found"}`)
	}))
	defer server.Close()

	p, err := newOllamaProvider(Config{Provider: "ollama", Model: "missing", BaseURL: server.URL})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := p.Generate(context.Background(), "prompt"); err == nil || !strings.Contains(err.Error(), "model not found") {
		t.Errorf("expected model error, got %v", err)
	}
}

func TestReviewer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"response":"  A short note.  ","done":true}`)
	}))
	defer server.Close()

	r, err := NewReviewer(Config{Provider: "ollama", Model: "llama3", BaseURL: server.URL})
	if err != nil {
		t.Fatal(err)
	}
	note, err := r.Review(context.Background(), &model.ConversionResult{
		Authority: model.AuthorityReference{SourceType: model.SourceVIAF, ExternalID: "1"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if note.Provider != "ollama" || note.Model != "llama3" {
		t.Errorf("note metadata wrong: %+v", note)
	}
	if note.Text != "A short note." {
		t.Errorf("text not trimmed: %q", note.Text)
	}
}
