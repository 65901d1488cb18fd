package embedding

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestGemini_Embed(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "text-embedding-004:embedContent") {
			t.Errorf("path = %q", r.URL.Path)
		}
		if r.URL.Query().Get("key") != "test-key" {
			t.Errorf("key = %q", r.URL.Query().Get("key"))
		}
		var req embedRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if len(req.Content.Parts) != 1 || req.Content.Parts[0].Text != "deposit rules" {
			t.Errorf("request content = %+v", req.Content)
		}
		w.Write([]byte(`{"embedding":{"values":[0.1,0.2,0.3]}}`))
	}))
	defer srv.Close()

	g := NewGemini("test-key", "")
	g.base = srv.URL

	vec, err := g.Embed(context.Background(), "deposit rules")
	if err != nil {
		t.Fatalf("Embed failed: %v", err)
	}
	if len(vec) != 3 || vec[0] != 0.1 {
		t.Errorf("vector = %v", vec)
	}
}

func TestGemini_EmptyEmbeddingIsError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"embedding":{"values":[]}}`))
	}))
	defer srv.Close()

	g := NewGemini("test-key", "")
	g.base = srv.URL

	if _, err := g.Embed(context.Background(), "deposit rules"); err == nil {
		t.Fatal("expected error for empty embedding")
	}
}

func TestGemini_ErrorStatus(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"invalid key"}}`, http.StatusForbidden)
	}))
	defer srv.Close()

	g := NewGemini("bad-key", "")
	g.base = srv.URL

	if _, err := g.Embed(context.Background(), "deposit rules"); err == nil {
		t.Fatal("expected error on 403")
	}
}
