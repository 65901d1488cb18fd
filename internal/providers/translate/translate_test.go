package translate

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func TestDeepL_Translate(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "DeepL-Auth-Key test-key" {
			t.Errorf("auth header = %q", got)
		}
		if err := r.ParseForm(); err != nil {
			t.Fatalf("parse form: %v", err)
		}
		if got := r.PostForm.Get("source_lang"); got != "DE" {
			t.Errorf("source_lang = %q", got)
		}
		if got := r.PostForm.Get("target_lang"); got != "EN" {
			t.Errorf("target_lang = %q", got)
		}
		w.Write([]byte(`{"translations":[{"text":"Good day."}]}`))
	}))
	defer srv.Close()

	d := NewDeepL("test-key")
	d.endpoint = srv.URL

	out, err := d.Translate(context.Background(), "Guten Tag.", "de", "en")
	if err != nil {
		t.Fatalf("Translate failed: %v", err)
	}
	if out != "Good day." {
		t.Errorf("translation = %q", out)
	}
}

func TestDeepL_AutoSourceOmitted(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Fatalf("parse form: %v", err)
		}
		if _, ok := r.PostForm["source_lang"]; ok {
			t.Error("source_lang sent for auto detection")
		}
		w.Write([]byte(`{"translations":[{"text":"Good day."}]}`))
	}))
	defer srv.Close()

	d := NewDeepL("test-key")
	d.endpoint = srv.URL

	if _, err := d.Translate(context.Background(), "Guten Tag.", "auto", "en"); err != nil {
		t.Fatalf("Translate failed: %v", err)
	}
}

func TestDeepL_NonOKStatusIsError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"quota exceeded"}`, http.StatusTooManyRequests)
	}))
	defer srv.Close()

	d := NewDeepL("test-key")
	d.endpoint = srv.URL

	if _, err := d.Translate(context.Background(), "Guten Tag.", "de", "en"); err == nil {
		t.Fatal("expected error on 429")
	}
}

func TestGoogleTranslate_Translate(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("key") != "test-key" || q.Get("q") != "Guten Tag." {
			t.Errorf("query = %v", q)
		}
		if q.Get("source") != "de" || q.Get("target") != "en" {
			t.Errorf("languages = %q -> %q", q.Get("source"), q.Get("target"))
		}
		w.Write([]byte(`{"data":{"translations":[{"translatedText":"Good day."}]}}`))
	}))
	defer srv.Close()

	g := NewGoogleTranslate("test-key")
	g.endpoint = srv.URL

	out, err := g.Translate(context.Background(), "Guten Tag.", "de", "en")
	if err != nil {
		t.Fatalf("Translate failed: %v", err)
	}
	if out != "Good day." {
		t.Errorf("translation = %q", out)
	}
}

func TestDictionary_KnownPhrase(t *testing.T) {
	t.Parallel()

	d := NewDictionary(DefaultPhrases())

	out, err := d.Translate(context.Background(), "Die Kaution beträgt 6 Monatsmieten.", "de", "en")
	if err != nil {
		t.Fatalf("Translate failed: %v", err)
	}
	if out != "The security deposit is 6 months' rent." {
		t.Errorf("translation = %q", out)
	}
}

func TestDictionary_MissIsError(t *testing.T) {
	t.Parallel()

	d := NewDictionary(DefaultPhrases())
	if _, err := d.Translate(context.Background(), "Unbekannter Satz.", "de", "en"); err == nil {
		t.Fatal("expected error for unknown phrase")
	}
}

func TestLoadDictionary_FromFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "phrases.json")
	body := `[{"text":"Hallo.","from":"de","to":"en","translated":"Hello."}]`
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write phrasebook: %v", err)
	}

	d, err := LoadDictionary(path)
	if err != nil {
		t.Fatalf("LoadDictionary failed: %v", err)
	}
	out, err := d.Translate(context.Background(), "Hallo.", "DE", "EN")
	if err != nil {
		t.Fatalf("Translate failed: %v", err)
	}
	if out != "Hello." {
		t.Errorf("translation = %q", out)
	}
}
