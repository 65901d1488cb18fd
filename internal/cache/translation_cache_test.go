package cache

import (
	"strings"
	"testing"
)

func TestTranslationKey(t *testing.T) {
	t.Parallel()

	got := TranslationKey("  Guten Tag.  ", "DE", "EN")
	if got != "Guten Tag.:de:en" {
		t.Errorf("key = %q", got)
	}

	// Long inputs are capped so one rambling utterance cannot bloat keys.
	long := strings.Repeat("a", 500)
	capped := TranslationKey(long, "de", "en")
	if want := strings.Repeat("a", 100) + ":de:en"; capped != want {
		t.Errorf("capped key length = %d", len(capped))
	}
}

func TestTranslationCache_LRUEviction(t *testing.T) {
	t.Parallel()

	c, err := NewTranslationCache(2)
	if err != nil {
		t.Fatalf("NewTranslationCache failed: %v", err)
	}

	c.Add("a", "1")
	c.Add("b", "2")
	c.Add("c", "3") // evicts "a"

	if _, ok := c.Get("a"); ok {
		t.Error("oldest entry survived past capacity")
	}
	if v, ok := c.Get("b"); !ok || v != "2" {
		t.Errorf("entry b = %q, %v", v, ok)
	}
	if c.Len() != 2 {
		t.Errorf("cache size = %d, want 2", c.Len())
	}
}

func TestTranslationCache_GetRefreshesRecency(t *testing.T) {
	t.Parallel()

	c, err := NewTranslationCache(2)
	if err != nil {
		t.Fatalf("NewTranslationCache failed: %v", err)
	}

	c.Add("a", "1")
	c.Add("b", "2")
	c.Get("a")      // now "b" is the least recent
	c.Add("c", "3") // evicts "b"

	if _, ok := c.Get("a"); !ok {
		t.Error("recently used entry was evicted")
	}
	if _, ok := c.Get("b"); ok {
		t.Error("least recently used entry survived")
	}
}
