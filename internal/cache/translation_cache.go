package cache

import (
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
)

// keyTextCap bounds the text portion of a cache key so long utterances
// cannot grow keys without limit.
const keyTextCap = 100

// TranslationKey builds the normalized cache key for one translation:
// trimmed text capped at keyTextCap bytes plus lower-cased language codes.
func TranslationKey(text, sourceLang, targetLang string) string {
	t := strings.TrimSpace(text)
	if len(t) > keyTextCap {
		t = t[:keyTextCap]
	}
	src := strings.ToLower(strings.TrimSpace(sourceLang))
	tgt := strings.ToLower(strings.TrimSpace(targetLang))
	return t + ":" + src + ":" + tgt
}

// TranslationCache memoizes translation results in-process. Capacity is
// fixed; overflow evicts the least-recently-used entry.
type TranslationCache struct {
	entries *lru.Cache[string, string]
}

func NewTranslationCache(size int) (*TranslationCache, error) {
	if size <= 0 {
		size = 1000
	}
	entries, err := lru.New[string, string](size)
	if err != nil {
		return nil, err
	}
	return &TranslationCache{entries: entries}, nil
}

func (c *TranslationCache) Get(key string) (string, bool) {
	return c.entries.Get(key)
}

func (c *TranslationCache) Add(key, value string) {
	c.entries.Add(key, value)
}

func (c *TranslationCache) Len() int {
	return c.entries.Len()
}
