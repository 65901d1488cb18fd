package translate

import "context"

// Backend is one translation strategy. Backends are tried in a fixed
// priority order by the translation service; a failing backend just hands
// off to the next one. Implementations must be safe for concurrent use.
type Backend interface {
	Name() string
	Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error)
}
