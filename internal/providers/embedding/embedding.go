package embedding

import "context"

// Embedder turns text into the dense vector used for knowledge search.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}
