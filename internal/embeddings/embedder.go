package embeddings

import "context"

// Embedder turns analysis text into vectors for the semantic search index.
type Embedder interface {
	// Embed generates one vector per input text, in order.
	Embed(ctx context.Context, texts []string) ([][]float32, error)

	// Dimensions returns the length of the vectors this embedder produces.
	Dimensions() int

	// Name identifies the underlying embedding model.
	Name() string
}
