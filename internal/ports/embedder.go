package ports

import "context"

// Embedder maps a text to a dense embedding vector.
//
// Implementations must be safe for concurrent use: the guess and the prompt
// are embedded in parallel.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float64, error)
}

// EmbedFunc adapts a plain function to the Embedder interface.
type EmbedFunc func(ctx context.Context, text string) ([]float64, error)

// Embed calls f(ctx, text).
func (f EmbedFunc) Embed(ctx context.Context, text string) ([]float64, error) {
	return f(ctx, text)
}
