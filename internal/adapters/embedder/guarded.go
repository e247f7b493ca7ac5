package embedder

import (
	"context"
	"errors"

	"github.com/baditaflorin/go_guess_similarity/internal/ports"
	"github.com/baditaflorin/go_guess_similarity/internal/resilience"
)

var _ ports.Embedder = (*Guarded)(nil)

// Guarded wraps an Embedder with a circuit breaker so that a provider which
// keeps failing is skipped immediately with resilience.ErrCircuitOpen.
type Guarded struct {
	inner   ports.Embedder
	breaker *resilience.CircuitBreaker
}

// NewGuarded wraps inner with breaker.
func NewGuarded(inner ports.Embedder, breaker *resilience.CircuitBreaker) *Guarded {
	return &Guarded{inner: inner, breaker: breaker}
}

// Embed implements ports.Embedder. Failures caused by the caller's context
// ending are returned but not counted against the provider.
func (g *Guarded) Embed(ctx context.Context, text string) ([]float64, error) {
	var (
		vec      []float64
		embedErr error
	)
	err := g.breaker.Execute(func() error {
		vec, embedErr = g.inner.Embed(ctx, text)
		if embedErr != nil && ctx.Err() != nil {
			return resilience.ErrNotRecorded
		}
		return embedErr
	})
	if errors.Is(err, resilience.ErrNotRecorded) {
		return nil, embedErr
	}
	if err != nil {
		return nil, err
	}
	return vec, nil
}
