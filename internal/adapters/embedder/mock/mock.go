// Package mock provides a test double for ports.Embedder.
//
// Use Embedder to return pre-canned vectors per text without a live model and
// to assert how many times, and with what text, the embedder was called.
//
//	e := &mock.Embedder{
//	    Vectors: map[string][]float64{"cat": {1, 0}, "kitten": {0.9, 0.1}},
//	}
//	vec, _ := e.Embed(ctx, "cat")
package mock

import (
	"context"
	"sync"

	"github.com/baditaflorin/go_guess_similarity/internal/ports"
)

var _ ports.Embedder = (*Embedder)(nil)

// EmbedCall records a single invocation of Embed.
type EmbedCall struct {
	Ctx  context.Context
	Text string
}

// Embedder is a mock implementation of ports.Embedder.
type Embedder struct {
	mu sync.Mutex

	// Vectors maps an input text to the vector returned for it.
	Vectors map[string][]float64

	// DefaultVector is returned for texts missing from Vectors.
	DefaultVector []float64

	// Err, if non-nil, is returned from every call.
	Err error

	// PanicValue, if non-nil, makes Embed panic with it.
	PanicValue any

	// Calls records every call to Embed.
	Calls []EmbedCall
}

// Embed records the call and returns the configured vector or error.
func (e *Embedder) Embed(ctx context.Context, text string) ([]float64, error) {
	e.mu.Lock()
	e.Calls = append(e.Calls, EmbedCall{Ctx: ctx, Text: text})
	panicValue := e.PanicValue
	err := e.Err
	vec, ok := e.Vectors[text]
	if !ok {
		vec = e.DefaultVector
	}
	e.mu.Unlock()

	if panicValue != nil {
		panic(panicValue)
	}
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(vec))
	copy(out, vec)
	return out, nil
}

// CallCount returns the number of Embed calls so far.
func (e *Embedder) CallCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.Calls)
}

// Texts returns the texts passed to Embed, in call order.
func (e *Embedder) Texts() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	texts := make([]string, len(e.Calls))
	for i, c := range e.Calls {
		texts[i] = c.Text
	}
	return texts
}

// Reset clears recorded calls.
func (e *Embedder) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.Calls = nil
}
