// Package semantic computes meaning-level similarity from embedding vectors.
package semantic

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrEmptyVector is returned when either vector has no components.
	ErrEmptyVector = errors.New("semantic: empty embedding vector")
	// ErrZeroVector is returned when either vector has zero magnitude.
	ErrZeroVector = errors.New("semantic: zero-magnitude embedding vector")
)

// Cosine returns the cosine similarity of a and b, in [-1,1].
func Cosine(a, b []float64) (float64, error) {
	if len(a) == 0 || len(b) == 0 {
		return 0, ErrEmptyVector
	}
	if len(a) != len(b) {
		return 0, fmt.Errorf("semantic: dimension mismatch %d != %d", len(a), len(b))
	}

	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0, ErrZeroVector
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB)), nil
}

// Clamp01 limits x to [0,1]. NaN maps to 0.
func Clamp01(x float64) float64 {
	if math.IsNaN(x) || x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
