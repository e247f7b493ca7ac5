package semantic

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCosine(t *testing.T) {
	tests := []struct {
		name     string
		a, b     []float64
		expected float64
	}{
		{"identical", []float64{1, 2, 3}, []float64{1, 2, 3}, 1},
		{"scaled", []float64{1, 2, 3}, []float64{2, 4, 6}, 1},
		{"orthogonal", []float64{1, 0}, []float64{0, 1}, 0},
		{"opposite", []float64{1, 0}, []float64{-1, 0}, -1},
		{"sixty degrees", []float64{1, 0}, []float64{0.5, math.Sqrt(0.75)}, 0.5},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Cosine(tc.a, tc.b)
			require.NoError(t, err)
			assert.InDelta(t, tc.expected, got, 1e-9)
		})
	}
}

func TestCosineErrors(t *testing.T) {
	_, err := Cosine(nil, []float64{1})
	assert.ErrorIs(t, err, ErrEmptyVector)

	_, err = Cosine([]float64{0, 0}, []float64{1, 1})
	assert.ErrorIs(t, err, ErrZeroVector)

	_, err = Cosine([]float64{1, 2}, []float64{1, 2, 3})
	assert.Error(t, err)
}

func TestClamp01(t *testing.T) {
	assert.Equal(t, 0.0, Clamp01(-0.3))
	assert.Equal(t, 0.0, Clamp01(math.NaN()))
	assert.Equal(t, 1.0, Clamp01(1.2))
	assert.Equal(t, 0.42, Clamp01(0.42))
}
