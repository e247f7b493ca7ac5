package normalizer

import "github.com/baditaflorin/go_guess_similarity/internal/ports"

// NormalizerFactory creates the appropriate normalizer based on performance requirements
type NormalizerFactory struct{}

// NewNormalizerFactory creates a new normalizer factory
func NewNormalizerFactory() *NormalizerFactory {
	return &NormalizerFactory{}
}

// NormalizerType selects a normalizer implementation.
type NormalizerType int

const (
	// DefaultNormalizerType is the reference rune-by-rune normalizer
	DefaultNormalizerType NormalizerType = iota
	// PooledNormalizerType uses an ASCII lookup table and pooled buffers
	PooledNormalizerType
)

// CreateNormalizer creates a normalizer of the specified type
func (f *NormalizerFactory) CreateNormalizer(normalizerType NormalizerType) ports.Normalizer {
	switch normalizerType {
	case PooledNormalizerType:
		return NewPooledNormalizer()
	default:
		return NewDefaultNormalizer()
	}
}
