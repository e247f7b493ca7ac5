package normalizer

import (
	"unicode"

	"github.com/baditaflorin/go_guess_similarity/internal/pool"
	"github.com/baditaflorin/go_guess_similarity/internal/ports"
)

// ASCII decision classes.
const (
	classDrop byte = iota
	classKeep
	classLower
	classSpace
)

// PooledNormalizer produces the same output as DefaultNormalizer using a
// precomputed ASCII decision table and pooled output buffers.
type PooledNormalizer struct {
	asciiTable [128]byte
	bytePool   *pool.BufferPool
}

// NewPooledNormalizer creates a new pooled normalizer.
func NewPooledNormalizer() ports.Normalizer {
	n := &PooledNormalizer{
		bytePool: pool.NewBufferPool(256),
	}

	for i := 0; i < 128; i++ {
		r := rune(i)
		switch {
		case isKept(r):
			n.asciiTable[i] = classKeep
		case r >= 'A' && r <= 'Z':
			n.asciiTable[i] = classLower
		case unicode.IsSpace(r):
			n.asciiTable[i] = classSpace
		default:
			n.asciiTable[i] = classDrop
		}
	}

	return n
}

// Normalize implements ports.Normalizer.
func (n *PooledNormalizer) Normalize(text string) string {
	if len(text) == 0 {
		return ""
	}

	buffer := n.bytePool.Get()
	defer n.bytePool.Put(buffer)

	if cap(*buffer) < len(text) {
		*buffer = make([]byte, 0, len(text))
	}

	pendingSpace := false
	emit := func(b byte) {
		if pendingSpace && len(*buffer) > 0 {
			*buffer = append(*buffer, ' ')
		}
		pendingSpace = false
		*buffer = append(*buffer, b)
	}

	for _, r := range text {
		if r >= 128 {
			// Some non-ASCII runes lowercase into ASCII (e.g. KELVIN SIGN -> 'k').
			lower := unicode.ToLower(r)
			if lower >= 128 {
				if unicode.IsSpace(r) {
					pendingSpace = true
				}
				continue
			}
			r = lower
		}

		b := byte(r)
		switch n.asciiTable[b] {
		case classKeep:
			emit(b)
		case classLower:
			emit(b + ('a' - 'A'))
		case classSpace:
			pendingSpace = true
		}
	}

	return string(*buffer)
}
