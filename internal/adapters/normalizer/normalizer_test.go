package normalizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var normalizeCases = []struct {
	name     string
	input    string
	expected string
}{
	{"empty", "", ""},
	{"whitespace only", " \t\n  ", ""},
	{"lowercases", "A Cat", "a cat"},
	{"strips punctuation without splitting", "don't stop", "dont stop"},
	{"punctuation between spaces collapses", "hot - dog", "hot dog"},
	{"collapses whitespace", "  big \t\n  red   barn ", "big red barn"},
	{"keeps digits", "R2-D2 robot", "r2d2 robot"},
	{"drops accented letters", "Café crème", "caf crme"},
	{"non-breaking space is whitespace", "ice\u00a0cream", "ice cream"},
	{"kelvin sign lowercases to k", "\u212Aite", "kite"},
	{"emoji dropped", "🐱 cat!", "cat"},
	{"only punctuation", "?!...", ""},
}

func TestNormalizers(t *testing.T) {
	factory := NewNormalizerFactory()
	normalizers := map[string]NormalizerType{
		"default": DefaultNormalizerType,
		"pooled":  PooledNormalizerType,
	}

	for name, typ := range normalizers {
		n := factory.CreateNormalizer(typ)
		t.Run(name, func(t *testing.T) {
			for _, tc := range normalizeCases {
				t.Run(tc.name, func(t *testing.T) {
					got := n.Normalize(tc.input)
					assert.Equal(t, tc.expected, got)
					assert.Equal(t, got, n.Normalize(got), "normalization must be idempotent")
				})
			}
		})
	}
}

func TestPooledMatchesDefault(t *testing.T) {
	def := NewDefaultNormalizer()
	pooled := NewPooledNormalizer()

	inputs := []string{
		"The Quick Brown Fox!",
		"   leading and trailing   ",
		"mixed ÅSCII and ünïcödé",
		"tabs\tand\nnewlines\r\n",
		"a b　c",
		"100% Pure-Bred DOG",
	}
	for _, in := range inputs {
		assert.Equal(t, def.Normalize(in), pooled.Normalize(in), "input %q", in)
	}
}

func TestPooledNormalizerReusesBuffers(t *testing.T) {
	n := NewPooledNormalizer()

	// A long input followed by a short one must not leak bytes from the first.
	_ = n.Normalize("a very long sentence about purple dragons flying over castles")
	assert.Equal(t, "cat", n.Normalize("Cat"))
}

// Whitespace is unicode.IsSpace. Format characters such as the byte order
// mark and zero-width space are not whitespace and are dropped.
func TestWhitespaceSet(t *testing.T) {
	factory := NewNormalizerFactory()

	separators := []rune{' ', '\t', '\n', '\v', '\f', '\r', '\u0085', '\u00a0', '\u2003', '\u2028', '\u3000'}
	joiners := []rune{'\ufeff', '\u200b', '\u200d'}

	for _, typ := range []NormalizerType{DefaultNormalizerType, PooledNormalizerType} {
		n := factory.CreateNormalizer(typ)
		for _, r := range separators {
			assert.Equal(t, "ice cream", n.Normalize("ice"+string(r)+"cream"), "type %d: %U separates", typ, r)
		}
		for _, r := range joiners {
			assert.Equal(t, "icecream", n.Normalize("ice"+string(r)+"cream"), "type %d: %U is dropped", typ, r)
		}
	}
}
