package lexical

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/baditaflorin/go_guess_similarity/internal/adapters/normalizer"
)

func newTestMatcher() *Matcher {
	return NewMatcher(normalizer.NewDefaultNormalizer())
}

func TestTokenize(t *testing.T) {
	m := newTestMatcher()

	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{"empty", "", []string{}},
		{"stop words only", "The and of it", []string{}},
		{"drops stop words keeps order", "A cat on the Mat", []string{"cat", "mat"}},
		{"keeps duplicates", "dog eat dog", []string{"dog", "eat", "dog"}},
		{"punctuation", "Happy, purple... dragon!", []string{"happy", "purple", "dragon"}},
		{"apostrophe joins", "it's a dog's life", []string{"its", "dogs", "life"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, m.Tokenize(tc.input))
		})
	}
}

func TestNGrams(t *testing.T) {
	tests := []struct {
		name     string
		tokens   []string
		n        int
		expected Set
	}{
		{"too few tokens", []string{"cat"}, 2, Set{}},
		{"empty", nil, 2, Set{}},
		{"exact size", []string{"happy", "dog"}, 2, NewSet([]string{"happy dog"})},
		{"sliding", []string{"big", "red", "barn"}, 2, NewSet([]string{"big red", "red barn"})},
		{"duplicate windows collapse", []string{"la", "la", "la"}, 2, NewSet([]string{"la la"})},
		{"unigrams", []string{"a", "b", "a"}, 1, NewSet([]string{"a", "b"})},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, NGrams(tc.tokens, tc.n))
		})
	}
}

func TestJaccard(t *testing.T) {
	a := NewSet([]string{"happy", "purple", "dragon"})

	assert.Equal(t, 1.0, Jaccard(a, a), "identical non-empty sets")
	assert.Equal(t, 1.0, Jaccard(Set{}, Set{}), "both empty")
	assert.Equal(t, 0.0, Jaccard(Set{}, a), "left empty")
	assert.Equal(t, 0.0, Jaccard(a, Set{}), "right empty")
	assert.Equal(t, 0.0, Jaccard(a, NewSet([]string{"cat"})), "disjoint")

	b := NewSet([]string{"happy", "green", "dragon"})
	assert.InDelta(t, 2.0/4.0, Jaccard(a, b), 1e-12)
	assert.Equal(t, Jaccard(a, b), Jaccard(b, a), "symmetric")
}

func TestCoverage(t *testing.T) {
	tests := []struct {
		name     string
		guess    []string
		prompt   []string
		expected float64
	}{
		{"empty prompt is fully covered", nil, nil, 1.0},
		{"empty prompt ignores guess", []string{"anything"}, []string{}, 1.0},
		{"empty guess", nil, []string{"cat"}, 0.0},
		{"full", []string{"very", "happy", "dog"}, []string{"happy", "dog"}, 1.0},
		{"partial", []string{"happy", "cat"}, []string{"happy", "dog"}, 0.5},
		{"duplicate prompt tokens count each time", []string{"dog"}, []string{"dog", "eat", "dog"}, 2.0 / 3.0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.expected, Coverage(tc.guess, tc.prompt), 1e-12)
		})
	}
}

func TestIsStopWord(t *testing.T) {
	for _, w := range []string{"a", "an", "the", "in", "on", "at", "to", "for", "of", "with", "by", "is", "it", "and", "or"} {
		assert.True(t, IsStopWord(w), w)
	}
	for _, w := range []string{"cat", "", "The", "be"} {
		assert.False(t, IsStopWord(w), w)
	}
}

func TestSplitTokensMatchesTokenize(t *testing.T) {
	m := newTestMatcher()
	text := "The Happy, Purple Dragon of Doom"
	assert.Equal(t, m.Tokenize(text), SplitTokens(m.Normalize(text)))
}
