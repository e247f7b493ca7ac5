package guess

import (
	"github.com/baditaflorin/go_guess_similarity/internal/adapters/normalizer"
	"github.com/baditaflorin/go_guess_similarity/internal/core/composite"
	"github.com/baditaflorin/go_guess_similarity/internal/core/lexical"
)

// Set is an unordered collection of distinct tokens or n-grams.
type Set = lexical.Set

var defaultMatcher = lexical.NewMatcher(normalizer.NewDefaultNormalizer())

// Normalize lowercases text, strips everything but letters a-z, digits and
// whitespace, collapses whitespace and trims.
func Normalize(text string) string {
	return defaultMatcher.Normalize(text)
}

// Tokenize normalizes text and splits it into words, dropping stop words.
func Tokenize(text string) []string {
	return defaultMatcher.Tokenize(text)
}

// NGrams returns the set of n-token windows of tokens.
func NGrams(tokens []string, n int) Set {
	return lexical.NGrams(tokens, n)
}

// NewSet builds a Set from items.
func NewSet(items []string) Set {
	return lexical.NewSet(items)
}

// Jaccard returns the Jaccard similarity of two sets.
func Jaccard(a, b Set) float64 {
	return lexical.Jaccard(a, b)
}

// Coverage returns the fraction of prompt tokens present in the guess.
func Coverage(guessTokens, promptTokens []string) float64 {
	return lexical.Coverage(guessTokens, promptTokens)
}

// ComputeBreakdown combines already-tokenized texts with a semantic
// similarity in [0,1].
func ComputeBreakdown(guessTokens, promptTokens []string, semantic float64) Breakdown {
	return composite.ComputeBreakdown(guessTokens, promptTokens, semantic)
}
