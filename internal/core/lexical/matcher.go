// Package lexical tokenizes normalized text and computes word-overlap
// similarity measures between a guess and a prompt.
package lexical

import (
	"strings"

	"github.com/baditaflorin/go_guess_similarity/internal/ports"
)

// BigramSize is the n-gram width used for phrase-level matching.
const BigramSize = 2

// Set is an unordered collection of distinct strings.
type Set map[string]struct{}

// NewSet builds a Set from items; duplicates collapse.
func NewSet(items []string) Set {
	s := make(Set, len(items))
	for _, item := range items {
		s[item] = struct{}{}
	}
	return s
}

// Has reports whether item is in s.
func (s Set) Has(item string) bool {
	_, ok := s[item]
	return ok
}

// Matcher tokenizes text with an injected normalizer.
type Matcher struct {
	normalizer ports.Normalizer
}

// NewMatcher creates a Matcher backed by normalizer.
func NewMatcher(normalizer ports.Normalizer) *Matcher {
	return &Matcher{normalizer: normalizer}
}

// Normalize returns the normalized form of text.
func (m *Matcher) Normalize(text string) string {
	return m.normalizer.Normalize(text)
}

// Tokenize normalizes text and splits it on spaces, dropping empty strings
// and stop words. Order is preserved; the result may be empty.
func (m *Matcher) Tokenize(text string) []string {
	return SplitTokens(m.normalizer.Normalize(text))
}

// SplitTokens tokenizes text that is already normalized.
func SplitTokens(normalized string) []string {
	parts := strings.Split(normalized, " ")
	tokens := make([]string, 0, len(parts))
	for _, p := range parts {
		if p == "" || IsStopWord(p) {
			continue
		}
		tokens = append(tokens, p)
	}
	return tokens
}

// NGrams returns the set of space-joined windows of n consecutive tokens.
// It is empty when there are fewer than n tokens.
func NGrams(tokens []string, n int) Set {
	if n <= 0 || len(tokens) < n {
		return Set{}
	}
	grams := make(Set, len(tokens)-n+1)
	for i := 0; i <= len(tokens)-n; i++ {
		grams[strings.Join(tokens[i:i+n], " ")] = struct{}{}
	}
	return grams
}

// Jaccard returns |a∩b| / |a∪b|. Two empty sets are identical (1.0); exactly
// one empty set shares nothing (0.0).
func Jaccard(a, b Set) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1.0
	}
	if len(a) == 0 || len(b) == 0 {
		return 0.0
	}

	small, large := a, b
	if len(small) > len(large) {
		small, large = large, small
	}
	intersection := 0
	for item := range small {
		if large.Has(item) {
			intersection++
		}
	}
	union := len(a) + len(b) - intersection
	return float64(intersection) / float64(union)
}

// Coverage returns the fraction of prompt tokens present in the guess token
// set. Duplicate prompt tokens count once each. An empty prompt is fully
// covered (1.0).
func Coverage(guessTokens, promptTokens []string) float64 {
	if len(promptTokens) == 0 {
		return 1.0
	}
	guessSet := NewSet(guessTokens)
	matched := 0
	for _, t := range promptTokens {
		if guessSet.Has(t) {
			matched++
		}
	}
	return float64(matched) / float64(len(promptTokens))
}
