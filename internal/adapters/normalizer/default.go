package normalizer

import (
	"strings"
	"unicode"

	"github.com/baditaflorin/go_guess_similarity/internal/ports"
)

// DefaultNormalizer implements the reference text normalization strategy.
type DefaultNormalizer struct{}

// NewDefaultNormalizer creates a new default normalizer.
func NewDefaultNormalizer() ports.Normalizer {
	return &DefaultNormalizer{}
}

// Normalize lowercases the text, drops every character outside [a-z0-9] and
// whitespace, collapses whitespace runs to a single space and trims the ends.
func (n *DefaultNormalizer) Normalize(text string) string {
	var sb strings.Builder
	sb.Grow(len(text))
	pendingSpace := false
	for _, r := range text {
		r = unicode.ToLower(r)
		switch {
		case isKept(r):
			if pendingSpace && sb.Len() > 0 {
				sb.WriteByte(' ')
			}
			pendingSpace = false
			sb.WriteRune(r)
		case unicode.IsSpace(r):
			pendingSpace = true
		}
	}
	return sb.String()
}

func isKept(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
}
