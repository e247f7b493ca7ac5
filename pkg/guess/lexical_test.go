package guess

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	assert.Equal(t, "hello world", Normalize("  Hello,   WORLD!! "))
	assert.Equal(t, "", Normalize("?!"))
}

func TestTokenize(t *testing.T) {
	assert.Equal(t, []string{"cat", "hat"}, Tokenize("The cat in the hat"))
	assert.Empty(t, Tokenize("the of and"))
}

func TestLexicalHelpers(t *testing.T) {
	guessTokens := Tokenize("big happy purple lizard")
	promptTokens := Tokenize("big happy purple dragon")

	assert.Equal(t, 0.75, Coverage(guessTokens, promptTokens))
	assert.InDelta(t, 0.6, Jaccard(NewSet(guessTokens), NewSet(promptTokens)), 1e-12)
	assert.InDelta(t, 0.5, Jaccard(NGrams(guessTokens, 2), NGrams(promptTokens, 2)), 1e-12)

	b := ComputeBreakdown(guessTokens, promptTokens, 0)
	assert.InDelta(t, 0.5075, b.Combined, 1e-12)
}

func TestComputeBreakdownLengthPenalty(t *testing.T) {
	b := ComputeBreakdown([]string{"cat"}, []string{"cat", "hat", "bat", "mat"}, 0)
	assert.InDelta(t, math.Sqrt(0.25), b.LengthPenalty, 1e-12)
}
