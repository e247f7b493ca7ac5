// Package composite combines lexical and semantic signals into a single
// guess score and decides whether a guess is correct.
package composite

import (
	"math"

	"github.com/baditaflorin/go_guess_similarity/internal/core/domain"
	"github.com/baditaflorin/go_guess_similarity/internal/core/lexical"
)

// Signal weights. They sum to 1.0 and are part of game balance.
const (
	WeightCoverage      = 0.35
	WeightSemantic      = 0.30
	WeightUnigram       = 0.20
	WeightBigram        = 0.05
	WeightLengthPenalty = 0.10
)

// ComputeBreakdown scores already-tokenized guess and prompt with the given
// semantic similarity, which is expected in [0,1].
func ComputeBreakdown(guessTokens, promptTokens []string, semantic float64) domain.Breakdown {
	coverage := lexical.Coverage(guessTokens, promptTokens)
	unigram := lexical.Jaccard(lexical.NewSet(guessTokens), lexical.NewSet(promptTokens))
	bigram := lexical.Jaccard(
		lexical.NGrams(guessTokens, lexical.BigramSize),
		lexical.NGrams(promptTokens, lexical.BigramSize),
	)
	lengthPenalty := math.Sqrt(lengthRatio(len(guessTokens), len(promptTokens)))

	combined := WeightCoverage*coverage +
		WeightSemantic*semantic +
		WeightUnigram*unigram +
		WeightBigram*bigram +
		WeightLengthPenalty*lengthPenalty

	return domain.Breakdown{
		Coverage:      coverage,
		Semantic:      semantic,
		Unigram:       unigram,
		Bigram:        bigram,
		LengthPenalty: lengthPenalty,
		Combined:      combined,
	}
}

// lengthRatio is min(guess/prompt, 1); an empty prompt earns full credit.
func lengthRatio(guessLen, promptLen int) float64 {
	if promptLen == 0 {
		return 1
	}
	return math.Min(float64(guessLen)/float64(promptLen), 1)
}

// Round2 rounds x to two decimal places.
func Round2(x float64) float64 {
	return math.Round(x*100) / 100
}
