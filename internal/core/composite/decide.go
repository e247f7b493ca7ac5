package composite

// Decision thresholds.
const (
	// WordMatchCoverage is the coverage needed for the word-match shortcut.
	WordMatchCoverage = 0.99
	// WordMatchLengthRatio is the minimum guess/prompt token ratio for the shortcut.
	WordMatchLengthRatio = 0.8
	// SingleWordThreshold is the combined score needed for one-token prompts.
	SingleWordThreshold = 0.90
	// MultiWordCoverage is the coverage needed for multi-token prompts.
	MultiWordCoverage = 0.70
	// MultiWordThreshold is the combined score needed for multi-token prompts.
	MultiWordThreshold = 0.75
	// FallbackCoverage is the coverage needed when only coverage can be computed.
	FallbackCoverage = 0.90

	// Confidence reported by the shortcut rules.
	exactConfidence     = 1.0
	wordMatchConfidence = 0.98
)

// IsWordMatch reports whether the guess contains every prompt word and is
// long enough to skip semantic scoring.
func IsWordMatch(coverage float64, guessLen, promptLen int) bool {
	return coverage >= WordMatchCoverage &&
		float64(guessLen) >= WordMatchLengthRatio*float64(promptLen)
}

// Decide applies the combined-score thresholds. One-token prompts rely on the
// combined score alone; longer prompts also need enough word coverage.
func Decide(coverage, combined float64, promptLen int) bool {
	if promptLen == 1 {
		return combined >= SingleWordThreshold
	}
	return coverage >= MultiWordCoverage && combined >= MultiWordThreshold
}
