package domain

// Method names the rule that produced a Verdict.
type Method string

const (
	// MethodExact means the normalized guess equals the normalized prompt.
	MethodExact Method = "exact"
	// MethodWordMatch means every prompt token appears in a long enough guess.
	MethodWordMatch Method = "word_match"
	// MethodCombined means the weighted lexical and semantic score decided.
	MethodCombined Method = "combined"
	// MethodFallback means the combined pipeline failed and coverage alone decided.
	MethodFallback Method = "fallback"
)

// Breakdown holds the individual similarity signals, each in [0,1], and
// their weighted combination.
type Breakdown struct {
	Coverage      float64 `json:"coverage"`
	Semantic      float64 `json:"semantic"`
	Unigram       float64 `json:"unigram"`
	Bigram        float64 `json:"bigram"`
	LengthPenalty float64 `json:"length_penalty"`
	Combined      float64 `json:"combined"`
}

// Verdict is the outcome of a correctness decision.
type Verdict struct {
	IsCorrect bool `json:"is_correct"`
	// Similarity is rounded to two decimal places.
	Similarity float64 `json:"similarity"`
	Method     Method  `json:"method"`
	// Breakdown is only set for MethodCombined.
	Breakdown *Breakdown `json:"breakdown,omitempty"`
}

// PointsResult is the outcome of the point formula.
type PointsResult struct {
	BaseScore  int     `json:"base_score"`
	TimeBonus  int     `json:"time_bonus"`
	Multiplier float64 `json:"multiplier"`
	FinalScore int     `json:"final_score"`
}
