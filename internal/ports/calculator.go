package ports

import (
	"context"

	"github.com/baditaflorin/go_guess_similarity/internal/core/domain"
)

// GuessScorer decides whether a free-text guess matches a target prompt.
type GuessScorer interface {
	ScoreGuess(ctx context.Context, guess, prompt string) domain.Verdict
}
