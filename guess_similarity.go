// guess_similarity.go
// Package guesssimilarity decides whether a player's guess matches the prompt
// of a drawing-and-guessing round and awards points from a semantic
// similarity score.
//
// The helpers in this package use lexical signals only and a shared default
// scorer. Use pkg/guess to plug in an embedding model, metrics or a custom
// logger, and pkg/points to change the round length.
package guesssimilarity

import (
	"context"
	"sync"

	"github.com/baditaflorin/go_guess_similarity/pkg/guess"
	"github.com/baditaflorin/go_guess_similarity/pkg/points"
)

var (
	defaultScorer     *guess.Scorer
	defaultScorerErr  error
	defaultScorerOnce sync.Once
)

func scorer() (*guess.Scorer, error) {
	defaultScorerOnce.Do(func() {
		logger, err := newDefaultLogger()
		if err != nil {
			defaultScorerErr = err
			return
		}
		defaultScorer, defaultScorerErr = guess.New(guess.WithLogger(logger))
	})
	return defaultScorer, defaultScorerErr
}

// ScoreWithDefaults scores guess against prompt without semantic similarity.
func ScoreWithDefaults(guessText, prompt string) (guess.Verdict, error) {
	s, err := scorer()
	if err != nil {
		return guess.Verdict{}, err
	}
	return s.ScoreGuess(context.Background(), guessText, prompt), nil
}

// ComputeFinalScore awards points with the default 60 second round length.
// semanticScore is a semantic similarity in [0,1], such as the cosine of the
// guess and prompt embeddings; it is unrelated to Verdict.Similarity.
func ComputeFinalScore(semanticScore float64, elapsedMs int64, isHuman bool) points.Result {
	return points.ComputeFinalScore(semanticScore, elapsedMs, isHuman)
}
