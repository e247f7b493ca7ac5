package composite

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/baditaflorin/go_guess_similarity/internal/core/domain"
	"github.com/baditaflorin/go_guess_similarity/internal/core/lexical"
	"github.com/baditaflorin/go_guess_similarity/internal/core/semantic"
	"github.com/baditaflorin/go_guess_similarity/internal/observe"
	"github.com/baditaflorin/go_guess_similarity/internal/ports"
)

var _ ports.GuessScorer = (*Scorer)(nil)

// Scorer decides whether a guess matches a prompt.
//
// A Scorer holds no per-call state and is safe for concurrent use as long as
// its normalizer and embedder are.
type Scorer struct {
	matcher  *lexical.Matcher
	embedder ports.Embedder
	logger   ports.Logger
	metrics  *observe.Metrics
}

// NewScorer creates a Scorer. embedder and metrics may be nil: without an
// embedder every guess is scored with zero semantic similarity.
func NewScorer(normalizer ports.Normalizer, embedder ports.Embedder, logger ports.Logger, metrics *observe.Metrics) (*Scorer, error) {
	if normalizer == nil {
		return nil, errors.New("composite: normalizer must not be nil")
	}
	if logger == nil {
		return nil, errors.New("composite: logger must not be nil")
	}

	return &Scorer{
		matcher:  lexical.NewMatcher(normalizer),
		embedder: embedder,
		logger:   logger,
		metrics:  metrics,
	}, nil
}

// ScoreGuess decides whether guess matches prompt. It never fails: embedding
// errors score as zero semantic similarity and any panic in the pipeline
// degrades to the coverage-only fallback.
func (s *Scorer) ScoreGuess(ctx context.Context, guess, prompt string) (verdict domain.Verdict) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("Guess scoring failed, falling back to coverage",
				"panic", r,
			)
			verdict = s.fallback(ctx, guess, prompt)
		}
		s.metrics.RecordScore(ctx, string(verdict.Method), verdict.IsCorrect)
	}()

	return s.score(ctx, guess, prompt)
}

func (s *Scorer) score(ctx context.Context, guess, prompt string) domain.Verdict {
	normalizedGuess := s.matcher.Normalize(guess)
	normalizedPrompt := s.matcher.Normalize(prompt)

	if normalizedGuess == normalizedPrompt {
		s.logger.Debug("Exact guess match", "prompt", prompt)
		return domain.Verdict{
			IsCorrect:  true,
			Similarity: exactConfidence,
			Method:     domain.MethodExact,
		}
	}

	guessTokens := lexical.SplitTokens(normalizedGuess)
	promptTokens := lexical.SplitTokens(normalizedPrompt)

	coverage := lexical.Coverage(guessTokens, promptTokens)
	if IsWordMatch(coverage, len(guessTokens), len(promptTokens)) {
		s.logger.Debug("Word match", "prompt", prompt, "guess", guess)
		return domain.Verdict{
			IsCorrect:  true,
			Similarity: wordMatchConfidence,
			Method:     domain.MethodWordMatch,
		}
	}

	sim := s.semanticSimilarity(ctx, guess, prompt)
	breakdown := ComputeBreakdown(guessTokens, promptTokens, sim)
	correct := Decide(breakdown.Coverage, breakdown.Combined, len(promptTokens))

	s.logger.Debug("Combined guess score",
		"prompt", prompt,
		"guess", guess,
		"combined", breakdown.Combined,
		"correct", correct,
	)

	return domain.Verdict{
		IsCorrect:  correct,
		Similarity: Round2(breakdown.Combined),
		Method:     domain.MethodCombined,
		Breakdown:  &breakdown,
	}
}

// Breakdown computes every signal for guess and prompt without the exact and
// word-match shortcuts. Useful for inspecting why a guess scored as it did.
func (s *Scorer) Breakdown(ctx context.Context, guess, prompt string) domain.Breakdown {
	guessTokens := s.matcher.Tokenize(guess)
	promptTokens := s.matcher.Tokenize(prompt)
	return ComputeBreakdown(guessTokens, promptTokens, s.semanticSimilarity(ctx, guess, prompt))
}

// semanticSimilarity embeds guess and prompt concurrently and returns their
// cosine similarity clamped to [0,1], or 0 when embedding is unavailable.
func (s *Scorer) semanticSimilarity(ctx context.Context, guess, prompt string) float64 {
	if s.embedder == nil {
		return 0
	}

	start := time.Now()
	sim, err := s.embedPair(ctx, guess, prompt)
	s.metrics.RecordEmbedding(ctx, time.Since(start).Seconds(), err != nil)
	if err != nil {
		s.logger.Warn("Embedding failed, scoring lexically", "error", err)
		return 0
	}
	return semantic.Clamp01(sim)
}

// embedPair embeds both texts concurrently. A failure on one side does not
// cancel the other: each call runs to completion so that a guarded embedder
// records every outcome, including half-open probes.
func (s *Scorer) embedPair(ctx context.Context, guess, prompt string) (float64, error) {
	var (
		g                   errgroup.Group
		guessVec, promptVec []float64
	)
	g.Go(func() error {
		var err error
		guessVec, err = s.embed(ctx, guess)
		return err
	})
	g.Go(func() error {
		var err error
		promptVec, err = s.embed(ctx, prompt)
		return err
	})
	if err := g.Wait(); err != nil {
		return 0, err
	}

	return semantic.Cosine(guessVec, promptVec)
}

func (s *Scorer) embed(ctx context.Context, text string) (vec []float64, err error) {
	defer func() {
		if r := recover(); r != nil {
			vec, err = nil, fmt.Errorf("embedder panicked: %v", r)
		}
	}()

	vec, err = s.embedder.Embed(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("embed: %w", err)
	}
	return vec, nil
}

// fallback decides on prompt coverage alone. Each side is tokenized on its
// own so one failing side does not prevent a decision.
func (s *Scorer) fallback(ctx context.Context, guess, prompt string) domain.Verdict {
	s.metrics.RecordFallback(ctx)

	promptTokens, ok := s.safeTokenize(prompt)
	if !ok {
		// Vacuous coverage is not awarded when the prompt itself is unusable.
		return domain.Verdict{Method: domain.MethodFallback}
	}
	guessTokens, _ := s.safeTokenize(guess)

	coverage := lexical.Coverage(guessTokens, promptTokens)
	return domain.Verdict{
		IsCorrect:  coverage >= FallbackCoverage,
		Similarity: Round2(coverage),
		Method:     domain.MethodFallback,
	}
}

func (s *Scorer) safeTokenize(text string) (tokens []string, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("Tokenization failed", "panic", r)
			tokens, ok = nil, false
		}
	}()
	return s.matcher.Tokenize(text), true
}
