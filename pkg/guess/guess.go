// Package guess decides whether a free-text guess matches a target prompt in
// a drawing-and-guessing game.
//
// A guess is scored in three steps, stopping at the first that applies:
//
//  1. exact: the normalized guess equals the normalized prompt.
//  2. word_match: every prompt word appears in a guess at least 80% as long
//     as the prompt.
//  3. combined: a weighted blend of word coverage, semantic similarity from an
//     embedding model, unigram and bigram Jaccard similarity and a length
//     penalty, checked against fixed thresholds.
//
// Embedding failures never surface as errors; the guess is scored with zero
// semantic similarity instead.
package guess

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/baditaflorin/l"
	"go.opentelemetry.io/otel/metric"

	"github.com/baditaflorin/go_guess_similarity/internal/adapters/embedder"
	"github.com/baditaflorin/go_guess_similarity/internal/adapters/logger"
	"github.com/baditaflorin/go_guess_similarity/internal/adapters/normalizer"
	"github.com/baditaflorin/go_guess_similarity/internal/core/composite"
	"github.com/baditaflorin/go_guess_similarity/internal/core/domain"
	"github.com/baditaflorin/go_guess_similarity/internal/observe"
	"github.com/baditaflorin/go_guess_similarity/internal/ports"
	"github.com/baditaflorin/go_guess_similarity/internal/resilience"
	"github.com/baditaflorin/go_guess_similarity/internal/warmup"
)

type (
	// Verdict is the outcome of ScoreGuess.
	Verdict = domain.Verdict
	// Breakdown holds the individual similarity signals.
	Breakdown = domain.Breakdown
	// Method names the rule that produced a Verdict.
	Method = domain.Method
	// Embedder maps text to an embedding vector.
	Embedder = ports.Embedder
	// EmbedFunc adapts a function to Embedder.
	EmbedFunc = ports.EmbedFunc
	// Normalizer normalizes raw text before tokenization.
	Normalizer = ports.Normalizer
	// WarmupConfig configures warm-up.
	WarmupConfig = warmup.WarmupConfig
)

// Decision methods.
const (
	MethodExact     = domain.MethodExact
	MethodWordMatch = domain.MethodWordMatch
	MethodCombined  = domain.MethodCombined
	MethodFallback  = domain.MethodFallback
)

// OpenAIConfig configures the OpenAI embeddings backend.
type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration
}

// BreakerConfig configures the circuit breaker placed in front of the embedder.
type BreakerConfig struct {
	MaxFailures  int
	ResetTimeout time.Duration
	// HalfOpenMax is the number of successful probe calls needed to close
	// the breaker again. Each guess embeds two texts, so the default is 2.
	HalfOpenMax int
}

// DefaultBreakerHalfOpenMax lets both embeddings of one guess probe a
// recovering provider.
const DefaultBreakerHalfOpenMax = 2

// Scorer scores guesses against prompts. It is safe for concurrent use.
type Scorer struct {
	scorer     *composite.Scorer
	logger     ports.Logger
	normalizer ports.Normalizer
	warmed     atomic.Bool
}

// Option defines a functional option for configuring a Scorer.
type Option func(*scorerConfig)

type scorerConfig struct {
	Logger        ports.Logger
	Normalizer    ports.Normalizer
	Embedder      ports.Embedder
	OpenAI        *OpenAIConfig
	Breaker       *BreakerConfig
	MeterProvider metric.MeterProvider
	Metrics       *observe.Metrics
	WarmUp        bool
	WarmUpConfig  warmup.WarmupConfig
}

// WithLogger sets a custom logger.
func WithLogger(lg l.Logger) Option {
	return func(cfg *scorerConfig) {
		cfg.Logger = logger.FromExisting(lg)
	}
}

// WithNormalizer sets a custom normalizer.
func WithNormalizer(n Normalizer) Option {
	return func(cfg *scorerConfig) {
		cfg.Normalizer = n
	}
}

// WithPooledNormalizer selects the table-driven normalizer with pooled buffers.
func WithPooledNormalizer() Option {
	return func(cfg *scorerConfig) {
		cfg.Normalizer = normalizer.NewNormalizerFactory().CreateNormalizer(normalizer.PooledNormalizerType)
	}
}

// WithEmbedder sets the embedding backend used for semantic similarity.
func WithEmbedder(e Embedder) Option {
	return func(cfg *scorerConfig) {
		cfg.Embedder = e
	}
}

// WithEmbedFunc sets a plain function as the embedding backend.
func WithEmbedFunc(f func(ctx context.Context, text string) ([]float64, error)) Option {
	return WithEmbedder(EmbedFunc(f))
}

// WithOpenAI uses the OpenAI embeddings API as the embedding backend.
func WithOpenAI(c OpenAIConfig) Option {
	return func(cfg *scorerConfig) {
		cfg.OpenAI = &c
	}
}

// WithCircuitBreaker guards the embedding backend with a circuit breaker.
func WithCircuitBreaker(c BreakerConfig) Option {
	return func(cfg *scorerConfig) {
		cfg.Breaker = &c
	}
}

// WithMeterProvider records scoring metrics on mp.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(cfg *scorerConfig) {
		cfg.MeterProvider = mp
	}
}

// WithDefaultMetrics records scoring metrics on the global meter provider.
func WithDefaultMetrics() Option {
	return func(cfg *scorerConfig) {
		cfg.Metrics = observe.DefaultMetrics()
	}
}

// WithWarmUp enables warm-up on initialization.
func WithWarmUp(enable bool) Option {
	return func(cfg *scorerConfig) {
		cfg.WarmUp = enable
	}
}

// WithWarmUpConfig sets a custom warm-up configuration and enables warm-up.
func WithWarmUpConfig(config WarmupConfig) Option {
	return func(cfg *scorerConfig) {
		cfg.WarmUpConfig = config
		cfg.WarmUp = true
	}
}

// New creates a Scorer. Without an embedder every guess is scored lexically.
func New(opts ...Option) (*Scorer, error) {
	config := &scorerConfig{
		WarmUpConfig: warmup.DefaultWarmupConfig(),
	}
	for _, opt := range opts {
		opt(config)
	}

	if config.Logger == nil {
		var err error
		config.Logger, err = logger.NewStdLogger()
		if err != nil {
			return nil, err
		}
	}

	if config.Normalizer == nil {
		config.Normalizer = normalizer.NewDefaultNormalizer()
	}

	if config.OpenAI != nil {
		if config.Embedder != nil {
			return nil, errors.New("guess: WithOpenAI and WithEmbedder are mutually exclusive")
		}
		oa, err := embedder.NewOpenAI(config.OpenAI.APIKey, config.OpenAI.Model,
			embedder.WithBaseURL(config.OpenAI.BaseURL),
			embedder.WithTimeout(config.OpenAI.Timeout),
		)
		if err != nil {
			return nil, err
		}
		config.Embedder = oa
	}

	if config.Breaker != nil && config.Embedder != nil {
		halfOpenMax := config.Breaker.HalfOpenMax
		if halfOpenMax <= 0 {
			halfOpenMax = DefaultBreakerHalfOpenMax
		}
		breaker := resilience.NewCircuitBreaker(resilience.Config{
			Name:         "embedder",
			MaxFailures:  config.Breaker.MaxFailures,
			ResetTimeout: config.Breaker.ResetTimeout,
			HalfOpenMax:  halfOpenMax,
		}, config.Logger)
		config.Embedder = embedder.NewGuarded(config.Embedder, breaker)
	}

	if config.MeterProvider != nil {
		m, err := observe.NewMetrics(config.MeterProvider)
		if err != nil {
			return nil, err
		}
		config.Metrics = m
	}

	scorer, err := composite.NewScorer(config.Normalizer, config.Embedder, config.Logger, config.Metrics)
	if err != nil {
		return nil, err
	}

	s := &Scorer{
		scorer:     scorer,
		logger:     config.Logger,
		normalizer: config.Normalizer,
	}

	if config.WarmUp {
		s.WarmUp(context.Background(), config.WarmUpConfig)
	}

	return s, nil
}

// ScoreGuess decides whether guess matches prompt.
func (s *Scorer) ScoreGuess(ctx context.Context, guess, prompt string) Verdict {
	return s.scorer.ScoreGuess(ctx, guess, prompt)
}

// Breakdown computes every similarity signal without the exact and
// word-match shortcuts.
func (s *Scorer) Breakdown(ctx context.Context, guess, prompt string) Breakdown {
	return s.scorer.Breakdown(ctx, guess, prompt)
}

// WarmUp exercises the normalizer and a lexical-only copy of the scorer. The
// configured embedder is never called. Only the first call does any work.
func (s *Scorer) WarmUp(ctx context.Context, config WarmupConfig) {
	if !s.warmed.CompareAndSwap(false, true) {
		s.logger.Debug("System already warmed up, skipping")
		return
	}

	lexicalOnly, err := composite.NewScorer(s.normalizer, nil, logger.NewNopLogger(), nil)
	if err != nil {
		s.logger.Error("Could not build warm-up scorer", "error", err)
		s.warmed.Store(false)
		return
	}

	warmupMgr := warmup.NewManager(s.logger, config)
	warmupMgr.RegisterNormalizer(s.normalizer)
	warmupMgr.RegisterScorer(lexicalOnly)

	warmupMgr.WarmUp(ctx)
}
