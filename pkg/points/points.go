// Package points awards points for a correct guess from its semantic
// similarity, how quickly it was made and whether a human made it.
//
//	finalScore = round((round(similarity*100) + timeBonus) * multiplier)
//
// The time bonus is 20 points under 10 seconds, 10 under 30 seconds, 5 under
// the round length and 0 afterwards. Humans earn a 1.5x multiplier.
package points

import (
	"context"

	"go.opentelemetry.io/otel/metric"

	"github.com/baditaflorin/go_guess_similarity/internal/core/domain"
	corepoints "github.com/baditaflorin/go_guess_similarity/internal/core/points"
	"github.com/baditaflorin/go_guess_similarity/internal/observe"
)

// Result is the breakdown of a point award.
type Result = domain.PointsResult

// DefaultMaxTimeSeconds is the default round length.
const DefaultMaxTimeSeconds = 60

// Calculator computes point awards. It is safe for concurrent use.
type Calculator struct {
	calc    *corepoints.Calculator
	metrics *observe.Metrics
}

// Option defines a functional option for configuring a Calculator.
type Option func(*calculatorConfig)

type calculatorConfig struct {
	MaxTimeSeconds float64
	MeterProvider  metric.MeterProvider
}

// WithMaxTimeSeconds sets the round length. Guesses at or after it earn no
// time bonus.
func WithMaxTimeSeconds(seconds float64) Option {
	return func(cfg *calculatorConfig) {
		cfg.MaxTimeSeconds = seconds
	}
}

// WithMeterProvider records awarded points on mp.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(cfg *calculatorConfig) {
		cfg.MeterProvider = mp
	}
}

// New creates a Calculator.
func New(opts ...Option) (*Calculator, error) {
	config := &calculatorConfig{
		MaxTimeSeconds: corepoints.DefaultConfig().MaxTimeSeconds,
	}
	for _, opt := range opts {
		opt(config)
	}

	calc, err := corepoints.NewCalculator(corepoints.Config{MaxTimeSeconds: config.MaxTimeSeconds})
	if err != nil {
		return nil, err
	}

	c := &Calculator{calc: calc}
	if config.MeterProvider != nil {
		c.metrics, err = observe.NewMetrics(config.MeterProvider)
		if err != nil {
			return nil, err
		}
	}
	return c, nil
}

// ComputeFinalScore awards points for a guess. semanticScore is clamped to
// [0,1] and elapsedMs is the time since the round started.
func (c *Calculator) ComputeFinalScore(semanticScore float64, elapsedMs int64, isHuman bool) Result {
	result := c.calc.Compute(semanticScore, elapsedMs, isHuman)
	c.metrics.RecordPoints(context.Background(), result.FinalScore, isHuman)
	return result
}

var defaultCalculator, _ = New()

// ComputeFinalScore awards points using the default round length.
func ComputeFinalScore(semanticScore float64, elapsedMs int64, isHuman bool) Result {
	return defaultCalculator.ComputeFinalScore(semanticScore, elapsedMs, isHuman)
}
