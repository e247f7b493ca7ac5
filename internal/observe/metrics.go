// Package observe holds the OpenTelemetry metric instruments recorded while
// scoring guesses.
//
// Tests should build a Metrics with NewMetrics over a private MeterProvider;
// production code can use DefaultMetrics, which binds to the global provider.
// A nil *Metrics is valid and records nothing.
package observe

import (
	"context"
	"strconv"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "github.com/baditaflorin/go_guess_similarity"

// Metrics holds all instruments for the scoring engine.
type Metrics struct {
	// Scores counts correctness decisions by method and outcome.
	Scores metric.Int64Counter

	// Fallbacks counts decisions that fell back to coverage-only scoring.
	Fallbacks metric.Int64Counter

	// EmbeddingFailures counts embedding lookups that degraded to zero similarity.
	EmbeddingFailures metric.Int64Counter

	// EmbeddingDuration tracks the latency of the parallel embedding step.
	EmbeddingDuration metric.Float64Histogram

	// PointsAwarded tracks final point values produced by the point formula.
	PointsAwarded metric.Int64Histogram
}

var latencyBuckets = []float64{
	0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10,
}

var pointsBuckets = []float64{
	0, 25, 50, 75, 100, 125, 150, 180,
}

// NewMetrics creates all instruments on the given MeterProvider.
func NewMetrics(mp metric.MeterProvider) (*Metrics, error) {
	m := mp.Meter(meterName)
	var err error
	met := &Metrics{}

	if met.Scores, err = m.Int64Counter("guess.scores",
		metric.WithDescription("Guess correctness decisions by method and outcome."),
	); err != nil {
		return nil, err
	}
	if met.Fallbacks, err = m.Int64Counter("guess.fallbacks",
		metric.WithDescription("Decisions that fell back to coverage-only scoring."),
	); err != nil {
		return nil, err
	}
	if met.EmbeddingFailures, err = m.Int64Counter("guess.embedding.failures",
		metric.WithDescription("Embedding lookups that failed and were scored as zero similarity."),
	); err != nil {
		return nil, err
	}
	if met.EmbeddingDuration, err = m.Float64Histogram("guess.embedding.duration",
		metric.WithDescription("Latency of the parallel guess/prompt embedding step."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(latencyBuckets...),
	); err != nil {
		return nil, err
	}
	if met.PointsAwarded, err = m.Int64Histogram("guess.points.awarded",
		metric.WithDescription("Final points awarded per scored guess."),
		metric.WithExplicitBucketBoundaries(pointsBuckets...),
	); err != nil {
		return nil, err
	}

	return met, nil
}

var (
	defaultMetrics     *Metrics
	defaultMetricsOnce sync.Once
)

// DefaultMetrics returns a package-level Metrics bound to otel.GetMeterProvider.
// Panics if instrument creation fails.
func DefaultMetrics() *Metrics {
	defaultMetricsOnce.Do(func() {
		var err error
		defaultMetrics, err = NewMetrics(otel.GetMeterProvider())
		if err != nil {
			panic("observe: failed to create default metrics: " + err.Error())
		}
	})
	return defaultMetrics
}

// RecordScore counts one correctness decision.
func (m *Metrics) RecordScore(ctx context.Context, method string, correct bool) {
	if m == nil {
		return
	}
	m.Scores.Add(ctx, 1, metric.WithAttributes(
		attribute.String("method", method),
		attribute.String("correct", strconv.FormatBool(correct)),
	))
}

// RecordFallback counts one coverage-only fallback decision.
func (m *Metrics) RecordFallback(ctx context.Context) {
	if m == nil {
		return
	}
	m.Fallbacks.Add(ctx, 1)
}

// RecordEmbedding records the embedding step latency and, on failure, bumps
// the failure counter.
func (m *Metrics) RecordEmbedding(ctx context.Context, seconds float64, failed bool) {
	if m == nil {
		return
	}
	m.EmbeddingDuration.Record(ctx, seconds,
		metric.WithAttributes(attribute.String("status", status(failed))))
	if failed {
		m.EmbeddingFailures.Add(ctx, 1)
	}
}

// RecordPoints records a final point value.
func (m *Metrics) RecordPoints(ctx context.Context, finalScore int, human bool) {
	if m == nil {
		return
	}
	m.PointsAwarded.Record(ctx, int64(finalScore),
		metric.WithAttributes(attribute.Bool("human", human)))
}

func status(failed bool) string {
	if failed {
		return "error"
	}
	return "ok"
}
