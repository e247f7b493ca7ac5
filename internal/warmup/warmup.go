package warmup

import (
	"context"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/baditaflorin/go_guess_similarity/internal/ports"
)

// WarmupConfig defines configuration for warming up the system
type WarmupConfig struct {
	// Number of concurrent warmup routines to run
	Concurrency int
	// Number of iterations per routine
	Iterations int
	// Warmup duration (0 means no time limit)
	Duration time.Duration
	// Whether to perform GC after warmup
	ForceGC bool
}

// DefaultWarmupConfig returns the default warmup configuration
func DefaultWarmupConfig() WarmupConfig {
	return WarmupConfig{
		Concurrency: runtime.NumCPU(),
		Iterations:  500,
		Duration:    2 * time.Second,
		ForceGC:     true,
	}
}

// Manager handles system warmup operations
type Manager struct {
	logger      ports.Logger
	scorers     []ports.GuessScorer
	normalizers []ports.Normalizer
	config      WarmupConfig
}

// NewManager creates a new warmup manager
func NewManager(logger ports.Logger, config WarmupConfig) *Manager {
	if config.Concurrency <= 0 {
		config.Concurrency = 1
	}
	return &Manager{
		logger: logger,
		config: config,
	}
}

// RegisterScorer adds a guess scorer to be warmed up. Register only scorers
// whose embedder is local: warmup calls them thousands of times.
func (wm *Manager) RegisterScorer(scorer ports.GuessScorer) {
	wm.scorers = append(wm.scorers, scorer)
}

// RegisterNormalizer adds a normalizer to be warmed up
func (wm *Manager) RegisterNormalizer(norm ports.Normalizer) {
	wm.normalizers = append(wm.normalizers, norm)
}

// WarmUp runs the warmup process for all registered components and returns
// the number of operations performed.
func (wm *Manager) WarmUp(ctx context.Context) int {
	startTime := time.Now()
	wm.logger.Info("Starting system warmup",
		"components", len(wm.scorers)+len(wm.normalizers),
		"concurrency", wm.config.Concurrency,
		"iterations", wm.config.Iterations,
	)

	warmupCtx := ctx
	if wm.config.Duration > 0 {
		var cancel context.CancelFunc
		warmupCtx, cancel = context.WithTimeout(ctx, wm.config.Duration)
		defer cancel()
	}

	ops := wm.run(warmupCtx, len(wm.normalizers) > 0, func(j int) {
		text := samplePairs[j%len(samplePairs)].guess
		for _, normalizer := range wm.normalizers {
			_ = normalizer.Normalize(text)
		}
	})

	ops += wm.run(warmupCtx, len(wm.scorers) > 0, func(j int) {
		pair := samplePairs[j%len(samplePairs)]
		for _, scorer := range wm.scorers {
			_ = scorer.ScoreGuess(warmupCtx, pair.guess, pair.prompt)
		}
	})

	if wm.config.ForceGC {
		wm.logger.Debug("Forcing garbage collection after warmup")
		runtime.GC()
	}

	wm.logger.Info("System warmup completed",
		"duration", time.Since(startTime),
		"operations", ops,
	)
	return ops
}

// run executes step Iterations times on each of Concurrency goroutines,
// stopping early when ctx ends.
func (wm *Manager) run(ctx context.Context, enabled bool, step func(j int)) int {
	if !enabled {
		return 0
	}

	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		total int
	)
	for i := 0; i < wm.config.Concurrency; i++ {
		wg.Add(1)
		go func(routineID int) {
			defer wg.Done()

			done := 0
			for j := 0; j < wm.config.Iterations; j++ {
				if ctx.Err() != nil {
					break
				}
				step(routineID + j)
				done++
			}

			mu.Lock()
			total += done
			mu.Unlock()
		}(i)
	}

	wg.Wait()
	return total
}

type pair struct {
	guess  string
	prompt string
}

// samplePairs covers every decision path: exact, word match and combined.
var samplePairs = []pair{
	{"A Cat", "a cat"},
	{"a very happy dog indeed", "happy dog"},
	{"big happy purple lizard", "big happy purple dragon"},
	{"Castle on a hill!", "castle"},
	{"", "sunset over the ocean"},
	{strings.Repeat("tree ", 20), "forest"},
}
