// Package points turns a semantic similarity, the time a guess took and the
// guesser's role into a point award.
package points

import (
	"errors"
	"math"

	"github.com/baditaflorin/go_guess_similarity/internal/core/domain"
	"github.com/baditaflorin/go_guess_similarity/internal/core/semantic"
)

// Time bonus tiers, in seconds and points.
const (
	FastSeconds   = 10
	FastBonus     = 20
	MediumSeconds = 30
	MediumBonus   = 10
	SlowBonus     = 5

	// HumanMultiplier rewards human guessers over AI models.
	HumanMultiplier = 1.5
	modelMultiplier = 1.0
)

// Config holds configuration for the points calculator.
type Config struct {
	// MaxTimeSeconds is the round length; guesses at or after it earn no time bonus.
	MaxTimeSeconds float64
}

// DefaultConfig returns a default configuration.
func DefaultConfig() Config {
	return Config{
		MaxTimeSeconds: 60,
	}
}

// Validate checks if the configuration is valid.
func (c Config) Validate() error {
	if c.MaxTimeSeconds <= 0 || math.IsNaN(c.MaxTimeSeconds) {
		return errors.New("maxTimeSeconds must be greater than 0")
	}
	return nil
}

// Calculator computes point awards.
type Calculator struct {
	config Config
}

// NewCalculator creates a new points calculator.
func NewCalculator(config Config) (*Calculator, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &Calculator{config: config}, nil
}

// Compute awards points for a guess with the given semantic similarity,
// elapsed time in milliseconds and guesser role. semanticScore is clamped to
// [0,1]; negative elapsed time counts as zero.
func (c *Calculator) Compute(semanticScore float64, elapsedMs int64, isHuman bool) domain.PointsResult {
	baseScore := int(math.Round(semantic.Clamp01(semanticScore) * 100))
	timeBonus := c.TimeBonus(elapsedMs)

	multiplier := modelMultiplier
	if isHuman {
		multiplier = HumanMultiplier
	}

	return domain.PointsResult{
		BaseScore:  baseScore,
		TimeBonus:  timeBonus,
		Multiplier: multiplier,
		FinalScore: int(math.Round(float64(baseScore+timeBonus) * multiplier)),
	}
}

// TimeBonus returns the bonus tier for elapsedMs. Each tier is
// strictly-less-than its upper bound.
func (c *Calculator) TimeBonus(elapsedMs int64) int {
	seconds := math.Max(float64(elapsedMs)/1000, 0)
	switch {
	case seconds < FastSeconds:
		return FastBonus
	case seconds < MediumSeconds:
		return MediumBonus
	case seconds < c.config.MaxTimeSeconds:
		return SlowBonus
	default:
		return 0
	}
}
