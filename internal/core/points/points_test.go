package points

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baditaflorin/go_guess_similarity/internal/core/domain"
)

func newDefaultCalculator(t *testing.T) *Calculator {
	t.Helper()
	c, err := NewCalculator(DefaultConfig())
	require.NoError(t, err)
	return c
}

func TestCompute(t *testing.T) {
	c := newDefaultCalculator(t)

	tests := []struct {
		name      string
		semantic  float64
		elapsedMs int64
		isHuman   bool
		expected  domain.PointsResult
	}{
		{
			name:      "fast model guess",
			semantic:  0.8,
			elapsedMs: 9999,
			expected:  domain.PointsResult{BaseScore: 80, TimeBonus: 20, Multiplier: 1.0, FinalScore: 100},
		},
		{
			name:      "fast human guess",
			semantic:  0.8,
			elapsedMs: 9999,
			isHuman:   true,
			expected:  domain.PointsResult{BaseScore: 80, TimeBonus: 20, Multiplier: 1.5, FinalScore: 150},
		},
		{
			name:      "slow guess",
			semantic:  0.5,
			elapsedMs: 45000,
			expected:  domain.PointsResult{BaseScore: 50, TimeBonus: 5, Multiplier: 1.0, FinalScore: 55},
		},
		{
			name:      "out of time",
			semantic:  0.5,
			elapsedMs: 65000,
			expected:  domain.PointsResult{BaseScore: 50, TimeBonus: 0, Multiplier: 1.0, FinalScore: 50},
		},
		{
			name:      "human rounding",
			semantic:  0.33,
			elapsedMs: 20000,
			isHuman:   true,
			// round((33 + 10) * 1.5) = round(64.5) = 65
			expected: domain.PointsResult{BaseScore: 33, TimeBonus: 10, Multiplier: 1.5, FinalScore: 65},
		},
		{
			name:      "out of range similarity is clamped",
			semantic:  1.7,
			elapsedMs: 0,
			expected:  domain.PointsResult{BaseScore: 100, TimeBonus: 20, Multiplier: 1.0, FinalScore: 120},
		},
		{
			name:      "negative similarity is clamped",
			semantic:  -0.2,
			elapsedMs: 61000,
			isHuman:   true,
			expected:  domain.PointsResult{BaseScore: 0, TimeBonus: 0, Multiplier: 1.5, FinalScore: 0},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, c.Compute(tc.semantic, tc.elapsedMs, tc.isHuman))
		})
	}
}

func TestTimeBonusBoundaries(t *testing.T) {
	c := newDefaultCalculator(t)

	tests := []struct {
		elapsedMs int64
		expected  int
	}{
		{-500, 20},
		{0, 20},
		{9999, 20},
		{10000, 10},
		{29999, 10},
		{30000, 5},
		{59999, 5},
		{60000, 0},
		{600000, 0},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.expected, c.TimeBonus(tc.elapsedMs), "elapsed %dms", tc.elapsedMs)
	}
}

func TestCustomMaxTime(t *testing.T) {
	c, err := NewCalculator(Config{MaxTimeSeconds: 90})
	require.NoError(t, err)

	assert.Equal(t, 5, c.TimeBonus(75000))
	assert.Equal(t, 0, c.TimeBonus(90000))
}

func TestShortMaxTimeStillHonoursFastTiers(t *testing.T) {
	c, err := NewCalculator(Config{MaxTimeSeconds: 20})
	require.NoError(t, err)

	assert.Equal(t, 10, c.TimeBonus(25000))
}

func TestConfigValidate(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())
	assert.Error(t, Config{MaxTimeSeconds: 0}.Validate())
	assert.Error(t, Config{MaxTimeSeconds: -5}.Validate())

	_, err := NewCalculator(Config{})
	assert.Error(t, err)
}
