package workload

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfig_Validate(t *testing.T) {
	t.Run("should accept default configuration", func(t *testing.T) {
		cfg := DefaultConfig()
		assert.NoError(t, cfg.Validate())
	})

	t.Run("should renormalize weights that do not sum to one", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Weights = ScoreWeights{Backlog: 1, Urgency: 1, TaskCount: 1, Capacity: 1}

		err := cfg.Validate()

		assert.NoError(t, err)
		assert.InDelta(t, 0.25, cfg.Weights.Backlog, 0.001)
		assert.InDelta(t, 0.25, cfg.Weights.Urgency, 0.001)
		assert.InDelta(t, 0.25, cfg.Weights.TaskCount, 0.001)
		assert.InDelta(t, 0.25, cfg.Weights.Capacity, 0.001)
	})

	t.Run("should reject non-positive weight sum", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Weights = ScoreWeights{}

		assert.Error(t, cfg.Validate())
	})

	t.Run("should reject non-positive daily target", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.DefaultDailyHoursTarget = 0

		assert.Error(t, cfg.Validate())
	})
}

func TestConfig_LevelFor(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		name  string
		score int
		level Level
	}{
		{"should classify 0 as low", 0, LevelLow},
		{"should classify 39 as low", 39, LevelLow},
		{"should classify 40 as medium", 40, LevelMedium},
		{"should classify 59 as medium", 59, LevelMedium},
		{"should classify 60 as high", 60, LevelHigh},
		{"should classify 79 as high", 79, LevelHigh},
		{"should classify 80 as critical", 80, LevelCritical},
		{"should classify 100 as critical", 100, LevelCritical},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.level, cfg.LevelFor(tt.score))
		})
	}
}

func TestQualityThresholds(t *testing.T) {
	quality := DefaultConfig().Quality

	t.Run("should gate almost-done at exactly 95 percent", func(t *testing.T) {
		assert.False(t, quality.IsAlmostDone(90, 30))
		assert.True(t, quality.IsAlmostDone(95, 15))
		assert.False(t, quality.IsAlmostDone(100, 0))
	})

	t.Run("should cap almost-done by absolute remaining minutes", func(t *testing.T) {
		assert.True(t, quality.IsAlmostDone(96, 60))
		assert.False(t, quality.IsAlmostDone(96, 61))
	})

	t.Run("should treat 90 percent as near-complete but not 100", func(t *testing.T) {
		assert.True(t, quality.IsNearComplete(90))
		assert.False(t, quality.IsNearComplete(89.9))
		assert.False(t, quality.IsNearComplete(100))
	})

	t.Run("should require a passed deadline to suggest closing", func(t *testing.T) {
		assert.True(t, quality.ShouldBeClosed(80, true))
		assert.False(t, quality.ShouldBeClosed(80, false))
		assert.False(t, quality.ShouldBeClosed(79.9, true))
	})

	t.Run("should only mark untouched tasks as stale", func(t *testing.T) {
		assert.True(t, quality.IsStale(31, 0))
		assert.False(t, quality.IsStale(31, 10))
		assert.False(t, quality.IsStale(30, 0))
	})
}

func TestCapacityConfig_EffectiveDailyHours(t *testing.T) {
	capacity := DefaultConfig().Capacity

	// (8 - 1) * 0.85
	assert.InDelta(t, 5.95, capacity.EffectiveDailyHours(8), 0.001)
	// targets at or below the break yield zero, not negative hours
	assert.Equal(t, 0.0, capacity.EffectiveDailyHours(1))
	assert.Equal(t, 0.0, capacity.EffectiveDailyHours(0.5))
}
