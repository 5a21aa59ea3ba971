package workload

import (
	"fmt"
	"math"

	log "github.com/sirupsen/logrus"
)

// Level is the discrete classification of a composite workload score.
type Level string

const (
	LevelLow      Level = "low"
	LevelMedium   Level = "medium"
	LevelHigh     Level = "high"
	LevelCritical Level = "critical"
)

// Config is the full constants table of the workload engine. All values have
// sensible defaults (DefaultConfig) and can be overridden from the application
// configuration file.
type Config struct {
	// DefaultDailyHoursTarget is used for staff without an individual target.
	DefaultDailyHoursTarget float64 `koanf:"dailyhourstarget"`

	Weights  ScoreWeights      `koanf:"weights"`
	Urgency  UrgencyConfig     `koanf:"urgency"`
	Levels   LevelThresholds   `koanf:"levels"`
	Quality  QualityThresholds `koanf:"quality"`
	Ceilings Ceilings          `koanf:"ceilings"`
	Capacity CapacityConfig    `koanf:"capacity"`
}

// ScoreWeights combine the four normalized sub-scores into the composite
// workload score. They must sum to 1.0.
type ScoreWeights struct {
	Backlog   float64 `koanf:"backlog"`
	Urgency   float64 `koanf:"urgency"`
	TaskCount float64 `koanf:"taskcount"`
	Capacity  float64 `koanf:"capacity"`
}

// UrgencyConfig holds the deadline-proximity windows (in days) and the score
// contribution of one task in each bucket.
type UrgencyConfig struct {
	Within24hDays  float64 `koanf:"within24hdays"`
	Within3DayDays float64 `koanf:"within3daydays"`
	Within7DayDays float64 `koanf:"within7daydays"`

	OverdueScore   float64 `koanf:"overduescore"`
	Within24hScore float64 `koanf:"within24hscore"`
	Within3dScore  float64 `koanf:"within3dscore"`
	Within7dScore  float64 `koanf:"within7dscore"`
}

// LevelThresholds are the lower bounds of the medium/high/critical levels.
type LevelThresholds struct {
	Medium   int `koanf:"medium"`
	High     int `koanf:"high"`
	Critical int `koanf:"critical"`
}

// QualityThresholds drive the task-quality classification.
type QualityThresholds struct {
	ShouldClosePercent   float64 `koanf:"shouldclosepercent"`
	NearCompletePercent  float64 `koanf:"nearcompletepercent"`
	AlmostDonePercent    float64 `koanf:"almostdonepercent"`
	AlmostDoneMaxMinutes int     `koanf:"almostdonemaxminutes"`
	StaleAfterDays       int     `koanf:"staleafterdays"`
}

// Ceilings normalize raw quantities to the 0-100 score scale.
// MaxAlertDetails bounds per-alert detail lists for UI consumption.
type Ceilings struct {
	MaxBacklogDays  float64 `koanf:"maxbacklogdays"`
	MaxTaskCount    int     `koanf:"maxtaskcount"`
	MaxAlertDetails int     `koanf:"maxalertdetails"`
}

// CapacityConfig describes how nominal daily hours shrink to effective
// capacity: a fixed break plus a personal-space fraction of the remainder.
type CapacityConfig struct {
	BreakHours         float64 `koanf:"breakhours"`
	PersonalSpaceRatio float64 `koanf:"personalspaceratio"`
}

func DefaultConfig() Config {
	return Config{
		DefaultDailyHoursTarget: 8.45,
		Weights: ScoreWeights{
			Backlog:   0.3,
			Urgency:   0.3,
			TaskCount: 0.2,
			Capacity:  0.2,
		},
		Urgency: UrgencyConfig{
			Within24hDays:  1,
			Within3DayDays: 3,
			Within7DayDays: 7,
			OverdueScore:   40,
			Within24hScore: 30,
			Within3dScore:  20,
			Within7dScore:  10,
		},
		Levels: LevelThresholds{
			Medium:   40,
			High:     60,
			Critical: 80,
		},
		Quality: QualityThresholds{
			ShouldClosePercent:   80,
			NearCompletePercent:  90,
			AlmostDonePercent:    95,
			AlmostDoneMaxMinutes: 60,
			StaleAfterDays:       30,
		},
		Ceilings: Ceilings{
			MaxBacklogDays:  10,
			MaxTaskCount:    20,
			MaxAlertDetails: 5,
		},
		Capacity: CapacityConfig{
			BreakHours:         1.0,
			PersonalSpaceRatio: 0.15,
		},
	}
}

// Validate checks the score weights once at configuration-load time. Weights
// that do not sum to 1.0 are renormalized with a single warning; non-positive
// sums are a hard error.
func (c *Config) Validate() error {
	sum := c.Weights.Backlog + c.Weights.Urgency + c.Weights.TaskCount + c.Weights.Capacity
	if sum <= 0 {
		return fmt.Errorf("workload score weights must have a positive sum, got %.3f", sum)
	}
	if math.Abs(sum-1.0) > 0.001 {
		log.Warnf("workload score weights sum to %.3f, renormalizing to 1.0", sum)
		c.Weights.Backlog /= sum
		c.Weights.Urgency /= sum
		c.Weights.TaskCount /= sum
		c.Weights.Capacity /= sum
	}
	if c.DefaultDailyHoursTarget <= 0 {
		return fmt.Errorf("workload daily hours target must be positive, got %.2f", c.DefaultDailyHoursTarget)
	}
	return nil
}

// LevelFor maps a composite score to its discrete level.
func (c Config) LevelFor(score int) Level {
	switch {
	case score >= c.Levels.Critical:
		return LevelCritical
	case score >= c.Levels.High:
		return LevelHigh
	case score >= c.Levels.Medium:
		return LevelMedium
	default:
		return LevelLow
	}
}

// IsNearComplete reports whether a task with the given completion percentage
// is nearly finished but not done.
func (q QualityThresholds) IsNearComplete(completionPercent float64) bool {
	return completionPercent >= q.NearCompletePercent && completionPercent < 100
}

// IsAlmostDone reports whether a task could be finished right now: very high
// completion and at most a small absolute amount of work left.
func (q QualityThresholds) IsAlmostDone(completionPercent float64, remainingMinutes int) bool {
	return completionPercent >= q.AlmostDonePercent &&
		completionPercent < 100 &&
		remainingMinutes > 0 &&
		remainingMinutes <= q.AlmostDoneMaxMinutes
}

// IsStale reports whether a never-started task is older than the stale
// threshold.
func (q QualityThresholds) IsStale(ageDays float64, actualMinutes int) bool {
	return actualMinutes == 0 && ageDays > float64(q.StaleAfterDays)
}

// ShouldBeClosed reports whether a task looks finished but was never marked
// done: mostly complete and past its deadline.
func (q QualityThresholds) ShouldBeClosed(completionPercent float64, deadlinePassed bool) bool {
	return completionPercent >= q.ShouldClosePercent && deadlinePassed
}

// EffectiveDailyHours reduces a nominal daily target by the fixed break and
// the personal-space buffer of the remainder.
func (c CapacityConfig) EffectiveDailyHours(dailyTarget float64) float64 {
	afterBreak := dailyTarget - c.BreakHours
	if afterBreak <= 0 {
		return 0
	}
	return afterBreak * (1 - c.PersonalSpaceRatio)
}
