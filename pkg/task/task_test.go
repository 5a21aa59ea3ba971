package task

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTask_CompletionPercent(t *testing.T) {
	tests := []struct {
		name      string
		estimated int
		actual    int
		expected  float64
	}{
		{"should report 90 percent for 270 of 300", 300, 270, 90},
		{"should report 0 for zero estimate", 0, 120, 0},
		{"should report over 100 for overrun tasks", 60, 120, 200},
		{"should report 0 for untouched tasks", 300, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task := Task{EstimatedMinutes: tt.estimated, ActualMinutes: tt.actual}
			assert.Equal(t, tt.expected, task.CompletionPercent())
		})
	}
}

func TestTask_RemainingMinutes(t *testing.T) {
	// given
	overrun := Task{EstimatedMinutes: 60, ActualMinutes: 90}
	open := Task{EstimatedMinutes: 300, ActualMinutes: 270}

	// then overruns stay negative, nothing is clamped
	assert.Equal(t, -30, overrun.RemainingMinutes())
	assert.Equal(t, 30, open.RemainingMinutes())
}

func TestStatusFromWire(t *testing.T) {
	tests := []struct {
		name     string
		wire     string
		expected Status
	}{
		{"should keep completed", "completed", StatusCompleted},
		{"should map done to completed", "done", StatusCompleted},
		{"should map localized completed", "הושלם", StatusCompleted},
		{"should keep active", "active", StatusActive},
		{"should default unknown values to active", "paused", StatusActive},
		{"should default empty to active", "", StatusActive},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, StatusFromWire(tt.wire))
		})
	}
}

func TestPriorityFromWire(t *testing.T) {
	assert.Equal(t, PriorityUrgent, PriorityFromWire("urgent"))
	assert.Equal(t, PriorityLow, PriorityFromWire("low"))
	// unknown and empty values fall back to medium
	assert.Equal(t, PriorityMedium, PriorityFromWire("whenever"))
	assert.Equal(t, PriorityMedium, PriorityFromWire(""))
}

func TestTask_DeadlineSemantics(t *testing.T) {
	// a nil deadline means "no due date", distinct from a zero time
	deadline := time.Date(2025, time.June, 5, 17, 0, 0, 0, time.Local)
	withDeadline := Task{Deadline: &deadline}
	withoutDeadline := Task{}

	assert.NotNil(t, withDeadline.Deadline)
	assert.Nil(t, withoutDeadline.Deadline)
}
