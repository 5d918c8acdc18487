package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func completionAt(t *testing.T, userID uuid.UUID, category string, hour, estimated, actual int, success bool) TaskCompletion {
	t.Helper()
	start := time.Date(2026, time.March, 2, hour, 0, 0, 0, time.UTC)
	rec, err := NewTaskCompletion(userID, uuid.New(), category, estimated, start, start.Add(time.Duration(actual)*time.Minute), success)
	require.NoError(t, err)
	return rec
}

func TestNewTaskCompletion(t *testing.T) {
	userID := uuid.New()
	taskID := uuid.New()
	start := time.Date(2026, time.March, 2, 10, 0, 0, 0, time.UTC)

	rec, err := NewTaskCompletion(userID, taskID, "writing", 60, start, start.Add(45*time.Minute), true)

	require.NoError(t, err)
	assert.Equal(t, userID, rec.UserID)
	assert.Equal(t, taskID, rec.TaskID)
	assert.Equal(t, 45, rec.ActualMinutes)
	assert.True(t, rec.Success)
}

func TestNewTaskCompletion_InvalidWindow(t *testing.T) {
	start := time.Date(2026, time.March, 2, 10, 0, 0, 0, time.UTC)

	_, err := NewTaskCompletion(uuid.New(), uuid.New(), "writing", 60, start, start, true)
	assert.ErrorIs(t, err, ErrInvalidRecord)

	_, err = NewTaskCompletion(uuid.New(), uuid.New(), "writing", 60, start, start.Add(-time.Minute), true)
	assert.ErrorIs(t, err, ErrInvalidRecord)
}

func TestBuildPattern_EmptyHistory(t *testing.T) {
	pattern := BuildPattern(uuid.New(), nil)

	assert.Equal(t, 0, pattern.TotalSamples)
	// Baseline curve: zero at midnight, half at 06:00, peak at noon.
	assert.InDelta(t, 0, pattern.Productivity(0), 1e-9)
	assert.InDelta(t, 0.5, pattern.Productivity(6), 1e-9)
	assert.InDelta(t, 1, pattern.Productivity(12), 1e-9)
	assert.InDelta(t, 0.5, pattern.Productivity(18), 1e-9)

	assert.Equal(t, 1.0, pattern.CategorySuccessRate("writing", 9))
	assert.Equal(t, 1.0, pattern.DurationRatio("writing"))
	assert.Equal(t, 0, pattern.Samples("writing"))
}

func TestBuildPattern_ObservedRatesOverrideBaseline(t *testing.T) {
	userID := uuid.New()
	history := []TaskCompletion{
		completionAt(t, userID, "writing", 9, 60, 60, true),
		completionAt(t, userID, "writing", 9, 60, 60, true),
		completionAt(t, userID, "writing", 9, 60, 60, false),
		completionAt(t, userID, "review", 15, 30, 30, false),
	}

	pattern := BuildPattern(userID, history)

	assert.Equal(t, 4, pattern.TotalSamples)
	assert.InDelta(t, 2.0/3.0, pattern.Productivity(9), 1e-9)
	assert.InDelta(t, 0, pattern.Productivity(15), 1e-9)
	// Hours without history keep the baseline.
	assert.InDelta(t, 1, pattern.Productivity(12), 1e-9)

	assert.InDelta(t, 2.0/3.0, pattern.CategorySuccessRate("writing", 9), 1e-9)
	// Seen category at an unseen hour is neutral.
	assert.Equal(t, 1.0, pattern.CategorySuccessRate("writing", 14))
	assert.Equal(t, 3, pattern.Samples("writing"))
	assert.Equal(t, 1, pattern.Samples("review"))
}

func TestBuildPattern_DurationRatios(t *testing.T) {
	userID := uuid.New()
	history := []TaskCompletion{
		completionAt(t, userID, "writing", 9, 60, 90, true),
		completionAt(t, userID, "writing", 10, 60, 30, true),
		completionAt(t, userID, "review", 11, 30, 60, true),
	}

	pattern := BuildPattern(userID, history)

	// Mean of 1.5 and 0.5.
	assert.InDelta(t, 1.0, pattern.DurationRatio("writing"), 1e-9)
	assert.InDelta(t, 2.0, pattern.DurationRatio("review"), 1e-9)
	assert.Equal(t, 1.0, pattern.DurationRatio("unseen"))
}

func TestBuildPattern_Deterministic(t *testing.T) {
	userID := uuid.New()
	history := []TaskCompletion{
		completionAt(t, userID, "writing", 9, 60, 90, true),
		completionAt(t, userID, "review", 15, 30, 30, false),
	}

	first := BuildPattern(userID, history)
	second := BuildPattern(userID, history)

	assert.Equal(t, first.Hourly, second.Hourly)
	assert.Equal(t, first.CategoryRates, second.CategoryRates)
	assert.Equal(t, first.DurationRatios, second.DurationRatios)
}

func TestProductivityPattern_OutOfRangeHour(t *testing.T) {
	pattern := BuildPattern(uuid.New(), nil)

	assert.Equal(t, 0.0, pattern.Productivity(-1))
	assert.Equal(t, 0.0, pattern.Productivity(24))
	assert.Equal(t, 0.0, pattern.CategorySuccessRate("writing", 24))
}
