package domain

import (
	"errors"
	"time"

	sharedDomain "github.com/ascendhq/ascend/internal/shared/domain"
	"github.com/google/uuid"
)

var ErrInvalidTimeRange = errors.New("end time must be after start time")

// TimeBlock represents a committed, persisted interval of calendar time
// assigned to one task. A task owns at most one block at a time.
type TimeBlock struct {
	sharedDomain.BaseEntity
	userID     uuid.UUID
	scheduleID uuid.UUID
	taskID     uuid.UUID
	startTime  time.Time
	endTime    time.Time
	focusTime  bool
}

// NewTimeBlock creates a new time block.
func NewTimeBlock(userID, scheduleID, taskID uuid.UUID, startTime, endTime time.Time, focusTime bool) (*TimeBlock, error) {
	if !endTime.After(startTime) {
		return nil, ErrInvalidTimeRange
	}

	return &TimeBlock{
		BaseEntity: sharedDomain.NewBaseEntity(),
		userID:     userID,
		scheduleID: scheduleID,
		taskID:     taskID,
		startTime:  startTime,
		endTime:    endTime,
		focusTime:  focusTime,
	}, nil
}

// Getters
func (tb *TimeBlock) UserID() uuid.UUID     { return tb.userID }
func (tb *TimeBlock) ScheduleID() uuid.UUID { return tb.scheduleID }
func (tb *TimeBlock) TaskID() uuid.UUID     { return tb.taskID }
func (tb *TimeBlock) StartTime() time.Time  { return tb.startTime }
func (tb *TimeBlock) EndTime() time.Time    { return tb.endTime }
func (tb *TimeBlock) IsFocusTime() bool     { return tb.focusTime }

// Duration returns the block duration.
func (tb *TimeBlock) Duration() time.Duration {
	return tb.endTime.Sub(tb.startTime)
}

// OverlapsWith checks if this block overlaps another.
func (tb *TimeBlock) OverlapsWith(other *TimeBlock) bool {
	return tb.startTime.Before(other.endTime) && tb.endTime.After(other.startTime)
}

// Intersects checks if this block intersects the interval [start, end).
func (tb *TimeBlock) Intersects(start, end time.Time) bool {
	return tb.startTime.Before(end) && tb.endTime.After(start)
}

// RehydrateTimeBlock recreates a time block from persisted state.
func RehydrateTimeBlock(
	id uuid.UUID,
	userID uuid.UUID,
	scheduleID uuid.UUID,
	taskID uuid.UUID,
	startTime, endTime time.Time,
	focusTime bool,
	createdAt, updatedAt time.Time,
) *TimeBlock {
	return &TimeBlock{
		BaseEntity: sharedDomain.RehydrateBaseEntity(id, createdAt, updatedAt),
		userID:     userID,
		scheduleID: scheduleID,
		taskID:     taskID,
		startTime:  startTime,
		endTime:    endTime,
		focusTime:  focusTime,
	}
}
