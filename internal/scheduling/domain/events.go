package domain

import (
	"time"

	sharedDomain "github.com/ascendhq/ascend/internal/shared/domain"
	"github.com/google/uuid"
)

const (
	AggregateType = "Schedule"

	RoutingKeyBlockScheduled = "scheduling.block.scheduled"
	RoutingKeyBlockRemoved   = "scheduling.block.removed"
)

// BlockScheduled is emitted when a new time block is booked.
type BlockScheduled struct {
	sharedDomain.BaseEvent
	BlockID   uuid.UUID `json:"block_id"`
	TaskID    uuid.UUID `json:"task_id"`
	UserID    uuid.UUID `json:"user_id"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	FocusTime bool      `json:"focus_time"`
}

// NewBlockScheduled creates a BlockScheduled event.
func NewBlockScheduled(scheduleID uuid.UUID, block *TimeBlock) BlockScheduled {
	return BlockScheduled{
		BaseEvent: sharedDomain.NewBaseEvent(scheduleID, AggregateType, RoutingKeyBlockScheduled),
		BlockID:   block.ID(),
		TaskID:    block.TaskID(),
		UserID:    block.UserID(),
		StartTime: block.StartTime(),
		EndTime:   block.EndTime(),
		FocusTime: block.IsFocusTime(),
	}
}

// BlockRemoved is emitted when a block is unbooked, typically ahead of a
// reschedule.
type BlockRemoved struct {
	sharedDomain.BaseEvent
	BlockID   uuid.UUID `json:"block_id"`
	TaskID    uuid.UUID `json:"task_id"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
}

// NewBlockRemoved creates a BlockRemoved event.
func NewBlockRemoved(scheduleID uuid.UUID, block *TimeBlock) BlockRemoved {
	return BlockRemoved{
		BaseEvent: sharedDomain.NewBaseEvent(scheduleID, AggregateType, RoutingKeyBlockRemoved),
		BlockID:   block.ID(),
		TaskID:    block.TaskID(),
		StartTime: block.StartTime(),
		EndTime:   block.EndTime(),
	}
}
