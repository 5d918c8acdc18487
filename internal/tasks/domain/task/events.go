package task

import (
	"time"

	sharedDomain "github.com/ascendhq/ascend/internal/shared/domain"
	"github.com/google/uuid"
)

const (
	AggregateType = "Task"

	RoutingKeyTaskCreated   = "tasks.task.created"
	RoutingKeyTaskCompleted = "tasks.task.completed"
)

// TaskCreated is emitted when a new task is created.
type TaskCreated struct {
	sharedDomain.BaseEvent
	UserID   uuid.UUID `json:"user_id"`
	Title    string    `json:"title"`
	Priority string    `json:"priority"`
}

// NewTaskCreated creates a TaskCreated event.
func NewTaskCreated(taskID, userID uuid.UUID, title, priority string) TaskCreated {
	return TaskCreated{
		BaseEvent: sharedDomain.NewBaseEvent(taskID, AggregateType, RoutingKeyTaskCreated),
		UserID:    userID,
		Title:     title,
		Priority:  priority,
	}
}

// TaskCompleted is emitted when a task is completed, carrying the data the
// adaptive heuristic needs to record the outcome.
type TaskCompleted struct {
	sharedDomain.BaseEvent
	UserID           uuid.UUID `json:"user_id"`
	Category         string    `json:"category"`
	EstimatedMinutes int       `json:"estimated_minutes"`
	ActualStart      time.Time `json:"actual_start"`
	ActualEnd        time.Time `json:"actual_end"`
}

// NewTaskCompleted creates a TaskCompleted event.
func NewTaskCompleted(taskID, userID uuid.UUID, category string, estimatedMinutes int, actualStart, actualEnd time.Time) TaskCompleted {
	return TaskCompleted{
		BaseEvent:        sharedDomain.NewBaseEvent(taskID, AggregateType, RoutingKeyTaskCompleted),
		UserID:           userID,
		Category:         category,
		EstimatedMinutes: estimatedMinutes,
		ActualStart:      actualStart,
		ActualEnd:        actualEnd,
	}
}
