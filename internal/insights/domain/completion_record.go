package domain

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrInvalidRecord = errors.New("actual end must be after actual start")

// TaskCompletion captures how a task's actual execution compared to its
// estimate. Records feed the per-hour productivity model.
type TaskCompletion struct {
	ID               uuid.UUID
	UserID           uuid.UUID
	TaskID           uuid.UUID
	Category         string
	EstimatedMinutes int
	ActualMinutes    int
	ActualStart      time.Time
	ActualEnd        time.Time
	Success          bool
	RecordedAt       time.Time
}

// NewTaskCompletion creates a completion record. The actual duration is
// derived from the start/end pair.
func NewTaskCompletion(
	userID, taskID uuid.UUID,
	category string,
	estimatedMinutes int,
	actualStart, actualEnd time.Time,
	success bool,
) (TaskCompletion, error) {
	if !actualEnd.After(actualStart) {
		return TaskCompletion{}, ErrInvalidRecord
	}

	return TaskCompletion{
		ID:               uuid.New(),
		UserID:           userID,
		TaskID:           taskID,
		Category:         category,
		EstimatedMinutes: estimatedMinutes,
		ActualMinutes:    int(actualEnd.Sub(actualStart).Minutes()),
		ActualStart:      actualStart,
		ActualEnd:        actualEnd,
		Success:          success,
		RecordedAt:       time.Now().UTC(),
	}, nil
}

// HistoryRepository defines persistence for task-completion history.
type HistoryRepository interface {
	Append(ctx context.Context, record TaskCompletion) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]TaskCompletion, error)
}
