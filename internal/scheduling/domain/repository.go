package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ScheduleRepository defines the interface for schedule persistence.
type ScheduleRepository interface {
	// Save persists a schedule and its blocks (create or update).
	Save(ctx context.Context, schedule *Schedule) error

	// FindByUserAndDate finds a schedule for a user on a specific date.
	// Returns nil, nil when no schedule exists yet.
	FindByUserAndDate(ctx context.Context, userID uuid.UUID, date time.Time) (*Schedule, error)

	// FindByUserAndTask finds the schedule holding the block bound to a task.
	// Returns nil, nil when the task has no block.
	FindByUserAndTask(ctx context.Context, userID, taskID uuid.UUID) (*Schedule, error)

	// Delete removes a schedule.
	Delete(ctx context.Context, id uuid.UUID) error
}

// WorkingHoursProvider supplies a user's working-hours configuration. Owned
// by user settings; the scheduler only reads it.
type WorkingHoursProvider interface {
	GetWorkingHours(ctx context.Context, userID uuid.UUID) (WorkingHours, error)
}
