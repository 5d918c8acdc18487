package queries

import (
	"context"
	"time"

	"github.com/ascendhq/ascend/internal/tasks/application/services"
	"github.com/ascendhq/ascend/internal/tasks/domain/task"
	"github.com/google/uuid"
)

// TaskDTO is a data transfer object for tasks.
type TaskDTO struct {
	ID              uuid.UUID
	Title           string
	Category        string
	Priority        string
	DurationMinutes int
	Deadline        *time.Time
	Status          string
	UrgencyScore    float64
}

// ListTasksQuery contains the parameters for listing tasks.
type ListTasksQuery struct {
	UserID      uuid.UUID
	PendingOnly bool
}

// ListTasksHandler handles the ListTasksQuery, returning tasks ranked by
// urgency so callers can schedule the most pressing one first.
type ListTasksHandler struct {
	taskRepo task.Repository
	urgency  *services.UrgencyEngine
}

// NewListTasksHandler creates a new ListTasksHandler.
func NewListTasksHandler(taskRepo task.Repository, urgency *services.UrgencyEngine) *ListTasksHandler {
	return &ListTasksHandler{taskRepo: taskRepo, urgency: urgency}
}

// Handle executes the ListTasksQuery.
func (h *ListTasksHandler) Handle(ctx context.Context, query ListTasksQuery) ([]TaskDTO, error) {
	var (
		tasks []*task.Task
		err   error
	)
	if query.PendingOnly {
		tasks, err = h.taskRepo.FindPending(ctx, query.UserID)
	} else {
		tasks, err = h.taskRepo.FindByUserID(ctx, query.UserID)
	}
	if err != nil {
		return nil, err
	}

	ranked := h.urgency.Rank(tasks)

	dtos := make([]TaskDTO, 0, len(ranked))
	for _, t := range ranked {
		score, _ := h.urgency.Score(t)
		dtos = append(dtos, TaskDTO{
			ID:              t.ID(),
			Title:           t.Title(),
			Category:        t.Category(),
			Priority:        t.Priority().String(),
			DurationMinutes: t.Duration().Minutes(),
			Deadline:        t.Deadline(),
			Status:          t.Status().String(),
			UrgencyScore:    score,
		})
	}

	return dtos, nil
}
