package queries

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ascendhq/ascend/internal/insights/application/services"
	"github.com/ascendhq/ascend/internal/tasks/domain/task"
)

// SuggestTimeBlockQuery asks for an advisory placement of a task.
type SuggestTimeBlockQuery struct {
	UserID uuid.UUID
	TaskID uuid.UUID
}

// SuggestionDTO is the read model for a suggestion.
type SuggestionDTO struct {
	TaskID          uuid.UUID `json:"task_id"`
	StartTime       time.Time `json:"start_time"`
	EndTime         time.Time `json:"end_time"`
	AdjustedMinutes int       `json:"adjusted_minutes"`
	Confidence      float64   `json:"confidence"`
	Explanation     string    `json:"explanation"`
}

// SuggestTimeBlockHandler loads the task and runs the suggestion engine.
type SuggestTimeBlockHandler struct {
	taskRepo task.Repository
	engine   *services.SuggestionEngine
}

func NewSuggestTimeBlockHandler(taskRepo task.Repository, engine *services.SuggestionEngine) *SuggestTimeBlockHandler {
	return &SuggestTimeBlockHandler{
		taskRepo: taskRepo,
		engine:   engine,
	}
}

func (h *SuggestTimeBlockHandler) Handle(ctx context.Context, query SuggestTimeBlockQuery) (*SuggestionDTO, error) {
	t, err := h.taskRepo.FindByID(ctx, query.TaskID)
	if err != nil {
		return nil, fmt.Errorf("finding task: %w", err)
	}
	if t.UserID() != query.UserID {
		return nil, task.ErrTaskNotFound
	}

	suggestion := h.engine.Suggest(ctx, t)

	return &SuggestionDTO{
		TaskID:          suggestion.TaskID,
		StartTime:       suggestion.StartTime,
		EndTime:         suggestion.EndTime,
		AdjustedMinutes: suggestion.AdjustedMinutes,
		Confidence:      suggestion.Confidence,
		Explanation:     suggestion.Explanation,
	}, nil
}
