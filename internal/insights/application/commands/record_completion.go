package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ascendhq/ascend/internal/insights/domain"
	"github.com/ascendhq/ascend/internal/tasks/domain/task"
)

// RecordCompletionHandler appends finished tasks to the completion
// history that drives scheduling suggestions. It satisfies the tasks
// context's CompletionRecorder contract.
type RecordCompletionHandler struct {
	history domain.HistoryRepository
	logger  *slog.Logger
}

func NewRecordCompletionHandler(history domain.HistoryRepository, logger *slog.Logger) *RecordCompletionHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &RecordCompletionHandler{
		history: history,
		logger:  logger,
	}
}

// Record stores one completion observation for the task.
func (h *RecordCompletionHandler) Record(
	ctx context.Context,
	t *task.Task,
	actualStart, actualEnd time.Time,
	success bool,
) error {
	record, err := domain.NewTaskCompletion(
		t.UserID(),
		t.ID(),
		t.Category(),
		t.Duration().Minutes(),
		actualStart,
		actualEnd,
		success,
	)
	if err != nil {
		return fmt.Errorf("building completion record: %w", err)
	}

	if err := h.history.Append(ctx, record); err != nil {
		return fmt.Errorf("appending completion record: %w", err)
	}

	h.logger.Debug("completion recorded",
		slog.String("task_id", t.ID().String()),
		slog.String("category", t.Category()),
		slog.Bool("success", success),
	)

	return nil
}
