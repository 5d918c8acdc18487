package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ascendhq/ascend/internal/scheduling/domain"
	sharedApplication "github.com/ascendhq/ascend/internal/shared/application"
	"github.com/ascendhq/ascend/internal/shared/infrastructure/outbox"
	"github.com/google/uuid"
)

// RescheduleTaskCommand contains the data needed to move a task to a new date.
type RescheduleTaskCommand struct {
	UserID  uuid.UUID
	TaskID  uuid.UUID
	NewDate time.Time
}

// RescheduleTaskHandler deletes the task's existing block (if any) and
// re-runs the scheduling algorithm against the new date. Calling it twice
// with the same date leaves exactly one block bound to the task.
type RescheduleTaskHandler struct {
	scheduler *ScheduleTaskHandler
	logger    *slog.Logger
}

// NewRescheduleTaskHandler creates a new RescheduleTaskHandler.
func NewRescheduleTaskHandler(scheduler *ScheduleTaskHandler, logger *slog.Logger) *RescheduleTaskHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &RescheduleTaskHandler{scheduler: scheduler, logger: logger}
}

// Handle executes the RescheduleTaskCommand.
func (h *RescheduleTaskHandler) Handle(ctx context.Context, cmd RescheduleTaskCommand) (*TimeBlockResult, error) {
	var result *TimeBlockResult

	err := sharedApplication.WithUnitOfWork(ctx, h.scheduler.uow, func(txCtx context.Context) error {
		t, err := h.scheduler.taskRepo.FindByID(txCtx, cmd.TaskID)
		if err != nil {
			return err
		}

		// Drop the existing block before recomputing availability so the
		// freed interval is visible to the new placement.
		existing, err := h.scheduler.scheduleRepo.FindByUserAndTask(txCtx, cmd.UserID, cmd.TaskID)
		if err != nil {
			return fmt.Errorf("%w: schedule: %w", domain.ErrRetrievalFailed, err)
		}
		if existing != nil {
			if err := existing.RemoveBlockByTask(cmd.TaskID); err != nil {
				return err
			}
			if err := h.scheduler.scheduleRepo.Save(txCtx, existing); err != nil {
				return fmt.Errorf("%w: %w", domain.ErrPersistenceFailed, err)
			}

			msgs, err := outbox.MessagesFromEvents(existing.DomainEvents())
			if err != nil {
				return err
			}
			if err := h.scheduler.outboxRepo.SaveBatch(txCtx, msgs); err != nil {
				return fmt.Errorf("%w: outbox: %w", domain.ErrPersistenceFailed, err)
			}
		}

		block, err := h.scheduler.placeTask(txCtx, t, cmd.NewDate)
		if err != nil {
			return err
		}

		result = block
		return nil
	})
	if err != nil {
		return nil, err
	}

	h.logger.Info("task rescheduled",
		"task_id", cmd.TaskID,
		"user_id", cmd.UserID,
		"start", result.StartTime,
		"end", result.EndTime,
	)

	return result, nil
}
