package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	sharedApplication "github.com/ascendhq/ascend/internal/shared/application"
	"github.com/ascendhq/ascend/internal/shared/infrastructure/outbox"
	"github.com/ascendhq/ascend/internal/tasks/domain/task"
	"github.com/google/uuid"
)

// ErrNotTaskOwner is returned when a user tries to complete someone else's task.
var ErrNotTaskOwner = errors.New("task belongs to another user")

// CompletionRecorder feeds finished tasks into the adaptive heuristic's
// history. Recording is advisory; failures are logged, never propagated.
type CompletionRecorder interface {
	Record(ctx context.Context, t *task.Task, actualStart, actualEnd time.Time, success bool) error
}

// CompleteTaskCommand contains the data needed to complete a task.
type CompleteTaskCommand struct {
	TaskID      uuid.UUID
	UserID      uuid.UUID
	ActualStart time.Time
	ActualEnd   time.Time
	Success     bool
}

// CompleteTaskHandler handles the CompleteTaskCommand.
type CompleteTaskHandler struct {
	taskRepo   task.Repository
	recorder   CompletionRecorder
	outboxRepo outbox.Repository
	uow        sharedApplication.UnitOfWork
	logger     *slog.Logger
}

// NewCompleteTaskHandler creates a new CompleteTaskHandler.
func NewCompleteTaskHandler(
	taskRepo task.Repository,
	recorder CompletionRecorder,
	outboxRepo outbox.Repository,
	uow sharedApplication.UnitOfWork,
	logger *slog.Logger,
) *CompleteTaskHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &CompleteTaskHandler{
		taskRepo:   taskRepo,
		recorder:   recorder,
		outboxRepo: outboxRepo,
		uow:        uow,
		logger:     logger,
	}
}

// Handle executes the CompleteTaskCommand.
func (h *CompleteTaskHandler) Handle(ctx context.Context, cmd CompleteTaskCommand) error {
	var completed *task.Task

	err := sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		t, err := h.taskRepo.FindByID(txCtx, cmd.TaskID)
		if err != nil {
			return err
		}
		if t.UserID() != cmd.UserID {
			return ErrNotTaskOwner
		}

		if err := t.Complete(cmd.ActualStart, cmd.ActualEnd); err != nil {
			return err
		}

		if err := h.taskRepo.Save(txCtx, t); err != nil {
			return err
		}

		msgs, err := outbox.MessagesFromEvents(t.DomainEvents())
		if err != nil {
			return err
		}
		if err := h.outboxRepo.SaveBatch(txCtx, msgs); err != nil {
			return err
		}

		completed = t
		return nil
	})
	if err != nil {
		return err
	}

	if h.recorder != nil {
		if err := h.recorder.Record(ctx, completed, cmd.ActualStart, cmd.ActualEnd, cmd.Success); err != nil {
			h.logger.Warn("failed to record completion history",
				"task_id", cmd.TaskID,
				"error", err,
			)
		}
	}

	return nil
}
