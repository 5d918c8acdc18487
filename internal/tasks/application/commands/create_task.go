package commands

import (
	"context"
	"time"

	sharedApplication "github.com/ascendhq/ascend/internal/shared/application"
	"github.com/ascendhq/ascend/internal/shared/infrastructure/outbox"
	"github.com/ascendhq/ascend/internal/tasks/domain/task"
	"github.com/ascendhq/ascend/internal/tasks/domain/value_objects"
	"github.com/google/uuid"
)

// CreateTaskCommand contains the data needed to create a task.
type CreateTaskCommand struct {
	UserID          uuid.UUID
	Title           string
	Category        string
	Priority        string
	DurationMinutes int
	Deadline        *time.Time
	Dependencies    []uuid.UUID
}

// CreateTaskResult contains the result of creating a task.
type CreateTaskResult struct {
	TaskID uuid.UUID
}

// CreateTaskHandler handles the CreateTaskCommand.
type CreateTaskHandler struct {
	taskRepo   task.Repository
	outboxRepo outbox.Repository
	uow        sharedApplication.UnitOfWork
}

// NewCreateTaskHandler creates a new CreateTaskHandler.
func NewCreateTaskHandler(taskRepo task.Repository, outboxRepo outbox.Repository, uow sharedApplication.UnitOfWork) *CreateTaskHandler {
	return &CreateTaskHandler{
		taskRepo:   taskRepo,
		outboxRepo: outboxRepo,
		uow:        uow,
	}
}

// Handle executes the CreateTaskCommand.
func (h *CreateTaskHandler) Handle(ctx context.Context, cmd CreateTaskCommand) (*CreateTaskResult, error) {
	var result *CreateTaskResult

	err := sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		priority := value_objects.PriorityMedium
		if cmd.Priority != "" {
			parsed, err := value_objects.ParsePriority(cmd.Priority)
			if err != nil {
				return err
			}
			priority = parsed
		}

		duration, err := value_objects.NewDuration(cmd.DurationMinutes)
		if err != nil {
			return err
		}

		t, err := task.NewTask(cmd.UserID, cmd.Title, priority, duration)
		if err != nil {
			return err
		}

		if cmd.Category != "" {
			t.SetCategory(cmd.Category)
		}
		if cmd.Deadline != nil {
			t.SetDeadline(cmd.Deadline)
		}
		if len(cmd.Dependencies) > 0 {
			t.SetDependencies(cmd.Dependencies)
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

		result = &CreateTaskResult{TaskID: t.ID()}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}
