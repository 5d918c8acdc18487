package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ascendhq/ascend/internal/scheduling/domain"
	sharedApplication "github.com/ascendhq/ascend/internal/shared/application"
	sharedDomain "github.com/ascendhq/ascend/internal/shared/domain"
	"github.com/ascendhq/ascend/internal/shared/infrastructure/outbox"
	"github.com/ascendhq/ascend/internal/tasks/domain/task"
	"github.com/ascendhq/ascend/internal/tasks/domain/value_objects"
	"github.com/google/uuid"
)

// ScheduleTaskCommand contains the data needed to schedule a task. A zero
// Date means "today" at invocation time.
type ScheduleTaskCommand struct {
	UserID uuid.UUID
	TaskID uuid.UUID
	Date   time.Time
}

// TimeBlockResult describes the booked block.
type TimeBlockResult struct {
	BlockID   uuid.UUID
	TaskID    uuid.UUID
	StartTime time.Time
	EndTime   time.Time
	FocusTime bool
}

// ScheduleTaskHandler places a task into the earliest free slot of sufficient
// length on the target date. The availability read and block write run inside
// one unit of work so concurrent calls cannot double-book a slot.
type ScheduleTaskHandler struct {
	taskRepo     task.Repository
	scheduleRepo domain.ScheduleRepository
	workingHours domain.WorkingHoursProvider
	outboxRepo   outbox.Repository
	uow          sharedApplication.UnitOfWork
	clock        sharedDomain.Clock
	logger       *slog.Logger
}

// NewScheduleTaskHandler creates a new ScheduleTaskHandler.
func NewScheduleTaskHandler(
	taskRepo task.Repository,
	scheduleRepo domain.ScheduleRepository,
	workingHours domain.WorkingHoursProvider,
	outboxRepo outbox.Repository,
	uow sharedApplication.UnitOfWork,
	clock sharedDomain.Clock,
	logger *slog.Logger,
) *ScheduleTaskHandler {
	if clock == nil {
		clock = sharedDomain.SystemClock{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ScheduleTaskHandler{
		taskRepo:     taskRepo,
		scheduleRepo: scheduleRepo,
		workingHours: workingHours,
		outboxRepo:   outboxRepo,
		uow:          uow,
		clock:        clock,
		logger:       logger,
	}
}

// Handle executes the ScheduleTaskCommand.
func (h *ScheduleTaskHandler) Handle(ctx context.Context, cmd ScheduleTaskCommand) (*TimeBlockResult, error) {
	date := cmd.Date
	if date.IsZero() {
		date = h.clock.Now()
	}

	var result *TimeBlockResult

	err := sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		t, err := h.taskRepo.FindByID(txCtx, cmd.TaskID)
		if err != nil {
			return err
		}

		block, err := h.placeTask(txCtx, t, date)
		if err != nil {
			return err
		}

		result = block
		return nil
	})
	if err != nil {
		return nil, err
	}

	h.logger.Info("task scheduled",
		"task_id", cmd.TaskID,
		"user_id", cmd.UserID,
		"start", result.StartTime,
		"end", result.EndTime,
	)

	return result, nil
}

// placeTask runs the earliest-fit algorithm against the availability visible
// in the current transaction and books the block. Shared with rescheduling.
func (h *ScheduleTaskHandler) placeTask(ctx context.Context, t *task.Task, date time.Time) (*TimeBlockResult, error) {
	hours, err := h.workingHours.GetWorkingHours(ctx, t.UserID())
	if err != nil {
		return nil, fmt.Errorf("%w: working hours: %w", domain.ErrRetrievalFailed, err)
	}

	schedule, err := h.scheduleRepo.FindByUserAndDate(ctx, t.UserID(), date)
	if err != nil {
		return nil, fmt.Errorf("%w: schedule: %w", domain.ErrRetrievalFailed, err)
	}

	slots := domain.ResolveAvailability(hours, date, schedule)
	if len(slots) == 0 {
		return nil, domain.ErrNoAvailability
	}

	needed := t.Duration().Value()
	var selected *domain.AvailabilitySlot
	for i := range slots {
		if slots[i].Fits(needed) {
			selected = &slots[i]
			break
		}
	}
	if selected == nil {
		return nil, domain.ErrNoSuitableSlot
	}

	if schedule == nil {
		schedule = domain.NewSchedule(t.UserID(), date)
	}

	startTime := selected.Start
	endTime := startTime.Add(needed)
	focusTime := t.Priority() == value_objects.PriorityHigh

	block, err := schedule.AddBlock(t.ID(), startTime, endTime, focusTime)
	if err != nil {
		return nil, err
	}

	if err := t.MarkScheduled(); err != nil {
		return nil, err
	}
	if err := h.taskRepo.Save(ctx, t); err != nil {
		return nil, fmt.Errorf("%w: task: %w", domain.ErrPersistenceFailed, err)
	}

	if err := h.scheduleRepo.Save(ctx, schedule); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrPersistenceFailed, err)
	}

	msgs, err := outbox.MessagesFromEvents(schedule.DomainEvents())
	if err != nil {
		return nil, err
	}
	if err := h.outboxRepo.SaveBatch(ctx, msgs); err != nil {
		return nil, fmt.Errorf("%w: outbox: %w", domain.ErrPersistenceFailed, err)
	}

	return &TimeBlockResult{
		BlockID:   block.ID(),
		TaskID:    t.ID(),
		StartTime: block.StartTime(),
		EndTime:   block.EndTime(),
		FocusTime: block.IsFocusTime(),
	}, nil
}
