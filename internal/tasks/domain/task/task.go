package task

import (
	"errors"
	"strings"
	"time"

	"github.com/ascendhq/ascend/internal/shared/domain"
	"github.com/ascendhq/ascend/internal/tasks/domain/value_objects"
	"github.com/google/uuid"
)

var (
	ErrEmptyTitle          = errors.New("task title cannot be empty")
	ErrTaskAlreadyComplete = errors.New("task is already completed")
	ErrInvalidCompletion   = errors.New("actual end must be after actual start")
)

// Status represents the task lifecycle state.
type Status int

const (
	StatusPending Status = iota
	StatusScheduled
	StatusInProgress
	StatusCompleted
)

func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusScheduled:
		return "scheduled"
	case StatusInProgress:
		return "in_progress"
	case StatusCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// ParseStatus creates a Status from a string.
func ParseStatus(s string) Status {
	switch s {
	case "scheduled":
		return StatusScheduled
	case "in_progress":
		return StatusInProgress
	case "completed":
		return StatusCompleted
	default:
		return StatusPending
	}
}

// Task represents a unit of work to be done.
type Task struct {
	domain.BaseAggregateRoot
	userID       uuid.UUID
	title        string
	category     string
	priority     value_objects.Priority
	duration     value_objects.Duration
	deadline     *time.Time
	dependencies []uuid.UUID
	status       Status
	actualStart  *time.Time
	actualEnd    *time.Time
}

// NewTask creates a new task. Estimated duration must be positive.
func NewTask(userID uuid.UUID, title string, priority value_objects.Priority, duration value_objects.Duration) (*Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrEmptyTitle
	}

	t := &Task{
		BaseAggregateRoot: domain.NewBaseAggregateRoot(),
		userID:            userID,
		title:             title,
		priority:          priority,
		duration:          duration,
		status:            StatusPending,
	}

	t.AddDomainEvent(NewTaskCreated(t.ID(), userID, title, priority.String()))

	return t, nil
}

// Getters

func (t *Task) UserID() uuid.UUID                { return t.userID }
func (t *Task) Title() string                    { return t.title }
func (t *Task) Category() string                 { return t.category }
func (t *Task) Priority() value_objects.Priority { return t.priority }
func (t *Task) Duration() value_objects.Duration { return t.duration }
func (t *Task) Deadline() *time.Time             { return t.deadline }
func (t *Task) Dependencies() []uuid.UUID        { return t.dependencies }
func (t *Task) Status() Status                   { return t.status }
func (t *Task) ActualStart() *time.Time          { return t.actualStart }
func (t *Task) ActualEnd() *time.Time            { return t.actualEnd }
func (t *Task) IsCompleted() bool                { return t.status == StatusCompleted }

// SetCategory updates the task-type key used by the adaptive heuristic.
func (t *Task) SetCategory(category string) {
	t.category = strings.TrimSpace(category)
	t.Touch()
}

// SetDeadline updates the deadline.
func (t *Task) SetDeadline(deadline *time.Time) {
	t.deadline = deadline
	t.Touch()
}

// SetDependencies replaces the dependency references.
func (t *Task) SetDependencies(deps []uuid.UUID) {
	t.dependencies = deps
	t.Touch()
}

// SetDuration updates the estimated duration.
func (t *Task) SetDuration(duration value_objects.Duration) {
	t.duration = duration
	t.Touch()
}

// MarkScheduled records that a time block now exists for the task.
func (t *Task) MarkScheduled() error {
	if t.IsCompleted() {
		return ErrTaskAlreadyComplete
	}
	t.status = StatusScheduled
	t.Touch()
	return nil
}

// Complete marks the task as completed with its actual execution window.
func (t *Task) Complete(actualStart, actualEnd time.Time) error {
	if t.IsCompleted() {
		return ErrTaskAlreadyComplete
	}
	if !actualEnd.After(actualStart) {
		return ErrInvalidCompletion
	}

	t.status = StatusCompleted
	t.actualStart = &actualStart
	t.actualEnd = &actualEnd
	t.Touch()

	t.AddDomainEvent(NewTaskCompleted(t.ID(), t.userID, t.category, t.duration.Minutes(), actualStart, actualEnd))

	return nil
}

// RehydrateTask recreates a task from persisted state.
func RehydrateTask(
	id uuid.UUID,
	userID uuid.UUID,
	title string,
	category string,
	priority value_objects.Priority,
	duration value_objects.Duration,
	deadline *time.Time,
	dependencies []uuid.UUID,
	status Status,
	actualStart, actualEnd *time.Time,
	createdAt, updatedAt time.Time,
) *Task {
	return &Task{
		BaseAggregateRoot: domain.RehydrateBaseAggregateRoot(domain.RehydrateBaseEntity(id, createdAt, updatedAt)),
		userID:            userID,
		title:             title,
		category:          category,
		priority:          priority,
		duration:          duration,
		deadline:          deadline,
		dependencies:      dependencies,
		status:            status,
		actualStart:       actualStart,
		actualEnd:         actualEnd,
	}
}
