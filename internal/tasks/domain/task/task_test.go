package task

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ascendhq/ascend/internal/tasks/domain/value_objects"
)

func TestNewTask(t *testing.T) {
	userID := uuid.New()
	created, err := NewTask(userID, "Write quarterly report", value_objects.PriorityHigh, value_objects.MustNewDuration(90))

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID())
	assert.Equal(t, userID, created.UserID())
	assert.Equal(t, "Write quarterly report", created.Title())
	assert.Equal(t, value_objects.PriorityHigh, created.Priority())
	assert.Equal(t, 90, created.Duration().Minutes())
	assert.Equal(t, StatusPending, created.Status())
	assert.Nil(t, created.Deadline())
	assert.Empty(t, created.Dependencies())
	assert.False(t, created.IsCompleted())
}

func TestNewTask_EmitsEvent(t *testing.T) {
	userID := uuid.New()
	created, err := NewTask(userID, "Review PR", value_objects.PriorityMedium, value_objects.MustNewDuration(30))

	require.NoError(t, err)
	events := created.DomainEvents()
	require.Len(t, events, 1)

	event, ok := events[0].(TaskCreated)
	require.True(t, ok)
	assert.Equal(t, created.ID(), event.AggregateID())
	assert.Equal(t, "Review PR", event.Title)
}

func TestNewTask_EmptyTitle(t *testing.T) {
	tests := []string{"", "   ", "\t\n"}

	for _, title := range tests {
		_, err := NewTask(uuid.New(), title, value_objects.PriorityLow, value_objects.MustNewDuration(15))
		assert.ErrorIs(t, err, ErrEmptyTitle)
	}
}

func TestNewTask_TrimsTitle(t *testing.T) {
	created, err := NewTask(uuid.New(), "  deep work  ", value_objects.PriorityLow, value_objects.MustNewDuration(15))

	require.NoError(t, err)
	assert.Equal(t, "deep work", created.Title())
}

func TestTask_MarkScheduled(t *testing.T) {
	created, err := NewTask(uuid.New(), "Plan sprint", value_objects.PriorityMedium, value_objects.MustNewDuration(60))
	require.NoError(t, err)

	require.NoError(t, created.MarkScheduled())
	assert.Equal(t, StatusScheduled, created.Status())

	// Rescheduling an already scheduled task is allowed.
	require.NoError(t, created.MarkScheduled())
}

func TestTask_Complete(t *testing.T) {
	created, err := NewTask(uuid.New(), "Plan sprint", value_objects.PriorityMedium, value_objects.MustNewDuration(60))
	require.NoError(t, err)
	created.SetCategory("planning")
	created.ClearDomainEvents()

	start := time.Date(2026, time.March, 2, 10, 0, 0, 0, time.UTC)
	end := start.Add(45 * time.Minute)

	require.NoError(t, created.Complete(start, end))

	assert.Equal(t, StatusCompleted, created.Status())
	assert.True(t, created.IsCompleted())
	require.NotNil(t, created.ActualStart())
	require.NotNil(t, created.ActualEnd())
	assert.Equal(t, start, *created.ActualStart())
	assert.Equal(t, end, *created.ActualEnd())

	events := created.DomainEvents()
	require.Len(t, events, 1)
	completed, ok := events[0].(TaskCompleted)
	require.True(t, ok)
	assert.Equal(t, created.ID(), completed.AggregateID())
	assert.Equal(t, "planning", completed.Category)
	assert.Equal(t, 60, completed.EstimatedMinutes)
}

func TestTask_Complete_InvalidWindow(t *testing.T) {
	created, err := NewTask(uuid.New(), "Plan sprint", value_objects.PriorityMedium, value_objects.MustNewDuration(60))
	require.NoError(t, err)

	start := time.Date(2026, time.March, 2, 10, 0, 0, 0, time.UTC)

	assert.ErrorIs(t, created.Complete(start, start), ErrInvalidCompletion)
	assert.ErrorIs(t, created.Complete(start, start.Add(-time.Minute)), ErrInvalidCompletion)
	assert.Equal(t, StatusPending, created.Status())
}

func TestTask_Complete_AlreadyCompleted(t *testing.T) {
	created, err := NewTask(uuid.New(), "Plan sprint", value_objects.PriorityMedium, value_objects.MustNewDuration(60))
	require.NoError(t, err)

	start := time.Date(2026, time.March, 2, 10, 0, 0, 0, time.UTC)
	require.NoError(t, created.Complete(start, start.Add(time.Hour)))

	assert.ErrorIs(t, created.Complete(start, start.Add(time.Hour)), ErrTaskAlreadyComplete)
	assert.ErrorIs(t, created.MarkScheduled(), ErrTaskAlreadyComplete)
}

func TestTask_Setters(t *testing.T) {
	created, err := NewTask(uuid.New(), "Plan sprint", value_objects.PriorityMedium, value_objects.MustNewDuration(60))
	require.NoError(t, err)

	deadline := time.Date(2026, time.March, 6, 17, 0, 0, 0, time.UTC)
	deps := []uuid.UUID{uuid.New(), uuid.New()}

	created.SetCategory("  planning ")
	created.SetDeadline(&deadline)
	created.SetDependencies(deps)
	created.SetDuration(value_objects.MustNewDuration(90))

	assert.Equal(t, "planning", created.Category())
	assert.Equal(t, deadline, *created.Deadline())
	assert.Equal(t, deps, created.Dependencies())
	assert.Equal(t, 90, created.Duration().Minutes())
}

func TestStatus_RoundTrip(t *testing.T) {
	for _, status := range []Status{StatusPending, StatusScheduled, StatusInProgress, StatusCompleted} {
		assert.Equal(t, status, ParseStatus(status.String()))
	}
	assert.Equal(t, StatusPending, ParseStatus("garbage"))
}

func TestRehydrateTask_PreservesState(t *testing.T) {
	id := uuid.New()
	userID := uuid.New()
	deadline := time.Date(2026, time.March, 6, 17, 0, 0, 0, time.UTC)
	createdAt := time.Date(2026, time.February, 1, 8, 0, 0, 0, time.UTC)
	updatedAt := createdAt.Add(48 * time.Hour)
	deps := []uuid.UUID{uuid.New()}

	restored := RehydrateTask(
		id, userID, "Plan sprint", "planning",
		value_objects.PriorityHigh, value_objects.MustNewDuration(60),
		&deadline, deps, StatusScheduled, nil, nil,
		createdAt, updatedAt,
	)

	assert.Equal(t, id, restored.ID())
	assert.Equal(t, StatusScheduled, restored.Status())
	assert.Equal(t, deps, restored.Dependencies())
	assert.Equal(t, createdAt, restored.CreatedAt())
	assert.Equal(t, updatedAt, restored.UpdatedAt())
	assert.Empty(t, restored.DomainEvents())
}
