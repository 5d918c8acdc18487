package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"

	"github.com/ascendhq/ascend/internal/shared/infrastructure/migrations"
	"github.com/ascendhq/ascend/internal/tasks/domain/task"
	"github.com/ascendhq/ascend/internal/tasks/domain/value_objects"
)

// setupSQLiteTestDB creates an in-memory SQLite database with the schema applied.
func setupSQLiteTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	db.SetMaxOpenConns(1)
	require.NoError(t, migrations.RunSQLiteMigrations(context.Background(), db))

	return db
}

func TestSQLiteTaskRepository_SaveAndFindByID(t *testing.T) {
	db := setupSQLiteTestDB(t)
	repo := NewSQLiteTaskRepository(db)
	ctx := context.Background()

	userID := uuid.New()
	created, err := task.NewTask(userID, "Write report", value_objects.PriorityHigh, value_objects.MustNewDuration(90))
	require.NoError(t, err)
	created.SetCategory("writing")
	deadline := time.Date(2026, time.March, 6, 17, 0, 0, 0, time.UTC)
	created.SetDeadline(&deadline)
	deps := []uuid.UUID{uuid.New(), uuid.New()}
	created.SetDependencies(deps)

	require.NoError(t, repo.Save(ctx, created))

	found, err := repo.FindByID(ctx, created.ID())
	require.NoError(t, err)

	assert.Equal(t, created.ID(), found.ID())
	assert.Equal(t, userID, found.UserID())
	assert.Equal(t, "Write report", found.Title())
	assert.Equal(t, "writing", found.Category())
	assert.Equal(t, value_objects.PriorityHigh, found.Priority())
	assert.Equal(t, 90, found.Duration().Minutes())
	assert.Equal(t, deadline, found.Deadline().UTC())
	assert.ElementsMatch(t, deps, found.Dependencies())
	assert.Equal(t, task.StatusPending, found.Status())
	assert.WithinDuration(t, created.CreatedAt(), found.CreatedAt(), time.Second)
}

func TestSQLiteTaskRepository_Save_Update(t *testing.T) {
	db := setupSQLiteTestDB(t)
	repo := NewSQLiteTaskRepository(db)
	ctx := context.Background()

	created, err := task.NewTask(uuid.New(), "Write report", value_objects.PriorityMedium, value_objects.MustNewDuration(60))
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, created))

	require.NoError(t, created.MarkScheduled())
	created.SetDuration(value_objects.MustNewDuration(120))
	created.SetDependencies([]uuid.UUID{uuid.New()})
	require.NoError(t, repo.Save(ctx, created))

	found, err := repo.FindByID(ctx, created.ID())
	require.NoError(t, err)
	assert.Equal(t, task.StatusScheduled, found.Status())
	assert.Equal(t, 120, found.Duration().Minutes())
	assert.Len(t, found.Dependencies(), 1)
}

func TestSQLiteTaskRepository_Save_CompletionWindow(t *testing.T) {
	db := setupSQLiteTestDB(t)
	repo := NewSQLiteTaskRepository(db)
	ctx := context.Background()

	created, err := task.NewTask(uuid.New(), "Write report", value_objects.PriorityMedium, value_objects.MustNewDuration(60))
	require.NoError(t, err)
	start := time.Date(2026, time.March, 2, 10, 0, 0, 0, time.UTC)
	require.NoError(t, created.Complete(start, start.Add(45*time.Minute)))
	require.NoError(t, repo.Save(ctx, created))

	found, err := repo.FindByID(ctx, created.ID())
	require.NoError(t, err)
	assert.True(t, found.IsCompleted())
	require.NotNil(t, found.ActualStart())
	assert.Equal(t, start, found.ActualStart().UTC())
	assert.Equal(t, start.Add(45*time.Minute), found.ActualEnd().UTC())
}

func TestSQLiteTaskRepository_FindByID_NotFound(t *testing.T) {
	db := setupSQLiteTestDB(t)
	repo := NewSQLiteTaskRepository(db)

	_, err := repo.FindByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, task.ErrTaskNotFound)
}

func TestSQLiteTaskRepository_FindPending(t *testing.T) {
	db := setupSQLiteTestDB(t)
	repo := NewSQLiteTaskRepository(db)
	ctx := context.Background()
	userID := uuid.New()

	pending, err := task.NewTask(userID, "Pending task", value_objects.PriorityMedium, value_objects.MustNewDuration(30))
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, pending))

	scheduled, err := task.NewTask(userID, "Scheduled task", value_objects.PriorityMedium, value_objects.MustNewDuration(30))
	require.NoError(t, err)
	require.NoError(t, scheduled.MarkScheduled())
	require.NoError(t, repo.Save(ctx, scheduled))

	other, err := task.NewTask(uuid.New(), "Someone else's", value_objects.PriorityMedium, value_objects.MustNewDuration(30))
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, other))

	got, err := repo.FindPending(ctx, userID)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, pending.ID(), got[0].ID())

	all, err := repo.FindByUserID(ctx, userID)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestSQLiteTaskRepository_Delete(t *testing.T) {
	db := setupSQLiteTestDB(t)
	repo := NewSQLiteTaskRepository(db)
	ctx := context.Background()

	created, err := task.NewTask(uuid.New(), "Write report", value_objects.PriorityMedium, value_objects.MustNewDuration(60))
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, created))

	require.NoError(t, repo.Delete(ctx, created.ID()))

	_, err = repo.FindByID(ctx, created.ID())
	assert.ErrorIs(t, err, task.ErrTaskNotFound)

	assert.ErrorIs(t, repo.Delete(ctx, created.ID()), task.ErrTaskNotFound)
}
