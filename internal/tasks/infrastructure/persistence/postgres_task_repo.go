package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	sharedPersistence "github.com/ascendhq/ascend/internal/shared/infrastructure/persistence"
	"github.com/ascendhq/ascend/internal/tasks/domain/task"
	"github.com/ascendhq/ascend/internal/tasks/domain/value_objects"
)

// PostgresTaskRepository implements task.Repository using PostgreSQL.
type PostgresTaskRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresTaskRepository(pool *pgxpool.Pool) *PostgresTaskRepository {
	return &PostgresTaskRepository{pool: pool}
}

type taskRow struct {
	id               uuid.UUID
	userID           uuid.UUID
	title            string
	category         string
	priority         string
	estimatedMinutes int
	deadline         *time.Time
	status           string
	actualStart      *time.Time
	actualEnd        *time.Time
	createdAt        time.Time
	updatedAt        time.Time
}

func (row taskRow) toDomain(deps []uuid.UUID) (*task.Task, error) {
	prio, err := value_objects.ParsePriority(row.priority)
	if err != nil {
		return nil, err
	}

	return task.RehydrateTask(
		row.id, row.userID, row.title, row.category,
		prio, value_objects.MustNewDuration(row.estimatedMinutes),
		row.deadline, deps,
		task.ParseStatus(row.status),
		row.actualStart, row.actualEnd,
		row.createdAt, row.updatedAt,
	), nil
}

// Save upserts the task and rewrites its dependency rows, joining the
// in-context transaction when one is present.
func (r *PostgresTaskRepository) Save(ctx context.Context, t *task.Task) error {
	exec := sharedPersistence.Executor(ctx, r.pool)

	query := `
		INSERT INTO tasks (id, user_id, title, category, priority, estimated_minutes, deadline, status, actual_start, actual_end, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			category = EXCLUDED.category,
			priority = EXCLUDED.priority,
			estimated_minutes = EXCLUDED.estimated_minutes,
			deadline = EXCLUDED.deadline,
			status = EXCLUDED.status,
			actual_start = EXCLUDED.actual_start,
			actual_end = EXCLUDED.actual_end,
			updated_at = EXCLUDED.updated_at
	`
	_, err := exec.Exec(ctx, query,
		t.ID(),
		t.UserID(),
		t.Title(),
		t.Category(),
		t.Priority().String(),
		t.Duration().Minutes(),
		t.Deadline(),
		t.Status().String(),
		t.ActualStart(),
		t.ActualEnd(),
		t.CreatedAt(),
		t.UpdatedAt(),
	)
	if err != nil {
		return err
	}

	if _, err := exec.Exec(ctx, `DELETE FROM task_dependencies WHERE task_id = $1`, t.ID()); err != nil {
		return err
	}
	for _, dep := range t.Dependencies() {
		if _, err := exec.Exec(ctx,
			`INSERT INTO task_dependencies (task_id, depends_on) VALUES ($1, $2)`,
			t.ID(), dep); err != nil {
			return err
		}
	}

	return nil
}

// FindByID loads a task. Returns task.ErrTaskNotFound when absent.
func (r *PostgresTaskRepository) FindByID(ctx context.Context, id uuid.UUID) (*task.Task, error) {
	exec := sharedPersistence.Executor(ctx, r.pool)

	query := `
		SELECT id, user_id, title, category, priority, estimated_minutes, deadline, status, actual_start, actual_end, created_at, updated_at
		FROM tasks
		WHERE id = $1
	`

	row, err := scanTaskRow(exec.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, task.ErrTaskNotFound
		}
		return nil, err
	}

	deps, err := r.loadDependencies(ctx, exec, row.id)
	if err != nil {
		return nil, err
	}

	return row.toDomain(deps)
}

// FindByUserID returns all tasks for a user, newest first.
func (r *PostgresTaskRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*task.Task, error) {
	return r.findWhere(ctx, `user_id = $1`, userID)
}

// FindPending returns a user's tasks that still need scheduling.
func (r *PostgresTaskRepository) FindPending(ctx context.Context, userID uuid.UUID) ([]*task.Task, error) {
	return r.findWhere(ctx, `user_id = $1 AND status = 'pending'`, userID)
}

// Delete removes a task; dependency rows cascade.
func (r *PostgresTaskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	exec := sharedPersistence.Executor(ctx, r.pool)

	tag, err := exec.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return task.ErrTaskNotFound
	}
	return nil
}

func (r *PostgresTaskRepository) findWhere(ctx context.Context, where string, args ...any) ([]*task.Task, error) {
	exec := sharedPersistence.Executor(ctx, r.pool)

	query := `
		SELECT id, user_id, title, category, priority, estimated_minutes, deadline, status, actual_start, actual_end, created_at, updated_at
		FROM tasks
		WHERE ` + where + `
		ORDER BY created_at DESC
	`

	pgxRows, err := exec.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer pgxRows.Close()

	var taskRows []taskRow
	for pgxRows.Next() {
		row, err := scanTaskRow(pgxRows)
		if err != nil {
			return nil, err
		}
		taskRows = append(taskRows, row)
	}
	if err := pgxRows.Err(); err != nil {
		return nil, err
	}

	tasks := make([]*task.Task, 0, len(taskRows))
	for _, row := range taskRows {
		deps, err := r.loadDependencies(ctx, exec, row.id)
		if err != nil {
			return nil, err
		}
		t, err := row.toDomain(deps)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}

	return tasks, nil
}

func scanTaskRow(row pgx.Row) (taskRow, error) {
	var tr taskRow
	err := row.Scan(
		&tr.id, &tr.userID, &tr.title, &tr.category, &tr.priority, &tr.estimatedMinutes,
		&tr.deadline, &tr.status, &tr.actualStart, &tr.actualEnd, &tr.createdAt, &tr.updatedAt,
	)
	return tr, err
}

func (r *PostgresTaskRepository) loadDependencies(ctx context.Context, exec sharedPersistence.DBExecutor, taskID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := exec.Query(ctx,
		`SELECT depends_on FROM task_dependencies WHERE task_id = $1`, taskID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var deps []uuid.UUID
	for rows.Next() {
		var dep uuid.UUID
		if err := rows.Scan(&dep); err != nil {
			return nil, err
		}
		deps = append(deps, dep)
	}
	return deps, rows.Err()
}
