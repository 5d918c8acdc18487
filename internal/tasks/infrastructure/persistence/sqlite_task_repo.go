package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	sharedPersistence "github.com/ascendhq/ascend/internal/shared/infrastructure/persistence"
	"github.com/ascendhq/ascend/internal/tasks/domain/task"
	"github.com/ascendhq/ascend/internal/tasks/domain/value_objects"
)

// SQLiteTaskRepository implements task.Repository using SQLite for local
// mode. Timestamps are stored as RFC 3339 strings.
type SQLiteTaskRepository struct {
	db *sql.DB
}

func NewSQLiteTaskRepository(db *sql.DB) *SQLiteTaskRepository {
	return &SQLiteTaskRepository{db: db}
}

func (r *SQLiteTaskRepository) Save(ctx context.Context, t *task.Task) error {
	exec := sharedPersistence.SQLiteQuerier(ctx, r.db)

	query := `
		INSERT INTO tasks (id, user_id, title, category, priority, estimated_minutes, deadline, status, actual_start, actual_end, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			title = excluded.title,
			category = excluded.category,
			priority = excluded.priority,
			estimated_minutes = excluded.estimated_minutes,
			deadline = excluded.deadline,
			status = excluded.status,
			actual_start = excluded.actual_start,
			actual_end = excluded.actual_end,
			updated_at = excluded.updated_at
	`
	_, err := exec.ExecContext(ctx, query,
		t.ID().String(),
		t.UserID().String(),
		t.Title(),
		t.Category(),
		t.Priority().String(),
		t.Duration().Minutes(),
		formatNullableTime(t.Deadline()),
		t.Status().String(),
		formatNullableTime(t.ActualStart()),
		formatNullableTime(t.ActualEnd()),
		t.CreatedAt().UTC().Format(time.RFC3339),
		t.UpdatedAt().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return err
	}

	if _, err := exec.ExecContext(ctx, `DELETE FROM task_dependencies WHERE task_id = ?`, t.ID().String()); err != nil {
		return err
	}
	for _, dep := range t.Dependencies() {
		if _, err := exec.ExecContext(ctx,
			`INSERT INTO task_dependencies (task_id, depends_on) VALUES (?, ?)`,
			t.ID().String(), dep.String()); err != nil {
			return err
		}
	}

	return nil
}

func (r *SQLiteTaskRepository) FindByID(ctx context.Context, id uuid.UUID) (*task.Task, error) {
	exec := sharedPersistence.SQLiteQuerier(ctx, r.db)

	query := `
		SELECT id, user_id, title, category, priority, estimated_minutes, deadline, status, actual_start, actual_end, created_at, updated_at
		FROM tasks
		WHERE id = ?
	`

	row, err := scanSQLiteTaskRow(exec.QueryRowContext(ctx, query, id.String()))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
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

func (r *SQLiteTaskRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*task.Task, error) {
	return r.findWhere(ctx, `user_id = ?`, userID.String())
}

func (r *SQLiteTaskRepository) FindPending(ctx context.Context, userID uuid.UUID) ([]*task.Task, error) {
	return r.findWhere(ctx, `user_id = ? AND status = 'pending'`, userID.String())
}

func (r *SQLiteTaskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	exec := sharedPersistence.SQLiteQuerier(ctx, r.db)

	result, err := exec.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id.String())
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return task.ErrTaskNotFound
	}
	return nil
}

func (r *SQLiteTaskRepository) findWhere(ctx context.Context, where string, args ...any) ([]*task.Task, error) {
	exec := sharedPersistence.SQLiteQuerier(ctx, r.db)

	query := `
		SELECT id, user_id, title, category, priority, estimated_minutes, deadline, status, actual_start, actual_end, created_at, updated_at
		FROM tasks
		WHERE ` + where + `
		ORDER BY created_at DESC
	`

	rows, err := exec.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var taskRows []sqliteTaskRow
	for rows.Next() {
		row, err := scanSQLiteTaskRow(rows)
		if err != nil {
			return nil, err
		}
		taskRows = append(taskRows, row)
	}
	if err := rows.Err(); err != nil {
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

type sqliteTaskRow struct {
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

func (row sqliteTaskRow) toDomain(deps []uuid.UUID) (*task.Task, error) {
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

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSQLiteTaskRow(row rowScanner) (sqliteTaskRow, error) {
	var (
		tr                               sqliteTaskRow
		id, userID                       string
		deadline, actualStart, actualEnd sql.NullString
		createdAt, updatedAt             string
	)

	if err := row.Scan(
		&id, &userID, &tr.title, &tr.category, &tr.priority, &tr.estimatedMinutes,
		&deadline, &tr.status, &actualStart, &actualEnd, &createdAt, &updatedAt,
	); err != nil {
		return sqliteTaskRow{}, err
	}

	var err error
	if tr.id, err = uuid.Parse(id); err != nil {
		return sqliteTaskRow{}, fmt.Errorf("invalid task id: %w", err)
	}
	if tr.userID, err = uuid.Parse(userID); err != nil {
		return sqliteTaskRow{}, fmt.Errorf("invalid user id: %w", err)
	}
	if tr.deadline, err = parseNullableTime(deadline); err != nil {
		return sqliteTaskRow{}, fmt.Errorf("invalid deadline: %w", err)
	}
	if tr.actualStart, err = parseNullableTime(actualStart); err != nil {
		return sqliteTaskRow{}, fmt.Errorf("invalid actual start: %w", err)
	}
	if tr.actualEnd, err = parseNullableTime(actualEnd); err != nil {
		return sqliteTaskRow{}, fmt.Errorf("invalid actual end: %w", err)
	}
	if tr.createdAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return sqliteTaskRow{}, fmt.Errorf("invalid created at: %w", err)
	}
	if tr.updatedAt, err = time.Parse(time.RFC3339, updatedAt); err != nil {
		return sqliteTaskRow{}, fmt.Errorf("invalid updated at: %w", err)
	}

	return tr, nil
}

func (r *SQLiteTaskRepository) loadDependencies(ctx context.Context, exec sharedPersistence.SQLiteExecutor, taskID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := exec.QueryContext(ctx,
		`SELECT depends_on FROM task_dependencies WHERE task_id = ?`, taskID.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var deps []uuid.UUID
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		dep, err := uuid.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid dependency id: %w", err)
		}
		deps = append(deps, dep)
	}
	return deps, rows.Err()
}

func formatNullableTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UTC().Format(time.RFC3339)
}

func parseNullableTime(value sql.NullString) (*time.Time, error) {
	if !value.Valid || value.String == "" {
		return nil, nil
	}
	parsed, err := time.Parse(time.RFC3339, value.String)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}
