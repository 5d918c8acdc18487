package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ascendhq/ascend/internal/scheduling/domain"
	sharedPersistence "github.com/ascendhq/ascend/internal/shared/infrastructure/persistence"
)

const dateLayout = "2006-01-02"

// PostgresScheduleRepository implements ScheduleRepository using PostgreSQL.
type PostgresScheduleRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresScheduleRepository(pool *pgxpool.Pool) *PostgresScheduleRepository {
	return &PostgresScheduleRepository{pool: pool}
}

// Save upserts the schedule row and rewrites its block rows so removed
// blocks disappear. Joins the in-context transaction when one is present.
func (r *PostgresScheduleRepository) Save(ctx context.Context, schedule *domain.Schedule) error {
	exec := sharedPersistence.Executor(ctx, r.pool)

	query := `
		INSERT INTO schedules (id, user_id, schedule_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id, schedule_date) DO UPDATE SET
			updated_at = EXCLUDED.updated_at
	`
	_, err := exec.Exec(ctx, query,
		schedule.ID(),
		schedule.UserID(),
		schedule.Date().Format(dateLayout),
		schedule.CreatedAt(),
		schedule.UpdatedAt(),
	)
	if err != nil {
		return err
	}

	if _, err := exec.Exec(ctx, `DELETE FROM time_blocks WHERE schedule_id = $1`, schedule.ID()); err != nil {
		return err
	}

	blockQuery := `
		INSERT INTO time_blocks (id, schedule_id, user_id, task_id, start_time, end_time, focus_time, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	for _, block := range schedule.Blocks() {
		if _, err := exec.Exec(ctx, blockQuery,
			block.ID(),
			schedule.ID(),
			block.UserID(),
			block.TaskID(),
			block.StartTime(),
			block.EndTime(),
			block.IsFocusTime(),
			block.CreatedAt(),
			block.UpdatedAt(),
		); err != nil {
			return err
		}
	}

	return nil
}

// FindByUserAndDate loads the schedule for a user on a calendar date.
// Returns (nil, nil) when no schedule exists yet.
func (r *PostgresScheduleRepository) FindByUserAndDate(ctx context.Context, userID uuid.UUID, date time.Time) (*domain.Schedule, error) {
	exec := sharedPersistence.Executor(ctx, r.pool)

	query := `
		SELECT id, user_id, schedule_date, created_at, updated_at
		FROM schedules
		WHERE user_id = $1 AND schedule_date = $2
	`
	return r.loadSchedule(ctx, exec, query, userID, date.Format(dateLayout))
}

// FindByUserAndTask loads the schedule holding the block bound to a task.
// Returns (nil, nil) when the task has no block.
func (r *PostgresScheduleRepository) FindByUserAndTask(ctx context.Context, userID, taskID uuid.UUID) (*domain.Schedule, error) {
	exec := sharedPersistence.Executor(ctx, r.pool)

	query := `
		SELECT s.id, s.user_id, s.schedule_date, s.created_at, s.updated_at
		FROM schedules s
		JOIN time_blocks b ON b.schedule_id = s.id
		WHERE s.user_id = $1 AND b.task_id = $2
	`
	return r.loadSchedule(ctx, exec, query, userID, taskID)
}

// Delete removes a schedule; block rows cascade.
func (r *PostgresScheduleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	exec := sharedPersistence.Executor(ctx, r.pool)
	_, err := exec.Exec(ctx, `DELETE FROM schedules WHERE id = $1`, id)
	return err
}

func (r *PostgresScheduleRepository) loadSchedule(ctx context.Context, exec sharedPersistence.DBExecutor, query string, args ...any) (*domain.Schedule, error) {
	var (
		id, userID           uuid.UUID
		scheduleDate         time.Time
		createdAt, updatedAt time.Time
	)

	err := exec.QueryRow(ctx, query, args...).Scan(&id, &userID, &scheduleDate, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	blocks, err := r.loadBlocks(ctx, exec, id)
	if err != nil {
		return nil, err
	}

	return domain.RehydrateSchedule(id, userID, scheduleDate, blocks, createdAt, updatedAt), nil
}

func (r *PostgresScheduleRepository) loadBlocks(ctx context.Context, exec sharedPersistence.DBExecutor, scheduleID uuid.UUID) ([]*domain.TimeBlock, error) {
	query := `
		SELECT id, user_id, task_id, start_time, end_time, focus_time, created_at, updated_at
		FROM time_blocks
		WHERE schedule_id = $1
		ORDER BY start_time
	`

	rows, err := exec.Query(ctx, query, scheduleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var blocks []*domain.TimeBlock
	for rows.Next() {
		var (
			id, userID, taskID   uuid.UUID
			startTime, endTime   time.Time
			focusTime            bool
			createdAt, updatedAt time.Time
		)
		if err := rows.Scan(&id, &userID, &taskID, &startTime, &endTime, &focusTime, &createdAt, &updatedAt); err != nil {
			return nil, err
		}
		blocks = append(blocks, domain.RehydrateTimeBlock(
			id, userID, scheduleID, taskID, startTime, endTime, focusTime, createdAt, updatedAt,
		))
	}

	return blocks, rows.Err()
}
