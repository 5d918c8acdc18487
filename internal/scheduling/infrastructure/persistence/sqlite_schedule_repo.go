package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ascendhq/ascend/internal/scheduling/domain"
	sharedPersistence "github.com/ascendhq/ascend/internal/shared/infrastructure/persistence"
)

// SQLiteScheduleRepository implements ScheduleRepository using SQLite for
// local mode.
type SQLiteScheduleRepository struct {
	db *sql.DB
}

func NewSQLiteScheduleRepository(db *sql.DB) *SQLiteScheduleRepository {
	return &SQLiteScheduleRepository{db: db}
}

func (r *SQLiteScheduleRepository) Save(ctx context.Context, schedule *domain.Schedule) error {
	exec := sharedPersistence.SQLiteQuerier(ctx, r.db)

	query := `
		INSERT INTO schedules (id, user_id, schedule_date, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (user_id, schedule_date) DO UPDATE SET
			updated_at = excluded.updated_at
	`
	_, err := exec.ExecContext(ctx, query,
		schedule.ID().String(),
		schedule.UserID().String(),
		schedule.Date().Format(dateLayout),
		schedule.CreatedAt().UTC().Format(time.RFC3339),
		schedule.UpdatedAt().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return err
	}

	if _, err := exec.ExecContext(ctx, `DELETE FROM time_blocks WHERE schedule_id = ?`, schedule.ID().String()); err != nil {
		return err
	}

	blockQuery := `
		INSERT INTO time_blocks (id, schedule_id, user_id, task_id, start_time, end_time, focus_time, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	for _, block := range schedule.Blocks() {
		focusTime := 0
		if block.IsFocusTime() {
			focusTime = 1
		}
		if _, err := exec.ExecContext(ctx, blockQuery,
			block.ID().String(),
			schedule.ID().String(),
			block.UserID().String(),
			block.TaskID().String(),
			block.StartTime().UTC().Format(time.RFC3339),
			block.EndTime().UTC().Format(time.RFC3339),
			focusTime,
			block.CreatedAt().UTC().Format(time.RFC3339),
			block.UpdatedAt().UTC().Format(time.RFC3339),
		); err != nil {
			return err
		}
	}

	return nil
}

func (r *SQLiteScheduleRepository) FindByUserAndDate(ctx context.Context, userID uuid.UUID, date time.Time) (*domain.Schedule, error) {
	exec := sharedPersistence.SQLiteQuerier(ctx, r.db)

	query := `
		SELECT id, user_id, schedule_date, created_at, updated_at
		FROM schedules
		WHERE user_id = ? AND schedule_date = ?
	`
	return r.loadSchedule(ctx, exec, query, userID.String(), date.Format(dateLayout))
}

func (r *SQLiteScheduleRepository) FindByUserAndTask(ctx context.Context, userID, taskID uuid.UUID) (*domain.Schedule, error) {
	exec := sharedPersistence.SQLiteQuerier(ctx, r.db)

	query := `
		SELECT s.id, s.user_id, s.schedule_date, s.created_at, s.updated_at
		FROM schedules s
		JOIN time_blocks b ON b.schedule_id = s.id
		WHERE s.user_id = ? AND b.task_id = ?
	`
	return r.loadSchedule(ctx, exec, query, userID.String(), taskID.String())
}

func (r *SQLiteScheduleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	exec := sharedPersistence.SQLiteQuerier(ctx, r.db)
	_, err := exec.ExecContext(ctx, `DELETE FROM schedules WHERE id = ?`, id.String())
	return err
}

func (r *SQLiteScheduleRepository) loadSchedule(ctx context.Context, exec sharedPersistence.SQLiteExecutor, query string, args ...any) (*domain.Schedule, error) {
	var rawID, rawUserID, rawDate, rawCreated, rawUpdated string

	err := exec.QueryRowContext(ctx, query, args...).Scan(&rawID, &rawUserID, &rawDate, &rawCreated, &rawUpdated)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	id, err := uuid.Parse(rawID)
	if err != nil {
		return nil, fmt.Errorf("invalid schedule id: %w", err)
	}
	userID, err := uuid.Parse(rawUserID)
	if err != nil {
		return nil, fmt.Errorf("invalid user id: %w", err)
	}
	date, err := time.Parse(dateLayout, rawDate)
	if err != nil {
		return nil, fmt.Errorf("invalid schedule date: %w", err)
	}
	createdAt, err := time.Parse(time.RFC3339, rawCreated)
	if err != nil {
		return nil, fmt.Errorf("invalid created at: %w", err)
	}
	updatedAt, err := time.Parse(time.RFC3339, rawUpdated)
	if err != nil {
		return nil, fmt.Errorf("invalid updated at: %w", err)
	}

	blocks, err := r.loadBlocks(ctx, exec, id)
	if err != nil {
		return nil, err
	}

	return domain.RehydrateSchedule(id, userID, date, blocks, createdAt, updatedAt), nil
}

func (r *SQLiteScheduleRepository) loadBlocks(ctx context.Context, exec sharedPersistence.SQLiteExecutor, scheduleID uuid.UUID) ([]*domain.TimeBlock, error) {
	query := `
		SELECT id, user_id, task_id, start_time, end_time, focus_time, created_at, updated_at
		FROM time_blocks
		WHERE schedule_id = ?
		ORDER BY start_time
	`

	rows, err := exec.QueryContext(ctx, query, scheduleID.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var blocks []*domain.TimeBlock
	for rows.Next() {
		var (
			rawID, rawUserID, rawTaskID              string
			rawStart, rawEnd, rawCreated, rawUpdated string
			focusTime                                int
		)
		if err := rows.Scan(&rawID, &rawUserID, &rawTaskID, &rawStart, &rawEnd, &focusTime, &rawCreated, &rawUpdated); err != nil {
			return nil, err
		}

		id, err := uuid.Parse(rawID)
		if err != nil {
			return nil, fmt.Errorf("invalid block id: %w", err)
		}
		userID, err := uuid.Parse(rawUserID)
		if err != nil {
			return nil, fmt.Errorf("invalid user id: %w", err)
		}
		taskID, err := uuid.Parse(rawTaskID)
		if err != nil {
			return nil, fmt.Errorf("invalid task id: %w", err)
		}
		startTime, err := time.Parse(time.RFC3339, rawStart)
		if err != nil {
			return nil, fmt.Errorf("invalid start time: %w", err)
		}
		endTime, err := time.Parse(time.RFC3339, rawEnd)
		if err != nil {
			return nil, fmt.Errorf("invalid end time: %w", err)
		}
		createdAt, err := time.Parse(time.RFC3339, rawCreated)
		if err != nil {
			return nil, fmt.Errorf("invalid created at: %w", err)
		}
		updatedAt, err := time.Parse(time.RFC3339, rawUpdated)
		if err != nil {
			return nil, fmt.Errorf("invalid updated at: %w", err)
		}

		blocks = append(blocks, domain.RehydrateTimeBlock(
			id, userID, scheduleID, taskID, startTime, endTime, focusTime != 0, createdAt, updatedAt,
		))
	}

	return blocks, rows.Err()
}
