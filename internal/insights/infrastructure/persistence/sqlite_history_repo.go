package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ascendhq/ascend/internal/insights/domain"
	sharedPersistence "github.com/ascendhq/ascend/internal/shared/infrastructure/persistence"
)

// SQLiteHistoryRepository implements HistoryRepository using SQLite for
// local mode. Timestamps are stored as RFC 3339 strings.
type SQLiteHistoryRepository struct {
	db *sql.DB
}

func NewSQLiteHistoryRepository(db *sql.DB) *SQLiteHistoryRepository {
	return &SQLiteHistoryRepository{db: db}
}

func (r *SQLiteHistoryRepository) Append(ctx context.Context, record domain.TaskCompletion) error {
	exec := sharedPersistence.SQLiteQuerier(ctx, r.db)

	query := `
		INSERT INTO task_completions
			(id, user_id, task_id, category, estimated_minutes, actual_minutes, actual_start, actual_end, success, recorded_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	success := 0
	if record.Success {
		success = 1
	}
	_, err := exec.ExecContext(ctx, query,
		record.ID.String(),
		record.UserID.String(),
		record.TaskID.String(),
		record.Category,
		record.EstimatedMinutes,
		record.ActualMinutes,
		record.ActualStart.UTC().Format(time.RFC3339),
		record.ActualEnd.UTC().Format(time.RFC3339),
		success,
		record.RecordedAt.UTC().Format(time.RFC3339),
	)
	return err
}

func (r *SQLiteHistoryRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.TaskCompletion, error) {
	exec := sharedPersistence.SQLiteQuerier(ctx, r.db)

	query := `
		SELECT id, user_id, task_id, category, estimated_minutes, actual_minutes, actual_start, actual_end, success, recorded_at
		FROM task_completions
		WHERE user_id = ?
		ORDER BY recorded_at
	`

	rows, err := exec.QueryContext(ctx, query, userID.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []domain.TaskCompletion
	for rows.Next() {
		rec, err := scanCompletion(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}

func scanCompletion(rows *sql.Rows) (domain.TaskCompletion, error) {
	var (
		rec                            domain.TaskCompletion
		id, userID, taskID             string
		actualStart, actualEnd, stored string
		success                        int
	)

	if err := rows.Scan(
		&id,
		&userID,
		&taskID,
		&rec.Category,
		&rec.EstimatedMinutes,
		&rec.ActualMinutes,
		&actualStart,
		&actualEnd,
		&success,
		&stored,
	); err != nil {
		return domain.TaskCompletion{}, err
	}

	var err error
	if rec.ID, err = uuid.Parse(id); err != nil {
		return domain.TaskCompletion{}, fmt.Errorf("invalid completion id: %w", err)
	}
	if rec.UserID, err = uuid.Parse(userID); err != nil {
		return domain.TaskCompletion{}, fmt.Errorf("invalid user id: %w", err)
	}
	if rec.TaskID, err = uuid.Parse(taskID); err != nil {
		return domain.TaskCompletion{}, fmt.Errorf("invalid task id: %w", err)
	}
	if rec.ActualStart, err = time.Parse(time.RFC3339, actualStart); err != nil {
		return domain.TaskCompletion{}, fmt.Errorf("invalid actual start: %w", err)
	}
	if rec.ActualEnd, err = time.Parse(time.RFC3339, actualEnd); err != nil {
		return domain.TaskCompletion{}, fmt.Errorf("invalid actual end: %w", err)
	}
	if rec.RecordedAt, err = time.Parse(time.RFC3339, stored); err != nil {
		return domain.TaskCompletion{}, fmt.Errorf("invalid recorded at: %w", err)
	}
	rec.Success = success != 0

	return rec, nil
}
