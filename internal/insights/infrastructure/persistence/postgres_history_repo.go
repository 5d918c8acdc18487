package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ascendhq/ascend/internal/insights/domain"
	sharedPersistence "github.com/ascendhq/ascend/internal/shared/infrastructure/persistence"
)

// PostgresHistoryRepository implements HistoryRepository using PostgreSQL.
type PostgresHistoryRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresHistoryRepository(pool *pgxpool.Pool) *PostgresHistoryRepository {
	return &PostgresHistoryRepository{pool: pool}
}

// Append inserts a completion record, joining the in-context transaction
// when one is present.
func (r *PostgresHistoryRepository) Append(ctx context.Context, record domain.TaskCompletion) error {
	exec := sharedPersistence.Executor(ctx, r.pool)

	query := `
		INSERT INTO task_completions
			(id, user_id, task_id, category, estimated_minutes, actual_minutes, actual_start, actual_end, success, recorded_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := exec.Exec(ctx, query,
		record.ID,
		record.UserID,
		record.TaskID,
		record.Category,
		record.EstimatedMinutes,
		record.ActualMinutes,
		record.ActualStart,
		record.ActualEnd,
		record.Success,
		record.RecordedAt,
	)
	return err
}

// ListByUser returns the user's completion history in recording order.
func (r *PostgresHistoryRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.TaskCompletion, error) {
	query := `
		SELECT id, user_id, task_id, category, estimated_minutes, actual_minutes, actual_start, actual_end, success, recorded_at
		FROM task_completions
		WHERE user_id = $1
		ORDER BY recorded_at
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []domain.TaskCompletion
	for rows.Next() {
		var rec domain.TaskCompletion
		if err := rows.Scan(
			&rec.ID,
			&rec.UserID,
			&rec.TaskID,
			&rec.Category,
			&rec.EstimatedMinutes,
			&rec.ActualMinutes,
			&rec.ActualStart,
			&rec.ActualEnd,
			&rec.Success,
			&rec.RecordedAt,
		); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}
