package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	schedulingDomain "github.com/ascendhq/ascend/internal/scheduling/domain"
	sharedPersistence "github.com/ascendhq/ascend/internal/shared/infrastructure/persistence"
)

// PostgresWorkingHoursRepository implements WorkingHoursRepository using
// PostgreSQL. One row per enabled weekday; all rows carry the same window.
type PostgresWorkingHoursRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresWorkingHoursRepository(pool *pgxpool.Pool) *PostgresWorkingHoursRepository {
	return &PostgresWorkingHoursRepository{pool: pool}
}

func (r *PostgresWorkingHoursRepository) Get(ctx context.Context, userID uuid.UUID) (*schedulingDomain.WorkingHours, error) {
	query := `
		SELECT weekday, start_minute, end_minute
		FROM working_hours
		WHERE user_id = $1
		ORDER BY weekday
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var (
		days                   []time.Weekday
		startMinute, endMinute int
	)
	for rows.Next() {
		var weekday int
		if err := rows.Scan(&weekday, &startMinute, &endMinute); err != nil {
			return nil, err
		}
		days = append(days, time.Weekday(weekday))
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(days) == 0 {
		return nil, nil
	}

	hours, err := schedulingDomain.NewWorkingHours(startMinute, endMinute, days)
	if err != nil {
		return nil, err
	}
	return &hours, nil
}

func (r *PostgresWorkingHoursRepository) Save(ctx context.Context, userID uuid.UUID, hours schedulingDomain.WorkingHours) error {
	exec := sharedPersistence.Executor(ctx, r.pool)

	if _, err := exec.Exec(ctx, `DELETE FROM working_hours WHERE user_id = $1`, userID); err != nil {
		return err
	}

	query := `
		INSERT INTO working_hours (user_id, weekday, start_minute, end_minute)
		VALUES ($1, $2, $3, $4)
	`
	for _, day := range hours.Days() {
		if _, err := exec.Exec(ctx, query, userID, int(day), hours.StartMinute(), hours.EndMinute()); err != nil {
			return err
		}
	}

	return nil
}
