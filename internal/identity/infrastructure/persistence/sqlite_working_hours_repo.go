package persistence

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	schedulingDomain "github.com/ascendhq/ascend/internal/scheduling/domain"
	sharedPersistence "github.com/ascendhq/ascend/internal/shared/infrastructure/persistence"
)

// SQLiteWorkingHoursRepository implements WorkingHoursRepository using
// SQLite for local mode.
type SQLiteWorkingHoursRepository struct {
	db *sql.DB
}

func NewSQLiteWorkingHoursRepository(db *sql.DB) *SQLiteWorkingHoursRepository {
	return &SQLiteWorkingHoursRepository{db: db}
}

func (r *SQLiteWorkingHoursRepository) Get(ctx context.Context, userID uuid.UUID) (*schedulingDomain.WorkingHours, error) {
	exec := sharedPersistence.SQLiteQuerier(ctx, r.db)

	query := `
		SELECT weekday, start_minute, end_minute
		FROM working_hours
		WHERE user_id = ?
		ORDER BY weekday
	`

	rows, err := exec.QueryContext(ctx, query, userID.String())
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

func (r *SQLiteWorkingHoursRepository) Save(ctx context.Context, userID uuid.UUID, hours schedulingDomain.WorkingHours) error {
	exec := sharedPersistence.SQLiteQuerier(ctx, r.db)

	if _, err := exec.ExecContext(ctx, `DELETE FROM working_hours WHERE user_id = ?`, userID.String()); err != nil {
		return err
	}

	query := `
		INSERT INTO working_hours (user_id, weekday, start_minute, end_minute)
		VALUES (?, ?, ?, ?)
	`
	for _, day := range hours.Days() {
		if _, err := exec.ExecContext(ctx, query, userID.String(), int(day), hours.StartMinute(), hours.EndMinute()); err != nil {
			return err
		}
	}

	return nil
}
