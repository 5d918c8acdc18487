package outbox

import (
	"context"

	sharedPersistence "github.com/ascendhq/ascend/internal/shared/infrastructure/persistence"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository implements Repository using PostgreSQL.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL outbox repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// SaveBatch inserts a batch of messages, joining the in-context transaction
// when one is present.
func (r *PostgresRepository) SaveBatch(ctx context.Context, msgs []*Message) error {
	exec := sharedPersistence.Executor(ctx, r.pool)

	query := `
		INSERT INTO outbox_messages (event_id, aggregate_type, aggregate_id, routing_key, payload, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	for _, msg := range msgs {
		_, err := exec.Exec(ctx, query,
			msg.EventID,
			msg.AggregateType,
			msg.AggregateID,
			msg.RoutingKey,
			msg.Payload,
			msg.CreatedAt,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

// GetUnpublished returns up to limit unpublished messages in insertion order.
func (r *PostgresRepository) GetUnpublished(ctx context.Context, limit int) ([]*Message, error) {
	query := `
		SELECT id, event_id, aggregate_type, aggregate_id, routing_key, payload, created_at, retry_count
		FROM outbox_messages
		WHERE published_at IS NULL
		ORDER BY id
		LIMIT $1
	`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	msgs := make([]*Message, 0, limit)
	for rows.Next() {
		msg := &Message{}
		if err := rows.Scan(
			&msg.ID,
			&msg.EventID,
			&msg.AggregateType,
			&msg.AggregateID,
			&msg.RoutingKey,
			&msg.Payload,
			&msg.CreatedAt,
			&msg.RetryCount,
		); err != nil {
			return nil, err
		}
		msgs = append(msgs, msg)
	}

	return msgs, rows.Err()
}

// MarkPublished records a successful publish.
func (r *PostgresRepository) MarkPublished(ctx context.Context, id int64) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE outbox_messages SET published_at = NOW() WHERE id = $1`, id)
	return err
}

// MarkFailed records a failed publish attempt.
func (r *PostgresRepository) MarkFailed(ctx context.Context, id int64, reason string) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE outbox_messages SET retry_count = retry_count + 1, last_error = $2 WHERE id = $1`,
		id, reason)
	return err
}
