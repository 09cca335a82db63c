package chat

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository is a PostgreSQL implementation of Repository.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL transcript repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// ListByDevice retrieves a device's transcript sorted by timestamp ascending.
func (r *PostgresRepository) ListByDevice(ctx context.Context, deviceID int64) ([]*Message, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, device_id, is_user, message, timestamp, image_url
		FROM chat_messages
		WHERE device_id = $1
		ORDER BY timestamp ASC, id ASC`, deviceID)
	if err != nil {
		return nil, fmt.Errorf("querying messages: %w", err)
	}
	defer rows.Close()

	var items []*Message
	for rows.Next() {
		var m Message
		if err := rows.Scan(&m.ID, &m.DeviceID, &m.IsUser, &m.Message, &m.Timestamp, &m.ImageURL); err != nil {
			return nil, fmt.Errorf("scanning message: %w", err)
		}
		items = append(items, &m)
	}
	return items, rows.Err()
}

// Create persists a message, assigning its ID.
func (r *PostgresRepository) Create(ctx context.Context, message *Message) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO chat_messages (device_id, is_user, message, timestamp, image_url)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`,
		message.DeviceID, message.IsUser, message.Message, message.Timestamp, message.ImageURL).
		Scan(&message.ID)
}

// DeleteByDevice removes a device's entire transcript.
func (r *PostgresRepository) DeleteByDevice(ctx context.Context, deviceID int64) error {
	_, err := r.pool.Exec(ctx,
		`DELETE FROM chat_messages WHERE device_id = $1`, deviceID)
	return err
}
