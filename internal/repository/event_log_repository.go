package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/support-desk/internal/domain"
)

// EventLogRepository persists append-only audit entries. Entries are written
// fire-and-forget and have no read path over the API.
type EventLogRepository interface {
	Create(ctx context.Context, entry *domain.EventLog) error
}

type eventLogRepository struct {
	pool *pgxpool.Pool
}

// NewEventLogRepository returns a Postgres-backed implementation.
func NewEventLogRepository(pool *pgxpool.Pool) EventLogRepository {
	return &eventLogRepository{pool: pool}
}

func (r *eventLogRepository) Create(ctx context.Context, entry *domain.EventLog) error {
	const query = `
        INSERT INTO event_logs (event_id, user_id, event_type, description, metadata)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING created_at`
	return r.pool.QueryRow(ctx, query,
		entry.ID,
		entry.UserID,
		entry.EventType,
		entry.Description,
		entry.Metadata,
	).Scan(&entry.CreatedAt)
}
