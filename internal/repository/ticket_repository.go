package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/support-desk/internal/domain"
)

// TicketRepository encapsulates ticket persistence.
//
// GetByID intentionally does not filter soft-deleted rows: the delete path
// needs to see an already-deleted ticket to reject the double delete with a
// conflict. Callers treat IsDeleted on the returned ticket accordingly.
type TicketRepository interface {
	Create(ctx context.Context, ticket *domain.Ticket) error
	Update(ctx context.Context, ticket *domain.Ticket) error
	GetByID(ctx context.Context, id string) (*domain.Ticket, error)
	ListAll(ctx context.Context) ([]domain.Ticket, error)
	ListForUser(ctx context.Context, userID string) ([]domain.Ticket, error)
	SoftDelete(ctx context.Context, id string) error
	CountActive(ctx context.Context) (int64, error)
	CountForUser(ctx context.Context, userID string) (int64, error)
}

type ticketRepository struct {
	pool *pgxpool.Pool
}

// NewTicketRepository instantiates repository.
func NewTicketRepository(pool *pgxpool.Pool) TicketRepository {
	return &ticketRepository{pool: pool}
}

const ticketColumns = `ticket_id, user_id, category, status, priority, assignee, description,
       resolution_notes, is_deleted, created_at, updated_at`

func (r *ticketRepository) Create(ctx context.Context, ticket *domain.Ticket) error {
	const query = `
        INSERT INTO tickets (ticket_id, user_id, category, status, priority, assignee, description, resolution_notes)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		ticket.ID,
		ticket.RequesterID,
		ticket.Category,
		ticket.Status,
		ticket.Priority,
		ticket.AssigneeID,
		ticket.Description,
		ticket.ResolutionNotes,
	).Scan(&ticket.CreatedAt, &ticket.UpdatedAt)
}

func (r *ticketRepository) Update(ctx context.Context, ticket *domain.Ticket) error {
	const query = `
        UPDATE tickets SET category=$1, status=$2, priority=$3, assignee=$4, description=$5,
            resolution_notes=$6, updated_at=NOW()
        WHERE ticket_id=$7 AND is_deleted=FALSE`
	cmd, err := r.pool.Exec(ctx, query,
		ticket.Category,
		ticket.Status,
		ticket.Priority,
		ticket.AssigneeID,
		ticket.Description,
		ticket.ResolutionNotes,
		ticket.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *ticketRepository) GetByID(ctx context.Context, id string) (*domain.Ticket, error) {
	const query = `SELECT ` + ticketColumns + ` FROM tickets WHERE ticket_id=$1`

	var ticket domain.Ticket
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&ticket.ID,
		&ticket.RequesterID,
		&ticket.Category,
		&ticket.Status,
		&ticket.Priority,
		&ticket.AssigneeID,
		&ticket.Description,
		&ticket.ResolutionNotes,
		&ticket.IsDeleted,
		&ticket.CreatedAt,
		&ticket.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (r *ticketRepository) ListAll(ctx context.Context) ([]domain.Ticket, error) {
	const query = `SELECT ` + ticketColumns + `
        FROM tickets WHERE is_deleted=FALSE ORDER BY updated_at DESC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTickets(rows)
}

// ListForUser returns non-deleted tickets where the user is requester or assignee.
func (r *ticketRepository) ListForUser(ctx context.Context, userID string) ([]domain.Ticket, error) {
	const query = `SELECT ` + ticketColumns + `
        FROM tickets WHERE (user_id=$1 OR assignee=$1) AND is_deleted=FALSE
        ORDER BY updated_at DESC`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTickets(rows)
}

func (r *ticketRepository) SoftDelete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx,
		`UPDATE tickets SET is_deleted=TRUE, updated_at=NOW() WHERE ticket_id=$1 AND is_deleted=FALSE`,
		id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *ticketRepository) CountActive(ctx context.Context) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM tickets WHERE is_deleted=FALSE`).Scan(&count)
	return count, err
}

func (r *ticketRepository) CountForUser(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM tickets WHERE (user_id=$1 OR assignee=$1) AND is_deleted=FALSE`,
		userID).Scan(&count)
	return count, err
}

func scanTickets(rows pgx.Rows) ([]domain.Ticket, error) {
	var result []domain.Ticket
	for rows.Next() {
		var ticket domain.Ticket
		if err := rows.Scan(
			&ticket.ID,
			&ticket.RequesterID,
			&ticket.Category,
			&ticket.Status,
			&ticket.Priority,
			&ticket.AssigneeID,
			&ticket.Description,
			&ticket.ResolutionNotes,
			&ticket.IsDeleted,
			&ticket.CreatedAt,
			&ticket.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, ticket)
	}
	return result, rows.Err()
}
