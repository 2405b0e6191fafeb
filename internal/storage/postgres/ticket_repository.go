package postgres

import (
	"context"
	"fmt"

	"github.com/SaimonXX/qr-event-manager/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// TicketRepository backs the organizer-side ticket operations.
type TicketRepository struct {
	pool *pgxpool.Pool
}

func NewTicketRepository(pool *pgxpool.Pool) *TicketRepository {
	return &TicketRepository{pool: pool}
}

func (r *TicketRepository) EventExists(ctx context.Context, eventID string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM events WHERE id = $1)`, eventID).Scan(&exists)
	if err != nil {
		if isInvalidUUID(err) {
			return false, domain.ErrInvalidID
		}
		return false, fmt.Errorf("check event: %w", err)
	}
	return exists, nil
}

// InsertTickets bulk-inserts freshly generated unassigned tickets.
func (r *TicketRepository) InsertTickets(ctx context.Context, tickets []domain.Ticket) error {
	_, err := r.pool.CopyFrom(
		ctx,
		pgx.Identifier{"tickets"},
		[]string{"id", "event_id", "status", "created_at"},
		pgx.CopyFromSlice(len(tickets), func(i int) ([]any, error) {
			t := tickets[i]
			return []any{t.ID, t.EventID, string(t.Status), t.CreatedAt}, nil
		}),
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrEventNotFound
		}
		return fmt.Errorf("insert tickets: %w", err)
	}
	return nil
}

// ListByEvent returns an event's tickets, claimed first by guest name, with
// unclaimed slots trailing.
func (r *TicketRepository) ListByEvent(ctx context.Context, eventID string) ([]domain.Ticket, error) {
	query := fmt.Sprintf(`
SELECT %s
FROM tickets
WHERE event_id = $1
ORDER BY guest_name ASC NULLS LAST, created_at ASC`, ticketCols)

	rows, err := r.pool.Query(ctx, query, eventID)
	if err != nil {
		if isInvalidUUID(err) {
			return nil, domain.ErrInvalidID
		}
		return nil, fmt.Errorf("list tickets: %w", err)
	}
	defer rows.Close()

	var tickets []domain.Ticket
	for rows.Next() {
		t, err := scanTicket(rows)
		if err != nil {
			return nil, fmt.Errorf("scan ticket: %w", err)
		}
		tickets = append(tickets, t)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate tickets: %w", rows.Err())
	}
	return tickets, nil
}

func (r *TicketRepository) DeleteTicket(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM tickets WHERE id = $1`, id)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("delete ticket: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTicketNotFound
	}
	return nil
}
