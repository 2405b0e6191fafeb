package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/SaimonXX/qr-event-manager/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type GateRepository struct {
	pool *pgxpool.Pool
}

func NewGateRepository(pool *pgxpool.Pool) *GateRepository {
	return &GateRepository{pool: pool}
}

// GetWithEvent fetches a ticket by QR id joined with its event name.
func (r *GateRepository) GetWithEvent(ctx context.Context, ticketID string) (domain.Ticket, string, error) {
	const query = `
SELECT t.id, t.event_id, t.status,
COALESCE(t.guest_name, ''), COALESCE(t.guest_id_number, ''), COALESCE(t.guest_phone, ''),
COALESCE(t.device_id, ''), t.scanned_at, t.created_at,
e.name
FROM tickets t
JOIN events e ON e.id = t.event_id
WHERE t.id = $1`

	var t domain.Ticket
	var status, eventName string
	err := r.pool.QueryRow(ctx, query, ticketID).Scan(
		&t.ID,
		&t.EventID,
		&status,
		&t.GuestName,
		&t.GuestIDNumber,
		&t.GuestPhone,
		&t.DeviceID,
		&t.ScannedAt,
		&t.CreatedAt,
		&eventName,
	)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.Ticket{}, "", domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return domain.Ticket{}, "", domain.ErrTicketNotFound
		}
		return domain.Ticket{}, "", fmt.Errorf("get ticket: %w", err)
	}
	t.Status = domain.TicketStatus(status)
	return t, eventName, nil
}

// MarkUsed flips a ticket to used and stamps scanned_at, conditional on the
// status still being valid. The losing side of a concurrent double scan gets
// ErrTicketAlreadyUsed; a vanished row gets ErrTicketNotFound.
func (r *GateRepository) MarkUsed(ctx context.Context, ticketID string, scannedAt time.Time) (domain.Ticket, error) {
	stmt := fmt.Sprintf(`
UPDATE tickets
SET status = 'used', scanned_at = $2
WHERE id = $1 AND status = 'valid'
RETURNING %s`, ticketCols)

	t, err := scanTicket(r.pool.QueryRow(ctx, stmt, ticketID, scannedAt))
	if err != nil {
		if isInvalidUUID(err) {
			return domain.Ticket{}, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return domain.Ticket{}, r.markConflict(ctx, ticketID)
		}
		return domain.Ticket{}, fmt.Errorf("mark ticket used: %w", err)
	}
	return t, nil
}

func (r *GateRepository) markConflict(ctx context.Context, ticketID string) error {
	var exists bool
	if err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM tickets WHERE id = $1)`, ticketID).Scan(&exists); err != nil {
		return fmt.Errorf("check ticket: %w", err)
	}
	if !exists {
		return domain.ErrTicketNotFound
	}
	return domain.ErrTicketAlreadyUsed
}
