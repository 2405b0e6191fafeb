package postgres

import (
	"context"
	"fmt"

	"github.com/SaimonXX/qr-event-manager/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ticketCols is the shared SELECT list for ticket rows. Guest fields are
// NULL in storage until claimed and surface as empty strings in the domain.
const ticketCols = `id, event_id, status,
COALESCE(guest_name, ''), COALESCE(guest_id_number, ''), COALESCE(guest_phone, ''),
COALESCE(device_id, ''), scanned_at, created_at`

func scanTicket(row pgx.Row) (domain.Ticket, error) {
	var t domain.Ticket
	var status string
	err := row.Scan(
		&t.ID,
		&t.EventID,
		&status,
		&t.GuestName,
		&t.GuestIDNumber,
		&t.GuestPhone,
		&t.DeviceID,
		&t.ScannedAt,
		&t.CreatedAt,
	)
	if err != nil {
		return domain.Ticket{}, err
	}
	t.Status = domain.TicketStatus(status)
	return t, nil
}

type ClaimRepository struct {
	pool *pgxpool.Pool
}

func NewClaimRepository(pool *pgxpool.Pool) *ClaimRepository {
	return &ClaimRepository{pool: pool}
}

// FindByDeviceOrIdentity returns the ticket already claimed by this device
// or identity number, if any. When the device and the identity match two
// different rows the device match wins.
func (r *ClaimRepository) FindByDeviceOrIdentity(ctx context.Context, eventID, deviceID, idNumber string) (*domain.Ticket, error) {
	query := fmt.Sprintf(`
SELECT %s
FROM tickets
WHERE event_id = $1 AND (device_id = $2 OR guest_id_number = $3)
ORDER BY (device_id = $2) DESC NULLS LAST, created_at ASC
LIMIT 1`, ticketCols)

	t, err := scanTicket(r.pool.QueryRow(ctx, query, eventID, deviceID, idNumber))
	if err != nil {
		if isInvalidUUID(err) {
			return nil, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("find claimed ticket: %w", err)
	}
	return &t, nil
}

// FindUnassigned picks any free ticket for the event, or nil when sold out.
func (r *ClaimRepository) FindUnassigned(ctx context.Context, eventID string) (*domain.Ticket, error) {
	query := fmt.Sprintf(`
SELECT %s
FROM tickets
WHERE event_id = $1 AND status = 'valid' AND guest_name IS NULL
LIMIT 1`, ticketCols)

	t, err := scanTicket(r.pool.QueryRow(ctx, query, eventID))
	if err != nil {
		if isInvalidUUID(err) {
			return nil, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("find unassigned ticket: %w", err)
	}
	return &t, nil
}

// Assign binds the guest identity and device to a ticket, conditional on the
// row still being unassigned at commit time. A concurrent winner leaves zero
// rows updated, reported as ErrTicketAssigned (or ErrTicketNotFound when the
// row was deleted meanwhile).
func (r *ClaimRepository) Assign(ctx context.Context, ticketID string, identity domain.Identity, deviceID string) (domain.Ticket, error) {
	stmt := fmt.Sprintf(`
UPDATE tickets
SET guest_name = $2, guest_id_number = $3, guest_phone = NULLIF($4, ''), device_id = $5
WHERE id = $1 AND guest_name IS NULL
RETURNING %s`, ticketCols)

	t, err := scanTicket(r.pool.QueryRow(ctx, stmt, ticketID, identity.Name, identity.IDNumber, identity.Phone, deviceID))
	if err != nil {
		if isInvalidUUID(err) {
			return domain.Ticket{}, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return domain.Ticket{}, r.assignConflict(ctx, ticketID)
		}
		return domain.Ticket{}, fmt.Errorf("assign ticket: %w", err)
	}
	return t, nil
}

func (r *ClaimRepository) assignConflict(ctx context.Context, ticketID string) error {
	var exists bool
	if err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM tickets WHERE id = $1)`, ticketID).Scan(&exists); err != nil {
		return fmt.Errorf("check ticket: %w", err)
	}
	if !exists {
		return domain.ErrTicketNotFound
	}
	return domain.ErrTicketAssigned
}
