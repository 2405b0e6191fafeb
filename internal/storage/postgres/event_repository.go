package postgres

import (
	"context"
	"fmt"

	"github.com/SaimonXX/qr-event-manager/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type EventRepository struct {
	pool *pgxpool.Pool
}

func NewEventRepository(pool *pgxpool.Pool) *EventRepository {
	return &EventRepository{pool: pool}
}

func (r *EventRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return withTx(ctx, r.pool, fn)
}

func (r *EventRepository) CreateEvent(ctx context.Context, event domain.Event) error {
	const stmt = `
INSERT INTO events (id, name, event_date, location, owner)
VALUES ($1, $2, $3, NULLIF($4, ''), $5)`

	_, err := r.exec(ctx, stmt, event.ID, event.Name, event.EventDate, event.Location, event.Owner)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("create event: %w", err)
	}
	return nil
}

func (r *EventRepository) GetEvent(ctx context.Context, id string) (domain.Event, error) {
	const query = `
SELECT id, name, event_date, COALESCE(location, ''), owner
FROM events
WHERE id = $1`

	var e domain.Event
	err := r.queryRow(ctx, query, id).Scan(&e.ID, &e.Name, &e.EventDate, &e.Location, &e.Owner)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.Event{}, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return domain.Event{}, domain.ErrEventNotFound
		}
		return domain.Event{}, fmt.Errorf("get event: %w", err)
	}
	return e, nil
}

// ListEvents returns events newest first; owner filters when non-empty.
func (r *EventRepository) ListEvents(ctx context.Context, owner string) ([]domain.Event, error) {
	const query = `
SELECT id, name, event_date, COALESCE(location, ''), owner
FROM events
WHERE $1 = '' OR owner = $1
ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, owner)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	var events []domain.Event
	for rows.Next() {
		var e domain.Event
		if err := rows.Scan(&e.ID, &e.Name, &e.EventDate, &e.Location, &e.Owner); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, e)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate events: %w", rows.Err())
	}
	return events, nil
}

func (r *EventRepository) UpdateEvent(ctx context.Context, event domain.Event) error {
	const stmt = `
UPDATE events
SET name = $2, event_date = $3, location = NULLIF($4, '')
WHERE id = $1`

	tag, err := r.exec(ctx, stmt, event.ID, event.Name, event.EventDate, event.Location)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("update event: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrEventNotFound
	}
	return nil
}

func (r *EventRepository) DeleteEvent(ctx context.Context, id string) error {
	tag, err := r.exec(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("delete event: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrEventNotFound
	}
	return nil
}

func (r *EventRepository) DeleteEventTickets(ctx context.Context, eventID string) error {
	_, err := r.exec(ctx, `DELETE FROM tickets WHERE event_id = $1`, eventID)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("delete event tickets: %w", err)
	}
	return nil
}

// CountFree counts valid, unassigned tickets for display. The value is
// advisory only and can be stale by the time a claim lands.
func (r *EventRepository) CountFree(ctx context.Context, eventID string) (int, error) {
	const query = `
SELECT COUNT(*)
FROM tickets
WHERE event_id = $1 AND status = 'valid' AND guest_name IS NULL`

	var count int
	if err := r.queryRow(ctx, query, eventID).Scan(&count); err != nil {
		if isInvalidUUID(err) {
			return 0, domain.ErrInvalidID
		}
		return 0, fmt.Errorf("count free tickets: %w", err)
	}
	return count, nil
}

func (r *EventRepository) exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Exec(ctx, sql, args...)
	}
	return r.pool.Exec(ctx, sql, args...)
}

func (r *EventRepository) queryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if tx := txFromContext(ctx); tx != nil {
		return tx.QueryRow(ctx, sql, args...)
	}
	return r.pool.QueryRow(ctx, sql, args...)
}
