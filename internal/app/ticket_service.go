package app

import (
	"context"

	"github.com/SaimonXX/qr-event-manager/internal/clock"
	"github.com/SaimonXX/qr-event-manager/internal/domain"
)

type TicketAdminRepository interface {
	EventExists(ctx context.Context, eventID string) (bool, error)
	InsertTickets(ctx context.Context, tickets []domain.Ticket) error
	ListByEvent(ctx context.Context, eventID string) ([]domain.Ticket, error)
	DeleteTicket(ctx context.Context, id string) error
}

// TicketAdminService covers the organizer-side ticket operations: batch
// generation of unassigned slots, listing, and single-ticket deletion.
type TicketAdminService struct {
	repo  TicketAdminRepository
	clock clock.Clock
}

const maxGenerateBatch = 1000

func NewTicketAdminService(repo TicketAdminRepository, clk clock.Clock) *TicketAdminService {
	return &TicketAdminService{
		repo:  repo,
		clock: clk,
	}
}

// GenerateTickets bulk-creates unassigned valid tickets for an event and
// returns how many were created.
func (s *TicketAdminService) GenerateTickets(ctx context.Context, eventID string, quantity int) (int, error) {
	if eventID == "" {
		return 0, domain.ErrInvalidID
	}
	if quantity <= 0 || quantity > maxGenerateBatch {
		return 0, domain.ErrInvalidQuantity
	}

	exists, err := s.repo.EventExists(ctx, eventID)
	if err != nil {
		return 0, err
	}
	if !exists {
		return 0, domain.ErrEventNotFound
	}

	now := s.clock.Now()
	tickets := make([]domain.Ticket, quantity)
	for i := range tickets {
		tickets[i] = domain.Ticket{
			ID:        newUUID(),
			EventID:   eventID,
			Status:    domain.TicketStatusValid,
			CreatedAt: now,
		}
	}

	if err := s.repo.InsertTickets(ctx, tickets); err != nil {
		return 0, err
	}
	return len(tickets), nil
}

// ListTickets returns an event's tickets, claimed ones first by guest name.
func (s *TicketAdminService) ListTickets(ctx context.Context, eventID string) ([]domain.Ticket, error) {
	if eventID == "" {
		return nil, domain.ErrInvalidID
	}
	exists, err := s.repo.EventExists(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.ErrEventNotFound
	}
	return s.repo.ListByEvent(ctx, eventID)
}

// DeleteTicket removes a single ticket. Claim and redemption tolerate the
// row disappearing mid-flight and report it as not found.
func (s *TicketAdminService) DeleteTicket(ctx context.Context, id string) error {
	if id == "" {
		return domain.ErrInvalidID
	}
	return s.repo.DeleteTicket(ctx, id)
}
