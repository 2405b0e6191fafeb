package app

import (
	"context"
	"time"

	"github.com/SaimonXX/qr-event-manager/internal/clock"
	"github.com/SaimonXX/qr-event-manager/internal/domain"
)

type GateRepository interface {
	GetWithEvent(ctx context.Context, ticketID string) (domain.Ticket, string, error)
	MarkUsed(ctx context.Context, ticketID string, scannedAt time.Time) (domain.Ticket, error)
}

type GateService struct {
	repo  GateRepository
	clock clock.Clock
}

func NewGateService(repo GateRepository, clk clock.Clock) *GateService {
	return &GateService{
		repo:  repo,
		clock: clk,
	}
}

type GateResult struct {
	Ticket    domain.Ticket
	EventName string
}

// Peek looks up a scanned ticket without side effects, so scanners can
// preview a QR code any number of times before committing entry.
func (s *GateService) Peek(ctx context.Context, qrID string) (GateResult, error) {
	ticket, eventName, err := s.repo.GetWithEvent(ctx, qrID)
	if err != nil {
		return GateResult{}, err
	}
	return GateResult{Ticket: ticket, EventName: eventName}, nil
}

// Redeem transitions a ticket from valid to used exactly once. The mark is a
// conditional update keyed on the current status, so of two concurrent scans
// exactly one succeeds; the loser gets ErrTicketAlreadyUsed with the winner's
// snapshot, including the original scanned_at. Unassigned tickets are never
// distributed to scanners, so redeeming one reports ErrTicketNotFound.
func (s *GateService) Redeem(ctx context.Context, qrID string) (GateResult, error) {
	ticket, eventName, err := s.repo.GetWithEvent(ctx, qrID)
	if err != nil {
		return GateResult{}, err
	}
	if !ticket.Assigned() {
		return GateResult{}, domain.ErrTicketNotFound
	}
	if ticket.Status == domain.TicketStatusUsed {
		return GateResult{Ticket: ticket, EventName: eventName}, domain.ErrTicketAlreadyUsed
	}

	updated, err := s.repo.MarkUsed(ctx, qrID, s.clock.Now())
	if err == domain.ErrTicketAlreadyUsed {
		// Lost a same-instant double scan; re-fetch so the caller sees who
		// entered and when.
		current, name, err := s.repo.GetWithEvent(ctx, qrID)
		if err != nil {
			return GateResult{}, err
		}
		return GateResult{Ticket: current, EventName: name}, domain.ErrTicketAlreadyUsed
	}
	if err != nil {
		return GateResult{}, err
	}
	return GateResult{Ticket: updated, EventName: eventName}, nil
}
