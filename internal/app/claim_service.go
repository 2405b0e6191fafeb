package app

import (
	"context"

	"github.com/SaimonXX/qr-event-manager/internal/domain"
)

type ClaimRepository interface {
	FindByDeviceOrIdentity(ctx context.Context, eventID, deviceID, idNumber string) (*domain.Ticket, error)
	FindUnassigned(ctx context.Context, eventID string) (*domain.Ticket, error)
	Assign(ctx context.Context, ticketID string, identity domain.Identity, deviceID string) (domain.Ticket, error)
}

type ClaimService struct {
	repo ClaimRepository
}

// assignAttempts bounds how many unassigned candidates a single claim will
// race for before reporting the event sold out.
const assignAttempts = 3

func NewClaimService(repo ClaimRepository) *ClaimService {
	return &ClaimService{repo: repo}
}

type ClaimInput struct {
	EventID       string
	GuestName     string
	GuestIDNumber string
	GuestPhone    string
	DeviceID      string
}

type ClaimResult struct {
	Ticket domain.Ticket
	// Recovered is true when the claim matched a ticket this device or
	// identity already holds, making repeat claims idempotent.
	Recovered bool
}

// Claim binds one unassigned ticket to the given identity and device. The
// dedup lookup makes the operation idempotent per device/identity; the
// assignment itself is a conditional update, so two concurrent claims can
// never win the same ticket. On ErrIdentityConflict the result carries the
// conflicting ticket snapshot and nothing is mutated.
func (s *ClaimService) Claim(ctx context.Context, in ClaimInput) (ClaimResult, error) {
	if in.EventID == "" || in.GuestName == "" || in.GuestIDNumber == "" || in.DeviceID == "" {
		return ClaimResult{}, domain.ErrMissingFields
	}

	existing, err := s.repo.FindByDeviceOrIdentity(ctx, in.EventID, in.DeviceID, in.GuestIDNumber)
	if err != nil {
		return ClaimResult{}, err
	}
	if existing != nil {
		if existing.GuestIDNumber != "" && existing.GuestIDNumber != in.GuestIDNumber {
			return ClaimResult{Ticket: *existing}, domain.ErrIdentityConflict
		}
		return ClaimResult{Ticket: *existing, Recovered: true}, nil
	}

	identity := domain.Identity{
		Name:     in.GuestName,
		IDNumber: in.GuestIDNumber,
		Phone:    in.GuestPhone,
	}

	for attempt := 0; attempt < assignAttempts; attempt++ {
		candidate, err := s.repo.FindUnassigned(ctx, in.EventID)
		if err != nil {
			return ClaimResult{}, err
		}
		if candidate == nil {
			return ClaimResult{}, domain.ErrSoldOut
		}

		ticket, err := s.repo.Assign(ctx, candidate.ID, identity, in.DeviceID)
		if err == domain.ErrTicketAssigned || err == domain.ErrTicketNotFound {
			// A concurrent claim won this row (or an admin deleted it);
			// pick another candidate instead of failing the caller.
			continue
		}
		if err != nil {
			return ClaimResult{}, err
		}
		return ClaimResult{Ticket: ticket}, nil
	}

	return ClaimResult{}, domain.ErrSoldOut
}
