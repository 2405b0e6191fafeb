package app

import (
	"context"
	"time"

	"github.com/SaimonXX/qr-event-manager/internal/clock"
	"github.com/SaimonXX/qr-event-manager/internal/domain"
)

type EventRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	CreateEvent(ctx context.Context, event domain.Event) error
	GetEvent(ctx context.Context, id string) (domain.Event, error)
	ListEvents(ctx context.Context, owner string) ([]domain.Event, error)
	UpdateEvent(ctx context.Context, event domain.Event) error
	DeleteEvent(ctx context.Context, id string) error
	DeleteEventTickets(ctx context.Context, eventID string) error
	CountFree(ctx context.Context, eventID string) (int, error)
}

type EventService struct {
	repo  EventRepository
	clock clock.Clock
}

func NewEventService(repo EventRepository, clk clock.Clock) *EventService {
	return &EventService{
		repo:  repo,
		clock: clk,
	}
}

type CreateEventInput struct {
	Name      string
	EventDate *time.Time
	Location  string
	Owner     string
}

func (s *EventService) CreateEvent(ctx context.Context, in CreateEventInput) (domain.Event, error) {
	if in.Name == "" {
		return domain.Event{}, domain.ErrEventNameRequired
	}
	if in.Owner == "" {
		return domain.Event{}, domain.ErrOwnerRequired
	}
	eventDate := s.clock.Now()
	if in.EventDate != nil {
		eventDate = *in.EventDate
	}

	event := domain.Event{
		ID:        newUUID(),
		Name:      in.Name,
		EventDate: eventDate,
		Location:  in.Location,
		Owner:     in.Owner,
	}

	if err := s.repo.CreateEvent(ctx, event); err != nil {
		return domain.Event{}, err
	}
	return event, nil
}

// ListEvents returns events newest first, optionally filtered by owner.
func (s *EventService) ListEvents(ctx context.Context, owner string) ([]domain.Event, error) {
	return s.repo.ListEvents(ctx, owner)
}

// PublicEvent is the attendee-facing view of an event: the event itself plus
// the advisory free-slot count. The count is recomputed per call and never
// gates claims; oversell prevention lives in the conditional assign.
type PublicEvent struct {
	Event            domain.Event
	AvailableTickets int
}

func (s *EventService) GetPublicEvent(ctx context.Context, id string) (PublicEvent, error) {
	if id == "" {
		return PublicEvent{}, domain.ErrInvalidID
	}
	event, err := s.repo.GetEvent(ctx, id)
	if err != nil {
		return PublicEvent{}, err
	}
	free, err := s.repo.CountFree(ctx, id)
	if err != nil {
		return PublicEvent{}, err
	}
	return PublicEvent{Event: event, AvailableTickets: free}, nil
}

type UpdateEventInput struct {
	ID        string
	Name      string
	EventDate *time.Time
	Location  string
}

func (s *EventService) UpdateEvent(ctx context.Context, in UpdateEventInput) (domain.Event, error) {
	if in.ID == "" {
		return domain.Event{}, domain.ErrInvalidID
	}
	if in.Name == "" {
		return domain.Event{}, domain.ErrEventNameRequired
	}

	event, err := s.repo.GetEvent(ctx, in.ID)
	if err != nil {
		return domain.Event{}, err
	}
	event.Name = in.Name
	event.Location = in.Location
	if in.EventDate != nil {
		event.EventDate = *in.EventDate
	}

	if err := s.repo.UpdateEvent(ctx, event); err != nil {
		return domain.Event{}, err
	}
	return event, nil
}

// DeleteEvent removes an event and all of its tickets in one transaction.
func (s *EventService) DeleteEvent(ctx context.Context, id string) error {
	if id == "" {
		return domain.ErrInvalidID
	}
	return s.repo.WithTx(ctx, func(txCtx context.Context) error {
		if err := s.repo.DeleteEventTickets(txCtx, id); err != nil {
			return err
		}
		return s.repo.DeleteEvent(txCtx, id)
	})
}
