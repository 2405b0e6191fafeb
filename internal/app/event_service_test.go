package app

import (
	"context"
	"testing"
	"time"

	"github.com/SaimonXX/qr-event-manager/internal/clock"
	"github.com/SaimonXX/qr-event-manager/internal/domain"
)

func TestEventService(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	t.Run("creates event with defaulted date", func(t *testing.T) {
		repo := newFakeEventRepo()
		svc := NewEventService(repo, clock.NewFixed(now))

		event, err := svc.CreateEvent(context.Background(), CreateEventInput{
			Name:  "Launch Party",
			Owner: "organizer-1",
		})
		if err != nil {
			t.Fatalf("create event: %v", err)
		}
		if event.ID == "" {
			t.Fatalf("expected event ID to be set")
		}
		if !event.EventDate.Equal(now) {
			t.Fatalf("expected event date defaulted to %v, got %v", now, event.EventDate)
		}
		if len(repo.events) != 1 {
			t.Fatalf("expected event persisted")
		}
	})

	t.Run("requires name and owner", func(t *testing.T) {
		svc := NewEventService(newFakeEventRepo(), clock.NewFixed(now))

		if _, err := svc.CreateEvent(context.Background(), CreateEventInput{Owner: "o"}); err != domain.ErrEventNameRequired {
			t.Fatalf("expected ErrEventNameRequired, got %v", err)
		}
		if _, err := svc.CreateEvent(context.Background(), CreateEventInput{Name: "n"}); err != domain.ErrOwnerRequired {
			t.Fatalf("expected ErrOwnerRequired, got %v", err)
		}
	})

	t.Run("public event carries the free count", func(t *testing.T) {
		repo := newFakeEventRepo()
		repo.events["event-1"] = domain.Event{ID: "event-1", Name: "Launch Party", Owner: "organizer-1"}
		repo.freeCount = 7
		svc := NewEventService(repo, clock.NewFixed(now))

		pub, err := svc.GetPublicEvent(context.Background(), "event-1")
		if err != nil {
			t.Fatalf("get public event: %v", err)
		}
		if pub.AvailableTickets != 7 {
			t.Fatalf("expected 7 available tickets, got %d", pub.AvailableTickets)
		}
		if pub.Event.Name != "Launch Party" {
			t.Fatalf("unexpected event: %+v", pub.Event)
		}
	})

	t.Run("public event missing returns not found", func(t *testing.T) {
		svc := NewEventService(newFakeEventRepo(), clock.NewFixed(now))

		if _, err := svc.GetPublicEvent(context.Background(), "missing"); err != domain.ErrEventNotFound {
			t.Fatalf("expected ErrEventNotFound, got %v", err)
		}
	})

	t.Run("update preserves date when omitted", func(t *testing.T) {
		repo := newFakeEventRepo()
		original := domain.Event{ID: "event-1", Name: "Old", EventDate: now, Owner: "organizer-1"}
		repo.events["event-1"] = original
		svc := NewEventService(repo, clock.NewFixed(now.Add(time.Hour)))

		updated, err := svc.UpdateEvent(context.Background(), UpdateEventInput{
			ID:       "event-1",
			Name:     "New",
			Location: "Hall B",
		})
		if err != nil {
			t.Fatalf("update event: %v", err)
		}
		if updated.Name != "New" || updated.Location != "Hall B" {
			t.Fatalf("unexpected update result: %+v", updated)
		}
		if !updated.EventDate.Equal(now) {
			t.Fatalf("expected date preserved, got %v", updated.EventDate)
		}
	})

	t.Run("delete removes tickets and event in one tx", func(t *testing.T) {
		repo := newFakeEventRepo()
		repo.events["event-1"] = domain.Event{ID: "event-1", Name: "Launch Party", Owner: "organizer-1"}
		svc := NewEventService(repo, clock.NewFixed(now))

		if err := svc.DeleteEvent(context.Background(), "event-1"); err != nil {
			t.Fatalf("delete event: %v", err)
		}
		if !repo.ticketsDeleted {
			t.Fatalf("expected event tickets deleted")
		}
		if _, ok := repo.events["event-1"]; ok {
			t.Fatalf("expected event deleted")
		}
		if repo.txCalls != 1 {
			t.Fatalf("expected delete wrapped in a transaction, got %d tx calls", repo.txCalls)
		}
	})

	t.Run("list filters by owner", func(t *testing.T) {
		repo := newFakeEventRepo()
		repo.events["e1"] = domain.Event{ID: "e1", Name: "A", Owner: "org-1"}
		repo.events["e2"] = domain.Event{ID: "e2", Name: "B", Owner: "org-2"}
		svc := NewEventService(repo, clock.NewFixed(now))

		all, err := svc.ListEvents(context.Background(), "")
		if err != nil {
			t.Fatalf("list all: %v", err)
		}
		if len(all) != 2 {
			t.Fatalf("expected 2 events, got %d", len(all))
		}

		mine, err := svc.ListEvents(context.Background(), "org-1")
		if err != nil {
			t.Fatalf("list mine: %v", err)
		}
		if len(mine) != 1 || mine[0].ID != "e1" {
			t.Fatalf("expected only org-1 events, got %+v", mine)
		}
	})
}

type fakeEventRepo struct {
	events         map[string]domain.Event
	freeCount      int
	ticketsDeleted bool
	txCalls        int
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{events: make(map[string]domain.Event)}
}

func (f *fakeEventRepo) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	f.txCalls++
	return fn(ctx)
}

func (f *fakeEventRepo) CreateEvent(_ context.Context, event domain.Event) error {
	f.events[event.ID] = event
	return nil
}

func (f *fakeEventRepo) GetEvent(_ context.Context, id string) (domain.Event, error) {
	event, ok := f.events[id]
	if !ok {
		return domain.Event{}, domain.ErrEventNotFound
	}
	return event, nil
}

func (f *fakeEventRepo) ListEvents(_ context.Context, owner string) ([]domain.Event, error) {
	var events []domain.Event
	for _, e := range f.events {
		if owner == "" || e.Owner == owner {
			events = append(events, e)
		}
	}
	return events, nil
}

func (f *fakeEventRepo) UpdateEvent(_ context.Context, event domain.Event) error {
	if _, ok := f.events[event.ID]; !ok {
		return domain.ErrEventNotFound
	}
	f.events[event.ID] = event
	return nil
}

func (f *fakeEventRepo) DeleteEvent(_ context.Context, id string) error {
	if _, ok := f.events[id]; !ok {
		return domain.ErrEventNotFound
	}
	delete(f.events, id)
	return nil
}

func (f *fakeEventRepo) DeleteEventTickets(_ context.Context, _ string) error {
	f.ticketsDeleted = true
	return nil
}

func (f *fakeEventRepo) CountFree(_ context.Context, _ string) (int, error) {
	return f.freeCount, nil
}
