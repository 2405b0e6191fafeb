package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/SaimonXX/qr-event-manager/internal/app"
	"github.com/SaimonXX/qr-event-manager/internal/domain"
)

// EventService is the minimal interface needed for organizer event endpoints
// and the public event view.
type EventService interface {
	CreateEvent(ctx context.Context, in app.CreateEventInput) (domain.Event, error)
	ListEvents(ctx context.Context, owner string) ([]domain.Event, error)
	GetPublicEvent(ctx context.Context, id string) (app.PublicEvent, error)
	UpdateEvent(ctx context.Context, in app.UpdateEventInput) (domain.Event, error)
	DeleteEvent(ctx context.Context, id string) error
}

// HandleEvents returns an HTTP handler for event creation and listing.
func HandleEvents(svc EventService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			events, err := svc.ListEvents(r.Context(), r.URL.Query().Get("user_id"))
			if err != nil {
				writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
				return
			}
			resp := make([]eventResponse, 0, len(events))
			for _, event := range events {
				resp = append(resp, toEventResponse(event))
			}
			writeJSON(w, http.StatusOK, resp)
		case http.MethodPost:
			var req createEventRequest
			dec := json.NewDecoder(r.Body)
			dec.DisallowUnknownFields()
			if err := dec.Decode(&req); err != nil {
				writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
				return
			}

			eventDate, ok := parseEventDate(w, req.Date)
			if !ok {
				return
			}

			event, err := svc.CreateEvent(r.Context(), app.CreateEventInput{
				Name:      req.Name,
				EventDate: eventDate,
				Location:  req.Location,
				Owner:     req.UserID,
			})
			if err != nil {
				switch err {
				case domain.ErrEventNameRequired:
					writeError(w, http.StatusBadRequest, codeEventNameRequired, err.Error())
				case domain.ErrOwnerRequired:
					writeError(w, http.StatusBadRequest, codeOwnerRequired, err.Error())
				default:
					writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
				}
				return
			}
			writeJSON(w, http.StatusCreated, toEventResponse(event))
		default:
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
		}
	}
}

// HandleEventByID returns an HTTP handler for updating and deleting a single
// event, plus the public attendee view with the free-slot count.
func HandleEventByID(svc EventService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		eventID, public, ok := parseEventPath(r.URL.Path)
		if !ok {
			writeError(w, http.StatusNotFound, codeNotFound, "not found")
			return
		}

		if public {
			if r.Method != http.MethodGet {
				writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
				return
			}
			pub, err := svc.GetPublicEvent(r.Context(), eventID)
			if err != nil {
				writeEventError(w, err)
				return
			}
			resp := publicEventResponse{
				eventResponse:    toEventResponse(pub.Event),
				AvailableTickets: pub.AvailableTickets,
			}
			writeJSON(w, http.StatusOK, resp)
			return
		}

		switch r.Method {
		case http.MethodPut:
			var req updateEventRequest
			dec := json.NewDecoder(r.Body)
			dec.DisallowUnknownFields()
			if err := dec.Decode(&req); err != nil {
				writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
				return
			}

			eventDate, ok := parseEventDate(w, req.Date)
			if !ok {
				return
			}

			event, err := svc.UpdateEvent(r.Context(), app.UpdateEventInput{
				ID:        eventID,
				Name:      req.Name,
				EventDate: eventDate,
				Location:  req.Location,
			})
			if err != nil {
				switch err {
				case domain.ErrEventNameRequired:
					writeError(w, http.StatusBadRequest, codeEventNameRequired, err.Error())
				default:
					writeEventError(w, err)
				}
				return
			}
			writeJSON(w, http.StatusOK, toEventResponse(event))
		case http.MethodDelete:
			if err := svc.DeleteEvent(r.Context(), eventID); err != nil {
				writeEventError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, map[string]bool{"success": true})
		default:
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
		}
	}
}

func writeEventError(w http.ResponseWriter, err error) {
	switch err {
	case domain.ErrEventNotFound, domain.ErrInvalidID:
		writeError(w, http.StatusNotFound, codeEventNotFound, domain.ErrEventNotFound.Error())
	default:
		writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
	}
}

func parseEventDate(w http.ResponseWriter, raw string) (*time.Time, bool) {
	if raw == "" {
		return nil, true
	}
	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidEventDate, "invalid date format")
		return nil, false
	}
	return &parsed, true
}

// parseEventPath accepts /api/events/{id} and /api/events/{id}/public.
func parseEventPath(path string) (eventID string, public bool, ok bool) {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) < 3 || parts[0] != "api" || parts[1] != "events" || parts[2] == "" {
		return "", false, false
	}
	switch len(parts) {
	case 3:
		return parts[2], false, true
	case 4:
		if parts[3] != "public" {
			return "", false, false
		}
		return parts[2], true, true
	default:
		return "", false, false
	}
}

type createEventRequest struct {
	Name     string `json:"name"`
	Date     string `json:"date,omitempty"`
	Location string `json:"location,omitempty"`
	UserID   string `json:"user_id"`
}

type updateEventRequest struct {
	Name     string `json:"name"`
	Date     string `json:"date,omitempty"`
	Location string `json:"location,omitempty"`
}

type eventResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	EventDate time.Time `json:"event_date"`
	Location  string    `json:"location,omitempty"`
	Owner     string    `json:"user_id"`
}

type publicEventResponse struct {
	eventResponse
	AvailableTickets int `json:"available_tickets"`
}

func toEventResponse(event domain.Event) eventResponse {
	return eventResponse{
		ID:        event.ID,
		Name:      event.Name,
		EventDate: event.EventDate,
		Location:  event.Location,
		Owner:     event.Owner,
	}
}
