package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/SaimonXX/qr-event-manager/internal/domain"
)

// TicketAdminService is the minimal interface for organizer ticket
// management endpoints.
type TicketAdminService interface {
	GenerateTickets(ctx context.Context, eventID string, quantity int) (int, error)
	ListTickets(ctx context.Context, eventID string) ([]domain.Ticket, error)
	DeleteTicket(ctx context.Context, id string) error
}

// HandleGenerateTickets returns an HTTP handler for batch ticket generation.
func HandleGenerateTickets(svc TicketAdminService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		var req generateTicketsRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}

		count, err := svc.GenerateTickets(r.Context(), req.EventID, req.Quantity)
		if err != nil {
			switch err {
			case domain.ErrInvalidID:
				writeError(w, http.StatusBadRequest, codeInvalidID, err.Error())
			case domain.ErrInvalidQuantity:
				writeError(w, http.StatusBadRequest, codeInvalidQuantity, err.Error())
			case domain.ErrEventNotFound:
				writeError(w, http.StatusNotFound, codeEventNotFound, err.Error())
			default:
				writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
			}
			return
		}

		writeJSON(w, http.StatusCreated, generateTicketsResponse{Count: count})
	}
}

// HandleListTickets returns an HTTP handler for listing an event's tickets.
func HandleListTickets(svc TicketAdminService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		eventID, ok := parseListTicketsPath(r.URL.Path)
		if !ok {
			writeError(w, http.StatusNotFound, codeNotFound, "not found")
			return
		}

		tickets, err := svc.ListTickets(r.Context(), eventID)
		if err != nil {
			switch err {
			case domain.ErrEventNotFound, domain.ErrInvalidID:
				writeError(w, http.StatusNotFound, codeEventNotFound, domain.ErrEventNotFound.Error())
			default:
				writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
			}
			return
		}

		resp := make([]ticketResponse, 0, len(tickets))
		for _, t := range tickets {
			resp = append(resp, toTicketResponse(t))
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

// HandleDeleteTicket returns an HTTP handler for deleting a single ticket.
func HandleDeleteTicket(svc TicketAdminService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		ticketID, ok := parseDeleteTicketPath(r.URL.Path)
		if !ok {
			writeError(w, http.StatusNotFound, codeNotFound, "not found")
			return
		}

		if err := svc.DeleteTicket(r.Context(), ticketID); err != nil {
			switch err {
			case domain.ErrTicketNotFound, domain.ErrInvalidID:
				writeError(w, http.StatusNotFound, codeTicketNotFound, domain.ErrTicketNotFound.Error())
			default:
				writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
			}
			return
		}

		writeJSON(w, http.StatusOK, map[string]bool{"success": true})
	}
}

// parseListTicketsPath accepts /api/tickets/{eventId}.
func parseListTicketsPath(path string) (string, bool) {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) != 3 || parts[0] != "api" || parts[1] != "tickets" || parts[2] == "" {
		return "", false
	}
	return parts[2], true
}

// parseDeleteTicketPath accepts /api/tickets/single/{id}.
func parseDeleteTicketPath(path string) (string, bool) {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) != 4 || parts[0] != "api" || parts[1] != "tickets" || parts[2] != "single" || parts[3] == "" {
		return "", false
	}
	return parts[3], true
}

type generateTicketsRequest struct {
	EventID  string `json:"event_id"`
	Quantity int    `json:"quantity"`
}

type generateTicketsResponse struct {
	Count int `json:"count"`
}
