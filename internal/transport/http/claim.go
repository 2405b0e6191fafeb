package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/SaimonXX/qr-event-manager/internal/app"
	"github.com/SaimonXX/qr-event-manager/internal/domain"
)

// TicketClaimer is the minimal interface needed to claim a ticket.
type TicketClaimer interface {
	Claim(ctx context.Context, in app.ClaimInput) (app.ClaimResult, error)
}

// HandleClaimTicket returns an HTTP handler for attendee ticket claims.
func HandleClaimTicket(svc TicketClaimer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		var req claimTicketRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}

		res, err := svc.Claim(r.Context(), app.ClaimInput{
			EventID:       req.EventID,
			GuestName:     req.GuestName,
			GuestIDNumber: req.GuestIDNumber,
			GuestPhone:    req.GuestPhone,
			DeviceID:      req.DeviceID,
		})
		if err != nil {
			switch err {
			case domain.ErrMissingFields:
				writeError(w, http.StatusBadRequest, codeMissingFields, err.Error())
			case domain.ErrInvalidID:
				writeError(w, http.StatusBadRequest, codeInvalidID, err.Error())
			case domain.ErrIdentityConflict:
				// Include the conflicting snapshot so the client can explain
				// which ticket the device is already bound to.
				writeJSON(w, http.StatusForbidden, claimConflictResponse{
					Error:  err.Error(),
					Code:   codeIdentityConflict,
					Ticket: toTicketResponse(res.Ticket),
				})
			case domain.ErrSoldOut:
				writeError(w, http.StatusNotFound, codeSoldOut, err.Error())
			default:
				writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
			}
			return
		}

		writeJSON(w, http.StatusOK, claimTicketResponse{
			Success:    true,
			Ticket:     toTicketResponse(res.Ticket),
			IsRecovery: res.Recovered,
		})
	}
}

type claimTicketRequest struct {
	EventID       string `json:"event_id"`
	GuestName     string `json:"guest_name"`
	GuestIDNumber string `json:"guest_id_number"`
	GuestPhone    string `json:"guest_phone"`
	DeviceID      string `json:"device_id"`
}

type claimTicketResponse struct {
	Success    bool           `json:"success"`
	Ticket     ticketResponse `json:"ticket"`
	IsRecovery bool           `json:"is_recovery,omitempty"`
}

type claimConflictResponse struct {
	Error  string         `json:"error"`
	Code   string         `json:"code"`
	Ticket ticketResponse `json:"ticket"`
}
