package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/SaimonXX/qr-event-manager/internal/app"
	"github.com/SaimonXX/qr-event-manager/internal/domain"
)

// TicketGate is the minimal interface a gate scanner needs: preview a QR
// code, then commit entry.
type TicketGate interface {
	Peek(ctx context.Context, qrID string) (app.GateResult, error)
	Redeem(ctx context.Context, qrID string) (app.GateResult, error)
}

// HandleCheckTicket returns an HTTP handler for the read-only scanner
// preview. It never changes ticket state.
func HandleCheckTicket(svc TicketGate) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		qrID, ok := decodeScanRequest(w, r)
		if !ok {
			return
		}

		res, err := svc.Peek(r.Context(), qrID)
		if err != nil {
			writeScanError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, scanResponse{
			Valid:  res.Ticket.Status == domain.TicketStatusValid,
			Ticket: toTicketResponse(res.Ticket),
			Event:  res.EventName,
		})
	}
}

// HandleScanTicket returns an HTTP handler that redeems a ticket for entry.
// A ticket redeems exactly once; the losing side of a double scan gets 409
// with the winner's snapshot.
func HandleScanTicket(svc TicketGate) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		qrID, ok := decodeScanRequest(w, r)
		if !ok {
			return
		}

		res, err := svc.Redeem(r.Context(), qrID)
		if err != nil {
			if err == domain.ErrTicketAlreadyUsed {
				writeJSON(w, http.StatusConflict, scanConflictResponse{
					Valid:  false,
					Error:  err.Error(),
					Code:   codeTicketUsed,
					Ticket: toTicketResponse(res.Ticket),
					Event:  res.EventName,
				})
				return
			}
			writeScanError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, scanResponse{
			Valid:  true,
			Ticket: toTicketResponse(res.Ticket),
			Event:  res.EventName,
		})
	}
}

func decodeScanRequest(w http.ResponseWriter, r *http.Request) (string, bool) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
		return "", false
	}

	var req scanRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
		return "", false
	}
	if req.QRID == "" {
		writeError(w, http.StatusBadRequest, codeMissingFields, "missing qr id")
		return "", false
	}
	return req.QRID, true
}

func writeScanError(w http.ResponseWriter, err error) {
	switch err {
	case domain.ErrTicketNotFound, domain.ErrInvalidID:
		writeError(w, http.StatusNotFound, codeTicketNotFound, domain.ErrTicketNotFound.Error())
	default:
		writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
	}
}

type scanRequest struct {
	QRID string `json:"qr_id"`
}

type scanResponse struct {
	Valid  bool           `json:"valid"`
	Ticket ticketResponse `json:"ticket"`
	Event  string         `json:"event"`
}

type scanConflictResponse struct {
	Valid  bool           `json:"valid"`
	Error  string         `json:"error"`
	Code   string         `json:"code"`
	Ticket ticketResponse `json:"ticket"`
	Event  string         `json:"event"`
}
