package http

import (
	"encoding/json"
	"net/http"
)

const (
	codeMethodNotAllowed   = "method_not_allowed"
	codeNotFound           = "not_found"
	codeInvalidRequestBody = "invalid_request_body"
	codeMissingFields      = "missing_required_fields"
	codeInvalidEventDate   = "invalid_event_date"
	codeInvalidID          = "invalid_id"
	codeEventNameRequired  = "event_name_required"
	codeOwnerRequired      = "owner_required"
	codeInvalidQuantity    = "invalid_quantity"
	codeEventNotFound      = "event_not_found"
	codeTicketNotFound     = "ticket_not_found"
	codeSoldOut            = "sold_out"
	codeIdentityConflict   = "identity_conflict"
	codeTicketUsed         = "ticket_used"
	codeForbidden          = "forbidden"
	codeInternalError      = "internal_error"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	payload, err := json.Marshal(errorResponse{
		Error: msg,
		Code:  code,
	})
	if err != nil {
		_, _ = w.Write([]byte(`{"error":"internal error","code":"internal_error"}`))
		return
	}
	_, _ = w.Write(payload)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
