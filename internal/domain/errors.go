package domain

import "errors"

var (
	ErrMissingFields     = errors.New("missing required fields")
	ErrEventNotFound     = errors.New("event not found")
	ErrTicketNotFound    = errors.New("ticket not found")
	ErrSoldOut           = errors.New("sold out")
	ErrIdentityConflict  = errors.New("device already used for another id")
	ErrTicketAlreadyUsed = errors.New("ticket already used")
	ErrTicketAssigned    = errors.New("ticket already assigned")
	ErrEventNameRequired = errors.New("event name required")
	ErrOwnerRequired     = errors.New("event owner required")
	ErrInvalidQuantity   = errors.New("invalid quantity")
	ErrInvalidID         = errors.New("invalid id")
)
