package domain

import "time"

type TicketStatus string

const (
	TicketStatusValid TicketStatus = "valid"
	TicketStatusUsed  TicketStatus = "used"
)

// Ticket is one entry slot for an event. Its ID doubles as the QR payload.
// A ticket with an empty GuestName is unassigned and claimable; assignment
// binds the guest identity and device fingerprint in one step. The status
// only ever moves valid -> used, at which point ScannedAt is stamped.
type Ticket struct {
	ID            string
	EventID       string
	Status        TicketStatus
	GuestName     string
	GuestIDNumber string
	GuestPhone    string
	DeviceID      string
	ScannedAt     *time.Time
	CreatedAt     time.Time
}

// Assigned reports whether a guest has claimed this ticket.
func (t Ticket) Assigned() bool {
	return t.GuestName != ""
}

// Identity is the guest data bound to a ticket at claim time.
type Identity struct {
	Name     string
	IDNumber string
	Phone    string
}
