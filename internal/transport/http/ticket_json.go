package http

import (
	"time"

	"github.com/SaimonXX/qr-event-manager/internal/domain"
)

type ticketResponse struct {
	ID            string     `json:"id"`
	EventID       string     `json:"event_id"`
	Status        string     `json:"status"`
	GuestName     string     `json:"guest_name,omitempty"`
	GuestIDNumber string     `json:"guest_id_number,omitempty"`
	GuestPhone    string     `json:"guest_phone,omitempty"`
	DeviceID      string     `json:"device_id,omitempty"`
	ScannedAt     *time.Time `json:"scanned_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

func toTicketResponse(t domain.Ticket) ticketResponse {
	return ticketResponse{
		ID:            t.ID,
		EventID:       t.EventID,
		Status:        string(t.Status),
		GuestName:     t.GuestName,
		GuestIDNumber: t.GuestIDNumber,
		GuestPhone:    t.GuestPhone,
		DeviceID:      t.DeviceID,
		ScannedAt:     t.ScannedAt,
		CreatedAt:     t.CreatedAt,
	}
}
