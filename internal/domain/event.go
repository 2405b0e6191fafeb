package domain

import "time"

// Event represents a ticketed event. Owner is the organizer identifier
// supplied by the auth layer; the engine treats it as opaque.
type Event struct {
	ID        string
	Name      string
	EventDate time.Time
	Location  string
	Owner     string
}
