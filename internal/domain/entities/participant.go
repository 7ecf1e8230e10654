package entities

import "time"

// Participant represents a user's enrollment in an intra-club event.
// (EventID, UserID) is unique.
type Participant struct {
	EventID  string
	UserID   string
	JoinedAt time.Time
}
