package entities

import "time"

type EventType string

const (
	EventTypeIntra EventType = "intra"
	EventTypeInter EventType = "inter"
)

func (t EventType) Valid() bool {
	return t == EventTypeIntra || t == EventTypeInter
}

type SizeCategory string

const (
	SizeSmall  SizeCategory = "small"
	SizeMedium SizeCategory = "medium"
	SizeLarge  SizeCategory = "large"
)

// EventStatus only moves forward: upcoming -> pending -> approved | rejected.
type EventStatus string

const (
	StatusUpcoming EventStatus = "upcoming"
	StatusPending  EventStatus = "pending"
	StatusApproved EventStatus = "approved"
	StatusRejected EventStatus = "rejected"
)

func (s EventStatus) Valid() bool {
	switch s {
	case StatusUpcoming, StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

type Event struct {
	ID          string
	ClubID      string
	Title       string
	Description string
	ScheduledAt time.Time
	Place       string
	Capacity    int // intra only
	BaseXP      int
	Type        EventType
	// SizeCategory is only meaningful for intra events.
	SizeCategory SizeCategory
	Status       EventStatus
	// TotalXPPool is fixed at creation for intra events and recomputed at
	// completion for inter events.
	TotalXPPool        int
	ResultsDescription string
	ProofURIs          []string
	CreatedBy          string
	SubmittedAt        time.Time // zero until completion
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func (e *Event) IsInter() bool { return e.Type == EventTypeInter }

func (e *Event) IsUpcoming() bool { return e.Status == StatusUpcoming }

// Completion is the snapshot written together with the upcoming -> pending
// transition.
type Completion struct {
	ResultsDescription string
	ProofURIs          []string
	TotalXPPool        int
	SubmittedAt        time.Time
}
