package entities

// ClubParticipation is a club's row in an inter-club event. (EventID, ClubID)
// is unique. A declined invitation deletes the row.
type ClubParticipation struct {
	EventID  string
	ClubID   string
	Accepted bool
	// Position is nil until completion; 1 is the best rank.
	Position  *int
	XPAwarded int
}

func (p ClubParticipation) Ranked() bool { return p.Position != nil }
