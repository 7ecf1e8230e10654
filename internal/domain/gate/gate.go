// Package gate decides whether an event may be submitted for review.
//
// The predicate is pure and takes the current event and participation rows
// as arguments; callers must reload both before each evaluation.
package gate

import (
	"time"

	"clubxp/internal/domain"
	"clubxp/internal/domain/entities"
)

// Check returns nil when actorID may submit the event's completion at now.
// Otherwise it returns an error of kind ErrNotAuthorized, ErrAlreadySubmitted
// or ErrNotReady.
func Check(event *entities.Event, actorID string, participations []entities.ClubParticipation, now time.Time) error {
	if event == nil {
		return domain.ErrEventNotFound
	}
	if actorID == "" || actorID != event.CreatedBy {
		return domain.Newf(domain.ErrNotAuthorized, "only the event creator can submit results")
	}
	if !event.IsUpcoming() {
		return domain.Newf(domain.ErrAlreadySubmitted, "event status is %s", event.Status)
	}
	if !now.After(event.ScheduledAt) {
		return domain.Newf(domain.ErrNotReady, "event is scheduled for %s", event.ScheduledAt.UTC().Format(time.RFC3339))
	}
	if event.IsInter() {
		outstanding := 0
		for _, p := range participations {
			if p.EventID == event.ID && !p.Accepted {
				outstanding++
			}
		}
		if outstanding > 0 {
			return domain.Newf(domain.ErrNotReady, "%d invitation(s) still outstanding", outstanding)
		}
	}
	return nil
}

// CanComplete reports whether Check passes.
func CanComplete(event *entities.Event, actorID string, participations []entities.ClubParticipation, now time.Time) bool {
	return Check(event, actorID, participations, now) == nil
}
