package output

import (
	"context"

	"clubxp/internal/domain/entities"
)

type EventRepository interface {
	CreateEvent(ctx context.Context, event *entities.Event) error
	GetEvent(ctx context.Context, id string) (*entities.Event, error)
	// LockEvent reads the event and holds it against concurrent writers until
	// the surrounding transaction ends. Outside a transaction it behaves like GetEvent.
	LockEvent(ctx context.Context, id string) (*entities.Event, error)
	// ListEventsVisibleToClub returns the club's own events plus the events
	// where it holds an accepted participation.
	ListEventsVisibleToClub(ctx context.Context, clubID string) ([]entities.Event, error)
	// UpdateEventStatus moves the event from expected to next. It returns false,
	// without error, when the stored status is no longer expected.
	UpdateEventStatus(ctx context.Context, id string, expected, next entities.EventStatus) (bool, error)
	SaveCompletion(ctx context.Context, id string, completion entities.Completion) error
}
