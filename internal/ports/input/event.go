package input

import (
	"context"
	"time"

	"clubxp/internal/domain/entities"
	"clubxp/internal/ports/output"
)

type CreateEventInput struct {
	ClubID       string
	Title        string
	Description  string
	ScheduledAt  time.Time
	Place        string
	Capacity     int
	BaseXP       int
	Type         entities.EventType
	SizeCategory entities.SizeCategory
	// CompetingClubIDs lists the invited clubs of an inter event.
	CompetingClubIDs []string
	// CreatedBy defaults to the actor resolved from the context.
	CreatedBy string
}

type CompletionInput struct {
	EventID string
	// ActorID defaults to the actor resolved from the context.
	ActorID            string
	ResultsDescription string
	// ProofURIs are references that were uploaded beforehand.
	ProofURIs []string
	// Photos are uploaded during submission; failures are skipped.
	Photos []output.Object
	// PositionsByClub ranks inter-event clubs. Clubs absent from the map
	// are unranked and receive nothing.
	PositionsByClub map[string]int
}

// UploadFailure describes one photo that could not be stored.
type UploadFailure struct {
	Index int
	Name  string
	Err   error
}

type CompletionResult struct {
	Event          *entities.Event
	Participations []entities.ClubParticipation
	// Awards maps club id to XP for inter events.
	Awards         map[string]int
	UploadFailures []UploadFailure
}

// PartialUpload reports whether some photos were dropped.
func (r *CompletionResult) PartialUpload() bool { return len(r.UploadFailures) > 0 }

type EventUseCase interface {
	CreateEvent(ctx context.Context, in CreateEventInput) (*entities.Event, error)
	GetEvent(ctx context.Context, id string) (*entities.Event, error)
	ListEventsForClub(ctx context.Context, clubID string) ([]entities.Event, error)
	CanComplete(ctx context.Context, eventID, actorID string) (bool, error)
	SubmitCompletion(ctx context.Context, in CompletionInput) (*CompletionResult, error)
}
