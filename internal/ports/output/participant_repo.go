package output

import (
	"context"

	"clubxp/internal/domain/entities"
)

type ParticipantRepository interface {
	// InsertParticipant returns false when the (event, user) row already exists.
	InsertParticipant(ctx context.Context, participant *entities.Participant) (bool, error)
	// GetParticipant returns nil, nil when the user is not enrolled.
	GetParticipant(ctx context.Context, eventID, userID string) (*entities.Participant, error)
	// DeleteParticipant returns false when there was nothing to delete.
	DeleteParticipant(ctx context.Context, eventID, userID string) (bool, error)
	CountParticipants(ctx context.Context, eventID string) (int, error)
}
