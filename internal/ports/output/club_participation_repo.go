package output

import (
	"context"

	"clubxp/internal/domain/entities"
)

type ClubParticipationRepository interface {
	// UpsertClubParticipation inserts the row or overwrites accepted, position and xp.
	UpsertClubParticipation(ctx context.Context, p *entities.ClubParticipation) error
	// InsertClubParticipation inserts the row unless one exists; it reports whether it inserted.
	InsertClubParticipation(ctx context.Context, p *entities.ClubParticipation) (bool, error)
	GetClubParticipation(ctx context.Context, eventID, clubID string) (*entities.ClubParticipation, error)
	DeleteClubParticipation(ctx context.Context, eventID, clubID string) (bool, error)
	ListClubParticipations(ctx context.Context, eventID string) ([]entities.ClubParticipation, error)
}
