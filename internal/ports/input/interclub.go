package input

import (
	"context"

	"clubxp/internal/domain/entities"
)

type InterClubUseCase interface {
	CreateInvitations(ctx context.Context, eventID, creatorClubID string, competingClubIDs []string) error
	Accept(ctx context.Context, eventID, clubID string) error
	Decline(ctx context.Context, eventID, clubID string) error
	ListParticipations(ctx context.Context, eventID string) ([]entities.ClubParticipation, error)
}
