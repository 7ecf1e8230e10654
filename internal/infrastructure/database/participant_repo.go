package database

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"clubxp/internal/domain"
	"clubxp/internal/domain/entities"
)

func (s *Store) InsertParticipant(ctx context.Context, p *entities.Participant) (bool, error) {
	tag, err := s.db.Exec(ctx, `
		INSERT INTO participants (event_id, user_id, joined_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (event_id, user_id) DO NOTHING`,
		p.EventID, p.UserID, timeToPgtypeTimestamptz(p.JoinedAt))
	if err != nil {
		if pgCode(err) == codeForeignKeyViolation {
			return false, domain.Newf(domain.ErrEventNotFound, "id %q", p.EventID)
		}
		return false, wrap("insert participant", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (s *Store) GetParticipant(ctx context.Context, eventID, userID string) (*entities.Participant, error) {
	var (
		p        = entities.Participant{EventID: eventID, UserID: userID}
		joinedAt pgtype.Timestamptz
	)
	err := s.db.QueryRow(ctx, `
		SELECT joined_at FROM participants WHERE event_id = $1 AND user_id = $2`,
		eventID, userID).Scan(&joinedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, wrap("get participant", err)
	}
	p.JoinedAt = pgtypeTimestamptzToTime(joinedAt)
	return &p, nil
}

func (s *Store) DeleteParticipant(ctx context.Context, eventID, userID string) (bool, error) {
	tag, err := s.db.Exec(ctx, `DELETE FROM participants WHERE event_id = $1 AND user_id = $2`, eventID, userID)
	if err != nil {
		return false, wrap("delete participant", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (s *Store) CountParticipants(ctx context.Context, eventID string) (int, error) {
	var n int64
	if err := s.db.QueryRow(ctx, `SELECT count(*) FROM participants WHERE event_id = $1`, eventID).Scan(&n); err != nil {
		return 0, wrap("count participants", err)
	}
	return int(n), nil
}
