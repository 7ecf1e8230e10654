package database

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"clubxp/internal/domain"
	"clubxp/internal/domain/entities"
)

const clubParticipationColumns = `event_id, club_id, accepted, position, xp_awarded`

func (s *Store) UpsertClubParticipation(ctx context.Context, p *entities.ClubParticipation) error {
	position, xp, err := clubParticipationArgs(p)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(ctx, `
		INSERT INTO club_participations (`+clubParticipationColumns+`)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (event_id, club_id) DO UPDATE
		SET accepted = EXCLUDED.accepted,
			position = EXCLUDED.position,
			xp_awarded = EXCLUDED.xp_awarded`,
		p.EventID, p.ClubID, p.Accepted, position, xp)
	return s.clubWriteErr("upsert club participation", p.EventID, err)
}

func (s *Store) InsertClubParticipation(ctx context.Context, p *entities.ClubParticipation) (bool, error) {
	position, xp, err := clubParticipationArgs(p)
	if err != nil {
		return false, err
	}
	tag, err := s.db.Exec(ctx, `
		INSERT INTO club_participations (`+clubParticipationColumns+`)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (event_id, club_id) DO NOTHING`,
		p.EventID, p.ClubID, p.Accepted, position, xp)
	if err != nil {
		return false, s.clubWriteErr("insert club participation", p.EventID, err)
	}
	return tag.RowsAffected() == 1, nil
}

func (s *Store) clubWriteErr(op, eventID string, err error) error {
	if pgCode(err) == codeForeignKeyViolation {
		return domain.Newf(domain.ErrEventNotFound, "id %q", eventID)
	}
	return wrap(op, err)
}

func (s *Store) GetClubParticipation(ctx context.Context, eventID, clubID string) (*entities.ClubParticipation, error) {
	p, err := scanClubParticipation(s.db.QueryRow(ctx, `
		SELECT `+clubParticipationColumns+`
		FROM club_participations WHERE event_id = $1 AND club_id = $2`,
		eventID, clubID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.Newf(domain.ErrParticipationNotFound, "club %q in event %q", clubID, eventID)
	}
	if err != nil {
		return nil, wrap("get club participation", err)
	}
	return p, nil
}

func (s *Store) DeleteClubParticipation(ctx context.Context, eventID, clubID string) (bool, error) {
	tag, err := s.db.Exec(ctx, `DELETE FROM club_participations WHERE event_id = $1 AND club_id = $2`, eventID, clubID)
	if err != nil {
		return false, wrap("delete club participation", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (s *Store) ListClubParticipations(ctx context.Context, eventID string) ([]entities.ClubParticipation, error) {
	rows, err := s.db.Query(ctx, `
		SELECT `+clubParticipationColumns+`
		FROM club_participations WHERE event_id = $1
		ORDER BY club_id`, eventID)
	if err != nil {
		return nil, wrap("list club participations", err)
	}
	defer rows.Close()

	var out []entities.ClubParticipation
	for rows.Next() {
		p, err := scanClubParticipation(rows)
		if err != nil {
			return nil, wrap("scan club participation", err)
		}
		out = append(out, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap("list club participations", err)
	}
	return out, nil
}
