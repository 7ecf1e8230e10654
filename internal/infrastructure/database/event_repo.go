package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"clubxp/internal/domain"
	"clubxp/internal/domain/entities"
)

func (s *Store) CreateEvent(ctx context.Context, event *entities.Event) error {
	row := s.db.QueryRow(ctx, `
		INSERT INTO events (id, club_id, title, description, scheduled_at, place, capacity, base_xp,
			type, size_category, status, total_xp_pool, results_description, proof_uris, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING created_at, updated_at`,
		event.ID, event.ClubID, event.Title, event.Description,
		timeToPgtypeTimestamptz(event.ScheduledAt), event.Place, event.Capacity, event.BaseXP,
		string(event.Type), string(event.SizeCategory), string(event.Status), event.TotalXPPool,
		event.ResultsDescription, proofURIs(event.ProofURIs), event.CreatedBy,
	)
	var createdAt, updatedAt pgtype.Timestamptz
	if err := row.Scan(&createdAt, &updatedAt); err != nil {
		if pgCode(err) == codeUniqueViolation {
			return domain.Persistence(domain.Invalid("event %q already exists", event.ID))
		}
		return wrap("create event", err)
	}
	event.CreatedAt = pgtypeTimestamptzToTime(createdAt)
	event.UpdatedAt = pgtypeTimestamptzToTime(updatedAt)
	return nil
}

func (s *Store) GetEvent(ctx context.Context, id string) (*entities.Event, error) {
	return s.getEvent(ctx, `SELECT `+eventColumns+` FROM events WHERE id = $1`, id)
}

// LockEvent takes a row lock that lasts until the surrounding transaction ends.
func (s *Store) LockEvent(ctx context.Context, id string) (*entities.Event, error) {
	return s.getEvent(ctx, `SELECT `+eventColumns+` FROM events WHERE id = $1 FOR UPDATE`, id)
}

func (s *Store) getEvent(ctx context.Context, query, id string) (*entities.Event, error) {
	e, err := scanEvent(s.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.Newf(domain.ErrEventNotFound, "id %q", id)
	}
	if err != nil {
		return nil, wrap("get event", err)
	}
	return e, nil
}

func (s *Store) ListEventsVisibleToClub(ctx context.Context, clubID string) ([]entities.Event, error) {
	rows, err := s.db.Query(ctx, `
		SELECT `+eventColumns+`
		FROM events e
		WHERE e.club_id = $1
		   OR EXISTS (
			SELECT 1 FROM club_participations cp
			WHERE cp.event_id = e.id AND cp.club_id = $1 AND cp.accepted
		   )
		ORDER BY e.scheduled_at, e.id`, clubID)
	if err != nil {
		return nil, wrap("list events", err)
	}
	defer rows.Close()

	var out []entities.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, wrap("scan event", err)
		}
		out = append(out, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap("list events", err)
	}
	return out, nil
}

func (s *Store) UpdateEventStatus(ctx context.Context, id string, expected, next entities.EventStatus) (bool, error) {
	tag, err := s.db.Exec(ctx, `
		UPDATE events SET status = $3, updated_at = now()
		WHERE id = $1 AND status = $2`,
		id, string(expected), string(next))
	if err != nil {
		return false, wrap("update event status", err)
	}
	if tag.RowsAffected() == 1 {
		return true, nil
	}
	if err := s.ensureEvent(ctx, id); err != nil {
		return false, err
	}
	return false, nil
}

func (s *Store) SaveCompletion(ctx context.Context, id string, c entities.Completion) error {
	tag, err := s.db.Exec(ctx, `
		UPDATE events
		SET results_description = $2, proof_uris = $3, total_xp_pool = $4,
			submitted_at = $5, updated_at = now()
		WHERE id = $1`,
		id, c.ResultsDescription, proofURIs(c.ProofURIs), c.TotalXPPool, timeToPgtypeTimestamptz(c.SubmittedAt))
	if err != nil {
		return wrap("save completion", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.Newf(domain.ErrEventNotFound, "id %q", id)
	}
	return nil
}

func (s *Store) ensureEvent(ctx context.Context, id string) error {
	var exists bool
	if err := s.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM events WHERE id = $1)`, id).Scan(&exists); err != nil {
		return wrap(fmt.Sprintf("check event %s", id), err)
	}
	if !exists {
		return domain.Newf(domain.ErrEventNotFound, "id %q", id)
	}
	return nil
}
