package database

import (
	"math"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"clubxp/internal/domain"
	"clubxp/internal/domain/entities"
)

const eventColumns = `id, club_id, title, description, scheduled_at, place, capacity, base_xp,
	type, size_category, status, total_xp_pool, results_description, proof_uris,
	created_by, submitted_at, created_at, updated_at`

// pgtypeTimestamptzToTime returns t.Time when Valid, else zero time.
func pgtypeTimestamptzToTime(t pgtype.Timestamptz) time.Time {
	if !t.Valid {
		return time.Time{}
	}
	return t.Time.UTC()
}

func timeToPgtypeTimestamptz(t time.Time) pgtype.Timestamptz {
	if t.IsZero() {
		return pgtype.Timestamptz{}
	}
	return pgtype.Timestamptz{Time: t.UTC(), Valid: true}
}

// int4 refuses values that an INTEGER column would not hold.
func int4(field string, v int) (int32, error) {
	if v < math.MinInt32 || v > math.MaxInt32 {
		return 0, domain.Invalid("%s %d does not fit a 32-bit integer", field, v)
	}
	return int32(v), nil
}

func positionToPg(p *int) (pgtype.Int4, error) {
	if p == nil {
		return pgtype.Int4{}, nil
	}
	v, err := int4("position", *p)
	if err != nil {
		return pgtype.Int4{}, err
	}
	return pgtype.Int4{Int32: v, Valid: true}, nil
}

// clubParticipationArgs returns the position and xp_awarded arguments of p.
func clubParticipationArgs(p *entities.ClubParticipation) (pgtype.Int4, int32, error) {
	position, err := positionToPg(p.Position)
	if err != nil {
		return pgtype.Int4{}, 0, err
	}
	xp, err := int4("xp_awarded", p.XPAwarded)
	if err != nil {
		return pgtype.Int4{}, 0, err
	}
	return position, xp, nil
}

func positionFromPg(p pgtype.Int4) *int {
	if !p.Valid {
		return nil
	}
	v := int(p.Int32)
	return &v
}

func scanEvent(row pgx.Row) (*entities.Event, error) {
	var (
		e                        entities.Event
		typ, size, status        string
		scheduledAt, submittedAt pgtype.Timestamptz
		createdAt, updatedAt     pgtype.Timestamptz
		capacity, baseXP, xpPool int32
	)
	err := row.Scan(
		&e.ID, &e.ClubID, &e.Title, &e.Description, &scheduledAt, &e.Place, &capacity, &baseXP,
		&typ, &size, &status, &xpPool, &e.ResultsDescription, &e.ProofURIs,
		&e.CreatedBy, &submittedAt, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}
	e.Type = entities.EventType(typ)
	e.SizeCategory = entities.SizeCategory(size)
	e.Status = entities.EventStatus(status)
	e.Capacity = int(capacity)
	e.BaseXP = int(baseXP)
	e.TotalXPPool = int(xpPool)
	e.ScheduledAt = pgtypeTimestamptzToTime(scheduledAt)
	e.SubmittedAt = pgtypeTimestamptzToTime(submittedAt)
	e.CreatedAt = pgtypeTimestamptzToTime(createdAt)
	e.UpdatedAt = pgtypeTimestamptzToTime(updatedAt)
	return &e, nil
}

func scanClubParticipation(row pgx.Row) (*entities.ClubParticipation, error) {
	var (
		p        entities.ClubParticipation
		position pgtype.Int4
		xp       int32
	)
	if err := row.Scan(&p.EventID, &p.ClubID, &p.Accepted, &position, &xp); err != nil {
		return nil, err
	}
	p.Position = positionFromPg(position)
	p.XPAwarded = int(xp)
	return &p, nil
}

// proofURIs never hands a nil slice to the NOT NULL text[] column.
func proofURIs(uris []string) []string {
	if uris == nil {
		return []string{}
	}
	return uris
}
