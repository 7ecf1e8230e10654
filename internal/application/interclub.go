package application

import (
	"context"
	"strings"

	"clubxp/internal/domain"
	"clubxp/internal/domain/entities"
	"clubxp/internal/ports/input"
	"clubxp/internal/ports/output"
	"clubxp/pkg/logger"
	"clubxp/pkg/metrics"
)

var _ input.InterClubUseCase = (*InterClubService)(nil)

// InterClubService manages which clubs compete in an inter-club event.
//
// Per (event, club): invited (accepted=false) -> accepted is the only forward
// edge; either state can be removed by a decline, after which the club must
// be invited again.
type InterClubService struct {
	store output.Store
	settings
}

func NewInterClubService(store output.Store, opts ...Option) *InterClubService {
	return &InterClubService{store: store, settings: newSettings("interclub", opts)}
}

// CreateInvitations seeds the owning club as accepted and invites the others.
// Calling it again is safe: the owner row is upserted, existing invitations
// are left untouched and declined clubs are invited afresh.
func (s *InterClubService) CreateInvitations(ctx context.Context, eventID, creatorClubID string, competingClubIDs []string) error {
	invited := 0
	err := s.store.WithinTx(ctx, func(tx output.Store) error {
		event, err := tx.LockEvent(ctx, eventID)
		if err != nil {
			return err
		}
		if err := checkInterOpen(event); err != nil {
			return err
		}
		if creatorClubID != event.ClubID {
			return domain.Invalid("club %q does not own event %q", creatorClubID, eventID)
		}
		invited, err = seedInvitations(ctx, tx, eventID, creatorClubID, normalizeClubIDs(competingClubIDs, creatorClubID))
		return err
	})
	if err != nil {
		return err
	}
	metrics.RecordInvitations("invited", invited)
	s.log.Debug(ctx, "invitations created", logger.String("event_id", eventID), logger.Int("invited", invited))
	return nil
}

// Accept marks the club's invitation as accepted. Accepting twice is a no-op.
func (s *InterClubService) Accept(ctx context.Context, eventID, clubID string) error {
	var (
		event   *entities.Event
		changed bool
	)
	err := s.store.WithinTx(ctx, func(tx output.Store) error {
		var err error
		event, err = tx.LockEvent(ctx, eventID)
		if err != nil {
			return err
		}
		if err := checkInterOpen(event); err != nil {
			return err
		}
		row, err := tx.GetClubParticipation(ctx, eventID, clubID)
		if err != nil {
			return err
		}
		if row.Accepted {
			return nil
		}
		row.Accepted = true
		changed = true
		return tx.UpsertClubParticipation(ctx, row)
	})
	if err != nil {
		return err
	}
	if changed {
		metrics.RecordInvitations("accepted", 1)
		s.notify(ctx, eventID, output.KeyInviteAccepted, map[string]any{"ClubID": clubID, "Title": event.Title})
	}
	return nil
}

// Decline removes the club from the event. Declining a club that is not
// part of the event is a no-op; the owning club cannot decline.
func (s *InterClubService) Decline(ctx context.Context, eventID, clubID string) error {
	var (
		event   *entities.Event
		deleted bool
	)
	err := s.store.WithinTx(ctx, func(tx output.Store) error {
		var err error
		event, err = tx.LockEvent(ctx, eventID)
		if err != nil {
			return err
		}
		if err := checkInterOpen(event); err != nil {
			return err
		}
		if clubID == event.ClubID {
			return domain.Invalid("the owning club cannot decline its own event")
		}
		deleted, err = tx.DeleteClubParticipation(ctx, eventID, clubID)
		return err
	})
	if err != nil {
		return err
	}
	if deleted {
		metrics.RecordInvitations("declined", 1)
		s.notify(ctx, eventID, output.KeyInviteDeclined, map[string]any{"ClubID": clubID, "Title": event.Title})
	}
	return nil
}

func (s *InterClubService) ListParticipations(ctx context.Context, eventID string) ([]entities.ClubParticipation, error) {
	return s.store.ListClubParticipations(ctx, eventID)
}

// seedInvitations must run inside the caller's transaction.
func seedInvitations(ctx context.Context, tx output.Store, eventID, ownerClubID string, competing []string) (int, error) {
	owner := &entities.ClubParticipation{EventID: eventID, ClubID: ownerClubID, Accepted: true}
	if err := tx.UpsertClubParticipation(ctx, owner); err != nil {
		return 0, err
	}
	invited := 0
	for _, clubID := range competing {
		inserted, err := tx.InsertClubParticipation(ctx, &entities.ClubParticipation{EventID: eventID, ClubID: clubID})
		if err != nil {
			return invited, err
		}
		if inserted {
			invited++
		}
	}
	return invited, nil
}

// normalizeClubIDs trims ids and drops blanks, duplicates and the owner.
func normalizeClubIDs(ids []string, owner string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" || id == owner {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func checkInterOpen(event *entities.Event) error {
	if event.Type != entities.EventTypeInter {
		return domain.Newf(domain.ErrWrongEventType, "invitations only exist on inter events")
	}
	if !event.IsUpcoming() {
		return domain.Newf(domain.ErrEventClosed, "event status is %s", event.Status)
	}
	return nil
}
