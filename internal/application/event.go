package application

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"

	"clubxp/internal/domain"
	"clubxp/internal/domain/entities"
	"clubxp/internal/domain/gate"
	"clubxp/internal/domain/xp"
	"clubxp/internal/ports/input"
	"clubxp/internal/ports/output"
	"clubxp/pkg/logger"
	"clubxp/pkg/metrics"
)

var _ input.EventUseCase = (*EventService)(nil)

// EventService creates events and drives them from upcoming to pending.
type EventService struct {
	store output.Store
	settings
}

func NewEventService(store output.Store, opts ...Option) *EventService {
	return &EventService{store: store, settings: newSettings("lifecycle", opts)}
}

func (s *EventService) CreateEvent(ctx context.Context, in input.CreateEventInput) (*entities.Event, error) {
	createdBy, err := s.actorID(ctx, strings.TrimSpace(in.CreatedBy))
	if err != nil {
		return nil, err
	}
	in.CreatedBy = createdBy
	if err := validateCreate(&in); err != nil {
		return nil, err
	}

	event := &entities.Event{
		ID:          uuid.NewString(),
		ClubID:      in.ClubID,
		Title:       in.Title,
		Description: strings.TrimSpace(in.Description),
		ScheduledAt: in.ScheduledAt.UTC(),
		Place:       strings.TrimSpace(in.Place),
		BaseXP:      in.BaseXP,
		Type:        in.Type,
		Status:      entities.StatusUpcoming,
		CreatedBy:   in.CreatedBy,
	}
	var competing []string
	switch in.Type {
	case entities.EventTypeIntra:
		event.Capacity = in.Capacity
		event.SizeCategory = in.SizeCategory
		event.TotalXPPool = xp.IntraPool(in.SizeCategory)
	case entities.EventTypeInter:
		competing = normalizeClubIDs(in.CompetingClubIDs, in.ClubID)
		event.TotalXPPool = xp.ProvisionalInterPool(len(competing))
	}

	invited := 0
	err = s.store.WithinTx(ctx, func(tx output.Store) error {
		if err := tx.CreateEvent(ctx, event); err != nil {
			return err
		}
		if !event.IsInter() {
			return nil
		}
		var err error
		invited, err = seedInvitations(ctx, tx, event.ID, event.ClubID, competing)
		return err
	})
	if err != nil {
		s.log.Error(ctx, "create event failed", logger.String("club_id", in.ClubID), logger.Error(err))
		return nil, err
	}

	metrics.RecordInvitations("invited", invited)
	s.log.Info(ctx, "event created",
		logger.String("event_id", event.ID),
		logger.String("type", string(event.Type)),
		logger.Int("pool", event.TotalXPPool),
	)
	return event, nil
}

func validateCreate(in *input.CreateEventInput) error {
	in.ClubID = strings.TrimSpace(in.ClubID)
	in.Title = strings.TrimSpace(in.Title)
	switch {
	case in.ClubID == "":
		return domain.Invalid("club id is required")
	case in.Title == "":
		return domain.Invalid("title is required")
	case in.ScheduledAt.IsZero():
		return domain.Invalid("scheduled date is required")
	case in.CreatedBy == "":
		return domain.Invalid("creator is required")
	case !in.Type.Valid():
		return domain.Invalid("unknown event type %q", in.Type)
	case in.BaseXP < 0:
		return domain.Invalid("base xp must not be negative")
	}
	if in.Type == entities.EventTypeIntra {
		if in.Capacity < 1 {
			return domain.Invalid("capacity must be at least 1")
		}
		if strings.TrimSpace(string(in.SizeCategory)) == "" {
			return domain.Invalid("size category is required for intra events")
		}
	}
	return nil
}

func (s *EventService) GetEvent(ctx context.Context, id string) (*entities.Event, error) {
	return s.store.GetEvent(ctx, id)
}

// ListEventsForClub returns the club's own events and those it competes in.
func (s *EventService) ListEventsForClub(ctx context.Context, clubID string) ([]entities.Event, error) {
	clubID = strings.TrimSpace(clubID)
	if clubID == "" {
		return nil, domain.Invalid("club id is required")
	}
	return s.store.ListEventsVisibleToClub(ctx, clubID)
}

// CanComplete evaluates the completion gate on freshly loaded state.
func (s *EventService) CanComplete(ctx context.Context, eventID, actorID string) (bool, error) {
	actorID, err := s.actorID(ctx, actorID)
	if err != nil {
		return false, err
	}
	event, rows, err := s.load(ctx, s.store, eventID)
	if err != nil {
		return false, err
	}
	return gate.CanComplete(event, actorID, rows, s.now()), nil
}

// SubmitCompletion moves an upcoming event to pending with its results.
//
// Gate and ranking are checked before any upload or write, and again inside
// the transaction on locked state. The status change is conditional on the
// event still being upcoming, so of two concurrent submissions exactly one
// applies and the other gets ErrAlreadySubmitted.
func (s *EventService) SubmitCompletion(ctx context.Context, in input.CompletionInput) (*input.CompletionResult, error) {
	res, err := s.submitCompletion(ctx, in)
	if err != nil {
		code := domain.Code(err)
		if code == "" {
			code = "error"
		}
		metrics.RecordCompletion(code)
		return nil, err
	}
	metrics.RecordCompletion("submitted")
	return res, nil
}

func (s *EventService) submitCompletion(ctx context.Context, in input.CompletionInput) (*input.CompletionResult, error) {
	actorID, err := s.actorID(ctx, strings.TrimSpace(in.ActorID))
	if err != nil {
		return nil, err
	}

	event, rows, err := s.load(ctx, s.store, in.EventID)
	if err != nil {
		return nil, err
	}
	if err := gate.Check(event, actorID, rows, s.now()); err != nil {
		return nil, err
	}
	if _, err := distribute(event, rows, in.PositionsByClub); err != nil {
		return nil, err
	}

	uploaded, failures := s.uploadProofs(ctx, event, in.Photos)
	proofs := append(cleanURIs(in.ProofURIs), uploaded...)

	var (
		result = &input.CompletionResult{UploadFailures: failures}
		dist   xp.Distribution
	)
	err = s.store.WithinTx(ctx, func(tx output.Store) error {
		locked, rows, err := s.lockAndLoad(ctx, tx, in.EventID)
		if err != nil {
			return err
		}
		now := s.now()
		if err := gate.Check(locked, actorID, rows, now); err != nil {
			return err
		}
		dist, err = distribute(locked, rows, in.PositionsByClub)
		if err != nil {
			return err
		}

		ok, err := tx.UpdateEventStatus(ctx, locked.ID, entities.StatusUpcoming, entities.StatusPending)
		if err != nil {
			return err
		}
		if !ok {
			return domain.Newf(domain.ErrAlreadySubmitted, "event %q left upcoming concurrently", locked.ID)
		}

		completion := entities.Completion{
			ResultsDescription: strings.TrimSpace(in.ResultsDescription),
			ProofURIs:          proofs,
			TotalXPPool:        locked.TotalXPPool,
			SubmittedAt:        now.UTC(),
		}
		if locked.IsInter() {
			completion.TotalXPPool = dist.Pool
		}
		if err := tx.SaveCompletion(ctx, locked.ID, completion); err != nil {
			return err
		}

		for i := range rows {
			award, ranked := dist.Awards[rows[i].ClubID]
			if !ranked {
				continue
			}
			pos := in.PositionsByClub[rows[i].ClubID]
			rows[i].Position = &pos
			rows[i].XPAwarded = award
			if err := tx.UpsertClubParticipation(ctx, &rows[i]); err != nil {
				return err
			}
		}

		locked.Status = entities.StatusPending
		locked.ResultsDescription = completion.ResultsDescription
		locked.ProofURIs = completion.ProofURIs
		locked.TotalXPPool = completion.TotalXPPool
		locked.SubmittedAt = completion.SubmittedAt
		result.Event = locked
		result.Participations = rows
		return nil
	})
	if err != nil {
		if !isExpected(err) {
			s.log.Error(ctx, "submit completion failed", logger.String("event_id", in.EventID), logger.Error(err))
		}
		return nil, err
	}
	if result.Event.IsInter() {
		result.Awards = dist.Awards
	}

	metrics.ObservePool(string(result.Event.Type), result.Event.TotalXPPool)
	s.log.Info(ctx, "completion submitted",
		logger.String("event_id", result.Event.ID),
		logger.Int("pool", result.Event.TotalXPPool),
		logger.Int("ranked", len(result.Awards)),
		logger.Int("upload_failures", len(failures)),
	)
	s.notify(ctx, result.Event.ID, output.KeyCompletionSubmitted, map[string]any{
		"Title": result.Event.Title,
		"Pool":  result.Event.TotalXPPool,
	})
	return result, nil
}

func (s *EventService) load(ctx context.Context, store output.Store, eventID string) (*entities.Event, []entities.ClubParticipation, error) {
	event, err := store.GetEvent(ctx, eventID)
	if err != nil {
		return nil, nil, err
	}
	rows, err := participationsOf(ctx, store, event)
	return event, rows, err
}

func (s *EventService) lockAndLoad(ctx context.Context, tx output.Store, eventID string) (*entities.Event, []entities.ClubParticipation, error) {
	event, err := tx.LockEvent(ctx, eventID)
	if err != nil {
		return nil, nil, err
	}
	rows, err := participationsOf(ctx, tx, event)
	return event, rows, err
}

func participationsOf(ctx context.Context, store output.Store, event *entities.Event) ([]entities.ClubParticipation, error) {
	if !event.IsInter() {
		return nil, nil
	}
	return store.ListClubParticipations(ctx, event.ID)
}

// distribute validates the ranking against the event's accepted clubs and
// computes the awards. Intra events take no ranking.
func distribute(event *entities.Event, rows []entities.ClubParticipation, positions map[string]int) (xp.Distribution, error) {
	if !event.IsInter() {
		if len(positions) > 0 {
			return xp.Distribution{}, domain.Invalid("positions only apply to inter events")
		}
		return xp.Distribution{}, nil
	}

	accepted := make(map[string]bool, len(rows))
	for _, r := range rows {
		accepted[r.ClubID] = r.Accepted
	}
	entries := make([]xp.Entry, 0, len(positions))
	for clubID, pos := range positions {
		if pos < 1 || pos > xp.MaxPosition {
			return xp.Distribution{}, domain.Invalid("position of club %q must be between 1 and %d", clubID, xp.MaxPosition)
		}
		if !accepted[clubID] {
			return xp.Distribution{}, domain.Invalid("club %q is not an accepted participant", clubID)
		}
		entries = append(entries, xp.Entry{ClubID: clubID, Position: pos})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].ClubID < entries[j].ClubID })
	return xp.Distribute(entries)
}

func cleanURIs(uris []string) []string {
	out := make([]string, 0, len(uris))
	for _, u := range uris {
		if u = strings.TrimSpace(u); u != "" {
			out = append(out, u)
		}
	}
	return out
}

// isExpected reports errors that are outcomes of the request rather than
// failures of the system.
func isExpected(err error) bool {
	switch domain.Code(err) {
	case "validation", "not_authorized", "not_ready", "already_submitted", "event_not_found":
		return true
	}
	return false
}
