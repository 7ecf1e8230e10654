// Package memory provides an in-process implementation of output.Store.
//
// All access is serialized by one mutex. A transaction works on a private
// copy of the state and swaps it in on commit, so a failed transaction leaves
// nothing behind.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"clubxp/internal/domain"
	"clubxp/internal/domain/entities"
	"clubxp/internal/ports/output"
)

var _ output.Store = (*Store)(nil)

type rowKey struct {
	eventID string
	other   string
}

type state struct {
	events       map[string]entities.Event
	participants map[rowKey]entities.Participant
	clubs        map[rowKey]entities.ClubParticipation
}

func newState() *state {
	return &state{
		events:       make(map[string]entities.Event),
		participants: make(map[rowKey]entities.Participant),
		clubs:        make(map[rowKey]entities.ClubParticipation),
	}
}

func (s *state) clone() *state {
	c := newState()
	for k, v := range s.events {
		c.events[k] = copyEvent(v)
	}
	for k, v := range s.participants {
		c.participants[k] = v
	}
	for k, v := range s.clubs {
		c.clubs[k] = copyParticipation(v)
	}
	return c
}

// Store keeps events, participants and club participations in memory.
type Store struct {
	mu  *sync.Mutex
	st  **state
	now func() time.Time
	tx  *state // non-nil inside WithinTx
}

type Option func(*Store)

// WithClock overrides the clock used for CreatedAt/UpdatedAt stamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

func New(opts ...Option) *Store {
	st := newState()
	s := &Store{mu: &sync.Mutex{}, st: &st, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) do(fn func(st *state) error) error {
	if s.tx != nil {
		return fn(s.tx)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(*s.st)
}

func (s *Store) WithinTx(ctx context.Context, fn func(tx output.Store) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.tx != nil {
		return fn(s)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	work := (*s.st).clone()
	if err := fn(&Store{mu: s.mu, st: s.st, now: s.now, tx: work}); err != nil {
		return err
	}
	*s.st = work
	return nil
}

// Events.

func (s *Store) CreateEvent(ctx context.Context, event *entities.Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.do(func(st *state) error {
		if _, exists := st.events[event.ID]; exists {
			return domain.Persistence(domain.Invalid("event %q already exists", event.ID))
		}
		now := s.now().UTC()
		event.CreatedAt = now
		event.UpdatedAt = now
		st.events[event.ID] = copyEvent(*event)
		return nil
	})
}

func (s *Store) GetEvent(ctx context.Context, id string) (*entities.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var out *entities.Event
	err := s.do(func(st *state) error {
		e, ok := st.events[id]
		if !ok {
			return domain.Newf(domain.ErrEventNotFound, "id %q", id)
		}
		c := copyEvent(e)
		out = &c
		return nil
	})
	return out, err
}

// LockEvent is GetEvent: the store mutex is already held for the whole transaction.
func (s *Store) LockEvent(ctx context.Context, id string) (*entities.Event, error) {
	return s.GetEvent(ctx, id)
}

func (s *Store) ListEventsVisibleToClub(ctx context.Context, clubID string) ([]entities.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var out []entities.Event
	err := s.do(func(st *state) error {
		for _, e := range st.events {
			visible := e.ClubID == clubID
			if !visible {
				p, ok := st.clubs[rowKey{e.ID, clubID}]
				visible = ok && p.Accepted
			}
			if visible {
				out = append(out, copyEvent(e))
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool {
		if !out[i].ScheduledAt.Equal(out[j].ScheduledAt) {
			return out[i].ScheduledAt.Before(out[j].ScheduledAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, err
}

func (s *Store) UpdateEventStatus(ctx context.Context, id string, expected, next entities.EventStatus) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	updated := false
	err := s.do(func(st *state) error {
		e, ok := st.events[id]
		if !ok {
			return domain.Newf(domain.ErrEventNotFound, "id %q", id)
		}
		if e.Status != expected {
			return nil
		}
		e.Status = next
		e.UpdatedAt = s.now().UTC()
		st.events[id] = e
		updated = true
		return nil
	})
	return updated, err
}

func (s *Store) SaveCompletion(ctx context.Context, id string, c entities.Completion) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.do(func(st *state) error {
		e, ok := st.events[id]
		if !ok {
			return domain.Newf(domain.ErrEventNotFound, "id %q", id)
		}
		e.ResultsDescription = c.ResultsDescription
		e.ProofURIs = append([]string(nil), c.ProofURIs...)
		e.TotalXPPool = c.TotalXPPool
		e.SubmittedAt = c.SubmittedAt
		e.UpdatedAt = s.now().UTC()
		st.events[id] = e
		return nil
	})
}

// Participants.

func (s *Store) InsertParticipant(ctx context.Context, p *entities.Participant) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	inserted := false
	err := s.do(func(st *state) error {
		if _, ok := st.events[p.EventID]; !ok {
			return domain.Newf(domain.ErrEventNotFound, "id %q", p.EventID)
		}
		k := rowKey{p.EventID, p.UserID}
		if _, exists := st.participants[k]; exists {
			return nil
		}
		st.participants[k] = *p
		inserted = true
		return nil
	})
	return inserted, err
}

func (s *Store) GetParticipant(ctx context.Context, eventID, userID string) (*entities.Participant, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var out *entities.Participant
	err := s.do(func(st *state) error {
		if p, ok := st.participants[rowKey{eventID, userID}]; ok {
			out = &p
		}
		return nil
	})
	return out, err
}

func (s *Store) DeleteParticipant(ctx context.Context, eventID, userID string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	deleted := false
	err := s.do(func(st *state) error {
		k := rowKey{eventID, userID}
		if _, ok := st.participants[k]; ok {
			delete(st.participants, k)
			deleted = true
		}
		return nil
	})
	return deleted, err
}

func (s *Store) CountParticipants(ctx context.Context, eventID string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	n := 0
	err := s.do(func(st *state) error {
		for k := range st.participants {
			if k.eventID == eventID {
				n++
			}
		}
		return nil
	})
	return n, err
}

// Club participations.

func (s *Store) UpsertClubParticipation(ctx context.Context, p *entities.ClubParticipation) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.do(func(st *state) error {
		if _, ok := st.events[p.EventID]; !ok {
			return domain.Newf(domain.ErrEventNotFound, "id %q", p.EventID)
		}
		st.clubs[rowKey{p.EventID, p.ClubID}] = copyParticipation(*p)
		return nil
	})
}

func (s *Store) InsertClubParticipation(ctx context.Context, p *entities.ClubParticipation) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	inserted := false
	err := s.do(func(st *state) error {
		if _, ok := st.events[p.EventID]; !ok {
			return domain.Newf(domain.ErrEventNotFound, "id %q", p.EventID)
		}
		k := rowKey{p.EventID, p.ClubID}
		if _, exists := st.clubs[k]; exists {
			return nil
		}
		st.clubs[k] = copyParticipation(*p)
		inserted = true
		return nil
	})
	return inserted, err
}

func (s *Store) GetClubParticipation(ctx context.Context, eventID, clubID string) (*entities.ClubParticipation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var out *entities.ClubParticipation
	err := s.do(func(st *state) error {
		p, ok := st.clubs[rowKey{eventID, clubID}]
		if !ok {
			return domain.Newf(domain.ErrParticipationNotFound, "club %q in event %q", clubID, eventID)
		}
		c := copyParticipation(p)
		out = &c
		return nil
	})
	return out, err
}

func (s *Store) DeleteClubParticipation(ctx context.Context, eventID, clubID string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	deleted := false
	err := s.do(func(st *state) error {
		k := rowKey{eventID, clubID}
		if _, ok := st.clubs[k]; ok {
			delete(st.clubs, k)
			deleted = true
		}
		return nil
	})
	return deleted, err
}

func (s *Store) ListClubParticipations(ctx context.Context, eventID string) ([]entities.ClubParticipation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var out []entities.ClubParticipation
	err := s.do(func(st *state) error {
		for k, p := range st.clubs {
			if k.eventID == eventID {
				out = append(out, copyParticipation(p))
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].ClubID < out[j].ClubID })
	return out, err
}

func copyEvent(e entities.Event) entities.Event {
	e.ProofURIs = append([]string(nil), e.ProofURIs...)
	return e
}

func copyParticipation(p entities.ClubParticipation) entities.ClubParticipation {
	if p.Position != nil {
		pos := *p.Position
		p.Position = &pos
	}
	return p
}
