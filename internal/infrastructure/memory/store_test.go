package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"clubxp/internal/domain"
	"clubxp/internal/domain/entities"
	"clubxp/internal/infrastructure/memory"
	"clubxp/internal/ports/output"

	. "github.com/smartystreets/goconvey/convey"
)

func seedEvent(ctx context.Context, s *memory.Store, id, clubID string, at time.Time) {
	err := s.CreateEvent(ctx, &entities.Event{
		ID:          id,
		ClubID:      clubID,
		Title:       "Match " + id,
		Type:        entities.EventTypeInter,
		Status:      entities.StatusUpcoming,
		ScheduledAt: at,
	})
	So(err, ShouldBeNil)
}

func TestStore(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2026, time.May, 2, 10, 0, 0, 0, time.UTC)

	Convey("Given a store with one event", t, func() {
		s := memory.New(memory.WithClock(func() time.Time { return base }))
		seedEvent(ctx, s, "ev-1", "chess", base.Add(24*time.Hour))

		Convey("The event reads back with creation stamps", func() {
			e, err := s.GetEvent(ctx, "ev-1")
			So(err, ShouldBeNil)
			So(e.ClubID, ShouldEqual, "chess")
			So(e.CreatedAt.Equal(base), ShouldBeTrue)
		})

		Convey("A missing event is reported as not found", func() {
			_, err := s.GetEvent(ctx, "nope")
			So(errors.Is(err, domain.ErrEventNotFound), ShouldBeTrue)
		})

		Convey("Creating the same id twice is a persistence error", func() {
			err := s.CreateEvent(ctx, &entities.Event{ID: "ev-1"})
			So(errors.Is(err, domain.ErrPersistence), ShouldBeTrue)
		})

		Convey("Status updates are conditional on the expected status", func() {
			ok, err := s.UpdateEventStatus(ctx, "ev-1", entities.StatusUpcoming, entities.StatusPending)
			So(err, ShouldBeNil)
			So(ok, ShouldBeTrue)

			ok, err = s.UpdateEventStatus(ctx, "ev-1", entities.StatusUpcoming, entities.StatusPending)
			So(err, ShouldBeNil)
			So(ok, ShouldBeFalse)
		})

		Convey("Participants are unique per user and counted per event", func() {
			p := &entities.Participant{EventID: "ev-1", UserID: "u1", JoinedAt: base}
			ok, err := s.InsertParticipant(ctx, p)
			So(err, ShouldBeNil)
			So(ok, ShouldBeTrue)
			ok, err = s.InsertParticipant(ctx, p)
			So(err, ShouldBeNil)
			So(ok, ShouldBeFalse)

			n, err := s.CountParticipants(ctx, "ev-1")
			So(err, ShouldBeNil)
			So(n, ShouldEqual, 1)

			deleted, err := s.DeleteParticipant(ctx, "ev-1", "u1")
			So(err, ShouldBeNil)
			So(deleted, ShouldBeTrue)
			deleted, err = s.DeleteParticipant(ctx, "ev-1", "u1")
			So(err, ShouldBeNil)
			So(deleted, ShouldBeFalse)

			got, err := s.GetParticipant(ctx, "ev-1", "u1")
			So(err, ShouldBeNil)
			So(got, ShouldBeNil)
		})

		Convey("Club rows support insert-or-ignore and upsert", func() {
			row := &entities.ClubParticipation{EventID: "ev-1", ClubID: "go", Accepted: false}
			ok, err := s.InsertClubParticipation(ctx, row)
			So(err, ShouldBeNil)
			So(ok, ShouldBeTrue)

			row.Accepted = true
			ok, err = s.InsertClubParticipation(ctx, row)
			So(err, ShouldBeNil)
			So(ok, ShouldBeFalse)
			got, err := s.GetClubParticipation(ctx, "ev-1", "go")
			So(err, ShouldBeNil)
			So(got.Accepted, ShouldBeFalse)

			So(s.UpsertClubParticipation(ctx, row), ShouldBeNil)
			got, err = s.GetClubParticipation(ctx, "ev-1", "go")
			So(err, ShouldBeNil)
			So(got.Accepted, ShouldBeTrue)
		})

		Convey("Events are visible to their owner and to accepted clubs only", func() {
			seedEvent(ctx, s, "ev-0", "go", base.Add(time.Hour))
			So(s.UpsertClubParticipation(ctx, &entities.ClubParticipation{EventID: "ev-1", ClubID: "go", Accepted: true}), ShouldBeNil)
			So(s.UpsertClubParticipation(ctx, &entities.ClubParticipation{EventID: "ev-1", ClubID: "rust", Accepted: false}), ShouldBeNil)

			goEvents, err := s.ListEventsVisibleToClub(ctx, "go")
			So(err, ShouldBeNil)
			So(len(goEvents), ShouldEqual, 2)
			So(goEvents[0].ID, ShouldEqual, "ev-0")
			So(goEvents[1].ID, ShouldEqual, "ev-1")

			rustEvents, err := s.ListEventsVisibleToClub(ctx, "rust")
			So(err, ShouldBeNil)
			So(rustEvents, ShouldBeEmpty)
		})

		Convey("Returned rows are copies", func() {
			pos := 1
			So(s.UpsertClubParticipation(ctx, &entities.ClubParticipation{EventID: "ev-1", ClubID: "go", Position: &pos}), ShouldBeNil)
			rows, err := s.ListClubParticipations(ctx, "ev-1")
			So(err, ShouldBeNil)
			*rows[0].Position = 9
			again, err := s.GetClubParticipation(ctx, "ev-1", "go")
			So(err, ShouldBeNil)
			So(*again.Position, ShouldEqual, 1)
		})

		Convey("A failed transaction leaves nothing behind", func() {
			boom := errors.New("boom")
			err := s.WithinTx(ctx, func(tx output.Store) error {
				if _, err := tx.UpdateEventStatus(ctx, "ev-1", entities.StatusUpcoming, entities.StatusPending); err != nil {
					return err
				}
				if _, err := tx.InsertParticipant(ctx, &entities.Participant{EventID: "ev-1", UserID: "u1"}); err != nil {
					return err
				}
				return boom
			})
			So(errors.Is(err, boom), ShouldBeTrue)

			e, err := s.GetEvent(ctx, "ev-1")
			So(err, ShouldBeNil)
			So(e.Status, ShouldEqual, entities.StatusUpcoming)
			n, err := s.CountParticipants(ctx, "ev-1")
			So(err, ShouldBeNil)
			So(n, ShouldEqual, 0)
		})

		Convey("A committed transaction is visible afterwards, including nested calls", func() {
			err := s.WithinTx(ctx, func(tx output.Store) error {
				return tx.WithinTx(ctx, func(inner output.Store) error {
					return inner.SaveCompletion(ctx, "ev-1", entities.Completion{
						ResultsDescription: "we won",
						ProofURIs:          []string{"s3://a"},
						TotalXPPool:        200,
						SubmittedAt:        base,
					})
				})
			})
			So(err, ShouldBeNil)

			e, err := s.GetEvent(ctx, "ev-1")
			So(err, ShouldBeNil)
			So(e.ResultsDescription, ShouldEqual, "we won")
			So(e.ProofURIs, ShouldResemble, []string{"s3://a"})
			So(e.TotalXPPool, ShouldEqual, 200)
		})

		Convey("A cancelled context is refused", func() {
			cctx, cancel := context.WithCancel(ctx)
			cancel()
			_, err := s.GetEvent(cctx, "ev-1")
			So(errors.Is(err, context.Canceled), ShouldBeTrue)
		})
	})
}
