package application_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"clubxp/internal/application"
	"clubxp/internal/domain"
	"clubxp/internal/domain/entities"
	"clubxp/internal/infrastructure/memory"
	"clubxp/internal/ports/input"

	. "github.com/smartystreets/goconvey/convey"
)

func interEvent(competing ...string) input.CreateEventInput {
	return input.CreateEventInput{
		ClubID:           "A",
		Title:            "Quiz night",
		ScheduledAt:      base.Add(time.Hour),
		Type:             entities.EventTypeInter,
		CompetingClubIDs: competing,
		CreatedBy:        "u-lead",
	}
}

func clubStates(rows []entities.ClubParticipation) map[string]bool {
	out := make(map[string]bool, len(rows))
	for _, r := range rows {
		out[r.ClubID] = r.Accepted
	}
	return out
}

func TestInterClub(t *testing.T) {
	ctx := context.Background()

	Convey("Given an inter event created by club A inviting B and C", t, func() {
		store := memory.New()
		notes := &notifier{}
		opts := []application.Option{application.WithNotifier(notes)}
		events := application.NewEventService(store, opts...)
		clubs := application.NewInterClubService(store, opts...)

		ev, err := events.CreateEvent(ctx, interEvent(" B", "C", "", "A", "B"))
		So(err, ShouldBeNil)

		Convey("The owner is accepted and the others are invited", func() {
			rows, err := clubs.ListParticipations(ctx, ev.ID)
			So(err, ShouldBeNil)
			So(clubStates(rows), ShouldResemble, map[string]bool{"A": true, "B": false, "C": false})
			So(ev.TotalXPPool, ShouldEqual, 300)
		})

		Convey("Accepting is idempotent and notifies once", func() {
			So(clubs.Accept(ctx, ev.ID, "B"), ShouldBeNil)
			So(clubs.Accept(ctx, ev.ID, "B"), ShouldBeNil)

			rows, err := clubs.ListParticipations(ctx, ev.ID)
			So(err, ShouldBeNil)
			So(clubStates(rows)["B"], ShouldBeTrue)
			So(notes.Messages(), ShouldResemble, []string{ev.ID + "|notify.invite.accepted"})
		})

		Convey("An uninvited club cannot accept", func() {
			err := clubs.Accept(ctx, ev.ID, "D")
			So(errors.Is(err, domain.ErrParticipationNotFound), ShouldBeTrue)
		})

		Convey("Declining removes the row", func() {
			So(clubs.Decline(ctx, ev.ID, "C"), ShouldBeNil)
			rows, err := clubs.ListParticipations(ctx, ev.ID)
			So(err, ShouldBeNil)
			So(clubStates(rows), ShouldResemble, map[string]bool{"A": true, "B": false})

			Convey("Declining again is a no-op", func() {
				So(clubs.Decline(ctx, ev.ID, "C"), ShouldBeNil)
				So(notes.Messages(), ShouldHaveLength, 1)
			})

			Convey("Re-inviting brings the club back as invited", func() {
				So(clubs.CreateInvitations(ctx, ev.ID, "A", []string{"C"}), ShouldBeNil)
				rows, err := clubs.ListParticipations(ctx, ev.ID)
				So(err, ShouldBeNil)
				So(clubStates(rows), ShouldResemble, map[string]bool{"A": true, "B": false, "C": false})
			})
		})

		Convey("An accepted club can still decline", func() {
			So(clubs.Accept(ctx, ev.ID, "B"), ShouldBeNil)
			So(clubs.Decline(ctx, ev.ID, "B"), ShouldBeNil)
			rows, err := clubs.ListParticipations(ctx, ev.ID)
			So(err, ShouldBeNil)
			So(clubStates(rows), ShouldNotContainKey, "B")
		})

		Convey("The owner cannot decline", func() {
			err := clubs.Decline(ctx, ev.ID, "A")
			So(errors.Is(err, domain.ErrValidation), ShouldBeTrue)
		})

		Convey("Only the owner can invite", func() {
			err := clubs.CreateInvitations(ctx, ev.ID, "B", []string{"D"})
			So(errors.Is(err, domain.ErrValidation), ShouldBeTrue)
		})

		Convey("Re-inviting does not reset an acceptance", func() {
			So(clubs.Accept(ctx, ev.ID, "B"), ShouldBeNil)
			So(clubs.CreateInvitations(ctx, ev.ID, "A", []string{"B", "D"}), ShouldBeNil)
			rows, err := clubs.ListParticipations(ctx, ev.ID)
			So(err, ShouldBeNil)
			So(clubStates(rows), ShouldResemble, map[string]bool{"A": true, "B": true, "C": false, "D": false})
		})

		Convey("A club sees the event only once it has accepted", func() {
			list, err := events.ListEventsForClub(ctx, "B")
			So(err, ShouldBeNil)
			So(list, ShouldBeEmpty)

			So(clubs.Accept(ctx, ev.ID, "B"), ShouldBeNil)
			list, err = events.ListEventsForClub(ctx, "B")
			So(err, ShouldBeNil)
			So(list, ShouldHaveLength, 1)
			So(list[0].ID, ShouldEqual, ev.ID)
		})
	})

	Convey("Invitations do not exist on intra events", t, func() {
		store := memory.New()
		events := application.NewEventService(store)
		clubs := application.NewInterClubService(store)

		ev, err := events.CreateEvent(ctx, intraEvent(10))
		So(err, ShouldBeNil)

		err = clubs.Accept(ctx, ev.ID, "robotics")
		So(errors.Is(err, domain.ErrWrongEventType), ShouldBeTrue)
		err = clubs.CreateInvitations(ctx, ev.ID, "robotics", []string{"B"})
		So(errors.Is(err, domain.ErrWrongEventType), ShouldBeTrue)
	})
}
