package gate_test

import (
	"errors"
	"testing"
	"time"

	"clubxp/internal/domain"
	"clubxp/internal/domain/entities"
	"clubxp/internal/domain/gate"

	. "github.com/smartystreets/goconvey/convey"
)

func TestCheck(t *testing.T) {
	scheduled := time.Date(2026, time.March, 14, 18, 0, 0, 0, time.UTC)
	after := scheduled.Add(time.Minute)

	Convey("Given an upcoming intra event", t, func() {
		event := &entities.Event{
			ID:          "ev-1",
			Type:        entities.EventTypeIntra,
			Status:      entities.StatusUpcoming,
			ScheduledAt: scheduled,
			CreatedBy:   "alice",
		}

		Convey("The creator can complete it once the schedule has passed", func() {
			So(gate.Check(event, "alice", nil, after), ShouldBeNil)
			So(gate.CanComplete(event, "alice", nil, after), ShouldBeTrue)
		})

		Convey("Anyone else is not authorized", func() {
			err := gate.Check(event, "bob", nil, after)
			So(errors.Is(err, domain.ErrNotAuthorized), ShouldBeTrue)
		})

		Convey("An empty actor is not authorized", func() {
			So(errors.Is(gate.Check(event, "", nil, after), domain.ErrNotAuthorized), ShouldBeTrue)
		})

		Convey("It is not ready at or before the scheduled time", func() {
			So(errors.Is(gate.Check(event, "alice", nil, scheduled), domain.ErrNotReady), ShouldBeTrue)
			So(gate.CanComplete(event, "alice", nil, scheduled.Add(-time.Hour)), ShouldBeFalse)
		})

		Convey("It cannot be completed twice", func() {
			event.Status = entities.StatusPending
			So(errors.Is(gate.Check(event, "alice", nil, after), domain.ErrAlreadySubmitted), ShouldBeTrue)
		})
	})

	Convey("Given an upcoming inter event with one outstanding invitation", t, func() {
		event := &entities.Event{
			ID:          "ev-2",
			ClubID:      "owner",
			Type:        entities.EventTypeInter,
			Status:      entities.StatusUpcoming,
			ScheduledAt: scheduled,
			CreatedBy:   "alice",
		}
		rows := []entities.ClubParticipation{
			{EventID: "ev-2", ClubID: "owner", Accepted: true},
			{EventID: "ev-2", ClubID: "rival", Accepted: true},
			{EventID: "ev-2", ClubID: "late", Accepted: false},
		}

		Convey("Then it is not ready", func() {
			err := gate.Check(event, "alice", rows, after)
			So(errors.Is(err, domain.ErrNotReady), ShouldBeTrue)
		})

		Convey("When the last invitee accepts", func() {
			rows[2].Accepted = true

			Convey("Then it becomes completable with nothing else changed", func() {
				So(gate.CanComplete(event, "alice", rows, after), ShouldBeTrue)
			})
		})

		Convey("When the last invitee declines and its row disappears", func() {
			rows = rows[:2]

			Convey("Then it becomes completable too", func() {
				So(gate.CanComplete(event, "alice", rows, after), ShouldBeTrue)
			})
		})

		Convey("Rows of other events are ignored", func() {
			rows[2].EventID = "ev-other"
			So(gate.CanComplete(event, "alice", rows, after), ShouldBeTrue)
		})
	})

	Convey("Given no event", t, func() {
		So(errors.Is(gate.Check(nil, "alice", nil, after), domain.ErrEventNotFound), ShouldBeTrue)
	})
}
