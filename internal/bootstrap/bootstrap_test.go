package bootstrap_test

import (
	"context"
	"io"
	"testing"
	"time"

	"clubxp/internal/adapters/actorctx"
	"clubxp/internal/bootstrap"
	"clubxp/internal/config"
	"clubxp/internal/domain/entities"
	"clubxp/internal/ports/input"
	"clubxp/pkg/logger"

	. "github.com/smartystreets/goconvey/convey"
)

func TestNew(t *testing.T) {
	if err := logger.InitWriter(io.Discard); err != nil {
		t.Fatal(err)
	}

	Convey("With default config the app runs on the in-memory store", t, func() {
		app, err := bootstrap.New(context.Background(), config.New())
		So(err, ShouldBeNil)
		defer app.Close()

		ctx := actorctx.WithActor(context.Background(), "u-lead")
		ev, err := app.Events.CreateEvent(ctx, input.CreateEventInput{
			ClubID:       "robotics",
			Title:        "Soldering 101",
			ScheduledAt:  time.Now().Add(time.Hour),
			Capacity:     1,
			Type:         entities.EventTypeIntra,
			SizeCategory: entities.SizeSmall,
		})
		So(err, ShouldBeNil)
		So(ev.CreatedBy, ShouldEqual, "u-lead")
		So(ev.TotalXPPool, ShouldEqual, 150)

		res, err := app.Enrollment.Join(ctx, ev.ID, "u-1")
		So(err, ShouldBeNil)
		So(res, ShouldEqual, input.JoinJoined)
	})

	Convey("An unknown time zone fails fast", t, func() {
		cfg := config.New()
		cfg.Timezone = "Nowhere/Land"
		_, err := bootstrap.New(context.Background(), cfg)
		So(err, ShouldNotBeNil)
	})
}
