package logger_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"clubxp/pkg/logger"

	. "github.com/smartystreets/goconvey/convey"
)

func TestLogger(t *testing.T) {
	Convey("Given a logger writing to a buffer", t, func() {
		var buf bytes.Buffer
		So(logger.InitWriter(&buf), ShouldBeNil)
		log := logger.Named("enrollment")
		ctx := context.Background()

		Convey("When logging at info with fields", func() {
			log.Info(ctx, "joined", logger.String("event_id", "ev-1"), logger.Int("count", 3))

			Convey("Then the line carries the message, the fields, the name and the caller", func() {
				out := buf.String()
				So(out, ShouldContainSubstring, "msg=joined")
				So(out, ShouldContainSubstring, "event_id=ev-1")
				So(out, ShouldContainSubstring, "count=3")
				So(out, ShouldContainSubstring, "logger=enrollment")
				So(out, ShouldContainSubstring, "logger_test.go")
			})
		})

		Convey("When the level is raised to warn", func() {
			So(logger.SetLevelString("WARN"), ShouldBeNil)
			log.Info(ctx, "hidden")
			log.Warn(ctx, "shown", logger.Error(errors.New("boom")))

			Convey("Then only warn lines are written", func() {
				So(buf.String(), ShouldNotContainSubstring, "hidden")
				So(buf.String(), ShouldContainSubstring, "error=boom")
			})
		})

		Convey("An unknown level is rejected", func() {
			So(logger.SetLevelString("loud"), ShouldNotBeNil)
		})

		Convey("A nil writer is rejected", func() {
			So(logger.InitWriter(nil), ShouldNotBeNil)
		})
	})
}
