package discord

import (
	"strings"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func TestNotificationEmbed(t *testing.T) {
	at := time.Date(2026, time.June, 12, 16, 30, 0, 0, time.UTC)
	paris := time.FixedZone("CEST", 2*3600)

	Convey("A notification embed", t, func() {
		e := BuildNotificationEmbed("ev-1", "Club chess accepted.", at, paris)

		Convey("carries the message and event id", func() {
			So(e.Description, ShouldEqual, "Club chess accepted.")
			So(e.Footer.Text, ShouldEqual, "Event ev-1 • 12/06/2026 18:30")
			So(e.Timestamp, ShouldEqual, "2026-06-12T16:30:00Z")
			So(e.Color, ShouldEqual, embedColor)
		})

		Convey("truncates overlong messages", func() {
			long := BuildNotificationEmbed("ev-1", strings.Repeat("é", maxDescription+10), at, nil)
			So([]rune(long.Description), ShouldHaveLength, maxDescription)
			So(strings.HasSuffix(long.Description, "…"), ShouldBeTrue)
		})
	})

	Convey("Zero times render empty", t, func() {
		So(FormatEventDateTime(time.Time{}, paris), ShouldEqual, "")
		So(Timestamp(time.Time{}), ShouldEqual, "")
		e := BuildNotificationEmbed("ev-2", "x", time.Time{}, nil)
		So(e.Footer.Text, ShouldEqual, "Event ev-2")
	})
}
