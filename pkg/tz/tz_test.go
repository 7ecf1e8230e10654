package tz

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestLoad(t *testing.T) {
	Convey("An empty name loads the default zone", t, func() {
		loc, err := Load("")
		So(err, ShouldBeNil)
		So(loc.String(), ShouldEqual, Default)
	})

	Convey("UTC loads", t, func() {
		loc, err := Load("UTC")
		So(err, ShouldBeNil)
		So(loc.String(), ShouldEqual, "UTC")
	})

	Convey("Unknown zones are errors", t, func() {
		_, err := Load("Mars/Olympus_Mons")
		So(err, ShouldNotBeNil)
	})
}
