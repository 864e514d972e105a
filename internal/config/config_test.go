package config_test

import (
	"testing"

	"github.com/okian/gestura/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
			convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
			convey.So(cfg.ActionQueueSize, convey.ShouldEqual, 64)
			convey.So(cfg.SweepIntervalMS, convey.ShouldEqual, 100)
			convey.So(cfg.Simulate, convey.ShouldBeFalse)
			convey.So(cfg.DoubleTapWindowMS, convey.ShouldEqual, 400)
			convey.So(cfg.ScrollVelocityThreshold, convey.ShouldEqual, 1.5)
			convey.So(cfg.RotateAngleThreshold, convey.ShouldEqual, 0.26)
			convey.So(cfg.ContactStaleTimeoutMS, convey.ShouldEqual, 250)
			convey.So(cfg.ImplicitLiftFrames, convey.ShouldEqual, 2)
			convey.So(cfg.Profiles, convey.ShouldBeNil)
		})
	})
}
