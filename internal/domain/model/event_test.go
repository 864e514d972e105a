package model_test

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	model "github.com/okian/gestura/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

func TestKindAndDirection(t *testing.T) {
	convey.Convey("Given gesture kinds and directions", t, func() {
		convey.Convey("When parsing names", func() {
			k, err := model.ParseKind("Double-Tap")
			convey.So(err, convey.ShouldBeNil)
			convey.So(k, convey.ShouldEqual, model.KindDoubleTap)

			d, err := model.ParseDirection("ccw")
			convey.So(err, convey.ShouldBeNil)
			convey.So(d, convey.ShouldEqual, model.DirectionCounterClockwise)

			d, err = model.ParseDirection("")
			convey.So(err, convey.ShouldBeNil)
			convey.So(d, convey.ShouldEqual, model.DirectionNone)
		})

		convey.Convey("When parsing unknown names", func() {
			_, err := model.ParseKind("wave")
			convey.So(err, convey.ShouldNotBeNil)
			_, err = model.ParseDirection("sideways")
			convey.So(err, convey.ShouldNotBeNil)
		})

		convey.Convey("Then only scroll, pinch and rotate are continuous", func() {
			convey.So(model.KindScroll.Continuous(), convey.ShouldBeTrue)
			convey.So(model.KindPinch.Continuous(), convey.ShouldBeTrue)
			convey.So(model.KindRotate.Continuous(), convey.ShouldBeTrue)
			convey.So(model.KindTap.Continuous(), convey.ShouldBeFalse)
			convey.So(model.KindSwipe.Continuous(), convey.ShouldBeFalse)
		})
	})
}

func TestGestureEventSignature(t *testing.T) {
	convey.Convey("Given a swipe event", t, func() {
		ev := model.GestureEvent{
			Kind:        model.KindSwipe,
			FingerCount: 3,
			Direction:   model.DirectionUp,
			Velocity:    4.2,
			Scale:       1,
			Timestamp:   time.Unix(100, 0),
		}

		convey.Convey("Then the signature ignores the motion parameters", func() {
			sig := ev.Signature()
			convey.So(sig, convey.ShouldResemble, model.Signature{Kind: model.KindSwipe, Fingers: 3, Direction: model.DirectionUp})
			convey.So(sig.String(), convey.ShouldEqual, "swipe/3/up")
			convey.So(sig.Wildcard().Direction, convey.ShouldEqual, model.DirectionNone)
		})

		convey.Convey("Then JSON uses readable enum names", func() {
			b, err := json.Marshal(ev)
			convey.So(err, convey.ShouldBeNil)
			convey.So(string(b), convey.ShouldContainSubstring, `"kind":"swipe"`)
			convey.So(string(b), convey.ShouldContainSubstring, `"direction":"up"`)
		})
	})
}

func TestTouchPoint(t *testing.T) {
	convey.Convey("Given touch points", t, func() {
		convey.Convey("Then non-finite coordinates are detected", func() {
			convey.So(model.TouchPoint{X: 0.2, Y: 0.3}.Finite(), convey.ShouldBeTrue)
			convey.So(model.TouchPoint{X: math.NaN(), Y: 0.3}.Finite(), convey.ShouldBeFalse)
			convey.So(model.TouchPoint{X: 0.1, Y: math.Inf(-1)}.Finite(), convey.ShouldBeFalse)
		})

		convey.Convey("Then lifecycle round-trips through JSON text", func() {
			var p model.TouchPoint
			err := json.Unmarshal([]byte(`{"contact_id":2,"x":0.5,"y":0.25,"lifecycle":"move"}`), &p)
			convey.So(err, convey.ShouldBeNil)
			convey.So(p.Lifecycle, convey.ShouldEqual, model.Move)
			convey.So(p.ContactID, convey.ShouldEqual, 2)
		})

		convey.Convey("Then Stamp fills missing timestamps", func() {
			ts := time.Unix(50, 0)
			f := model.TouchFrame{Timestamp: ts, Points: []model.TouchPoint{{ContactID: 1}}}.Stamp()
			convey.So(f.Points[0].Timestamp, convey.ShouldEqual, ts)
		})

		convey.Convey("Then vector helpers compute geometry", func() {
			v := model.Vec{X: 3, Y: 4}
			convey.So(v.Len(), convey.ShouldEqual, 5)
			convey.So(v.Sub(model.Vec{X: 1, Y: 1}), convey.ShouldResemble, model.Vec{X: 2, Y: 3})
			convey.So(model.Vec{X: 0, Y: 1}.Angle(), convey.ShouldAlmostEqual, math.Pi/2)
		})
	})
}
