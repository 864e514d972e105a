package dispatch

import (
	"context"
	"errors"
	"testing"

	"github.com/okian/gestura/internal/domain/model"
	"github.com/okian/gestura/internal/domain/profile"
	"github.com/smartystreets/goconvey/convey"
)

type sliceSubmitter struct {
	jobs []Job
	full bool
}

func (s *sliceSubmitter) Submit(j Job) bool {
	if s.full {
		return false
	}
	s.jobs = append(s.jobs, j)
	return true
}

type execFunc func(context.Context, profile.Action, model.GestureEvent) error

func (f execFunc) Execute(ctx context.Context, a profile.Action, ev model.GestureEvent) error {
	return f(ctx, a, ev)
}

func swipeUp3() model.GestureEvent {
	return model.GestureEvent{ID: "g1", Kind: model.KindSwipe, FingerCount: 3, Direction: model.DirectionUp, Velocity: 4}
}

func TestDispatch(t *testing.T) {
	convey.Convey("Given a dispatcher over the default profile", t, func() {
		store := profile.NewStore(profile.Default())
		sub := &sliceSubmitter{}
		d := New(store, sub)

		convey.Convey("When a bound gesture arrives", func() {
			out := d.Dispatch(context.Background(), swipeUp3())

			convey.Convey("Then exactly one job is submitted", func() {
				convey.So(out, convey.ShouldEqual, OutcomeSubmitted)
				convey.So(sub.jobs, convey.ShouldHaveLength, 1)
				convey.So(sub.jobs[0].Binding.Action.Command, convey.ShouldEqual, "win+d")
				convey.So(sub.jobs[0].Event.Velocity, convey.ShouldEqual, 4)
			})
		})

		convey.Convey("When an unbound gesture arrives", func() {
			d.OnGesture(model.GestureEvent{Kind: model.KindRotate, FingerCount: 2, Direction: model.DirectionClockwise})

			convey.Convey("Then it is dropped quietly", func() {
				convey.So(sub.jobs, convey.ShouldBeEmpty)
			})
		})

		convey.Convey("When the action queue is full", func() {
			sub.full = true
			convey.So(d.Dispatch(context.Background(), swipeUp3()), convey.ShouldEqual, OutcomeDropped)
		})

		convey.Convey("When the profile is swapped", func() {
			empty, _ := profile.New("empty", nil)
			store.Swap(empty)

			convey.Convey("Then lookups use the new profile", func() {
				convey.So(d.Dispatch(context.Background(), swipeUp3()), convey.ShouldEqual, OutcomeMiss)
			})
		})
	})
}

func TestInvoke(t *testing.T) {
	convey.Convey("Given a job", t, func() {
		b, _ := profile.Default().Lookup(swipeUp3().Signature())
		job := Job{Event: swipeUp3(), Binding: b}

		convey.Convey("When the executor fails", func() {
			boom := errors.New("boom")
			err := Invoke(context.Background(), execFunc(func(context.Context, profile.Action, model.GestureEvent) error { return boom }), job)

			convey.Convey("Then an ActionError wraps the cause", func() {
				var ae *ActionError
				convey.So(errors.As(err, &ae), convey.ShouldBeTrue)
				convey.So(errors.Is(err, boom), convey.ShouldBeTrue)
				convey.So(ae.EventID, convey.ShouldEqual, "g1")
				convey.So(ae.Signature.String(), convey.ShouldEqual, "swipe/3/up")
			})
		})

		convey.Convey("When the executor panics", func() {
			err := Invoke(context.Background(), execFunc(func(context.Context, profile.Action, model.GestureEvent) error { panic("bad") }), job)

			convey.Convey("Then the panic becomes an error", func() {
				convey.So(errors.Is(err, ErrActionPanic), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the executor succeeds", func() {
			var got profile.Action
			err := Invoke(context.Background(), execFunc(func(_ context.Context, a profile.Action, _ model.GestureEvent) error {
				got = a
				return nil
			}), job)
			convey.So(err, convey.ShouldBeNil)
			convey.So(got.Kind, convey.ShouldEqual, profile.KeyboardShortcut)
		})
	})
}
