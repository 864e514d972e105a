package device

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/okian/gestura/internal/domain/classifier"
	"github.com/okian/gestura/internal/domain/model"
	"github.com/okian/gestura/internal/domain/recognizer"
	"github.com/smartystreets/goconvey/convey"
)

type fakeSink struct {
	mu           sync.Mutex
	frames       []model.TouchFrame
	disconnected int
}

func (f *fakeSink) IngestFrame(_ context.Context, fr model.TouchFrame) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.frames = append(f.frames, fr)
	return nil
}

func (f *fakeSink) Disconnect(context.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.disconnected++
}

const twoFrames = `
name: short
frames:
  - points: [{id: 7, x: 0.1, y: 0.2, lifecycle: down}]
  - points: [{id: 7, x: 0.1, y: 0.2, lifecycle: up}]
`

func TestScript(t *testing.T) {
	convey.Convey("Given a script without offsets", t, func() {
		s, err := ParseScript([]byte(twoFrames))
		convey.So(err, convey.ShouldBeNil)

		convey.Convey("Then frames are spaced by the interval", func() {
			offs := s.Offsets(10 * time.Millisecond)
			convey.So(offs, convey.ShouldResemble, []time.Duration{0, 10 * time.Millisecond})
			convey.So(s.Duration(10*time.Millisecond), convey.ShouldEqual, 10*time.Millisecond)
		})

		convey.Convey("Then points decode with their lifecycle", func() {
			frames := s.Resolve(time.Unix(5, 0), 10*time.Millisecond)
			convey.So(frames, convey.ShouldHaveLength, 2)
			convey.So(frames[0].Points[0].ContactID, convey.ShouldEqual, 7)
			convey.So(frames[1].Points[0].Lifecycle, convey.ShouldEqual, model.Up)
			convey.So(frames[1].Timestamp, convey.ShouldEqual, time.Unix(5, 0).Add(10*time.Millisecond))
		})
	})

	convey.Convey("Given bad scripts", t, func() {
		_, err := ParseScript([]byte("name: empty\nframes: []\n"))
		convey.So(errors.Is(err, ErrEmptyScript), convey.ShouldBeTrue)

		_, err = ParseScript([]byte("frames:\n  - points: [{id: 1, lifecycle: hover}]\n"))
		convey.So(err, convey.ShouldNotBeNil)

		_, err = LoadScript(filepath.Join(t.TempDir(), "missing.yaml"))
		convey.So(err, convey.ShouldNotBeNil)
	})

	convey.Convey("Given a script file", t, func() {
		path := filepath.Join(t.TempDir(), "s.yaml")
		convey.So(os.WriteFile(path, []byte(twoFrames), 0o600), convey.ShouldBeNil)
		s, err := LoadScript(path)
		convey.So(err, convey.ShouldBeNil)
		convey.So(s.Name, convey.ShouldEqual, "short")
	})
}

func TestDemoScriptGestures(t *testing.T) {
	convey.Convey("Given the demo script replayed through a recognizer", t, func() {
		rec := recognizer.New(classifier.DefaultConfig())
		var kinds []model.Kind
		for _, f := range DemoScript().Resolve(time.Unix(1000, 0), defaultInterval) {
			for _, ev := range rec.IngestFrame(context.Background(), f) {
				kinds = append(kinds, ev.Kind)
			}
		}

		convey.Convey("Then tap, scroll, swipe and pinch are recognized", func() {
			convey.So(kinds, convey.ShouldContain, model.KindTap)
			convey.So(kinds, convey.ShouldContain, model.KindScroll)
			convey.So(kinds, convey.ShouldContain, model.KindSwipe)
			convey.So(kinds, convey.ShouldContain, model.KindPinch)
		})
	})
}

func TestSimulator(t *testing.T) {
	convey.Convey("Given a simulator over a short script", t, func() {
		s, _ := ParseScript([]byte(twoFrames))
		sink := &fakeSink{}

		convey.Convey("When it runs to the end", func() {
			sim := NewSimulator(s, WithInterval(5*time.Millisecond))
			err := sim.Run(context.Background(), sink)

			convey.Convey("Then every frame is delivered and the sink disconnected", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(sink.frames, convey.ShouldHaveLength, 2)
				convey.So(sink.disconnected, convey.ShouldEqual, 1)
			})
		})

		convey.Convey("When looping until cancelled", func() {
			sim := NewSimulator(s, WithInterval(5*time.Millisecond), WithLoop(5*time.Millisecond))
			ctx, cancel := context.WithTimeout(context.Background(), 60*time.Millisecond)
			defer cancel()
			err := sim.Run(ctx, sink)

			convey.Convey("Then it stops with the context error", func() {
				convey.So(errors.Is(err, context.DeadlineExceeded), convey.ShouldBeTrue)
				sink.mu.Lock()
				defer sink.mu.Unlock()
				convey.So(len(sink.frames), convey.ShouldBeGreaterThan, 2)
				convey.So(sink.disconnected, convey.ShouldEqual, 1)
			})
		})
	})
}
