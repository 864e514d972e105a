package executor

import (
	"context"
	"errors"
	"testing"

	"github.com/okian/gestura/internal/domain/model"
	"github.com/okian/gestura/internal/domain/profile"
	"github.com/smartystreets/goconvey/convey"
)

type recorder struct {
	calls []string
	mods  []string
	key   string
	dx    float64
	dy    float64
	count int
}

func (r *recorder) KeyChord(_ context.Context, mods []string, key string) error {
	r.calls = append(r.calls, "key")
	r.mods, r.key = mods, key
	return nil
}

func (r *recorder) Click(_ context.Context, button string, count int) error {
	r.calls = append(r.calls, "click:"+button)
	r.count = count
	return nil
}

func (r *recorder) Scroll(_ context.Context, dx, dy float64) error {
	r.calls = append(r.calls, "scroll")
	r.dx, r.dy = dx, dy
	return nil
}

func (r *recorder) Media(_ context.Context, cmd string) error {
	r.calls = append(r.calls, "media:"+cmd)
	return nil
}

func (r *recorder) System(_ context.Context, cmd string) error {
	r.calls = append(r.calls, "system:"+cmd)
	return nil
}

func TestExecutor(t *testing.T) {
	convey.Convey("Given an executor with a recording injector", t, func() {
		rec := &recorder{}
		var launched []string
		e := New(WithInjector(rec), WithLauncher(func(_ context.Context, path string, args ...string) error {
			if path == "missing" {
				return errors.New("not found")
			}
			launched = append([]string{path}, args...)
			return nil
		}))
		ctx := context.Background()
		ev := model.GestureEvent{Kind: model.KindScroll, FingerCount: 2, Direction: model.DirectionDown, Distance: 0.1}

		convey.Convey("When running a shortcut", func() {
			err := e.Execute(ctx, profile.Action{Kind: profile.KeyboardShortcut, Command: "Ctrl+Shift+T"}, ev)
			convey.So(err, convey.ShouldBeNil)
			convey.So(rec.mods, convey.ShouldResemble, []string{"ctrl", "shift"})
			convey.So(rec.key, convey.ShouldEqual, "t")
		})

		convey.Convey("When running a malformed shortcut", func() {
			err := e.Execute(ctx, profile.Action{Kind: profile.KeyboardShortcut, Command: "t+ctrl"}, ev)
			convey.So(errors.Is(err, ErrBadChord), convey.ShouldBeTrue)
		})

		convey.Convey("When clicking", func() {
			convey.So(e.Execute(ctx, profile.Action{Kind: profile.MouseClick, Command: "double"}, ev), convey.ShouldBeNil)
			convey.So(rec.calls, convey.ShouldResemble, []string{"click:left"})
			convey.So(rec.count, convey.ShouldEqual, 2)

			err := e.Execute(ctx, profile.Action{Kind: profile.MouseClick, Command: "fourth"}, ev)
			convey.So(errors.Is(err, ErrUnknownInput), convey.ShouldBeTrue)
		})

		convey.Convey("When scrolling", func() {
			convey.So(e.Execute(ctx, profile.Action{Kind: profile.MouseScroll, Command: "wheel"}, ev), convey.ShouldBeNil)
			convey.So(rec.dy, convey.ShouldAlmostEqual, -4.0)
			convey.So(rec.dx, convey.ShouldEqual, 0)

			convey.So(e.Execute(ctx, profile.Action{Kind: profile.MouseScroll, Command: "wheel", Params: map[string]string{"lines": "3"}}, ev), convey.ShouldBeNil)
			convey.So(rec.dy, convey.ShouldEqual, -3)
		})

		convey.Convey("When launching an application", func() {
			err := e.Execute(ctx, profile.Action{Kind: profile.LaunchApp, Command: "/usr/bin/term", Params: map[string]string{"args": "-e top"}}, ev)
			convey.So(err, convey.ShouldBeNil)
			convey.So(launched, convey.ShouldResemble, []string{"/usr/bin/term", "-e", "top"})

			err = e.Execute(ctx, profile.Action{Kind: profile.LaunchApp, Command: "missing"}, ev)
			convey.So(errors.Is(err, ErrLaunchFailed), convey.ShouldBeTrue)
		})

		convey.Convey("When sending media and system commands", func() {
			convey.So(e.Execute(ctx, profile.Action{Kind: profile.MediaControl, Command: "play_pause"}, ev), convey.ShouldBeNil)
			convey.So(e.Execute(ctx, profile.Action{Kind: profile.SystemCommand, Command: "lock"}, ev), convey.ShouldBeNil)
			convey.So(rec.calls, convey.ShouldResemble, []string{"media:play_pause", "system:lock"})

			err := e.Execute(ctx, profile.Action{Kind: profile.SystemCommand, Command: "rm -rf"}, ev)
			convey.So(errors.Is(err, ErrUnknownInput), convey.ShouldBeTrue)
		})

		convey.Convey("When the kind is outside the table", func() {
			err := e.Execute(ctx, profile.Action{Kind: profile.ActionKind(200)}, ev)
			convey.So(errors.Is(err, ErrUnsupported), convey.ShouldBeTrue)
			err = e.Execute(ctx, profile.Action{Kind: profile.ActionNone}, ev)
			convey.So(errors.Is(err, ErrUnsupported), convey.ShouldBeTrue)
		})
	})
}

func TestParseChord(t *testing.T) {
	cases := []struct {
		in      string
		mods    int
		key     string
		wantErr bool
	}{
		{"win+d", 1, "d", false},
		{"f5", 0, "f5", false},
		{"ctrl+alt+delete", 2, "delete", false},
		{"ctrl++", 0, "", true},
		{"", 0, "", true},
	}
	for _, c := range cases {
		mods, key, err := ParseChord(c.in)
		if (err != nil) != c.wantErr {
			t.Errorf("%q: unexpected error %v", c.in, err)
			continue
		}
		if c.wantErr {
			continue
		}
		if len(mods) != c.mods || key != c.key {
			t.Errorf("%q: got %v %q", c.in, mods, key)
		}
	}
}
