package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/okian/gestura/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

func execute(args ...string) (string, error) {
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestReplayCommand(t *testing.T) {
	convey.Convey("Given the replay command", t, func() {
		convey.Convey("When run on the demo script", func() {
			out, err := execute("--demo")

			convey.Convey("Then each gesture is one JSON line", func() {
				convey.So(err, convey.ShouldBeNil)
				lines := strings.Split(strings.TrimSpace(out), "\n")
				convey.So(len(lines), convey.ShouldBeGreaterThan, 0)
				var ev model.GestureEvent
				convey.So(json.Unmarshal([]byte(lines[0]), &ev), convey.ShouldBeNil)
				convey.So(ev.Kind, convey.ShouldEqual, model.KindTap)
			})
		})

		convey.Convey("When run on a script file", func() {
			path := filepath.Join(t.TempDir(), "swipe.yaml")
			script := `name: swipe
frames:
  - points: [{id: 1, x: 0.3, y: 0.8, lifecycle: down}, {id: 2, x: 0.5, y: 0.8, lifecycle: down}, {id: 3, x: 0.7, y: 0.8, lifecycle: down}]
  - at_ms: 40
    points: [{id: 1, x: 0.3, y: 0.5, lifecycle: move}, {id: 2, x: 0.5, y: 0.5, lifecycle: move}, {id: 3, x: 0.7, y: 0.5, lifecycle: move}]
  - at_ms: 80
    points: [{id: 1, x: 0.3, y: 0.2, lifecycle: up}, {id: 2, x: 0.5, y: 0.2, lifecycle: up}, {id: 3, x: 0.7, y: 0.2, lifecycle: up}]
`
			convey.So(os.WriteFile(path, []byte(script), 0o600), convey.ShouldBeNil)
			out, err := execute(path)

			convey.Convey("Then the three finger swipe up is printed", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(out, convey.ShouldContainSubstring, `"kind":"swipe"`)
				convey.So(out, convey.ShouldContainSubstring, `"direction":"up"`)
				convey.So(out, convey.ShouldContainSubstring, `"finger_count":3`)
			})
		})

		convey.Convey("When no script is given", func() {
			_, err := execute()
			convey.So(errors.Is(err, errNoScript), convey.ShouldBeTrue)
		})

		convey.Convey("When the script does not exist", func() {
			_, err := execute(filepath.Join(t.TempDir(), "nope.yaml"))
			convey.So(err, convey.ShouldNotBeNil)
		})
	})
}
