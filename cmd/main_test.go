package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/okian/gestura/internal/config"
	"github.com/okian/gestura/internal/domain/model"
	"github.com/okian/gestura/internal/domain/profile"
	"github.com/okian/gestura/pkg/logger"
	"github.com/smartystreets/goconvey/convey"
)

func TestMainApplicationComponents(t *testing.T) {
	convey.Convey("Given a loaded configuration", t, func() {
		ctx := context.Background()
		log := logger.Nop()
		cfg := config.New()
		cfg.ActionWorkers = 1
		cfg.FrameQueueSize = 16

		convey.Convey("When the service is built", func() {
			svc := newService(ctx, cfg, log)

			convey.Convey("Then it uses the configured queues and profile", func() {
				convey.So(svc.Start(ctx), convey.ShouldBeNil)
				defer func() { _ = svc.Stop(ctx) }()
				st := svc.GetStats()
				convey.So(st.FrameQueue.Capacity, convey.ShouldEqual, 16)
				convey.So(st.ActionWorkers, convey.ShouldEqual, 1)
				convey.So(st.Profile, convey.ShouldEqual, "default")
			})

			convey.Convey("Then the mux serves the API and docs", func() {
				mux := newMux(ctx, svc, log)
				for _, path := range []string{"/healthz", "/stats", "/profile", "/openapi.yaml"} {
					w := httptest.NewRecorder()
					mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, http.NoBody))
					convey.So(w.Code, convey.ShouldEqual, http.StatusOK)
				}
			})

			convey.Convey("Then the metrics update does not panic", func() {
				convey.So(func() { updateServiceMetrics(svc) }, convey.ShouldNotPanic)
				convey.So(svc.Start(ctx), convey.ShouldBeNil)
				convey.So(func() { updateServiceMetrics(svc) }, convey.ShouldNotPanic)
				_ = svc.Stop(ctx)
			})
		})

		convey.Convey("When the configured profile has bad bindings", func() {
			cfg.ActiveProfileName = "custom"
			cfg.Profiles = map[string][]profile.BindingSpec{
				"custom": {
					{Gesture: "tap", Fingers: 1, Action: "mouse_click", Command: "middle"},
					{Gesture: "tap", Fingers: 0, Action: "mouse_click", Command: "left"},
				},
			}
			svc := newService(ctx, cfg, log)

			convey.Convey("Then the valid bindings are active", func() {
				p := svc.ActiveProfile()
				convey.So(p.Name(), convey.ShouldEqual, "custom")
				convey.So(p.Len(), convey.ShouldEqual, 1)
			})
		})

		convey.Convey("When the metrics updater runs until cancelled", func() {
			svc := newService(ctx, cfg, log)
			runCtx, cancel := context.WithTimeout(ctx, 50*time.Millisecond)
			defer cancel()

			convey.So(func() { startServiceMetricsUpdater(runCtx, svc) }, convey.ShouldNotPanic)
		})
	})
}

func TestSimulatorWiring(t *testing.T) {
	convey.Convey("Given simulator settings", t, func() {
		log := logger.Nop()
		cfg := config.New()
		cfg.Simulate = true

		convey.Convey("When no script is configured", func() {
			sim, err := newSimulator(cfg, log)
			convey.So(err, convey.ShouldBeNil)
			convey.So(sim, convey.ShouldNotBeNil)
		})

		convey.Convey("When the script file is missing", func() {
			cfg.SimulateScript = filepath.Join(t.TempDir(), "missing.yaml")
			_, err := newSimulator(cfg, log)
			convey.So(err, convey.ShouldNotBeNil)
		})

		convey.Convey("When a script drives the service", func() {
			path := filepath.Join(t.TempDir(), "tap.yaml")
			script := "name: tap\nframes:\n  - points: [{id: 1, x: 0.5, y: 0.5, lifecycle: down}]\n  - at_ms: 50\n    points: [{id: 1, x: 0.5, y: 0.5, lifecycle: up}]\n"
			convey.So(os.WriteFile(path, []byte(script), 0o600), convey.ShouldBeNil)
			cfg.SimulateScript = path
			cfg.SimulateIntervalMS = 1

			ctx := context.Background()
			svc := newService(ctx, cfg, log)
			convey.So(svc.Start(ctx), convey.ShouldBeNil)
			defer func() { _ = svc.Stop(ctx) }()

			taps := make(chan model.GestureEvent, 4)
			sub := svc.Subscribe(func(ev model.GestureEvent) {
				if ev.Kind == model.KindTap {
					taps <- ev
				}
			})
			defer sub.Unsubscribe()

			sim, err := newSimulator(cfg, log)
			convey.So(err, convey.ShouldBeNil)
			runCtx, cancel := context.WithCancel(ctx)
			go func() { _ = sim.Run(runCtx, svc) }()
			defer cancel()

			convey.Convey("Then the tap is recognized", func() {
				select {
				case ev := <-taps:
					convey.So(ev.FingerCount, convey.ShouldEqual, 1)
				case <-time.After(2 * time.Second):
					convey.So("timeout", convey.ShouldBeEmpty)
				}
			})
		})
	})
}
