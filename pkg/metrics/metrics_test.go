package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	. "github.com/smartystreets/goconvey/convey"
)

func value(c prometheus.Metric) float64 {
	m := &dto.Metric{}
	if err := c.Write(m); err != nil {
		return -1
	}
	if m.GetCounter() != nil {
		return m.GetCounter().GetValue()
	}
	return m.GetGauge().GetValue()
}

func TestManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with a private registry", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test"),
				WithSubsystem("unit"),
				WithLatencyBuckets([]float64{1, 10}),
				WithPrometheusRegistry(registry),
			)

			Convey("Then its collectors are registered there", func() {
				So(manager, ShouldNotBeNil)
				manager.framesIngested.Inc()
				families, err := registry.Gather()
				So(err, ShouldBeNil)
				names := make([]string, 0, len(families))
				for _, f := range families {
					names = append(names, f.GetName())
				}
				So(names, ShouldContain, "test_unit_frames_ingested_total")
			})
		})
	})
}

func TestPackageHelpers(t *testing.T) {
	Convey("Given the global manager", t, func() {
		Convey("When recording gesture metrics", func() {
			before := value(globalManager.gesturesDetected.WithLabelValues("swipe", "up"))
			RecordGestureDetected("swipe", "up")
			RecordGestureDetected("swipe", "up")

			Convey("Then the labelled counter advances", func() {
				after := value(globalManager.gesturesDetected.WithLabelValues("swipe", "up"))
				So(after-before, ShouldEqual, 2)
			})
		})

		Convey("When setting gauges", func() {
			UpdateActiveContacts(3)
			UpdateQueueSize("frames", 7)
			UpdateQueueCapacity("frames", 64)

			Convey("Then they hold the last value", func() {
				So(value(globalManager.activeContacts), ShouldEqual, 3)
				So(value(globalManager.queueSize.WithLabelValues("frames")), ShouldEqual, 7)
				So(value(globalManager.queueCapacity.WithLabelValues("frames")), ShouldEqual, 64)
			})
		})

		Convey("When recording the remaining helpers", func() {
			So(func() {
				RecordFrameIngested()
				RecordFrameDropped("queue_full")
				RecordFrameDuplicate()
				RecordInputRejected("non_finite")
				RecordFrameLatency(0.3)
				RecordSequenceReset("disconnect")
				UpdateObserverCount(2)
				RecordGestureDispatched("submitted")
				RecordProfileMiss()
				RecordActionExecuted("keyboard_shortcut")
				RecordActionError("launch_app")
				RecordActionLatency(12)
				RecordProfileLoad()
				RecordHTTPRequest("/frames", "POST", "202")
				RecordHTTPRequestDuration("/frames", "POST", "202", 1.5)
				RecordHTTPError("/frames", "rate_limit", "medium")
			}, ShouldNotPanic)
		})

		Convey("Then the custom registry is exposed", func() {
			So(GetRegistry(), ShouldNotBeNil)
		})
	})
}
