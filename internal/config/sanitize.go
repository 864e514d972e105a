package config

import (
	"math"
	"strings"
)

// Sanitize replaces out-of-range values with their defaults and reports each
// replacement. It never fails.
func (c *Config) Sanitize() []*ConfigError {
	def := New()
	var errs []*ConfigError
	fix := func(key string, bad bool, value, fallback any, set func()) {
		if !bad {
			return
		}
		errs = append(errs, &ConfigError{Key: key, Value: value, Default: fallback, Err: ErrInvalidConfig})
		set()
	}
	positiveInt := func(key string, v *int, d int) {
		fix(key, *v <= 0, *v, d, func() { *v = d })
	}
	positiveFloat := func(key string, v *float64, d float64) {
		fix(key, !(*v > 0) || math.IsInf(*v, 0), *v, d, func() { *v = d })
	}

	fix("addr", strings.TrimSpace(c.Addr) == "", c.Addr, def.Addr, func() { c.Addr = def.Addr })
	positiveInt("frame_queue_size", &c.FrameQueueSize, def.FrameQueueSize)
	positiveInt("action_queue_size", &c.ActionQueueSize, def.ActionQueueSize)
	positiveInt("action_workers", &c.ActionWorkers, def.ActionWorkers)
	fix("sweep_interval_ms", c.SweepIntervalMS < 0, c.SweepIntervalMS, def.SweepIntervalMS, func() { c.SweepIntervalMS = def.SweepIntervalMS })
	positiveInt("simulate_interval_ms", &c.SimulateIntervalMS, def.SimulateIntervalMS)

	positiveInt("tap_duration_ms", &c.TapDurationMS, def.TapDurationMS)
	positiveFloat("tap_distance_threshold", &c.TapDistanceThreshold, def.TapDistanceThreshold)
	fix("double_tap_window_ms", c.DoubleTapWindowMS < 0, c.DoubleTapWindowMS, def.DoubleTapWindowMS, func() { c.DoubleTapWindowMS = def.DoubleTapWindowMS })
	positiveFloat("scroll_velocity_threshold", &c.ScrollVelocityThreshold, def.ScrollVelocityThreshold)
	positiveFloat("swipe_velocity_threshold", &c.SwipeVelocityThreshold, def.SwipeVelocityThreshold)
	if c.SwipeVelocityThreshold < c.ScrollVelocityThreshold {
		fix("swipe_velocity_threshold", true, c.SwipeVelocityThreshold, def.SwipeVelocityThreshold, func() {
			c.SwipeVelocityThreshold = def.SwipeVelocityThreshold
			if c.SwipeVelocityThreshold < c.ScrollVelocityThreshold {
				c.SwipeVelocityThreshold = c.ScrollVelocityThreshold
			}
		})
	}
	positiveFloat("pinch_scale_threshold", &c.PinchScaleThreshold, def.PinchScaleThreshold)
	positiveFloat("rotate_angle_threshold", &c.RotateAngleThreshold, def.RotateAngleThreshold)
	fix("rotate_angle_threshold", c.RotateAngleThreshold >= math.Pi, c.RotateAngleThreshold, def.RotateAngleThreshold, func() { c.RotateAngleThreshold = def.RotateAngleThreshold })
	positiveFloat("sensitivity_multiplier", &c.SensitivityMultiplier, def.SensitivityMultiplier)

	positiveInt("history_capacity", &c.HistoryCapacity, def.HistoryCapacity)
	fix("contact_stale_timeout_ms", c.ContactStaleTimeoutMS < 0, c.ContactStaleTimeoutMS, def.ContactStaleTimeoutMS, func() { c.ContactStaleTimeoutMS = def.ContactStaleTimeoutMS })
	fix("implicit_lift_frames", c.ImplicitLiftFrames < 0, c.ImplicitLiftFrames, def.ImplicitLiftFrames, func() { c.ImplicitLiftFrames = def.ImplicitLiftFrames })
	fix("active_profile_name", strings.TrimSpace(c.ActiveProfileName) == "", c.ActiveProfileName, def.ActiveProfileName, func() { c.ActiveProfileName = def.ActiveProfileName })

	return errs
}
