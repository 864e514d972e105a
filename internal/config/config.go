// Package config defines the daemon configuration and how it is loaded.
//
// Conventions:
// - New returns a Config holding every documented default.
// - Load layers defaults, an optional YAML file and GESTURA_ env vars.
// - Sanitize never fails; it replaces bad values and reports them.
package config

import (
	"time"

	"github.com/okian/gestura/internal/domain/classifier"
	"github.com/okian/gestura/internal/domain/profile"
	"github.com/okian/gestura/internal/domain/recognizer"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// FrameQueueSize bounds the queue between device backends and the recognizer.
	FrameQueueSize int `koanf:"frame_queue_size"`

	// ActionQueueSize bounds the queue of resolved actions.
	ActionQueueSize int `koanf:"action_queue_size"`

	// ActionWorkers sets how many actions may run at once.
	ActionWorkers int `koanf:"action_workers"`

	// EnableGestures switches classification on or off.
	EnableGestures bool `koanf:"enable_gestures"`

	// SweepIntervalMS is how often idle contacts are checked for staleness.
	SweepIntervalMS int `koanf:"sweep_interval_ms"`

	// Simulate starts the simulated device backend.
	Simulate           bool   `koanf:"simulate"`
	SimulateScript     string `koanf:"simulate_script"`
	SimulateIntervalMS int    `koanf:"simulate_interval_ms"`

	// Recognition thresholds.
	TapDurationMS           int     `koanf:"tap_duration_ms"`
	TapDistanceThreshold    float64 `koanf:"tap_distance_threshold"`
	DoubleTapWindowMS       int     `koanf:"double_tap_window_ms"`
	ScrollVelocityThreshold float64 `koanf:"scroll_velocity_threshold"`
	SwipeVelocityThreshold  float64 `koanf:"swipe_velocity_threshold"`
	PinchScaleThreshold     float64 `koanf:"pinch_scale_threshold"`
	RotateAngleThreshold    float64 `koanf:"rotate_angle_threshold"`
	SensitivityMultiplier   float64 `koanf:"sensitivity_multiplier"`

	// Contact tracking.
	HistoryCapacity       int `koanf:"history_capacity"`
	ContactStaleTimeoutMS int `koanf:"contact_stale_timeout_ms"`
	ImplicitLiftFrames    int `koanf:"implicit_lift_frames"`

	// ActiveProfileName selects one of Profiles, or the built-in "default".
	ActiveProfileName string `koanf:"active_profile_name"`

	// Profiles maps a profile name to its bindings.
	Profiles map[string][]profile.BindingSpec `koanf:"profiles"`
}

// New creates a Config holding the defaults.
func New() *Config {
	return &Config{
		LogLevel:                "info",
		Addr:                    ":9080",
		FrameQueueSize:          1024,
		ActionQueueSize:         64,
		ActionWorkers:           2,
		EnableGestures:          true,
		SweepIntervalMS:         100,
		SimulateIntervalMS:      16,
		TapDurationMS:           300,
		TapDistanceThreshold:    0.05,
		DoubleTapWindowMS:       400,
		ScrollVelocityThreshold: 1.5,
		SwipeVelocityThreshold:  3.0,
		PinchScaleThreshold:     0.10,
		RotateAngleThreshold:    0.26,
		SensitivityMultiplier:   1.0,
		HistoryCapacity:         20,
		ContactStaleTimeoutMS:   250,
		ImplicitLiftFrames:      2,
		ActiveProfileName:       profile.DefaultName,
	}
}

// Classifier returns the classifier thresholds.
func (c *Config) Classifier() classifier.Config {
	return classifier.Config{
		TapDuration:     ms(c.TapDurationMS),
		TapDistance:     c.TapDistanceThreshold,
		DoubleTapWindow: ms(c.DoubleTapWindowMS),
		ScrollVelocity:  c.ScrollVelocityThreshold,
		SwipeVelocity:   c.SwipeVelocityThreshold,
		PinchScale:      c.PinchScaleThreshold,
		RotateAngle:     c.RotateAngleThreshold,
		Sensitivity:     c.SensitivityMultiplier,
	}
}

// RecognizerOptions returns the contact tracking and enable settings.
func (c *Config) RecognizerOptions() []recognizer.Option {
	return []recognizer.Option{
		recognizer.WithEnabled(c.EnableGestures),
		recognizer.WithHistoryCapacity(c.HistoryCapacity),
		recognizer.WithStaleTimeout(c.StaleTimeout()),
		recognizer.WithImplicitLiftFrames(c.ImplicitLiftFrames),
	}
}

// StaleTimeout returns the contact stale timeout.
func (c *Config) StaleTimeout() time.Duration { return ms(c.ContactStaleTimeoutMS) }

// SweepInterval returns the idle sweep interval.
func (c *Config) SweepInterval() time.Duration { return ms(c.SweepIntervalMS) }

// SimulateInterval returns the simulator frame spacing.
func (c *Config) SimulateInterval() time.Duration { return ms(c.SimulateIntervalMS) }

// ActiveProfile builds the selected profile. The built-in profile is used
// when the name is "default" and not overridden, or when the name is
// unknown; the latter is reported as a ConfigError.
func (c *Config) ActiveProfile() (*profile.Profile, []error) {
	specs, ok := c.Profiles[c.ActiveProfileName]
	if !ok {
		if c.ActiveProfileName == profile.DefaultName {
			return profile.Default(), nil
		}
		return profile.Default(), []error{&ConfigError{
			Key:     "active_profile_name",
			Value:   c.ActiveProfileName,
			Default: profile.DefaultName,
			Err:     ErrUnknownProfile,
		}}
	}
	return profile.FromSpecs(c.ActiveProfileName, specs)
}

func ms(n int) time.Duration { return time.Duration(n) * time.Millisecond }
