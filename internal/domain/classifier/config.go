package classifier

import "time"

// Config holds the classification thresholds. Distances are in normalized
// surface units and velocities in units per second.
type Config struct {
	TapDuration     time.Duration
	TapDistance     float64
	DoubleTapWindow time.Duration
	ScrollVelocity  float64
	SwipeVelocity   float64
	PinchScale      float64
	RotateAngle     float64 // radians
	// Sensitivity divides the tap distance and both velocity thresholds.
	Sensitivity float64
}

// DefaultConfig returns the stock thresholds.
func DefaultConfig() Config {
	return Config{
		TapDuration:     300 * time.Millisecond,
		TapDistance:     0.05,
		DoubleTapWindow: 400 * time.Millisecond,
		ScrollVelocity:  1.5,
		SwipeVelocity:   3.0,
		PinchScale:      0.10,
		RotateAngle:     0.26,
		Sensitivity:     1.0,
	}
}

// scaled returns the thresholds with sensitivity applied. Zero or negative
// fields fall back to their defaults.
func (c Config) scaled() Config {
	def := DefaultConfig()
	if c.TapDuration <= 0 {
		c.TapDuration = def.TapDuration
	}
	if c.TapDistance <= 0 {
		c.TapDistance = def.TapDistance
	}
	if c.DoubleTapWindow < 0 {
		c.DoubleTapWindow = def.DoubleTapWindow
	}
	if c.ScrollVelocity <= 0 {
		c.ScrollVelocity = def.ScrollVelocity
	}
	if c.SwipeVelocity < c.ScrollVelocity {
		c.SwipeVelocity = c.ScrollVelocity
	}
	if c.PinchScale <= 0 {
		c.PinchScale = def.PinchScale
	}
	if c.RotateAngle <= 0 {
		c.RotateAngle = def.RotateAngle
	}
	if c.Sensitivity <= 0 {
		c.Sensitivity = def.Sensitivity
	}
	c.TapDistance /= c.Sensitivity
	c.ScrollVelocity /= c.Sensitivity
	c.SwipeVelocity /= c.Sensitivity
	return c
}
