// Package model contains the value types passed between the recognizer layers.
package model

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// Lifecycle is the phase of a contact sample.
type Lifecycle uint8

// Contact lifecycle phases.
const (
	Down Lifecycle = iota + 1
	Move
	Up
)

func (l Lifecycle) String() string {
	switch l {
	case Down:
		return "down"
	case Move:
		return "move"
	case Up:
		return "up"
	default:
		return "unknown"
	}
}

// ParseLifecycle parses "down", "move" or "up".
func ParseLifecycle(s string) (Lifecycle, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "down":
		return Down, nil
	case "move":
		return Move, nil
	case "up":
		return Up, nil
	default:
		return 0, fmt.Errorf("unknown lifecycle %q", s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (l Lifecycle) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *Lifecycle) UnmarshalText(b []byte) error {
	v, err := ParseLifecycle(string(b))
	if err != nil {
		return err
	}
	*l = v
	return nil
}

// Valid reports whether l is one of Down, Move or Up.
func (l Lifecycle) Valid() bool {
	return l >= Down && l <= Up
}

// TouchPoint is one contact sampled at one instant. X and Y are normalized to
// [0,1] with Y growing downward.
type TouchPoint struct {
	ContactID int       `json:"contact_id" yaml:"id"`
	X         float64   `json:"x" yaml:"x"`
	Y         float64   `json:"y" yaml:"y"`
	Pressure  float64   `json:"pressure,omitempty" yaml:"pressure,omitempty"`
	Lifecycle Lifecycle `json:"lifecycle" yaml:"lifecycle"`
	Timestamp time.Time `json:"timestamp,omitempty" yaml:"-"`
}

// Finite reports whether both coordinates are finite numbers.
func (p TouchPoint) Finite() bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) && !math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}

// Vec returns the point position.
func (p TouchPoint) Vec() Vec {
	return Vec{X: p.X, Y: p.Y}
}

// TouchFrame is the set of contacts sampled at one instant.
type TouchFrame struct {
	Points    []TouchPoint `json:"points"`
	Timestamp time.Time    `json:"timestamp"`
}

// Stamp fills missing point timestamps with the frame timestamp.
func (f TouchFrame) Stamp() TouchFrame {
	out := TouchFrame{Timestamp: f.Timestamp, Points: make([]TouchPoint, len(f.Points))}
	for i, p := range f.Points {
		if p.Timestamp.IsZero() {
			p.Timestamp = f.Timestamp
		}
		out.Points[i] = p
	}
	return out
}

// Vec is a 2D vector in normalized surface units.
type Vec struct {
	X, Y float64
}

// Sub returns v - o.
func (v Vec) Sub(o Vec) Vec { return Vec{X: v.X - o.X, Y: v.Y - o.Y} }

// Add returns v + o.
func (v Vec) Add(o Vec) Vec { return Vec{X: v.X + o.X, Y: v.Y + o.Y} }

// Scale returns v * k.
func (v Vec) Scale(k float64) Vec { return Vec{X: v.X * k, Y: v.Y * k} }

// Len returns the Euclidean length of v.
func (v Vec) Len() float64 { return math.Hypot(v.X, v.Y) }

// Angle returns the direction of v in radians.
func (v Vec) Angle() float64 { return math.Atan2(v.Y, v.X) }
