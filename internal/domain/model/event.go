// Package model contains the value types passed between the recognizer layers.
package model

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Kind classifies a recognized gesture.
type Kind uint8

// Gesture kinds.
const (
	KindNone Kind = iota
	KindTap
	KindDoubleTap
	KindScroll
	KindSwipe
	KindPinch
	KindRotate
)

var kindNames = [...]string{
	KindNone:      "none",
	KindTap:       "tap",
	KindDoubleTap: "double_tap",
	KindScroll:    "scroll",
	KindSwipe:     "swipe",
	KindPinch:     "pinch",
	KindRotate:    "rotate",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// Continuous reports whether k may emit several incremental events while
// contacts stay down.
func (k Kind) Continuous() bool {
	return k == KindScroll || k == KindPinch || k == KindRotate
}

// ParseKind parses a kind name such as "swipe" or "double_tap".
func ParseKind(s string) (Kind, error) {
	n := strings.ToLower(strings.TrimSpace(s))
	n = strings.ReplaceAll(n, "-", "_")
	for i, name := range kindNames {
		if name == n {
			return Kind(i), nil
		}
	}
	if n == "doubletap" {
		return KindDoubleTap, nil
	}
	return KindNone, fmt.Errorf("unknown gesture kind %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(b []byte) error {
	v, err := ParseKind(string(b))
	if err != nil {
		return err
	}
	*k = v
	return nil
}

// Direction of a gesture. Up/Down/Left/Right apply to scroll and swipe,
// In/Out to pinch and Clockwise/CounterClockwise to rotate.
type Direction uint8

// Gesture directions.
const (
	DirectionNone Direction = iota
	DirectionUp
	DirectionDown
	DirectionLeft
	DirectionRight
	DirectionIn
	DirectionOut
	DirectionClockwise
	DirectionCounterClockwise
)

var directionNames = [...]string{
	DirectionNone:             "none",
	DirectionUp:               "up",
	DirectionDown:             "down",
	DirectionLeft:             "left",
	DirectionRight:            "right",
	DirectionIn:               "in",
	DirectionOut:              "out",
	DirectionClockwise:        "clockwise",
	DirectionCounterClockwise: "counter_clockwise",
}

func (d Direction) String() string {
	if int(d) < len(directionNames) {
		return directionNames[d]
	}
	return "direction(" + strconv.Itoa(int(d)) + ")"
}

// ParseDirection parses a direction name. The empty string is DirectionNone.
func ParseDirection(s string) (Direction, error) {
	n := strings.ToLower(strings.TrimSpace(s))
	n = strings.ReplaceAll(n, "-", "_")
	if n == "" || n == "any" {
		return DirectionNone, nil
	}
	for i, name := range directionNames {
		if name == n {
			return Direction(i), nil
		}
	}
	switch n {
	case "cw":
		return DirectionClockwise, nil
	case "ccw", "counterclockwise":
		return DirectionCounterClockwise, nil
	}
	return DirectionNone, fmt.Errorf("unknown gesture direction %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (d Direction) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Direction) UnmarshalText(b []byte) error {
	v, err := ParseDirection(string(b))
	if err != nil {
		return err
	}
	*d = v
	return nil
}

// Signature is the binding lookup key of a gesture.
type Signature struct {
	Kind      Kind      `json:"kind"`
	Fingers   int       `json:"fingers"`
	Direction Direction `json:"direction"`
}

func (s Signature) String() string {
	return s.Kind.String() + "/" + strconv.Itoa(s.Fingers) + "/" + s.Direction.String()
}

// Wildcard returns s with its direction cleared.
func (s Signature) Wildcard() Signature {
	s.Direction = DirectionNone
	return s
}

// GestureEvent is one recognized gesture occurrence. Continuous kinds carry
// the increment since the previous emission of the same sequence.
type GestureEvent struct {
	ID          string    `json:"id"`
	Kind        Kind      `json:"kind"`
	FingerCount int       `json:"finger_count"`
	Direction   Direction `json:"direction"`
	Velocity    float64   `json:"velocity"`
	Distance    float64   `json:"distance"`
	Scale       float64   `json:"scale"`
	Rotation    float64   `json:"rotation"`
	Timestamp   time.Time `json:"timestamp"`
}

// Signature returns the lookup key of e.
func (e GestureEvent) Signature() Signature {
	return Signature{Kind: e.Kind, Fingers: e.FingerCount, Direction: e.Direction}
}
