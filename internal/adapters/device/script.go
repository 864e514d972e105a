// Package device provides a simulated touch surface that plays frame
// scripts into the recognizer.
package device

import (
	"errors"
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/okian/gestura/internal/domain/model"
)

// ErrEmptyScript is returned for a script without frames.
var ErrEmptyScript = errors.New("script has no frames")

// ScriptFrame is one scripted frame. AtMS is the offset from the start of
// the script; a value not after the previous frame means "one interval
// later".
type ScriptFrame struct {
	AtMS   int                `yaml:"at_ms"`
	Points []model.TouchPoint `yaml:"points"`
}

// Script is a named frame sequence.
type Script struct {
	Name   string        `yaml:"name"`
	Frames []ScriptFrame `yaml:"frames"`
}

// ParseScript decodes a YAML script.
func ParseScript(b []byte) (Script, error) {
	var s Script
	if err := yaml.Unmarshal(b, &s); err != nil {
		return Script{}, fmt.Errorf("parse script: %w", err)
	}
	if len(s.Frames) == 0 {
		return Script{}, ErrEmptyScript
	}
	return s, nil
}

// LoadScript reads and decodes a YAML script file.
func LoadScript(path string) (Script, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Script{}, fmt.Errorf("read script %s: %w", path, err)
	}
	return ParseScript(b)
}

// Offsets returns the start offset of every frame.
func (s Script) Offsets(interval time.Duration) []time.Duration {
	out := make([]time.Duration, len(s.Frames))
	var prev time.Duration
	for i, f := range s.Frames {
		at := time.Duration(f.AtMS) * time.Millisecond
		if i > 0 && at <= prev {
			at = prev + interval
		}
		out[i] = at
		prev = at
	}
	return out
}

// Resolve returns the frames stamped relative to base.
func (s Script) Resolve(base time.Time, interval time.Duration) []model.TouchFrame {
	offs := s.Offsets(interval)
	out := make([]model.TouchFrame, len(s.Frames))
	for i, f := range s.Frames {
		pts := make([]model.TouchPoint, len(f.Points))
		copy(pts, f.Points)
		out[i] = model.TouchFrame{Timestamp: base.Add(offs[i]), Points: pts}
	}
	return out
}

// Duration is the offset of the last frame.
func (s Script) Duration(interval time.Duration) time.Duration {
	offs := s.Offsets(interval)
	if len(offs) == 0 {
		return 0
	}
	return offs[len(offs)-1]
}
