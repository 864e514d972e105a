// Package profile maps gesture signatures to actions.
package profile

import (
	"sort"
	"strings"

	"github.com/okian/gestura/internal/domain/model"
)

const (
	minFingers = 1
	maxFingers = 5
)

// Binding attaches an action to a gesture signature.
type Binding struct {
	Signature model.Signature `json:"signature"`
	Action    Action          `json:"action"`
	Enabled   bool            `json:"enabled"`
}

// Validate checks a binding in isolation.
func (b Binding) Validate() error {
	switch {
	case b.Signature.Fingers < minFingers || b.Signature.Fingers > maxFingers:
		return ErrInvalidFingers
	case b.Signature.Kind == model.KindNone:
		return ErrUnknownGesture
	case !b.Action.Kind.Valid():
		return ErrUnknownAction
	case strings.TrimSpace(b.Action.Command) == "":
		return ErrEmptyCommand
	}
	return nil
}

// Profile is an immutable named set of bindings, unique by signature.
type Profile struct {
	name     string
	bindings map[model.Signature]Binding
}

// New builds a profile. Invalid bindings are skipped and reported; when two
// bindings share a signature the later one wins.
func New(name string, bindings []Binding) (*Profile, []error) {
	var errs []error
	name = strings.TrimSpace(name)
	if name == "" {
		errs = append(errs, ErrEmptyName)
		name = "unnamed"
	}
	p := &Profile{name: name, bindings: make(map[model.Signature]Binding, len(bindings))}
	for i, b := range bindings {
		if err := b.Validate(); err != nil {
			errs = append(errs, &BindingError{Index: i, Err: err})
			continue
		}
		p.bindings[b.Signature] = b
	}
	return p, errs
}

// Name returns the profile name.
func (p *Profile) Name() string { return p.name }

// Len returns the number of bindings.
func (p *Profile) Len() int { return len(p.bindings) }

// Lookup finds the enabled binding for sig. An exact match wins; otherwise a
// binding with no direction for the same kind and finger count is used.
func (p *Profile) Lookup(sig model.Signature) (Binding, bool) {
	if p == nil {
		return Binding{}, false
	}
	if b, ok := p.bindings[sig]; ok && b.Enabled {
		return b, true
	}
	if sig.Direction == model.DirectionNone {
		return Binding{}, false
	}
	if b, ok := p.bindings[sig.Wildcard()]; ok && b.Enabled {
		return b, true
	}
	return Binding{}, false
}

// Bindings returns a copy of the bindings ordered by signature.
func (p *Profile) Bindings() []Binding {
	out := make([]Binding, 0, len(p.bindings))
	for _, b := range p.bindings {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i].Signature, out[j].Signature
		if a.Kind != b.Kind {
			return a.Kind < b.Kind
		}
		if a.Fingers != b.Fingers {
			return a.Fingers < b.Fingers
		}
		return a.Direction < b.Direction
	})
	return out
}
