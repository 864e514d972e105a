package profile

import (
	"github.com/okian/gestura/internal/domain/model"
)

// BindingSpec is the textual form of a binding used by configuration files
// and the HTTP API.
type BindingSpec struct {
	Gesture   string            `json:"gesture" koanf:"gesture" yaml:"gesture"`
	Fingers   int               `json:"fingers" koanf:"fingers" yaml:"fingers"`
	Direction string            `json:"direction,omitempty" koanf:"direction" yaml:"direction,omitempty"`
	Action    string            `json:"action" koanf:"action" yaml:"action"`
	Command   string            `json:"command" koanf:"command" yaml:"command"`
	Params    map[string]string `json:"params,omitempty" koanf:"params" yaml:"params,omitempty"`
	// Disabled keeps the zero value meaning enabled.
	Disabled bool `json:"disabled,omitempty" koanf:"disabled" yaml:"disabled,omitempty"`
}

// Parse converts the spec into a Binding.
func (s BindingSpec) Parse() (Binding, error) {
	kind, err := model.ParseKind(s.Gesture)
	if err != nil {
		return Binding{}, err
	}
	dir, err := model.ParseDirection(s.Direction)
	if err != nil {
		return Binding{}, err
	}
	ak, err := ParseActionKind(s.Action)
	if err != nil {
		return Binding{}, err
	}
	b := Binding{
		Signature: model.Signature{Kind: kind, Fingers: s.Fingers, Direction: dir},
		Action:    Action{Kind: ak, Command: s.Command, Params: s.Params},
		Enabled:   !s.Disabled,
	}
	return b, b.Validate()
}

// SpecOf returns the textual form of b.
func SpecOf(b Binding) BindingSpec {
	return BindingSpec{
		Gesture:   b.Signature.Kind.String(),
		Fingers:   b.Signature.Fingers,
		Direction: b.Signature.Direction.String(),
		Action:    b.Action.Kind.String(),
		Command:   b.Action.Command,
		Params:    b.Action.Params,
		Disabled:  !b.Enabled,
	}
}

// FromSpecs builds a profile from textual bindings. Bindings that do not
// parse are skipped and reported as *BindingError.
func FromSpecs(name string, specs []BindingSpec) (*Profile, []error) {
	var errs []error
	bindings := make([]Binding, 0, len(specs))
	for i, s := range specs {
		b, err := s.Parse()
		if err != nil {
			errs = append(errs, &BindingError{Index: i, Err: err})
			continue
		}
		bindings = append(bindings, b)
	}
	p, more := New(name, bindings)
	return p, append(errs, more...)
}

// Specs returns the textual form of every binding in p.
func (p *Profile) Specs() []BindingSpec {
	bs := p.Bindings()
	out := make([]BindingSpec, 0, len(bs))
	for _, b := range bs {
		out = append(out, SpecOf(b))
	}
	return out
}
