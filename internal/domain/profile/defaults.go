package profile

import "github.com/okian/gestura/internal/domain/model"

// DefaultName is the name of the built-in profile.
const DefaultName = "default"

// DefaultBindings returns the built-in bindings.
func DefaultBindings() []Binding {
	bind := func(k model.Kind, fingers int, d model.Direction, ak ActionKind, cmd string) Binding {
		return Binding{
			Signature: model.Signature{Kind: k, Fingers: fingers, Direction: d},
			Action:    Action{Kind: ak, Command: cmd},
			Enabled:   true,
		}
	}
	return []Binding{
		bind(model.KindTap, 1, model.DirectionNone, MouseClick, "left"),
		bind(model.KindTap, 2, model.DirectionNone, MouseClick, "right"),
		bind(model.KindDoubleTap, 1, model.DirectionNone, MouseClick, "double"),
		bind(model.KindScroll, 2, model.DirectionNone, MouseScroll, "wheel"),
		bind(model.KindSwipe, 3, model.DirectionUp, KeyboardShortcut, "win+d"),
		bind(model.KindSwipe, 3, model.DirectionLeft, KeyboardShortcut, "browser_back"),
		bind(model.KindSwipe, 3, model.DirectionRight, KeyboardShortcut, "browser_forward"),
		bind(model.KindPinch, 2, model.DirectionIn, KeyboardShortcut, "ctrl+minus"),
		bind(model.KindPinch, 2, model.DirectionOut, KeyboardShortcut, "ctrl+plus"),
	}
}

// Default returns the built-in profile.
func Default() *Profile {
	p, _ := New(DefaultName, DefaultBindings())
	return p
}
