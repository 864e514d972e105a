package profile

import (
	"fmt"
	"strings"
)

// ActionKind is the closed set of things a binding can trigger.
type ActionKind uint8

// Action kinds.
const (
	ActionNone ActionKind = iota
	KeyboardShortcut
	MouseClick
	MouseScroll
	LaunchApp
	SystemCommand
	MediaControl

	actionKindCount
)

var actionKindNames = [actionKindCount]string{
	ActionNone:       "none",
	KeyboardShortcut: "keyboard_shortcut",
	MouseClick:       "mouse_click",
	MouseScroll:      "mouse_scroll",
	LaunchApp:        "launch_app",
	SystemCommand:    "system_command",
	MediaControl:     "media_control",
}

func (k ActionKind) String() string {
	if k < actionKindCount {
		return actionKindNames[k]
	}
	return "unknown"
}

// Valid reports whether k names a real action.
func (k ActionKind) Valid() bool {
	return k > ActionNone && k < actionKindCount
}

// ParseActionKind parses a kind name. Dashes and case are ignored.
func ParseActionKind(s string) (ActionKind, error) {
	n := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_")
	switch n {
	case "shortcut", "keyboard":
		return KeyboardShortcut, nil
	case "click":
		return MouseClick, nil
	case "scroll":
		return MouseScroll, nil
	case "execute_app", "app":
		return LaunchApp, nil
	case "media":
		return MediaControl, nil
	}
	for k := KeyboardShortcut; k < actionKindCount; k++ {
		if actionKindNames[k] == n {
			return k, nil
		}
	}
	return ActionNone, fmt.Errorf("%w: %q", ErrUnknownAction, s)
}

// MarshalText implements encoding.TextMarshaler.
func (k ActionKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *ActionKind) UnmarshalText(b []byte) error {
	v, err := ParseActionKind(string(b))
	if err != nil {
		return err
	}
	*k = v
	return nil
}

// Action is the descriptor handed to the executor. Command is interpreted
// per kind: a key chord, a button name, an executable path and so on.
type Action struct {
	Kind    ActionKind        `json:"kind"`
	Command string            `json:"command"`
	Params  map[string]string `json:"params,omitempty"`
}

func (a Action) String() string {
	return a.Kind.String() + ":" + a.Command
}
