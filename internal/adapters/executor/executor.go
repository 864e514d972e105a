// Package executor turns action descriptors into input injection and
// process launches.
package executor

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/okian/gestura/internal/domain/model"
	"github.com/okian/gestura/internal/domain/profile"
	"github.com/okian/gestura/pkg/logger"
)

// wheelLinesPerUnit converts normalized scroll distance into wheel lines.
const wheelLinesPerUnit = 40

type handler func(e *Executor, ctx context.Context, a profile.Action, ev model.GestureEvent) error

// handlers is indexed by profile.ActionKind.
var handlers = [...]handler{
	profile.ActionNone:       nil,
	profile.KeyboardShortcut: (*Executor).keyboardShortcut,
	profile.MouseClick:       (*Executor).mouseClick,
	profile.MouseScroll:      (*Executor).mouseScroll,
	profile.LaunchApp:        (*Executor).launchApp,
	profile.SystemCommand:    (*Executor).systemCommand,
	profile.MediaControl:     (*Executor).mediaControl,
}

var (
	modifierKeys = map[string]bool{"ctrl": true, "alt": true, "shift": true, "win": true, "cmd": true, "meta": true}
	buttons      = map[string]int{"left": 1, "right": 1, "middle": 1, "double": 2}
	mediaKeys    = map[string]bool{
		"play_pause": true, "next": true, "previous": true, "stop": true,
		"volume_up": true, "volume_down": true, "mute": true,
	}
	systemCommands = map[string]bool{"lock": true, "sleep": true, "show_desktop": true, "task_view": true}
)

// Executor implements dispatch.Executor.
type Executor struct {
	inj    Injector
	launch func(ctx context.Context, path string, args ...string) error
	log    logger.Logger
}

// Option applies a configuration option to the Executor.
type Option func(*Executor)

// WithInjector sets the input injector.
func WithInjector(inj Injector) Option {
	return func(e *Executor) {
		if inj != nil {
			e.inj = inj
		}
	}
}

// WithLauncher replaces the process launcher.
func WithLauncher(f func(ctx context.Context, path string, args ...string) error) Option {
	return func(e *Executor) {
		if f != nil {
			e.launch = f
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l logger.Logger) Option {
	return func(e *Executor) {
		if l != nil {
			e.log = l
		}
	}
}

// New creates an executor. Without an injector, inputs are only logged.
func New(opts ...Option) *Executor {
	e := &Executor{log: logger.Nop(), launch: startProcess}
	for _, opt := range opts {
		opt(e)
	}
	if e.inj == nil {
		e.inj = LogInjector{Log: e.log}
	}
	return e
}

// Execute runs a.
func (e *Executor) Execute(ctx context.Context, a profile.Action, ev model.GestureEvent) error {
	if int(a.Kind) >= len(handlers) || handlers[a.Kind] == nil {
		return fmt.Errorf("%w: %s", ErrUnsupported, a.Kind)
	}
	return handlers[a.Kind](e, ctx, a, ev)
}

func (e *Executor) keyboardShortcut(ctx context.Context, a profile.Action, _ model.GestureEvent) error {
	mods, key, err := ParseChord(a.Command)
	if err != nil {
		return err
	}
	return e.inj.KeyChord(ctx, mods, key)
}

func (e *Executor) mouseClick(ctx context.Context, a profile.Action, _ model.GestureEvent) error {
	button := strings.ToLower(strings.TrimSpace(a.Command))
	count, ok := buttons[button]
	if !ok {
		return fmt.Errorf("%w: button %q", ErrUnknownInput, a.Command)
	}
	if button == "double" {
		button = "left"
	}
	return e.inj.Click(ctx, button, count)
}

// mouseScroll converts the gesture's direction and distance into wheel
// lines. A "lines" param overrides the distance.
func (e *Executor) mouseScroll(ctx context.Context, a profile.Action, ev model.GestureEvent) error {
	amount := ev.Distance * wheelLinesPerUnit
	if s, ok := a.Params["lines"]; ok {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("%w: lines %q", ErrUnknownInput, s)
		}
		amount = v
	}
	var dx, dy float64
	switch ev.Direction {
	case model.DirectionUp:
		dy = amount
	case model.DirectionDown:
		dy = -amount
	case model.DirectionLeft:
		dx = -amount
	case model.DirectionRight:
		dx = amount
	default:
		return nil
	}
	return e.inj.Scroll(ctx, dx, dy)
}

func (e *Executor) launchApp(ctx context.Context, a profile.Action, _ model.GestureEvent) error {
	path := strings.TrimSpace(a.Command)
	args := strings.Fields(a.Params["args"])
	if err := e.launch(ctx, path, args...); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrLaunchFailed, path, err)
	}
	e.log.Info(ctx, "application launched", logger.String("path", path))
	return nil
}

func (e *Executor) systemCommand(ctx context.Context, a profile.Action, _ model.GestureEvent) error {
	cmd := strings.ToLower(strings.TrimSpace(a.Command))
	if !systemCommands[cmd] {
		return fmt.Errorf("%w: system %q", ErrUnknownInput, a.Command)
	}
	return e.inj.System(ctx, cmd)
}

func (e *Executor) mediaControl(ctx context.Context, a profile.Action, _ model.GestureEvent) error {
	cmd := strings.ToLower(strings.TrimSpace(a.Command))
	if !mediaKeys[cmd] {
		return fmt.Errorf("%w: media %q", ErrUnknownInput, a.Command)
	}
	return e.inj.Media(ctx, cmd)
}

// ParseChord splits "ctrl+shift+t" into modifiers and a key.
func ParseChord(s string) ([]string, string, error) {
	parts := strings.Split(strings.ToLower(strings.TrimSpace(s)), "+")
	var mods []string
	key := ""
	for i, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			return nil, "", fmt.Errorf("%w: %q", ErrBadChord, s)
		}
		if i < len(parts)-1 {
			if !modifierKeys[p] {
				return nil, "", fmt.Errorf("%w: %q is not a modifier", ErrBadChord, p)
			}
			mods = append(mods, p)
			continue
		}
		key = p
	}
	return mods, key, nil
}

// startProcess launches path detached; the process is not waited for.
func startProcess(ctx context.Context, path string, args ...string) error {
	cmd := exec.Command(path, args...) //nolint:gosec // paths come from the operator's profile
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() { _ = cmd.Wait() }()
	return nil
}
