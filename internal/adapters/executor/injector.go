package executor

import (
	"context"
	"strings"

	"github.com/okian/gestura/pkg/logger"
)

// Injector is the OS input surface. Platform backends implement it; the
// default one only logs.
type Injector interface {
	KeyChord(ctx context.Context, modifiers []string, key string) error
	Click(ctx context.Context, button string, count int) error
	Scroll(ctx context.Context, dx, dy float64) error
	Media(ctx context.Context, command string) error
	System(ctx context.Context, command string) error
}

// LogInjector records every injected input in the log.
type LogInjector struct {
	Log logger.Logger
}

// KeyChord implements Injector.
func (l LogInjector) KeyChord(ctx context.Context, modifiers []string, key string) error {
	l.Log.Info(ctx, "key chord", logger.String("modifiers", strings.Join(modifiers, "+")), logger.String("key", key))
	return nil
}

// Click implements Injector.
func (l LogInjector) Click(ctx context.Context, button string, count int) error {
	l.Log.Info(ctx, "mouse click", logger.String("button", button), logger.Int("count", count))
	return nil
}

// Scroll implements Injector.
func (l LogInjector) Scroll(ctx context.Context, dx, dy float64) error {
	l.Log.Info(ctx, "mouse scroll", logger.Float64("dx", dx), logger.Float64("dy", dy))
	return nil
}

// Media implements Injector.
func (l LogInjector) Media(ctx context.Context, command string) error {
	l.Log.Info(ctx, "media key", logger.String("command", command))
	return nil
}

// System implements Injector.
func (l LogInjector) System(ctx context.Context, command string) error {
	l.Log.Info(ctx, "system command", logger.String("command", command))
	return nil
}
