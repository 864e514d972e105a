package config

import (
	"errors"
	"fmt"
)

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrInvalidConfig  = errors.New("invalid config")
	ErrLoadConfig     = errors.New("load config failed")
	ErrUnknownProfile = errors.New("unknown profile")
)

// ConfigError reports a value replaced by its default.
type ConfigError struct { //nolint:revive // ConfigError reads better at call sites than Error
	Key     string
	Value   any
	Default any
	Err     error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s=%v: %v (using %v)", e.Key, e.Value, e.Err, e.Default)
}

func (e *ConfigError) Unwrap() error { return e.Err }
