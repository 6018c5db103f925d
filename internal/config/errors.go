package config

import (
	"errors"
	"fmt"
)

// ErrInvalidStructure indicates a config file that parses but doesn't have
// the expected shape.
var ErrInvalidStructure = errors.New("invalid configuration structure")

// ConfigError reports a configuration file that could not be read or parsed.
type ConfigError struct {
	Path string
	Err  error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("failed to load configuration %s: %v", e.Path, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}
