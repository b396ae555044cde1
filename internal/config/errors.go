package config

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownValue is returned for backend, API or level names that do
	// not parse.
	ErrUnknownValue = errors.New("unknown value")

	// ErrUnsupportedFormat is returned for config files that are neither
	// TOML nor YAML.
	ErrUnsupportedFormat = errors.New("unsupported config format")

	// ErrInvalidEnv is returned when a WMA_* variable holds a value of the
	// wrong type.
	ErrInvalidEnv = errors.New("invalid environment value")
)

// ParseError reports a config file that could not be decoded.
type ParseError struct {
	Path   string
	Line   int
	Column int
	Err    error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("parse error in %s at line %d, column %d: %v", e.Path, e.Line, e.Column, e.Err)
	}
	return fmt.Sprintf("parse error in %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ValidationError reports a field outside its allowed range.
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %v: %s", e.Field, e.Value, e.Message)
}
