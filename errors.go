package transpiler

import "errors"

// Common errors used throughout the transpiler package
var (
	// ErrUnsupportedTarget indicates a target language name with no registered generator.
	ErrUnsupportedTarget = errors.New("unsupported target language")
	// ErrConfigNotFound indicates the configuration file does not exist.
	ErrConfigNotFound = errors.New("configuration file not found")
	// ErrInvalidConfig indicates the configuration file failed validation.
	ErrInvalidConfig = errors.New("invalid configuration")
)
