package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() so callers can use
// errors.Is() while still printing a readable message.
var (
	// ErrInvalidRange is returned when the lower bound is not below the
	// exclusive upper bound, leaving no value to draw the secret from.
	ErrInvalidRange = errors.New("invalid range: min must be less than max")

	// ErrRangeTooLarge is returned when the range contains values that
	// cannot be entered as a guess. Guesses are unsigned 32-bit integers.
	ErrRangeTooLarge = errors.New("invalid range: max must not exceed 4294967296")

	// ErrNoHistoryDir is returned when history is enabled without a directory.
	ErrNoHistoryDir = errors.New("history is enabled but no database directory is set")
)
