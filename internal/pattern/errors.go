package pattern

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyInput is returned when the buffer or the pattern is empty.
	ErrEmptyInput = errors.New("data or pattern is empty")

	// ErrPatternParse is returned when a pattern cannot be decoded into
	// byte and wildcard tokens, or has no concrete byte at all.
	ErrPatternParse = errors.New("failed to parse pattern")

	// ErrPatternTooLarge is returned when the buffer is shorter than the pattern.
	ErrPatternTooLarge = errors.New("data cannot be smaller than the pattern")
)

// Error describes a misuse of the pattern matchers.
// These indicate a broken signature table or a programming error, never
// a property of the scanned image.
type Error struct {
	// Pattern is the pattern text (if known)
	Pattern string
	// Detail adds context such as the offending token
	Detail string
	// Err is one of the package sentinels
	Err error
}

func (e *Error) Error() string {
	msg := e.Err.Error()
	if e.Pattern != "" {
		msg = fmt.Sprintf("%s: %q", msg, e.Pattern)
	}
	if e.Detail != "" {
		msg += " (" + e.Detail + ")"
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}
