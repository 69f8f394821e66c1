package validator

import (
	"errors"
	"regexp"
)

// MaxEventNameLength bounds event names accepted from outside the process.
const MaxEventNameLength = 128

// Event name validation errors
var (
	ErrInvalidEventName = errors.New("event name must contain only letters, digits, '-', '_', '.' and ':'")
	ErrEventNameEmpty   = errors.New("event name cannot be empty")
	ErrEventNameTooLong = errors.New("event name is too long")
)

// Compile regex patterns once at package level for performance
var eventNameRegex = regexp.MustCompile(`^[A-Za-z0-9._:-]+$`)

// ValidateEventName checks an event name received over the admin API.
// The dispatcher itself accepts any string; this keeps external names
// printable and metric labels readable.
func ValidateEventName(name string) error {
	if name == "" {
		return ErrEventNameEmpty
	}

	if len(name) > MaxEventNameLength {
		return ErrEventNameTooLong
	}

	if !eventNameRegex.MatchString(name) {
		return ErrInvalidEventName
	}

	return nil
}
