package listing

import (
	"errors"
	"fmt"
)

// ErrTimestampUnavailable is returned when a selected timestamp cannot be read
// for an entry, typically the creation time on filesystems that do not track it.
var ErrTimestampUnavailable = errors.New("timestamp unavailable")

// TimestampError names the entry and timestamp kind that could not be formatted
type TimestampError struct {
	Name string
	Kind TimeKind
}

func (e *TimestampError) Error() string {
	return fmt.Sprintf("%s: %s time: %v", e.Name, e.Kind, ErrTimestampUnavailable)
}

// Unwrap lets errors.Is match ErrTimestampUnavailable
func (e *TimestampError) Unwrap() error {
	return ErrTimestampUnavailable
}
