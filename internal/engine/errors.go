package engine

import (
	"errors"
	"fmt"
)

// ErrNotFound is matched with errors.Is for any missing habit or user.
var ErrNotFound = errors.New("not found")

// NotFoundError names the kind and id of a record that is absent from the loaded collection.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// ValidationError reports malformed input at the boundary (days, moods, categories...).
// Inside the core the same condition is a caller bug and panics with this value.
type ValidationError struct {
	Field  string
	Value  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Reason)
}
