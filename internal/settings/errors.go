package settings

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyName is returned when adding or renaming to a blank name.
	ErrEmptyName = errors.New("name cannot be empty")

	// ErrDuplicateName is returned when a live entry with the same name
	// already exists. Persisted references resolve by first match, so
	// duplicates would not survive a round trip.
	ErrDuplicateName = errors.New("name already exists")

	// ErrNotFound is returned for positions or ids that are out of range,
	// absent or tombstoned.
	ErrNotFound = errors.New("entry not found")
)

// NotFoundError names the list and reference that could not be resolved.
type NotFoundError struct {
	Kind string
	Ref  any
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %v not found", e.Kind, e.Ref)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

func notFound(kind string, ref any) error {
	return &NotFoundError{Kind: kind, Ref: ref}
}
