package persist

import (
	"errors"
	"fmt"
)

var (
	// ErrSoftMissing marks a load that found no readable file. Defaults are
	// used and nothing is reported.
	ErrSoftMissing = errors.New("config file missing or unreadable")

	// ErrMalformed marks a file that is not valid JSON. It is handled like a
	// missing file.
	ErrMalformed = errors.New("config file is not valid JSON")
)

// SchemaMismatchError marks a file whose version tag is absent or differs
// from settings.SchemaVersion. Defaults are used and nothing is reported.
type SchemaMismatchError struct {
	// Found is the raw version value, or empty when the tag is absent.
	Found string
	Want  int
}

func (e *SchemaMismatchError) Error() string {
	if e.Found == "" {
		return fmt.Sprintf("config file has no %q tag, want %d", keyVersion, e.Want)
	}
	return fmt.Sprintf("config file version %s, want %d", e.Found, e.Want)
}

// Problem is a non-fatal condition found while loading. The offending entry
// is skipped and loading continues.
type Problem interface {
	error
	// Title is the short heading shown to the user.
	Title() string
}

// DanglingReferenceError is a persisted name that does not resolve against
// its option list or event registry.
type DanglingReferenceError struct {
	Platform string
	// Key is the enabled-list key, e.g. "Enabled Versions".
	Key  string
	Name string
}

func (e *DanglingReferenceError) Title() string { return "String Not Found In Array" }

func (e *DanglingReferenceError) Error() string {
	return fmt.Sprintf("'%s' not found in '%s' of platform '%s'", e.Name, e.Key, e.Platform)
}

// EmptyPlatformListError is reported when a load produced no platforms.
type EmptyPlatformListError struct{}

func (e *EmptyPlatformListError) Title() string { return "Invalid Config" }

func (e *EmptyPlatformListError) Error() string {
	return fmt.Sprintf("'%s' needs to be greater than 0", keyPlatforms)
}

// InvalidFieldError is a field with an unexpected JSON type, or a duplicate
// platform. The field or entry is ignored.
type InvalidFieldError struct {
	Key    string
	Reason string
}

func (e *InvalidFieldError) Title() string { return "Invalid Config" }

func (e *InvalidFieldError) Error() string {
	return fmt.Sprintf("'%s': %s", e.Key, e.Reason)
}

// WriteFailure is a save that could not write the file. The snapshot is
// left unchanged, so the document stays dirty. The live configuration has
// already been canonicalized in place: tombstoned entries are gone.
type WriteFailure struct {
	Name string
	Err  error
}

func (e *WriteFailure) Error() string {
	return fmt.Sprintf("failed to save %s: %v", e.Name, e.Err)
}

func (e *WriteFailure) Unwrap() error { return e.Err }
