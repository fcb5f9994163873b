// Package persist reads and writes build configurations as
// UATHelper<name>.json files.
//
// Loading never fails: a missing, malformed or foreign-version file yields
// the defaults, and unresolvable references are reported and skipped.
// Saving canonicalizes the configuration and rewrites the whole file.
package persist

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/joeycumines/uat-helper/internal/settings"
	"github.com/joeycumines/uat-helper/internal/storage"
)

// Engine loads and saves configurations through a storage backend.
type Engine struct {
	backend  storage.Backend
	reporter Reporter
}

// NewEngine creates an Engine. A nil reporter logs problems instead.
func NewEngine(backend storage.Backend, reporter Reporter) *Engine {
	if reporter == nil {
		reporter = LogReporter
	}
	return &Engine{backend: backend, reporter: reporter}
}

// Backend returns the storage backend.
func (e *Engine) Backend() storage.Backend { return e.backend }

// Load reads the named file. See Decode for how problems are handled.
func (e *Engine) Load(file string) (*settings.Settings, *Result) {
	data, err := e.backend.Read(file)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			slog.Warn("config file unreadable, using defaults", "file", file, "error", err)
		}
		return defaulted(fmt.Errorf("%w: %w", ErrSoftMissing, err))
	}

	s, result := Decode(data, e.reporter)
	switch {
	case errors.Is(result.Cause, ErrMalformed):
		slog.Warn("config file malformed, using defaults", "file", file, "error", result.Cause)
	case result.Defaulted:
		slog.Debug("config file schema differs, using defaults", "file", file, "error", result.Cause)
	default:
		slog.Debug("config file loaded", "file", file, "problems", len(result.Problems))
	}
	return s, result
}

// Save canonicalizes s in place and writes it to the named file.
func (e *Engine) Save(file string, s *settings.Settings) error {
	data, err := Encode(s)
	if err != nil {
		return &WriteFailure{Name: file, Err: err}
	}
	if err := e.backend.Write(file, data); err != nil {
		return &WriteFailure{Name: file, Err: err}
	}
	slog.Debug("config file saved", "file", file, "bytes", len(data))
	return nil
}

// Exists reports whether the named file can be read.
func (e *Engine) Exists(file string) bool {
	_, err := e.backend.Read(file)
	return err == nil
}
