package appsettings

import (
	"encoding/json"
	"fmt"
)

// Revision is the version of the app settings file format.
type Revision struct {
	Major, Minor int
}

func (r Revision) String() string { return fmt.Sprintf("%d.%d", r.Major, r.Minor) }

// Current is the revision this package writes.
var Current = Revision{Major: 1, Minor: 3}

// Document is the raw app settings file, keyed by field name.
type Document map[string]json.RawMessage

// Migration transforms a document from one revision to the next.
type Migration struct {
	From, To Revision
	Apply    func(Document) error
}

// Identity is a transform that leaves the document unchanged.
func Identity(Document) error { return nil }

// MigrationError reports a document that cannot be brought to the wanted
// revision because no migration leaves At.
type MigrationError struct {
	From, To, At Revision
	Err          error
}

func (e *MigrationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("migrating app settings %s to %s: step from %s failed: %v", e.From, e.To, e.At, e.Err)
	}
	return fmt.Sprintf("migrating app settings %s to %s: no migration defined from %s", e.From, e.To, e.At)
}

func (e *MigrationError) Unwrap() error { return e.Err }

// Migrations is a table of single-step migrations keyed by source revision.
type Migrations struct {
	steps map[Revision]Migration
}

// NewMigrations returns a table holding steps.
func NewMigrations(steps ...Migration) *Migrations {
	m := &Migrations{steps: make(map[Revision]Migration, len(steps))}
	for _, step := range steps {
		m.Register(step)
	}
	return m
}

// DefaultMigrations covers every released revision up to Current. None of
// them changed the format.
func DefaultMigrations() *Migrations {
	return NewMigrations(
		Migration{From: Revision{1, 0}, To: Revision{1, 1}, Apply: Identity},
		Migration{From: Revision{1, 1}, To: Revision{1, 2}, Apply: Identity},
		Migration{From: Revision{1, 2}, To: Revision{1, 3}, Apply: Identity},
	)
}

// Register adds or replaces the migration leaving step.From.
func (m *Migrations) Register(step Migration) {
	if step.Apply == nil {
		step.Apply = Identity
	}
	m.steps[step.From] = step
}

// Migrate applies migrations to doc until it reaches to. It fails when a
// step is missing or the chain loops.
func (m *Migrations) Migrate(doc Document, from, to Revision) error {
	seen := map[Revision]bool{}
	for at := from; at != to; {
		if seen[at] {
			return &MigrationError{From: from, To: to, At: at, Err: fmt.Errorf("migration cycle at %s", at)}
		}
		seen[at] = true
		step, ok := m.steps[at]
		if !ok {
			return &MigrationError{From: from, To: to, At: at}
		}
		if err := step.Apply(doc); err != nil {
			return &MigrationError{From: from, To: to, At: at, Err: err}
		}
		at = step.To
	}
	return nil
}
