package persist

import (
	"github.com/joeycumines/uat-helper/internal/settings"
)

// Document is an open configuration file: the live settings being edited
// and the snapshot they are compared against.
type Document struct {
	engine   *Engine
	file     string
	live     *settings.Settings
	detector *settings.ChangeDetector
	result   *Result
}

// Open loads file. The loaded settings become both the live state and the
// snapshot.
func Open(engine *Engine, file string) *Document {
	d := &Document{engine: engine, file: file}
	d.load()
	return d
}

func (d *Document) load() {
	d.live, d.result = d.engine.Load(d.file)
	d.detector = settings.NewChangeDetector(d.live)
}

// File returns the file name.
func (d *Document) File() string { return d.file }

// Settings returns the live settings. Callers mutate them in place.
func (d *Document) Settings() *settings.Settings { return d.live }

// LoadResult describes the most recent load.
func (d *Document) LoadResult() *Result { return d.result }

// Dirty reports whether the live settings differ from the snapshot.
func (d *Document) Dirty() bool { return d.detector.IsDirty(d.live) }

// Save writes the live settings, canonicalizing them in place. On success
// the written state becomes the snapshot.
func (d *Document) Save() error {
	if err := d.engine.Save(d.file, d.live); err != nil {
		return err
	}
	d.detector.Reset(d.live)
	return nil
}

// SaveAs writes the live settings to another file, which becomes the
// document's file.
func (d *Document) SaveAs(file string) error {
	if err := d.engine.Save(file, d.live); err != nil {
		return err
	}
	d.file = file
	d.detector.Reset(d.live)
	return nil
}

// Revert discards unsaved changes by reloading the file.
func (d *Document) Revert() { d.load() }

// Diff renders the unsaved changes as a unified diff of the snapshot and
// live encodings. It is empty when nothing changed.
func (d *Document) Diff() (string, error) {
	before, err := Encode(d.detector.Snapshot())
	if err != nil {
		return "", err
	}
	after, err := Encode(d.live.Clone())
	if err != nil {
		return "", err
	}
	return UnifiedDiff(before, after, d.file+" (saved)", d.file+" (unsaved)")
}
