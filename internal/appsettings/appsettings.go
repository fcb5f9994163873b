// Package appsettings manages UATHelper.json, the small record of user
// preferences and which configuration file is open. It is saved after
// every change.
package appsettings

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/joeycumines/uat-helper/internal/storage"
)

// FileName is the app settings file name.
const FileName = "UATHelper.json"

const (
	// ColorCount is the number of color themes.
	ColorCount = 8
	// StyleCount is the number of style themes.
	StyleCount = 4

	defaultUpdatesPerSecond = 60
)

const (
	keyMajor       = "Major Revision"
	keyMinor       = "Minor Revision"
	keyColor       = "Color Selection"
	keyStyle       = "Style Selection"
	keyUPS         = "Updates Per Second"
	keyCurrentFile = "Currently Loaded File"
	keyConfigDir   = "Config Directory"
)

// AppSettings is the app-level state.
type AppSettings struct {
	Revision         Revision
	ColorTheme       int
	StyleTheme       int
	UpdatesPerSecond float64

	// ConfigDirectory holds the configuration files. Empty means the
	// directory of the app settings file.
	ConfigDirectory string

	// KnownConfigFiles is filled by scanning ConfigDirectory.
	KnownConfigFiles []string
	// CurrentFileIndex indexes KnownConfigFiles, or is -1.
	CurrentFileIndex int
}

// Defaults returns the settings used when no valid file exists.
func Defaults() *AppSettings {
	return &AppSettings{
		Revision:         Current,
		UpdatesPerSecond: defaultUpdatesPerSecond,
		CurrentFileIndex: -1,
	}
}

// CurrentFile returns the selected configuration file name.
func (a *AppSettings) CurrentFile() (string, bool) {
	if a.CurrentFileIndex < 0 || a.CurrentFileIndex >= len(a.KnownConfigFiles) {
		return "", false
	}
	return a.KnownConfigFiles[a.CurrentFileIndex], true
}

// IndexOf returns the index of file in KnownConfigFiles, or -1.
func (a *AppSettings) IndexOf(file string) int {
	for i, f := range a.KnownConfigFiles {
		if f == file {
			return i
		}
	}
	return -1
}

func (a *AppSettings) clamp() {
	a.ColorTheme = clampIndex(a.ColorTheme, ColorCount)
	a.StyleTheme = clampIndex(a.StyleTheme, StyleCount)
	if a.UpdatesPerSecond <= 0 {
		a.UpdatesPerSecond = defaultUpdatesPerSecond
	}
}

func clampIndex(v, n int) int {
	if v < 0 {
		return 0
	}
	if v >= n {
		return n - 1
	}
	return v
}

// DirOpener opens the directory holding configuration files.
type DirOpener func(dir string) (storage.Backend, error)

// Manager loads, scans and saves app settings.
type Manager struct {
	backend    storage.Backend
	open       DirOpener
	migrations *Migrations
	current    *AppSettings
}

// NewManager creates a manager storing UATHelper.json in backend. open is
// used for a ConfigDirectory other than the backend's own; nil means the
// file system.
func NewManager(backend storage.Backend, open DirOpener) *Manager {
	if open == nil {
		open = func(dir string) (storage.Backend, error) { return storage.NewFileSystemBackend(dir) }
	}
	return &Manager{
		backend:    backend,
		open:       open,
		migrations: DefaultMigrations(),
		current:    Defaults(),
	}
}

// SetMigrations replaces the migration table.
func (m *Manager) SetMigrations(migrations *Migrations) { m.migrations = migrations }

// Settings returns the current settings. Mutate them through Update.
func (m *Manager) Settings() *AppSettings { return m.current }

// ConfigBackend opens the directory configuration files are stored in.
func (m *Manager) ConfigBackend() (storage.Backend, error) {
	dir := m.current.ConfigDirectory
	if dir == "" || dir == m.backend.Dir() {
		return m.backend, nil
	}
	return m.open(dir)
}

// Load reads UATHelper.json. A missing or revision-less file yields the
// defaults. A file of another revision is migrated; if that fails the
// defaults are used and the *MigrationError is returned. The config
// directory is scanned in every case.
func (m *Manager) Load() error {
	a, loadErr := m.read()
	m.current = a.AppSettings
	if err := m.Rescan(); err != nil {
		slog.Warn("failed to scan config directory", "dir", a.ConfigDirectory, "error", err)
	}
	if a.pendingCurrent != "" {
		m.current.CurrentFileIndex = m.current.IndexOf(a.pendingCurrent)
	}
	return loadErr
}

type loaded struct {
	*AppSettings
	pendingCurrent string
}

func (m *Manager) read() (loaded, error) {
	data, err := m.backend.Read(FileName)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			slog.Warn("app settings unreadable, using defaults", "error", err)
		}
		return loaded{AppSettings: Defaults()}, nil
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		slog.Warn("app settings malformed, using defaults", "error", err)
		return loaded{AppSettings: Defaults()}, nil
	}

	var rev Revision
	if !field(doc, keyMajor, &rev.Major) || !field(doc, keyMinor, &rev.Minor) {
		return loaded{AppSettings: Defaults()}, nil
	}
	if rev != Current {
		if err := m.migrations.Migrate(doc, rev, Current); err != nil {
			return loaded{AppSettings: Defaults()}, err
		}
		slog.Info("migrated app settings", "from", rev.String(), "to", Current.String())
	}

	a := Defaults()
	field(doc, keyColor, &a.ColorTheme)
	field(doc, keyStyle, &a.StyleTheme)
	field(doc, keyUPS, &a.UpdatesPerSecond)
	field(doc, keyConfigDir, &a.ConfigDirectory)
	a.clamp()

	var current string
	field(doc, keyCurrentFile, &current)
	return loaded{AppSettings: a, pendingCurrent: current}, nil
}

// field decodes doc[key] into dst. It reports false when the key is absent,
// null or of the wrong type.
func field(doc Document, key string, dst any) bool {
	raw, ok := doc[key]
	if !ok || string(raw) == "null" {
		return false
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		slog.Warn("ignoring app settings field", "key", key, "error", err)
		return false
	}
	return true
}

type fileFormat struct {
	Major       int     `json:"Major Revision"`
	Minor       int     `json:"Minor Revision"`
	Color       int     `json:"Color Selection"`
	Style       int     `json:"Style Selection"`
	UPS         float64 `json:"Updates Per Second"`
	CurrentFile *string `json:"Currently Loaded File"`
	ConfigDir   string  `json:"Config Directory"`
}

// Save writes the current settings and reloads them, rescanning the config
// directory.
func (m *Manager) Save() error {
	a := m.current
	a.clamp()
	out := fileFormat{
		Major:     Current.Major,
		Minor:     Current.Minor,
		Color:     a.ColorTheme,
		Style:     a.StyleTheme,
		UPS:       a.UpdatesPerSecond,
		ConfigDir: a.ConfigDirectory,
	}
	if file, ok := a.CurrentFile(); ok {
		out.CurrentFile = &file
	}
	data, err := json.MarshalIndent(out, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to encode app settings: %w", err)
	}
	data = append(data, '\n')
	if err := m.backend.Write(FileName, data); err != nil {
		return fmt.Errorf("failed to save app settings: %w", err)
	}
	return m.Load()
}

// Update applies fn to the settings and saves immediately.
func (m *Manager) Update(fn func(*AppSettings)) error {
	fn(m.current)
	return m.Save()
}

// SelectFile makes KnownConfigFiles[i] current and saves.
func (m *Manager) SelectFile(i int) error {
	if i < -1 || i >= len(m.current.KnownConfigFiles) {
		return fmt.Errorf("config file index %d out of range [0, %d)", i, len(m.current.KnownConfigFiles))
	}
	return m.Update(func(a *AppSettings) { a.CurrentFileIndex = i })
}

// SelectFileName makes the named file current and saves. The file must
// exist in the config directory.
func (m *Manager) SelectFileName(file string) error {
	if err := m.Rescan(); err != nil {
		return err
	}
	i := m.current.IndexOf(file)
	if i < 0 {
		return fmt.Errorf("config file %s not found in %s", file, m.configDirName())
	}
	return m.Update(func(a *AppSettings) { a.CurrentFileIndex = i })
}

func (m *Manager) configDirName() string {
	if m.current.ConfigDirectory != "" {
		return m.current.ConfigDirectory
	}
	return m.backend.Dir()
}

// Rescan repopulates KnownConfigFiles, keeping the current file selected if
// it is still present.
func (m *Manager) Rescan() error {
	current, hadCurrent := m.current.CurrentFile()
	dir, err := m.ConfigBackend()
	if err != nil {
		return err
	}
	files, err := Scan(dir)
	m.current.KnownConfigFiles = files
	m.current.CurrentFileIndex = -1
	if hadCurrent {
		m.current.CurrentFileIndex = m.current.IndexOf(current)
	}
	return err
}
