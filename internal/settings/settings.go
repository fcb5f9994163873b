// Package settings implements the build configuration model: named option
// lists referenced by position, build event registries referenced by stable
// id, and the platforms that enable entries from both.
//
// Deletions tombstone entries in place. Canonicalize prunes references to
// tombstoned entries and physically removes them, and is run before every
// save.
package settings

import (
	"fmt"
	"strings"
)

// SchemaVersion is the configuration file version this package reads and
// writes.
const SchemaVersion = 1

// Settings is the root of a build configuration.
type Settings struct {
	SchemaVersion    int
	SelectedPlatform int
	RootPath         string
	ProjectPath      string

	Versions  OptionList
	Switches  OptionList
	PreBuild  BuildEventRegistry
	PostBuild BuildEventRegistry

	platforms []*Platform
}

// New returns an empty configuration whose event registries share one id
// source.
func New() *Settings {
	ids := new(IDSource)
	return &Settings{
		SchemaVersion: SchemaVersion,
		PreBuild:      NewBuildEventRegistry(ids),
		PostBuild:     NewBuildEventRegistry(ids),
	}
}

var (
	defaultPlatforms = []string{"Win64", "XboxOneGDK", "XSX", "PS4", "PS5"}
	defaultVersions  = []string{"Shipping", "Test", "Development", "Debug"}
	defaultSwitches  = []string{
		`AdditionalCookerOptions="-ddc=noshared"`,
		`AdditionalCookerOptions="-ddc=ddcreadonly"`,
		"distribution",
		"MapIniSectionsToCook=DevCookMaps",
		"cook",
		"NoP4",
		"manifests",
		"pak",
		"build",
		"stage",
		"compress",
		"dedicatedserver",
		"package",
		"skipcook",
		"skipbuild",
		"servertargetplatform=win64",
		"serverconfig=Development",
	}
)

// Defaults returns the seed configuration used when no valid file exists.
func Defaults() *Settings {
	s := New()
	s.Versions = NewOptionList(defaultVersions...)
	s.Switches = NewOptionList(defaultSwitches...)
	for _, name := range defaultPlatforms {
		s.platforms = append(s.platforms, &Platform{Name: name})
	}
	return s
}

// Clone returns a deep copy. The copy shares the id source, so ids minted
// through either stay unique.
func (s *Settings) Clone() *Settings {
	c := &Settings{
		SchemaVersion:    s.SchemaVersion,
		SelectedPlatform: s.SelectedPlatform,
		RootPath:         s.RootPath,
		ProjectPath:      s.ProjectPath,
		Versions:         s.Versions.clone(),
		Switches:         s.Switches.clone(),
		PreBuild:         s.PreBuild.clone(),
		PostBuild:        s.PostBuild.clone(),
		platforms:        make([]*Platform, len(s.platforms)),
	}
	for i, p := range s.platforms {
		c.platforms[i] = p.clone()
	}
	return c
}

// PlatformCount returns the number of platform slots, tombstoned ones
// included.
func (s *Settings) PlatformCount() int { return len(s.platforms) }

// Platform returns the live platform at slot i.
func (s *Settings) Platform(i int) (*Platform, bool) {
	if i < 0 || i >= len(s.platforms) || s.platforms[i].deleted {
		return nil, false
	}
	return s.platforms[i], true
}

// Platforms returns the live platforms in order.
func (s *Settings) Platforms() []*Platform {
	out := make([]*Platform, 0, len(s.platforms))
	for _, p := range s.platforms {
		if !p.deleted {
			out = append(out, p)
		}
	}
	return out
}

// FindPlatform returns the slot of the first live platform named name.
func (s *Settings) FindPlatform(name string) (int, bool) {
	for i, p := range s.platforms {
		if !p.deleted && p.Name == name {
			return i, true
		}
	}
	return -1, false
}

// AddPlatform appends a platform and returns its slot.
func (s *Settings) AddPlatform(name string) (int, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return -1, ErrEmptyName
	}
	if _, ok := s.FindPlatform(name); ok {
		return -1, fmt.Errorf("%w: %q", ErrDuplicateName, name)
	}
	s.platforms = append(s.platforms, &Platform{Name: name})
	return len(s.platforms) - 1, nil
}

// RestorePlatform appends a loaded platform without the duplicate check.
func (s *Settings) RestorePlatform(name string) *Platform {
	p := &Platform{Name: name}
	s.platforms = append(s.platforms, p)
	return p
}

// DeletePlatform tombstones the platform at slot i.
func (s *Settings) DeletePlatform(i int) error {
	p, ok := s.Platform(i)
	if !ok {
		return notFound("platform", i)
	}
	p.deleted = true
	return nil
}

// RenamePlatform changes the name of the platform at slot i.
func (s *Settings) RenamePlatform(i int, name string) error {
	p, ok := s.Platform(i)
	if !ok {
		return notFound("platform", i)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	if j, ok := s.FindPlatform(name); ok && j != i {
		return fmt.Errorf("%w: %q", ErrDuplicateName, name)
	}
	p.Name = name
	return nil
}

// Select makes the live platform at slot i the selected one.
func (s *Settings) Select(i int) error {
	if _, ok := s.Platform(i); !ok {
		return notFound("platform", i)
	}
	s.SelectedPlatform = i
	return nil
}

// Selected returns the selected platform, if it is live.
func (s *Settings) Selected() (*Platform, bool) {
	return s.Platform(s.SelectedPlatform)
}

// ClampSelection forces SelectedPlatform into [0, PlatformCount()), or 0
// when there are no platforms.
func (s *Settings) ClampSelection() {
	if s.SelectedPlatform >= len(s.platforms) {
		s.SelectedPlatform = len(s.platforms) - 1
	}
	if s.SelectedPlatform < 0 {
		s.SelectedPlatform = 0
	}
}

// options returns the positional list for k, or nil for id-based kinds.
func (s *Settings) options(k Kind) *OptionList {
	switch k {
	case KindVersion:
		return &s.Versions
	case KindSwitch:
		return &s.Switches
	}
	return nil
}

// Registry returns the event registry for an id-based kind, or nil.
func (s *Settings) Registry(k Kind) *BuildEventRegistry {
	switch k {
	case KindPreBuild:
		return &s.PreBuild
	case KindPostBuild:
		return &s.PostBuild
	}
	return nil
}

// Resolve returns the live name referenced by ref.
func (s *Settings) Resolve(k Kind, ref int) (string, bool) {
	if r := s.Registry(k); r != nil {
		e, ok := r.FindByID(ref)
		return e.Name, ok
	}
	return s.options(k).Name(ref)
}

// value is Resolve for comparison: tombstoned references yield "".
func (s *Settings) value(k Kind, ref int) (string, bool) {
	if r := s.Registry(k); r != nil {
		return r.Value(ref)
	}
	return s.options(k).Value(ref)
}

// Lookup returns the reference of the first live entry of kind k named
// name.
func (s *Settings) Lookup(k Kind, name string) (int, bool) {
	if r := s.Registry(k); r != nil {
		e, ok := r.FindByName(name)
		return e.ID, ok
	}
	return s.options(k).Find(name)
}

// Enable adds ref to the platform's set for k. The reference must resolve.
func (s *Settings) Enable(platform int, k Kind, ref int) error {
	p, ok := s.Platform(platform)
	if !ok {
		return notFound("platform", platform)
	}
	if _, ok := s.Resolve(k, ref); !ok {
		return notFound(k.String(), ref)
	}
	p.Set(k).Add(ref)
	return nil
}

// Disable removes ref from the platform's set for k.
func (s *Settings) Disable(platform int, k Kind, ref int) error {
	p, ok := s.Platform(platform)
	if !ok {
		return notFound("platform", platform)
	}
	p.Set(k).Remove(ref)
	return nil
}

// EnabledNames resolves the platform's set for k to names, in stored order.
// Unresolvable references are skipped.
func (s *Settings) EnabledNames(p *Platform, k Kind) []string {
	set := *p.Set(k)
	names := make([]string, 0, len(set))
	for _, ref := range set {
		if name, ok := s.Resolve(k, ref); ok {
			names = append(names, name)
		}
	}
	return names
}
