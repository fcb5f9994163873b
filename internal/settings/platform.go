package settings

import "slices"

// Kind selects one of the four reference lists a platform enables entries
// from.
type Kind int

const (
	// KindVersion references Settings.Versions by position.
	KindVersion Kind = iota
	// KindSwitch references Settings.Switches by position.
	KindSwitch
	// KindPreBuild references Settings.PreBuild by id.
	KindPreBuild
	// KindPostBuild references Settings.PostBuild by id.
	KindPostBuild
)

// Kinds lists every Kind in file order.
var Kinds = [...]Kind{KindVersion, KindSwitch, KindPreBuild, KindPostBuild}

func (k Kind) String() string {
	switch k {
	case KindVersion:
		return "version"
	case KindSwitch:
		return "switch"
	case KindPreBuild:
		return "pre-build event"
	case KindPostBuild:
		return "post-build event"
	default:
		return "unknown"
	}
}

// ByID reports whether references of this kind are event ids rather than
// list positions.
func (k Kind) ByID() bool { return k == KindPreBuild || k == KindPostBuild }

// EnabledSet is a set of references kept in insertion order until
// canonicalization sorts it.
type EnabledSet []int

// Has reports whether ref is in the set.
func (s EnabledSet) Has(ref int) bool { return slices.Contains(s, ref) }

// Add inserts ref and reports whether it was absent.
func (s *EnabledSet) Add(ref int) bool {
	if s.Has(ref) {
		return false
	}
	*s = append(*s, ref)
	return true
}

// Remove deletes ref and reports whether it was present.
func (s *EnabledSet) Remove(ref int) bool {
	i := slices.Index(*s, ref)
	if i < 0 {
		return false
	}
	*s = slices.Delete(*s, i, i+1)
	return true
}

// Platform is a named target holding the subset of options and events
// enabled for it.
type Platform struct {
	Name      string
	Versions  EnabledSet
	Switches  EnabledSet
	PreBuild  EnabledSet
	PostBuild EnabledSet

	deleted bool
}

// Set returns the enabled set for k.
func (p *Platform) Set(k Kind) *EnabledSet {
	switch k {
	case KindVersion:
		return &p.Versions
	case KindSwitch:
		return &p.Switches
	case KindPreBuild:
		return &p.PreBuild
	case KindPostBuild:
		return &p.PostBuild
	default:
		panic("settings: unknown kind")
	}
}

// Deleted reports whether the platform is tombstoned.
func (p *Platform) Deleted() bool { return p.deleted }

func (p *Platform) clone() *Platform {
	c := *p
	c.Versions = slices.Clone(p.Versions)
	c.Switches = slices.Clone(p.Switches)
	c.PreBuild = slices.Clone(p.PreBuild)
	c.PostBuild = slices.Clone(p.PostBuild)
	return &c
}
