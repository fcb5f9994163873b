package settings

// Equal reports whether a and b describe the same configuration. Options and
// events compare by the value at each slot, and enabled sets compare by the
// names they resolve to, so ids minted on different loads do not matter.
// The comparison stops at the first difference.
func Equal(a, b *Settings) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.SelectedPlatform != b.SelectedPlatform ||
		a.RootPath != b.RootPath ||
		a.ProjectPath != b.ProjectPath {
		return false
	}
	if !optionsEqual(&a.Versions, &b.Versions) ||
		!optionsEqual(&a.Switches, &b.Switches) ||
		!eventsEqual(&a.PreBuild, &b.PreBuild) ||
		!eventsEqual(&a.PostBuild, &b.PostBuild) {
		return false
	}
	if len(a.platforms) != len(b.platforms) {
		return false
	}
	for i := range a.platforms {
		pa, pb := a.platforms[i], b.platforms[i]
		if platformName(pa) != platformName(pb) {
			return false
		}
		for _, k := range Kinds {
			if !setsEqual(a, pa, b, pb, k) {
				return false
			}
		}
	}
	return true
}

func platformName(p *Platform) string {
	if p.deleted {
		return ""
	}
	return p.Name
}

func optionsEqual(a, b *OptionList) bool {
	if a.Len() != b.Len() {
		return false
	}
	for i := range a.slots {
		va, _ := a.Value(i)
		vb, _ := b.Value(i)
		if va != vb {
			return false
		}
	}
	return true
}

func eventsEqual(a, b *BuildEventRegistry) bool {
	if a.Len() != b.Len() {
		return false
	}
	for i := range a.slots {
		if a.at(i) != b.at(i) {
			return false
		}
	}
	return true
}

func setsEqual(a *Settings, pa *Platform, b *Settings, pb *Platform, k Kind) bool {
	sa, sb := *pa.Set(k), *pb.Set(k)
	if len(sa) != len(sb) {
		return false
	}
	for i := range sa {
		va, ok := a.value(k, sa[i])
		if !ok {
			return false
		}
		vb, ok := b.value(k, sb[i])
		if !ok || va != vb {
			return false
		}
	}
	return true
}

// ChangeDetector holds the last loaded or saved configuration and reports
// whether a live configuration differs from it.
type ChangeDetector struct {
	snapshot *Settings
}

// NewChangeDetector returns a detector whose snapshot is a copy of s.
func NewChangeDetector(s *Settings) *ChangeDetector {
	d := &ChangeDetector{}
	d.Reset(s)
	return d
}

// Reset replaces the snapshot with a copy of s.
func (d *ChangeDetector) Reset(s *Settings) {
	if s == nil {
		d.snapshot = nil
		return
	}
	d.snapshot = s.Clone()
}

// IsDirty reports whether live differs from the snapshot.
func (d *ChangeDetector) IsDirty(live *Settings) bool {
	return !Equal(live, d.snapshot)
}

// Snapshot returns a copy of the snapshot, or nil if none was taken.
func (d *ChangeDetector) Snapshot() *Settings {
	if d.snapshot == nil {
		return nil
	}
	return d.snapshot.Clone()
}
