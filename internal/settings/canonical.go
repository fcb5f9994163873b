package settings

import (
	"slices"
)

// Prune drops every enabled reference whose target is tombstoned or
// missing. It must run before Compact on the referenced lists.
func (s *Settings) Prune() {
	for _, p := range s.platforms {
		for _, k := range Kinds {
			set := p.Set(k)
			*set = slices.DeleteFunc(*set, func(ref int) bool {
				_, ok := s.Resolve(k, ref)
				return !ok
			})
		}
	}
}

// Canonicalize brings s into the form it is written in: references pruned,
// tombstones removed with positions remapped, enabled sets sorted in
// descending order and the selection clamped. Two semantically equal
// configurations canonicalize to the same value.
func (s *Settings) Canonicalize() {
	s.Prune()

	versions := s.Versions.Compact()
	switches := s.Switches.Compact()
	s.PreBuild.Compact()
	s.PostBuild.Compact()

	kept := s.platforms[:0]
	selected := s.SelectedPlatform
	for i, p := range s.platforms {
		if p.deleted {
			if i < s.SelectedPlatform {
				selected--
			}
			continue
		}
		remap(&p.Versions, versions)
		remap(&p.Switches, switches)
		for _, k := range Kinds {
			sortDescending(*p.Set(k))
		}
		kept = append(kept, p)
	}
	clear(s.platforms[len(kept):])
	s.platforms = kept
	s.SelectedPlatform = selected
	s.ClampSelection()
}

func remap(set *EnabledSet, positions []int) {
	out := (*set)[:0]
	for _, ref := range *set {
		if ref >= 0 && ref < len(positions) && positions[ref] >= 0 {
			out = append(out, positions[ref])
		}
	}
	*set = out
}

func sortDescending(set EnabledSet) {
	slices.SortFunc(set, func(a, b int) int { return b - a })
}
