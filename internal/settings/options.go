package settings

import (
	"fmt"
	"strings"
)

type optionSlot struct {
	name    string
	deleted bool
}

// OptionList is an ordered list of named options referenced by position.
// Deleting an option tombstones its slot so that positions held elsewhere
// stay valid until Compact.
type OptionList struct {
	slots []optionSlot
}

// NewOptionList returns a list holding names in order. Blank names are
// skipped.
func NewOptionList(names ...string) OptionList {
	var l OptionList
	for _, name := range names {
		if strings.TrimSpace(name) == "" {
			continue
		}
		l.slots = append(l.slots, optionSlot{name: name})
	}
	return l
}

// Len returns the number of physical slots, tombstoned ones included.
func (l *OptionList) Len() int { return len(l.slots) }

// Add appends name and returns its position.
func (l *OptionList) Add(name string) (int, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return -1, ErrEmptyName
	}
	if _, ok := l.Find(name); ok {
		return -1, fmt.Errorf("%w: %q", ErrDuplicateName, name)
	}
	l.slots = append(l.slots, optionSlot{name: name})
	return len(l.slots) - 1, nil
}

// Restore appends a loaded name without the duplicate check. Blank names
// are ignored and return -1.
func (l *OptionList) Restore(name string) int {
	if name == "" {
		return -1
	}
	l.slots = append(l.slots, optionSlot{name: name})
	return len(l.slots) - 1
}

// Name returns the name at position i. It reports false for tombstoned or
// out-of-range positions.
func (l *OptionList) Name(i int) (string, bool) {
	if i < 0 || i >= len(l.slots) || l.slots[i].deleted {
		return "", false
	}
	return l.slots[i].name, true
}

// Value returns the comparison value of position i: the name, or "" for a
// tombstoned slot. ok is false only when i is out of range.
func (l *OptionList) Value(i int) (value string, ok bool) {
	if i < 0 || i >= len(l.slots) {
		return "", false
	}
	if l.slots[i].deleted {
		return "", true
	}
	return l.slots[i].name, true
}

// Deleted reports whether position i is tombstoned.
func (l *OptionList) Deleted(i int) bool {
	return i >= 0 && i < len(l.slots) && l.slots[i].deleted
}

// Delete tombstones position i.
func (l *OptionList) Delete(i int) error {
	if _, ok := l.Name(i); !ok {
		return notFound("option", i)
	}
	l.slots[i].deleted = true
	return nil
}

// Rename changes the name at position i.
func (l *OptionList) Rename(i int, name string) error {
	if _, ok := l.Name(i); !ok {
		return notFound("option", i)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	if j, ok := l.Find(name); ok && j != i {
		return fmt.Errorf("%w: %q", ErrDuplicateName, name)
	}
	l.slots[i].name = name
	return nil
}

// Find returns the position of the first live slot named name.
func (l *OptionList) Find(name string) (int, bool) {
	for i, s := range l.slots {
		if !s.deleted && s.name == name {
			return i, true
		}
	}
	return -1, false
}

// Names returns the live names in order.
func (l *OptionList) Names() []string {
	names := make([]string, 0, len(l.slots))
	for _, s := range l.slots {
		if !s.deleted {
			names = append(names, s.name)
		}
	}
	return names
}

// Compact physically removes tombstoned slots. The returned slice maps every
// old position to its new position, or -1 for removed slots.
func (l *OptionList) Compact() []int {
	remap := make([]int, len(l.slots))
	kept := l.slots[:0]
	for i, s := range l.slots {
		if s.deleted {
			remap[i] = -1
			continue
		}
		remap[i] = len(kept)
		kept = append(kept, s)
	}
	clear(l.slots[len(kept):])
	l.slots = kept
	return remap
}

func (l OptionList) clone() OptionList {
	return OptionList{slots: append([]optionSlot(nil), l.slots...)}
}
