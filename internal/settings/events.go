package settings

import (
	"fmt"
	"strings"
)

// IDSource mints build event ids. Ids start at 1 and are never reused.
// A zero IDSource is ready to use.
type IDSource struct {
	last int
}

// Next returns a fresh id.
func (s *IDSource) Next() int {
	s.last++
	return s.last
}

// BuildEvent is an external program run before or after a build.
type BuildEvent struct {
	ID   int
	Name string
}

type eventSlot struct {
	BuildEvent
	deleted bool
}

// BuildEventRegistry is an ordered list of build events referenced by id.
// Ids survive reordering and compaction.
type BuildEventRegistry struct {
	ids   *IDSource
	slots []eventSlot
}

// NewBuildEventRegistry creates a registry drawing ids from ids. A nil
// source gives the registry a private one.
func NewBuildEventRegistry(ids *IDSource) BuildEventRegistry {
	if ids == nil {
		ids = new(IDSource)
	}
	return BuildEventRegistry{ids: ids}
}

// Len returns the number of physical slots, tombstoned ones included.
func (r *BuildEventRegistry) Len() int { return len(r.slots) }

// Add appends a new event and returns its freshly minted id. The name is
// trimmed of surrounding spaces.
func (r *BuildEventRegistry) Add(name string) (int, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, ErrEmptyName
	}
	if _, ok := r.FindByName(name); ok {
		return 0, fmt.Errorf("%w: %q", ErrDuplicateName, name)
	}
	if r.ids == nil {
		r.ids = new(IDSource)
	}
	id := r.ids.Next()
	r.slots = append(r.slots, eventSlot{BuildEvent: BuildEvent{ID: id, Name: name}})
	return id, nil
}

// Restore appends a loaded event without the duplicate check, minting a
// fresh id. Blank names are ignored and return 0.
func (r *BuildEventRegistry) Restore(name string) int {
	if name == "" {
		return 0
	}
	if r.ids == nil {
		r.ids = new(IDSource)
	}
	id := r.ids.Next()
	r.slots = append(r.slots, eventSlot{BuildEvent: BuildEvent{ID: id, Name: name}})
	return id
}

func (r *BuildEventRegistry) slotOf(id int) int {
	for i, s := range r.slots {
		if s.ID == id {
			return i
		}
	}
	return -1
}

// FindByID returns the live event with the given id.
func (r *BuildEventRegistry) FindByID(id int) (BuildEvent, bool) {
	i := r.slotOf(id)
	if i < 0 || r.slots[i].deleted {
		return BuildEvent{}, false
	}
	return r.slots[i].BuildEvent, true
}

// FindByName returns the first live event named name.
func (r *BuildEventRegistry) FindByName(name string) (BuildEvent, bool) {
	for _, s := range r.slots {
		if !s.deleted && s.Name == name {
			return s.BuildEvent, true
		}
	}
	return BuildEvent{}, false
}

// Value returns the comparison value for id: the name, or "" when the slot
// is tombstoned. ok is false when no slot holds id.
func (r *BuildEventRegistry) Value(id int) (value string, ok bool) {
	i := r.slotOf(id)
	if i < 0 {
		return "", false
	}
	if r.slots[i].deleted {
		return "", true
	}
	return r.slots[i].Name, true
}

// at returns the comparison value of physical slot i.
func (r *BuildEventRegistry) at(i int) string {
	if r.slots[i].deleted {
		return ""
	}
	return r.slots[i].Name
}

// Delete tombstones the event. Its id stays reserved.
func (r *BuildEventRegistry) Delete(id int) error {
	i := r.slotOf(id)
	if i < 0 || r.slots[i].deleted {
		return notFound("build event", id)
	}
	r.slots[i].deleted = true
	return nil
}

// Rename changes the name of a live event.
func (r *BuildEventRegistry) Rename(id int, name string) error {
	i := r.slotOf(id)
	if i < 0 || r.slots[i].deleted {
		return notFound("build event", id)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	if other, ok := r.FindByName(name); ok && other.ID != id {
		return fmt.Errorf("%w: %q", ErrDuplicateName, name)
	}
	r.slots[i].Name = name
	return nil
}

// Move shifts a live event by delta places among the live events; negative
// moves towards the front. Tombstoned slots keep their physical positions.
// It returns the number of places actually moved.
func (r *BuildEventRegistry) Move(id, delta int) (int, error) {
	p := r.slotOf(id)
	if p < 0 || r.slots[p].deleted {
		return 0, notFound("build event", id)
	}
	step := 1
	if delta < 0 {
		step, delta = -1, -delta
	}
	moved := 0
	for ; moved < delta; moved++ {
		q := p + step
		for q >= 0 && q < len(r.slots) && r.slots[q].deleted {
			q += step
		}
		if q < 0 || q >= len(r.slots) {
			break
		}
		r.slots[p], r.slots[q] = r.slots[q], r.slots[p]
		p = q
	}
	return moved * step, nil
}

// Events returns the live events in order.
func (r *BuildEventRegistry) Events() []BuildEvent {
	events := make([]BuildEvent, 0, len(r.slots))
	for _, s := range r.slots {
		if !s.deleted {
			events = append(events, s.BuildEvent)
		}
	}
	return events
}

// Names returns the live event names in order.
func (r *BuildEventRegistry) Names() []string {
	names := make([]string, 0, len(r.slots))
	for _, s := range r.slots {
		if !s.deleted {
			names = append(names, s.Name)
		}
	}
	return names
}

// Compact physically drops tombstoned events. References are by id, so no
// remapping is needed.
func (r *BuildEventRegistry) Compact() {
	kept := r.slots[:0]
	for _, s := range r.slots {
		if !s.deleted {
			kept = append(kept, s)
		}
	}
	clear(r.slots[len(kept):])
	r.slots = kept
}

func (r BuildEventRegistry) clone() BuildEventRegistry {
	return BuildEventRegistry{ids: r.ids, slots: append([]eventSlot(nil), r.slots...)}
}
