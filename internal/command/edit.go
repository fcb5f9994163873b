package command

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/joeycumines/uat-helper/internal/settings"
)

// An edit mutates configuration settings in place. The same edits back the
// one-shot commands, which save afterwards, and the shell, which does not.
type edit func(s *settings.Settings, args []string, stdout io.Writer) error

var errUsage = errors.New("invalid arguments")

func usageError(usage string) error {
	return fmt.Errorf("%w: usage: %s", errUsage, usage)
}

const (
	platformUsage = "platform add|remove|select <name> | platform rename <old> <new> | platform list"
	versionUsage  = "version add|remove|enable|disable <name> | version rename <old> <new> | version list"
	switchUsage   = "switch add|remove|enable|disable <name> | switch rename <old> <new> | switch list"
	eventUsage    = "event pre|post add|remove|enable|disable <line> | event pre|post rename <old> <new> | event pre|post move <line> <delta> (list order only; enabled events run in saved order) | event pre|post list"
	pathUsage     = "path root|project <path>"
)

// edits maps the verbs shared by commands and the shell to their edits.
var edits = map[string]edit{
	"platform": editPlatform,
	"version":  func(s *settings.Settings, args []string, w io.Writer) error { return editEntries(s, settings.KindVersion, versionUsage, args, w) },
	"switch":   func(s *settings.Settings, args []string, w io.Writer) error { return editEntries(s, settings.KindSwitch, switchUsage, args, w) },
	"event":    editEvent,
	"path":     editPath,
}

func editPlatform(s *settings.Settings, args []string, stdout io.Writer) error {
	if len(args) == 1 && args[0] == "list" {
		selected, _ := s.Selected()
		for _, p := range s.Platforms() {
			marker := " "
			if p == selected {
				marker = "*"
			}
			_, _ = fmt.Fprintf(stdout, "%s %s\n", marker, p.Name)
		}
		return nil
	}
	if len(args) < 2 {
		return usageError(platformUsage)
	}
	name := strings.Join(args[1:], " ")

	switch args[0] {
	case "add":
		_, err := s.AddPlatform(name)
		return err
	case "rename":
		if len(args) != 3 {
			return usageError(platformUsage)
		}
		i, err := findPlatform(s, args[1])
		if err != nil {
			return err
		}
		return s.RenamePlatform(i, args[2])
	}

	i, err := findPlatform(s, name)
	if err != nil {
		return err
	}
	switch args[0] {
	case "remove":
		if err := s.DeletePlatform(i); err != nil {
			return err
		}
		if s.SelectedPlatform == i {
			selectNextLive(s, i)
		}
		return nil
	case "select":
		return s.Select(i)
	default:
		return usageError(platformUsage)
	}
}

// selectNextLive moves the selection off the tombstoned slot i to the next
// live platform, wrapping to the first.
func selectNextLive(s *settings.Settings, i int) {
	n := s.PlatformCount()
	for step := 1; step < n; step++ {
		if j := (i + step) % n; s.Select(j) == nil {
			return
		}
	}
}

func findPlatform(s *settings.Settings, name string) (int, error) {
	i, ok := s.FindPlatform(name)
	if !ok {
		return -1, &settings.NotFoundError{Kind: "platform", Ref: strconv.Quote(name)}
	}
	return i, nil
}

func editEvent(s *settings.Settings, args []string, stdout io.Writer) error {
	if len(args) < 2 {
		return usageError(eventUsage)
	}
	var k settings.Kind
	switch args[0] {
	case "pre":
		k = settings.KindPreBuild
	case "post":
		k = settings.KindPostBuild
	default:
		return usageError(eventUsage)
	}

	if args[1] == "move" {
		if len(args) != 4 {
			return usageError(eventUsage)
		}
		delta, err := strconv.Atoi(args[3])
		if err != nil {
			return fmt.Errorf("invalid move delta %q: %w", args[3], err)
		}
		ref, err := lookup(s, k, args[2])
		if err != nil {
			return err
		}
		moved, err := s.Registry(k).Move(ref, delta)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintf(stdout, "Moved %q by %d\n", args[2], moved)
		return nil
	}
	return editEntries(s, k, eventUsage, args[1:], stdout)
}

// editEntries handles the verbs common to options and build events. For
// add, remove, enable and disable the remaining arguments are joined with
// spaces, so unquoted event command lines work.
func editEntries(s *settings.Settings, k settings.Kind, usage string, args []string, stdout io.Writer) error {
	if len(args) == 1 && args[0] == "list" {
		listEntries(s, k, stdout)
		return nil
	}
	if len(args) < 2 {
		return usageError(usage)
	}
	if args[0] == "rename" {
		if len(args) != 3 {
			return usageError(usage)
		}
		ref, err := lookup(s, k, args[1])
		if err != nil {
			return err
		}
		if r := s.Registry(k); r != nil {
			return r.Rename(ref, args[2])
		}
		return optionList(s, k).Rename(ref, args[2])
	}

	name := strings.Join(args[1:], " ")
	if args[0] == "add" {
		if r := s.Registry(k); r != nil {
			_, err := r.Add(name)
			return err
		}
		_, err := optionList(s, k).Add(name)
		return err
	}

	ref, err := lookup(s, k, name)
	if err != nil {
		return err
	}
	switch args[0] {
	case "remove":
		if r := s.Registry(k); r != nil {
			return r.Delete(ref)
		}
		return optionList(s, k).Delete(ref)
	case "enable":
		return s.Enable(s.SelectedPlatform, k, ref)
	case "disable":
		return s.Disable(s.SelectedPlatform, k, ref)
	default:
		return usageError(usage)
	}
}

func listEntries(s *settings.Settings, k settings.Kind, stdout io.Writer) {
	p, _ := s.Selected()
	for _, e := range entries(s, k) {
		mark := " "
		if p != nil && p.Set(k).Has(e.ref) {
			mark = "x"
		}
		_, _ = fmt.Fprintf(stdout, "[%s] %s\n", mark, e.name)
	}
}

type entry struct {
	ref  int
	name string
}

// entries returns the live entries of kind k with their references.
func entries(s *settings.Settings, k settings.Kind) []entry {
	var out []entry
	if r := s.Registry(k); r != nil {
		for _, e := range r.Events() {
			out = append(out, entry{ref: e.ID, name: e.Name})
		}
		return out
	}
	l := optionList(s, k)
	for i := range l.Len() {
		if name, ok := l.Name(i); ok {
			out = append(out, entry{ref: i, name: name})
		}
	}
	return out
}

func lookup(s *settings.Settings, k settings.Kind, name string) (int, error) {
	ref, ok := s.Lookup(k, strings.TrimSpace(name))
	if !ok {
		return -1, &settings.NotFoundError{Kind: k.String(), Ref: strconv.Quote(name)}
	}
	return ref, nil
}

func optionList(s *settings.Settings, k settings.Kind) *settings.OptionList {
	if k == settings.KindSwitch {
		return &s.Switches
	}
	return &s.Versions
}

func editPath(s *settings.Settings, args []string, _ io.Writer) error {
	if len(args) < 2 {
		return usageError(pathUsage)
	}
	p := strings.Join(args[1:], " ")
	switch args[0] {
	case "root":
		s.SetRootPath(p)
	case "project":
		s.SetProjectPath(p)
	default:
		return usageError(pathUsage)
	}
	return nil
}
