package persist

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/joeycumines/uat-helper/internal/settings"
)

// Result describes how a load went.
type Result struct {
	// Defaulted is set when the file was missing, malformed or of another
	// schema version and defaults were used instead. Cause says why.
	Defaulted bool
	Cause     error

	// Problems are the non-fatal conditions found, in order. Each was also
	// sent to the Reporter.
	Problems []Problem
}

type decoder struct {
	settings *settings.Settings
	reporter Reporter
	result   *Result
}

func (d *decoder) problem(p Problem) {
	d.result.Problems = append(d.result.Problems, p)
	if d.reporter != nil {
		d.reporter.Report(p.Title(), p.Error())
	}
}

func defaulted(cause error) (*settings.Settings, *Result) {
	return settings.Defaults(), &Result{Defaulted: true, Cause: cause}
}

// Decode parses a configuration file. Dangling references, fields of the
// wrong type and an empty platform list are sent to r and skipped; the rest
// of the file still loads. A file that is not JSON, or carries another
// schema version, yields the defaults.
func Decode(data []byte, r Reporter) (*settings.Settings, *Result) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil || fields == nil {
		if err == nil {
			err = errors.New("top level value is not an object")
		}
		return defaulted(fmt.Errorf("%w: %v", ErrMalformed, err))
	}

	var version int
	raw, ok := fields[keyVersion]
	if !ok || isNull(raw) {
		return defaulted(&SchemaMismatchError{Want: settings.SchemaVersion})
	}
	if err := json.Unmarshal(raw, &version); err != nil || version != settings.SchemaVersion {
		return defaulted(&SchemaMismatchError{Found: string(bytes.TrimSpace(raw)), Want: settings.SchemaVersion})
	}

	d := &decoder{settings: settings.New(), reporter: r, result: &Result{}}
	s := d.settings

	d.scalar(fields, keySelection, &s.SelectedPlatform)
	d.scalar(fields, keyRootPath, &s.RootPath)
	d.scalar(fields, keyProjectPath, &s.ProjectPath)

	for _, name := range d.names(fields[keyVersions], keyVersions) {
		s.Versions.Restore(name)
	}
	for _, name := range d.names(fields[keySwitches], keySwitches) {
		s.Switches.Restore(name)
	}
	for _, name := range d.names(fields[keyPreBuild], keyPreBuild) {
		s.PreBuild.Restore(name)
	}
	for _, name := range d.names(fields[keyPostBuild], keyPostBuild) {
		s.PostBuild.Restore(name)
	}

	if raw, ok := fields[keyPlatforms]; ok && !isNull(raw) {
		if err := d.platforms(raw); err != nil {
			d.problem(&InvalidFieldError{Key: keyPlatforms, Reason: err.Error()})
		}
	}

	s.ClampSelection()
	if s.PlatformCount() == 0 {
		d.problem(&EmptyPlatformListError{})
	}
	return s, d.result
}

func isNull(raw json.RawMessage) bool {
	return len(raw) == 0 || string(bytes.TrimSpace(raw)) == "null"
}

func (d *decoder) scalar(fields map[string]json.RawMessage, key string, dst any) {
	raw, ok := fields[key]
	if !ok || isNull(raw) {
		return
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		d.problem(&InvalidFieldError{Key: key, Reason: err.Error()})
	}
}

// names decodes a list of strings. Non-string elements are reported and
// dropped. Empty strings are dropped silently.
func (d *decoder) names(raw json.RawMessage, key string) []string {
	if isNull(raw) {
		return nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		d.problem(&InvalidFieldError{Key: key, Reason: "expected a list of strings"})
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		var name string
		if err := json.Unmarshal(item, &name); err != nil {
			d.problem(&InvalidFieldError{Key: key, Reason: fmt.Sprintf("ignoring non-string entry %s", item)})
			continue
		}
		if name != "" {
			out = append(out, name)
		}
	}
	return out
}

// platforms walks the platform object with a token decoder so blocks load
// in file order.
func (d *decoder) platforms(raw json.RawMessage) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return errors.New("expected an object keyed by platform name")
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name := tok.(string)
		var block json.RawMessage
		if err := dec.Decode(&block); err != nil {
			return err
		}
		d.platform(name, block)
	}
	if _, err := dec.Token(); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func (d *decoder) platform(name string, raw json.RawMessage) {
	s := d.settings
	if name == "" {
		d.problem(&InvalidFieldError{Key: keyPlatforms, Reason: "ignoring platform with an empty name"})
		return
	}
	if _, dup := s.FindPlatform(name); dup {
		d.problem(&InvalidFieldError{Key: keyPlatforms, Reason: fmt.Sprintf("ignoring duplicate platform '%s'", name)})
		return
	}
	p := s.RestorePlatform(name)
	if isNull(raw) {
		return
	}
	var block map[string]json.RawMessage
	if err := json.Unmarshal(raw, &block); err != nil {
		d.problem(&InvalidFieldError{Key: name, Reason: "expected an object"})
		return
	}
	for _, k := range settings.Kinds {
		key := enabledKeys[k]
		for _, ref := range d.names(block[key], key) {
			id, ok := s.Lookup(k, ref)
			if !ok {
				d.problem(&DanglingReferenceError{Platform: name, Key: key, Name: ref})
				continue
			}
			p.Set(k).Add(id)
		}
	}
}
