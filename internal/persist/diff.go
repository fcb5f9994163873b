package persist

import (
	"github.com/pmezard/go-difflib/difflib"
)

// UnifiedDiff returns a unified diff of a and b with three lines of
// context, or "" when they are equal.
func UnifiedDiff(a, b []byte, fromName, toName string) (string, error) {
	if string(a) == string(b) {
		return "", nil
	}
	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(a)),
		B:        difflib.SplitLines(string(b)),
		FromFile: fromName,
		ToFile:   toName,
		Context:  3,
	})
}

// CanonicalDiff compares the named file as stored with the file Save would
// write for it. An empty diff means the file is already canonical.
func (e *Engine) CanonicalDiff(file string) (string, error) {
	stored, err := e.backend.Read(file)
	if err != nil {
		return "", err
	}
	s, _ := Decode(stored, nil)
	canonical, err := Encode(s)
	if err != nil {
		return "", err
	}
	return UnifiedDiff(stored, canonical, file, file+" (canonical)")
}
