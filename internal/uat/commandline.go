// Package uat turns a build configuration into a RunUAT BuildCookRun
// invocation and runs it, with the enabled build events, on a job pool.
package uat

import (
	"strings"

	"github.com/joeycumines/uat-helper/internal/settings"
)

// BatchFile is the path of RunUAT relative to the engine root.
const BatchFile = "Engine/Build/BatchFiles/RunUAT.bat"

const (
	minRootPathLen    = 3
	minProjectPathLen = 10
)

// ValidationError explains why no command line can be built. Its message is
// shown in place of the command line.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

var (
	ErrInvalidRootPath    = &ValidationError{Reason: "Invalid Main Directory"}
	ErrInvalidProjectPath = &ValidationError{Reason: "Invalid Project Path"}
	ErrInvalidPlatforms   = &ValidationError{Reason: "Invalid Platform Options"}
	ErrNoVersionSelected  = &ValidationError{Reason: "Invalid Version Selected"}
)

// Validate returns the first problem found, checking the root path, the
// project path, the platforms and the selected platform's versions in that
// order.
func Validate(s *settings.Settings) error {
	switch {
	case len(s.RootPath) < minRootPathLen:
		return ErrInvalidRootPath
	case len(s.ProjectPath) < minProjectPathLen:
		return ErrInvalidProjectPath
	}
	p, ok := s.Selected()
	if !ok {
		return ErrInvalidPlatforms
	}
	if len(s.EnabledNames(p, settings.KindVersion)) == 0 {
		return ErrNoVersionSelected
	}
	return nil
}

// CommandLine returns the BuildCookRun command line for the selected
// platform. Versions and switches appear in stored order.
func CommandLine(s *settings.Settings) (string, error) {
	if err := Validate(s); err != nil {
		return "", err
	}
	p, _ := s.Selected()

	var b strings.Builder
	b.WriteString(s.RootPath)
	b.WriteString(BatchFile)
	b.WriteString(" BuildCookRun -project=")
	b.WriteString(s.ProjectPath)
	b.WriteString(" -targetplatform=")
	b.WriteString(p.Name)
	b.WriteString(" -clientconfig=")
	b.WriteString(strings.Join(s.EnabledNames(p, settings.KindVersion), "+"))
	b.WriteString(" -servertargetplatform=win64 -serverconfig=Development")
	for _, sw := range s.EnabledNames(p, settings.KindSwitch) {
		b.WriteString(" -")
		b.WriteString(sw)
	}
	return b.String(), nil
}
