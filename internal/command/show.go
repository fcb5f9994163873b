package command

import (
	"errors"
	"fmt"
	"io"

	"github.com/joeycumines/uat-helper/internal/persist"
	"github.com/joeycumines/uat-helper/internal/settings"
	"github.com/joeycumines/uat-helper/internal/uat"
)

var kindTitles = map[settings.Kind]string{
	settings.KindVersion:   "Versions",
	settings.KindSwitch:    "Switches",
	settings.KindPreBuild:  "Pre-build events",
	settings.KindPostBuild: "Post-build events",
}

// renderDocument prints the document for reading: paths, platforms, every
// option list with the selected platform's marks, and the command line.
func renderDocument(w io.Writer, doc *persist.Document, st *styler) {
	s := doc.Settings()
	_, _ = fmt.Fprintf(w, "File: %s%s\n", doc.File(), st.marker(doc.Dirty()))
	_, _ = fmt.Fprintf(w, "Root path: %s\n", s.RootPath)
	_, _ = fmt.Fprintf(w, "Project path: %s\n", s.ProjectPath)

	_, _ = fmt.Fprintln(w, "\nPlatforms:")
	_ = editPlatform(s, []string{"list"}, w)

	for _, k := range settings.Kinds {
		_, _ = fmt.Fprintf(w, "\n%s:\n", kindTitles[k])
		listEntries(s, k, w)
	}

	_, _ = fmt.Fprintln(w, "\nCommand line:")
	line, err := uat.CommandLine(s)
	var verr *uat.ValidationError
	switch {
	case errors.As(err, &verr):
		_, _ = fmt.Fprintln(w, st.warn.Render(verr.Reason))
	case err != nil:
		_, _ = fmt.Fprintln(w, st.warn.Render(err.Error()))
	default:
		_, _ = fmt.Fprintln(w, line)
	}
}

// ShowCommand prints the current configuration file.
type ShowCommand struct {
	*BaseCommand
	env *Env
}

func NewShowCommand(env *Env) *ShowCommand {
	return &ShowCommand{
		BaseCommand: NewBaseCommand("show", "Show the current configuration", "show"),
		env:         env,
	}
}

func (c *ShowCommand) Execute(args []string, stdout, stderr io.Writer) error {
	if len(args) > 0 {
		return fmt.Errorf("unexpected arguments: %v", args)
	}
	doc, err := c.env.open(stderr)
	if err != nil {
		return err
	}
	renderDocument(stdout, doc, newStyler(stdout, c.env.Color))
	return nil
}
