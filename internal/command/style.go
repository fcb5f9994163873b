package command

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// styler colours status markers when the color mode and output allow it.
type styler struct {
	dirty lipgloss.Style
	clean lipgloss.Style
	warn  lipgloss.Style
}

// newStyler resolves mode (auto, always or never) against w. Auto colours
// only a terminal.
func newStyler(w io.Writer, mode string) *styler {
	r := lipgloss.NewRenderer(w)
	if colorEnabled(w, mode) {
		r.SetColorProfile(termenv.ANSI)
	} else {
		r.SetColorProfile(termenv.Ascii)
	}
	return &styler{
		dirty: r.NewStyle().Foreground(lipgloss.Color("3")).Bold(true),
		clean: r.NewStyle().Foreground(lipgloss.Color("2")),
		warn:  r.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
	}
}

func colorEnabled(w io.Writer, mode string) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// marker returns "*" styled as dirty, or "" when clean.
func (s *styler) marker(dirty bool) string {
	if !dirty {
		return ""
	}
	return s.dirty.Render("*")
}
