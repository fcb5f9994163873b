// Package argv splits command lines into arguments, either with POSIX shell
// rules (for interactive input) or Windows rules (for the program lines of
// build events, where backslashes are path separators).
package argv

import (
	"iter"
	"strings"
)

// Mode selects the quoting rules.
type Mode int

const (
	// Shell rules:
	// - Unquoted spaces/tabs/newlines split tokens.
	// - Single quotes preserve contents literally until the next single quote.
	// - Double quotes preserve contents; backslash escapes only: $, `, ", \\, or newline.
	// - Outside quotes, backslash escapes the following rune; backslash-newline is removed.
	Shell Mode = iota

	// Windows rules:
	// - Unquoted spaces/tabs split tokens.
	// - Double quotes group; `\"` is a literal quote, inside or outside quotes.
	// - Every other backslash, and every single quote, is literal.
	Windows
)

// ArgsSeq yields the arguments of s.
func ArgsSeq(s string, mode Mode) iter.Seq[string] {
	return func(yield func(string) bool) {
		var (
			buf      strings.Builder
			inToken  bool
			inSingle bool
			inDouble bool
		)
		runes := []rune(s)
		for i := 0; i < len(runes); i++ {
			r := runes[i]
			switch {
			case inSingle:
				if r == '\'' {
					inSingle = false
				} else {
					buf.WriteRune(r)
				}

			case r == '\\' && mode == Shell:
				if i+1 >= len(runes) {
					buf.WriteRune(r)
					inToken = true
					continue
				}
				next := runes[i+1]
				if inDouble && !strings.ContainsRune("$`\"\\\n", next) {
					buf.WriteRune(r)
					inToken = true
					continue
				}
				i++
				if next != '\n' {
					buf.WriteRune(next)
					inToken = true
				}

			case r == '\\' && mode == Windows:
				if i+1 < len(runes) && runes[i+1] == '"' {
					i++
					buf.WriteRune('"')
				} else {
					buf.WriteRune(r)
				}
				inToken = true

			case r == '"':
				inDouble = !inDouble
				inToken = true

			case r == '\'' && mode == Shell && !inDouble:
				inSingle = true
				inToken = true

			case !inDouble && (r == ' ' || r == '\t' || r == '\n' || r == '\r'):
				if inToken {
					if !yield(buf.String()) {
						return
					}
					buf.Reset()
					inToken = false
				}

			default:
				buf.WriteRune(r)
				inToken = true
			}
		}
		if inToken {
			yield(buf.String())
		}
	}
}

// Split collects ArgsSeq into a slice.
func Split(s string, mode Mode) []string {
	out := make([]string, 0, 4)
	for a := range ArgsSeq(s, mode) {
		out = append(out, a)
	}
	return out
}

// ParseSlice splits s with Shell rules.
func ParseSlice(s string) []string { return Split(s, Shell) }
