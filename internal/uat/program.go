package uat

import (
	"strings"

	"github.com/joeycumines/uat-helper/internal/argv"
)

// Program is an executable and its raw argument string.
type Program struct {
	Path string
	Args string
}

// SplitProgram separates a program line into its path and arguments. A
// path starting with a double quote extends to the closing quote; otherwise
// it ends at the first space. Both parts are trimmed of spaces and the path
// is unquoted.
func SplitProgram(line string) Program {
	line = strings.TrimLeft(line, " ")
	if line == "" {
		return Program{}
	}
	sep := byte(' ')
	if line[0] == '"' {
		sep = '"'
	}
	end := len(line)
	if i := strings.IndexByte(line[1:], sep); i >= 0 {
		end = i + 2
	}
	path := strings.Trim(line[:end], " ")
	path = strings.TrimSuffix(strings.TrimPrefix(path, `"`), `"`)
	return Program{Path: path, Args: strings.Trim(line[end:], " ")}
}

// Argv returns the arguments split with Windows quoting rules.
func (p Program) Argv() []string { return argv.Split(p.Args, argv.Windows) }

func (p Program) String() string {
	if p.Args == "" {
		return p.Path
	}
	return p.Path + " " + p.Args
}
