//go:build windows

package uat

import (
	"os/exec"
	"syscall"

	"golang.org/x/sys/windows"
)

// configureCommand hands the raw argument string to CreateProcess, so
// arguments such as -AdditionalCookerOptions="-ddc=noshared" reach the
// program exactly as written.
func configureCommand(cmd *exec.Cmd, p Program) {
	line := windows.EscapeArg(p.Path)
	if p.Args != "" {
		line += " " + p.Args
	}
	cmd.SysProcAttr = &syscall.SysProcAttr{CmdLine: line}
}
