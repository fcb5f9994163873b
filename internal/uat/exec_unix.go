//go:build !windows

package uat

import "os/exec"

func configureCommand(*exec.Cmd, Program) {}
