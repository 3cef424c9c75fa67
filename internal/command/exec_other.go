//go:build !windows

package command

import "os/exec"

func hideWindow(cmd *exec.Cmd) {}
