//go:build windows

package command

import (
	"os/exec"
	"syscall"
)

// CREATE_NO_WINDOW keeps w32tm and cmd from flashing a console window.
const CREATE_NO_WINDOW = 0x08000000

func hideWindow(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{
		CreationFlags: CREATE_NO_WINDOW,
		HideWindow:    true,
	}
}
