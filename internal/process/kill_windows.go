//go:build windows

// Package process terminates browser process trees left behind by the renderer.
package process

import (
	"os/exec"
	"strconv"
)

// KillTree force-kills pid and its children with taskkill /T.
func KillTree(pid int) {
	if pid <= 0 {
		return
	}
	_ = exec.Command("taskkill", "/F", "/T", "/PID", strconv.Itoa(pid)).Run()
}
