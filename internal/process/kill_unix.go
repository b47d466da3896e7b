//go:build !windows

// Package process terminates browser process trees left behind by the renderer.
package process

import "syscall"

// KillTree sends SIGKILL to the process group led by pid, taking Chrome's
// renderer and GPU helpers down with the main browser process.
// Non-positive pids are ignored: -0 would target our own group.
func KillTree(pid int) {
	if pid <= 0 {
		return
	}
	_ = syscall.Kill(-pid, syscall.SIGKILL)
}
