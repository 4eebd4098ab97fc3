//go:build !windows

// Package process terminates the headless browser started for previews.
package process

import "syscall"

// KillTree sends SIGKILL to the process group led by pid.
// Chrome forks renderer and GPU helpers into its group; killing only the
// leader leaves them running.
func KillTree(pid int) {
	if pid <= 0 {
		return
	}
	_ = syscall.Kill(-pid, syscall.SIGKILL)
}
