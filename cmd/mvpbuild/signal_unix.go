//go:build !windows

package main

import (
	"os"
	"syscall"
)

// shutdownSignals stop the server and abort builds in progress.
var shutdownSignals = []os.Signal{os.Interrupt, syscall.SIGTERM}
