// SPDX-License-Identifier: MPL-2.0

//go:build unix

package types

import (
	"os/exec"
	"syscall"
)

// signalBase is added to the signal number of a signalled process.
const signalBase = 128

func signalExitCode(exitErr *exec.ExitError) (ExitCode, bool) {
	ws, ok := exitErr.Sys().(syscall.WaitStatus)
	if !ok || !ws.Signaled() {
		return 0, false
	}
	return ExitCode(signalBase + int(ws.Signal())), true
}
