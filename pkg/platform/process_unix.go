// SPDX-License-Identifier: MPL-2.0

//go:build unix

package platform

import (
	"os"
	"os/exec"
	"time"
)

// InterruptOnCancel makes a context-bound command receive os.Interrupt
// instead of SIGKILL when its context is cancelled. The process is killed
// only if it is still running after grace.
//
// Commands built without a context are left untouched.
func InterruptOnCancel(cmd *exec.Cmd, grace time.Duration) {
	if cmd.Cancel == nil {
		return
	}
	cmd.Cancel = func() error {
		return cmd.Process.Signal(os.Interrupt)
	}
	cmd.WaitDelay = grace
}
