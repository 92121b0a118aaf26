// SPDX-License-Identifier: MPL-2.0

//go:build !unix

package platform

import (
	"os/exec"
	"time"
)

// InterruptOnCancel bounds how long a cancelled command may hold its pipes.
// os.Interrupt cannot be delivered to a child here, so cancellation kills it.
func InterruptOnCancel(cmd *exec.Cmd, grace time.Duration) {
	if cmd.Cancel == nil {
		return
	}
	cmd.WaitDelay = grace
}
