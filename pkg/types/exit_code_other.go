// SPDX-License-Identifier: MPL-2.0

//go:build !unix

package types

import "os/exec"

func signalExitCode(*exec.ExitError) (ExitCode, bool) { return 0, false }
