// SPDX-License-Identifier: MPL-2.0

//go:build windows

package runtime

import (
	"io"
	"log/slog"
	"os/exec"
)

// runInteractive runs cmd with plain stdio; pseudo-terminals are not supported on Windows.
func runInteractive(cmd *exec.Cmd, stdin io.Reader, stdout io.Writer) error {
	slog.Warn("interactive mode is not supported on Windows, running without a terminal")
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	cmd.Stderr = stdout
	return cmd.Run()
}
