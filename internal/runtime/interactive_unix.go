// SPDX-License-Identifier: MPL-2.0

//go:build !windows

package runtime

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"syscall"

	"github.com/creack/pty"
	"golang.org/x/term"
)

// runInteractive starts cmd attached to a new pseudo-terminal and relays
// stdin/stdout through it. When stdin is a terminal it is put in raw mode
// and the PTY inherits its size.
func runInteractive(cmd *exec.Cmd, stdin io.Reader, stdout io.Writer) error {
	ptmx, err := pty.Start(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = ptmx.Close() }()

	if f, ok := stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		if err := pty.InheritSize(f, ptmx); err != nil {
			slog.Debug("inherit terminal size", "error", err)
		}
		state, err := term.MakeRaw(int(f.Fd()))
		if err == nil {
			defer func() { _ = term.Restore(int(f.Fd()), state) }()
		}
	}

	if stdin != nil {
		go func() { _, _ = io.Copy(ptmx, stdin) }()
	}
	if stdout == nil {
		stdout = io.Discard
	}
	// Linux returns EIO from the master once the child side is closed.
	if _, err := io.Copy(stdout, ptmx); err != nil && !errors.Is(err, syscall.EIO) {
		slog.Debug("pty copy", "error", err)
	}

	return cmd.Wait()
}
