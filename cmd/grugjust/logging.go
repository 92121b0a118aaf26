// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"io"
	"log/slog"

	"github.com/charmbracelet/log"
)

// newLogger returns a slog logger backed by a charmbracelet/log handler.
// Verbose mode logs at debug level; otherwise only warnings and errors.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := log.WarnLevel
	if verbose {
		level = log.DebugLevel
	}
	handler := log.NewWithOptions(w, log.Options{
		Prefix: "grugjust",
		Level:  level,
	})
	return slog.New(handler)
}

// setupLogging installs the logger as the slog default.
func setupLogging(w io.Writer, verbose bool) {
	slog.SetDefault(newLogger(w, verbose))
}
