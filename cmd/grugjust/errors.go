// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"grugjust/internal/issue"
	"grugjust/pkg/recipe"
)

// fail renders err to the app's stderr and returns an ExitError with code 1.
// Usage and cobra's own error printing are silenced.
func fail(cmd *cobra.Command, app *App, err error, verbose bool) error {
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	renderError(app.stderr, app.markdownStyle, err, verbose)
	return &ExitError{Code: 1, Err: err}
}

// handleError is the fang error handler. An ExitError has already been
// reported, either by fail or by the tool itself, so it prints nothing.
func handleError(w io.Writer, styles fang.Styles, err error) {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return
	}
	fang.DefaultErrorHandler(w, styles, err)
}

// renderError prints err. Unknown recipes get a listing hint; actionable
// errors are formatted with their suggestions and, in verbose mode, the
// linked issue catalog entry.
func renderError(w io.Writer, style string, err error, verbose bool) {
	fmt.Fprintln(w, ErrorStyle.Render("error: ")+formatErrorForDisplay(err, verbose))

	var notFound *recipe.NotFoundError
	if errors.As(err, &notFound) {
		fmt.Fprintln(w, SubtitleStyle.Render("Run 'grugjust --list' to see available recipes."))
		if verbose {
			renderIssue(w, style, issue.Get(issue.RecipeNotFoundId))
		}
		return
	}

	var ae *issue.ActionableError
	if verbose && errors.As(err, &ae) {
		renderIssue(w, style, ae.Issue())
	}
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verbose bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verbose)
	}
	return err.Error()
}

// renderIssue prints a catalog entry with glamour.
func renderIssue(w io.Writer, style string, entry *issue.Issue) {
	if entry == nil {
		return
	}
	rendered, err := entry.Render(style)
	if err != nil {
		slog.Warn("failed to render issue catalog entry", "issueID", entry.Id(), "error", err)
		return
	}
	fmt.Fprint(w, rendered)
}
