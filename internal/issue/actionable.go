// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/exp/slices"
)

type (
	// ActionableError reports a failed operation together with what the
	// user can do about it: the file or tool involved, hints, and an
	// optional catalog entry shown in verbose mode.
	//
	//	return issue.NewErrorContext().
	//		WithOperation("load recipes").
	//		WithResource(path).
	//		WithSuggestion("Check the file against the recipe schema").
	//		WithIssue(issue.RecipesFileParseErrorId).
	//		Wrap(err).
	//		BuildError()
	ActionableError struct {
		// Operation is a verb phrase such as "load recipes" or "run cargo".
		Operation   string
		Resource    string
		Suggestions []string
		Cause       error
		IssueId     Id
	}

	// ErrorContext accumulates the fields of an ActionableError. A context
	// may be reused; every BuildError call snapshots it.
	ErrorContext struct {
		pending ActionableError
	}
)

// NewErrorContext returns an empty builder.
func NewErrorContext() *ErrorContext {
	return &ErrorContext{}
}

// Error renders "failed to <operation>[: <resource>][: <cause>]".
func (e *ActionableError) Error() string {
	parts := []string{"failed to " + e.Operation}
	if e.Resource != "" {
		parts = append(parts, e.Resource)
	}
	if e.Cause != nil {
		parts = append(parts, e.Cause.Error())
	}
	return strings.Join(parts, ": ")
}

func (e *ActionableError) Unwrap() error {
	return e.Cause
}

// Format renders the error followed by one bullet per suggestion. Verbose
// output also numbers every error in the cause chain.
func (e *ActionableError) Format(verbose bool) string {
	var b strings.Builder
	b.WriteString(e.Error())

	if len(e.Suggestions) > 0 {
		b.WriteByte('\n')
		for _, s := range e.Suggestions {
			b.WriteString("\n  • " + s)
		}
	}

	if verbose && e.Cause != nil {
		b.WriteString("\n\nError chain:")
		for depth, err := 1, e.Cause; err != nil; depth, err = depth+1, errors.Unwrap(err) {
			fmt.Fprintf(&b, "\n  %d. %s", depth, err)
		}
	}
	return b.String()
}

// Issue returns the linked catalog entry, or nil.
func (e *ActionableError) Issue() *Issue {
	return Get(e.IssueId)
}

func (c *ErrorContext) WithOperation(op string) *ErrorContext {
	c.pending.Operation = op
	return c
}

func (c *ErrorContext) WithResource(res string) *ErrorContext {
	c.pending.Resource = res
	return c
}

// WithSuggestion appends a hint; hints are shown in the order added.
func (c *ErrorContext) WithSuggestion(hint string) *ErrorContext {
	c.pending.Suggestions = append(c.pending.Suggestions, hint)
	return c
}

func (c *ErrorContext) WithIssue(id Id) *ErrorContext {
	c.pending.IssueId = id
	return c
}

func (c *ErrorContext) Wrap(err error) *ErrorContext {
	c.pending.Cause = err
	return c
}

// BuildError returns the accumulated *ActionableError. Without an
// operation there is nothing to explain, so the wrapped cause (possibly
// nil) is returned unchanged.
func (c *ErrorContext) BuildError() error {
	if c.pending.Operation == "" {
		return c.pending.Cause
	}
	ae := c.pending
	ae.Suggestions = slices.Clone(c.pending.Suggestions)
	return &ae
}
