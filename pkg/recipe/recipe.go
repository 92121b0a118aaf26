// SPDX-License-Identifier: MPL-2.0

package recipe

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"grugjust/pkg/types"

	"mvdan.cc/sh/v3/syntax"
)

const (
	// KindList prints the recipe book.
	KindList Kind = "list"
	// KindExec runs an argv directly on the host, without a shell.
	KindExec Kind = "exec"
	// KindShell interprets a POSIX shell script in-process.
	KindShell Kind = "shell"
	// KindOptimize runs the containerized contract optimizer.
	KindOptimize Kind = "optimize"
)

var (
	// ErrInvalidName is the sentinel error wrapped by InvalidNameError.
	ErrInvalidName = errors.New("invalid recipe name")
	// ErrInvalidKind is the sentinel error wrapped by InvalidKindError.
	ErrInvalidKind = errors.New("invalid recipe kind")
	// ErrInvalidRecipe is the sentinel error wrapped by InvalidRecipeError.
	ErrInvalidRecipe = errors.New("invalid recipe")

	namePattern = regexp.MustCompile(`^[a-z][a-z0-9_-]*$`)
)

type (
	// Name identifies a recipe. Lookup is exact match.
	Name string

	// InvalidNameError is returned when a Name does not match ^[a-z][a-z0-9_-]*$.
	InvalidNameError struct {
		Value Name
	}

	// Kind selects the runtime that executes a recipe.
	Kind string

	// InvalidKindError is returned when a Kind is not one of the defined kinds.
	InvalidKindError struct {
		Value Kind
	}

	// Recipe is a named, parameterless command definition.
	Recipe struct {
		Name        Name                  `json:"name"`
		Description types.DescriptionText `json:"description,omitempty"`
		Kind        Kind                  `json:"kind"`
		// Command is the argv of an exec recipe.
		Command []string `json:"command,omitempty"`
		// Env is added to the host environment of exec and shell recipes.
		Env map[string]string `json:"env,omitempty"`
		// Script is the body of a shell recipe.
		Script string `json:"script,omitempty"`
		// Quiet suppresses echoing the command line before it runs.
		Quiet bool `json:"quiet,omitempty"`
	}

	// InvalidRecipeError wraps the field errors of one recipe.
	InvalidRecipeError struct {
		Name      Name
		FieldErrs []error
	}
)

// String returns the recipe name.
func (n Name) String() string { return string(n) }

// Validate returns an error if the name is not a valid recipe identifier.
func (n Name) Validate() error {
	if !namePattern.MatchString(string(n)) {
		return &InvalidNameError{Value: n}
	}
	return nil
}

// Error implements the error interface.
func (e *InvalidNameError) Error() string {
	return fmt.Sprintf("invalid recipe name %q (must match %s)", e.Value, namePattern)
}

// Unwrap returns ErrInvalidName for errors.Is() compatibility.
func (e *InvalidNameError) Unwrap() error { return ErrInvalidName }

// String returns the kind name.
func (k Kind) String() string { return string(k) }

// Validate returns an error if the kind is not one of the defined kinds.
func (k Kind) Validate() error {
	switch k {
	case KindList, KindExec, KindShell, KindOptimize:
		return nil
	default:
		return &InvalidKindError{Value: k}
	}
}

// Error implements the error interface.
func (e *InvalidKindError) Error() string {
	return fmt.Sprintf("invalid recipe kind %q (valid: list, exec, shell, optimize)", e.Value)
}

// Unwrap returns ErrInvalidKind for errors.Is() compatibility.
func (e *InvalidKindError) Unwrap() error { return ErrInvalidKind }

// Error implements the error interface.
func (e *InvalidRecipeError) Error() string {
	msgs := make([]string, len(e.FieldErrs))
	for i, err := range e.FieldErrs {
		msgs[i] = err.Error()
	}
	return fmt.Sprintf("invalid recipe %q: %s", e.Name, strings.Join(msgs, "; "))
}

// Unwrap returns the sentinel and every field error.
func (e *InvalidRecipeError) Unwrap() []error {
	return append([]error{ErrInvalidRecipe}, e.FieldErrs...)
}

// Validate checks the name, kind and that the body matches the kind.
func (r Recipe) Validate() error {
	var errs []error
	if err := r.Name.Validate(); err != nil {
		errs = append(errs, err)
	}
	if err := r.Description.Validate(); err != nil {
		errs = append(errs, err)
	}
	if err := r.Kind.Validate(); err != nil {
		errs = append(errs, err)
	}

	switch r.Kind {
	case KindExec:
		if len(r.Command) == 0 || strings.TrimSpace(r.Command[0]) == "" {
			errs = append(errs, errors.New("exec recipe needs a command"))
		}
		if r.Script != "" {
			errs = append(errs, errors.New("exec recipe cannot have a script"))
		}
	case KindShell:
		if strings.TrimSpace(r.Script) == "" {
			errs = append(errs, errors.New("shell recipe needs a script"))
		} else if _, err := syntax.NewParser().Parse(strings.NewReader(r.Script), string(r.Name)); err != nil {
			errs = append(errs, fmt.Errorf("script syntax error: %w", err))
		}
		if len(r.Command) > 0 {
			errs = append(errs, errors.New("shell recipe cannot have a command"))
		}
	case KindList, KindOptimize:
		if len(r.Command) > 0 || r.Script != "" {
			errs = append(errs, fmt.Errorf("%s recipe has no body", r.Kind))
		}
	}

	if len(errs) > 0 {
		return &InvalidRecipeError{Name: r.Name, FieldErrs: errs}
	}
	return nil
}

// CommandLine renders the body the way it is echoed before running.
// exec recipes are shell-quoted so the line can be pasted into a terminal.
// list and optimize recipes have no static command line and return "".
func (r Recipe) CommandLine() string {
	switch r.Kind {
	case KindExec:
		return QuoteArgv(r.Command)
	case KindShell:
		return strings.TrimSpace(r.Script)
	default:
		return ""
	}
}

// QuoteArgv joins argv into a bash-safe command line.
func QuoteArgv(argv []string) string {
	parts := make([]string, len(argv))
	for i, arg := range argv {
		quoted, err := syntax.Quote(arg, syntax.LangBash)
		if err != nil {
			// Only invalid UTF-8 or NUL bytes fail to quote; show them raw.
			quoted = fmt.Sprintf("%q", arg)
		}
		parts[i] = quoted
	}
	return strings.Join(parts, " ")
}
