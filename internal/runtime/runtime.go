// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"context"
	"fmt"
	"io"
	"os/exec"

	"grugjust/pkg/recipe"
	"grugjust/pkg/types"
)

const (
	// RecipeEnvVar is set to the running recipe's name in the tool's environment.
	RecipeEnvVar = "GRUGJUST_RECIPE"
)

type (
	// ExecCommandFunc is the function signature for creating exec.Cmd.
	// This allows injection of mock implementations for testing.
	ExecCommandFunc func(ctx context.Context, name string, arg ...string) *exec.Cmd

	// ExecutionContext contains all information needed to execute a recipe.
	ExecutionContext struct {
		// Context is the Go context for cancellation.
		Context context.Context
		// Recipe is the recipe to execute.
		Recipe recipe.Recipe
		// WorkDir is the project directory. Tools run here and the optimizer mounts it.
		WorkDir string
		// ExtraEnv is layered over the host environment, below Recipe.Env.
		ExtraEnv map[string]string
		// Interactive attaches the tool to a pseudo-terminal.
		Interactive bool

		Stdin  io.Reader
		Stdout io.Writer
		Stderr io.Writer
	}

	// Result contains the result of a recipe execution.
	Result struct {
		// ExitCode is the external tool's exit status.
		ExitCode types.ExitCode
		// Error is set when the tool could not be started or the recipe was rejected.
		Error error
	}

	// Runtime defines the interface for recipe execution.
	Runtime interface {
		// Name returns the runtime name.
		Name() string
		// Execute runs the recipe and blocks until it finishes.
		Execute(ctx *ExecutionContext) *Result
		// Available returns whether this runtime can run on the current system.
		Available() bool
		// Validate checks if the recipe can be executed with this runtime.
		Validate(ctx *ExecutionContext) error
	}

	// Describer is implemented by runtimes that can render the command line
	// they would start, for echoing and dry runs.
	Describer interface {
		CommandLine(ctx *ExecutionContext) (string, error)
	}

	// unavailableReasoner is implemented by runtimes that know why they are unavailable.
	unavailableReasoner interface {
		UnavailableReason() error
	}
)

// context returns the Go context, defaulting to Background.
func (c *ExecutionContext) context() context.Context {
	if c.Context == nil {
		return context.Background()
	}
	return c.Context
}

// kindMismatch is returned by Validate when a runtime is handed the wrong kind.
func kindMismatch(rt Runtime, want recipe.Kind, got recipe.Recipe) error {
	return fmt.Errorf("%s runtime cannot run %s recipe %q (want %s)", rt.Name(), got.Kind, got.Name, want)
}
