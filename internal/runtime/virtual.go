// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"grugjust/pkg/platform"
	"grugjust/pkg/recipe"
	"grugjust/pkg/types"

	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"
)

// VirtualRuntime interprets shell recipes with mvdan/sh, so they behave
// the same on every host without a system shell.
type VirtualRuntime struct {
	sandbox platform.SandboxType
}

// NewVirtualRuntime creates a new virtual runtime.
func NewVirtualRuntime() *VirtualRuntime {
	return &VirtualRuntime{sandbox: platform.DetectSandbox()}
}

// Name returns the runtime name.
func (r *VirtualRuntime) Name() string {
	return "virtual"
}

// Available returns true; the interpreter is built in.
func (r *VirtualRuntime) Available() bool {
	return true
}

// Validate checks that the recipe is a shell recipe whose script parses.
func (r *VirtualRuntime) Validate(ctx *ExecutionContext) error {
	if ctx.Recipe.Kind != recipe.KindShell {
		return kindMismatch(r, recipe.KindShell, ctx.Recipe)
	}
	return ctx.Recipe.Validate()
}

// Execute interprets the script and returns its exit status.
func (r *VirtualRuntime) Execute(ctx *ExecutionContext) *Result {
	prog, err := syntax.NewParser().Parse(strings.NewReader(ctx.Recipe.Script), string(ctx.Recipe.Name))
	if err != nil {
		return NewErrorResult(1, fmt.Errorf("failed to parse script: %w", err))
	}

	env := append(os.Environ(), EnvToSlice(recipeEnv(ctx))...)
	opts := []interp.RunnerOption{
		interp.Env(expand.ListEnviron(env...)),
		interp.StdIO(ctx.Stdin, ctx.Stdout, ctx.Stderr),
		interp.ExecHandlers(r.execHandler),
	}
	if ctx.WorkDir != "" {
		opts = append(opts, interp.Dir(ctx.WorkDir))
	}

	runner, err := interp.New(opts...)
	if err != nil {
		return NewErrorResult(1, fmt.Errorf("failed to create interpreter: %w", err))
	}

	if err := runner.Run(ctx.context(), prog); err != nil {
		var exitStatus interp.ExitStatus
		if errors.As(err, &exitStatus) {
			return NewExitCodeResult(types.ExitCode(exitStatus))
		}
		return NewErrorResult(1, fmt.Errorf("script execution failed: %w", err))
	}
	return NewSuccessResult()
}

// execHandler spawns external commands on the host when confined to a sandbox.
func (r *VirtualRuntime) execHandler(next interp.ExecHandlerFunc) interp.ExecHandlerFunc {
	return func(ctx context.Context, args []string) error {
		if r.sandbox == platform.SandboxNone || len(args) == 0 {
			return next(ctx, args)
		}
		name, wrapped := platform.HostCommandFor(r.sandbox, args[0], args[1:])
		return next(ctx, append([]string{name}, wrapped...))
	}
}
