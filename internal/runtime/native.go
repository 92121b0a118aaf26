// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"errors"
	"fmt"
	"os/exec"

	"grugjust/internal/issue"
	"grugjust/pkg/platform"
	"grugjust/pkg/recipe"
)

type (
	// NativeOption configures a NativeRuntime.
	NativeOption func(*NativeRuntime)

	// NativeRuntime runs exec recipes as host processes.
	// The argv is started directly, without a shell.
	NativeRuntime struct {
		execCommand ExecCommandFunc
		sandbox     platform.SandboxType
	}
)

// WithNativeExecCommand sets a custom exec command function for testing.
func WithNativeExecCommand(fn ExecCommandFunc) NativeOption {
	return func(r *NativeRuntime) {
		r.execCommand = fn
	}
}

// WithNativeSandbox overrides the detected application sandbox.
func WithNativeSandbox(st platform.SandboxType) NativeOption {
	return func(r *NativeRuntime) {
		r.sandbox = st
	}
}

// NewNativeRuntime creates a new native runtime.
func NewNativeRuntime(opts ...NativeOption) *NativeRuntime {
	r := &NativeRuntime{
		execCommand: exec.CommandContext,
		sandbox:     platform.DetectSandbox(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Name returns the runtime name.
func (r *NativeRuntime) Name() string {
	return "native"
}

// Available returns true; missing tools are reported when they fail to start.
func (r *NativeRuntime) Available() bool {
	return true
}

// Validate checks that the recipe is a valid exec recipe.
func (r *NativeRuntime) Validate(ctx *ExecutionContext) error {
	if ctx.Recipe.Kind != recipe.KindExec {
		return kindMismatch(r, recipe.KindExec, ctx.Recipe)
	}
	return ctx.Recipe.Validate()
}

// CommandLine returns the shell-quoted argv, including any sandbox spawn prefix.
func (r *NativeRuntime) CommandLine(ctx *ExecutionContext) (string, error) {
	if len(ctx.Recipe.Command) == 0 {
		return "", fmt.Errorf("recipe %q has no command", ctx.Recipe.Name)
	}
	name, args := r.hostCommand(ctx.Recipe.Command)
	return recipe.QuoteArgv(append([]string{name}, args...)), nil
}

// Execute runs the recipe's argv and waits for it to exit.
func (r *NativeRuntime) Execute(ctx *ExecutionContext) *Result {
	if len(ctx.Recipe.Command) == 0 {
		return NewErrorResult(1, fmt.Errorf("recipe %q has no command", ctx.Recipe.Name))
	}
	cmd := r.prepare(ctx)

	var err error
	if ctx.Interactive {
		err = runInteractive(cmd, ctx.Stdin, ctx.Stdout)
	} else {
		cmd.Stdin = ctx.Stdin
		cmd.Stdout = ctx.Stdout
		cmd.Stderr = ctx.Stderr
		err = cmd.Run()
	}

	return resultFromRun(err, func(err error) error {
		return toolStartError(ctx.Recipe.Command[0], err)
	})
}

// prepare builds the exec.Cmd without attaching I/O.
func (r *NativeRuntime) prepare(ctx *ExecutionContext) *exec.Cmd {
	name, args := r.hostCommand(ctx.Recipe.Command)
	cmd := r.execCommand(ctx.context(), name, args...)
	platform.InterruptOnCancel(cmd, platform.InterruptGrace)
	if ctx.WorkDir != "" {
		cmd.Dir = ctx.WorkDir
	}
	cmd.Env = append(cmd.Environ(), EnvToSlice(recipeEnv(ctx))...)
	return cmd
}

func (r *NativeRuntime) hostCommand(argv []string) (string, []string) {
	return platform.HostCommandFor(r.sandbox, argv[0], argv[1:])
}

// toolStartError explains a tool that could not be started.
func toolStartError(tool string, cause error) error {
	ctx := issue.NewErrorContext().
		WithOperation("run " + tool).
		WithResource(tool)

	switch {
	case errors.Is(cause, exec.ErrNotFound) && tool == "cargo":
		ctx.WithSuggestion("Install the Rust toolchain: https://rustup.rs")
		ctx.WithSuggestion("Make sure ~/.cargo/bin is on PATH")
		ctx.WithIssue(issue.CargoNotFoundId)
	case errors.Is(cause, exec.ErrNotFound):
		ctx.WithSuggestion(fmt.Sprintf("Install %s or add it to PATH", tool))
	default:
		ctx.WithSuggestion("Check that the project directory exists and is readable")
	}

	return ctx.Wrap(cause).BuildError()
}
