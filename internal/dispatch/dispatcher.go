// SPDX-License-Identifier: MPL-2.0

package dispatch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"os"

	"grugjust/internal/runtime"
	"grugjust/pkg/recipe"
)

type (
	// Option configures a Dispatcher.
	Option func(*Dispatcher)

	// EchoFunc formats the command line echoed before a recipe runs.
	EchoFunc func(line string) string

	// Dispatcher runs recipes from a book on a runtime registry.
	Dispatcher struct {
		book        *recipe.Book
		registry    *runtime.Registry
		workDir     string
		extraEnv    map[string]string
		dryRun      bool
		interactive bool
		echo        EchoFunc

		stdin  io.Reader
		stdout io.Writer
		stderr io.Writer
	}
)

// WithWorkDir sets the project directory. Defaults to the current directory.
func WithWorkDir(dir string) Option {
	return func(d *Dispatcher) { d.workDir = dir }
}

// WithStdio sets the streams recipes read from and write to.
func WithStdio(stdin io.Reader, stdout, stderr io.Writer) Option {
	return func(d *Dispatcher) {
		d.stdin, d.stdout, d.stderr = stdin, stdout, stderr
	}
}

// WithDryRun echoes recipes without starting anything.
func WithDryRun(dryRun bool) Option {
	return func(d *Dispatcher) { d.dryRun = dryRun }
}

// WithInteractive attaches tools to a pseudo-terminal.
func WithInteractive(interactive bool) Option {
	return func(d *Dispatcher) { d.interactive = interactive }
}

// WithExtraEnv adds environment variables to every recipe.
func WithExtraEnv(env map[string]string) Option {
	return func(d *Dispatcher) { d.extraEnv = maps.Clone(env) }
}

// WithEcho sets how echoed command lines are rendered.
func WithEcho(fn EchoFunc) Option {
	return func(d *Dispatcher) { d.echo = fn }
}

// New creates a dispatcher over a recipe book and runtime registry.
func New(book *recipe.Book, registry *runtime.Registry, opts ...Option) *Dispatcher {
	wd, _ := os.Getwd()
	d := &Dispatcher{
		book:     book,
		registry: registry,
		workDir:  wd,
		echo:     func(line string) string { return line },
		stdin:    os.Stdin,
		stdout:   os.Stdout,
		stderr:   os.Stderr,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Book returns the dispatcher's recipe book.
func (d *Dispatcher) Book() *recipe.Book {
	return d.book
}

// Resolve returns the recipe an invocation would run. An empty name
// resolves to the default recipe.
func (d *Dispatcher) Resolve(name recipe.Name) (recipe.Recipe, error) {
	if name == "" {
		return d.book.Default()
	}
	return d.book.Lookup(name)
}

// Run resolves and executes a recipe, blocking until it finishes.
//
// The returned error is non-nil when the recipe could not be resolved or its
// tool could not be started; the result is nil only when nothing ran. A tool
// that ran and failed returns its exit code in the result and a nil error.
func (d *Dispatcher) Run(ctx context.Context, name recipe.Name) (*runtime.Result, error) {
	r, err := d.Resolve(name)
	if err != nil {
		return nil, err
	}
	slog.Debug("dispatching recipe", "recipe", r.Name, "kind", r.Kind, "dry_run", d.dryRun)

	if r.Kind == recipe.KindList {
		if err := d.book.WriteList(d.stdout); err != nil {
			return nil, fmt.Errorf("write recipe list: %w", err)
		}
		return runtime.NewSuccessResult(), nil
	}

	execCtx := d.executionContext(ctx, r)

	if !r.Quiet || d.dryRun {
		line, err := d.registry.CommandLine(execCtx)
		if err != nil {
			return nil, err
		}
		if _, err := fmt.Fprintln(d.stderr, d.echo(line)); err != nil {
			return nil, fmt.Errorf("echo command line: %w", err)
		}
	}
	if d.dryRun {
		return runtime.NewSuccessResult(), nil
	}

	res := d.registry.Execute(execCtx)
	slog.Debug("recipe finished", "recipe", r.Name, "exit_code", res.ExitCode)
	return res, res.Error
}

// CommandLine returns the command line a recipe would echo, without running
// it. list recipes have no command line and return "".
func (d *Dispatcher) CommandLine(ctx context.Context, name recipe.Name) (string, error) {
	r, err := d.Resolve(name)
	if err != nil {
		return "", err
	}
	if r.Kind == recipe.KindList {
		return "", nil
	}
	return d.registry.CommandLine(d.executionContext(ctx, r))
}

func (d *Dispatcher) executionContext(ctx context.Context, r recipe.Recipe) *runtime.ExecutionContext {
	return &runtime.ExecutionContext{
		Context:     ctx,
		Recipe:      r,
		WorkDir:     d.workDir,
		ExtraEnv:    d.extraEnv,
		Interactive: d.interactive,
		Stdin:       d.stdin,
		Stdout:      d.stdout,
		Stderr:      d.stderr,
	}
}
