// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/term"

	"grugjust/internal/container"
	"grugjust/internal/optimizer"
	"grugjust/pkg/platform"
	"grugjust/pkg/recipe"
)

type (
	// EngineResolver returns the container engine to run the optimizer with.
	EngineResolver func() (container.Engine, error)

	// ContainerOption configures a ContainerRuntime.
	ContainerOption func(*ContainerRuntime)

	// ContainerRuntime runs the optimize recipe in the optimizer container.
	// The image and mounts are chosen by optimizer.Select from the host
	// architecture and the project directory.
	ContainerRuntime struct {
		resolve   EngineResolver
		fixed     container.Engine
		preferred container.EngineType
		arch      platform.ArchFunc
		settings  optimizer.Settings

		once      sync.Once
		engine    container.Engine
		engineErr error
	}
)

// WithEngine uses a fixed engine instead of detecting one.
func WithEngine(e container.Engine) ContainerOption {
	return func(r *ContainerRuntime) {
		r.fixed = e
		r.resolve = func() (container.Engine, error) { return e, nil }
	}
}

// WithPreferredEngine selects docker or podman; "" auto-detects.
func WithPreferredEngine(t container.EngineType) ContainerOption {
	return func(r *ContainerRuntime) {
		r.preferred = t
	}
}

// WithArch pins the host architecture.
func WithArch(fn platform.ArchFunc) ContainerOption {
	return func(r *ContainerRuntime) {
		r.arch = fn
	}
}

// WithOptimizerSettings overrides the optimizer images and registry volume.
func WithOptimizerSettings(s optimizer.Settings) ContainerOption {
	return func(r *ContainerRuntime) {
		r.settings = s
	}
}

// NewContainerRuntime creates a container runtime. The engine is resolved
// on first use, so recipes that never touch it work without Docker.
func NewContainerRuntime(opts ...ContainerOption) *ContainerRuntime {
	r := &ContainerRuntime{
		arch:     platform.HostArch,
		settings: optimizer.DefaultSettings(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.resolve == nil {
		preferred := r.preferred
		r.resolve = func() (container.Engine, error) {
			if preferred == "" {
				return container.AutoDetectEngine()
			}
			return container.NewEngine(preferred)
		}
	}
	return r
}

// Name returns the runtime name.
func (r *ContainerRuntime) Name() string {
	return "container"
}

// Available reports whether a container engine could be resolved.
func (r *ContainerRuntime) Available() bool {
	_, err := r.getEngine()
	return err == nil
}

// UnavailableReason returns the engine resolution error, if any.
func (r *ContainerRuntime) UnavailableReason() error {
	_, err := r.getEngine()
	return err
}

// Validate checks that the recipe is an optimize recipe and the project
// directory is absolute.
func (r *ContainerRuntime) Validate(ctx *ExecutionContext) error {
	if ctx.Recipe.Kind != recipe.KindOptimize {
		return kindMismatch(r, recipe.KindOptimize, ctx.Recipe)
	}
	if err := ctx.Recipe.Validate(); err != nil {
		return err
	}
	if !filepath.IsAbs(ctx.WorkDir) {
		return fmt.Errorf("project directory %q must be absolute", ctx.WorkDir)
	}
	return nil
}

// Plan returns the optimizer plan for the current host and project.
func (r *ContainerRuntime) Plan(ctx *ExecutionContext) (optimizer.Plan, error) {
	return optimizer.Select(r.arch(), ctx.WorkDir, r.settings)
}

// CommandLine renders the engine invocation without resolving the engine,
// so nothing is started. A detected engine is not known yet; the preferred
// engine (or docker) is shown instead.
func (r *ContainerRuntime) CommandLine(ctx *ExecutionContext) (string, error) {
	opts, err := r.runOptions(ctx)
	if err != nil {
		return "", err
	}

	eng := r.fixed
	if eng == nil {
		preferred := r.preferred
		if preferred == "" {
			preferred = container.EngineTypeDocker
		}
		if eng, err = container.EngineOfType(preferred); err != nil {
			return "", err
		}
	}
	return recipe.QuoteArgv(append([]string{eng.Name()}, eng.BuildRunArgs(opts)...)), nil
}

// Execute runs the optimizer container and returns its exit status.
func (r *ContainerRuntime) Execute(ctx *ExecutionContext) *Result {
	eng, err := r.getEngine()
	if err != nil {
		return NewErrorResult(1, err)
	}

	opts, err := r.runOptions(ctx)
	if err != nil {
		return NewErrorResult(1, err)
	}
	opts.Stdin = ctx.Stdin
	opts.Stdout = ctx.Stdout
	opts.Stderr = ctx.Stderr
	if ctx.Interactive {
		opts.Interactive = true
		opts.TTY = isTerminal(ctx.Stdin)
	}

	res, err := eng.Run(ctx.context(), opts)
	if err != nil {
		return NewErrorResult(1, err)
	}
	return &Result{ExitCode: res.ExitCode, Error: res.Error}
}

func (r *ContainerRuntime) runOptions(ctx *ExecutionContext) (container.RunOptions, error) {
	plan, err := r.Plan(ctx)
	if err != nil {
		return container.RunOptions{}, err
	}
	slog.Debug("selected optimizer image",
		"arch", plan.Arch,
		"arm64", plan.ARM64,
		"image", plan.Image,
		"platform", plan.Platform,
		"cache", plan.CacheVolume.Source)

	opts := plan.RunOptions()
	if len(ctx.Recipe.Env) > 0 || len(ctx.ExtraEnv) > 0 {
		opts.Env = recipeEnv(ctx)
	}
	return opts, nil
}

func (r *ContainerRuntime) getEngine() (container.Engine, error) {
	r.once.Do(func() {
		r.engine, r.engineErr = r.resolve()
		if r.engineErr == nil {
			slog.Debug("using container engine", "engine", r.engine.Name())
		}
	})
	return r.engine, r.engineErr
}

func isTerminal(in any) bool {
	f, ok := in.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
