// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"grugjust/internal/config"
	"grugjust/internal/container"
	"grugjust/internal/dispatch"
	"grugjust/internal/issue"
	"grugjust/internal/runtime"
	"grugjust/pkg/platform"
	"grugjust/pkg/recipe"
)

type (
	// App wires CLI services and shared dependencies. It is the composition
	// root for the CLI layer: every command handler receives an App.
	App struct {
		Config ConfigProvider

		workDir         string
		arch            platform.ArchFunc
		execCommand     runtime.ExecCommandFunc
		containerEngine container.Engine
		// markdownStyle is the glamour style for rendered markdown.
		markdownStyle string

		stdin  io.Reader
		stdout io.Writer
		stderr io.Writer
	}

	// Dependencies defines the injection points for building an App. Nil
	// fields are replaced with production defaults by NewApp.
	Dependencies struct {
		Config ConfigProvider
		// WorkDir is the project directory; defaults to the current directory.
		WorkDir string
		// Arch reports the host architecture; defaults to uname.
		Arch platform.ArchFunc
		// ExecCommand replaces exec.CommandContext for exec recipes.
		ExecCommand runtime.ExecCommandFunc
		// ContainerEngine replaces engine detection for the optimizer.
		ContainerEngine container.Engine
		Stdin           io.Reader
		Stdout          io.Writer
		Stderr          io.Writer
	}

	// ConfigProvider loads configuration using explicit options.
	ConfigProvider interface {
		Load(ctx context.Context, opts config.LoadOptions) (*config.Config, error)
	}

	// RunRequest captures the inputs of one root command invocation.
	RunRequest struct {
		// Recipe is the recipe to run; "" runs the default recipe.
		Recipe recipe.Name
		// RecipesFile is the --recipes value; "" uses config or recipes.cue.
		RecipesFile string
		// Engine is the --engine value; "" uses config.
		Engine config.ContainerEngine
		DryRun      bool
		Interactive bool
	}
)

// NewApp creates an App with defaults for omitted dependencies.
func NewApp(deps Dependencies) (*App, error) {
	if deps.Stdin == nil {
		deps.Stdin = os.Stdin
	}
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	if deps.Config == nil {
		deps.Config = config.NewProvider()
	}
	if deps.WorkDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("determine working directory: %w", err)
		}
		deps.WorkDir = wd
	}

	return &App{
		Config:          deps.Config,
		workDir:         deps.WorkDir,
		arch:            deps.Arch,
		execCommand:     deps.ExecCommand,
		containerEngine: deps.ContainerEngine,
		markdownStyle:   string(config.ColorSchemeAuto),
		stdin:           deps.Stdin,
		stdout:          deps.Stdout,
		stderr:          deps.Stderr,
	}, nil
}

// loadConfig loads configuration honoring an explicit --config path.
func (a *App) loadConfig(ctx context.Context, configPath string) (*config.Config, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	return a.Config.Load(ctx, config.LoadOptions{
		ConfigFilePath: configPath,
		BaseDir:        a.workDir,
	})
}

// recipesPath picks the recipe file and whether it may be missing. An
// explicit file must exist; the project's recipes.cue is optional.
func (a *App) recipesPath(flagValue string, cfg *config.Config) (path string, optional bool) {
	switch {
	case flagValue != "":
		path = flagValue
	case cfg.RecipesFile != "":
		path = cfg.RecipesFile
	default:
		return filepath.Join(a.workDir, recipe.FileName), true
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(a.workDir, path)
	}
	return path, false
}

// loadBook returns the built-in recipes extended by the recipe file.
func (a *App) loadBook(flagValue string, cfg *config.Config) (*recipe.Book, error) {
	path, optional := a.recipesPath(flagValue, cfg)
	book, err := recipe.Load(recipe.Builtin(), path, optional)
	if err != nil {
		return nil, issue.NewErrorContext().
			WithOperation("load recipes").
			WithResource(path).
			WithSuggestion("Check the file against the recipe schema").
			WithSuggestion("Move the file aside to fall back to the built-in recipes").
			WithIssue(issue.RecipesFileParseErrorId).
			Wrap(err).
			BuildError()
	}
	return book, nil
}

// newDispatcher builds the runtime registry and dispatcher for a request.
func (a *App) newDispatcher(book *recipe.Book, cfg *config.Config, req RunRequest) (*dispatch.Dispatcher, error) {
	engine := cfg.ContainerEngine
	if req.Engine != "" {
		if err := req.Engine.Validate(); err != nil {
			return nil, err
		}
		engine = req.Engine
	}

	registry := runtime.BuildRegistry(runtime.BuildRegistryOptions{
		Engine:          engine.EngineType(),
		Optimizer:       cfg.Optimizer.Settings(),
		Arch:            a.arch,
		ExecCommand:     a.execCommand,
		ContainerEngine: a.containerEngine,
	})

	return dispatch.New(book, registry,
		dispatch.WithWorkDir(a.workDir),
		dispatch.WithStdio(a.stdin, a.stdout, a.stderr),
		dispatch.WithDryRun(req.DryRun),
		dispatch.WithInteractive(req.Interactive),
		dispatch.WithEcho(func(line string) string { return EchoStyle.Render(line) }),
	), nil
}
