// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"grugjust/internal/config"
	"grugjust/pkg/recipe"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

type (
	// globalFlags are the persistent flags shared with subcommands.
	globalFlags struct {
		verbose    bool
		configPath string
	}

	// rootFlags are the flags of the recipe-running root command.
	rootFlags struct {
		list        bool
		show        string
		dryRun      bool
		recipesFile string
		engine      string
		interactive bool
	}
)

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version != "dev" {
		return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return "dev (built from source)"
}

// NewRootCommand builds the grugjust command tree around app.
func NewRootCommand(app *App) *cobra.Command {
	global := &globalFlags{}
	flags := &rootFlags{}

	rootCmd := &cobra.Command{
		Use:   "grugjust [flags] [recipe]",
		Short: "Recipe runner for Grug smart-contract workspaces",
		Long: TitleStyle.Render("grugjust") + SubtitleStyle.Render(" - recipe runner for Grug smart-contract workspaces") + `

grugjust runs the workspace's named recipes: building and installing the
node software, running tests and lints with cargo, and optimizing
contracts inside the architecture-specific optimizer container.

Extra recipes can be added, and built-ins replaced, in a recipes.cue file
in the project directory.

` + SubtitleStyle.Render("Examples:") + `
  grugjust                  List available recipes
  grugjust test             Run 'cargo test --all-targets'
  grugjust optimize         Optimize contracts in a container
  grugjust -n optimize      Print the container command without running it
  grugjust -s install       Describe the 'install' recipe
  grugjust config show      Show current configuration`,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: completeRecipes(app, global, flags),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := RunRequest{
				RecipesFile: flags.recipesFile,
				Engine:      config.ContainerEngine(flags.engine),
				DryRun:      flags.dryRun,
				Interactive: flags.interactive,
			}
			if len(args) == 1 {
				req.Recipe = recipe.Name(args[0])
			}
			return runRoot(cmd, app, global, flags, req)
		},
	}
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	pf := rootCmd.PersistentFlags()
	pf.BoolVarP(&global.verbose, "verbose", "v", false, "enable verbose output")
	pf.StringVar(&global.configPath, "config", "", "config file (default is $XDG_CONFIG_HOME/grugjust/config.cue)")

	f := rootCmd.Flags()
	f.BoolVarP(&flags.list, "list", "l", false, "list available recipes")
	f.StringVarP(&flags.show, "show", "s", "", "describe a recipe")
	f.BoolVarP(&flags.dryRun, "dry-run", "n", false, "print recipe commands without running them")
	f.StringVar(&flags.recipesFile, "recipes", "", "recipe file (default is ./recipes.cue)")
	f.StringVar(&flags.engine, "engine", "", "container engine for optimize: docker or podman")
	f.BoolVarP(&flags.interactive, "interactive", "i", false, "attach recipe tools to a pseudo-terminal")
	rootCmd.MarkFlagsMutuallyExclusive("list", "show")

	_ = rootCmd.RegisterFlagCompletionFunc("engine", cobra.FixedCompletions(
		[]string{string(config.ContainerEngineDocker), string(config.ContainerEnginePodman)},
		cobra.ShellCompDirectiveNoFileComp))
	_ = rootCmd.RegisterFlagCompletionFunc("show", completeRecipes(app, global, flags))

	rootCmd.AddCommand(newConfigCommand(app, global))
	rootCmd.AddCommand(newCompletionCommand())

	return rootCmd
}

// Execute builds the CLI and runs it. This is called by main.main().
func Execute() {
	app, err := NewApp(Dependencies{})
	if err != nil {
		fmt.Fprintln(os.Stderr, ErrorStyle.Render("Error: ")+err.Error())
		os.Exit(1)
	}

	if err := fang.Execute(
		context.Background(),
		NewRootCommand(app),
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
		fang.WithErrorHandler(handleError),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(int(exitErr.Code))
		}
		os.Exit(1)
	}
}

// runRoot resolves configuration and the recipe book, then lists, shows or
// runs a recipe.
func runRoot(cmd *cobra.Command, app *App, global *globalFlags, flags *rootFlags, req RunRequest) error {
	ctx := cmd.Context()

	cfg, err := app.loadConfig(ctx, global.configPath)
	if err != nil {
		return fail(cmd, app, err, global.verbose)
	}
	applyConfigDefaults(cmd, cfg, global, &req)
	app.markdownStyle = string(cfg.UI.ColorScheme)
	setupLogging(app.stderr, global.verbose)

	book, err := app.loadBook(req.RecipesFile, cfg)
	if err != nil {
		return fail(cmd, app, err, global.verbose)
	}

	if flags.list {
		if err := book.WriteList(app.stdout); err != nil {
			return fail(cmd, app, err, global.verbose)
		}
		return nil
	}

	d, err := app.newDispatcher(book, cfg, req)
	if err != nil {
		return fail(cmd, app, err, global.verbose)
	}
	if req.Engine != "" {
		cfg.ContainerEngine = req.Engine
	}

	if flags.show != "" {
		if err := showRecipe(ctx, app, d, cfg, recipe.Name(flags.show)); err != nil {
			return fail(cmd, app, err, global.verbose)
		}
		return nil
	}

	res, err := d.Run(ctx, req.Recipe)
	if err != nil {
		return fail(cmd, app, err, global.verbose)
	}
	if !res.ExitCode.IsSuccess() {
		cmd.SilenceUsage = true
		cmd.SilenceErrors = true
		return &ExitError{Code: res.ExitCode}
	}
	return nil
}

// applyConfigDefaults fills flags the user did not set from the config.
func applyConfigDefaults(cmd *cobra.Command, cfg *config.Config, global *globalFlags, req *RunRequest) {
	if !cmd.Flags().Changed("verbose") {
		global.verbose = cfg.UI.Verbose
	}
	if !cmd.Flags().Changed("interactive") {
		req.Interactive = cfg.UI.Interactive
	}
}

// completeRecipes completes recipe names with their descriptions.
func completeRecipes(app *App, global *globalFlags, flags *rootFlags) cobra.CompletionFunc {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]cobra.Completion, cobra.ShellCompDirective) {
		if len(args) > 0 {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		cfg, err := app.loadConfig(cmd.Context(), global.configPath)
		if err != nil {
			return nil, cobra.ShellCompDirectiveError
		}
		book, err := app.loadBook(flags.recipesFile, cfg)
		if err != nil {
			return nil, cobra.ShellCompDirectiveError
		}

		completions := make([]cobra.Completion, 0, book.Len())
		for _, r := range book.Recipes() {
			completions = append(completions, cobra.CompletionWithDesc(string(r.Name), string(r.Description)))
		}
		return completions, cobra.ShellCompDirectiveNoFileComp
	}
}
