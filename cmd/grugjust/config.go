// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"grugjust/internal/config"
)

// newConfigCommand creates the `grugjust config` command tree.
func newConfigCommand(app *App, global *globalFlags) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage grugjust configuration",
		Long: `Manage grugjust configuration.

Configuration is read from the first of:
  - the --config file
  - Linux: $XDG_CONFIG_HOME/grugjust/config.cue (~/.config when unset)
  - macOS: ~/Library/Application Support/grugjust/config.cue
  - Windows: %APPDATA%\grugjust\config.cue
  - ./config.cue

Every key can be overridden with a GRUGJUST_* environment variable,
for example GRUGJUST_CONTAINER_ENGINE=podman.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.loadConfig(cmd.Context(), global.configPath)
			if err != nil {
				return fail(cmd, app, err, global.verbose)
			}
			showConfig(app.stdout, cfg)
			return nil
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "dump",
		Short: "Output the effective configuration as CUE",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.loadConfig(cmd.Context(), global.configPath)
			if err != nil {
				return fail(cmd, app, err, global.verbose)
			}
			_, err = fmt.Fprint(app.stdout, config.GenerateCUE(cfg))
			return err
		},
	})

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Create default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.CreateDefaultConfig(global.configPath, force)
			if errors.Is(err, config.ErrConfigExists) {
				fmt.Fprintf(app.stdout, "%s Configuration already exists at %s (use --force to overwrite)\n",
					WarningStyle.Render("!"), path)
				return nil
			}
			if err != nil {
				return fail(cmd, app, fmt.Errorf("failed to create config: %w", err), global.verbose)
			}
			fmt.Fprintf(app.stdout, "%s Created default configuration at %s\n", SuccessStyle.Render("✓"), path)
			return nil
		},
	}
	initCmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing configuration file")
	cfgCmd.AddCommand(initCmd)

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.ConfigFilePath()
			if err != nil {
				return fail(cmd, app, err, global.verbose)
			}
			_, err = fmt.Fprintln(app.stdout, path)
			return err
		},
	})

	return cfgCmd
}

func showConfig(w io.Writer, cfg *config.Config) {
	keyStyle := CmdStyle
	valueStyle := SuccessStyle

	fmt.Fprintln(w, TitleStyle.Render("Current Configuration"))
	fmt.Fprintln(w)

	source := SubtitleStyle.Render("(using defaults)")
	if cfg.Source != "" {
		source = cfg.Source
	}
	fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("Config file"), source)
	fmt.Fprintln(w)

	fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("container_engine"), valueStyle.Render(cfg.ContainerEngine.String()))
	recipes := SubtitleStyle.Render("(./recipes.cue)")
	if cfg.RecipesFile != "" {
		recipes = valueStyle.Render(cfg.RecipesFile)
	}
	fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("recipes_file"), recipes)

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s:\n", keyStyle.Render("optimizer"))
	fmt.Fprintf(w, "  image: %s\n", valueStyle.Render(cfg.Optimizer.Image))
	fmt.Fprintf(w, "  arm64_image: %s\n", valueStyle.Render(cfg.Optimizer.ARM64Image))
	fmt.Fprintf(w, "  registry_cache: %s\n", valueStyle.Render(cfg.Optimizer.RegistryCache))

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s:\n", keyStyle.Render("ui"))
	fmt.Fprintf(w, "  color_scheme: %s\n", valueStyle.Render(cfg.UI.ColorScheme.String()))
	fmt.Fprintf(w, "  interactive: %s\n", valueStyle.Render(fmt.Sprintf("%v", cfg.UI.Interactive)))
	fmt.Fprintf(w, "  verbose: %s\n", valueStyle.Render(fmt.Sprintf("%v", cfg.UI.Verbose)))
}
