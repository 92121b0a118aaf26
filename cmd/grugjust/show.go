// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strings"

	"github.com/charmbracelet/glamour"

	"grugjust/internal/config"
	"grugjust/internal/dispatch"
	"grugjust/pkg/cargo"
	"grugjust/pkg/recipe"
)

// installCrateDir is the crate the install recipe builds.
const installCrateDir = "bin"

// showRecipe renders a recipe description as markdown.
func showRecipe(ctx context.Context, app *App, d *dispatch.Dispatcher, cfg *config.Config, name recipe.Name) error {
	r, err := d.Resolve(name)
	if err != nil {
		return err
	}
	line, err := d.CommandLine(ctx, name)
	if err != nil {
		return err
	}

	var crate *cargo.Info
	if r.Name == recipe.InstallRecipeName {
		info, err := cargo.Describe(app.workDir, installCrateDir)
		if err != nil {
			slog.Debug("no crate information for install", "error", err)
		} else {
			crate = &info
		}
	}

	rendered, err := glamour.Render(recipeMarkdown(r, line, crate, cfg), app.markdownStyle)
	if err != nil {
		return fmt.Errorf("render recipe: %w", err)
	}
	_, err = fmt.Fprint(app.stdout, rendered)
	return err
}

// recipeMarkdown describes a recipe. crate is the installed crate, if known.
func recipeMarkdown(r recipe.Recipe, line string, crate *cargo.Info, cfg *config.Config) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# %s\n\n", r.Name)
	if r.Description != "" {
		fmt.Fprintf(&sb, "%s\n\n", r.Description)
	}

	switch r.Kind {
	case recipe.KindList:
		sb.WriteString("Lists the available recipes.\n\n")
	case recipe.KindShell:
		fmt.Fprintf(&sb, "~~~sh\n%s\n~~~\n\n", strings.TrimSpace(r.Script))
	default:
		fmt.Fprintf(&sb, "~~~sh\n%s\n~~~\n\n", line)
	}

	sb.WriteString("| | |\n|---|---|\n")
	fmt.Fprintf(&sb, "| kind | %s |\n", r.Kind)
	if r.Quiet {
		sb.WriteString("| echo | off |\n")
	}
	if crate != nil {
		fmt.Fprintf(&sb, "| crate | %s |\n", crate)
		fmt.Fprintf(&sb, "| binaries | %s |\n", strings.Join(crate.Binaries, ", "))
	}
	if r.Kind == recipe.KindOptimize {
		fmt.Fprintf(&sb, "| engine | %s |\n", cfg.ContainerEngine)
		fmt.Fprintf(&sb, "| image | %s |\n", cfg.Optimizer.Image)
		fmt.Fprintf(&sb, "| arm64 image | %s |\n", cfg.Optimizer.ARM64Image)
	}
	for _, k := range slices.Sorted(maps.Keys(r.Env)) {
		fmt.Fprintf(&sb, "| env %s | %s |\n", k, r.Env[k])
	}

	return sb.String()
}
