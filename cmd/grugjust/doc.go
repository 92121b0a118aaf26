// SPDX-License-Identifier: MPL-2.0

// Package cmd contains the grugjust CLI.
//
// The root command takes an optional recipe name and dispatches it; with no
// name the default recipe lists the recipe book. The config and completion
// subcommands manage the configuration file and shell completion scripts.
package cmd
