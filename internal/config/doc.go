// SPDX-License-Identifier: MPL-2.0

// Package config handles grugjust configuration using Viper with CUE as the file format.
//
// Configuration is loaded from $XDG_CONFIG_HOME/grugjust/config.cue (~/.config on
// Linux when unset, ~/Library/Application Support on macOS, %APPDATA% on Windows),
// then ./config.cue, unless an explicit file is given. Every key can be
// overridden from the environment with the GRUGJUST_ prefix, dots replaced by
// underscores (GRUGJUST_OPTIMIZER_IMAGE, GRUGJUST_UI_VERBOSE).
//
// Files are validated against the embedded #Config schema (config_schema.cue).
package config
