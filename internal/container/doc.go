// SPDX-License-Identifier: MPL-2.0

// Package container drives container engines (Docker/Podman) through their CLI.
//
// The Engine interface covers what recipes need: availability probing, the
// engine version and a blocking `run` whose exit status is captured rather
// than returned as an error. DockerEngine and PodmanEngine embed BaseCLIEngine
// for argument construction and command execution.
//
// Engine selection uses NewEngine(EngineType), which falls back to the other
// engine when the preferred one is unavailable, or AutoDetectEngine() when no
// preference is configured (Docker is tried first).
package container
