// SPDX-License-Identifier: MPL-2.0

// Package runtime executes recipe bodies.
//
// Each recipe kind has one runtime: exec recipes run on the host through
// NativeRuntime, shell recipes are interpreted in-process by VirtualRuntime
// (mvdan.cc/sh), and the optimize recipe runs the contract optimizer image
// through ContainerRuntime. Registry maps kinds to runtimes and checks
// availability and validity before anything is started.
//
// All runtimes are synchronous and report the external tool's exit status in
// Result.ExitCode. Result.Error is reserved for failures to start the tool.
package runtime
