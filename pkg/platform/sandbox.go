// SPDX-License-Identifier: MPL-2.0

package platform

import (
	"os"
	"sync"
)

const (
	// SandboxNone indicates no sandbox environment detected.
	SandboxNone SandboxType = ""
	// SandboxFlatpak indicates a Flatpak sandbox environment.
	SandboxFlatpak SandboxType = "flatpak"
	// SandboxSnap indicates a Snap sandbox environment.
	SandboxSnap SandboxType = "snap"
)

// detectOnce caches the sandbox detection result for the lifetime of the process.
// detectSandboxFrom must not panic: sync.OnceValue re-panics on every call.
var detectOnce = sync.OnceValue(func() SandboxType {
	return detectSandboxFrom(os.Getenv, statFile)
})

// SandboxType identifies the type of application sandbox, if any.
type SandboxType string

// String returns the sandbox name.
func (s SandboxType) String() string { return string(s) }

// DetectSandbox returns the sandbox the current process runs in.
// The result is cached after the first call.
func DetectSandbox() SandboxType {
	return detectOnce()
}

// HostCommand rewrites name/args so the tool runs on the host when grugjust
// itself is confined to a sandbox. Outside a sandbox it returns its inputs.
//
// cargo and docker live on the host, so a Flatpak-packaged grugjust must call
// them through `flatpak-spawn --host`.
func HostCommand(name string, args []string) (string, []string) {
	return HostCommandFor(DetectSandbox(), name, args)
}

// HostCommandFor is HostCommand for an explicit sandbox type.
func HostCommandFor(st SandboxType, name string, args []string) (string, []string) {
	spawn := SpawnCommandFor(st)
	if spawn == "" {
		return name, args
	}
	wrapped := make([]string, 0, len(args)+3)
	wrapped = append(wrapped, SpawnArgsFor(st)...)
	wrapped = append(wrapped, name)
	wrapped = append(wrapped, args...)
	return spawn, wrapped
}

// SpawnCommandFor returns the host spawn command for a sandbox type.
func SpawnCommandFor(st SandboxType) string {
	switch st {
	case SandboxFlatpak:
		return "flatpak-spawn"
	case SandboxSnap:
		return "snap"
	default:
		return ""
	}
}

// SpawnArgsFor returns the arguments placed before the wrapped command.
func SpawnArgsFor(st SandboxType) []string {
	switch st {
	case SandboxFlatpak:
		return []string{"--host"}
	case SandboxSnap:
		return []string{"run", "--shell"}
	default:
		return nil
	}
}

// detectSandboxFrom performs detection with injected lookups.
// Flatpak takes precedence over Snap.
func detectSandboxFrom(lookupEnv func(string) string, statFile func(string) error) SandboxType {
	if err := statFile("/.flatpak-info"); err == nil {
		return SandboxFlatpak
	}
	if lookupEnv("SNAP_NAME") != "" {
		return SandboxSnap
	}
	return SandboxNone
}

func statFile(path string) error {
	_, err := os.Stat(path)
	return err
}
