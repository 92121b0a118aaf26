// SPDX-License-Identifier: MPL-2.0

package platform

import (
	"runtime"
	"strings"
)

// ARM64Token is the substring that marks a machine hardware name as ARM64.
// Matching is a plain substring test, so "arm64" and "aarch64-arm64" match
// while "aarch64" and "armv7l" do not.
const ARM64Token = "arm64"

type (
	// MachineName is the machine hardware name reported by the host,
	// e.g. "x86_64", "arm64" or "aarch64". The zero value means unknown.
	MachineName string

	// ArchFunc reports the host machine hardware name.
	// Runtimes accept one so tests can pin the architecture.
	ArchFunc func() MachineName
)

// String returns the raw machine name.
func (m MachineName) String() string { return string(m) }

// IsARM64 reports whether the machine name contains the ARM64 token.
func (m MachineName) IsARM64() bool { return IsARM64(string(m)) }

// IsARM64 reports whether arch contains the ARM64 token.
// Unknown and empty names are not ARM64.
func IsARM64(arch string) bool {
	return strings.Contains(arch, ARM64Token)
}

// HostArch returns the machine hardware name of the running host.
// It falls back to a GOARCH-derived name when the kernel cannot be asked.
func HostArch() MachineName {
	if name, err := unameMachine(); err == nil && name != "" {
		return MachineName(name)
	}
	return machineFromGOARCH(runtime.GOARCH)
}

// machineFromGOARCH maps a Go architecture to the name uname would print.
func machineFromGOARCH(goarch string) MachineName {
	switch goarch {
	case "amd64":
		return "x86_64"
	case "386":
		return "i686"
	case "arm64":
		return "arm64"
	case "arm":
		return "armv7l"
	default:
		return MachineName(goarch)
	}
}
