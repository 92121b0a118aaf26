// SPDX-License-Identifier: MPL-2.0

package container

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// SELinuxLabelNone means no SELinux label is applied to volume mounts.
	SELinuxLabelNone SELinuxLabel = ""
	// SELinuxLabelShared allows sharing the volume between containers.
	SELinuxLabelShared SELinuxLabel = "z"
	// SELinuxLabelPrivate restricts the volume to a single container.
	SELinuxLabelPrivate SELinuxLabel = "Z"
)

var (
	// ErrInvalidVolumeMount is returned for a bind mount with an empty path or bad label.
	ErrInvalidVolumeMount = errors.New("invalid volume mount")
	// ErrInvalidNamedVolume is returned for a named volume with an empty source or target.
	ErrInvalidNamedVolume = errors.New("invalid named volume")
)

type (
	// SELinuxLabel represents an SELinux volume labeling option.
	SELinuxLabel string

	// VolumeMount is a bind mount of a host path into the container.
	VolumeMount struct {
		HostPath      string
		ContainerPath string
		ReadOnly      bool
		SELinux       SELinuxLabel
	}

	// NamedVolume is an engine-managed volume mounted at Target.
	// The engine creates the volume on first use.
	NamedVolume struct {
		Source string
		Target string
	}
)

// Validate returns an error if the label is not "", "z" or "Z".
func (s SELinuxLabel) Validate() error {
	switch s {
	case SELinuxLabelNone, SELinuxLabelShared, SELinuxLabelPrivate:
		return nil
	default:
		return fmt.Errorf("%w: SELinux label %q (valid: empty, z, Z)", ErrInvalidVolumeMount, s)
	}
}

// Validate returns an error if a path is blank or the label is unknown.
func (v VolumeMount) Validate() error {
	if strings.TrimSpace(v.HostPath) == "" || strings.TrimSpace(v.ContainerPath) == "" {
		return fmt.Errorf("%w: %q: host and container paths must be non-empty", ErrInvalidVolumeMount, v.String())
	}
	return v.SELinux.Validate()
}

// String returns the mount in "host:container[:options]" format.
func (v VolumeMount) String() string {
	s := v.HostPath + ":" + v.ContainerPath

	var options []string
	if v.ReadOnly {
		options = append(options, "ro")
	}
	if v.SELinux != "" {
		options = append(options, string(v.SELinux))
	}
	if len(options) > 0 {
		s += ":" + strings.Join(options, ",")
	}
	return s
}

// Validate returns an error if the source or target is blank, or the source
// contains characters that would break the --mount field list.
func (n NamedVolume) Validate() error {
	if strings.TrimSpace(n.Source) == "" || strings.TrimSpace(n.Target) == "" {
		return fmt.Errorf("%w: source and target must be non-empty", ErrInvalidNamedVolume)
	}
	if strings.ContainsAny(n.Source, ",=") || strings.ContainsAny(n.Target, ",") {
		return fmt.Errorf("%w: %q contains ',' or '='", ErrInvalidNamedVolume, n.String())
	}
	return nil
}

// String returns the --mount value, e.g. "type=volume,source=registry_cache,target=/usr/local/cargo/registry".
func (n NamedVolume) String() string {
	return "type=volume,source=" + n.Source + ",target=" + n.Target
}
