// SPDX-License-Identifier: MPL-2.0

package optimizer

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"grugjust/internal/container"
	"grugjust/pkg/platform"
)

const (
	// DefaultImage runs on every non-arm64 host under linux/amd64.
	DefaultImage container.ImageRef = "leftcurve/optimizer:0.1.0"
	// DefaultARM64Image runs natively on arm64 hosts.
	DefaultARM64Image container.ImageRef = "leftcurve/optimizer-arm64:0.1.0"
	// DefaultRegistryCache is the named volume holding the cargo registry.
	DefaultRegistryCache = "registry_cache"

	// AMD64Platform is the platform forced for the default image.
	AMD64Platform = "linux/amd64"

	// CodeDir is where the project directory is bind-mounted.
	CodeDir = "/code"
	// ARM64TargetDir is the arm64 image's build output directory.
	ARM64TargetDir = "/target"
	// DefaultTargetDir is the default image's build output directory.
	DefaultTargetDir = "/code/target"
	// RegistryDir is cargo's registry cache inside both images.
	RegistryDir = "/usr/local/cargo/registry"

	cacheVolumeSuffix = "_cache"
)

// ErrInvalidProjectDir is returned when the project directory cannot name a cache volume.
var ErrInvalidProjectDir = errors.New("invalid project directory")

type (
	// Settings holds the configurable parts of the optimizer invocation.
	// Zero fields fall back to the defaults.
	Settings struct {
		Image         container.ImageRef
		ARM64Image    container.ImageRef
		RegistryCache string
	}

	// Plan is a fully resolved optimizer invocation.
	Plan struct {
		// Arch is the machine name the plan was selected for.
		Arch platform.MachineName
		// ARM64 reports whether the arm64 branch was taken.
		ARM64 bool
		// Image is the optimizer image.
		Image container.ImageRef
		// Platform is "" on arm64 and linux/amd64 otherwise.
		Platform string
		// ProjectDir is the host directory mounted at /code.
		ProjectDir string
		// CacheVolume is the per-project build cache volume.
		CacheVolume container.NamedVolume
		// RegistryVolume is the shared cargo registry volume.
		RegistryVolume container.NamedVolume
	}
)

// DefaultSettings returns the stock images and registry volume.
func DefaultSettings() Settings {
	return Settings{
		Image:         DefaultImage,
		ARM64Image:    DefaultARM64Image,
		RegistryCache: DefaultRegistryCache,
	}
}

// withDefaults fills zero fields from DefaultSettings.
func (s Settings) withDefaults() Settings {
	d := DefaultSettings()
	if s.Image == "" {
		s.Image = d.Image
	}
	if s.ARM64Image == "" {
		s.ARM64Image = d.ARM64Image
	}
	if s.RegistryCache == "" {
		s.RegistryCache = d.RegistryCache
	}
	return s
}

// Select picks the image, platform and mounts for the given host machine name.
// projectDir must be absolute; its base name prefixes the cache volume.
// A ':' outside the drive letter is rejected because the engine splits the
// bind mount on it.
func Select(arch platform.MachineName, projectDir string, settings Settings) (Plan, error) {
	if strings.Contains(projectDir[len(filepath.VolumeName(projectDir)):], ":") {
		return Plan{}, fmt.Errorf("%w: %q contains ':' and cannot be bind mounted", ErrInvalidProjectDir, projectDir)
	}
	cacheName, err := CacheVolumeName(projectDir)
	if err != nil {
		return Plan{}, err
	}
	s := settings.withDefaults()

	plan := Plan{
		Arch:           arch,
		ARM64:          arch.IsARM64(),
		ProjectDir:     projectDir,
		RegistryVolume: container.NamedVolume{Source: s.RegistryCache, Target: RegistryDir},
	}
	if plan.ARM64 {
		plan.Image = s.ARM64Image
		plan.CacheVolume = container.NamedVolume{Source: cacheName, Target: ARM64TargetDir}
	} else {
		plan.Image = s.Image
		plan.Platform = AMD64Platform
		plan.CacheVolume = container.NamedVolume{Source: cacheName, Target: DefaultTargetDir}
	}
	return plan, nil
}

// CacheVolumeName returns "<basename>_cache" for the project directory.
func CacheVolumeName(projectDir string) (string, error) {
	if !filepath.IsAbs(projectDir) {
		return "", fmt.Errorf("%w: %q is not absolute", ErrInvalidProjectDir, projectDir)
	}
	base := filepath.Base(filepath.Clean(projectDir))
	if base == string(filepath.Separator) || base == "." || strings.ContainsAny(base, ",=") {
		return "", fmt.Errorf("%w: %q cannot name a cache volume", ErrInvalidProjectDir, projectDir)
	}
	return base + cacheVolumeSuffix, nil
}

// RunOptions converts the plan into container run options.
// The container is removed after it exits.
func (p Plan) RunOptions() container.RunOptions {
	return container.RunOptions{
		Image:    p.Image,
		Platform: p.Platform,
		Remove:   true,
		Volumes:  []container.VolumeMount{{HostPath: p.ProjectDir, ContainerPath: CodeDir}},
		Mounts:   []container.NamedVolume{p.CacheVolume, p.RegistryVolume},
	}
}
