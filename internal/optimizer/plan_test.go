// SPDX-License-Identifier: MPL-2.0

package optimizer

import (
	"errors"
	"slices"
	"testing"

	"grugjust/internal/container"
	"grugjust/pkg/platform"
)

func TestSelect(t *testing.T) {
	t.Parallel()

	const project = "/home/grug/grug"

	tests := []struct {
		arch        platform.MachineName
		wantARM64   bool
		wantImage   container.ImageRef
		wantPlat    string
		wantCacheAt string
	}{
		{"arm64", true, DefaultARM64Image, "", ARM64TargetDir},
		{"aarch64-arm64", true, DefaultARM64Image, "", ARM64TargetDir},
		{"x86_64", false, DefaultImage, AMD64Platform, DefaultTargetDir},
		{"", false, DefaultImage, AMD64Platform, DefaultTargetDir},
		{"armv7l", false, DefaultImage, AMD64Platform, DefaultTargetDir},
		// Linux reports aarch64, which does not contain "arm64".
		{"aarch64", false, DefaultImage, AMD64Platform, DefaultTargetDir},
	}

	for _, tt := range tests {
		t.Run(string(tt.arch), func(t *testing.T) {
			t.Parallel()

			plan, err := Select(tt.arch, project, Settings{})
			if err != nil {
				t.Fatalf("Select() error = %v", err)
			}
			if plan.ARM64 != tt.wantARM64 {
				t.Errorf("ARM64 = %v, want %v", plan.ARM64, tt.wantARM64)
			}
			if plan.Image != tt.wantImage {
				t.Errorf("Image = %q, want %q", plan.Image, tt.wantImage)
			}
			if plan.Platform != tt.wantPlat {
				t.Errorf("Platform = %q, want %q", plan.Platform, tt.wantPlat)
			}
			wantCache := container.NamedVolume{Source: "grug_cache", Target: tt.wantCacheAt}
			if plan.CacheVolume != wantCache {
				t.Errorf("CacheVolume = %+v, want %+v", plan.CacheVolume, wantCache)
			}
			wantRegistry := container.NamedVolume{Source: "registry_cache", Target: RegistryDir}
			if plan.RegistryVolume != wantRegistry {
				t.Errorf("RegistryVolume = %+v, want %+v", plan.RegistryVolume, wantRegistry)
			}
		})
	}
}

func TestSelect_Settings(t *testing.T) {
	t.Parallel()

	s := Settings{Image: "example/opt:2", ARM64Image: "example/opt-arm64:2", RegistryCache: "cargo_reg"}

	plan, err := Select("arm64", "/src/app", s)
	if err != nil {
		t.Fatalf("Select() error = %v", err)
	}
	if plan.Image != "example/opt-arm64:2" || plan.RegistryVolume.Source != "cargo_reg" {
		t.Errorf("arm64 plan ignored settings: %+v", plan)
	}

	plan, err = Select("x86_64", "/src/app", s)
	if err != nil {
		t.Fatalf("Select() error = %v", err)
	}
	if plan.Image != "example/opt:2" {
		t.Errorf("Image = %q, want example/opt:2", plan.Image)
	}
}

func TestPlan_RunOptions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		arch platform.MachineName
		want []string
	}{
		{
			arch: "arm64",
			want: []string{
				"run", "--rm",
				"-v", "/work/grug:/code",
				"--mount", "type=volume,source=grug_cache,target=/target",
				"--mount", "type=volume,source=registry_cache,target=/usr/local/cargo/registry",
				"leftcurve/optimizer-arm64:0.1.0",
			},
		},
		{
			arch: "x86_64",
			want: []string{
				"run", "--rm", "--platform", "linux/amd64",
				"-v", "/work/grug:/code",
				"--mount", "type=volume,source=grug_cache,target=/code/target",
				"--mount", "type=volume,source=registry_cache,target=/usr/local/cargo/registry",
				"leftcurve/optimizer:0.1.0",
			},
		},
	}

	for _, tt := range tests {
		t.Run(string(tt.arch), func(t *testing.T) {
			t.Parallel()

			plan, err := Select(tt.arch, "/work/grug", DefaultSettings())
			if err != nil {
				t.Fatalf("Select() error = %v", err)
			}
			opts := plan.RunOptions()
			if err := opts.Validate(); err != nil {
				t.Fatalf("RunOptions().Validate() error = %v", err)
			}
			got := container.NewBaseCLIEngine("docker").RunArgs(opts)
			if !slices.Equal(got, tt.want) {
				t.Errorf("RunArgs() =\n  %q\nwant\n  %q", got, tt.want)
			}
		})
	}
}

func TestSelect_ColonInProjectDir(t *testing.T) {
	t.Parallel()

	for _, dir := range []string{"/src/a:b/grug", "/src/grug:ro"} {
		t.Run(dir, func(t *testing.T) {
			t.Parallel()
			if _, err := Select("x86_64", dir, DefaultSettings()); !errors.Is(err, ErrInvalidProjectDir) {
				t.Errorf("Select(%q) error = %v, want ErrInvalidProjectDir", dir, err)
			}
		})
	}
}

func TestCacheVolumeName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		dir     string
		want    string
		wantErr bool
	}{
		{dir: "/home/grug/grug", want: "grug_cache"},
		{dir: "/home/grug/grug/", want: "grug_cache"},
		{dir: "/src/left-curve", want: "left-curve_cache"},
		{dir: "relative/dir", wantErr: true},
		{dir: "/", wantErr: true},
		{dir: "/src/a,b", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.dir, func(t *testing.T) {
			t.Parallel()
			got, err := CacheVolumeName(tt.dir)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidProjectDir) {
					t.Errorf("CacheVolumeName() error = %v, want ErrInvalidProjectDir", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("CacheVolumeName() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("CacheVolumeName() = %q, want %q", got, tt.want)
			}
		})
	}
}
