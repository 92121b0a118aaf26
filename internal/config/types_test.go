// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"testing"

	"grugjust/internal/container"
)

func TestContainerEngine_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		value   ContainerEngine
		wantErr bool
	}{
		{ContainerEngineDocker, false},
		{ContainerEnginePodman, false},
		{"", true},
		{"Docker", true},
		{"lxc", true},
	}

	for _, tt := range tests {
		t.Run(string(tt.value), func(t *testing.T) {
			t.Parallel()
			err := tt.value.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidContainerEngine) {
				t.Errorf("error should wrap ErrInvalidContainerEngine, got %v", err)
			}
		})
	}
}

func TestContainerEngine_EngineType(t *testing.T) {
	t.Parallel()

	if got := ContainerEnginePodman.EngineType(); got != container.EngineTypePodman {
		t.Errorf("EngineType() = %q, want podman", got)
	}
}

func TestColorScheme_Validate(t *testing.T) {
	t.Parallel()

	for _, cs := range []ColorScheme{ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight} {
		if err := cs.Validate(); err != nil {
			t.Errorf("%q.Validate() error: %v", cs, err)
		}
	}
	if err := ColorScheme("neon").Validate(); !errors.Is(err, ErrInvalidColorScheme) {
		t.Errorf("Validate() error = %v, want ErrInvalidColorScheme", err)
	}
}

func TestOptimizerConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cfg     OptimizerConfig
		wantErr bool
	}{
		{"empty uses defaults", OptimizerConfig{}, false},
		{"custom", OptimizerConfig{Image: "example.com/opt:1", ARM64Image: "example.com/opt-arm64:1", RegistryCache: "cargo_registry"}, false},
		{"bad image", OptimizerConfig{Image: "has space:1"}, true},
		{"bad registry", OptimizerConfig{RegistryCache: "a=b"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidOptimizerConfig) {
				t.Errorf("error should wrap ErrInvalidOptimizerConfig, got %v", err)
			}
		})
	}
}

func TestOptimizerConfig_Settings(t *testing.T) {
	t.Parallel()

	s := OptimizerConfig{Image: "a:1", ARM64Image: "b:2", RegistryCache: "reg"}.Settings()
	if s.Image != "a:1" || s.ARM64Image != "b:2" || s.RegistryCache != "reg" {
		t.Errorf("Settings() = %+v", s)
	}
}

func TestConfig_Validate_CollectsAllErrors(t *testing.T) {
	t.Parallel()

	cfg := Config{
		ContainerEngine: "lxc",
		RecipesFile:     "   ",
		Optimizer:       OptimizerConfig{RegistryCache: "a,b"},
		UI:              UIConfig{ColorScheme: "neon"},
	}

	err := cfg.Validate()
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("Validate() error = %v, want ErrInvalidConfig", err)
	}
	var cfgErr *InvalidConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("error should be *InvalidConfigError, got %T", err)
	}
	if len(cfgErr.FieldErrors) != 4 {
		t.Errorf("FieldErrors = %d, want 4: %v", len(cfgErr.FieldErrors), cfgErr.FieldErrors)
	}
	if got := cfgErr.Error(); got != "invalid config: 4 field errors" {
		t.Errorf("Error() = %q", got)
	}
}
