// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"grugjust/internal/issue"
	"grugjust/internal/optimizer"
	"grugjust/internal/testutil"
)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()

	if cfg.ContainerEngine != ContainerEngineDocker {
		t.Errorf("ContainerEngine = %q, want docker", cfg.ContainerEngine)
	}
	if cfg.Optimizer.Image != string(optimizer.DefaultImage) {
		t.Errorf("Optimizer.Image = %q, want %q", cfg.Optimizer.Image, optimizer.DefaultImage)
	}
	if cfg.Optimizer.ARM64Image != string(optimizer.DefaultARM64Image) {
		t.Errorf("Optimizer.ARM64Image = %q, want %q", cfg.Optimizer.ARM64Image, optimizer.DefaultARM64Image)
	}
	if cfg.Optimizer.RegistryCache != optimizer.DefaultRegistryCache {
		t.Errorf("Optimizer.RegistryCache = %q", cfg.Optimizer.RegistryCache)
	}
	if cfg.UI.ColorScheme != ColorSchemeAuto || cfg.UI.Verbose || cfg.UI.Interactive {
		t.Errorf("unexpected UI defaults: %+v", cfg.UI)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should be valid: %v", err)
	}
}

func TestConfigDir_XDG(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("XDG_CONFIG_HOME only applies on Linux")
	}
	t.Cleanup(testutil.SetHomeDir(t, t.TempDir()))
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)

	dir, err := ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir() error: %v", err)
	}
	if want := filepath.Join(xdg, AppName); dir != want {
		t.Errorf("ConfigDir() = %q, want %q", dir, want)
	}
}

func TestConfigDir_HomeFallback(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("~/.config fallback only applies on Linux")
	}
	home := t.TempDir()
	t.Cleanup(testutil.SetHomeDir(t, home))

	dir, err := ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir() error: %v", err)
	}
	if want := filepath.Join(home, ".config", AppName); dir != want {
		t.Errorf("ConfigDir() = %q, want %q", dir, want)
	}
}

func TestConfigDir_Override(t *testing.T) {
	dir := t.TempDir()
	SetConfigDirOverride(dir)
	t.Cleanup(Reset)

	got, err := ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir() error: %v", err)
	}
	if got != dir {
		t.Errorf("ConfigDir() = %q, want %q", got, dir)
	}
}

func TestLoad_NoFileUsesDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := NewProvider().Load(context.Background(), LoadOptions{
		ConfigDirPath: t.TempDir(),
		BaseDir:       t.TempDir(),
	})
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Source != "" {
		t.Errorf("Source = %q, want empty", cfg.Source)
	}
	if cfg.ContainerEngine != ContainerEngineDocker {
		t.Errorf("ContainerEngine = %q, want docker", cfg.ContainerEngine)
	}
}

func TestLoad_ConfigDirFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "config.cue")
	testutil.MustWriteFile(t, path, []byte(`
container_engine: "podman"
optimizer: {
	image: "example.com/optimizer:1.2.3"
}
ui: verbose: true
`))

	cfg, err := NewProvider().Load(context.Background(), LoadOptions{ConfigDirPath: dir, BaseDir: t.TempDir()})
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Source != path {
		t.Errorf("Source = %q, want %q", cfg.Source, path)
	}
	if cfg.ContainerEngine != ContainerEnginePodman {
		t.Errorf("ContainerEngine = %q, want podman", cfg.ContainerEngine)
	}
	if cfg.Optimizer.Image != "example.com/optimizer:1.2.3" {
		t.Errorf("Optimizer.Image = %q", cfg.Optimizer.Image)
	}
	// Keys absent from the file keep their defaults.
	if cfg.Optimizer.ARM64Image != string(optimizer.DefaultARM64Image) {
		t.Errorf("Optimizer.ARM64Image = %q, want default", cfg.Optimizer.ARM64Image)
	}
	if !cfg.UI.Verbose {
		t.Error("UI.Verbose should be true")
	}
}

func TestLoad_BaseDirFile(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	testutil.MustWriteFile(t, filepath.Join(base, "config.cue"), []byte(`recipes_file: "ci.cue"`))

	cfg, err := NewProvider().Load(context.Background(), LoadOptions{ConfigDirPath: t.TempDir(), BaseDir: base})
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.RecipesFile != "ci.cue" {
		t.Errorf("RecipesFile = %q, want ci.cue", cfg.RecipesFile)
	}
}

func TestLoad_ConfigDirWinsOverBaseDir(t *testing.T) {
	t.Parallel()

	dir, base := t.TempDir(), t.TempDir()
	testutil.MustWriteFile(t, filepath.Join(dir, "config.cue"), []byte(`container_engine: "podman"`))
	testutil.MustWriteFile(t, filepath.Join(base, "config.cue"), []byte(`container_engine: "docker"`))

	cfg, err := NewProvider().Load(context.Background(), LoadOptions{ConfigDirPath: dir, BaseDir: base})
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.ContainerEngine != ContainerEnginePodman {
		t.Errorf("ContainerEngine = %q, want podman", cfg.ContainerEngine)
	}
}

func TestLoad_ExplicitFileMissing(t *testing.T) {
	t.Parallel()

	_, err := NewProvider().Load(context.Background(), LoadOptions{
		ConfigFilePath: filepath.Join(t.TempDir(), "nope.cue"),
	})
	if err == nil {
		t.Fatal("expected error for missing explicit config file")
	}

	var actionable *issue.ActionableError
	if !errors.As(err, &actionable) {
		t.Fatalf("error should be *issue.ActionableError, got %T", err)
	}
	if len(actionable.Suggestions) == 0 {
		t.Error("expected suggestions")
	}
}

func TestLoad_SchemaViolations(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
	}{
		{"unknown engine", `container_engine: "lxc"`},
		{"unknown field", `colour: "red"`},
		{"bad registry volume", `optimizer: registry_cache: "a,b"`},
		{"empty image", `optimizer: image: ""`},
		{"bad color scheme", `ui: color_scheme: "neon"`},
		{"syntax error", `container_engine: `},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(t.TempDir(), "config.cue")
			testutil.MustWriteFile(t, path, []byte(tt.content))

			_, err := NewProvider().Load(context.Background(), LoadOptions{ConfigFilePath: path})
			if err == nil {
				t.Fatal("expected schema error")
			}
			var actionable *issue.ActionableError
			if !errors.As(err, &actionable) {
				t.Fatalf("error should be *issue.ActionableError, got %T", err)
			}
			if actionable.Resource != path {
				t.Errorf("Resource = %q, want %q", actionable.Resource, path)
			}
		})
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("GRUGJUST_CONTAINER_ENGINE", "podman")
	t.Setenv("GRUGJUST_OPTIMIZER_ARM64_IMAGE", "example.com/opt-arm:2")
	t.Setenv("GRUGJUST_UI_INTERACTIVE", "true")

	dir := t.TempDir()
	testutil.MustWriteFile(t, filepath.Join(dir, "config.cue"), []byte(`container_engine: "docker"`))

	cfg, err := NewProvider().Load(context.Background(), LoadOptions{ConfigDirPath: dir, BaseDir: t.TempDir()})
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.ContainerEngine != ContainerEnginePodman {
		t.Errorf("ContainerEngine = %q, env should win over file", cfg.ContainerEngine)
	}
	if cfg.Optimizer.ARM64Image != "example.com/opt-arm:2" {
		t.Errorf("Optimizer.ARM64Image = %q", cfg.Optimizer.ARM64Image)
	}
	if !cfg.UI.Interactive {
		t.Error("UI.Interactive should be true")
	}
}

func TestLoad_InvalidEnvOverride(t *testing.T) {
	t.Setenv("GRUGJUST_CONTAINER_ENGINE", "lxc")

	_, err := NewProvider().Load(context.Background(), LoadOptions{ConfigDirPath: t.TempDir(), BaseDir: t.TempDir()})
	if !errors.Is(err, ErrInvalidContainerEngine) {
		t.Fatalf("error = %v, want ErrInvalidContainerEngine", err)
	}
}

func TestLoad_Canceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewProvider().Load(ctx, LoadOptions{})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

func TestCreateDefaultConfig(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "config.cue")

	written, err := CreateDefaultConfig(path, false)
	if err != nil {
		t.Fatalf("CreateDefaultConfig() error: %v", err)
	}
	if written != path {
		t.Errorf("written = %q, want %q", written, path)
	}

	// The generated file must load back to the defaults.
	cfg, err := NewProvider().Load(context.Background(), LoadOptions{ConfigFilePath: path})
	if err != nil {
		t.Fatalf("Load() of generated config error: %v", err)
	}
	def := DefaultConfig()
	if cfg.ContainerEngine != def.ContainerEngine || cfg.Optimizer != def.Optimizer || cfg.UI != def.UI {
		t.Errorf("round trip = %+v, want %+v", cfg, def)
	}

	if _, err := CreateDefaultConfig(path, false); !errors.Is(err, ErrConfigExists) {
		t.Errorf("second CreateDefaultConfig() error = %v, want ErrConfigExists", err)
	}
	if _, err := CreateDefaultConfig(path, true); err != nil {
		t.Errorf("forced CreateDefaultConfig() error: %v", err)
	}
}

func TestCreateDefaultConfig_DefaultPath(t *testing.T) {
	dir := t.TempDir()
	SetConfigDirOverride(dir)
	t.Cleanup(Reset)

	written, err := CreateDefaultConfig("", false)
	if err != nil {
		t.Fatalf("CreateDefaultConfig() error: %v", err)
	}
	if want := filepath.Join(dir, "config.cue"); written != want {
		t.Errorf("written = %q, want %q", written, want)
	}
	if _, err := os.Stat(written); err != nil {
		t.Errorf("config not written: %v", err)
	}
}

func TestGenerateCUE(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.RecipesFile = "ci.cue"
	out := GenerateCUE(cfg)

	for _, want := range []string{
		`container_engine: "docker"`,
		`recipes_file: "ci.cue"`,
		`image: "` + string(optimizer.DefaultImage) + `"`,
		`registry_cache: "registry_cache"`,
		`color_scheme: "auto"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("GenerateCUE() missing %q:\n%s", want, out)
		}
	}
}
