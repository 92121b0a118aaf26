// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"grugjust/internal/config"
	"grugjust/internal/testutil"
)

// newConfigHarness builds an App that loads configuration from disk.
func newConfigHarness(t *testing.T) (*App, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	app, err := NewApp(Dependencies{
		Config:  config.NewProvider(),
		WorkDir: t.TempDir(),
		Stdin:   strings.NewReader(""),
		Stdout:  stdout,
		Stderr:  stderr,
	})
	if err != nil {
		t.Fatalf("NewApp() error = %v", err)
	}
	return app, stdout, stderr
}

func runApp(app *App, args ...string) error {
	root := NewRootCommand(app)
	root.SetArgs(args)
	root.SetOut(app.stdout)
	root.SetErr(app.stderr)
	return root.ExecuteContext(context.Background())
}

func TestConfigInitThenShow(t *testing.T) {
	t.Parallel()

	app, stdout, _ := newConfigHarness(t)
	path := filepath.Join(t.TempDir(), "nested", "config.cue")

	if err := runApp(app, "config", "init", "--config", path); err != nil {
		t.Fatalf("config init error = %v", err)
	}
	if !strings.Contains(stdout.String(), "Created default configuration at "+path) {
		t.Errorf("init output = %q", stdout.String())
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config file not written: %v", err)
	}

	stdout.Reset()
	if err := runApp(app, "config", "show", "--config", path); err != nil {
		t.Fatalf("config show error = %v", err)
	}
	out := stdout.String()
	for _, want := range []string{"Current Configuration", path, "container_engine: docker", "leftcurve/optimizer:0.1.0", "registry_cache"} {
		if !strings.Contains(out, want) {
			t.Errorf("show output missing %q:\n%s", want, out)
		}
	}
}

func TestConfigInit_Exists(t *testing.T) {
	t.Parallel()

	app, stdout, _ := newConfigHarness(t)
	path := filepath.Join(t.TempDir(), "config.cue")
	testutil.MustWriteFile(t, path, []byte(`container_engine: "podman"`+"\n"))

	if err := runApp(app, "config", "init", "--config", path); err != nil {
		t.Fatalf("config init error = %v", err)
	}
	if !strings.Contains(stdout.String(), "already exists") {
		t.Errorf("init output = %q", stdout.String())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "podman") {
		t.Errorf("existing config overwritten without --force:\n%s", data)
	}

	stdout.Reset()
	if err := runApp(app, "config", "init", "--force", "--config", path); err != nil {
		t.Fatalf("config init --force error = %v", err)
	}
	data, err = os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `container_engine: "docker"`) {
		t.Errorf("--force did not rewrite the config:\n%s", data)
	}
}

func TestConfigDump(t *testing.T) {
	t.Parallel()

	app, stdout, _ := newConfigHarness(t)
	path := filepath.Join(t.TempDir(), "config.cue")
	testutil.MustWriteFile(t, path, []byte(`container_engine: "podman"`+"\n"))

	if err := runApp(app, "config", "dump", "--config", path); err != nil {
		t.Fatalf("config dump error = %v", err)
	}
	if !strings.Contains(stdout.String(), `container_engine: "podman"`) {
		t.Errorf("dump output = %q", stdout.String())
	}
}

func TestConfigShow_InvalidFile(t *testing.T) {
	t.Parallel()

	app, _, stderr := newConfigHarness(t)
	path := filepath.Join(t.TempDir(), "config.cue")
	testutil.MustWriteFile(t, path, []byte(`container_engine: "lxc"`+"\n"))

	if err := runApp(app, "config", "show", "--config", path); err == nil {
		t.Fatal("config show with an invalid file succeeded, want error")
	}
	if !strings.Contains(stderr.String(), path) {
		t.Errorf("stderr = %q, want the config path", stderr.String())
	}
}

func TestConfigPath(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)

	app, stdout, _ := newConfigHarness(t)
	if err := runApp(app, "config", "path"); err != nil {
		t.Fatalf("config path error = %v", err)
	}

	want, err := config.ConfigFilePath()
	if err != nil {
		t.Fatal(err)
	}
	if got := strings.TrimSpace(stdout.String()); got != want {
		t.Errorf("config path = %q, want %q", got, want)
	}
}

func TestCompletionCommand(t *testing.T) {
	t.Parallel()

	tests := []struct {
		shell string
		want  string
	}{
		{"bash", "grugjust"},
		{"zsh", "#compdef grugjust"},
		{"fish", "complete -c grugjust"},
		{"powershell", "grugjust"},
	}

	for _, tt := range tests {
		t.Run(tt.shell, func(t *testing.T) {
			t.Parallel()
			app, stdout, _ := newConfigHarness(t)
			if err := runApp(app, "completion", tt.shell); err != nil {
				t.Fatalf("completion %s error = %v", tt.shell, err)
			}
			if !strings.Contains(stdout.String(), tt.want) {
				t.Errorf("completion %s output missing %q", tt.shell, tt.want)
			}
		})
	}

	t.Run("unknown shell", func(t *testing.T) {
		t.Parallel()
		app, _, _ := newConfigHarness(t)
		if err := runApp(app, "completion", "tcsh"); err == nil {
			t.Error("completion tcsh succeeded, want error")
		}
	})
}
