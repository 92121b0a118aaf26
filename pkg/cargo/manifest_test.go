// SPDX-License-Identifier: MPL-2.0

package cargo

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

func writeManifest(t *testing.T, dir, content string) {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, ManifestFileName), []byte(content), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
}

func TestDescribe(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		workspace string
		crate     string
		want      Info
		wantErr   error
	}{
		{
			name: "plain package",
			crate: `
[package]
name = "grug-node"
version = "0.1.0"
description = "Grug node"
`,
			want: Info{Name: "grug-node", Version: "0.1.0", Description: "Grug node", Binaries: []string{"grug-node"}},
		},
		{
			name: "bin targets",
			crate: `
[package]
name = "grug-cli"
version = "0.2.0"

[[bin]]
name = "grug"
path = "src/main.rs"
`,
			want: Info{Name: "grug-cli", Version: "0.2.0", Binaries: []string{"grug"}},
		},
		{
			name: "workspace inheritance",
			workspace: `
[workspace]
members = ["bin", "crates/*"]

[workspace.package]
version = "0.3.1"
description = "Grug workspace"
`,
			crate: `
[package]
name = "grug-node"
version = { workspace = true }
description.workspace = true
`,
			want: Info{Name: "grug-node", Version: "0.3.1", Description: "Grug workspace", Binaries: []string{"grug-node"}},
		},
		{
			name: "inherited version missing from workspace",
			workspace: `
[workspace]
members = ["bin"]
`,
			crate: `
[package]
name = "grug-node"
version.workspace = true
`,
			wantErr: ErrInheritedField,
		},
		{
			name:    "no package table",
			crate:   "[workspace]\nmembers = []\n",
			wantErr: ErrNoPackage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			root := t.TempDir()
			if tt.workspace != "" {
				writeManifest(t, root, tt.workspace)
			}
			writeManifest(t, filepath.Join(root, "bin"), tt.crate)

			got, err := Describe(root, "bin")
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Describe() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Describe() error: %v", err)
			}
			if got.Name != tt.want.Name || got.Version != tt.want.Version || got.Description != tt.want.Description {
				t.Errorf("Describe() = %+v, want %+v", got, tt.want)
			}
			if !slices.Equal(got.Binaries, tt.want.Binaries) {
				t.Errorf("Binaries = %v, want %v", got.Binaries, tt.want.Binaries)
			}
		})
	}
}

func TestDescribe_MissingManifest(t *testing.T) {
	t.Parallel()

	_, err := Describe(t.TempDir(), "bin")
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Describe() error = %v, want os.ErrNotExist", err)
	}
}

func TestParseManifest_SyntaxError(t *testing.T) {
	t.Parallel()

	_, err := ParseManifest([]byte("[package\nname = 1"), "bin/Cargo.toml")
	if err == nil {
		t.Fatal("expected parse error")
	}
	if !strings.HasPrefix(err.Error(), "bin/Cargo.toml:") {
		t.Errorf("error should start with the file name, got %q", err)
	}
}

func TestInfo_String(t *testing.T) {
	t.Parallel()

	if got := (Info{Name: "grug", Version: "1.0.0"}).String(); got != "grug v1.0.0" {
		t.Errorf("String() = %q", got)
	}
	if got := (Info{Name: "grug"}).String(); got != "grug" {
		t.Errorf("String() = %q", got)
	}
}
