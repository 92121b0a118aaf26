// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"testing"
)

const testSchema = `
#Step: {
	name:     string & =~"^[a-z]+$"
	argv:     [...string] & [_, ...]
	quiet?:   bool
}
`

type testStep struct {
	Name  string   `json:"name"`
	Argv  []string `json:"argv"`
	Quiet bool     `json:"quiet,omitempty"`
}

func TestParseAndDecode(t *testing.T) {
	t.Parallel()

	t.Run("valid data decodes", func(t *testing.T) {
		t.Parallel()
		data := []byte(`
name: "lint"
argv: ["cargo", "clippy"]
quiet: true
`)
		result, err := ParseAndDecode[testStep]([]byte(testSchema), data, "#Step")
		if err != nil {
			t.Fatalf("ParseAndDecode failed: %v", err)
		}
		if result.Value.Name != "lint" {
			t.Errorf("Name = %q, want %q", result.Value.Name, "lint")
		}
		if len(result.Value.Argv) != 2 || result.Value.Argv[1] != "clippy" {
			t.Errorf("Argv = %v", result.Value.Argv)
		}
		if !result.Value.Quiet {
			t.Error("Quiet = false, want true")
		}
		if !result.Unified.Exists() {
			t.Error("Unified value should exist")
		}
	})

	t.Run("schema constraint violation", func(t *testing.T) {
		t.Parallel()
		data := []byte(`
name: "Lint"
argv: ["cargo"]
`)
		_, err := ParseAndDecode[testStep]([]byte(testSchema), data, "#Step", WithFilename("recipes.cue"))
		if err == nil {
			t.Fatal("expected error for name not matching pattern")
		}
		if !strings.Contains(err.Error(), "recipes.cue") {
			t.Errorf("error should name the file, got: %v", err)
		}
		if !strings.Contains(err.Error(), "name") {
			t.Errorf("error should name the field, got: %v", err)
		}
	})

	t.Run("missing required field", func(t *testing.T) {
		t.Parallel()
		_, err := ParseAndDecode[testStep]([]byte(testSchema), []byte(`name: "test"`), "#Step")
		if err == nil {
			t.Error("expected error for missing argv")
		}
	})

	t.Run("syntax error", func(t *testing.T) {
		t.Parallel()
		_, err := ParseAndDecode[testStep]([]byte(testSchema), []byte(`name: "test`), "#Step")
		if err == nil {
			t.Error("expected error for unterminated string")
		}
	})

	t.Run("unknown schema definition", func(t *testing.T) {
		t.Parallel()
		_, err := ParseAndDecode[testStep]([]byte(testSchema), []byte(`name: "x"`), "#Missing")
		if err == nil || !strings.Contains(err.Error(), "#Missing") {
			t.Errorf("expected missing definition error, got: %v", err)
		}
	})

	t.Run("size limit", func(t *testing.T) {
		t.Parallel()
		data := []byte(`name: "test"` + "\n" + `argv: ["cargo"]`)
		_, err := ParseAndDecode[testStep]([]byte(testSchema), data, "#Step", WithMaxFileSize(4))
		if err == nil || !strings.Contains(err.Error(), "exceeds maximum") {
			t.Errorf("expected size limit error, got: %v", err)
		}
	})

	t.Run("non-concrete allowed when requested", func(t *testing.T) {
		t.Parallel()
		schema := `#Opt: { engine?: "docker" | "podman" }`
		result, err := ParseAndDecodeString[map[string]any](schema, []byte(`{}`), "#Opt", WithConcrete(false))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(*result.Value) != 0 {
			t.Errorf("expected empty map, got %v", *result.Value)
		}
	})
}

func TestFormatPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path []string
		want string
	}{
		{path: nil, want: ""},
		{path: []string{"recipes"}, want: "recipes"},
		{path: []string{"recipes", "0", "kind"}, want: "recipes[0].kind"},
		{path: []string{"optimizer", "image"}, want: "optimizer.image"},
		{path: []string{"a", "1", "2"}, want: "a[1][2]"},
	}

	for _, tt := range tests {
		if got := formatPath(tt.path); got != tt.want {
			t.Errorf("formatPath(%v) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestFormatError_NonCUE(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		cause error
	}{
		{"plain", errors.New("boom")},
		{"wrapped not exist", fmt.Errorf("read config: %w", fs.ErrNotExist)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := FormatError(tt.cause, "config.cue")
			if !errors.Is(err, tt.cause) {
				t.Errorf("FormatError(%v) does not wrap its cause: %v", tt.cause, err)
			}
			var ve *ValidationError
			if errors.As(err, &ve) {
				t.Errorf("FormatError(%v) = %T, want a plain wrap", tt.cause, err)
			}
			if !strings.HasPrefix(err.Error(), "config.cue: ") {
				t.Errorf("error = %q, want file prefix", err)
			}
		})
	}

	if !errors.Is(FormatError(fmt.Errorf("x: %w", fs.ErrNotExist), "config.cue"), fs.ErrNotExist) {
		t.Error("FormatError should keep fs.ErrNotExist reachable")
	}
	if FormatError(nil, "config.cue") != nil {
		t.Error("FormatError(nil) should be nil")
	}
}

func TestFormatError_CUE(t *testing.T) {
	t.Parallel()

	data := []byte(`
name: "Lint"
argv: ["cargo"]
`)
	_, err := ParseAndDecode[testStep]([]byte(testSchema), data, "#Step", WithFilename("recipes.cue"))
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("ParseAndDecode error = %T %v, want *ValidationError", err, err)
	}
	if ve.File != "recipes.cue" || len(ve.Lines) == 0 {
		t.Errorf("ValidationError = %+v", ve)
	}
	if !strings.Contains(err.Error(), "name") {
		t.Errorf("error = %q, want the failing field", err)
	}
	if errors.Unwrap(err) == nil {
		t.Error("ValidationError should unwrap to the CUE error")
	}
}

func TestCheckFileSize(t *testing.T) {
	t.Parallel()

	if err := CheckFileSize([]byte("1234"), 4, "f"); err != nil {
		t.Errorf("size at limit should pass: %v", err)
	}
	if err := CheckFileSize([]byte("12345"), 4, "f"); err == nil {
		t.Error("size over limit should fail")
	}
}
