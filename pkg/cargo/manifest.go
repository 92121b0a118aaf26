// SPDX-License-Identifier: MPL-2.0

package cargo

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// ManifestFileName is the manifest file of every crate and workspace.
const ManifestFileName = "Cargo.toml"

var (
	// ErrNoPackage is returned when a manifest has no [package] table.
	ErrNoPackage = errors.New("manifest has no [package] table")
	// ErrInheritedField is returned when a field uses workspace inheritance
	// and the workspace root does not define it.
	ErrInheritedField = errors.New("inherited field not defined by workspace")
)

type (
	// Manifest is the subset of Cargo.toml grugjust understands.
	Manifest struct {
		Package   *Package   `toml:"package"`
		Bins      []Target   `toml:"bin"`
		Workspace *Workspace `toml:"workspace"`
	}

	// Package is the [package] table. Version and Description are either a
	// string or an inline table {workspace = true}.
	Package struct {
		Name        string `toml:"name"`
		Version     any    `toml:"version"`
		Description any    `toml:"description"`
	}

	// Target is a [[bin]] entry.
	Target struct {
		Name string `toml:"name"`
		Path string `toml:"path"`
	}

	// Workspace is the [workspace] table of a workspace root.
	Workspace struct {
		Members []string         `toml:"members"`
		Package WorkspacePackage `toml:"package"`
	}

	// WorkspacePackage holds the values members inherit.
	WorkspacePackage struct {
		Version     string `toml:"version"`
		Description string `toml:"description"`
	}

	// Info describes a crate for display.
	Info struct {
		Name        string
		Version     string
		Description string
		// Binaries lists the [[bin]] names, or the package name when there are none.
		Binaries []string
	}
)

// ParseManifest decodes Cargo.toml content.
func ParseManifest(data []byte, filename string) (*Manifest, error) {
	var m Manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			return nil, fmt.Errorf("%s:%d:%d: %s", filename, row, col, derr.Error())
		}
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return &m, nil
}

// ReadManifest reads and decodes the manifest at path.
func ReadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read cargo manifest: %w", err)
	}
	return ParseManifest(data, path)
}

// Describe reads <workspaceDir>/<crateDir>/Cargo.toml and resolves fields
// inherited from <workspaceDir>/Cargo.toml.
func Describe(workspaceDir, crateDir string) (Info, error) {
	crateManifest := filepath.Join(workspaceDir, crateDir, ManifestFileName)
	m, err := ReadManifest(crateManifest)
	if err != nil {
		return Info{}, err
	}
	if m.Package == nil {
		return Info{}, fmt.Errorf("%s: %w", crateManifest, ErrNoPackage)
	}

	var ws *Workspace
	if m.Package.inherits() {
		root, err := ReadManifest(filepath.Join(workspaceDir, ManifestFileName))
		if err != nil {
			return Info{}, err
		}
		ws = root.Workspace
	}

	info := Info{Name: m.Package.Name}
	if info.Version, err = resolve(m.Package.Version, ws, "version"); err != nil {
		return Info{}, fmt.Errorf("%s: %w", crateManifest, err)
	}
	if info.Description, err = resolve(m.Package.Description, ws, "description"); err != nil {
		return Info{}, fmt.Errorf("%s: %w", crateManifest, err)
	}

	for _, b := range m.Bins {
		info.Binaries = append(info.Binaries, b.Name)
	}
	if len(info.Binaries) == 0 {
		info.Binaries = []string{info.Name}
	}
	return info, nil
}

// String returns "name v1.2.3", or the name alone without a version.
func (i Info) String() string {
	if i.Version == "" {
		return i.Name
	}
	return i.Name + " v" + i.Version
}

func (p *Package) inherits() bool {
	return isInherited(p.Version) || isInherited(p.Description)
}

func isInherited(v any) bool {
	t, ok := v.(map[string]any)
	if !ok {
		return false
	}
	w, _ := t["workspace"].(bool)
	return w
}

// resolve returns a plain string field or its workspace value.
func resolve(v any, ws *Workspace, field string) (string, error) {
	switch val := v.(type) {
	case nil:
		return "", nil
	case string:
		return val, nil
	}

	if !isInherited(v) {
		return "", fmt.Errorf("package.%s: unsupported value %v", field, v)
	}

	var inherited string
	if ws != nil {
		switch field {
		case "version":
			inherited = ws.Package.Version
		case "description":
			inherited = ws.Package.Description
		}
	}
	if inherited == "" {
		return "", fmt.Errorf("%w: package.%s", ErrInheritedField, field)
	}
	return inherited, nil
}
