// SPDX-License-Identifier: MPL-2.0

package recipe

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"grugjust/pkg/cueutil"
)

// FileName is the recipe file looked up in the project directory.
const FileName = "recipes.cue"

//go:embed recipes_schema.cue
var recipesSchema []byte

// File is the decoded content of a recipes.cue file.
type File struct {
	Recipes []Recipe `json:"recipes"`
}

// Parse decodes recipe file content and validates every recipe.
func Parse(data []byte, filename string) (*File, error) {
	result, err := cueutil.ParseAndDecode[File](recipesSchema, data, "#Recipes", cueutil.WithFilename(filename))
	if err != nil {
		return nil, err
	}

	f := result.Value
	for i, r := range f.Recipes {
		if err := r.Validate(); err != nil {
			return nil, fmt.Errorf("%s: recipes[%d]: %w", filename, i, err)
		}
	}
	return f, nil
}

// ParseFile reads and parses a recipe file.
func ParseFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read recipe file: %w", err)
	}
	return Parse(data, path)
}

// Load returns base extended by the recipe file at path.
// A missing file is not an error when optional is true.
func Load(base *Book, path string, optional bool) (*Book, error) {
	f, err := ParseFile(path)
	if err != nil {
		if optional && errors.Is(err, os.ErrNotExist) {
			return base, nil
		}
		return nil, err
	}
	return base.Merge(f.Recipes)
}
