// SPDX-License-Identifier: MPL-2.0

package recipetest

import (
	"testing"

	"grugjust/pkg/recipe"
	"grugjust/pkg/types"
)

// RecipeOption configures a test recipe.
type RecipeOption func(*recipe.Recipe)

// NewTestRecipe creates an exec recipe running "true" unless options
// change the kind or body.
func NewTestRecipe(name string, opts ...RecipeOption) recipe.Recipe {
	r := recipe.Recipe{
		Name:    recipe.Name(name),
		Kind:    recipe.KindExec,
		Command: []string{"true"},
	}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// WithCommand makes the recipe an exec recipe running argv.
func WithCommand(argv ...string) RecipeOption {
	return func(r *recipe.Recipe) {
		r.Kind = recipe.KindExec
		r.Command = argv
		r.Script = ""
	}
}

// WithScript makes the recipe a shell recipe.
func WithScript(script string) RecipeOption {
	return func(r *recipe.Recipe) {
		r.Kind = recipe.KindShell
		r.Script = script
		r.Command = nil
	}
}

// WithKind sets a body-less kind (list or optimize).
func WithKind(k recipe.Kind) RecipeOption {
	return func(r *recipe.Recipe) {
		r.Kind = k
		r.Command = nil
		r.Script = ""
	}
}

// WithDescription sets the description.
func WithDescription(desc string) RecipeOption {
	return func(r *recipe.Recipe) {
		r.Description = types.DescriptionText(desc)
	}
}

// WithEnv adds an environment variable.
func WithEnv(key, value string) RecipeOption {
	return func(r *recipe.Recipe) {
		if r.Env == nil {
			r.Env = make(map[string]string)
		}
		r.Env[key] = value
	}
}

// WithQuiet suppresses the command echo.
func WithQuiet() RecipeOption {
	return func(r *recipe.Recipe) {
		r.Quiet = true
	}
}

// MustBook builds a recipe book, failing the test on error.
func MustBook(t testing.TB, recipes ...recipe.Recipe) *recipe.Book {
	t.Helper()
	b, err := recipe.NewBook(recipes...)
	if err != nil {
		t.Fatalf("NewBook() error = %v", err)
	}
	return b
}
