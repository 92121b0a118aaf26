// SPDX-License-Identifier: MPL-2.0

package recipe

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/agext/levenshtein"
)

// DefaultRecipeName is the recipe run when no name is given.
const DefaultRecipeName Name = "default"

// maxSuggestionDistance bounds the edit distance of "did you mean" hints.
const maxSuggestionDistance = 2

var (
	// ErrRecipeNotFound is the sentinel error wrapped by NotFoundError.
	ErrRecipeNotFound = errors.New("recipe not found")
	// ErrDuplicateRecipe is returned when two recipes in one book share a name.
	ErrDuplicateRecipe = errors.New("duplicate recipe")
)

type (
	// Book is an ordered, read-only table of recipes.
	Book struct {
		recipes []Recipe
		index   map[Name]int
	}

	// NotFoundError is returned by Lookup for an unknown name.
	NotFoundError struct {
		Name        Name
		Suggestions []Name
	}
)

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	msg := fmt.Sprintf("recipe %q not found", e.Name)
	if len(e.Suggestions) > 0 {
		names := make([]string, len(e.Suggestions))
		for i, s := range e.Suggestions {
			names[i] = string(s)
		}
		msg += fmt.Sprintf(" (did you mean %s?)", strings.Join(names, ", "))
	}
	return msg
}

// Unwrap returns ErrRecipeNotFound for errors.Is() compatibility.
func (e *NotFoundError) Unwrap() error { return ErrRecipeNotFound }

// NewBook validates recipes and builds a book that keeps their order.
func NewBook(recipes ...Recipe) (*Book, error) {
	b := &Book{
		recipes: make([]Recipe, 0, len(recipes)),
		index:   make(map[Name]int, len(recipes)),
	}
	for _, r := range recipes {
		if err := r.Validate(); err != nil {
			return nil, err
		}
		if _, dup := b.index[r.Name]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateRecipe, r.Name)
		}
		b.index[r.Name] = len(b.recipes)
		b.recipes = append(b.recipes, r)
	}
	return b, nil
}

// Len returns the number of recipes.
func (b *Book) Len() int { return len(b.recipes) }

// Lookup returns the recipe with exactly this name.
func (b *Book) Lookup(name Name) (Recipe, error) {
	if i, ok := b.index[name]; ok {
		return b.recipes[i], nil
	}
	return Recipe{}, &NotFoundError{Name: name, Suggestions: b.suggest(name)}
}

// Default returns the recipe named "default".
func (b *Book) Default() (Recipe, error) {
	return b.Lookup(DefaultRecipeName)
}

// Recipes returns a copy of the recipes in book order.
func (b *Book) Recipes() []Recipe {
	return slices.Clone(b.recipes)
}

// Merge returns a new book where each override replaces the recipe of the
// same name in place, and overrides with new names are appended in order.
func (b *Book) Merge(overrides []Recipe) (*Book, error) {
	merged := slices.Clone(b.recipes)
	for _, o := range overrides {
		if i, ok := b.index[o.Name]; ok {
			merged[i] = o
			continue
		}
		merged = append(merged, o)
	}
	return NewBook(merged...)
}

// WriteList writes the recipe listing in the layout of `just --list`:
//
//	Available recipes:
//	    default  # List available recipes
//	    install  # Install the Grug node software
func (b *Book) WriteList(w io.Writer) error {
	width := 0
	for _, r := range b.recipes {
		width = max(width, len(r.Name))
	}

	var sb strings.Builder
	sb.WriteString("Available recipes:\n")
	for _, r := range b.recipes {
		if r.Description == "" {
			fmt.Fprintf(&sb, "    %s\n", r.Name)
			continue
		}
		fmt.Fprintf(&sb, "    %-*s # %s\n", width, r.Name, r.Description)
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

// suggest returns names within maxSuggestionDistance edits, closest first.
func (b *Book) suggest(name Name) []Name {
	type candidate struct {
		name Name
		dist int
	}
	var candidates []candidate
	for _, r := range b.recipes {
		d := levenshtein.Distance(string(name), string(r.Name), nil)
		if d <= maxSuggestionDistance || (name != "" && strings.HasPrefix(string(r.Name), string(name))) {
			candidates = append(candidates, candidate{name: r.Name, dist: d})
		}
	}
	slices.SortStableFunc(candidates, func(a, b candidate) int { return a.dist - b.dist })

	names := make([]Name, len(candidates))
	for i, c := range candidates {
		names[i] = c.name
	}
	return names
}
