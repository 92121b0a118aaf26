// SPDX-License-Identifier: MPL-2.0

package recipe

import "fmt"

// Names of the built-in recipes.
const (
	InstallRecipeName  Name = "install"
	TestRecipeName     Name = "test"
	LintRecipeName     Name = "lint"
	OptimizeRecipeName Name = "optimize"
)

// BuiltinRecipes returns the recipes of the contract workspace.
// Each call returns fresh slices, so callers may modify the result.
func BuiltinRecipes() []Recipe {
	return []Recipe{
		{
			Name:        DefaultRecipeName,
			Description: "List available recipes",
			Kind:        KindList,
			Quiet:       true,
		},
		{
			Name:        InstallRecipeName,
			Description: "Install the Grug node software",
			Kind:        KindExec,
			Command:     []string{"cargo", "install", "--path", "bin"},
		},
		{
			Name:        TestRecipeName,
			Description: "Run tests",
			Kind:        KindExec,
			Command:     []string{"cargo", "test", "--all-targets"},
		},
		{
			Name:        LintRecipeName,
			Description: "Perform linting",
			Kind:        KindExec,
			Command: []string{
				"cargo", "clippy",
				"--bins", "--tests", "--benches", "--examples",
				"--all-features", "--all-targets",
			},
		},
		{
			Name:        OptimizeRecipeName,
			Description: "Compile and optimize contracts",
			Kind:        KindOptimize,
		},
	}
}

// Builtin returns the built-in recipe book.
func Builtin() *Book {
	b, err := NewBook(BuiltinRecipes()...)
	if err != nil {
		panic(fmt.Sprintf("built-in recipe book is invalid: %v", err))
	}
	return b
}
