// SPDX-License-Identifier: MPL-2.0

// Package recipe defines recipes and the recipe book.
//
// A recipe is a named, parameterless command definition. The book is an
// ordered table of recipes with exact-match lookup by name. Builtin returns
// the book of the contract workspace (default, install, test, lint and
// optimize); a recipes.cue file may add recipes or replace built-ins by name.
package recipe
