// SPDX-License-Identifier: MPL-2.0

// Package recipetest provides test helpers for creating recipe.Recipe values.
//
//	r := recipetest.NewTestRecipe("hello", recipetest.WithScript("echo hello"))
package recipetest
