// SPDX-License-Identifier: MPL-2.0

// Package cueutil holds the CUE parsing flow shared by the recipe file and
// the configuration file:
//
//  1. Compile the embedded schema
//  2. Compile user data and unify with the schema definition
//  3. Validate and decode to a Go struct
//
// Errors are rewritten so they name the file and the JSON path of the
// offending field, e.g. "recipes.cue: recipes[1].kind: ...".
package cueutil
