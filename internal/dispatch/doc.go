// SPDX-License-Identifier: MPL-2.0

// Package dispatch resolves a recipe name to its body and runs it.
//
// The dispatcher is the only place where a name turns into a process: an
// unknown name is rejected before any runtime is touched, the default recipe
// is used when no name is given, list recipes print the recipe book, and
// every other recipe is echoed to stderr and handed to the runtime registry.
package dispatch
