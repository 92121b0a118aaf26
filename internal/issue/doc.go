// SPDX-License-Identifier: MPL-2.0

// Package issue provides actionable errors and a catalog of Markdown guidance
// for the failures grugjust users hit most: unknown recipes, broken recipe or
// config files, and missing cargo or container engines.
package issue
