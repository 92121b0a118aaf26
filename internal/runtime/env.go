// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"maps"
	"slices"
)

// EnvToSlice converts a map of environment variables to a KEY=VALUE slice
// sorted by key.
func EnvToSlice(env map[string]string) []string {
	result := make([]string, 0, len(env))
	for _, k := range slices.Sorted(maps.Keys(env)) {
		result = append(result, k+"="+env[k])
	}
	return result
}

// recipeEnv merges the layers a recipe sees on top of the host environment.
// Precedence (highest last): ExtraEnv, Recipe.Env, RecipeEnvVar.
func recipeEnv(ctx *ExecutionContext) map[string]string {
	env := make(map[string]string, len(ctx.ExtraEnv)+len(ctx.Recipe.Env)+1)
	maps.Copy(env, ctx.ExtraEnv)
	maps.Copy(env, ctx.Recipe.Env)
	env[RecipeEnvVar] = string(ctx.Recipe.Name)
	return env
}
