// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"errors"
	"fmt"

	"grugjust/pkg/recipe"
)

// ErrRuntimeNotRegistered is returned when no runtime handles a recipe kind.
var ErrRuntimeNotRegistered = errors.New("runtime not registered")

// Registry maps recipe kinds to the runtime that executes them.
type Registry struct {
	runtimes map[recipe.Kind]Runtime
}

// NewRegistry creates an empty runtime registry.
func NewRegistry() *Registry {
	return &Registry{
		runtimes: make(map[recipe.Kind]Runtime),
	}
}

// Register adds a runtime for a recipe kind, replacing any previous one.
func (r *Registry) Register(kind recipe.Kind, rt Runtime) {
	r.runtimes[kind] = rt
}

// Get returns the runtime for a recipe kind.
func (r *Registry) Get(kind recipe.Kind) (Runtime, error) {
	rt, ok := r.runtimes[kind]
	if !ok {
		return nil, fmt.Errorf("%w: no runtime for %s recipes", ErrRuntimeNotRegistered, kind)
	}
	return rt, nil
}

// Execute runs the recipe on the runtime registered for its kind.
// Nothing is started when the runtime is missing, unavailable or rejects the recipe.
func (r *Registry) Execute(ctx *ExecutionContext) *Result {
	rt, err := r.Get(ctx.Recipe.Kind)
	if err != nil {
		return NewErrorResult(1, err)
	}

	if !rt.Available() {
		err := fmt.Errorf("runtime '%s' is not available on this system", rt.Name())
		if ur, ok := rt.(unavailableReasoner); ok {
			if reason := ur.UnavailableReason(); reason != nil {
				err = reason
			}
		}
		return NewErrorResult(1, err)
	}

	if err := rt.Validate(ctx); err != nil {
		return NewErrorResult(1, err)
	}

	return rt.Execute(ctx)
}

// CommandLine renders what the recipe's runtime would start.
func (r *Registry) CommandLine(ctx *ExecutionContext) (string, error) {
	rt, err := r.Get(ctx.Recipe.Kind)
	if err != nil {
		return "", err
	}
	if d, ok := rt.(Describer); ok {
		return d.CommandLine(ctx)
	}
	return ctx.Recipe.CommandLine(), nil
}
