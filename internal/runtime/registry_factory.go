// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"grugjust/internal/container"
	"grugjust/internal/optimizer"
	"grugjust/pkg/platform"
	"grugjust/pkg/recipe"
)

// BuildRegistryOptions configures runtime registry construction.
type BuildRegistryOptions struct {
	// Engine selects docker or podman for the optimizer; "" auto-detects.
	Engine container.EngineType
	// Optimizer overrides the optimizer images and registry volume.
	Optimizer optimizer.Settings
	// Arch reports the host architecture; nil uses platform.HostArch.
	Arch platform.ArchFunc
	// ExecCommand replaces exec.CommandContext for exec recipes.
	ExecCommand ExecCommandFunc
	// ContainerEngine, when set, is used instead of detecting an engine.
	ContainerEngine container.Engine
}

// BuildRegistry creates a registry with the native, virtual and container
// runtimes registered for the exec, shell and optimize kinds.
// list recipes are handled by the dispatcher and have no runtime.
func BuildRegistry(opts BuildRegistryOptions) *Registry {
	reg := NewRegistry()

	var nativeOpts []NativeOption
	if opts.ExecCommand != nil {
		nativeOpts = append(nativeOpts, WithNativeExecCommand(opts.ExecCommand))
	}
	reg.Register(recipe.KindExec, NewNativeRuntime(nativeOpts...))
	reg.Register(recipe.KindShell, NewVirtualRuntime())

	containerOpts := []ContainerOption{
		WithPreferredEngine(opts.Engine),
		WithOptimizerSettings(opts.Optimizer),
	}
	if opts.Arch != nil {
		containerOpts = append(containerOpts, WithArch(opts.Arch))
	}
	if opts.ContainerEngine != nil {
		containerOpts = append(containerOpts, WithEngine(opts.ContainerEngine))
	}
	reg.Register(recipe.KindOptimize, NewContainerRuntime(containerOpts...))

	return reg
}
