// SPDX-License-Identifier: MPL-2.0

package container

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"grugjust/internal/issue"
	"grugjust/pkg/types"
)

const (
	// EngineTypeDocker selects the Docker CLI.
	EngineTypeDocker EngineType = "docker"
	// EngineTypePodman selects the Podman CLI.
	EngineTypePodman EngineType = "podman"
)

var (
	// ErrEngineNotAvailable is the sentinel error wrapped by EngineNotAvailableError.
	ErrEngineNotAvailable = errors.New("container engine not available")
	// ErrInvalidEngineType is returned for an unknown engine type.
	ErrInvalidEngineType = errors.New("invalid container engine type")
	// ErrInvalidRunOptions is the sentinel error wrapped by InvalidRunOptionsError.
	ErrInvalidRunOptions = errors.New("invalid run options")
)

type (
	// Engine is a container engine that can run one container to completion.
	Engine interface {
		// Name returns the engine name (docker or podman).
		Name() string
		// Available checks if the engine binary exists and its daemon answers.
		Available() bool
		// Version returns the engine version.
		Version(ctx context.Context) (string, error)
		// Run runs a container and blocks until it exits.
		// A non-zero container exit is reported in RunResult.ExitCode, not as error.
		Run(ctx context.Context, opts RunOptions) (*RunResult, error)
		// BuildRunArgs returns the arguments Run would pass to the engine binary.
		BuildRunArgs(opts RunOptions) []string
	}

	// EngineType identifies the container engine type.
	EngineType string

	// ImageRef is a container image reference, e.g. "leftcurve/optimizer:0.1.0".
	ImageRef string

	// RunOptions contains options for running a container.
	RunOptions struct {
		// Image is the image to run.
		Image ImageRef
		// Command overrides the image entrypoint arguments.
		Command []string
		// Platform requests a specific image platform, e.g. "linux/amd64".
		Platform string
		// WorkDir is the working directory inside the container.
		WorkDir string
		// Env contains environment variables.
		Env map[string]string
		// Volumes are bind mounts rendered as -v host:container.
		Volumes []VolumeMount
		// Mounts are named volumes rendered as --mount type=volume,...
		Mounts []NamedVolume
		// Remove automatically removes the container after exit.
		Remove bool
		// Name is the container name.
		Name string
		// Interactive keeps stdin open.
		Interactive bool
		// TTY allocates a pseudo-TTY.
		TTY bool

		Stdin  io.Reader
		Stdout io.Writer
		Stderr io.Writer
	}

	// InvalidRunOptionsError wraps the field errors of a RunOptions value.
	InvalidRunOptionsError struct {
		FieldErrs []error
	}

	// RunResult contains the result of running a container.
	RunResult struct {
		// ExitCode is the exit status of the engine process, which is the
		// container's own exit status once the container started.
		ExitCode types.ExitCode
		// Error is set when the engine binary could not be run at all.
		Error error
	}

	// EngineNotAvailableError is returned when no usable engine is found.
	EngineNotAvailableError struct {
		Engine string
		Reason string
	}
)

// String returns the engine type name.
func (t EngineType) String() string { return string(t) }

// Validate returns an error if the engine type is not docker or podman.
func (t EngineType) Validate() error {
	switch t {
	case EngineTypeDocker, EngineTypePodman:
		return nil
	default:
		return fmt.Errorf("%w: %q (valid: docker, podman)", ErrInvalidEngineType, t)
	}
}

// String returns the image reference.
func (r ImageRef) String() string { return string(r) }

// Validate returns an error if the image reference is empty or contains whitespace.
func (r ImageRef) Validate() error {
	if r == "" || strings.ContainsAny(string(r), " \t\n") {
		return fmt.Errorf("invalid image reference %q", r)
	}
	return nil
}

// Validate checks the image and every mount.
func (o RunOptions) Validate() error {
	var errs []error
	if err := o.Image.Validate(); err != nil {
		errs = append(errs, err)
	}
	for _, v := range o.Volumes {
		if err := v.Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	for _, m := range o.Mounts {
		if err := m.Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return &InvalidRunOptionsError{FieldErrs: errs}
	}
	return nil
}

// Error implements the error interface.
func (e *InvalidRunOptionsError) Error() string {
	return fmt.Sprintf("invalid run options: %v", errors.Join(e.FieldErrs...))
}

// Unwrap returns the sentinel and every field error.
func (e *InvalidRunOptionsError) Unwrap() []error {
	return append([]error{ErrInvalidRunOptions}, e.FieldErrs...)
}

// Error implements the error interface.
func (e *EngineNotAvailableError) Error() string {
	return fmt.Sprintf("container engine '%s' is not available: %s", e.Engine, e.Reason)
}

// Unwrap returns ErrEngineNotAvailable for errors.Is() compatibility.
func (e *EngineNotAvailableError) Unwrap() error { return ErrEngineNotAvailable }

// NewEngine returns the preferred engine, falling back to the other one.
func NewEngine(preferred EngineType, opts ...BaseCLIEngineOption) (Engine, error) {
	if err := preferred.Validate(); err != nil {
		return nil, err
	}

	primary, fallback := Engine(NewDockerEngine(opts...)), Engine(NewPodmanEngine(opts...))
	if preferred == EngineTypePodman {
		primary, fallback = fallback, primary
	}

	if primary.Available() {
		return primary, nil
	}
	if fallback.Available() {
		return fallback, nil
	}
	return nil, engineNotAvailable(string(preferred),
		fmt.Sprintf("%s is not installed or not running, and %s fallback is also not available",
			primary.Name(), fallback.Name()))
}

// EngineOfType returns the docker or podman engine without checking that it
// is installed. Nothing is started.
func EngineOfType(t EngineType, opts ...BaseCLIEngineOption) (Engine, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	if t == EngineTypePodman {
		return NewPodmanEngine(opts...), nil
	}
	return NewDockerEngine(opts...), nil
}

// AutoDetectEngine returns the first available engine, trying Docker first.
func AutoDetectEngine(opts ...BaseCLIEngineOption) (Engine, error) {
	return NewEngine(EngineTypeDocker, opts...)
}

// engineNotAvailable wraps EngineNotAvailableError in an actionable error.
func engineNotAvailable(engine, reason string) error {
	return issue.NewErrorContext().
		WithOperation("find a container engine").
		WithResource(engine).
		WithSuggestion("Install Docker (https://docs.docker.com/get-docker/) or Podman").
		WithSuggestion("Make sure the engine daemon is running (try: docker version)").
		WithSuggestion("Pick an engine explicitly with --engine docker|podman").
		WithIssue(issue.ContainerEngineNotFoundId).
		Wrap(&EngineNotAvailableError{Engine: engine, Reason: reason}).
		BuildError()
}
