// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"

	"grugjust/internal/container"
	"grugjust/internal/optimizer"
)

const (
	// ContainerEngineDocker uses Docker as the container runtime.
	ContainerEngineDocker ContainerEngine = "docker"
	// ContainerEnginePodman uses Podman as the container runtime.
	ContainerEnginePodman ContainerEngine = "podman"

	// ColorSchemeAuto detects the terminal color scheme automatically.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces dark color scheme.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces light color scheme.
	ColorSchemeLight ColorScheme = "light"
)

var (
	// ErrInvalidContainerEngine is returned when a ContainerEngine value is not recognized.
	ErrInvalidContainerEngine = errors.New("invalid container engine")
	// ErrInvalidColorScheme is returned when a ColorScheme value is not recognized.
	ErrInvalidColorScheme = errors.New("invalid color scheme")
	// ErrInvalidOptimizerConfig is the sentinel error wrapped by InvalidOptimizerConfigError.
	ErrInvalidOptimizerConfig = errors.New("invalid optimizer config")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// ContainerEngine specifies which container CLI runs the optimizer.
	ContainerEngine string

	// InvalidContainerEngineError is returned when a ContainerEngine value is not recognized.
	InvalidContainerEngineError struct {
		Value ContainerEngine
	}

	// ColorScheme specifies the terminal color scheme preference.
	ColorScheme string

	// InvalidColorSchemeError is returned when a ColorScheme value is not recognized.
	InvalidColorSchemeError struct {
		Value ColorScheme
	}

	// InvalidOptimizerConfigError collects field-level errors of an OptimizerConfig.
	InvalidOptimizerConfigError struct {
		FieldErrors []error
	}

	// InvalidConfigError collects field-level errors from all sub-components
	// of a Config. It wraps ErrInvalidConfig for errors.Is() compatibility.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// Config holds the application configuration.
	Config struct {
		// ContainerEngine is the preferred engine; the other one is the fallback.
		ContainerEngine ContainerEngine `json:"container_engine" mapstructure:"container_engine"`
		// RecipesFile replaces the recipes.cue lookup in the project directory.
		RecipesFile string `json:"recipes_file,omitempty" mapstructure:"recipes_file"`
		// Optimizer configures the optimize recipe.
		Optimizer OptimizerConfig `json:"optimizer" mapstructure:"optimizer"`
		// UI configures terminal output.
		UI UIConfig `json:"ui" mapstructure:"ui"`

		// Source is the file the configuration was read from, empty for defaults.
		Source string `json:"-" mapstructure:"-"`
	}

	// OptimizerConfig overrides the optimizer images and registry cache volume.
	OptimizerConfig struct {
		Image         string `json:"image" mapstructure:"image"`
		ARM64Image    string `json:"arm64_image" mapstructure:"arm64_image"`
		RegistryCache string `json:"registry_cache" mapstructure:"registry_cache"`
	}

	// UIConfig configures the user interface.
	UIConfig struct {
		// ColorScheme selects the markdown rendering style.
		ColorScheme ColorScheme `json:"color_scheme" mapstructure:"color_scheme"`
		// Verbose enables debug logging.
		Verbose bool `json:"verbose" mapstructure:"verbose"`
		// Interactive attaches native recipes to a PTY.
		Interactive bool `json:"interactive" mapstructure:"interactive"`
	}
)

// String returns the string representation of the ContainerEngine.
func (ce ContainerEngine) String() string { return string(ce) }

// Validate returns an error if the engine is not docker or podman.
func (ce ContainerEngine) Validate() error {
	switch ce {
	case ContainerEngineDocker, ContainerEnginePodman:
		return nil
	default:
		return &InvalidContainerEngineError{Value: ce}
	}
}

// EngineType converts to the container package's engine type.
func (ce ContainerEngine) EngineType() container.EngineType {
	return container.EngineType(ce)
}

func (e *InvalidContainerEngineError) Error() string {
	return fmt.Sprintf("invalid container engine %q (valid: docker, podman)", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidContainerEngineError) Unwrap() error { return ErrInvalidContainerEngine }

// String returns the string representation of the ColorScheme.
func (cs ColorScheme) String() string { return string(cs) }

// Validate returns an error if the scheme is not auto, dark or light.
func (cs ColorScheme) Validate() error {
	switch cs {
	case ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight:
		return nil
	default:
		return &InvalidColorSchemeError{Value: cs}
	}
}

func (e *InvalidColorSchemeError) Error() string {
	return fmt.Sprintf("invalid color scheme %q (valid: auto, dark, light)", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidColorSchemeError) Unwrap() error { return ErrInvalidColorScheme }

// Validate checks the image references and the registry volume name.
// Empty fields are valid and mean "use the default".
func (c OptimizerConfig) Validate() error {
	var errs []error
	for _, img := range []string{c.Image, c.ARM64Image} {
		if img == "" {
			continue
		}
		if err := container.ImageRef(img).Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	if c.RegistryCache != "" {
		vol := container.NamedVolume{Source: c.RegistryCache, Target: optimizer.RegistryDir}
		if err := vol.Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return &InvalidOptimizerConfigError{FieldErrors: errs}
	}
	return nil
}

// Settings converts the config to optimizer settings.
func (c OptimizerConfig) Settings() optimizer.Settings {
	return optimizer.Settings{
		Image:         container.ImageRef(c.Image),
		ARM64Image:    container.ImageRef(c.ARM64Image),
		RegistryCache: c.RegistryCache,
	}
}

func (e *InvalidOptimizerConfigError) Error() string {
	return fieldErrorsMessage("invalid optimizer config", e.FieldErrors)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidOptimizerConfigError) Unwrap() error { return ErrInvalidOptimizerConfig }

// Validate checks every field and collects all errors.
func (c Config) Validate() error {
	var errs []error
	if err := c.ContainerEngine.Validate(); err != nil {
		errs = append(errs, err)
	}
	if c.RecipesFile != "" && strings.TrimSpace(c.RecipesFile) == "" {
		errs = append(errs, errors.New("recipes_file must not be whitespace-only"))
	}
	if err := c.Optimizer.Validate(); err != nil {
		errs = append(errs, err)
	}
	if err := c.UI.ColorScheme.Validate(); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return &InvalidConfigError{FieldErrors: errs}
	}
	return nil
}

func (e *InvalidConfigError) Error() string {
	return fieldErrorsMessage("invalid config", e.FieldErrors)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidConfigError) Unwrap() error { return ErrInvalidConfig }

func fieldErrorsMessage(prefix string, errs []error) string {
	if len(errs) == 1 {
		return fmt.Sprintf("%s: %v", prefix, errs[0])
	}
	return fmt.Sprintf("%s: %d field errors", prefix, len(errs))
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	settings := optimizer.DefaultSettings()
	return &Config{
		ContainerEngine: ContainerEngineDocker,
		Optimizer: OptimizerConfig{
			Image:         settings.Image.String(),
			ARM64Image:    settings.ARM64Image.String(),
			RegistryCache: settings.RegistryCache,
		},
		UI: UIConfig{
			ColorScheme: ColorSchemeAuto,
		},
	}
}
