// SPDX-License-Identifier: MPL-2.0

package config

import (
	"modlink-cli/internal/discovery"
)

type (
	// CommandsConfig holds the external command strings discovery runs.
	CommandsConfig struct {
		// Primary runs when the package-manager probe succeeds.
		Primary string `json:"primary" mapstructure:"primary"`
		// Fallback runs when the probe fails.
		Fallback string `json:"fallback" mapstructure:"fallback"`
		// Probe is the lightweight package-manager detection command.
		Probe string `json:"probe" mapstructure:"probe"`
	}

	// GenerateConfig holds manifest-generation defaults.
	GenerateConfig struct {
		// OutputDir is the generated-sources directory the manifest is
		// written into.
		OutputDir string `json:"output_dir" mapstructure:"output_dir"`
		// AppID is the host application identifier used in the generated
		// BuildConfig import. Usually supplied per-build by the host's
		// variant resolution rather than configured statically.
		AppID string `json:"app_id" mapstructure:"app_id"`
	}

	// UIConfig holds output preferences.
	UIConfig struct {
		Verbose bool `json:"verbose" mapstructure:"verbose"`
	}

	// Config is the loaded tool configuration.
	Config struct {
		// ProjectRoot overrides the directory the config command runs in.
		ProjectRoot string `json:"project_root" mapstructure:"project_root"`

		// BuildRoot is the platform-specific build directory.
		BuildRoot string `json:"build_root" mapstructure:"build_root"`

		Commands CommandsConfig `json:"commands" mapstructure:"commands"`

		Generate GenerateConfig `json:"generate" mapstructure:"generate"`

		UI UIConfig `json:"ui" mapstructure:"ui"`
	}
)

// DefaultOutputDir is where the generated manifest lands relative to the
// project root when generate.output_dir is not configured.
const DefaultOutputDir = "android/app/build/generated/autolink/src/main/java/com/facebook/react"

// DefaultConfig returns the configuration used when no file and no flags
// are present.
func DefaultConfig() *Config {
	return &Config{
		BuildRoot: "android",
		Commands: CommandsConfig{
			Primary:  discovery.DefaultPrimaryCommand,
			Fallback: discovery.DefaultFallbackCommand,
			Probe:    discovery.DefaultProbeCommand,
		},
		Generate: GenerateConfig{
			OutputDir: DefaultOutputDir,
		},
	}
}

// EngineOptions projects the configuration onto discovery engine options.
func (c *Config) EngineOptions() discovery.Options {
	return discovery.Options{
		BuildRoot:       c.BuildRoot,
		ProjectRoot:     c.ProjectRoot,
		PrimaryCommand:  c.Commands.Primary,
		FallbackCommand: c.Commands.Fallback,
		ProbeCommand:    c.Commands.Probe,
	}
}
