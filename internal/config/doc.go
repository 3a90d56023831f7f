// SPDX-License-Identifier: MPL-2.0

// Package config loads modlink's own configuration: project-root and
// command overrides, manifest generation defaults, and UI verbosity.
//
// Configuration lives in a CUE file (modlink.cue) looked up in the current
// directory first and the platform config directory second, validated
// against an embedded schema, and merged into viper so command-line flags
// can override any field. Absence of a config file is not an error; every
// field has a usable default.
package config
