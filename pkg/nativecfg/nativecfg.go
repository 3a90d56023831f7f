// SPDX-License-Identifier: MPL-2.0

package nativecfg

import (
	"fmt"
)

type (
	// Config is the parsed configuration document. Dependencies preserve
	// the order in which they appear in the JSON object.
	Config struct {
		Dependencies []Dependency
	}

	// Dependency is one entry of the top-level dependencies object.
	Dependency struct {
		// Name is the dependency's declared package name (the JSON object
		// key), an opaque identifier such as "@scope/pkg-native".
		Name string

		// Platforms holds the per-platform build metadata. Platforms the
		// dependency does not support are nil.
		Platforms Platforms
	}

	// Platforms groups per-platform configuration blocks. Only android is
	// modeled; other platforms in the document are ignored.
	Platforms struct {
		Android *AndroidPlatform `json:"android"`
	}

	// AndroidPlatform describes an Android-capable native module.
	AndroidPlatform struct {
		// SourceDir is the filesystem path to the module's buildable
		// source tree. Existence is not checked here.
		SourceDir string `json:"sourceDir"`

		// PackageInstance is a Java expression constructing the module's
		// registration object, passed through verbatim.
		PackageInstance string `json:"packageInstance"`

		// PackageImportPath is the Java import statement that must precede
		// PackageInstance in generated code, passed through verbatim.
		PackageImportPath string `json:"packageImportPath"`
	}

	// MalformedConfigError indicates that the external command produced
	// output that is not valid JSON or does not match the expected shape.
	// This is a configuration defect the user must fix; callers must not
	// swallow it.
	MalformedConfigError struct {
		// Source describes where the document came from (e.g., the command
		// line that produced it).
		Source string
		// Err is the underlying JSON or schema error.
		Err error
	}
)

// Error implements the error interface.
func (e *MalformedConfigError) Error() string {
	if e.Source != "" {
		return fmt.Sprintf("malformed native module configuration from %s: %v", e.Source, e.Err)
	}
	return fmt.Sprintf("malformed native module configuration: %v", e.Err)
}

// Unwrap returns the underlying parse or validation error.
func (e *MalformedConfigError) Unwrap() error {
	return e.Err
}

// HasAndroid reports whether the dependency carries a usable Android
// module, i.e. an android platform block with a non-empty sourceDir.
func (d Dependency) HasAndroid() bool {
	return d.Platforms.Android != nil && d.Platforms.Android.SourceDir != ""
}
