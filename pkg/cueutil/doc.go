// SPDX-License-Identifier: MPL-2.0

// Package cueutil provides shared CUE validation utilities.
//
// The package consolidates the schema-validation pattern used across the
// nativecfg and config packages:
//
//  1. Compile the embedded schema
//  2. Compile user data and unify with schema
//  3. Validate (and optionally decode to a Go struct)
//
// JSON input is handled by the same flow: every JSON document is a valid
// CUE expression, so subprocess output can be compiled and unified against
// a schema definition directly.
//
// # Usage
//
//	//go:embed config_schema.cue
//	var schemaBytes []byte
//
//	if err := cueutil.Validate(schemaBytes, data, "#NativeConfig",
//		cueutil.WithFilename("react-native config output"),
//	); err != nil {
//		return nil, err // Error includes the CUE path to the invalid field
//	}
package cueutil
