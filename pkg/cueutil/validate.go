// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

// DefaultMaxFileSize is the maximum input size accepted by Validate and
// ValidateAndDecode unless overridden with WithMaxFileSize.
const DefaultMaxFileSize int64 = 10 << 20 // 10 MiB

// Option configures a validation call.
type Option func(*options)

type options struct {
	filename    string
	maxFileSize int64
	concrete    bool
}

func defaultOptions() options {
	return options{
		maxFileSize: DefaultMaxFileSize,
	}
}

// WithFilename sets the filename (or input description) used in error messages.
func WithFilename(name string) Option {
	return func(o *options) {
		o.filename = name
	}
}

// WithMaxFileSize overrides the maximum accepted input size in bytes.
func WithMaxFileSize(size int64) Option {
	return func(o *options) {
		o.maxFileSize = size
	}
}

// WithConcrete requires all values to be concrete during validation.
func WithConcrete() Option {
	return func(o *options) {
		o.concrete = true
	}
}

// Validate unifies data with the schema definition at schemaPath and reports
// the first validation failure, formatted with the CUE path to the offending
// field. The data may be CUE or JSON (JSON is a subset of CUE).
func Validate(schema, data []byte, schemaPath string, opts ...Option) error {
	_, err := unify(schema, data, schemaPath, opts...)
	return err
}

// ValidateAndDecode validates data against the schema definition at
// schemaPath and decodes the unified value into T.
func ValidateAndDecode[T any](schema, data []byte, schemaPath string, opts ...Option) (*T, error) {
	unified, err := unify(schema, data, schemaPath, opts...)
	if err != nil {
		return nil, err
	}

	filename := resolveFilename(opts)
	var result T
	if err := unified.Decode(&result); err != nil {
		return nil, FormatError(err, filename)
	}
	return &result, nil
}

func unify(schema, data []byte, schemaPath string, opts ...Option) (cue.Value, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	filename := o.filename
	if filename == "" {
		filename = "<input>"
	}

	// Early size check to prevent OOM from pathological inputs.
	if err := CheckFileSize(data, o.maxFileSize, filename); err != nil {
		return cue.Value{}, err
	}

	ctx := cuecontext.New()

	schemaValue := ctx.CompileBytes(schema)
	if schemaValue.Err() != nil {
		return cue.Value{}, fmt.Errorf("internal error: failed to compile schema: %w", schemaValue.Err())
	}

	userValue := ctx.CompileBytes(data, cue.Filename(filename))
	if userValue.Err() != nil {
		return cue.Value{}, FormatError(userValue.Err(), filename)
	}

	schemaRoot := schemaValue.LookupPath(cue.ParsePath(schemaPath))
	if schemaRoot.Err() != nil {
		return cue.Value{}, fmt.Errorf("internal error: schema definition %s not found: %w", schemaPath, schemaRoot.Err())
	}

	unified := schemaRoot.Unify(userValue)

	if o.concrete {
		if err := unified.Validate(cue.Concrete(true)); err != nil {
			return cue.Value{}, FormatError(err, filename)
		}
	} else {
		if err := unified.Validate(); err != nil {
			return cue.Value{}, FormatError(err, filename)
		}
	}

	return unified, nil
}

func resolveFilename(opts []Option) string {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.filename == "" {
		return "<input>"
	}
	return o.filename
}

// CheckFileSize verifies that data does not exceed the specified maximum size.
// Returns an error if the size limit is exceeded.
func CheckFileSize(data []byte, maxSize int64, filename string) error {
	if int64(len(data)) > maxSize {
		return fmt.Errorf("%s: input size %d bytes exceeds maximum %d bytes",
			filename, len(data), maxSize)
	}
	return nil
}
