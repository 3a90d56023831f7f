// SPDX-License-Identifier: MPL-2.0

package nativecfg

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"

	"modlink-cli/pkg/cueutil"
)

//go:embed config_schema.cue
var configSchema []byte

// Parse decodes and validates a configuration document. The source argument
// names the origin of the bytes for error messages (typically the command
// line that emitted them).
//
// Validation is two-step: a JSON syntax check via the decoder itself, then a
// structural check against the embedded CUE schema so type mismatches are
// reported with the path to the offending field. Both failure modes return a
// *MalformedConfigError.
func Parse(data []byte, source string) (*Config, error) {
	if err := cueutil.CheckFileSize(data, cueutil.DefaultMaxFileSize, source); err != nil {
		return nil, &MalformedConfigError{Source: source, Err: err}
	}

	cfg, err := decodeOrdered(data)
	if err != nil {
		return nil, &MalformedConfigError{Source: source, Err: err}
	}

	// JSON is a subset of CUE, so the raw bytes unify directly with the
	// schema. This runs after the syntax check: the CUE compiler's errors
	// for broken JSON are far less readable than encoding/json's.
	if err := cueutil.Validate(configSchema, data, "#NativeConfig",
		cueutil.WithFilename(source),
	); err != nil {
		return nil, &MalformedConfigError{Source: source, Err: err}
	}

	return cfg, nil
}

// dependencyDoc mirrors the subset of a dependency entry that autolinking
// consumes. Everything else in the entry is dropped by encoding/json.
type dependencyDoc struct {
	Platforms Platforms `json:"platforms"`
}

// decodeOrdered walks the document with a token decoder so the iteration
// order of the dependencies object survives into Config.Dependencies.
// encoding/json maps would randomize it, and that order is part of the
// engine's determinism contract.
func decodeOrdered(data []byte) (*Config, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("empty document")
		}
		return nil, err
	}
	if tok != json.Delim('{') {
		return nil, fmt.Errorf("expected a JSON object, got %v", tok)
	}

	cfg := &Config{}

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("expected object key, got %v", keyTok)
		}

		if key != "dependencies" {
			if err := skipValue(dec); err != nil {
				return nil, err
			}
			continue
		}

		deps, err := decodeDependencies(dec)
		if err != nil {
			return nil, err
		}
		cfg.Dependencies = deps
	}

	// Consume the closing brace, then require EOF so trailing garbage
	// surfaces as an error.
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("unexpected data after top-level object")
	}

	return cfg, nil
}

func decodeDependencies(dec *json.Decoder) ([]Dependency, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if tok == nil {
		// "dependencies": null is treated as absent.
		return nil, nil
	}
	if tok != json.Delim('{') {
		return nil, fmt.Errorf("dependencies: expected a JSON object, got %v", tok)
	}

	var deps []Dependency
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		name, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("dependencies: expected object key, got %v", keyTok)
		}
		if name == "" {
			return nil, fmt.Errorf("dependencies: dependency name must be non-empty")
		}

		var doc dependencyDoc
		if err := dec.Decode(&doc); err != nil {
			return nil, fmt.Errorf("dependencies.%q: %w", name, err)
		}

		deps = append(deps, Dependency{Name: name, Platforms: doc.Platforms})
	}

	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return deps, nil
}

// skipValue consumes one complete JSON value, descending into nested
// objects and arrays.
func skipValue(dec *json.Decoder) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	switch tok {
	case json.Delim('{'), json.Delim('['):
		for dec.More() {
			if err := skipValue(dec); err != nil {
				return err
			}
		}
		_, err := dec.Token()
		return err
	}
	return nil
}
