// SPDX-License-Identifier: MPL-2.0

package manifest

import (
	_ "embed"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"modlink-cli/internal/discovery"
	"modlink-cli/internal/issue"
)

// FileName is the fixed name of the generated manifest file.
const FileName = "PackageList.java"

// instanceSeparator joins instance expressions inside the baseline
// registration's argument list.
const instanceSeparator = ",\n      "

//go:embed package_list.java.tmpl
var packageListTemplate string

type (
	// Import is one import block of the generated file: a comment naming
	// the module followed by its verbatim import statement.
	Import struct {
		Comment   string
		Statement string
	}

	// Render is the typed substitution model for the manifest template.
	// Building it is pure; both section renderings are independently
	// testable without string-matching the whole file.
	Render struct {
		// AppID is the host application identifier, used verbatim in the
		// BuildConfig import.
		AppID string
		// Imports are the per-module import blocks, in resolution order.
		Imports []Import
		// Instances are the per-module construction expressions, in
		// resolution order.
		Instances []string
	}
)

// BuildRender derives the substitution model from a resolution. An empty
// resolution yields a model whose sections render to empty strings.
func BuildRender(appID string, res *discovery.Resolution) Render {
	r := Render{AppID: appID}
	if res == nil {
		return r
	}
	for _, m := range res.Modules {
		r.Imports = append(r.Imports, Import{Comment: m.Name, Statement: m.PackageImport})
		r.Instances = append(r.Instances, m.PackageInstance)
	}
	return r
}

// ImportSection renders the import placeholder: the application's
// BuildConfig import followed by one commented import block per module.
// Import statements carry their own semicolons and pass through verbatim.
func (r Render) ImportSection() string {
	if len(r.Imports) == 0 {
		return ""
	}
	blocks := make([]string, 0, len(r.Imports)+1)
	blocks = append(blocks, fmt.Sprintf("import %s.BuildConfig;", r.AppID))
	for _, imp := range r.Imports {
		blocks = append(blocks, fmt.Sprintf("// %s\n%s", imp.Comment, imp.Statement))
	}
	return strings.Join(blocks, "\n")
}

// InstanceSection renders the instance placeholder: a comma-prefixed,
// comma-joined list appended after the baseline registration, or the empty
// string when no modules resolved.
func (r Render) InstanceSection() string {
	if len(r.Instances) == 0 {
		return ""
	}
	return instanceSeparator + strings.Join(r.Instances, instanceSeparator)
}

// Bytes renders the full manifest file.
func (r Render) Bytes() ([]byte, error) {
	tmpl, err := template.New(FileName).Parse(packageListTemplate)
	if err != nil {
		return nil, fmt.Errorf("internal error: failed to parse manifest template: %w", err)
	}

	var buf bytes.Buffer
	err = tmpl.Execute(&buf, struct {
		PackageImports        string
		PackageClassInstances string
	}{
		PackageImports:        r.ImportSection(),
		PackageClassInstances: r.InstanceSection(),
	})
	if err != nil {
		return nil, fmt.Errorf("internal error: failed to render manifest: %w", err)
	}
	return buf.Bytes(), nil
}

// Generate writes the manifest for res into outDir, creating the directory
// and any missing ancestors first and unconditionally overwriting a
// previous manifest. Filesystem failures are fatal: the build cannot
// proceed without the generated file.
func Generate(outDir, appID string, res *discovery.Resolution) error {
	content, err := BuildRender(appID, res).Bytes()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return issue.NewErrorContext().
			WithOperation("create generated-sources directory").
			WithResource(outDir).
			WithSuggestion("Check that the build directory is writable").
			Wrap(err).
			BuildError()
	}

	path := filepath.Join(outDir, FileName)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return issue.NewErrorContext().
			WithOperation("write module manifest").
			WithResource(path).
			WithSuggestion("Check that the build directory is writable").
			WithSuggestion("Remove a stale read-only copy if one exists").
			Wrap(err).
			BuildError()
	}

	return nil
}
