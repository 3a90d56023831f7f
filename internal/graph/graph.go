// SPDX-License-Identifier: MPL-2.0

package graph

import (
	"fmt"

	"modlink-cli/internal/discovery"
)

type (
	// Graph is the host build system's mutation surface. Implementations
	// own identifier bookkeeping: registering the same identifier twice or
	// depending on an unregistered identifier are their errors to raise.
	Graph interface {
		// IncludeSubproject registers a buildable sub-project rooted at
		// path under the given identifier.
		IncludeSubproject(id, path string) error
		// AddCompileDependency adds a compile-scope dependency edge from
		// the consumer project onto the dependency project.
		AddCompileDependency(consumer, dependency string) error
		// AppendSourceRoot adds a generated-sources directory to the
		// application's compile source set.
		AppendSourceRoot(path string) error
	}

	// Binder applies the two independent projections of a Resolution onto
	// a Graph. Each projection is idempotent for a given Resolution: the
	// host build may invoke a phase more than once, and repeating a
	// projection must not double-register anything.
	Binder struct {
		graph      Graph
		appProject string
		included   map[string]bool
		depended   map[string]bool
	}
)

// NewBinder creates a Binder mutating g on behalf of the application
// project appProject.
func NewBinder(g Graph, appProject string) *Binder {
	return &Binder{
		graph:      g,
		appProject: appProject,
		included:   make(map[string]bool),
		depended:   make(map[string]bool),
	}
}

// IncludeAsProjects registers every resolved module as an includable
// sub-project rooted at its source directory. Runs during the graph's
// composition phase, before dependency resolution is locked.
func (b *Binder) IncludeAsProjects(res *discovery.Resolution) error {
	if res == nil {
		return nil
	}
	for _, m := range res.Modules {
		if b.included[m.SanitizedName] {
			continue
		}
		if err := b.graph.IncludeSubproject(m.SanitizedName, m.SourceDir); err != nil {
			return fmt.Errorf("include project %s: %w", m.SanitizedName, err)
		}
		b.included[m.SanitizedName] = true
	}
	return nil
}

// AddAsDependencies adds a compile-scope dependency from the application
// project onto every resolved module. The modules must already be
// registered in the graph; depending on an unregistered identifier is the
// graph implementation's error to surface.
func (b *Binder) AddAsDependencies(res *discovery.Resolution) error {
	if res == nil {
		return nil
	}
	for _, m := range res.Modules {
		if b.depended[m.SanitizedName] {
			continue
		}
		if err := b.graph.AddCompileDependency(b.appProject, m.SanitizedName); err != nil {
			return fmt.Errorf("add dependency on %s: %w", m.SanitizedName, err)
		}
		b.depended[m.SanitizedName] = true
	}
	return nil
}

// BindGeneratedSources appends the manifest output directory to the
// application's compile source set so the generated file is built.
func (b *Binder) BindGeneratedSources(dir string) error {
	if err := b.graph.AppendSourceRoot(dir); err != nil {
		return fmt.Errorf("append source root %s: %w", dir, err)
	}
	return nil
}
