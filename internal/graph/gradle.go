// SPDX-License-Identifier: MPL-2.0

package graph

import (
	"fmt"
	"strings"
)

const fragmentHeader = "// Generated by modlink. Do not edit by hand.\n"

type (
	// DuplicateProjectError is returned when two subprojects are registered
	// under the same identifier with different source directories.
	DuplicateProjectError struct {
		ID         string
		FirstPath  string
		SecondPath string
	}

	// UnregisteredProjectError is returned when a dependency edge targets
	// an identifier no IncludeSubproject call registered. This is a fatal
	// configuration error: the dependency-injection phase ran against a
	// different module set than the inclusion phase.
	UnregisteredProjectError struct {
		Consumer   string
		Dependency string
	}

	include struct {
		id   string
		path string
	}

	dependency struct {
		consumer   string
		dependency string
	}

	// GradleFragments implements Graph by rendering every mutation into
	// Gradle build-script fragments: a settings fragment (project
	// inclusion) and a build fragment (dependency edges and generated
	// source roots).
	GradleFragments struct {
		includes    []include
		deps        []dependency
		sourceRoots []string
		pathByID    map[string]string
	}
)

// Error implements the error interface.
func (e *DuplicateProjectError) Error() string {
	return fmt.Sprintf("project '%s' registered twice: %s and %s",
		e.ID, e.FirstPath, e.SecondPath)
}

// Error implements the error interface.
func (e *UnregisteredProjectError) Error() string {
	return fmt.Sprintf("project '%s' depends on unregistered project '%s'",
		e.Consumer, e.Dependency)
}

// NewGradleFragments creates an empty fragment builder.
func NewGradleFragments() *GradleFragments {
	return &GradleFragments{pathByID: make(map[string]string)}
}

// IncludeSubproject records an `include`/`projectDir` pair in the settings
// fragment. Re-registering an identifier with the same path is a no-op;
// with a different path it is a DuplicateProjectError.
func (g *GradleFragments) IncludeSubproject(id, path string) error {
	if existing, ok := g.pathByID[id]; ok {
		if existing == path {
			return nil
		}
		return &DuplicateProjectError{ID: id, FirstPath: existing, SecondPath: path}
	}
	g.pathByID[id] = path
	g.includes = append(g.includes, include{id: id, path: path})
	return nil
}

// AddCompileDependency records an `implementation project(...)` line in the
// build fragment. The dependency must have been included first.
func (g *GradleFragments) AddCompileDependency(consumer, dep string) error {
	if _, ok := g.pathByID[dep]; !ok {
		return &UnregisteredProjectError{Consumer: consumer, Dependency: dep}
	}
	g.deps = append(g.deps, dependency{consumer: consumer, dependency: dep})
	return nil
}

// AppendSourceRoot records a generated-sources directory for the
// application's main source set.
func (g *GradleFragments) AppendSourceRoot(path string) error {
	g.sourceRoots = append(g.sourceRoots, path)
	return nil
}

// SettingsFragment renders the settings-phase mutations. Safe to apply via
// `apply from:` in settings.gradle.
func (g *GradleFragments) SettingsFragment() string {
	var sb strings.Builder
	sb.WriteString(fragmentHeader)
	for _, inc := range g.includes {
		fmt.Fprintf(&sb, "include ':%s'\n", inc.id)
		fmt.Fprintf(&sb, "project(':%s').projectDir = new File(%s)\n", inc.id, groovyString(inc.path))
	}
	return sb.String()
}

// BuildFragment renders the build-phase mutations: the dependency edges of
// the application project and any appended generated source roots.
func (g *GradleFragments) BuildFragment() string {
	var sb strings.Builder
	sb.WriteString(fragmentHeader)

	if len(g.deps) > 0 {
		sb.WriteString("dependencies {\n")
		for _, d := range g.deps {
			fmt.Fprintf(&sb, "    implementation project(':%s')\n", d.dependency)
		}
		sb.WriteString("}\n")
	}

	for _, root := range g.sourceRoots {
		fmt.Fprintf(&sb, "android.sourceSets.main.java.srcDirs += %s\n", groovyString(root))
	}

	return sb.String()
}

// groovyString quotes a path as a single-quoted Groovy string literal.
func groovyString(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `'`, `\'`)
	return "'" + s + "'"
}
