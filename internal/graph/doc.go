// SPDX-License-Identifier: MPL-2.0

// Package graph projects a resolved module list onto the host build graph.
//
// The host graph itself is abstract: the engine only ever calls three
// mutation primitives (include a subproject, add a compile dependency,
// append a source root) through the Graph interface. The Gradle fragment
// emitter in this package is the production implementation — it renders the
// mutations as build-script fragments the host build applies — and the
// Recording implementation exists for tests and dry runs.
package graph
