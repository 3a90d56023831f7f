// SPDX-License-Identifier: MPL-2.0

// modlink discovers the native add-on modules a host application depends
// on and wires them into the host build: it resolves each module's build
// location and registration metadata, emits the build-graph mutations as
// Gradle fragments, and generates the PackageList manifest the runtime
// loads modules from.
package main
