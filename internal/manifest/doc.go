// SPDX-License-Identifier: MPL-2.0

// Package manifest generates the PackageList source file that enumerates
// every autolinked native module for the host application's runtime.
//
// Generation is deliberately dumb: a typed render model (import blocks and
// instance expressions derived from the resolution) substituted into a
// fixed template, written fresh on every build. There is no incremental
// mode — determinism comes from regenerating the whole file from the
// current resolution every time.
package manifest
