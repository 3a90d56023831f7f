// SPDX-License-Identifier: MPL-2.0

// Package discovery resolves the set of native modules a host application
// depends on by invoking the external configuration command and normalizing
// its JSON output into an ordered module list.
//
// An Engine performs the resolution at most once: every consumer of the
// same Engine (project inclusion, dependency injection, manifest
// generation) observes the identical Resolution, including the degraded
// empty Resolution produced when the external command cannot run at all.
// Re-running the external query mid-build would let the phases disagree
// about the module set, which is a correctness bug rather than a wasted
// subprocess.
package discovery
