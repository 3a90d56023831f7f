// SPDX-License-Identifier: MPL-2.0

// Package execrun runs external commands synchronously and captures their
// output. It is the engine's only boundary with the operating system's
// process machinery.
//
// A Run never returns a Go error for a non-zero exit: the caller owns the
// fallback policy, so failure is reported through the Result and the
// process's stdout stays available either way. Cancellation flows through
// the context; the runner applies no timeout of its own.
package execrun
