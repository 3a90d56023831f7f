// SPDX-License-Identifier: MPL-2.0

// Package issue provides structured, user-facing errors for failures the
// build cannot recover from: what operation failed, which file or path was
// involved, and what the user can do about it.
package issue
