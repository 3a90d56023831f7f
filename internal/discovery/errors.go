// SPDX-License-Identifier: MPL-2.0

package discovery

import "fmt"

// ModuleCollisionError is returned when two distinct package names sanitize
// to the same build-graph project identifier. Silently merging them would
// let one module shadow the other in the host graph, so resolution fails
// instead.
type ModuleCollisionError struct {
	// SanitizedName is the colliding project identifier.
	SanitizedName string
	// FirstName is the package that claimed the identifier first.
	FirstName string
	// SecondName is the package that collided with it.
	SecondName string
}

// Error implements the error interface.
func (e *ModuleCollisionError) Error() string {
	return fmt.Sprintf(
		"project name collision: packages %q and %q both map to project '%s'\n"+
			"  rename one of the packages, or exclude one from autolinking",
		e.FirstName, e.SecondName, e.SanitizedName)
}
