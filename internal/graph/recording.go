// SPDX-License-Identifier: MPL-2.0

package graph

type (
	// Call records one Graph mutation for inspection.
	Call struct {
		// Op is one of "include", "dependency", "sourceRoot".
		Op string
		// Args are the call's arguments in declaration order.
		Args []string
	}

	// Recording implements Graph by recording every mutation. It performs
	// no bookkeeping and never fails; tests and dry runs that need the
	// host graph's duplicate/unregistered checks should use
	// GradleFragments instead.
	Recording struct {
		Calls []Call
	}
)

// NewRecording creates an empty Recording graph.
func NewRecording() *Recording {
	return &Recording{}
}

// IncludeSubproject records the call.
func (r *Recording) IncludeSubproject(id, path string) error {
	r.Calls = append(r.Calls, Call{Op: "include", Args: []string{id, path}})
	return nil
}

// AddCompileDependency records the call.
func (r *Recording) AddCompileDependency(consumer, dependency string) error {
	r.Calls = append(r.Calls, Call{Op: "dependency", Args: []string{consumer, dependency}})
	return nil
}

// AppendSourceRoot records the call.
func (r *Recording) AppendSourceRoot(path string) error {
	r.Calls = append(r.Calls, Call{Op: "sourceRoot", Args: []string{path}})
	return nil
}
