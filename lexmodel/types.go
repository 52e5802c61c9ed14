package lexmodel

import (
	"fmt"

	"github.com/lexkit/lexsync/faults"
)

type FieldKind int

const (
	// KindString covers string and char members.
	KindString FieldKind = iota
	KindBool
	KindInteger
	KindFloat
	// KindStructure recurses into Member.Shape.
	KindStructure
	// KindList coerces each element via Member.Elem.
	KindList
	// KindMap is shallow-copied with string keys.
	KindMap
	// KindDocument passes deep free-form structures through untouched.
	// Used for members whose full schema is not worth declaring statically
	// (prompt specifications and similar nested documents).
	KindDocument
)

type Member struct {
	Kind  FieldKind
	Shape *Shape
	Elem  *Member
}

// Shape is the statically declared input schema of one remote operation:
// the set of accepted members, their kinds, and which are required.
type Shape struct {
	Required []string
	Members  map[string]Member
}

// Route locates an operation on the remote service's REST surface. Segments
// wrapped in braces are substituted from the projected parameters.
type Route struct {
	Method string
	Path   string
}

type Operation struct {
	Name  string
	Input Shape
	Route Route
}

// Lookup resolves an operation by name. Unknown operations are a programming
// error surfaced as a validation fault.
func Lookup(name string) (Operation, error) {
	op, found := operations[name]
	if !found {
		return Operation{}, faults.NewTypedError(
			faults.ValidationError,
			fmt.Sprintf("unknown operation %q", name),
			nil,
		)
	}
	return op, nil
}
