package gjk

import "github.com/chazu/goccd/pkg/contract"

// Routine is the foreign collaborator: libccd's intersection entry points.
// Implementations call back into the bridge through the marshal Dispatch
// functions using the context addresses carried by the descriptor. Return
// codes follow libccd: 1 intersecting, 0 separate.
type Routine interface {
	GJKIntersect(d *contract.Descriptor) int
	MPRIntersect(d *contract.Descriptor) int

	// Precision is "single" or "double", the width the routine was
	// compiled with.
	Precision() string
}

// Reentrant is implemented by routines that keep no global state and may
// serve several queries at once. Routines that do not implement it are
// driven one query at a time by IntersectBatch.
type Reentrant interface {
	Reentrant() bool
}

func isReentrant(r Routine) bool {
	re, ok := r.(Reentrant)
	return ok && re.Reentrant()
}
