//go:build ccd

// Package libccd binds the gjk façade to libccd
// (https://github.com/danfis/libccd) through cgo.
//
// This package requires libccd to be installed, configured with the same
// precision as the Go build: single precision by default, double precision
// with -tags=ccd_double. Build with: go build -tags=ccd
//
// See the Makefile at the repository root for building libccd from source.
package libccd

/*
#cgo CFLAGS: -I/usr/local/include
#cgo LDFLAGS: -L/usr/local/lib -lccd -lm

#include "bridge.h"
*/
import "C"

import (
	"unsafe"

	"github.com/chazu/goccd/pkg/contract"
	"github.com/chazu/goccd/pkg/gjk"
	"github.com/chazu/goccd/pkg/precision"
	"github.com/chazu/goccd/pkg/vec"
)

// Compile-time interface checks.
var _ gjk.Routine = (*Routine)(nil)
var _ gjk.Reentrant = (*Routine)(nil)

// Compile-time layout checks: each expression underflows when the Go and C
// sizes differ.
const (
	_ = unsafe.Sizeof(C.ccd_real_t(0)) - unsafe.Sizeof(precision.Scalar(0))
	_ = unsafe.Sizeof(precision.Scalar(0)) - unsafe.Sizeof(C.ccd_real_t(0))
	_ = unsafe.Sizeof(C.ccd_vec3_t{}) - unsafe.Sizeof(vec.Raw{})
	_ = unsafe.Sizeof(vec.Raw{}) - unsafe.Sizeof(C.ccd_vec3_t{})
)

// Slot numbering shared with bridge.h; indexing fails to compile otherwise.
var (
	_ = [1]struct{}{}[contract.SlotEmpty-C.GOCCD_SLOT_EMPTY]
	_ = [1]struct{}{}[contract.SlotLibraryDefault-C.GOCCD_SLOT_LIBRARY]
	_ = [1]struct{}{}[contract.SlotBridge-C.GOCCD_SLOT_BRIDGE]
)

// Routine calls libccd's ccdGJKIntersect and ccdMPRIntersect.
type Routine struct{}

// New returns the libccd routine.
func New() (gjk.Routine, error) {
	return &Routine{}, nil
}

// Precision reports the scalar width libccd was compiled with, which the
// build has already checked against precision.Name.
func (r *Routine) Precision() string {
	return precision.Name
}

// Reentrant is true: libccd keeps all GJK and MPR state on the stack.
func (r *Routine) Reentrant() bool {
	return true
}

// GJKIntersect runs ccdGJKIntersect once for the descriptor.
func (r *Routine) GJKIntersect(d *contract.Descriptor) int {
	var ccd C.ccd_t
	fill(&ccd, d)
	return int(C.goccd_gjk_intersect(C.uintptr_t(d.Obj1), C.uintptr_t(d.Obj2), &ccd))
}

// MPRIntersect runs ccdMPRIntersect once for the descriptor.
func (r *Routine) MPRIntersect(d *contract.Descriptor) int {
	var ccd C.ccd_t
	fill(&ccd, d)
	return int(C.goccd_mpr_intersect(C.uintptr_t(d.Obj1), C.uintptr_t(d.Obj2), &ccd))
}

// fill translates the Go descriptor into a ccd_t living on the caller's
// stack for the duration of one call.
func fill(ccd *C.ccd_t, d *contract.Descriptor) {
	C.goccd_init(ccd,
		C.int(d.FirstDir),
		C.int(d.Support1),
		C.int(d.Support2),
		C.int(d.Center1),
		C.int(d.Center2),
	)
	ccd.max_iterations = C.ulong(d.MaxIterations)
	ccd.epa_tolerance = C.ccd_real_t(d.EPATolerance)
	ccd.mpr_tolerance = C.ccd_real_t(d.MPRTolerance)
	ccd.dist_tolerance = C.ccd_real_t(d.DistTolerance)
}
