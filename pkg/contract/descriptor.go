package contract

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/chazu/goccd/pkg/precision"
)

// Slot says what a function-pointer field of ccd_t points at.
type Slot uint8

const (
	// SlotEmpty leaves the field NULL.
	SlotEmpty Slot = iota
	// SlotLibraryDefault points at libccd's own implementation
	// (ccdFirstDirDefault for the first-direction field).
	SlotLibraryDefault
	// SlotBridge points at the bridge trampoline for that field.
	SlotBridge
)

func (s Slot) String() string {
	switch s {
	case SlotEmpty:
		return "empty"
	case SlotLibraryDefault:
		return "library-default"
	case SlotBridge:
		return "bridge"
	default:
		return fmt.Sprintf("Slot(%d)", uint8(s))
	}
}

// Descriptor is the Go image of ccd_t for one foreign call, in libccd field
// order, plus the two context addresses passed alongside it. It lives on
// the caller's stack for the duration of that call and is never stored.
type Descriptor struct {
	FirstDir Slot
	Support1 Slot
	Support2 Slot
	Center1  Slot
	Center2  Slot

	MaxIterations uint64
	EPATolerance  precision.Scalar
	MPRTolerance  precision.Scalar
	DistTolerance precision.Scalar

	Obj1 uintptr
	Obj2 uintptr
}

// BuildOptions selects the optional slots.
type BuildOptions struct {
	// FirstDirOverride routes the first search direction through the bridge
	// instead of ccdFirstDirDefault.
	FirstDirOverride bool
	// Centers fills both center slots, as MPR requires.
	Centers bool
}

// Build populates a Descriptor. It performs no validation and has no side
// effects; cfg is expected to have passed Validate.
func Build(cfg Config, obj1, obj2 uintptr, opts BuildOptions) Descriptor {
	d := Descriptor{
		FirstDir:      SlotLibraryDefault,
		Support1:      SlotBridge,
		Support2:      SlotBridge,
		MaxIterations: cfg.MaxIterations,
		EPATolerance:  cfg.EPATolerance,
		MPRTolerance:  cfg.MPRTolerance,
		DistTolerance: cfg.DistTolerance,
		Obj1:          obj1,
		Obj2:          obj2,
	}
	if opts.FirstDirOverride {
		d.FirstDir = SlotBridge
	}
	if opts.Centers {
		d.Center1 = SlotBridge
		d.Center2 = SlotBridge
	}
	return d
}

// ErrIncompleteDescriptor is returned by Check.
var ErrIncompleteDescriptor = errors.New("incomplete ccd descriptor")

// Check verifies the invariants a routine relies on before calling into
// libccd: both contexts are set, both support slots go through the bridge,
// and the iteration bound is finite. needCenters is set for MPR.
func (d *Descriptor) Check(needCenters bool) error {
	switch {
	case d.Obj1 == 0 || d.Obj2 == 0:
		return errors.Wrap(ErrIncompleteDescriptor, "missing context address")
	case d.Support1 != SlotBridge || d.Support2 != SlotBridge:
		return errors.Wrapf(ErrIncompleteDescriptor, "support slots are %s/%s", d.Support1, d.Support2)
	case d.FirstDir == SlotEmpty:
		return errors.Wrap(ErrIncompleteDescriptor, "first direction slot is empty")
	case d.MaxIterations == 0 || d.MaxIterations == Unbounded:
		return errors.Wrapf(ErrIncompleteDescriptor, "max iterations %d", d.MaxIterations)
	case needCenters && (d.Center1 != SlotBridge || d.Center2 != SlotBridge):
		return errors.Wrapf(ErrIncompleteDescriptor, "center slots are %s/%s", d.Center1, d.Center2)
	}
	return nil
}
