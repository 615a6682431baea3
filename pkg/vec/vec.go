// Package vec converts caller vector types to and from the three-scalar
// layout libccd reads and writes (ccd_vec3_t).
package vec

import (
	"fmt"
	"math"

	"github.com/chazu/goccd/pkg/precision"
)

// Raw is the foreign vector layout: x, y, z as contiguous scalars of the
// build's precision, no padding.
type Raw [3]precision.Scalar

// IsFinite reports whether no component is NaN or infinite.
func (r Raw) IsFinite() bool {
	for _, c := range r {
		f := float64(c)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
	}
	return true
}

// String formats the vector as (x, y, z).
func (r Raw) String() string {
	return fmt.Sprintf("(%g, %g, %g)", r[0], r[1], r[2])
}

// Adapter converts a caller vector type V to and from Raw. Implementations
// must be total and must not allocate. Encode(Decode(r)) == r must hold for
// every Raw r.
type Adapter[V any] interface {
	Encode(v V) Raw
	Decode(r Raw) V
}
