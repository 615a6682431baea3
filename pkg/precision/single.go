//go:build !ccd_double

package precision

// Scalar is the floating point type of every ccd_real_t crossing the bridge.
type Scalar = float32

const (
	// Double reports whether the build uses double precision scalars.
	Double = false
	// Name is the human readable precision, matched against the routine.
	Name = "single"
	// Bits is the width of Scalar.
	Bits = 32
)
