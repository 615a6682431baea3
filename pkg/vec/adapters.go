package vec

import (
	"github.com/chazu/goccd/pkg/precision"
	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"
)

// Compile-time interface checks.
var (
	_ Adapter[[3]float64] = Float64Array[[3]float64]{}
	_ Adapter[[3]float32] = Float32Array[[3]float32]{}
	_ Adapter[r3.Vector]  = R3Adapter{}
	_ Adapter[v3.Vec]     = SDFXAdapter{}
)

// Ready-made adapters for the vector types found in common Go geometry
// libraries.
var (
	Array64 = Float64Array[[3]float64]{}
	Array32 = Float32Array[[3]float32]{}
	MGL64   = Float64Array[mgl64.Vec3]{}
	MGL32   = Float32Array[mgl32.Vec3]{}
	R3      = R3Adapter{}
	SDFX    = SDFXAdapter{}
)

// Float64Array adapts any named or unnamed [3]float64, such as mgl64.Vec3.
type Float64Array[V ~[3]float64] struct{}

func (Float64Array[V]) Encode(v V) Raw {
	return Raw{precision.Scalar(v[0]), precision.Scalar(v[1]), precision.Scalar(v[2])}
}

func (Float64Array[V]) Decode(r Raw) V {
	var v V
	v[0], v[1], v[2] = float64(r[0]), float64(r[1]), float64(r[2])
	return v
}

// Float32Array adapts any named or unnamed [3]float32, such as mgl32.Vec3.
type Float32Array[V ~[3]float32] struct{}

func (Float32Array[V]) Encode(v V) Raw {
	return Raw{precision.Scalar(v[0]), precision.Scalar(v[1]), precision.Scalar(v[2])}
}

// Decode narrows to float32. Under double precision builds this rounds, so
// only values that came from Encode round trip exactly.
func (Float32Array[V]) Decode(r Raw) V {
	var v V
	v[0], v[1], v[2] = float32(r[0]), float32(r[1]), float32(r[2])
	return v
}

// R3Adapter adapts github.com/golang/geo/r3.Vector.
type R3Adapter struct{}

func (R3Adapter) Encode(v r3.Vector) Raw {
	return Raw{precision.Scalar(v.X), precision.Scalar(v.Y), precision.Scalar(v.Z)}
}

func (R3Adapter) Decode(r Raw) r3.Vector {
	return r3.Vector{X: float64(r[0]), Y: float64(r[1]), Z: float64(r[2])}
}

// SDFXAdapter adapts github.com/deadsy/sdfx/vec/v3.Vec.
type SDFXAdapter struct{}

func (SDFXAdapter) Encode(v v3.Vec) Raw {
	return Raw{precision.Scalar(v.X), precision.Scalar(v.Y), precision.Scalar(v.Z)}
}

func (SDFXAdapter) Decode(r Raw) v3.Vec {
	return v3.Vec{X: float64(r[0]), Y: float64(r[1]), Z: float64(r[2])}
}

// Funcs builds an Adapter from a pair of conversion functions, for vector
// types this package does not know about.
type Funcs[V any] struct {
	To   func(V) Raw
	From func(Raw) V
}

func (f Funcs[V]) Encode(v V) Raw { return f.To(v) }
func (f Funcs[V]) Decode(r Raw) V { return f.From(r) }
