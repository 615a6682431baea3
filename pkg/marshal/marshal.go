// Package marshal turns caller closures over an arbitrary vector type into
// the three callbacks libccd invokes: support, center and first direction.
//
// A Shape[V] is instantiated per vector type and pinned by the caller. The
// foreign side only sees its pin address; the Dispatch functions, called
// from the exported C trampolines, resolve that address back to the shape
// and are the only place the type-erased value is recovered.
//
// Shapes are driven by a single foreign call on a single goroutine and are
// not meant to be shared between queries.
package marshal

import (
	"fmt"
	"runtime/debug"

	"github.com/pkg/errors"
	"go.uber.org/atomic"

	"github.com/chazu/goccd/pkg/pin"
	"github.com/chazu/goccd/pkg/vec"
)

var (
	// ErrSupportPanic is matched by the error recorded when a closure panics.
	ErrSupportPanic = errors.New("support function panicked")
	// ErrCallBudgetExceeded is recorded when a closure would run more often
	// than the query's call budget allows.
	ErrCallBudgetExceeded = errors.New("support call budget exceeded")
	// ErrNonFinite is recorded when a closure returns NaN or Inf.
	ErrNonFinite = errors.New("support function returned a non-finite point")
	// ErrNoCenter is recorded when libccd asks for a center the caller did
	// not provide.
	ErrNoCenter = errors.New("center requested but no center function set")
)

// Support maps a direction to the farthest point of a shape along it.
type Support[V any] func(dir V) V

// Center returns a point inside a shape, used by MPR.
type Center[V any] func() V

// PanicError carries a recovered panic out of a closure.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("support function panicked: %v", e.Value)
}

func (e *PanicError) Unwrap() error { return ErrSupportPanic }

// erased is the view of a Shape[V] that survives the trip through a pin
// address. Its methods are unexported so only Shape can satisfy it.
type erased interface {
	support(dir, out *vec.Raw)
	center(out *vec.Raw)
	firstDir(out *vec.Raw) bool
}

var _ erased = (*Shape[vec.Raw])(nil)

// Shape holds one caller closure for the duration of one query.
type Shape[V any] struct {
	adapter  vec.Adapter[V]
	fn       Support[V]
	centerFn Center[V]
	dir      *vec.Raw
	budget   uint64

	calls       atomic.Uint64
	invoked     atomic.Uint64
	centerCalls atomic.Uint64

	last  vec.Raw
	fault error
}

// NewShape wraps fn. budget caps how often fn runs; zero means no cap.
func NewShape[V any](adapter vec.Adapter[V], fn Support[V], budget uint64) *Shape[V] {
	return &Shape[V]{adapter: adapter, fn: fn, budget: budget}
}

// SetCenter attaches a center function.
func (s *Shape[V]) SetCenter(c Center[V]) *Shape[V] {
	s.centerFn = c
	return s
}

// SetFirstDir makes this shape answer the first-direction callback with d.
// Only the first shape of a query is asked.
func (s *Shape[V]) SetFirstDir(d V) *Shape[V] {
	r := s.adapter.Encode(d)
	s.dir = &r
	return s
}

// Calls is the number of times libccd asked for a support point.
func (s *Shape[V]) Calls() uint64 { return s.calls.Load() }

// Invoked is the number of times the closure actually ran. It differs from
// Calls once a fault has been recorded.
func (s *Shape[V]) Invoked() uint64 { return s.invoked.Load() }

// CenterCalls is the number of times libccd asked for the center.
func (s *Shape[V]) CenterCalls() uint64 { return s.centerCalls.Load() }

// Err returns the first fault recorded during the query, if any.
func (s *Shape[V]) Err() error { return s.fault }

func (s *Shape[V]) fail(err error) {
	if s.fault == nil {
		s.fault = err
	}
}

// support answers one callback. After a fault it stops calling the closure
// and repeats the last good point, so the foreign loop still terminates.
func (s *Shape[V]) support(dir, out *vec.Raw) {
	n := s.calls.Inc()
	if s.fault != nil {
		*out = s.last
		return
	}
	if s.budget != 0 && n > s.budget {
		s.fail(errors.Wrapf(ErrCallBudgetExceeded, "after %d calls", s.budget))
		*out = s.last
		return
	}
	res, err := s.invoke(*dir)
	if err != nil {
		s.fail(err)
		*out = s.last
		return
	}
	if !res.IsFinite() {
		s.fail(errors.Wrapf(ErrNonFinite, "direction %s gave %s", dir, res))
		*out = s.last
		return
	}
	s.last = res
	*out = res
}

func (s *Shape[V]) invoke(dir vec.Raw) (res vec.Raw, err error) {
	s.invoked.Inc()
	defer func() {
		if r := recover(); r != nil {
			err = &PanicError{Value: r, Stack: debug.Stack()}
		}
	}()
	return s.adapter.Encode(s.fn(s.adapter.Decode(dir))), nil
}

func (s *Shape[V]) center(out *vec.Raw) {
	s.centerCalls.Inc()
	if s.centerFn == nil {
		s.fail(ErrNoCenter)
		*out = vec.Raw{}
		return
	}
	var res vec.Raw
	func() {
		defer func() {
			if r := recover(); r != nil {
				s.fail(&PanicError{Value: r, Stack: debug.Stack()})
			}
		}()
		res = s.adapter.Encode(s.centerFn())
	}()
	if !res.IsFinite() {
		s.fail(errors.Wrapf(ErrNonFinite, "center %s", res))
		res = vec.Raw{}
	}
	*out = res
}

func (s *Shape[V]) firstDir(out *vec.Raw) bool {
	if s.dir == nil {
		return false
	}
	*out = *s.dir
	return true
}

// fallbackDir mirrors ccdFirstDirDefault.
var fallbackDir = vec.Raw{1, 0, 0}

func resolve(ctx uintptr) erased {
	v := pin.Resolve(ctx)
	e, ok := v.(erased)
	if !ok {
		panic(fmt.Sprintf("marshal: context %#x holds %T, not a shape", ctx, v))
	}
	return e
}

// DispatchSupport serves libccd's support callback for the shape pinned at
// ctx.
func DispatchSupport(ctx uintptr, dir, out *vec.Raw) {
	resolve(ctx).support(dir, out)
}

// DispatchCenter serves libccd's center callback for the shape pinned at
// ctx.
func DispatchCenter(ctx uintptr, out *vec.Raw) {
	resolve(ctx).center(out)
}

// DispatchFirstDir serves libccd's first-direction callback. The direction
// comes from the first shape; without one it falls back to libccd's default.
func DispatchFirstDir(ctx1, ctx2 uintptr, out *vec.Raw) {
	if resolve(ctx1).firstDir(out) {
		return
	}
	*out = fallbackDir
}
