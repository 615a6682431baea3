// Package pin owns Go values that foreign code refers to through an opaque
// context pointer. A pinned value is reachable from a stable integer address
// (a runtime/cgo.Handle) until it is released; C code only ever carries the
// address around and hands it back to Go, it never dereferences it.
//
// Every Pin must be paired with exactly one effective Release. Release is
// safe to call more than once; only the first call frees the handle.
package pin

import (
	"runtime/cgo"

	"github.com/pkg/errors"
	"go.uber.org/atomic"
)

// ErrReleased is the panic value raised when a released handle is read.
var ErrReleased = errors.New("pin: handle already released")

// Default is the process-wide registry used by the query façade.
var Default = NewRegistry()

// Registry tracks how many handles are live. It carries no other state, so
// concurrent queries only share these counters.
type Registry struct {
	live     atomic.Int64
	pinned   atomic.Uint64
	released atomic.Uint64
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Handle is the exclusive owner of one pinned value.
type Handle struct {
	reg      *Registry
	h        cgo.Handle
	released atomic.Bool
}

// Pin moves v behind a new handle. v must not be nil.
func (r *Registry) Pin(v any) *Handle {
	if v == nil {
		panic("pin: cannot pin a nil value")
	}
	h := &Handle{reg: r, h: cgo.NewHandle(v)}
	r.live.Inc()
	r.pinned.Inc()
	return h
}

// Outstanding returns the number of handles pinned but not yet released.
func (r *Registry) Outstanding() int64 {
	return r.live.Load()
}

// Counts returns the lifetime totals of pins and releases.
func (r *Registry) Counts() (pinned, released uint64) {
	return r.pinned.Load(), r.released.Load()
}

// Addr returns the address handed to foreign code as a context pointer.
func (h *Handle) Addr() uintptr {
	return uintptr(h.h)
}

// Value returns the pinned value. It panics with ErrReleased once the handle
// has been released.
func (h *Handle) Value() any {
	if h.released.Load() {
		panic(ErrReleased)
	}
	return h.h.Value()
}

// Released reports whether Release has run.
func (h *Handle) Released() bool {
	return h.released.Load()
}

// Release frees the handle. It returns true on the call that actually
// released it and false on every later call.
func (h *Handle) Release() bool {
	if !h.released.CompareAndSwap(false, true) {
		return false
	}
	h.h.Delete()
	h.reg.live.Dec()
	h.reg.released.Inc()
	return true
}

// Resolve recovers the value pinned at addr. addr must come from a live
// Handle; a stale address panics inside runtime/cgo.
func Resolve(addr uintptr) any {
	return cgo.Handle(addr).Value()
}
