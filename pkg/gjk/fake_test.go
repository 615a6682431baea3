package gjk

import (
	"sync"

	"github.com/chazu/goccd/pkg/contract"
	"github.com/chazu/goccd/pkg/marshal"
	"github.com/chazu/goccd/pkg/precision"
	"github.com/chazu/goccd/pkg/vec"
)

// fakeRoutine stands in for libccd. It drives the real dispatch path the
// way the C trampolines do and answers with a separating-axis test over a
// fixed set of directions, which is exact for the axis-aligned cases used
// in these tests.
type fakeRoutine struct {
	precision string
	reentrant bool
	code      *int
	panicWith any
	silent    bool // answer without calling back
	extra     int  // support calls per shape after the probe loop

	mu    sync.Mutex
	gjk   int
	mpr   int
	descs []contract.Descriptor
}

var _ Routine = (*fakeRoutine)(nil)

func newFake() *fakeRoutine {
	return &fakeRoutine{precision: precision.Name, reentrant: true}
}

func (f *fakeRoutine) Precision() string { return f.precision }
func (f *fakeRoutine) Reentrant() bool   { return f.reentrant }

func (f *fakeRoutine) GJKIntersect(d *contract.Descriptor) int {
	f.record(d, &f.gjk)
	return f.run(d)
}

func (f *fakeRoutine) MPRIntersect(d *contract.Descriptor) int {
	f.record(d, &f.mpr)
	var c vec.Raw
	marshal.DispatchCenter(d.Obj1, &c)
	marshal.DispatchCenter(d.Obj2, &c)
	return f.run(d)
}

func (f *fakeRoutine) record(d *contract.Descriptor, n *int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	*n++
	f.descs = append(f.descs, *d)
}

func (f *fakeRoutine) lastDesc() contract.Descriptor {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.descs[len(f.descs)-1]
}

var probeDirs = []vec.Raw{
	{1, 0, 0}, {-1, 0, 0},
	{0, 1, 0}, {0, -1, 0},
	{0, 0, 1}, {0, 0, -1},
	{1, 1, 0}, {-1, -1, 0},
	{1, 0, 1}, {-1, 0, -1},
}

func (f *fakeRoutine) run(d *contract.Descriptor) int {
	if f.panicWith != nil {
		panic(f.panicWith)
	}
	if f.silent {
		if f.code != nil {
			return *f.code
		}
		return 0
	}

	first := vec.Raw{1, 0, 0}
	if d.FirstDir == contract.SlotBridge {
		marshal.DispatchFirstDir(d.Obj1, d.Obj2, &first)
	}
	dirs := append([]vec.Raw{first}, probeDirs...)
	if n := d.MaxIterations; n < uint64(len(dirs)) {
		dirs = dirs[:n]
	}

	hit := 1
	for _, dir := range dirs {
		neg := vec.Raw{-dir[0], -dir[1], -dir[2]}
		var pa, pb vec.Raw
		marshal.DispatchSupport(d.Obj1, &dir, &pa)
		marshal.DispatchSupport(d.Obj2, &neg, &pb)
		var dot precision.Scalar
		for i := range dir {
			dot += (pa[i] - pb[i]) * dir[i]
		}
		if dot < 0 {
			hit = 0
			break
		}
	}
	for i := 0; i < f.extra; i++ {
		var out vec.Raw
		marshal.DispatchSupport(d.Obj1, &first, &out)
		marshal.DispatchSupport(d.Obj2, &first, &out)
	}
	if f.code != nil {
		return *f.code
	}
	return hit
}
