package gjk

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/chazu/goccd/pkg/contract"
	"github.com/chazu/goccd/pkg/marshal"
	"github.com/chazu/goccd/pkg/pin"
	"github.com/chazu/goccd/pkg/precision"
	"github.com/chazu/goccd/pkg/vec"
)

// Support maps a direction to the farthest point of a shape along it.
type Support[V any] = marshal.Support[V]

// Center returns a point inside a shape.
type Center[V any] = marshal.Center[V]

type algorithm string

const (
	algGJK algorithm = "ccdGJKIntersect"
	algMPR algorithm = "ccdMPRIntersect"
)

// Stats describes how the foreign routine used the closures of one query.
type Stats struct {
	SupportCallsA uint64
	SupportCallsB uint64
	CenterCallsA  uint64
	CenterCallsB  uint64
}

// Detector runs intersection queries over closures of vector type V.
// A Detector holds only configuration, so it is safe for concurrent use;
// every query owns its own pins and descriptor.
type Detector[V any] struct {
	routine  Routine
	adapter  vec.Adapter[V]
	cfg      contract.Config
	logger   *zap.Logger
	registry *pin.Registry
	parallel int
	firstDir *V
}

// New returns a Detector for routine r and adapter a.
func New[V any](r Routine, a vec.Adapter[V], opts ...Option) (*Detector[V], error) {
	if r == nil {
		return nil, errors.New("gjk: nil routine")
	}
	if a == nil {
		return nil, errors.New("gjk: nil vector adapter")
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.cfg.Validate(); err != nil {
		return nil, err
	}
	if got := r.Precision(); got != precision.Name {
		return nil, errors.Wrapf(ErrPrecisionMismatch, "routine is %s precision, bridge is %s", got, precision.Name)
	}
	return &Detector[V]{
		routine:  r,
		adapter:  a,
		cfg:      o.cfg,
		logger:   o.logger,
		registry: o.registry,
		parallel: o.parallelism,
	}, nil
}

// Config returns the detector's configuration.
func (d *Detector[V]) Config() contract.Config {
	return d.cfg
}

// WithFirstDir returns a copy of d whose queries start searching along dir
// instead of libccd's default first direction.
func (d *Detector[V]) WithFirstDir(dir V) *Detector[V] {
	c := *d
	c.firstDir = &dir
	return &c
}

// Intersect reports whether the shapes described by a and b overlap.
// Touching shapes count as overlapping within the distance tolerance.
func (d *Detector[V]) Intersect(a, b Support[V]) (bool, error) {
	hit, _, err := d.query(algGJK, a, b, nil, nil)
	return hit, err
}

// IntersectWithStats is Intersect plus the callback counts of the query.
func (d *Detector[V]) IntersectWithStats(a, b Support[V]) (bool, Stats, error) {
	return d.query(algGJK, a, b, nil, nil)
}

// IntersectMPR answers the same question with Minkowski portal refinement,
// which also needs a point inside each shape.
func (d *Detector[V]) IntersectMPR(a, b Support[V], ca, cb Center[V]) (bool, error) {
	if ca == nil || cb == nil {
		return false, errors.Wrap(ErrNoCenter, "MPR needs both center functions")
	}
	hit, _, err := d.query(algMPR, a, b, ca, cb)
	return hit, err
}

// query pins both shapes, makes the single foreign call and releases the
// pins on every path out, including a panic raised by the routine.
func (d *Detector[V]) query(alg algorithm, a, b Support[V], ca, cb Center[V]) (bool, Stats, error) {
	var st Stats
	if a == nil || b == nil {
		return false, st, ErrNilSupport
	}

	budget := d.cfg.SupportBudget()
	shapeA := marshal.NewShape(d.adapter, a, budget).SetCenter(ca)
	shapeB := marshal.NewShape(d.adapter, b, budget).SetCenter(cb)
	if d.firstDir != nil {
		shapeA.SetFirstDir(*d.firstDir)
	}

	ha := d.registry.Pin(shapeA)
	defer ha.Release()
	hb := d.registry.Pin(shapeB)
	defer hb.Release()

	desc := contract.Build(d.cfg, ha.Addr(), hb.Addr(), contract.BuildOptions{
		FirstDirOverride: d.firstDir != nil,
		Centers:          alg == algMPR,
	})
	if err := desc.Check(alg == algMPR); err != nil {
		return false, st, err
	}

	var code int
	switch alg {
	case algMPR:
		code = d.routine.MPRIntersect(&desc)
	default:
		code = d.routine.GJKIntersect(&desc)
	}

	st = Stats{
		SupportCallsA: shapeA.Calls(),
		SupportCallsB: shapeB.Calls(),
		CenterCallsA:  shapeA.CenterCalls(),
		CenterCallsB:  shapeB.CenterCalls(),
	}

	if err := firstFault(shapeA.Err(), shapeB.Err()); err != nil {
		d.logger.Warn("support closure fault",
			zap.String("algorithm", string(alg)),
			zap.Int("code", code),
			zap.Error(err),
		)
		return false, st, err
	}

	hit, err := decodeResult(string(alg), code)
	if err != nil {
		d.logger.Error("foreign routine contract violation",
			zap.String("algorithm", string(alg)),
			zap.Int("code", code),
		)
		return false, st, err
	}

	d.logger.Debug("intersection query",
		zap.String("algorithm", string(alg)),
		zap.Bool("intersect", hit),
		zap.Uint64("support_calls_a", st.SupportCallsA),
		zap.Uint64("support_calls_b", st.SupportCallsB),
	)
	return hit, st, nil
}

func firstFault(a, b error) error {
	if a != nil {
		return errors.Wrap(a, "shape a")
	}
	if b != nil {
		return errors.Wrap(b, "shape b")
	}
	return nil
}

// Intersect is a one-off query with the default configuration.
func Intersect[V any](r Routine, a vec.Adapter[V], supportA, supportB Support[V]) (bool, error) {
	d, err := New(r, a)
	if err != nil {
		return false, err
	}
	return d.Intersect(supportA, supportB)
}
