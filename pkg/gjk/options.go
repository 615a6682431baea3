package gjk

import (
	"runtime"

	"go.uber.org/zap"

	"github.com/chazu/goccd/pkg/contract"
	"github.com/chazu/goccd/pkg/pin"
)

type options struct {
	cfg         contract.Config
	logger      *zap.Logger
	registry    *pin.Registry
	parallelism int
}

func defaultOptions() options {
	return options{
		cfg:         contract.DefaultConfig(),
		logger:      zap.NewNop(),
		registry:    pin.Default,
		parallelism: runtime.GOMAXPROCS(0),
	}
}

// Option configures a Detector.
type Option func(*options)

// WithConfig replaces the default iteration bound and tolerances.
func WithConfig(cfg contract.Config) Option {
	return func(o *options) {
		o.cfg = cfg
	}
}

// WithLogger sets the logger. A nil logger disables logging.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l == nil {
			l = zap.NewNop()
		}
		o.logger = l
	}
}

// WithRegistry pins closures in r instead of pin.Default.
func WithRegistry(r *pin.Registry) Option {
	return func(o *options) {
		if r != nil {
			o.registry = r
		}
	}
}

// WithParallelism bounds how many queries IntersectBatch runs at once.
// Values below one mean one.
func WithParallelism(n int) Option {
	return func(o *options) {
		if n < 1 {
			n = 1
		}
		o.parallelism = n
	}
}
