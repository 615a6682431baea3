// Package contract builds the record handed to libccd for one query: which
// callback slots are filled, the iteration bound and the tolerances.
package contract

import (
	"math"

	"github.com/go-viper/mapstructure/v2"
	"github.com/pkg/errors"

	"github.com/chazu/goccd/pkg/precision"
)

const (
	// DefaultMaxIterations bounds the foreign refinement loop. libccd's own
	// default is Unbounded, which the bridge never passes through.
	DefaultMaxIterations = 100
	// DefaultEPATolerance is libccd's default expanding-polytope tolerance.
	DefaultEPATolerance = 1e-4
	// DefaultMPRTolerance is libccd's default portal refinement tolerance.
	DefaultMPRTolerance = 1e-4
	// DefaultDistTolerance is libccd's default distance tolerance.
	DefaultDistTolerance = 1e-6

	// Unbounded is libccd's "no limit" iteration sentinel ((unsigned long)-1).
	Unbounded = ^uint64(0)
	// MaxIterationsLimit keeps the bound representable in a 32-bit unsigned
	// long as well.
	MaxIterationsLimit = math.MaxUint32 - 1
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid ccd config")

// Config holds the numeric tuning of a query.
type Config struct {
	MaxIterations uint64           `mapstructure:"max_iterations"`
	EPATolerance  precision.Scalar `mapstructure:"epa_tolerance"`
	MPRTolerance  precision.Scalar `mapstructure:"mpr_tolerance"`
	DistTolerance precision.Scalar `mapstructure:"dist_tolerance"`

	// MaxSupportCalls caps how often one support closure may run during a
	// single query. Zero derives the cap from MaxIterations.
	MaxSupportCalls uint64 `mapstructure:"max_support_calls"`
}

// DefaultConfig returns the bridge defaults.
func DefaultConfig() Config {
	return Config{
		MaxIterations: DefaultMaxIterations,
		EPATolerance:  DefaultEPATolerance,
		MPRTolerance:  DefaultMPRTolerance,
		DistTolerance: DefaultDistTolerance,
	}
}

// Validate rejects configurations that would hand libccd an unbounded or
// meaningless loop.
func (c Config) Validate() error {
	switch {
	case c.MaxIterations == 0:
		return errors.Wrap(ErrInvalidConfig, "max_iterations must be positive")
	case c.MaxIterations == Unbounded:
		return errors.Wrap(ErrInvalidConfig, "max_iterations must be bounded")
	case c.MaxIterations > MaxIterationsLimit:
		return errors.Wrapf(ErrInvalidConfig, "max_iterations %d exceeds limit %d", c.MaxIterations, uint64(MaxIterationsLimit))
	}
	for _, tol := range []struct {
		name string
		v    precision.Scalar
	}{
		{"epa_tolerance", c.EPATolerance},
		{"mpr_tolerance", c.MPRTolerance},
		{"dist_tolerance", c.DistTolerance},
	} {
		f := float64(tol.v)
		if math.IsNaN(f) || math.IsInf(f, 0) || f <= 0 {
			return errors.Wrapf(ErrInvalidConfig, "%s must be positive and finite, got %v", tol.name, tol.v)
		}
	}
	if c.MaxSupportCalls != 0 && c.MaxSupportCalls <= c.MaxIterations {
		return errors.Wrapf(ErrInvalidConfig, "max_support_calls %d must exceed max_iterations %d",
			c.MaxSupportCalls, c.MaxIterations)
	}
	return nil
}

// SupportBudget is the number of times one support closure may run in a
// query. GJK needs at most MaxIterations+1 calls per shape; the derived cap
// leaves room for MPR's portal discovery, which libccd does not bound.
func (c Config) SupportBudget() uint64 {
	if c.MaxSupportCalls != 0 {
		return c.MaxSupportCalls
	}
	return 4 * (c.MaxIterations + 1)
}

// ConfigFromMap decodes an attribute map on top of DefaultConfig and
// validates the result. Unknown keys are rejected.
func ConfigFromMap(attrs map[string]any) (Config, error) {
	cfg := DefaultConfig()
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &cfg,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return Config{}, errors.Wrap(err, "creating config decoder")
	}
	if err := dec.Decode(attrs); err != nil {
		return Config{}, errors.Wrap(err, "decoding ccd config")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
