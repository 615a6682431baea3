//go:build !ccd

// Package libccd binds the gjk façade to libccd through cgo. When the "ccd"
// build tag is not set, this stub package is compiled instead, returning an
// error from New().
//
// Build with: go build -tags=ccd
package libccd

import (
	"github.com/pkg/errors"

	"github.com/chazu/goccd/pkg/gjk"
)

// New returns an error indicating libccd is not available.
// Build with -tags=ccd to enable.
func New() (gjk.Routine, error) {
	return nil, errors.New("libccd routine not available: build with -tags=ccd")
}
