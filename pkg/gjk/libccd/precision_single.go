//go:build ccd && !ccd_double

package libccd

// #cgo CFLAGS: -DGOCCD_SINGLE
import "C"
