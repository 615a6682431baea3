//go:build ccd

package libccd

/*
#include "bridge.h"
*/
import "C"

import (
	"unsafe"

	"github.com/chazu/goccd/pkg/marshal"
	"github.com/chazu/goccd/pkg/vec"
)

// The exported functions below are the only Go code libccd reaches. obj is
// the pin address the query façade handed to the routine.

//export goccdSupport
func goccdSupport(obj C.uintptr_t, dir, out *C.ccd_vec3_t) {
	marshal.DispatchSupport(uintptr(obj), (*vec.Raw)(unsafe.Pointer(dir)), (*vec.Raw)(unsafe.Pointer(out)))
}

//export goccdCenter
func goccdCenter(obj C.uintptr_t, out *C.ccd_vec3_t) {
	marshal.DispatchCenter(uintptr(obj), (*vec.Raw)(unsafe.Pointer(out)))
}

//export goccdFirstDir
func goccdFirstDir(obj1, obj2 C.uintptr_t, out *C.ccd_vec3_t) {
	marshal.DispatchFirstDir(uintptr(obj1), uintptr(obj2), (*vec.Raw)(unsafe.Pointer(out)))
}
