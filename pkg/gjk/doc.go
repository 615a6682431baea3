// Package gjk answers "do these two convex shapes overlap?" by handing
// caller support closures to a foreign intersection routine (libccd, see
// the libccd subpackage) and decoding its answer.
//
// A query pins both closures, builds the ccd_t descriptor, calls the routine
// exactly once and releases both pins on every exit path. The routine may
// call back into each closure many times, bounded by Config.MaxIterations
// and the per-query support call budget.
package gjk
