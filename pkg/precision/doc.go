// Package precision selects the scalar width shared by the bridge and the
// libccd binary it links against. The choice is made at build time: the
// default is single precision, the ccd_double build tag selects double
// precision. It must match how libccd was compiled (ENABLE_DOUBLE_PRECISION).
package precision
