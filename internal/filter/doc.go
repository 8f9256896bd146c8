// Package filter implements the neighborhood filters used by geometry
// operations: a separable Gaussian blur over RGBA8 buffers and the kernels
// it is built from.
package filter
