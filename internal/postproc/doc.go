// Package postproc shapes a resolved configuration for a consumer:
// required-key checks, single-key squeezing and top-level key selection.
package postproc
