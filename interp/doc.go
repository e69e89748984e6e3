// Package interp provides TryAndCatch, the Go analogue of the reference
// runtime's setjmp/longjmp entry-point wrapper. Every call into a
// compiled script's top-level entry point, or into a host-called
// callback, goes through TryAndCatch so that an rterr.Error raised deep
// in O/A/P/G unwinds cleanly back to one recovery point instead of
// corrupting caller state.
package interp
