// Package rterr implements the runtime's structured error surface
// (spec §4.E, §7): four categories — Type, Index, Allocation, Generic —
// each rendering to the exact message shape the reference runtime
// prints, with a Builder for structured construction.
//
// The reference runtime unwinds errors via setjmp/longjmp to
// try_and_catch. Go has no equivalent control-transfer primitive; the
// idiomatic substitute is panic/recover, which this package's errors are
// designed to be panicked with and recovered by package interp's
// TryAndCatch — the same "jump to the nearest handler, one error buffer
// at a time" shape, expressed with Go's native unwinding mechanism
// instead of C's.
package rterr
