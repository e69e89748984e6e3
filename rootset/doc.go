// Package rootset implements the root-set discipline of spec §4.R: a
// LIFO-linked list of per-frame value slots that name GC roots. Compiled
// code (or, here, any allocating Go function) pushes a Frame on entry and
// pops it on exit; every value_t that must survive an allocating call
// lives in a root-set slot of some currently-pushed frame.
package rootset
