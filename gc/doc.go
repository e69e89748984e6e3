// Package gc implements the tricolor mark-and-sweep collector of spec
// §4.G: single-threaded marking with a fixed-size mark stack and a
// stack-overflow fallback that re-scans the heap for orphaned gray
// objects, a linear sweep that rebuilds the free-list in place, and the
// interrupt-safe write barrier that keeps the tricolor invariant intact
// across a concurrent interrupt-handler mutation.
//
// A GC owns the heap it collects, the root-set list it marks from, and
// the interrupt counter that gates the write barrier's two execution
// paths. It also owns allocation: Allocate is the "try, GC once, retry,
// else raise" policy spec §4.H assigns to allocate_heap (the lower-level
// heap.AllocateRaw knows nothing about collection or interrupts).
package gc
