// Package heap implements the fixed-size word-array heap and its
// free-list allocator (spec §4.H): a []uint32 of length HEAP_SIZE, a
// singly linked free-list of even-sized chunks threaded through the
// array itself, and the header-word bit layout (class handle, gray bit,
// mark bit) every heap object shares.
//
// The allocator here is deliberately low-level: it has no knowledge of
// interrupts or garbage collection. The retry-after-GC policy described
// in spec §4.H ("if no fit, run GC once and retry") lives in package gc,
// which owns both the heap and the collector and can coordinate the two.
package heap
