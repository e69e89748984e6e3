// Package interrupt implements the interrupt contract (spec §4.X): a
// nested counter the host increments/decrements at the entry and exit of
// every interrupt handler. While the counter is positive, the allocator
// refuses to allocate and the GC write barrier uses its interrupt-safe
// enqueue path instead of its normal no-op.
package interrupt
