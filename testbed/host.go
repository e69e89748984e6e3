package testbed

import (
	"github.com/bluescript-lang/runtime/gc"
	"github.com/bluescript-lang/runtime/object"
	"github.com/bluescript-lang/runtime/runtime"
	"github.com/bluescript-lang/runtime/value"
)

// Host exposes a small slice of the runtime's O/G surface as plain Go
// functions with wasm-friendly (int32-only) signatures, the host-call
// analogue of the compiled-C entry points new_intarray, gc_new_vector,
// gc_vector_set, and gc_run. A guest wasm module built from WAT imports
// these under the "bluescript" module namespace.
type Host struct {
	rt *runtime.Runtime
}

// NewHost wraps rt for host-function export.
func NewHost(rt *runtime.Runtime) *Host {
	return &Host{rt: rt}
}

// NewIntArray allocates an int array of n words, all initialised to
// init, and returns its heap word index. Matches new_intarray.
func (h *Host) NewIntArray(n, init int32) int32 {
	v := object.NewIntArray(h.rt.GC, n, init)
	return int32(value.ValueToPtr(v))
}

// IntArrayGet reads element i of the int array at ptr.
func (h *Host) IntArrayGet(ptr, i int32) int32 {
	v := value.PtrToValue(uint32(ptr))
	return object.IntArrayGet(h.rt.Heap, v, i)
}

// IntArraySet writes element i of the int array at ptr.
func (h *Host) IntArraySet(ptr, i, val int32) {
	v := value.PtrToValue(uint32(ptr))
	object.IntArraySet(h.rt.Heap, v, i, val)
}

// NewVector allocates a vector of n value_t slots, each UndefValue, and
// returns its heap word index. Matches new_vector.
func (h *Host) NewVector(n int32) int32 {
	v := object.NewVector(h.rt.GC, n, value.UndefValue)
	return int32(value.ValueToPtr(v))
}

// VectorSetInt stores an encoded int into vector slot i. Matches
// gc_vector_set specialised to the int case a guest module can express
// without any other value kind in scope.
func (h *Host) VectorSetInt(ptr, i, n int32) {
	vec := value.PtrToValue(uint32(ptr))
	object.VectorSet(h.rt.GC, vec, i, value.IntToValue(n))
}

// VectorGetInt reads vector slot i back as a decoded int.
func (h *Host) VectorGetInt(ptr, i int32) int32 {
	vec := value.PtrToValue(uint32(ptr))
	return value.ValueToInt(object.VectorGet(h.rt.Heap, vec, i))
}

// RunGC forces a collection cycle and returns the reclaimed word count,
// the guest-visible analogue of gc_run.
func (h *Host) RunGC() int32 {
	heapSize := h.rt.Heap.Size()
	before := 0
	for idx := h.rt.Heap.Words[0]; idx < heapSize; idx = h.rt.Heap.Words[idx] {
		before += int(h.rt.Heap.Words[idx+1])
	}
	stats := h.rt.RunGC()
	return int32(stats.FreeWords - before)
}

// gcStats is exposed for host-side assertions in tests; not imported by
// any guest module.
func (h *Host) gcStats() gc.Stats {
	return h.rt.GC.Run()
}
