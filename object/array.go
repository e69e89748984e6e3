package object

import (
	"math"

	"github.com/bluescript-lang/runtime/gc"
	"github.com/bluescript-lang/runtime/heap"
	"github.com/bluescript-lang/runtime/rterr"
	"github.com/bluescript-lang/runtime/value"
)

func checkIndex(site string, i, length int32) {
	if i < 0 || i >= length {
		rterr.Raise(rterr.IndexError(site, i, length))
	}
}

// --- Int array ---------------------------------------------------------

// NewIntArray allocates an int array of n elements, each set to init.
// Matches new_intarray.
func NewIntArray(g *gc.GC, n int32, init int32) value.Value {
	ptr := g.Allocate(uint16(n + 1))
	g.Heap.SetObjectHeader(ptr, ClassIntArray, g.NoMarkBit())
	g.Heap.SetBody(ptr, 0, uint32(n))
	for i := int32(0); i < n; i++ {
		g.Heap.SetBody(ptr, 1+i, uint32(init))
	}
	return value.PtrToValue(uint32(ptr))
}

// MakeIntArray allocates an int array from an explicit element list.
// Matches make_intarray.
func MakeIntArray(g *gc.GC, elems ...int32) value.Value {
	n := int32(len(elems))
	ptr := g.Allocate(uint16(n + 1))
	g.Heap.SetObjectHeader(ptr, ClassIntArray, g.NoMarkBit())
	g.Heap.SetBody(ptr, 0, uint32(n))
	for i, e := range elems {
		g.Heap.SetBody(ptr, int32(1+i), uint32(e))
	}
	return value.PtrToValue(uint32(ptr))
}

func IntArrayGet(h *heap.Heap, arr value.Value, i int32) int32 {
	ptr := heap.Ptr(value.ValueToPtr(arr))
	n := int32(h.Body(ptr, 0))
	checkIndex("IntArray.get/set", i, n)
	return int32(h.Body(ptr, 1+i))
}

func IntArraySet(h *heap.Heap, arr value.Value, i int32, v int32) {
	ptr := heap.Ptr(value.ValueToPtr(arr))
	n := int32(h.Body(ptr, 0))
	checkIndex("IntArray.get/set", i, n)
	h.SetBody(ptr, 1+i, uint32(v))
}

// --- Float array ---------------------------------------------------------

// NewFloatArray allocates a float array of n elements, each set to init.
func NewFloatArray(g *gc.GC, n int32, init float32) value.Value {
	ptr := g.Allocate(uint16(n + 1))
	g.Heap.SetObjectHeader(ptr, ClassFloatArray, g.NoMarkBit())
	g.Heap.SetBody(ptr, 0, uint32(n))
	bits := math.Float32bits(init)
	for i := int32(0); i < n; i++ {
		g.Heap.SetBody(ptr, 1+i, bits)
	}
	return value.PtrToValue(uint32(ptr))
}

// MakeFloatArray allocates a float array from an explicit element list.
func MakeFloatArray(g *gc.GC, elems ...float32) value.Value {
	n := int32(len(elems))
	ptr := g.Allocate(uint16(n + 1))
	g.Heap.SetObjectHeader(ptr, ClassFloatArray, g.NoMarkBit())
	g.Heap.SetBody(ptr, 0, uint32(n))
	for i, e := range elems {
		g.Heap.SetBody(ptr, int32(1+i), math.Float32bits(e))
	}
	return value.PtrToValue(uint32(ptr))
}

func FloatArrayGet(h *heap.Heap, arr value.Value, i int32) float32 {
	ptr := heap.Ptr(value.ValueToPtr(arr))
	n := int32(h.Body(ptr, 0))
	checkIndex("FloatArray.get/set", i, n)
	return math.Float32frombits(h.Body(ptr, 1+i))
}

func FloatArraySet(h *heap.Heap, arr value.Value, i int32, v float32) {
	ptr := heap.Ptr(value.ValueToPtr(arr))
	n := int32(h.Body(ptr, 0))
	checkIndex("FloatArray.get/set", i, n)
	h.SetBody(ptr, 1+i, math.Float32bits(v))
}

// --- Byte array ---------------------------------------------------------

func byteArrayDataWords(n int32) int32 {
	return (n + 3) / 4
}

// NewByteArray allocates a byte array of n elements, all set to init.
// Matches new_bytearray: body[0] is the number of body words after it
// (the ObjectSize formula's body[0]+1 == body length), body[1] is the logical
// element count, and body[2..] packs four bytes per word.
func NewByteArray(g *gc.GC, n int32, init byte) value.Value {
	dataWords := byteArrayDataWords(n)
	ptr := g.Allocate(uint16(2 + dataWords))
	g.Heap.SetObjectHeader(ptr, ClassByteArray, g.NoMarkBit())
	g.Heap.SetBody(ptr, 0, uint32(1+dataWords))
	g.Heap.SetBody(ptr, 1, uint32(n))
	word := uint32(init) * 0x01010101
	for i := int32(0); i < dataWords; i++ {
		g.Heap.SetBody(ptr, 2+i, word)
	}
	return value.PtrToValue(uint32(ptr))
}

func ByteArrayGet(h *heap.Heap, arr value.Value, i int32) byte {
	ptr := heap.Ptr(value.ValueToPtr(arr))
	n := int32(h.Body(ptr, 1))
	checkIndex("ByteArray.get/set", i, n)
	word := h.Body(ptr, 2+i/4)
	shift := uint(i%4) * 8
	return byte(word >> shift)
}

func ByteArraySet(h *heap.Heap, arr value.Value, i int32, v byte) {
	ptr := heap.Ptr(value.ValueToPtr(arr))
	n := int32(h.Body(ptr, 1))
	checkIndex("ByteArray.get/set", i, n)
	wordIdx := 2 + i/4
	shift := uint(i%4) * 8
	word := h.Body(ptr, wordIdx)
	word = (word &^ (0xFF << shift)) | uint32(v)<<shift
	h.SetBody(ptr, wordIdx, word)
}

// --- Vector ---------------------------------------------------------

// NewVector allocates a vector of n value_t elements, each set to init.
// Matches new_vector.
func NewVector(g *gc.GC, n int32, init value.Value) value.Value {
	ptr := g.Allocate(uint16(n + 1))
	g.Heap.SetObjectHeader(ptr, ClassVector, g.NoMarkBit())
	g.Heap.SetBody(ptr, 0, uint32(n))
	for i := int32(0); i < n; i++ {
		g.Heap.SetBody(ptr, 1+i, uint32(init))
	}
	return value.PtrToValue(uint32(ptr))
}

// VectorGet bounds-checks and reads element i. Matches vector_get.
func VectorGet(h *heap.Heap, vec value.Value, i int32) value.Value {
	ptr := heap.Ptr(value.ValueToPtr(vec))
	n := int32(h.Body(ptr, 0))
	checkIndex("Vector.get/set", i, n)
	return value.Value(h.Body(ptr, 1+i))
}

// VectorSet bounds-checks, invokes the write barrier, and writes element
// i. Matches vector_set.
func VectorSet(g *gc.GC, vec value.Value, i int32, v value.Value) {
	ptr := heap.Ptr(value.ValueToPtr(vec))
	n := int32(g.Heap.Body(ptr, 0))
	checkIndex("Vector.get/set", i, n)
	g.WriteBarrier(ptr, false, v)
	g.Heap.SetBody(ptr, 1+i, uint32(v))
}

// --- Array / AnyArray ---------------------------------------------------------

// NewArray allocates a backing Vector of n elements and wraps it in a
// 2-word [length, vectorRef] body. isAny selects ClassAnyArray over
// ClassArray; both share the same physical layout (spec §4.O). Matches
// new_array.
func NewArray(g *gc.GC, isAny bool, n int32, init value.Value) value.Value {
	vec := NewVector(g, n, init)

	clazz := ClassArray
	if isAny {
		clazz = ClassAnyArray
	}
	ptr := g.Allocate(uint16(clazz.Size))
	g.Heap.SetObjectHeader(ptr, clazz, g.NoMarkBit())
	g.Heap.SetBody(ptr, 0, uint32(n))
	g.Heap.SetBody(ptr, 1, uint32(vec))
	return value.PtrToValue(uint32(ptr))
}

// ArrayGet indirects through the array's stored vector reference,
// bounds-checking against the array's own (possibly sliced-shorter)
// logical length rather than the vector's. Matches array_get.
func ArrayGet(h *heap.Heap, arr value.Value, i int32) value.Value {
	ptr := heap.Ptr(value.ValueToPtr(arr))
	n := int32(h.Body(ptr, 0))
	checkIndex("Array.get/set", i, n)
	vec := value.Value(h.Body(ptr, 1))
	return VectorGet(h, vec, i)
}

// ArraySet indirects through the array's stored vector reference.
// Matches array_set.
func ArraySet(g *gc.GC, arr value.Value, i int32, v value.Value) {
	ptr := heap.Ptr(value.ValueToPtr(arr))
	n := int32(g.Heap.Body(ptr, 0))
	checkIndex("Array.get/set", i, n)
	vec := value.Value(g.Heap.Body(ptr, 1))
	VectorSet(g, vec, i, v)
}

// Length reads the length word of any array-like value (IntArray,
// FloatArray, ByteArray, Vector, Array, AnyArray) at the kind-dependent
// offset spec §4.O describes. Matches array_length.
func Length(h *heap.Heap, v value.Value) int32 {
	ptr := heap.Ptr(value.ValueToPtr(v))
	clazz := h.ClassOf(ptr)
	if clazz == ClassByteArray {
		return int32(h.Body(ptr, 1))
	}
	return int32(h.Body(ptr, 0))
}

// LengthProperty is the uniform "read the length word regardless of
// array kind" accessor used by property-access call sites (obj.length),
// distinct from Length's direct-builtin caller. Matches
// get_anyobj_length_property.
func LengthProperty(h *heap.Heap, v value.Value) value.Value {
	return value.IntToValue(Length(h, v))
}
