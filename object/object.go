package object

import (
	"math"
	"reflect"
	"sync"

	"github.com/bluescript-lang/runtime/class"
	"github.com/bluescript-lang/runtime/gc"
	"github.com/bluescript-lang/runtime/heap"
	"github.com/bluescript-lang/runtime/internal/ptrtable"
	"github.com/bluescript-lang/runtime/value"
)

// stringTable interns the Go strings backing string literals and
// function signatures: both are raw, unmanaged body words, so the
// handle stored on the heap never needs to change shape.
var stringTable = ptrtable.New()

// funcTable interns compiled function callables. Go func values are not
// comparable, so (unlike stringTable) this cannot reuse ptrtable's
// map-keyed interning directly; it keys on the callable's code pointer
// instead, which is exactly the native-function-pointer identity the
// reference runtime stores.
var funcTable = struct {
	mu   sync.Mutex
	byPC map[uintptr]uint32
	fns  []any
}{byPC: make(map[uintptr]uint32)}

func internFunc(fn any) uint32 {
	pc := reflect.ValueOf(fn).Pointer()
	funcTable.mu.Lock()
	defer funcTable.mu.Unlock()
	if h, ok := funcTable.byPC[pc]; ok {
		return h
	}
	h := uint32(len(funcTable.fns))
	funcTable.fns = append(funcTable.fns, fn)
	funcTable.byPC[pc] = h
	return h
}

func lookupFunc(h uint32) any {
	funcTable.mu.Lock()
	defer funcTable.mu.Unlock()
	return funcTable.fns[h]
}

// NewObject allocates a zero-initialised instance of clazz: every body
// word becomes UndefValue, matching new_object for the common case of a
// wholly managed (or zero-length) instance body. clazz.Size must be
// non-negative; variable-length kinds have their own constructors.
func NewObject(g *gc.GC, clazz *class.Class) value.Value {
	ptr := g.Allocate(uint16(clazz.Size))
	g.Heap.SetObjectHeader(ptr, clazz, g.NoMarkBit())
	for i := int32(0); i < clazz.Size; i++ {
		g.Heap.SetBody(ptr, i, uint32(value.UndefValue))
	}
	return value.PtrToValue(uint32(ptr))
}

// GetProperty reads body slot i of obj as a managed value_t. Matches
// get_property: compiled call sites only use this for slots the
// property table marks as any-typed (index >= class StartIndex); raw
// unboxed slots go through GetAnyObjProperty's type-aware path instead.
func GetProperty(h *heap.Heap, obj value.Value, i int32) value.Value {
	ptr := heap.Ptr(value.ValueToPtr(obj))
	return value.Value(h.Body(ptr, i))
}

// SetProperty writes v into body slot i of obj, invoking the write
// barrier first. Matches set_property.
func SetProperty(g *gc.GC, obj value.Value, i int32, v value.Value) {
	ptr := heap.Ptr(value.ValueToPtr(obj))
	g.WriteBarrier(ptr, false, v)
	g.Heap.SetBody(ptr, i, uint32(v))
}

// NewBox allocates a one-word boxed value cell, used for a closure's
// captured-by-reference free variables. Matches new_box.
func NewBox(g *gc.GC, v value.Value) value.Value {
	ptr := g.Allocate(uint16(ClassBox.Size))
	g.Heap.SetObjectHeader(ptr, ClassBox, g.NoMarkBit())
	g.Heap.SetBody(ptr, 0, uint32(v))
	return value.PtrToValue(uint32(ptr))
}

// BoxGet reads a boxed value's contents.
func BoxGet(h *heap.Heap, box value.Value) value.Value {
	ptr := heap.Ptr(value.ValueToPtr(box))
	return value.Value(h.Body(ptr, 0))
}

// BoxSet overwrites a boxed value's contents, invoking the write
// barrier.
func BoxSet(g *gc.GC, box value.Value, v value.Value) {
	ptr := heap.Ptr(value.ValueToPtr(box))
	g.WriteBarrier(ptr, false, v)
	g.Heap.SetBody(ptr, 0, uint32(v))
}

// NewIntBox / NewFloatBox allocate a one-word boxed-raw cell for a
// captured int or float free variable. The slot is unboxed (not a
// value_t), so neither the collector nor the write barrier ever look at
// it; reads and writes go straight through.
func NewIntBox(g *gc.GC, n int32) value.Value {
	ptr := g.Allocate(uint16(ClassIntBox.Size))
	g.Heap.SetObjectHeader(ptr, ClassIntBox, g.NoMarkBit())
	g.Heap.SetBody(ptr, 0, uint32(n))
	return value.PtrToValue(uint32(ptr))
}

func IntBoxGet(h *heap.Heap, box value.Value) int32 {
	ptr := heap.Ptr(value.ValueToPtr(box))
	return int32(h.Body(ptr, 0))
}

func IntBoxSet(h *heap.Heap, box value.Value, n int32) {
	ptr := heap.Ptr(value.ValueToPtr(box))
	h.SetBody(ptr, 0, uint32(n))
}

func NewFloatBox(g *gc.GC, f float32) value.Value {
	ptr := g.Allocate(uint16(ClassFloatBox.Size))
	g.Heap.SetObjectHeader(ptr, ClassFloatBox, g.NoMarkBit())
	g.Heap.SetBody(ptr, 0, math.Float32bits(f))
	return value.PtrToValue(uint32(ptr))
}

func FloatBoxGet(h *heap.Heap, box value.Value) float32 {
	ptr := heap.Ptr(value.ValueToPtr(box))
	return math.Float32frombits(h.Body(ptr, 0))
}

func FloatBoxSet(h *heap.Heap, box value.Value, f float32) {
	ptr := heap.Ptr(value.ValueToPtr(box))
	h.SetBody(ptr, 0, math.Float32bits(f))
}

// NewString wraps a Go string as a string-literal object holding a raw,
// unmanaged handle into stringTable. Matches new_string: the reference
// runtime's body word is a bare char*, not a heap reference, which is
// why ClassString declares no managed pointers.
func NewString(g *gc.GC, s string) value.Value {
	ptr := g.Allocate(uint16(ClassString.Size))
	g.Heap.SetObjectHeader(ptr, ClassString, g.NoMarkBit())
	g.Heap.SetBody(ptr, 0, stringTable.Intern(s))
	return value.PtrToValue(uint32(ptr))
}

// StringCStr returns a string literal's backing Go string. Matches
// string_cstr.
func StringCStr(h *heap.Heap, s value.Value) string {
	ptr := heap.Ptr(value.ValueToPtr(s))
	return stringTable.Lookup(h.Body(ptr, 0)).(string)
}

// NewFunction allocates a function object: a raw callable, a raw
// signature string, and one managed word of captured state (typically a
// Vector of free variables). Matches new_function.
func NewFunction(g *gc.GC, fn any, signature string, captured value.Value) value.Value {
	ptr := g.Allocate(uint16(ClassFunction.Size))
	g.Heap.SetObjectHeader(ptr, ClassFunction, g.NoMarkBit())
	g.Heap.SetBody(ptr, 0, internFunc(fn))
	g.Heap.SetBody(ptr, 1, stringTable.Intern(signature))
	g.Heap.SetBody(ptr, 2, uint32(captured))
	return value.PtrToValue(uint32(ptr))
}

// FunctionPtr returns the raw callable (slot 0) or signature string
// (slot 1) of a function object, matching function_ptr(o, slot).
func FunctionPtr(h *heap.Heap, fn value.Value, slot int32) any {
	ptr := heap.Ptr(value.ValueToPtr(fn))
	switch slot {
	case 0:
		return lookupFunc(h.Body(ptr, 0))
	case 1:
		return stringTable.Lookup(h.Body(ptr, 1))
	default:
		panic("object: bad function_ptr slot")
	}
}

// FunctionCaptured returns a function object's captured-state word.
func FunctionCaptured(h *heap.Heap, fn value.Value) value.Value {
	ptr := heap.Ptr(value.ValueToPtr(fn))
	return value.Value(h.Body(ptr, 2))
}
