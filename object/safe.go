package object

import (
	"github.com/bluescript-lang/runtime/class"
	"github.com/bluescript-lang/runtime/coerce"
	"github.com/bluescript-lang/runtime/heap"
	"github.com/bluescript-lang/runtime/rterr"
	"github.com/bluescript-lang/runtime/value"
)

// SafeToObject requires v to be a pointer whose dynamic class is target
// or a subclass of it. Matches safe_to_object's generic form
// (safe_to_value in spec §4.P).
func SafeToObject(h *heap.Heap, target *class.Class, v value.Value) value.Value {
	return coerce.ToValue(h.ClassOfValue, target, v)
}

// SafeToString requires v to be a String. Matches safe_to_string.
func SafeToString(h *heap.Heap, v value.Value) value.Value {
	return coerce.ToValue(h.ClassOfValue, ClassString, v)
}

// SafeToFunction requires v to be a Function whose signature matches
// exactly. Matches safe_to_function.
func SafeToFunction(h *heap.Heap, signature string, v value.Value) value.Value {
	vv := coerce.ToValue(h.ClassOfValue, ClassFunction, v)
	ptr := heap.Ptr(value.ValueToPtr(vv))
	got, _ := stringTable.Lookup(h.Body(ptr, 1)).(string)
	if got != signature {
		rterr.Raise(rterr.TypeError("value_to_function"))
	}
	return vv
}

// SafeToIntArray requires v to be an IntArray. Matches safe_to_intarray.
func SafeToIntArray(h *heap.Heap, v value.Value) value.Value {
	return coerce.ToValue(h.ClassOfValue, ClassIntArray, v)
}

// SafeToFloatArray requires v to be a FloatArray. Matches
// safe_to_floatarray.
func SafeToFloatArray(h *heap.Heap, v value.Value) value.Value {
	return coerce.ToValue(h.ClassOfValue, ClassFloatArray, v)
}

// SafeToByteArray requires v to be a ByteArray. Matches
// safe_to_bytearray.
func SafeToByteArray(h *heap.Heap, v value.Value) value.Value {
	return coerce.ToValue(h.ClassOfValue, ClassByteArray, v)
}

// SafeToVector requires v to be a Vector. Matches safe_to_vector.
func SafeToVector(h *heap.Heap, v value.Value) value.Value {
	return coerce.ToValue(h.ClassOfValue, ClassVector, v)
}

// SafeToArray requires v to be an Array. Matches safe_to_array.
func SafeToArray(h *heap.Heap, v value.Value) value.Value {
	return coerce.ToValue(h.ClassOfValue, ClassArray, v)
}

// SafeToAnyArray requires v to be an AnyArray. Matches
// safe_to_anyarray.
func SafeToAnyArray(h *heap.Heap, v value.Value) value.Value {
	return coerce.ToValue(h.ClassOfValue, ClassAnyArray, v)
}
