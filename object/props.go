package object

import (
	"math"

	"github.com/bluescript-lang/runtime/anyop"
	"github.com/bluescript-lang/runtime/class"
	"github.com/bluescript-lang/runtime/coerce"
	"github.com/bluescript-lang/runtime/gc"
	"github.com/bluescript-lang/runtime/heap"
	"github.com/bluescript-lang/runtime/rterr"
	"github.com/bluescript-lang/runtime/value"
)

func lookupProperty(h *heap.Heap, obj value.Value, nameID uint16) (heap.Ptr, int32, byte) {
	ptr := heap.Ptr(value.ValueToPtr(obj))
	clazz := h.ClassOf(ptr)
	idx, typ, ok := class.PropertyLookup(clazz, nameID)
	if !ok {
		rterr.Raise(rterr.GenericError("no such property"))
	}
	return ptr, int32(idx), typ
}

// GetAnyObjProperty reads a named property off obj, boxing unboxed
// int/float/bool slots into a value_t and passing managed slots through
// unchanged. Matches get_anyobj_property.
func GetAnyObjProperty(h *heap.Heap, obj value.Value, nameID uint16) value.Value {
	ptr, idx, typ := lookupProperty(h, obj, nameID)
	switch typ {
	case class.TypeInt:
		return value.IntToValue(int32(h.Body(ptr, idx)))
	case class.TypeFloat:
		return value.FloatToValue(math.Float32frombits(h.Body(ptr, idx)))
	case class.TypeBool:
		return value.BoolToValue(h.Body(ptr, idx) != 0)
	default:
		return value.Value(h.Body(ptr, idx))
	}
}

// SetAnyObjProperty writes v into a named property, coercing into the
// slot's declared unboxed type or invoking the write barrier for a
// managed slot. Matches set_anyobj_property.
func SetAnyObjProperty(g *gc.GC, obj value.Value, nameID uint16, v value.Value) {
	ptr, idx, typ := lookupProperty(g.Heap, obj, nameID)
	switch typ {
	case class.TypeInt:
		g.Heap.SetBody(ptr, idx, uint32(coerce.ToInt(v)))
	case class.TypeFloat:
		g.Heap.SetBody(ptr, idx, math.Float32bits(coerce.ToFloat(v)))
	case class.TypeBool:
		g.Heap.SetBody(ptr, idx, boolWord(value.ValueToBool(v)))
	default:
		g.WriteBarrier(ptr, false, v)
		g.Heap.SetBody(ptr, idx, uint32(v))
	}
}

func boolWord(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}

// AccAnyObjProperty performs a compound-assign or increment/decrement
// operator in place on a named property, dispatching per storage kind:
// 'i'/'f' slots use native arithmetic with safe coercion of rhs, ' '
// (any-typed) slots use the anyop library. Matches acc_anyobj_property.
// Post-increment/post-decrement return the pre-mutation value; every
// other operator returns the new value.
func AccAnyObjProperty(g *gc.GC, obj value.Value, op anyop.Op, nameID uint16, rhs value.Value) value.Value {
	ptr, idx, typ := lookupProperty(g.Heap, obj, nameID)
	switch typ {
	case class.TypeInt:
		cur := int32(g.Heap.Body(ptr, idx))
		result, stored := accInt(op, cur, rhs)
		g.Heap.SetBody(ptr, idx, uint32(stored))
		return value.IntToValue(result)
	case class.TypeFloat:
		cur := math.Float32frombits(g.Heap.Body(ptr, idx))
		result, stored := accFloat(op, cur, rhs)
		g.Heap.SetBody(ptr, idx, math.Float32bits(stored))
		return value.FloatToValue(result)
	default:
		slot := value.Value(g.Heap.Body(ptr, idx))
		result := accAny(&slot, op, rhs)
		g.WriteBarrier(ptr, false, slot)
		g.Heap.SetBody(ptr, idx, uint32(slot))
		return result
	}
}

// accInt returns (result, newStoredValue): result is the pre-value for
// post-inc/dec, the new value otherwise; newStoredValue is always the
// slot's post-mutation value.
func accInt(op anyop.Op, cur int32, rhs value.Value) (result, stored int32) {
	switch op {
	case anyop.OpAdd:
		stored = cur + coerce.ToInt(rhs)
	case anyop.OpSub:
		stored = cur - coerce.ToInt(rhs)
	case anyop.OpMul:
		stored = cur * coerce.ToInt(rhs)
	case anyop.OpDiv:
		stored = cur / coerce.ToInt(rhs)
	case anyop.OpInc:
		stored = cur + 1
	case anyop.OpDec:
		stored = cur - 1
	case anyop.OpPostInc:
		return cur, cur + 1
	case anyop.OpPostDec:
		return cur, cur - 1
	default:
		rterr.Raise(rterr.TypeError("bad compound-assign operator"))
	}
	return stored, stored
}

func accFloat(op anyop.Op, cur float32, rhs value.Value) (result, stored float32) {
	switch op {
	case anyop.OpAdd:
		stored = cur + coerce.ToFloat(rhs)
	case anyop.OpSub:
		stored = cur - coerce.ToFloat(rhs)
	case anyop.OpMul:
		stored = cur * coerce.ToFloat(rhs)
	case anyop.OpDiv:
		stored = cur / coerce.ToFloat(rhs)
	case anyop.OpInc:
		stored = cur + 1
	case anyop.OpDec:
		stored = cur - 1
	case anyop.OpPostInc:
		return cur, cur + 1
	case anyop.OpPostDec:
		return cur, cur - 1
	default:
		rterr.Raise(rterr.TypeError("bad compound-assign operator"))
	}
	return stored, stored
}

func accAny(slot *value.Value, op anyop.Op, rhs value.Value) value.Value {
	switch op {
	case anyop.OpAdd:
		return anyop.AddAssign(slot, rhs)
	case anyop.OpSub:
		return anyop.SubtractAssign(slot, rhs)
	case anyop.OpMul:
		return anyop.MultiplyAssign(slot, rhs)
	case anyop.OpDiv:
		return anyop.DivideAssign(slot, rhs)
	case anyop.OpInc:
		return anyop.Increment(slot)
	case anyop.OpDec:
		return anyop.Decrement(slot)
	case anyop.OpPostInc:
		return anyop.PostIncrement(slot)
	case anyop.OpPostDec:
		return anyop.PostDecrement(slot)
	default:
		rterr.Raise(rterr.TypeError("bad compound-assign operator"))
		panic("unreachable")
	}
}
