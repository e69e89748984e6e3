package anyop

import (
	"github.com/bluescript-lang/runtime/rterr"
	"github.com/bluescript-lang/runtime/value"
)

// Op identifies a compound-assign/increment operator, matching the
// reference runtime's single-character op codes (acc_anyobj_property,
// gc_safe_array_acc).
type Op byte

const (
	OpAdd     Op = '+'
	OpSub     Op = '-'
	OpMul     Op = '*'
	OpDiv     Op = '/'
	OpInc     Op = 'i' // INCREMENT_OP
	OpDec     Op = 'd' // DECREMENT_OP
	OpPostInc Op = 'p' // POST_INCREMENT_OP
	OpPostDec Op = 'q' // POST_DECREMENT_OP
)

func binNumOp(a, b value.Value, opName string, intOp func(int32, int32) int32, floatOp func(float32, float32) float32) value.Value {
	if value.IsIntValue(a) {
		if value.IsIntValue(b) {
			return value.IntToValue(intOp(value.ValueToInt(a), value.ValueToInt(b)))
		}
		if value.IsFloatValue(b) {
			return value.FloatToValue(floatOp(float32(value.ValueToInt(a)), value.ValueToFloat(b)))
		}
	} else if value.IsFloatValue(a) {
		if value.IsIntValue(b) {
			return value.FloatToValue(floatOp(value.ValueToFloat(a), float32(value.ValueToInt(b))))
		}
		if value.IsFloatValue(b) {
			return value.FloatToValue(floatOp(value.ValueToFloat(a), value.ValueToFloat(b)))
		}
	}
	rterr.Raise(rterr.TypeError("bad operand for " + opName))
	panic("unreachable")
}

func binCmpOp(a, b value.Value, opName string, intOp func(int32, int32) bool, floatOp func(float32, float32) bool) bool {
	if value.IsIntValue(a) {
		if value.IsIntValue(b) {
			return intOp(value.ValueToInt(a), value.ValueToInt(b))
		}
		if value.IsFloatValue(b) {
			return floatOp(float32(value.ValueToInt(a)), value.ValueToFloat(b))
		}
	} else if value.IsFloatValue(a) {
		if value.IsIntValue(b) {
			return floatOp(value.ValueToFloat(a), float32(value.ValueToInt(b)))
		}
		if value.IsFloatValue(b) {
			return floatOp(value.ValueToFloat(a), value.ValueToFloat(b))
		}
	}
	rterr.Raise(rterr.TypeError("bad operand for " + opName))
	panic("unreachable")
}

// Add implements any_add.
func Add(a, b value.Value) value.Value {
	return binNumOp(a, b, "+", func(x, y int32) int32 { return x + y }, func(x, y float32) float32 { return x + y })
}

// Subtract implements any_subtract.
func Subtract(a, b value.Value) value.Value {
	return binNumOp(a, b, "-", func(x, y int32) int32 { return x - y }, func(x, y float32) float32 { return x - y })
}

// Multiply implements any_multiply.
func Multiply(a, b value.Value) value.Value {
	return binNumOp(a, b, "*", func(x, y int32) int32 { return x * y }, func(x, y float32) float32 { return x * y })
}

// Divide implements any_divide. Integer division when both operands are
// integers, matching the reference's C-style truncating division.
func Divide(a, b value.Value) value.Value {
	return binNumOp(a, b, "/", func(x, y int32) int32 { return x / y }, func(x, y float32) float32 { return x / y })
}

// Less implements any_less.
func Less(a, b value.Value) bool {
	return binCmpOp(a, b, "<", func(x, y int32) bool { return x < y }, func(x, y float32) bool { return x < y })
}

// LessEq implements any_less_eq.
func LessEq(a, b value.Value) bool {
	return binCmpOp(a, b, "<=", func(x, y int32) bool { return x <= y }, func(x, y float32) bool { return x <= y })
}

// Greater implements any_greater.
func Greater(a, b value.Value) bool {
	return binCmpOp(a, b, ">", func(x, y int32) bool { return x > y }, func(x, y float32) bool { return x > y })
}

// GreaterEq implements any_greater_eq.
func GreaterEq(a, b value.Value) bool {
	return binCmpOp(a, b, ">=", func(x, y int32) bool { return x >= y }, func(x, y float32) bool { return x >= y })
}

// AddAssign, SubtractAssign, MultiplyAssign, DivideAssign mutate *slot in
// place and return the new value, matching the any_*_assign macros. They
// do not invoke the GC write barrier: the slot is a local or a primitive
// field, never a managed heap reference (see spec §4.A).
func AddAssign(slot *value.Value, b value.Value) value.Value      { *slot = Add(*slot, b); return *slot }
func SubtractAssign(slot *value.Value, b value.Value) value.Value { *slot = Subtract(*slot, b); return *slot }
func MultiplyAssign(slot *value.Value, b value.Value) value.Value { *slot = Multiply(*slot, b); return *slot }
func DivideAssign(slot *value.Value, b value.Value) value.Value   { *slot = Divide(*slot, b); return *slot }

func update(slot *value.Value, opName string, delta int32) value.Value {
	if value.IsIntValue(*slot) {
		return value.IntToValue(value.ValueToInt(*slot) + delta)
	}
	if value.IsFloatValue(*slot) {
		return value.FloatToValue(value.ValueToFloat(*slot) + float32(delta))
	}
	rterr.Raise(rterr.TypeError("bad operand for " + opName))
	panic("unreachable")
}

// Increment implements any_increment: pre-increment, returns the new
// value.
func Increment(slot *value.Value) value.Value {
	nv := update(slot, "++", 1)
	*slot = nv
	return nv
}

// Decrement implements any_decrement.
func Decrement(slot *value.Value) value.Value {
	nv := update(slot, "--", -1)
	*slot = nv
	return nv
}

// PostIncrement implements any_post_increment: returns the pre-increment
// value.
func PostIncrement(slot *value.Value) value.Value {
	old := *slot
	*slot = update(slot, "++", 1)
	return old
}

// PostDecrement implements any_post_decrement.
func PostDecrement(slot *value.Value) value.Value {
	old := *slot
	*slot = update(slot, "--", -1)
	return old
}

// Negate implements minus_any_value.
func Negate(v value.Value) value.Value {
	if value.IsIntValue(v) {
		return value.IntToValue(-value.ValueToInt(v))
	}
	if value.IsFloatValue(v) {
		return value.FloatToValue(-value.ValueToFloat(v))
	}
	rterr.Raise(rterr.TypeError("bad operand for unary minus"))
	panic("unreachable")
}

// ApplyBinary computes left `op` right for the four compound-assign
// arithmetic ops, or left `op` 1 for the increment-style ops, matching
// acc_anyobj_property's any-typed-slot branch. Post-increment/decrement
// are not handled here: the caller must read the pre-value, apply
// OpInc/OpDec, store, and return the pre-value itself.
func ApplyBinary(op Op, left, right value.Value) value.Value {
	switch op {
	case OpAdd:
		return Add(left, right)
	case OpSub:
		return Subtract(left, right)
	case OpMul:
		return Multiply(left, right)
	case OpDiv:
		return Divide(left, right)
	case OpInc:
		return Add(left, value.IntToValue(1))
	case OpDec:
		return Subtract(left, value.IntToValue(1))
	default:
		rterr.Raise(rterr.TypeError("bad compound-assign operator"))
		panic("unreachable")
	}
}
