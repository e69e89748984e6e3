package coerce

import (
	"github.com/bluescript-lang/runtime/class"
	"github.com/bluescript-lang/runtime/rterr"
	"github.com/bluescript-lang/runtime/value"
)

// ToInt requires v to carry the int tag. Matches safe_value_to_int.
func ToInt(v value.Value) int32 {
	if !value.IsIntValue(v) {
		rterr.Raise(rterr.TypeError("value_to_int"))
	}
	return value.ValueToInt(v)
}

// ToFloat accepts an int (promoted) or a float, else raises a type
// error. Matches safe_value_to_float.
func ToFloat(v value.Value) float32 {
	if value.IsFloatValue(v) {
		return value.ValueToFloat(v)
	}
	if !value.IsIntValue(v) {
		rterr.Raise(rterr.TypeError("value_to_float"))
	}
	return float32(value.ValueToInt(v))
}

// ToNull requires v to be exactly NullValue. Matches safe_value_to_null.
func ToNull(v value.Value) value.Value {
	if v != value.NullValue {
		rterr.Raise(rterr.TypeError("value_to_null"))
	}
	return v
}

// ToBool accepts any value and returns its truthiness; it never raises.
// Matches safe_value_to_bool, which is value_to_bool under another name:
// every value_t is a legal operand for a boolean context.
func ToBool(v value.Value) bool {
	return value.ValueToBool(v)
}

// ClassOfFunc resolves the dynamic class of a pointer value, injected so
// this package never imports heap or object (which would create a
// cycle: object depends on coerce for ToValue's chain walk).
type ClassOfFunc func(value.Value) *class.Class

// ToValue is the generic safe-cast form: it requires v to be a pointer
// whose dynamic class is target or a subclass of target. Matches
// safe_to_value's inheritance-chain check.
func ToValue(classOf ClassOfFunc, target *class.Class, v value.Value) value.Value {
	actual := classOf(v)
	if actual == nil || !actual.IsSubclassOf(target) {
		rterr.Raise(rterr.TypeError("value_to_" + target.Name))
	}
	return v
}
