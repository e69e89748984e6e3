package coerce

import (
	"testing"

	"github.com/bluescript-lang/runtime/class"
	"github.com/bluescript-lang/runtime/rterr"
	"github.com/bluescript-lang/runtime/value"
)

func expectTypeError(t *testing.T, fn func()) {
	t.Helper()
	defer func() {
		r := recover()
		if r == nil {
			t.Fatalf("expected a type error panic, got none")
		}
		if _, ok := r.(*rterr.Error); !ok {
			t.Fatalf("expected *rterr.Error panic, got %T: %v", r, r)
		}
	}()
	fn()
}

func TestToInt(t *testing.T) {
	if got := ToInt(value.IntToValue(42)); got != 42 {
		t.Fatalf("ToInt = %d, want 42", got)
	}
	expectTypeError(t, func() { ToInt(value.FloatToValue(1.0)) })
}

func TestToFloat(t *testing.T) {
	if got := ToFloat(value.IntToValue(3)); got != 3.0 {
		t.Fatalf("ToFloat(int) = %v, want 3.0", got)
	}
	if got := ToFloat(value.FloatToValue(2.5)); got < 2.4 || got > 2.6 {
		t.Fatalf("ToFloat(float) = %v, want ~2.5", got)
	}
	expectTypeError(t, func() { ToFloat(value.NullValue) })
}

func TestToNull(t *testing.T) {
	if got := ToNull(value.NullValue); got != value.NullValue {
		t.Fatalf("ToNull(NullValue) should return NullValue")
	}
	expectTypeError(t, func() { ToNull(value.IntToValue(0)) })
}

func TestToBoolNeverRaises(t *testing.T) {
	if ToBool(value.NullValue) {
		t.Fatalf("ToBool(NullValue) should be false")
	}
	if !ToBool(value.IntToValue(1)) {
		t.Fatalf("ToBool(1) should be true")
	}
}

func TestToValueChainWalk(t *testing.T) {
	base := &class.Class{Name: "base", Size: class.NoPointer}
	derived := &class.Class{Name: "derived", Superclass: base, Size: class.NoPointer}
	other := &class.Class{Name: "other", Size: class.NoPointer}

	classOf := func(v value.Value) *class.Class {
		if v == value.IntToValue(1) {
			return derived
		}
		return other
	}

	v := value.IntToValue(1)
	if got := ToValue(classOf, base, v); got != v {
		t.Fatalf("ToValue should accept a subclass instance")
	}
	expectTypeError(t, func() { ToValue(classOf, base, value.IntToValue(2)) })
}
