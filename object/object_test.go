package object

import (
	"testing"

	"github.com/bluescript-lang/runtime/class"
	"github.com/bluescript-lang/runtime/gc"
	"github.com/bluescript-lang/runtime/heap"
	"github.com/bluescript-lang/runtime/interrupt"
	"github.com/bluescript-lang/runtime/rootset"
	"github.com/bluescript-lang/runtime/value"
)

func newGC(t *testing.T, size int) *gc.GC {
	t.Helper()
	h := heap.New(size)
	roots := &rootset.List{}
	ic := &interrupt.Counter{}
	return gc.New(h, roots, ic, 0)
}

// TestStringLiteral is spec §8 scenario 2 verbatim.
func TestStringLiteral(t *testing.T) {
	g := newGC(t, heap.DefaultSize)
	s := NewString(g, "test")

	if !value.IsPtrValue(s) {
		t.Fatalf("string literal should carry the pointer tag")
	}
	if got := g.Heap.ClassOfValue(s); got != ClassString {
		t.Fatalf("class_of(s) = %v, want ClassString", got)
	}
	if got := StringCStr(g.Heap, s); got != "test" {
		t.Fatalf("string_cstr(s) = %q, want %q", got, "test")
	}
}

// TestByteArrayIndexing is spec §8 scenario 3 verbatim.
func TestByteArrayIndexing(t *testing.T) {
	g := newGC(t, heap.DefaultSize)
	a := NewByteArray(g, 7, 0)

	for i := int32(0); i < 7; i++ {
		ByteArraySet(g.Heap, a, i, byte(257-i))
	}
	for i := int32(0); i < 7; i++ {
		want := byte((257 - i) % 256)
		if got := ByteArrayGet(g.Heap, a, i); got != want {
			t.Fatalf("byte[%d] = %d, want %d", i, got, want)
		}
	}
	if got := Length(g.Heap, a); got != 7 {
		t.Fatalf("array_length = %d, want 7", got)
	}
}

func TestByteArrayOutOfRange(t *testing.T) {
	g := newGC(t, heap.DefaultSize)
	a := NewByteArray(g, 3, 0)
	expectIndexError(t, func() { ByteArrayGet(g.Heap, a, 3) })
	expectIndexError(t, func() { ByteArrayGet(g.Heap, a, -1) })
}

func expectIndexError(t *testing.T, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Fatalf("expected an index error panic")
		}
	}()
	fn()
}

func TestClassOfEveryConstructor(t *testing.T) {
	g := newGC(t, heap.DefaultSize)

	cases := []struct {
		name  string
		value value.Value
		want  *class.Class
	}{
		{"string", NewString(g, "x"), ClassString},
		{"box", NewBox(g, value.IntToValue(1)), ClassBox},
		{"int_box", NewIntBox(g, 1), ClassIntBox},
		{"float_box", NewFloatBox(g, 1), ClassFloatBox},
		{"int_array", NewIntArray(g, 3, 0), ClassIntArray},
		{"float_array", NewFloatArray(g, 3, 0), ClassFloatArray},
		{"byte_array", NewByteArray(g, 3, 0), ClassByteArray},
		{"vector", NewVector(g, 3, value.UndefValue), ClassVector},
		{"array", NewArray(g, false, 3, value.UndefValue), ClassArray},
		{"any_array", NewArray(g, true, 3, value.UndefValue), ClassAnyArray},
		{"function", NewFunction(g, func() {}, "()->void", value.NullValue), ClassFunction},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := g.Heap.ClassOfValue(c.value); got != c.want {
				t.Fatalf("class_of(%s) = %v, want %v", c.name, got, c.want)
			}
		})
	}
}

func TestArrayGetSetSymmetry(t *testing.T) {
	g := newGC(t, heap.DefaultSize)
	a := NewArray(g, true, 5, value.UndefValue)

	for i := int32(0); i < 5; i++ {
		ArraySet(g, a, i, value.IntToValue(i*10))
	}
	for i := int32(0); i < 5; i++ {
		want := value.IntToValue(i * 10)
		if got := ArrayGet(g.Heap, a, i); got != want {
			t.Fatalf("array[%d] = %v, want %v", i, got, want)
		}
	}
	expectIndexError(t, func() { ArrayGet(g.Heap, a, 5) })
	expectIndexError(t, func() { ArraySet(g, a, -1, value.UndefValue) })
}

func TestVectorGetSetSymmetry(t *testing.T) {
	g := newGC(t, heap.DefaultSize)
	v := NewVector(g, 4, value.UndefValue)
	VectorSet(g, v, 2, value.IntToValue(99))
	if got := VectorGet(g.Heap, v, 2); got != value.IntToValue(99) {
		t.Fatalf("VectorGet(2) = %v, want 99", got)
	}
}

func TestMakeIntArray(t *testing.T) {
	g := newGC(t, heap.DefaultSize)
	a := MakeIntArray(g, 1, 2, 3)
	if got := Length(g.Heap, a); got != 3 {
		t.Fatalf("length = %d, want 3", got)
	}
	for i, want := range []int32{1, 2, 3} {
		if got := IntArrayGet(g.Heap, a, int32(i)); got != want {
			t.Fatalf("elem[%d] = %d, want %d", i, got, want)
		}
	}
}

func TestFunctionAccessors(t *testing.T) {
	g := newGC(t, heap.DefaultSize)
	called := false
	fn := func() { called = true }
	captured := NewVector(g, 0, value.UndefValue)
	f := NewFunction(g, fn, "()->void", captured)

	got, ok := FunctionPtr(g.Heap, f, 0).(func())
	if !ok {
		t.Fatalf("FunctionPtr(0) did not return the callable")
	}
	got()
	if !called {
		t.Fatalf("recovered callable was not the original function")
	}
	if sig := FunctionPtr(g.Heap, f, 1); sig != "()->void" {
		t.Fatalf("FunctionPtr(1) = %v, want signature string", sig)
	}
	if cap := FunctionCaptured(g.Heap, f); cap != captured {
		t.Fatalf("FunctionCaptured = %v, want %v", cap, captured)
	}
}

func TestBoxRoundTrip(t *testing.T) {
	g := newGC(t, heap.DefaultSize)
	b := NewBox(g, value.IntToValue(5))
	if got := BoxGet(g.Heap, b); got != value.IntToValue(5) {
		t.Fatalf("BoxGet = %v, want 5", got)
	}
	BoxSet(g, b, value.IntToValue(9))
	if got := BoxGet(g.Heap, b); got != value.IntToValue(9) {
		t.Fatalf("BoxGet after set = %v, want 9", got)
	}

	ib := NewIntBox(g, 3)
	IntBoxSet(g.Heap, ib, 7)
	if got := IntBoxGet(g.Heap, ib); got != 7 {
		t.Fatalf("IntBoxGet = %d, want 7", got)
	}

	fb := NewFloatBox(g, 1.5)
	FloatBoxSet(g.Heap, fb, 2.5)
	if got := FloatBoxGet(g.Heap, fb); got != 2.5 {
		t.Fatalf("FloatBoxGet = %v, want 2.5", got)
	}
}

func TestGenericObjectProperties(t *testing.T) {
	g := newGC(t, heap.DefaultSize)
	widget := &class.Class{Name: "Widget", Size: 2, StartIndex: 0}
	o := NewObject(g, widget)

	SetProperty(g, o, 0, value.IntToValue(1))
	SetProperty(g, o, 1, value.IntToValue(2))
	if got := GetProperty(g.Heap, o, 0); got != value.IntToValue(1) {
		t.Fatalf("GetProperty(0) = %v, want 1", got)
	}
	if got := GetProperty(g.Heap, o, 1); got != value.IntToValue(2) {
		t.Fatalf("GetProperty(1) = %v, want 2", got)
	}
}
