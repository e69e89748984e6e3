package rterr

import "testing"

func TestMessageShapes(t *testing.T) {
	cases := []struct {
		err  *Error
		want string
	}{
		{TypeError("value_to_int"), "** runtime type error: value_to_int"},
		{IndexError("Array.get/set", 7, 3), "** error: array index out of range: 7 (len: 3) in Array.get/set"},
		{AllocationError("you cannot create objects in an interrupt handler."), "** runtime memory allocation error: you cannot create objects in an interrupt handler."},
		{GenericError("boom"), "** runtime error: boom"},
	}
	for _, c := range cases {
		if got := c.err.Error(); got != c.want {
			t.Fatalf("Error() = %q, want %q", got, c.want)
		}
	}
}

func TestOverlongSiteTruncated(t *testing.T) {
	long := make([]byte, 1000)
	for i := range long {
		long[i] = 'x'
	}
	err := TypeError(string(long))
	if got := err.Error(); got != "** runtime type error: ??" {
		t.Fatalf("overlong site not truncated: %q", got)
	}
}

func TestRaiseRecoversAsError(t *testing.T) {
	defer func() {
		r := recover()
		e, ok := r.(*Error)
		if !ok {
			t.Fatalf("recovered value is not *Error: %v", r)
		}
		if e.Kind != KindGeneric {
			t.Fatalf("Kind = %v, want KindGeneric", e.Kind)
		}
	}()
	Raise(GenericError("boom"))
}
