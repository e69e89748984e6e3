package interp

import (
	"strings"
	"testing"

	"github.com/bluescript-lang/runtime/rterr"
)

func TestTryAndCatchCleanCompletion(t *testing.T) {
	ran := false
	ok, caught := TryAndCatch(func() { ran = true })
	if !ok || caught != nil {
		t.Fatalf("TryAndCatch(clean) = (%v, %v), want (true, nil)", ok, caught)
	}
	if !ran {
		t.Fatalf("fn was not invoked")
	}
}

func TestTryAndCatchRecoversRuntimeError(t *testing.T) {
	ok, caught := TryAndCatch(func() {
		rterr.Raise(rterr.TypeError("safe_to_int"))
	})
	if ok {
		t.Fatalf("TryAndCatch(failing) ok = true, want false")
	}
	if caught == nil || caught.Kind != rterr.KindType {
		t.Fatalf("caught = %v, want a KindType error", caught)
	}
	if !strings.Contains(Report(caught), "safe_to_int") {
		t.Fatalf("Report(caught) = %q, want it to mention the site", Report(caught))
	}
}

func TestTryAndCatchDoesNotSwallowOtherPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected the non-runtime panic to propagate")
		}
	}()
	TryAndCatch(func() { panic("not a runtime error") })
}
