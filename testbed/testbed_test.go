package testbed

import (
	"context"
	"testing"

	"github.com/bluescript-lang/runtime/runtime"
)

const roundTripWAT = `(module
	(import "bluescript" "new_intarray" (func $new_intarray (param i32 i32) (result i32)))
	(import "bluescript" "intarray_set" (func $intarray_set (param i32 i32 i32)))
	(import "bluescript" "intarray_get" (func $intarray_get (param i32 i32) (result i32)))
	(func (export "run") (result i32)
		(local $ptr i32)
		(local.set $ptr (call $new_intarray (i32.const 4) (i32.const 0)))
		(call $intarray_set (local.get $ptr) (i32.const 2) (i32.const 42))
		(call $intarray_get (local.get $ptr) (i32.const 2))))`

// TestIntArrayRoundTrip drives a guest wasm function that allocates an
// int array, writes one element, and reads it back, entirely through
// host-imported calls into the Go runtime.
func TestIntArrayRoundTrip(t *testing.T) {
	ctx := context.Background()
	hs, err := NewHarness(ctx, runtime.Config{})
	if err != nil {
		t.Fatalf("NewHarness: %v", err)
	}
	defer hs.Close()

	if err := hs.LoadWAT(roundTripWAT); err != nil {
		t.Fatalf("LoadWAT: %v", err)
	}

	results, err := hs.Call("run")
	if err != nil {
		t.Fatalf("Call(run): %v", err)
	}
	if len(results) != 1 || int32(results[0]) != 42 {
		t.Fatalf("run() = %v, want [42]", results)
	}
}

const gcRunWAT = `(module
	(import "bluescript" "new_vector" (func $new_vector (param i32) (result i32)))
	(import "bluescript" "gc_run" (func $gc_run (result i32)))
	(func (export "alloc_then_collect") (result i32)
		(drop (call $new_vector (i32.const 4)))
		(call $gc_run)))`

// TestGCRunReclaimsUnrootedAllocation allocates an unrooted vector from
// inside the guest, then calls the host's gc_run import and checks the
// reclaimed word count is nonzero.
func TestGCRunReclaimsUnrootedAllocation(t *testing.T) {
	ctx := context.Background()
	hs, err := NewHarness(ctx, runtime.Config{})
	if err != nil {
		t.Fatalf("NewHarness: %v", err)
	}
	defer hs.Close()

	if err := hs.LoadWAT(gcRunWAT); err != nil {
		t.Fatalf("LoadWAT: %v", err)
	}

	results, err := hs.Call("alloc_then_collect")
	if err != nil {
		t.Fatalf("Call(alloc_then_collect): %v", err)
	}
	if len(results) != 1 || results[0] == 0 {
		t.Fatalf("alloc_then_collect() = %v, want a nonzero reclaimed-word count", results)
	}
}
