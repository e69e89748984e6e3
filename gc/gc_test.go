package gc

import (
	"testing"

	"github.com/bluescript-lang/runtime/class"
	"github.com/bluescript-lang/runtime/heap"
	"github.com/bluescript-lang/runtime/interrupt"
	"github.com/bluescript-lang/runtime/rootset"
	"github.com/bluescript-lang/runtime/value"
)

// linkClass is a minimal fixed-size, one-pointer-slot class standing in
// for a real object kind: this package cannot import object (object
// imports gc), so tests build the smallest class shape that exercises
// the collector's pointer-following logic directly.
var linkClass = &class.Class{Name: "TestLink", Size: 1, StartIndex: 0}

// pairClass is a two-slot node: body[0] holds a leaf object and body[1]
// links to the next node of a chain.
var pairClass = &class.Class{Name: "TestPair", Size: 2, StartIndex: 0}

func newTestGC(heapWords, stackWords int) *GC {
	h := heap.New(heapWords)
	roots := &rootset.List{}
	ic := &interrupt.Counter{}
	return New(h, roots, ic, stackWords)
}

// TestFullHeapExactFitTerminator is spec §8's "fill the heap exactly,
// then collect" scenario: a heap sized to hold exactly n equal-sized
// vectors, all rooted, fully exhausted with no room to spare. After a
// GC cycle, every object is still live, so the free list is empty and
// its head must equal heap.Size() exactly (the canonical empty-list
// terminator from spec §3), not heap.Size()+2.
func TestFullHeapExactFitTerminator(t *testing.T) {
	const n = 50
	const chunkWords = 2 // RealObjSize(1) for a zero-element vector body
	g := newTestGC(2+n*chunkWords, DefaultStackSize)

	f := g.Roots.Push(n)
	for i := 0; i < n; i++ {
		ptr, ok := g.Heap.AllocateRaw(1)
		if !ok {
			t.Fatalf("heap exhausted before filling all %d slots", n)
		}
		g.Heap.SetObjectHeader(ptr, linkClass, g.NoMarkBit())
		g.Heap.SetBody(ptr, 0, 0)
		f.Values[i] = value.PtrToValue(uint32(ptr))
	}

	stats := g.Run()
	if stats.FreeWords != 0 {
		t.Fatalf("FreeWords = %d, want 0 (heap was fully rooted)", stats.FreeWords)
	}
	if got, want := g.Heap.Words[0], g.Heap.Size(); got != want {
		t.Fatalf("free-list head = %d, want heap.Size() = %d", got, want)
	}
}

// TestChainLongerThanMarkStack is spec §8's "liveness via chains longer
// than the mark stack" scenario: a singly linked chain of
// stackSize*3+1 two-slot nodes, linked through body[1] and rooted only
// at the head. Each node's body[0] leaf is pushed before its link, so
// every node scanned leaves one more entry on the stack; the mark stack
// overflows and the orphan-rescan fallback runs, yet every node must
// still survive the cycle.
func TestChainLongerThanMarkStack(t *testing.T) {
	const stackSize = 4
	const chainLen = stackSize*3 + 1
	g := newTestGC(2+chainLen*6, stackSize)

	f := g.Roots.Push(1)
	var ptrs []heap.Ptr
	var prev value.Value = value.NullValue
	for i := 0; i < chainLen; i++ {
		leaf := g.Allocate(1)
		g.Heap.SetObjectHeader(leaf, linkClass, g.NoMarkBit())
		g.Heap.SetBody(leaf, 0, uint32(value.NullValue))
		ptr := g.Allocate(2)
		g.Heap.SetObjectHeader(ptr, pairClass, g.NoMarkBit())
		g.Heap.SetBody(ptr, 0, uint32(value.PtrToValue(uint32(leaf))))
		g.Heap.SetBody(ptr, 1, uint32(prev))
		prev = value.PtrToValue(uint32(ptr))
		ptrs = append(ptrs, ptr)
	}
	f.Values[0] = prev // root the tail; chain points back toward the first-allocated node

	stats := g.Run()
	if !stats.StackOverflowed {
		t.Fatalf("expected the %d-node chain to overflow a %d-entry mark stack", chainLen, stackSize)
	}

	cur := f.Values[0]
	count := 0
	for cur != value.NullValue {
		if !value.IsPtrValue(cur) {
			t.Fatalf("chain node %d: not a pointer value after GC", count)
		}
		ptr := heap.Ptr(value.ValueToPtr(cur))
		if g.Heap.ClassOf(ptr) != pairClass {
			t.Fatalf("chain node %d: class corrupted after GC", count)
		}
		cur = value.Value(g.Heap.Body(ptr, 1))
		count++
	}
	if count != chainLen {
		t.Fatalf("walked %d surviving nodes, want %d", count, chainLen)
	}
}

// freeListAddrs returns every address currently on the free list.
func freeListAddrs(g *GC) map[uint32]bool {
	addrs := make(map[uint32]bool)
	heapSize := g.Heap.Size()
	idx := g.Heap.Words[0]
	for idx < heapSize {
		addrs[idx] = true
		idx = g.Heap.Words[idx]
	}
	return addrs
}

// TestWriteBarrierSurvivesInterruptThenReclaimed is spec §8's "write
// barrier under interrupt" scenario: a container object is driven to
// the black state mid-cycle (already scanned, gray cleared), then an
// interrupt handler mutates it to point at a still-white object. The
// write barrier must register that edge so the white object survives
// the in-progress cycle despite the container never being re-scanned.
// Once the edge is later removed, a subsequent ordinary cycle reclaims
// the object with no special handling.
func TestWriteBarrierSurvivesInterruptThenReclaimed(t *testing.T) {
	g := newTestGC(64, DefaultStackSize)

	containerF := g.Roots.Push(1)
	container := g.Allocate(1)
	g.Heap.SetObjectHeader(container, linkClass, g.NoMarkBit())
	g.Heap.SetBody(container, 0, uint32(value.NullValue))
	containerF.Values[0] = value.PtrToValue(uint32(container))

	target := g.Allocate(1)
	g.Heap.SetObjectHeader(target, linkClass, g.NoMarkBit())
	g.Heap.SetBody(target, 0, uint32(value.NullValue))
	targetValue := value.PtrToValue(uint32(target))

	// Drive the container to "black": already marked alive and already
	// scanned (gray cleared), as if a normal mark pass had visited it
	// before the interrupt fired.
	h := g.Heap.Header(container)
	h = heap.WriteMarkBit(h, g.aliveMark())
	h = heap.ClearGrayBit(h)
	g.Heap.SetHeader(container, h)
	g.SetRunning(true)

	g.Interrupt.Start()
	g.WriteBarrier(container, false, targetValue)
	g.Heap.SetBody(container, 0, uint32(targetValue))
	g.Interrupt.End()

	if !isWhite(g, target) {
		t.Fatalf("target should still be white immediately after WriteBarrier; marking happens at the next drain point")
	}

	g.drainInterruptStack(g.markIfWhite)
	g.scan()
	g.SetRunning(false)

	if freeListAddrs(g)[uint32(target)] {
		t.Fatalf("target address appeared on the free list before any sweep ran")
	}

	liveWords, freeWords := g.sweep()
	if freeListAddrs(g)[uint32(target)] {
		t.Fatalf("target was reclaimed despite the interrupt-time write barrier registering it")
	}
	if liveWords == 0 {
		t.Fatalf("expected at least container+target to be counted live")
	}
	_ = freeWords

	// Second cycle: drop the reference and collect again with no
	// special interrupt handling.
	g.Heap.SetBody(container, 0, uint32(value.NullValue))
	g.Run()

	if !freeListAddrs(g)[uint32(target)] {
		t.Fatalf("target should have been reclaimed once unreferenced")
	}
}

func isWhite(g *GC, ptr heap.Ptr) bool {
	return g.isWhite(ptr)
}
