package gc

import (
	"sync"

	"github.com/bluescript-lang/runtime/class"
	"github.com/bluescript-lang/runtime/heap"
	"github.com/bluescript-lang/runtime/interrupt"
	"github.com/bluescript-lang/runtime/rootset"
	"github.com/bluescript-lang/runtime/rterr"
	"github.com/bluescript-lang/runtime/rtlog"
	"github.com/bluescript-lang/runtime/value"
)

// DefaultStackSize is the reference runtime's mark-stack size,
// HEAP_SIZE/65, rounded for the default heap.
const DefaultStackSize = heap.DefaultSize / 65

// GC ties a Heap to a root-set list and an interrupt counter and
// performs allocation-with-retry and mark-and-sweep collection over
// them. One GC should be constructed per Runtime (see spec §9's "Global
// mutable state... encapsulate in a Runtime value").
type GC struct {
	Heap      *heap.Heap
	Roots     *rootset.List
	Interrupt *interrupt.Counter

	currentNoMark uint32 // the "unmarked" polarity for the next cycle
	gcRunning     bool

	markStack []heap.Ptr
	markTop   int
	overflow  bool

	mu        sync.Mutex // critical section around the interrupt stack
	istack    []value.Value
	istackTop int
}

// Stats summarises one completed collection cycle.
type Stats struct {
	LiveWords       int
	FreeWords       int
	StackOverflowed bool
}

// New constructs a GC over h, rooted at roots, gated by interrupts. A
// mark stack of stackSize entries is allocated (DefaultStackSize for the
// reference heap); the interrupt-safe stack is half that, per spec's
// ISTACK_SIZE = STACK_SIZE/2.
func New(h *heap.Heap, roots *rootset.List, interrupts *interrupt.Counter, stackSize int) *GC {
	if stackSize <= 0 {
		stackSize = DefaultStackSize
	}
	return &GC{
		Heap:      h,
		Roots:     roots,
		Interrupt: interrupts,
		markStack: make([]heap.Ptr, stackSize),
		istack:    make([]value.Value, stackSize/2),
	}
}

// NoMarkBit returns the polarity a freshly allocated object's header
// should carry: newly created objects start "white" under the current
// polarity, exactly like any other unmarked survivor, and are proven
// live the same way (reachability from a root) on the next cycle they
// overlap.
func (g *GC) NoMarkBit() uint32 {
	return g.currentNoMark
}

func (g *GC) aliveMark() uint32 {
	return 1 - g.currentNoMark
}

func (g *GC) isWhite(ptr heap.Ptr) bool {
	return heap.MarkBit(g.Heap.Header(ptr)) != g.aliveMark()
}

func (g *GC) isBlack(ptr heap.Ptr) bool {
	h := g.Heap.Header(ptr)
	return heap.MarkBit(h) == g.aliveMark() && !heap.IsGray(h)
}

// Allocate reserves a bodyWords-word body, running one collection cycle
// and retrying if the first attempt fails. Matches allocate_heap: it
// refuses to run at all while an interrupt handler is active, and raises
// an Allocation error if no chunk fits even after collecting.
func (g *GC) Allocate(bodyWords uint16) heap.Ptr {
	if g.Interrupt.Active() {
		rtlog.InterruptContractViolation(int(g.Interrupt.Depth()))
		rterr.Raise(rterr.AllocationError("allocation attempted inside interrupt handler"))
	}

	if ptr, ok := g.Heap.AllocateRaw(bodyWords); ok {
		return ptr
	}

	g.Run()

	ptr, ok := g.Heap.AllocateRaw(bodyWords)
	rtlog.AllocationRetry(bodyWords, ok)
	if !ok {
		rterr.Raise(rterr.AllocationError("heap exhausted"))
	}
	return ptr
}

// WriteBarrier must be called before any store into a managed slot.
// container is the heap object the slot belongs to; isRoot is true when
// the slot being written is a root-set entry rather than a heap object's
// body word (the spec's "container is... NULL meaning the store is into
// the root set"). Matches write_barrier.
func (g *GC) WriteBarrier(container heap.Ptr, isRoot bool, newValue value.Value) {
	if !g.Interrupt.Active() || !g.gcRunning {
		// Mutator is the sole writer and the collector is not mid-cycle:
		// no concurrent reader can observe a torn tricolor invariant.
		return
	}
	if !value.IsPtrValue(newValue) || newValue == value.NullValue {
		return
	}
	target := heap.Ptr(value.ValueToPtr(newValue))
	if !g.isWhite(target) {
		return
	}
	if !isRoot && !g.isBlack(container) {
		return
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if g.istackTop >= len(g.istack) {
		g.markDirect(target)
		g.overflow = true
		return
	}
	g.istack[g.istackTop] = newValue
	g.istackTop++
}

// markDirect marks ptr alive+gray without pushing it onto the mark
// stack, turning it into an "orphan" the collector's heap-scan fallback
// will find by its gray bit.
func (g *GC) markDirect(ptr heap.Ptr) {
	h := g.Heap.Header(ptr)
	h = heap.WriteMarkBit(h, g.aliveMark())
	h = heap.SetGrayBit(h)
	g.Heap.SetHeader(ptr, h)
}

func (g *GC) drainInterruptStack(markIfWhite func(uint32)) {
	g.mu.Lock()
	n := g.istackTop
	var drained []value.Value
	if n > 0 {
		drained = append(drained, g.istack[:n]...)
	}
	g.istackTop = 0
	g.mu.Unlock()

	for _, v := range drained {
		markIfWhite(uint32(v))
	}
}

// push records ptr (already marked alive+gray) for scanning, or sets the
// overflow flag if the mark stack is full.
func (g *GC) push(ptr heap.Ptr) {
	if g.markTop >= len(g.markStack) {
		g.overflow = true
		return
	}
	g.markStack[g.markTop] = ptr
	g.markTop++
}

// markIfWhite marks the pointer value w carries, pushing it for
// scanning, unless w is not a pointer, is NULL, or is already alive.
func (g *GC) markIfWhite(w uint32) {
	v := value.Value(w)
	if !value.IsPtrValue(v) || v == value.NullValue {
		return
	}
	ptr := heap.Ptr(value.ValueToPtr(v))
	if !g.isWhite(ptr) {
		return
	}
	g.markDirect(ptr)
	g.push(ptr)
}

// scan drains the mark stack, visiting every managed pointer field of
// each popped object.
func (g *GC) scan() {
	for g.markTop > 0 {
		g.markTop--
		ptr := g.markStack[g.markTop]

		h := g.Heap.Header(ptr)
		g.Heap.SetHeader(ptr, heap.ClearGrayBit(h))

		clazz := g.Heap.ClassOf(ptr)
		if !clazz.HasPointers() {
			continue
		}
		size := g.Heap.ObjectSize(ptr)
		for i := clazz.StartIndex; i < size; i++ {
			g.markIfWhite(g.Heap.Body(ptr, i))
		}
	}
}

type freeBlock struct{ addr, size uint32 }

// snapshotFreeList reads the current free-list into a slice. The free
// list is not mutated again until Sweep rewrites it, so a single
// snapshot is valid for the whole mark phase.
func (g *GC) snapshotFreeList() []freeBlock {
	var blocks []freeBlock
	heapSize := g.Heap.Size()
	idx := g.Heap.Words[0]
	for idx < heapSize {
		size := g.Heap.Words[idx+1]
		blocks = append(blocks, freeBlock{idx, size})
		idx = g.Heap.Words[idx]
	}
	return blocks
}

// forEachObject walks the heap from word 2, skipping the free blocks
// recorded in blocks, and invokes visit for every allocated object.
func (g *GC) forEachObject(blocks []freeBlock, visit func(ptr heap.Ptr, clazz *class.Class)) {
	cur := uint32(2)
	heapSize := g.Heap.Size()
	fi := 0
	for cur < heapSize {
		if fi < len(blocks) && blocks[fi].addr == cur {
			cur += blocks[fi].size
			fi++
			continue
		}
		ptr := heap.Ptr(cur)
		clazz := g.Heap.ClassOf(ptr)
		visit(ptr, clazz)
		size := g.Heap.ObjectSize(ptr)
		cur += uint32(heap.RealObjSize(uint16(size)))
	}
}

// scanOrphans implements the stack-overflow fallback: once the roots
// have been drained and the mark stack emptied, if the stack ever
// overflowed, perform a linear scan of the heap looking for objects
// still carrying a gray bit (the overflow path sets mark+gray directly
// without a stack slot) and resume marking from each, repeating until a
// full pass finds none and the mark stack is empty.
func (g *GC) scanOrphans() {
	if !g.overflow && g.markTop == 0 {
		return
	}
	blocks := g.snapshotFreeList()
	for {
		g.overflow = false
		g.scan()

		foundGray := false
		g.forEachObject(blocks, func(ptr heap.Ptr, clazz *class.Class) {
			h := g.Heap.Header(ptr)
			if !heap.IsGray(h) {
				return
			}
			foundGray = true
			g.Heap.SetHeader(ptr, heap.ClearGrayBit(h))
			if !clazz.HasPointers() {
				return
			}
			size := g.Heap.ObjectSize(ptr)
			for i := clazz.StartIndex; i < size; i++ {
				g.markIfWhite(g.Heap.Body(ptr, i))
			}
		})
		g.scan()

		if !foundGray && g.markTop == 0 && !g.overflow {
			return
		}
	}
}

// mark performs the root-marking and scanning phases of one cycle and
// reports whether the mark stack overflowed.
func (g *GC) mark() (overflowed bool) {
	g.markTop = 0
	g.overflow = false

	for f := g.Roots.Head; f != nil; f = f.Next {
		for _, v := range f.Values {
			g.markIfWhite(uint32(v))
		}
	}
	g.drainInterruptStack(g.markIfWhite)

	g.scan()
	g.drainInterruptStack(g.markIfWhite)
	g.scan()

	overflowed = g.overflow
	g.scanOrphans()
	return overflowed
}

// sweep performs the linear reclaim pass described in spec §4.G,
// rebuilding the free-list in place and flipping the mark polarity for
// the next cycle.
func (g *GC) sweep() (liveWords, freeWords int) {
	aliveMark := g.aliveMark()
	blocks := g.snapshotFreeList()
	heapSize := g.Heap.Size()

	var newFree []freeBlock
	appendFree := func(addr, size uint32) {
		if n := len(newFree); n > 0 && newFree[n-1].addr+newFree[n-1].size == addr {
			newFree[n-1].size += size
			return
		}
		newFree = append(newFree, freeBlock{addr, size})
	}

	cur := uint32(2)
	fi := 0
	for cur < heapSize {
		if fi < len(blocks) && blocks[fi].addr == cur {
			appendFree(blocks[fi].addr, blocks[fi].size)
			cur += blocks[fi].size
			fi++
			continue
		}

		ptr := heap.Ptr(cur)
		h := g.Heap.Header(ptr)
		size := g.Heap.ObjectSize(ptr)
		chunkSize := uint32(heap.RealObjSize(uint16(size)))

		if heap.MarkBit(h) == aliveMark {
			liveWords += int(chunkSize)
			cur += chunkSize
			continue
		}
		appendFree(cur, chunkSize)
		cur += chunkSize
	}

	if len(newFree) == 0 {
		g.Heap.Words[0] = heapSize
	} else {
		g.Heap.Words[0] = newFree[0].addr
		for i, b := range newFree {
			next := heapSize
			if i+1 < len(newFree) {
				next = newFree[i+1].addr
			}
			g.Heap.Words[b.addr] = next
			g.Heap.Words[b.addr+1] = b.size
		}
	}
	for _, b := range newFree {
		freeWords += int(b.size)
	}

	g.currentNoMark = 1 - g.currentNoMark
	return liveWords, freeWords
}

// Run performs one complete mark-and-sweep cycle: mark every object
// reachable from the root set (draining the interrupt-safe stack at the
// usual points and falling back to a heap-wide orphan scan if the mark
// stack ever overflowed), then sweep the heap and rebuild the
// free-list.
func (g *GC) Run() Stats {
	g.gcRunning = true

	overflowed := g.mark()
	live, free := g.sweep()

	g.gcRunning = false
	rtlog.GCCycle(live, free, overflowed)
	return Stats{LiveWords: live, FreeWords: free, StackOverflowed: overflowed}
}

// Running reports whether a collection cycle is currently executing.
// Exposed for diagnostics (cmd/inspect) and for tests that need to
// simulate an interrupt firing mid-cycle.
func (g *GC) Running() bool {
	return g.gcRunning
}

// SetRunning is a test/diagnostic hook letting callers simulate "GC is
// mid-cycle" without driving a full Run(), needed to exercise the write
// barrier's interrupt path in isolation (spec §8 scenario 6).
func (g *GC) SetRunning(running bool) {
	g.gcRunning = running
}
