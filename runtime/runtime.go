package runtime

import (
	"go.uber.org/zap"

	"github.com/bluescript-lang/runtime/gc"
	"github.com/bluescript-lang/runtime/heap"
	"github.com/bluescript-lang/runtime/interp"
	"github.com/bluescript-lang/runtime/interrupt"
	"github.com/bluescript-lang/runtime/rootset"
	"github.com/bluescript-lang/runtime/rterr"
	"github.com/bluescript-lang/runtime/rtlog"
)

// Config holds the sizing and logging knobs a Runtime is constructed
// with, the Go analogue of the compile-time HEAP_SIZE/STACK_SIZE
// constants. Zero values fall back to the reference runtime's defaults.
type Config struct {
	// HeapWords is the word array size; defaults to heap.DefaultSize
	// (1024*8+2).
	HeapWords int
	// StackWords is the mark-stack depth; defaults to HeapWords/65 (equal
	// to gc.DefaultStackSize for the default heap).
	StackWords int
	// Logger overrides the package-level rtlog logger for this process.
	// Nil leaves the existing (or no-op) logger in place.
	Logger *zap.Logger
}

// Runtime owns the heap, collector, root-set list, and interrupt
// counter that the reference design treats as process-wide globals
// (spec §9). One Runtime is constructed per program; compiled-code glue
// receives it as an implicit reference. Do not construct more than one
// concurrently active Runtime.
type Runtime struct {
	Heap      *heap.Heap
	GC        *gc.GC
	Roots     *rootset.List
	Interrupt *interrupt.Counter
}

// New constructs a Runtime per cfg, mirroring the teacher's runtime.New
// wiring an engine and host registry into one *Runtime.
func New(cfg Config) *Runtime {
	if cfg.Logger != nil {
		rtlog.SetLogger(cfg.Logger)
	}

	heapWords := cfg.HeapWords
	if heapWords <= 0 {
		heapWords = heap.DefaultSize
	}
	stackWords := cfg.StackWords
	if stackWords <= 0 {
		stackWords = heapWords / 65
	}

	h := heap.New(heapWords)
	roots := &rootset.List{}
	ic := &interrupt.Counter{}
	g := gc.New(h, roots, ic, stackWords)

	return &Runtime{Heap: h, GC: g, Roots: roots, Interrupt: ic}
}

// PushRoot declares a new root-set frame of n slots. Matches
// gc_init_rootset.
func (r *Runtime) PushRoot(n int) *rootset.Frame {
	return r.Roots.Push(n)
}

// PopRoot unlinks f. Matches DELETE_ROOT_SET.
func (r *Runtime) PopRoot(f *rootset.Frame) {
	r.Roots.Pop(f)
}

// RunGC performs one mark-and-sweep cycle and logs its result through
// rtlog.
func (r *Runtime) RunGC() gc.Stats {
	stats := r.GC.Run()
	rtlog.GCCycle(stats.LiveWords, stats.FreeWords, stats.StackOverflowed)
	return stats
}

// InterruptHandler brackets fn with interrupt_handler_start/end,
// matching the contract gc.WriteBarrier and Allocate both gate on.
func (r *Runtime) InterruptHandler(fn func()) {
	r.Interrupt.Start()
	defer r.Interrupt.End()
	fn()
}

// Entry invokes fn as a compiled script's entry point via TryAndCatch,
// matching spec §6's "entry point is invoked via try_and_catch(entry)".
func (r *Runtime) Entry(fn func()) (ok bool, caught *rterr.Error) {
	return interp.TryAndCatch(fn)
}
