// Package object implements every concrete object kind of spec §3/§4.O:
// generic instances, string literals, function objects, boxed and
// boxed-raw values, int/float/byte arrays, vectors, and the any/typed
// "Array" kind that slices a vector. Every constructor allocates through
// a *gc.GC (so allocation failure, interrupt-contract checks, and
// collect-then-retry are handled uniformly) and stamps the class handle
// and initial mark polarity onto the new object's header.
//
// Two off-heap interning tables back the kinds whose bodies hold raw,
// unmanaged pointers instead of value_t: string literals intern their Go
// string, and function objects intern their Go callable and signature
// string, exactly the way package class interns *Class pointers and
// the module's internal/ptrtable interns literal pointers generally
// (see spec §4.V and §9's 64-bit testing note) — these bodies are never
// scanned by the collector (their class's StartIndex is class.NoPointer)
// so storing an opaque handle instead of a real machine pointer is
// invisible to every other component.
package object
