// Package runtime wires value, heap, class, object, gc, rootset,
// interrupt, and interp into the single "Runtime" value spec §9
// describes: the heap array, free-list head, root-set head, GC mark
// flag, and interrupt counter are process-wide singletons in the
// reference design; here they live as fields of one *Runtime
// constructed once per program, exactly the way the teacher's own
// runtime.New wires an engine and a host registry into one *Runtime.
package runtime
