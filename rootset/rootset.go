package rootset

import "github.com/bluescript-lang/runtime/value"

// Frame is one pushed root-set record, the Go analogue of struct
// gc_root_set. A zero-length frame is legal and harmless: it is linked
// into Next for correct LIFO unwinding but never inspected by the
// collector.
type Frame struct {
	Next   *Frame
	Values []value.Value
}

// List is the process-wide (or, here, per-Runtime) linked list of
// pushed frames, threaded through Frame.Next. The zero value is an
// empty list.
type List struct {
	Head *Frame
}

// Push declares a new frame of n value slots, initialised to UndefValue,
// and prepends it to the list. Matches gc_init_rootset/ROOT_SET. A
// zero-length frame only records the current head in Next; it does not
// become the head itself.
func (l *List) Push(n int) *Frame {
	f := &Frame{Next: l.Head}
	if n > 0 {
		values := make([]value.Value, n)
		for i := range values {
			values[i] = value.UndefValue
		}
		f.Values = values
		l.Head = f
	}
	return f
}

// Pop unlinks f, restoring the list head to whatever it was before f was
// pushed. Matches DELETE_ROOT_SET. f must be the most recently pushed
// still-live frame (root sets are strictly LIFO-nested).
func (l *List) Pop(f *Frame) {
	l.Head = f.Next
}
