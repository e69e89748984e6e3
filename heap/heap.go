package heap

import (
	"github.com/bluescript-lang/runtime/class"
	"github.com/bluescript-lang/runtime/value"
)

// DefaultSize is the reference runtime's HEAP_SIZE: 1024*8+2 words.
const DefaultSize = 1024*8 + 2

// Ptr is the word index of an object's header, the heap-local analogue
// of the reference runtime's pointer_t.
type Ptr uint32

// markBitMask and grayBitMask are the two low bits of every header word;
// the class handle occupies the remaining bits, shifted left by two.
const (
	markBitMask = 1
	grayBitMask = 0b10
	tagBits     = 2
)

// Heap is a fixed array of 32-bit words managed by a free-list
// allocator. Words 0 and 1 are the reserved prefix described in spec §3.
type Heap struct {
	Words []uint32
}

// New allocates a heap of size words and initialises its free-list to a
// single block spanning the entire usable area, matching gc_initialize.
func New(size int) *Heap {
	h := &Heap{Words: make([]uint32, size)}
	h.Reset()
	return h
}

// Reset reinitialises the free-list to one block covering the whole
// heap, discarding all existing objects.
func (h *Heap) Reset() {
	n := uint32(len(h.Words))
	h.Words[0] = 2
	h.Words[1] = 2
	h.Words[2] = n
	h.Words[3] = n - 2
}

// Size returns the heap's total word count.
func (h *Heap) Size() uint32 {
	return uint32(len(h.Words))
}

// RealObjSize computes the total chunk size (header + body, padded to an
// even word count) for a body of bodyLen words. Matches real_objsize.
func RealObjSize(bodyLen uint16) uint16 {
	size := bodyLen + 1 // add the header word
	return (size + 1) &^ 1
}

// AllocateRaw finds and splices out a free chunk large enough to hold a
// bodyWords-word body (including header, rounded to even). It performs
// no garbage collection and raises no errors; ok is false if no chunk
// fits. Matches allocate_heap_base.
func (h *Heap) AllocateRaw(bodyWords uint16) (ptr Ptr, ok bool) {
	wordSize := uint32(RealObjSize(bodyWords))
	heapSize := h.Size()

	var prev uint32
	current := h.Words[0]
	for current < heapSize {
		next := h.Words[current]
		sz := h.Words[current+1]
		switch {
		case sz > wordSize:
			cur2 := current + wordSize
			h.Words[prev] = cur2
			h.Words[cur2] = next
			h.Words[cur2+1] = sz - wordSize
			return Ptr(current), true
		case sz == wordSize:
			h.Words[prev] = next
			return Ptr(current), true
		}
		prev = current
		current = next
	}
	return 0, false
}

// Header returns the raw header word at ptr.
func (h *Heap) Header(ptr Ptr) uint32 {
	return h.Words[ptr]
}

// SetHeader overwrites the raw header word at ptr.
func (h *Heap) SetHeader(ptr Ptr, v uint32) {
	h.Words[ptr] = v
}

// Body returns body word i of the object at ptr (0-based, excluding the
// header word).
func (h *Heap) Body(ptr Ptr, i int32) uint32 {
	return h.Words[uint32(ptr)+1+uint32(i)]
}

// SetBody overwrites body word i of the object at ptr.
func (h *Heap) SetBody(ptr Ptr, i int32, v uint32) {
	h.Words[uint32(ptr)+1+uint32(i)] = v
}

// BodyIndex returns the absolute word index of body slot i of ptr, the
// equivalent of &obj->body[i] in the reference runtime.
func (h *Heap) BodyIndex(ptr Ptr, i int32) uint32 {
	return uint32(ptr) + 1 + uint32(i)
}

// SetObjectHeader stamps ptr's header with clazz's handle and the given
// mark-bit polarity, with the gray bit clear. Matches set_object_header.
func (h *Heap) SetObjectHeader(ptr Ptr, clazz *class.Class, mark uint32) {
	handle := class.Handle(clazz)
	h.Words[ptr] = (handle << tagBits) | (mark & markBitMask)
}

// ClassOf returns the class metadata of the object at ptr.
func (h *Heap) ClassOf(ptr Ptr) *class.Class {
	return class.FromHandle(ClassHandle(h.Words[ptr]))
}

// ObjectSize returns the instance's body length in words: the class's
// fixed size, or body[0]+1 for variable-length classes.
func (h *Heap) ObjectSize(ptr Ptr) int32 {
	clazz := h.ClassOf(ptr)
	if clazz.Size >= 0 {
		return clazz.Size
	}
	return int32(h.Body(ptr, 0)) + 1
}

// ClassOfValue returns the class metadata of a tagged value, or nil if
// the value is not a live pointer. Matches gc_get_class_of.
func (h *Heap) ClassOfValue(v value.Value) *class.Class {
	if !value.IsPtrValue(v) || v == value.NullValue {
		return nil
	}
	return h.ClassOf(Ptr(value.ValueToPtr(v)))
}

// Method returns the index-th vtable entry of v's dynamic class, the
// no-search dispatch spec §4.C describes: compiled call sites resolve
// the index at compile time, this just indirects through the object's
// class pointer.
func (h *Heap) Method(v value.Value, index int) class.Method {
	return h.ClassOfValue(v).Method(index)
}

// IsSubclass reports whether v's dynamic class is target or a subclass
// of it. A non-pointer or NULL value is never a subclass of anything.
func (h *Heap) IsSubclass(v value.Value, target *class.Class) bool {
	c := h.ClassOfValue(v)
	return c != nil && c.IsSubclassOf(target)
}

// ClassHandle extracts the interned class handle from a raw header word.
func ClassHandle(header uint32) uint32 {
	return header >> tagBits
}

// MarkBit extracts the mark bit from a raw header word.
func MarkBit(header uint32) uint32 {
	return header & markBitMask
}

// IsGray reports whether the gray bit is set in a raw header word.
func IsGray(header uint32) bool {
	return header&grayBitMask != 0
}

// WriteMarkBit returns header with the mark bit set (or cleared), matching
// the reference's WRITE_MARK_BIT macro.
func WriteMarkBit(header uint32, mark uint32) uint32 {
	if mark != 0 {
		return header | markBitMask
	}
	return header &^ markBitMask
}

// SetGrayBit returns header with the gray bit set.
func SetGrayBit(header uint32) uint32 {
	return header | grayBitMask
}

// ClearGrayBit returns header with the gray bit cleared.
func ClearGrayBit(header uint32) uint32 {
	return header &^ grayBitMask
}
