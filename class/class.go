package class

import "github.com/bluescript-lang/runtime/internal/ptrtable"

// NoPointer is the StartIndex sentinel meaning "this class holds no
// managed pointers" (SIZE_NO_POINTER in the reference runtime).
const NoPointer = -1

// classTable interns *Class pointers as the 32-bit handles stored in a
// heap object's header word, exactly as the reference TEST64 build
// interns class pointers via record_64bit_pointer: the header has no
// room for a real 64-bit Go pointer, only a 30-bit field.
var classTable = ptrtable.New()

// Handle returns the stable header-word handle for c.
func Handle(c *Class) uint32 {
	return classTable.Intern(c)
}

// FromHandle resolves a header-word handle back to its Class.
func FromHandle(h uint32) *Class {
	v := classTable.Lookup(h)
	if v == nil {
		return nil
	}
	return v.(*Class)
}

// Unboxed type letters used in PropertyTable.UnboxedTypes.
const (
	TypeInt     = 'i'
	TypeFloat   = 'f'
	TypeBool    = 'b'
	TypeBoxed   = ' ' // a managed any-typed value_t slot
)

// PropertyTable maps compile-time property name ids to body-slot indices
// within a class's instances.
type PropertyTable struct {
	// PropNames[i] is the name id of the property stored at body slot
	// Offset+i.
	PropNames []uint16
	// UnboxedTypes[i] is the type letter for PropNames[i]: 'i', 'f', 'b'
	// for a raw unboxed slot, or ' ' for a managed value_t slot.
	UnboxedTypes []byte
	// Offset is the absolute body index of the first property.
	Offset uint16
	// Unboxed is 1 + the maximum body index holding an unboxed value.
	Unboxed uint16
}

// Method is a compile-time-indexed vtable entry. Its concrete signature
// is defined by the compiled call site; the vtable itself performs no
// type checking.
type Method any

// Class is the immutable metadata record for one BlueScript class.
type Class struct {
	Superclass *Class
	Name       string
	Vtbl       []Method
	Table      PropertyTable
	// Size is the instance body length in words, excluding the header.
	// -1 means "variable length"; the instance stores its element count
	// in body word 0.
	Size int32
	// StartIndex is the first body word index holding a managed
	// pointer, or NoPointer if the class holds none.
	StartIndex int32
}

// HasPointers reports whether instances of c may hold managed pointer
// fields.
func (c *Class) HasPointers() bool {
	return c.StartIndex >= 0
}

// IsSubclassOf walks c's superclass chain looking for target.
func (c *Class) IsSubclassOf(target *Class) bool {
	for t := c; t != nil; t = t.Superclass {
		if t == target {
			return true
		}
	}
	return false
}

// PropertyLookup walks the inheritance chain starting at c looking for
// name. It returns the absolute body slot index and the type letter, or
// ok=false if no class in the chain declares the property.
func PropertyLookup(c *Class, name uint16) (index int, typeLetter byte, ok bool) {
	for cur := c; cur != nil; cur = cur.Superclass {
		t := cur.Table
		for i, n := range t.PropNames {
			if n != name {
				continue
			}
			idx := i + int(t.Offset)
			if idx < int(t.Unboxed) {
				return idx, t.UnboxedTypes[i], true
			}
			return idx, TypeBoxed, true
		}
	}
	return 0, 0, false
}

// Method returns the index-th vtable entry with no inheritance search;
// compiled call sites resolve the index at compile time.
func (c *Class) Method(index int) Method {
	return c.Vtbl[index]
}
