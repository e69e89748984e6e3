package object

import "github.com/bluescript-lang/runtime/class"

// The built-in object kinds of spec §3. Compiled BlueScript programs
// supply their own class literals for user-defined types (generic
// instances); these eleven are the ones the runtime itself must recognise
// because it constructs and scans them directly.
var (
	ClassString = &class.Class{
		Name:       "String",
		Size:       1,
		StartIndex: class.NoPointer, // body[0] is a raw, unmanaged string handle
	}
	ClassFunction = &class.Class{
		Name:       "Function",
		Size:       3,
		StartIndex: 2, // body[0..1] raw (fn ptr, signature); body[2] is captured state
	}
	ClassBox = &class.Class{
		Name:       "Box",
		Size:       1,
		StartIndex: 0, // the single word is a managed value_t
	}
	ClassIntBox = &class.Class{
		Name:       "IntBox",
		Size:       1,
		StartIndex: class.NoPointer,
	}
	ClassFloatBox = &class.Class{
		Name:       "FloatBox",
		Size:       1,
		StartIndex: class.NoPointer,
	}
	ClassIntArray = &class.Class{
		Name:       "IntArray",
		Size:       -1,
		StartIndex: class.NoPointer,
	}
	ClassFloatArray = &class.Class{
		Name:       "FloatArray",
		Size:       -1,
		StartIndex: class.NoPointer,
	}
	ClassByteArray = &class.Class{
		Name:       "ByteArray",
		Size:       -1,
		StartIndex: class.NoPointer,
	}
	ClassVector = &class.Class{
		Name:       "Vector",
		Size:       -1,
		StartIndex: 1, // body[0] is the element count; body[1..n] are value_t
	}
	// ClassArray and ClassAnyArray share the same physical layout
	// ([length, vectorRef]); the two classes exist so the dynamic type
	// a value carries distinguishes a statically-typed element array
	// from one the language treats as "any", matching new_array's
	// is_any flag (spec §4.O).
	ClassArray = &class.Class{
		Name:       "Array",
		Size:       2,
		StartIndex: 1,
	}
	ClassAnyArray = &class.Class{
		Name:       "AnyArray",
		Size:       2,
		StartIndex: 1,
	}
)
