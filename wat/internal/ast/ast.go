// Package ast holds the typed module tree the parser builds and the
// encoder consumes. It models only the WAT subset this repository
// drives: function imports, function definitions with i32 params,
// results, and locals, and five folded-form instructions.
package ast

// ValType is a WASM value type. I32 is the only one this subset's
// instructions ever produce or consume: BlueScript's heap words and
// value_t encoding are both 32 bits wide, so a guest program built from
// this subset never needs i64/f32/f64 locals.
type ValType byte

const I32 ValType = 0

// FuncType is a function signature: a sequence of parameter types
// followed by a sequence of result types.
type FuncType struct {
	Params  []ValType
	Results []ValType
}

// Instr is one folded-form instruction. Args holds its operand
// sub-expressions in source order; Idx is a resolved local or function
// index for the instructions that reference one (local.get, local.set,
// call); Imm is i32.const's immediate value.
type Instr struct {
	Op   string
	Imm  int64
	Idx  uint32
	Args []Instr
}

// Local is one declared local variable slot.
type Local struct {
	Type ValType
}

// Func is a module-defined function.
type Func struct {
	Name   string
	Export string
	Type   FuncType
	Locals []Local
	Body   []Instr
}

// Import is a module-level function import.
type Import struct {
	Module string
	Field  string
	Name   string
	Type   FuncType
}

// Module is a parsed WAT module: its function index space is every
// Import (in order) followed by every Func (in order), matching the
// WASM text format's index-space rule.
type Module struct {
	Imports []Import
	Funcs   []Func
}
