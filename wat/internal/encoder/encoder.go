// Package encoder lowers an ast.Module to a binary wasm module, per the
// subset of sections and instructions this repository's WAT subset
// produces: a Type section, an Import section (function imports only),
// a Function section, an Export section (function exports only), and a
// Code section whose bodies use only i32.const/local.get/local.set/
// call/drop.
package encoder

import "github.com/bluescript-lang/runtime/wat/internal/ast"

var wasmHeader = []byte{0x00, 0x61, 0x73, 0x6D, 0x01, 0x00, 0x00, 0x00}

const (
	secType     = 1
	secImport   = 2
	secFunction = 3
	secExport   = 7
	secCode     = 10
)

const (
	valTypeI32    byte = 0x7F
	funcTypeTag   byte = 0x60
	importKindFn  byte = 0x00
	exportKindFn  byte = 0x00
)

const (
	opEnd      byte = 0x0B
	opCall     byte = 0x10
	opDrop     byte = 0x1A
	opLocalGet byte = 0x20
	opLocalSet byte = 0x21
	opI32Const byte = 0x41
)

func valType(t ast.ValType) byte {
	switch t {
	case ast.I32:
		return valTypeI32
	default:
		// parser.parseValType already rejects every other ValType.
		panic("encoder: unsupported value type")
	}
}

func encodeFuncType(b *buffer, ft ast.FuncType) {
	b.byte(funcTypeTag)
	b.uleb(uint32(len(ft.Params)))
	for _, p := range ft.Params {
		b.byte(valType(p))
	}
	b.uleb(uint32(len(ft.Results)))
	for _, r := range ft.Results {
		b.byte(valType(r))
	}
}

// writeSection emits one section. Every section body here starts with
// its entry count, so a body that is a lone zero count is omitted.
func writeSection(out *buffer, id byte, fill func(b *buffer)) {
	var body buffer
	fill(&body)
	if len(body.bytes) == 1 && body.bytes[0] == 0 {
		return
	}
	out.byte(id)
	out.uleb(uint32(len(body.bytes)))
	out.raw(body.bytes)
}

// encodeLocals emits the wasm locals vector as (count, type) runs,
// collapsing consecutive same-typed locals into one run.
func encodeLocals(b *buffer, locals []ast.Local) {
	type run struct {
		count uint32
		typ   ast.ValType
	}
	var runs []run
	for _, l := range locals {
		if n := len(runs); n > 0 && runs[n-1].typ == l.Type {
			runs[n-1].count++
			continue
		}
		runs = append(runs, run{count: 1, typ: l.Type})
	}
	b.uleb(uint32(len(runs)))
	for _, r := range runs {
		b.uleb(r.count)
		b.byte(valType(r.typ))
	}
}

// encodeInstr emits one instruction, recursing into its folded operand
// expressions first so the value stack is in the right order by the
// time the instruction's own opcode is emitted.
func encodeInstr(b *buffer, instr ast.Instr) {
	for _, arg := range instr.Args {
		encodeInstr(b, arg)
	}
	switch instr.Op {
	case "i32.const":
		b.byte(opI32Const)
		b.sleb(instr.Imm)
	case "local.get":
		b.byte(opLocalGet)
		b.uleb(instr.Idx)
	case "local.set":
		b.byte(opLocalSet)
		b.uleb(instr.Idx)
	case "call":
		b.byte(opCall)
		b.uleb(instr.Idx)
	case "drop":
		b.byte(opDrop)
	}
}

// Encode lowers mod to a wasm binary module. Every function gets its own
// type-section entry with no de-duplication: this subset never emits
// enough functions for shared types to be worth tracking.
func Encode(mod *ast.Module) []byte {
	var out buffer
	out.raw(wasmHeader)

	allTypes := make([]ast.FuncType, 0, len(mod.Imports)+len(mod.Funcs))
	for _, imp := range mod.Imports {
		allTypes = append(allTypes, imp.Type)
	}
	for _, fn := range mod.Funcs {
		allTypes = append(allTypes, fn.Type)
	}

	writeSection(&out, secType, func(b *buffer) {
		b.uleb(uint32(len(allTypes)))
		for _, ft := range allTypes {
			encodeFuncType(b, ft)
		}
	})

	writeSection(&out, secImport, func(b *buffer) {
		b.uleb(uint32(len(mod.Imports)))
		for i, imp := range mod.Imports {
			b.name(imp.Module)
			b.name(imp.Field)
			b.byte(importKindFn)
			b.uleb(uint32(i))
		}
	})

	writeSection(&out, secFunction, func(b *buffer) {
		b.uleb(uint32(len(mod.Funcs)))
		for i := range mod.Funcs {
			b.uleb(uint32(len(mod.Imports) + i))
		}
	})

	writeSection(&out, secExport, func(b *buffer) {
		type export struct {
			name string
			idx  uint32
		}
		var exports []export
		for i, fn := range mod.Funcs {
			if fn.Export != "" {
				exports = append(exports, export{fn.Export, uint32(len(mod.Imports) + i)})
			}
		}
		b.uleb(uint32(len(exports)))
		for _, e := range exports {
			b.name(e.name)
			b.byte(exportKindFn)
			b.uleb(e.idx)
		}
	})

	writeSection(&out, secCode, func(b *buffer) {
		b.uleb(uint32(len(mod.Funcs)))
		for _, fn := range mod.Funcs {
			var body buffer
			encodeLocals(&body, fn.Locals)
			for _, instr := range fn.Body {
				encodeInstr(&body, instr)
			}
			body.byte(opEnd)
			b.uleb(uint32(len(body.bytes)))
			b.raw(body.bytes)
		}
	})

	return out.bytes
}
