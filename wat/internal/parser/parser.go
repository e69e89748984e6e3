// Package parser turns tokenized WAT source into an ast.Module, for
// exactly the subset of the text format this repository's test harness
// drives: a module of function imports and function definitions, each
// function built from i32 params/results/locals and five folded-form
// instructions (i32.const, local.get, local.set, call, drop). Anything
// outside that subset (memories, tables, globals, blocks, branches,
// non-i32 types) is rejected rather than silently ignored.
package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bluescript-lang/runtime/wat/internal/ast"
	"github.com/bluescript-lang/runtime/wat/internal/token"
)

type Parser struct {
	toks []token.Token
}

func New(toks []token.Token) *Parser {
	return &Parser{toks: toks}
}

func (p *Parser) Parse() (*ast.Module, error) {
	r := &reader{toks: p.toks}
	top, err := r.readForm()
	if err != nil {
		return nil, err
	}
	if !top.isList() || len(top.list) == 0 || top.list[0].text != "module" {
		return nil, fmt.Errorf("expected (module ...)")
	}

	var importForms, funcForms []*sexpr
	for _, field := range top.list[1:] {
		if !field.isList() || len(field.list) == 0 {
			return nil, fmt.Errorf("malformed module field")
		}
		switch field.list[0].text {
		case "import":
			importForms = append(importForms, field)
		case "func":
			funcForms = append(funcForms, field)
		default:
			return nil, fmt.Errorf("unsupported module field %q", field.list[0].text)
		}
	}

	nameIndex, err := declareFuncIndexSpace(importForms, funcForms)
	if err != nil {
		return nil, err
	}

	mod := &ast.Module{}
	for _, f := range importForms {
		imp, err := parseImport(f)
		if err != nil {
			return nil, err
		}
		mod.Imports = append(mod.Imports, imp)
	}
	for _, f := range funcForms {
		fn, err := parseFunc(f, nameIndex)
		if err != nil {
			return nil, err
		}
		mod.Funcs = append(mod.Funcs, fn)
	}
	return mod, nil
}

// declareFuncIndexSpace assigns every named import-func and defined
// func its WASM function index (imports first, then defined funcs, both
// in textual order) before any instruction body is interpreted, so a
// call can reference a function declared anywhere in the file.
func declareFuncIndexSpace(importForms, funcForms []*sexpr) (map[string]uint32, error) {
	nameIndex := map[string]uint32{}
	var idx uint32
	for _, f := range importForms {
		if len(f.list) != 4 {
			return nil, fmt.Errorf("malformed import")
		}
		desc := f.list[3]
		if desc.isList() && len(desc.list) > 1 && desc.list[0].text == "func" && !desc.list[1].isList() {
			nameIndex[desc.list[1].text] = idx
		}
		idx++
	}
	for _, f := range funcForms {
		items := f.list[1:]
		if len(items) > 0 && !items[0].isList() {
			nameIndex[items[0].text] = idx
		}
		idx++
	}
	return nameIndex, nil
}

func parseImport(f *sexpr) (ast.Import, error) {
	items := f.list[1:]
	if len(items) != 3 {
		return ast.Import{}, fmt.Errorf("malformed import: want (import mod field desc)")
	}
	imp := ast.Import{Module: items[0].text, Field: items[1].text}
	desc := items[2]
	if !desc.isList() || len(desc.list) == 0 || desc.list[0].text != "func" {
		return ast.Import{}, fmt.Errorf("only function imports are supported")
	}
	rest := desc.list[1:]
	i := 0
	if i < len(rest) && !rest[i].isList() {
		imp.Name = rest[i].text
		i++
	}
	ft, err := parseFuncType(rest[i:])
	if err != nil {
		return ast.Import{}, err
	}
	imp.Type = ft
	return imp, nil
}

// parseFuncType reads a run of leading (param ...) and (result ...)
// clauses, in the order WAT requires: all params before any result.
func parseFuncType(clauses []*sexpr) (ast.FuncType, error) {
	var ft ast.FuncType
	for _, c := range clauses {
		if !c.isList() || len(c.list) == 0 {
			break
		}
		switch c.list[0].text {
		case "param":
			for _, vt := range c.list[1:] {
				t, err := parseValType(vt.text)
				if err != nil {
					return ast.FuncType{}, err
				}
				ft.Params = append(ft.Params, t)
			}
		case "result":
			for _, vt := range c.list[1:] {
				t, err := parseValType(vt.text)
				if err != nil {
					return ast.FuncType{}, err
				}
				ft.Results = append(ft.Results, t)
			}
		default:
			return ft, nil
		}
	}
	return ft, nil
}

func parseValType(s string) (ast.ValType, error) {
	if s == "i32" {
		return ast.I32, nil
	}
	return 0, fmt.Errorf("unsupported value type %q: this subset only models i32", s)
}

// parseFunc reads a (func ...) form: optional name, optional export,
// its signature, its locals, then its instruction body.
func parseFunc(f *sexpr, nameIndex map[string]uint32) (ast.Func, error) {
	var fn ast.Func
	items := f.list[1:]
	i := 0
	if i < len(items) && !items[i].isList() {
		fn.Name = items[i].text
		i++
	}
	if i < len(items) && items[i].isList() && len(items[i].list) > 0 && items[i].list[0].text == "export" {
		fn.Export = items[i].list[1].text
		i++
	}

	localIndex := map[string]uint32{}
	var nextLocal uint32
header:
	for i < len(items) {
		c := items[i]
		if !c.isList() || len(c.list) == 0 {
			break
		}
		switch c.list[0].text {
		case "param":
			for _, vt := range c.list[1:] {
				t, err := parseValType(vt.text)
				if err != nil {
					return ast.Func{}, err
				}
				fn.Type.Params = append(fn.Type.Params, t)
				nextLocal++
			}
			i++
		case "result":
			for _, vt := range c.list[1:] {
				t, err := parseValType(vt.text)
				if err != nil {
					return ast.Func{}, err
				}
				fn.Type.Results = append(fn.Type.Results, t)
			}
			i++
		case "local":
			rest := c.list[1:]
			if len(rest) == 2 && !rest[0].isList() && strings.HasPrefix(rest[0].text, "$") {
				t, err := parseValType(rest[1].text)
				if err != nil {
					return ast.Func{}, err
				}
				localIndex[rest[0].text] = nextLocal
				fn.Locals = append(fn.Locals, ast.Local{Type: t})
				nextLocal++
			} else {
				for _, vt := range rest {
					t, err := parseValType(vt.text)
					if err != nil {
						return ast.Func{}, err
					}
					fn.Locals = append(fn.Locals, ast.Local{Type: t})
					nextLocal++
				}
			}
			i++
		default:
			break header
		}
	}

	for ; i < len(items); i++ {
		instr, err := parseInstr(items[i], localIndex, nameIndex)
		if err != nil {
			return ast.Func{}, err
		}
		fn.Body = append(fn.Body, instr)
	}
	return fn, nil
}

// parseInstr reads one folded-form instruction: (op operand-forms...),
// where each operand form is itself a nested folded-form instruction
// evaluated before op.
func parseInstr(s *sexpr, localIndex, nameIndex map[string]uint32) (ast.Instr, error) {
	if !s.isList() || len(s.list) == 0 {
		return ast.Instr{}, fmt.Errorf("malformed instruction")
	}
	op := s.list[0].text
	rest := s.list[1:]

	switch op {
	case "i32.const":
		if len(rest) != 1 {
			return ast.Instr{}, fmt.Errorf("i32.const expects exactly one operand")
		}
		n, err := strconv.ParseInt(rest[0].text, 10, 32)
		if err != nil {
			return ast.Instr{}, fmt.Errorf("bad i32.const operand %q: %w", rest[0].text, err)
		}
		return ast.Instr{Op: op, Imm: n}, nil

	case "local.get":
		if len(rest) != 1 {
			return ast.Instr{}, fmt.Errorf("local.get expects exactly one operand")
		}
		idx, err := resolveRef(rest[0].text, localIndex)
		if err != nil {
			return ast.Instr{}, err
		}
		return ast.Instr{Op: op, Idx: idx}, nil

	case "local.set":
		if len(rest) != 2 {
			return ast.Instr{}, fmt.Errorf("local.set expects a target and one value expression")
		}
		idx, err := resolveRef(rest[0].text, localIndex)
		if err != nil {
			return ast.Instr{}, err
		}
		val, err := parseInstr(rest[1], localIndex, nameIndex)
		if err != nil {
			return ast.Instr{}, err
		}
		return ast.Instr{Op: op, Idx: idx, Args: []ast.Instr{val}}, nil

	case "call":
		if len(rest) == 0 {
			return ast.Instr{}, fmt.Errorf("call expects a function reference")
		}
		idx, err := resolveRef(rest[0].text, nameIndex)
		if err != nil {
			return ast.Instr{}, err
		}
		var args []ast.Instr
		for _, a := range rest[1:] {
			arg, err := parseInstr(a, localIndex, nameIndex)
			if err != nil {
				return ast.Instr{}, err
			}
			args = append(args, arg)
		}
		return ast.Instr{Op: op, Idx: idx, Args: args}, nil

	case "drop":
		if len(rest) != 1 {
			return ast.Instr{}, fmt.Errorf("drop expects exactly one operand")
		}
		val, err := parseInstr(rest[0], localIndex, nameIndex)
		if err != nil {
			return ast.Instr{}, err
		}
		return ast.Instr{Op: op, Args: []ast.Instr{val}}, nil

	default:
		return ast.Instr{}, fmt.Errorf("unsupported instruction %q", op)
	}
}

func resolveRef(ref string, index map[string]uint32) (uint32, error) {
	if strings.HasPrefix(ref, "$") {
		idx, ok := index[ref]
		if !ok {
			return 0, fmt.Errorf("undefined reference %q", ref)
		}
		return idx, nil
	}
	n, err := strconv.ParseUint(ref, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("bad index %q: %w", ref, err)
	}
	return uint32(n), nil
}
