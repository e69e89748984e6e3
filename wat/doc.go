// Package wat compiles WAT (WebAssembly Text format) source into a
// binary wasm module, for exactly the subset of WAT that testbed's
// "compiled to wasm instead of C" fixtures need: a module of function
// imports, function definitions with i32 params/results/locals, and
// five folded-form instructions (i32.const, local.get, local.set,
// call, drop). There is no real C toolchain in this environment to
// produce genuine AOT-compiled BlueScript output, so testbed drives the
// runtime through tiny WAT modules instead; this package exists only to
// turn that WAT source into something wazero can instantiate.
//
// Basic usage:
//
//	wasm, err := wat.Compile(`(module
//		(import "bluescript" "gc_run" (func $gc_run (result i32)))
//		(func (export "run") (result i32)
//			(call $gc_run)))`)
//
// Supported:
//   - module, import, func, export, param, result, local
//   - i32.const, local.get, local.set, call, drop (folded form only)
//   - line comments (;; ...)
//
// Not supported: memory/table/global declarations, control flow
// (block/loop/if/br), non-i32 value types, call_indirect, the flat
// (unfolded) instruction syntax, and anything from WASM's numeric,
// memory, reference-types, or bulk-memory instruction sets beyond the
// five folded forms above.
package wat
