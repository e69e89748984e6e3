// Package testbed drives the runtime through a wasm module compiled
// from WAT, standing in for AOT-compiled-to-C BlueScript code since
// this environment has no C toolchain to produce the genuine article.
// A tiny guest module imports host functions that wrap gc.GC/object
// constructors the way compiled BlueScript calls gc_new_vector,
// gc_vector_set, and friends; wazero instantiates and runs it.
package testbed
