package main

import (
	"encoding/json"
	"fmt"
	"os"
)

// Op is one scripted step in a trace file: either an allocation of a
// given kind and size, or a bare "gc" step that forces a collection
// cycle. Matches the JSON shape a trace file is expected to use:
//
//	[{"op":"intarray","n":8},{"op":"vector","n":4},{"op":"gc"}]
type Op struct {
	Kind string `json:"op"`
	N    int32  `json:"n"`
}

// LoadTrace reads a JSON trace file. An empty path returns the built-in
// demo script instead of erroring, so `inspect` runs with no arguments.
func LoadTrace(path string) ([]Op, error) {
	if path == "" {
		return demoTrace(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read trace: %w", err)
	}
	var ops []Op
	if err := json.Unmarshal(data, &ops); err != nil {
		return nil, fmt.Errorf("parse trace: %w", err)
	}
	return ops, nil
}

// demoTrace fills a small heap with arrays and vectors, interleaving GC
// cycles, so the TUI has something to show with no -trace flag.
func demoTrace() []Op {
	var ops []Op
	for i := 0; i < 12; i++ {
		ops = append(ops, Op{Kind: "intarray", N: 6})
		ops = append(ops, Op{Kind: "vector", N: 3})
		if i%4 == 3 {
			ops = append(ops, Op{Kind: "gc"})
		}
	}
	ops = append(ops, Op{Kind: "gc"})
	return ops
}
