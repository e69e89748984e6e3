package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/bluescript-lang/runtime/runtime"
)

func main() {
	var (
		tracePath  = flag.String("trace", "", "Path to a JSON trace file (default: built-in demo script)")
		heapWords  = flag.Int("heap", 0, "Heap size in words (default: runtime default)")
		stackWords = flag.Int("stack", 0, "Mark-stack depth in words (default: runtime default)")
	)
	flag.Parse()

	ops, err := LoadTrace(*tracePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	rt := runtime.New(runtime.Config{HeapWords: *heapWords, StackWords: *stackWords})
	m := newModel(rt, ops)

	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
