package testbed

import (
	"context"
	"fmt"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"

	"github.com/bluescript-lang/runtime/runtime"
	"github.com/bluescript-lang/runtime/wat"
)

const hostModuleName = "bluescript"

// Harness compiles a WAT source into wasm, binds it against a Host
// wrapping a runtime.Runtime, and instantiates it under wazero. It
// stands in for the reference runtime's compiled-to-C mutator, which
// this environment cannot produce without a C toolchain.
type Harness struct {
	ctx    context.Context
	rt     *runtime.Runtime
	wazero wazero.Runtime
	host   *Host
	module api.Module
}

// NewHarness builds a fresh runtime.Runtime per cfg and a wazero runtime
// with the Host's functions exported under the "bluescript" namespace.
func NewHarness(ctx context.Context, cfg runtime.Config) (*Harness, error) {
	rt := runtime.New(cfg)
	host := NewHost(rt)

	wz := wazero.NewRuntime(ctx)
	builder := wz.NewHostModuleBuilder(hostModuleName)
	builder.NewFunctionBuilder().WithFunc(host.NewIntArray).Export("new_intarray")
	builder.NewFunctionBuilder().WithFunc(host.IntArrayGet).Export("intarray_get")
	builder.NewFunctionBuilder().WithFunc(host.IntArraySet).Export("intarray_set")
	builder.NewFunctionBuilder().WithFunc(host.NewVector).Export("new_vector")
	builder.NewFunctionBuilder().WithFunc(host.VectorSetInt).Export("vector_set_int")
	builder.NewFunctionBuilder().WithFunc(host.VectorGetInt).Export("vector_get_int")
	builder.NewFunctionBuilder().WithFunc(host.RunGC).Export("gc_run")
	if _, err := builder.Instantiate(ctx); err != nil {
		wz.Close(ctx)
		return nil, fmt.Errorf("export host module: %w", err)
	}

	return &Harness{ctx: ctx, rt: rt, wazero: wz, host: host}, nil
}

// Close releases the wazero runtime. The runtime.Runtime needs no
// explicit teardown: its heap is a plain Go slice.
func (hs *Harness) Close() error {
	return hs.wazero.Close(hs.ctx)
}

// Runtime returns the harness's underlying runtime.Runtime, for tests
// that want to inspect heap/GC state directly alongside guest calls.
func (hs *Harness) Runtime() *runtime.Runtime {
	return hs.rt
}

// LoadWAT compiles source via the wat package and instantiates it,
// importing the host module built in NewHarness.
func (hs *Harness) LoadWAT(source string) error {
	bin, err := wat.Compile(source)
	if err != nil {
		return fmt.Errorf("compile wat: %w", err)
	}
	mod, err := hs.wazero.Instantiate(hs.ctx, bin)
	if err != nil {
		return fmt.Errorf("instantiate guest module: %w", err)
	}
	hs.module = mod
	return nil
}

// Call invokes a guest-exported function by name.
func (hs *Harness) Call(name string, args ...uint64) ([]uint64, error) {
	fn := hs.module.ExportedFunction(name)
	if fn == nil {
		return nil, fmt.Errorf("no exported function %q", name)
	}
	return fn.Call(hs.ctx, args...)
}
