// Package engine exposes the competing instruction-set designs behind a
// single compile/execute contract. The harness selects and times
// implementations through this interface rather than through the compiler
// options directly.
package engine

import (
	"fmt"
	"io"

	"github.com/funvibe/brainfuse/internal/config"
	"github.com/funvibe/brainfuse/internal/vm"
)

// Engine is one instruction-set design: a compiler paired with the
// machine that executes its output.
type Engine interface {
	// Name returns the engine name for display
	Name() string

	// Compile translates source bytes into a Program, or fails before
	// anything executes.
	Compile(src []byte) (*vm.Program, error)

	// Execute runs a compiled program on a fresh tape, consuming input
	// and writing output bytes to out.
	Execute(p *vm.Program, input []byte, out io.Writer) error
}

// Profiler is implemented by engines that can attach an explicitly
// constructed profile accumulator to an execution.
type Profiler interface {
	ExecuteProfiled(p *vm.Program, input []byte, out io.Writer, prof *vm.Profile) error
}

// variant is an Engine backed by the shared machine with a particular
// compiler configuration.
type variant struct {
	name string
	opts vm.CompileOptions
	tape int
}

func (v *variant) Name() string {
	return v.name
}

func (v *variant) Compile(src []byte) (*vm.Program, error) {
	return vm.NewCompiler(v.opts).Compile(src)
}

func (v *variant) Execute(p *vm.Program, input []byte, out io.Writer) error {
	m := vm.New(vm.WithTapeSize(v.tape), vm.WithInput(input), vm.WithOutput(out))
	return m.Run(p)
}

func (v *variant) ExecuteProfiled(p *vm.Program, input []byte, out io.Writer, prof *vm.Profile) error {
	m := vm.New(vm.WithTapeSize(v.tape), vm.WithInput(input), vm.WithOutput(out), vm.WithProfile(prof))
	return m.Run(p)
}

// Names lists the built-in engines in benchmarking order: the reference
// design first, so the harness can use it as the equivalence oracle.
func Names() []string {
	return []string{"naive", "coalesced", "fused"}
}

// Lookup returns the named engine with the given tape length. tape <= 0
// selects the default length.
func Lookup(name string, tape int) (Engine, error) {
	if tape <= 0 {
		tape = config.DefaultTapeSize
	}
	switch name {
	case "naive":
		return &variant{name: name, tape: tape}, nil
	case "coalesced":
		return &variant{name: name, tape: tape, opts: vm.CompileOptions{Coalesce: true}}, nil
	case "fused":
		return &variant{name: name, tape: tape, opts: vm.CompileOptions{Coalesce: true, FuseLoops: true}}, nil
	}
	return nil, fmt.Errorf("unknown engine %q", name)
}

// All returns every built-in engine, in benchmarking order.
func All(tape int) []Engine {
	engines := make([]Engine, 0, len(Names()))
	for _, name := range Names() {
		e, _ := Lookup(name, tape)
		engines = append(engines, e)
	}
	return engines
}

// Default returns the engine the plain run path uses.
func Default(tape int) Engine {
	e, _ := Lookup("fused", tape)
	return e
}
