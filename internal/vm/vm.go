package vm

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/funvibe/brainfuse/internal/config"
)

var ErrInputExhausted = errors.New("input exhausted")

// RuntimeError reports a fatal execution failure at a program address.
// It unwraps to the underlying cause (ErrInputExhausted or an output
// write error).
type RuntimeError struct {
	PC  int
	Err error
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("runtime error at pc=%d: %s", e.PC, e.Err)
}

func (e *RuntimeError) Unwrap() error {
	return e.Err
}

// Machine executes compiled programs against a fixed-size wrapping tape.
// One machine runs one program at a time; the tape and registers are
// exclusively owned by the run in progress. The Program itself is never
// mutated, so a single Program may be executed by any number of machines.
type Machine struct {
	tape  []byte
	input []byte
	inPos int
	out   io.Writer
	prof  *Profile
}

// Option configures a Machine.
type Option func(*Machine)

// WithTapeSize overrides the default tape length.
func WithTapeSize(n int) Option {
	return func(m *Machine) { m.tape = make([]byte, n) }
}

// WithInput supplies the byte sequence consumed by OP_INPUT.
func WithInput(in []byte) Option {
	return func(m *Machine) { m.input = in }
}

// WithOutput redirects OP_OUTPUT, which otherwise writes to stdout.
func WithOutput(w io.Writer) Option {
	return func(m *Machine) { m.out = w }
}

// WithProfile attaches an explicitly constructed profile accumulator.
// The machine keeps no hidden counters of its own.
func WithProfile(p *Profile) Option {
	return func(m *Machine) { m.prof = p }
}

// New creates a machine with a zeroed tape.
func New(opts ...Option) *Machine {
	m := &Machine{out: os.Stdout}
	for _, opt := range opts {
		opt(m)
	}
	if m.tape == nil {
		m.tape = make([]byte, config.DefaultTapeSize)
	}
	return m
}

// Tape exposes the machine's tape, mainly so callers can preset or
// inspect cells around a run.
func (m *Machine) Tape() []byte {
	return m.tape
}

// Reset rezeroes the tape and rewinds the input so the machine can run
// another program.
func (m *Machine) Reset() {
	clear(m.tape)
	m.inPos = 0
}

// wrap reduces an index into [0, n), fixing up Go's remainder for
// negative values. Wraparound is load-bearing: OP_SEEK relies on the
// cursor coming back around the finite tape.
func wrap(i, n int) int {
	i %= n
	if i < 0 {
		i += n
	}
	return i
}

// Run executes the program from address 0 until the program counter
// passes the last instruction. Runtime failures abort immediately with a
// *RuntimeError; the tape keeps whatever state the run reached.
func (m *Machine) Run(p *Program) error {
	code := p.code
	tape := m.tape
	n := len(tape)
	pc := 0
	dp := 0

	for pc < len(code) {
		in := code[pc]
		if m.prof != nil {
			m.prof.note(in.Op)
		}
		switch in.Op {
		case OP_ADD:
			tape[dp] += byte(in.Arg)
		case OP_MOVE:
			dp = wrap(dp+int(in.Arg), n)
		case OP_BRANCH_ZERO:
			if tape[dp] == 0 {
				pc = int(in.Arg)
				continue
			}
		case OP_BRANCH_NOT_ZERO:
			if tape[dp] != 0 {
				pc = int(in.Arg)
				continue
			}
		case OP_OUTPUT:
			// The cell is an opaque byte, never a decoded code point.
			if _, err := m.out.Write([]byte{tape[dp]}); err != nil {
				return &RuntimeError{PC: pc, Err: err}
			}
		case OP_INPUT:
			if m.inPos >= len(m.input) {
				return &RuntimeError{PC: pc, Err: ErrInputExhausted}
			}
			tape[dp] = m.input[m.inPos]
			m.inPos++
		case OP_CLEAR:
			tape[dp] = 0
		case OP_ADD_TO:
			to := wrap(dp+int(in.Arg), n)
			tape[to] += tape[dp]
			tape[dp] = 0
		case OP_SUB_TO:
			to := wrap(dp+int(in.Arg), n)
			tape[to] -= tape[dp]
			tape[dp] = 0
		case OP_SEEK:
			for tape[dp] != 0 {
				dp = wrap(dp+int(in.Arg), n)
			}
		}
		pc++
	}
	return nil
}
