package vm

import (
	"errors"
	"fmt"

	"github.com/funvibe/brainfuse/internal/lexer"
	"github.com/funvibe/brainfuse/internal/token"
)

var ErrExtraOpen = errors.New("unmatched '['")
var ErrExtraClose = errors.New("unmatched ']'")

// CompileError reports a bracket mismatch at a byte offset in the source.
// It unwraps to ErrExtraOpen or ErrExtraClose.
type CompileError struct {
	Offset int
	Err    error
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("compile error at offset %d: %s", e.Offset, e.Err)
}

func (e *CompileError) Unwrap() error {
	return e.Err
}

// CompileOptions selects which rewrites the compiler applies while
// emitting. The zero value disables all of them, giving one instruction
// per command token with structural loops only.
type CompileOptions struct {
	// Coalesce merges runs of +/- and >/< into a single instruction by
	// wrapping addition, and removes instructions whose delta or offset
	// cancels to zero.
	Coalesce bool

	// FuseLoops rewrites recognized loop idioms (clear, copy/subtract,
	// seek) into single instructions when a loop closes.
	FuseLoops bool
}

// openLoop records a pending '[': the address of its placeholder branch
// and the source offset of the bracket, kept for error reporting.
type openLoop struct {
	addr   int
	offset int
}

// Compiler translates a token stream into an address-resolved Program.
// Rewrites are applied incrementally after every emission, never as a
// separate pass, so the look-behind window is bounded by the innermost
// open loop.
type Compiler struct {
	opts    CompileOptions
	program *Program
	open    []openLoop
}

// NewCompiler creates a compiler with the given options.
func NewCompiler(opts CompileOptions) *Compiler {
	return &Compiler{opts: opts}
}

// Compile translates source bytes into a Program with the full rewrite
// set enabled. On failure no partial Program is returned.
func Compile(src []byte) (*Program, error) {
	return NewCompiler(CompileOptions{Coalesce: true, FuseLoops: true}).Compile(src)
}

// Compile consumes the whole source and returns the compiled Program, or
// a *CompileError when brackets are unbalanced.
func (c *Compiler) Compile(src []byte) (*Program, error) {
	c.program = NewProgram()
	c.open = c.open[:0]

	sc := lexer.New(src)
	for {
		kind, ok := sc.Next()
		if !ok {
			break
		}
		switch kind {
		case token.INC:
			c.addCell(1)
		case token.DEC:
			c.addCell(-1)
		case token.RIGHT:
			c.moveCursor(1)
		case token.LEFT:
			c.moveCursor(-1)
		case token.OPEN:
			c.open = append(c.open, openLoop{addr: c.program.Len(), offset: sc.Offset()})
			c.program.Emit(OP_BRANCH_ZERO, 0)
		case token.CLOSE:
			if len(c.open) == 0 {
				return nil, &CompileError{Offset: sc.Offset(), Err: ErrExtraClose}
			}
			open := c.open[len(c.open)-1]
			c.open = c.open[:len(c.open)-1]
			c.closeLoop(open.addr)
		case token.OUT:
			c.program.Emit(OP_OUTPUT, 0)
		case token.IN:
			c.program.Emit(OP_INPUT, 0)
		}
	}

	if len(c.open) > 0 {
		return nil, &CompileError{Offset: c.open[len(c.open)-1].offset, Err: ErrExtraOpen}
	}

	p := c.program
	c.program = nil
	return p, nil
}

// addCell emits or merges a cell delta. Deltas wrap at 8 bits; a merged
// delta of zero cancels the instruction entirely.
func (c *Compiler) addCell(delta int8) {
	if c.opts.Coalesce {
		if last, ok := c.program.Last(); ok && last.Op == OP_ADD {
			merged := int8(last.Arg) + delta
			if merged == 0 {
				c.program.Truncate(c.program.Len() - 1)
			} else {
				c.program.Patch(c.program.Len()-1, int32(merged))
			}
			return
		}
	}
	c.program.Emit(OP_ADD, int32(delta))
}

// moveCursor emits or merges a cursor offset, cancelling on zero.
func (c *Compiler) moveCursor(delta int32) {
	if c.opts.Coalesce {
		if last, ok := c.program.Last(); ok && last.Op == OP_MOVE {
			merged := last.Arg + delta
			if merged == 0 {
				c.program.Truncate(c.program.Len() - 1)
			} else {
				c.program.Patch(c.program.Len()-1, merged)
			}
			return
		}
	}
	c.program.Emit(OP_MOVE, int32(delta))
}

// closeLoop resolves the loop whose placeholder sits at open. A matched
// idiom replaces the whole loop, placeholder included, with one fused
// instruction; fusion only ever fires at the innermost, most recently
// closed loop, so no already-resolved jump can point into the truncated
// region. Otherwise the placeholder is patched to the address following
// the closing branch and the branch pair is kept.
func (c *Compiler) closeLoop(open int) {
	if c.opts.FuseLoops {
		if op, arg, ok := c.matchIdiom(open); ok {
			c.program.Truncate(open)
			c.program.Emit(op, arg)
			return
		}
	}
	here := c.program.Len()
	c.program.Patch(open, int32(here+1))
	c.program.Emit(OP_BRANCH_NOT_ZERO, int32(open))
}

// matchIdiom inspects the body of the loop opened at open against the
// ordered idiom table. First match wins:
//
//	[-]          CLEAR
//	[->+<] etc.  ADD_TO(x)
//	[->-<] etc.  SUB_TO(x)
//	[>] etc.     SEEK(x)
func (c *Compiler) matchIdiom(open int) (Opcode, int32, bool) {
	body := c.program.code[open+1:]
	switch len(body) {
	case 1:
		in := body[0]
		if in.Op == OP_ADD && int8(in.Arg) == -1 {
			return OP_CLEAR, 0, true
		}
		if in.Op == OP_MOVE && in.Arg != 0 {
			return OP_SEEK, in.Arg, true
		}
	case 4:
		if body[0].Op == OP_ADD && int8(body[0].Arg) == -1 &&
			body[1].Op == OP_MOVE &&
			body[2].Op == OP_ADD &&
			body[3].Op == OP_MOVE && body[3].Arg == -body[1].Arg {
			switch int8(body[2].Arg) {
			case 1:
				return OP_ADD_TO, body[1].Arg, true
			case -1:
				return OP_SUB_TO, body[1].Arg, true
			}
		}
	}
	return 0, 0, false
}
