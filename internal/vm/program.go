package vm

// Instruction is one decoded VM instruction. Its position in a Program is
// its address; branch arguments are absolute addresses, never offsets.
type Instruction struct {
	Op  Opcode
	Arg int32
}

// Program is an address-resolved instruction sequence. During compilation
// it is append-only apart from bounded backward truncation by the fusion
// rules; once the compiler returns it, it is immutable and may be executed
// any number of times.
//
// Invariant: every OP_BRANCH_ZERO targets the address immediately after
// its matching OP_BRANCH_NOT_ZERO, and every OP_BRANCH_NOT_ZERO targets
// its matching OP_BRANCH_ZERO.
type Program struct {
	code []Instruction
}

// NewProgram creates a new empty program
func NewProgram() *Program {
	return &Program{code: make([]Instruction, 0, 256)}
}

// Emit appends an instruction and returns its address.
func (p *Program) Emit(op Opcode, arg int32) int {
	p.code = append(p.code, Instruction{Op: op, Arg: arg})
	return len(p.code) - 1
}

// Patch rewrites the argument of the instruction at addr.
func (p *Program) Patch(addr int, arg int32) {
	p.code[addr].Arg = arg
}

// Truncate discards every instruction at address n and beyond.
func (p *Program) Truncate(n int) {
	p.code = p.code[:n]
}

// Len returns the number of instructions, which is also the address the
// next emitted instruction will occupy.
func (p *Program) Len() int {
	return len(p.code)
}

// At returns the instruction at addr.
func (p *Program) At(addr int) Instruction {
	return p.code[addr]
}

// Last returns the most recently emitted instruction, if any.
func (p *Program) Last() (Instruction, bool) {
	if len(p.code) == 0 {
		return Instruction{}, false
	}
	return p.code[len(p.code)-1], true
}

// Instructions exposes the instruction sequence. Callers must treat it as
// read-only.
func (p *Program) Instructions() []Instruction {
	return p.code
}
