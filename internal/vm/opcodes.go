// Package vm implements the Brainfuck instruction set, the optimizing
// compiler that produces it, and the machine that executes compiled
// programs against a fixed-size wrapping tape.
package vm

// Opcode represents a single VM instruction
type Opcode byte

const (
	OP_ADD             Opcode = iota // Add arg (wrapping, low byte) to the current cell
	OP_MOVE                          // Move the cursor by arg, wrapping over the tape
	OP_BRANCH_ZERO                   // Jump to arg when the current cell is zero
	OP_BRANCH_NOT_ZERO               // Jump to arg when the current cell is nonzero
	OP_OUTPUT                        // Write the current cell to the output sink
	OP_INPUT                         // Read one input byte into the current cell
	OP_CLEAR                         // Set the current cell to zero
	OP_ADD_TO                        // Add the current cell into the cell at offset arg, then zero it
	OP_SUB_TO                        // Subtract the current cell from the cell at offset arg, then zero it
	OP_SEEK                          // Advance the cursor by arg until it rests on a zero cell
)

// opcodeCount is the number of defined opcodes, for counter arrays.
const opcodeCount = int(OP_SEEK) + 1

// OpcodeNames maps opcodes to their string names (for disassembly and
// profiling output)
var OpcodeNames = map[Opcode]string{
	OP_ADD:             "ADD",
	OP_MOVE:            "MOVE",
	OP_BRANCH_ZERO:     "BRANCH_ZERO",
	OP_BRANCH_NOT_ZERO: "BRANCH_NOT_ZERO",
	OP_OUTPUT:          "OUTPUT",
	OP_INPUT:           "INPUT",
	OP_CLEAR:           "CLEAR",
	OP_ADD_TO:          "ADD_TO",
	OP_SUB_TO:          "SUB_TO",
	OP_SEEK:            "SEEK",
}

// hasArg reports whether the opcode carries a meaningful argument.
func (op Opcode) hasArg() bool {
	switch op {
	case OP_OUTPUT, OP_INPUT, OP_CLEAR:
		return false
	}
	return true
}
