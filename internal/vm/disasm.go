package vm

import (
	"fmt"
	"strings"
)

// Disassemble returns a human-readable listing of the program
func Disassemble(p *Program, name string) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("== %s ==\n", name))

	for addr, in := range p.code {
		disassembleInstruction(&sb, addr, in)
	}

	return sb.String()
}

func disassembleInstruction(sb *strings.Builder, addr int, in Instruction) {
	name, ok := OpcodeNames[in.Op]
	if !ok {
		name = fmt.Sprintf("UNKNOWN(%d)", in.Op)
	}
	if in.Op.hasArg() {
		sb.WriteString(fmt.Sprintf("%04d %-16s %d\n", addr, name, in.Arg))
	} else {
		sb.WriteString(fmt.Sprintf("%04d %s\n", addr, name))
	}
}
