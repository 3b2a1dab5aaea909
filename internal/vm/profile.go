package vm

import (
	"fmt"
	"strings"
)

// Profile accumulates per-opcode execution counters for runs it is
// attached to with WithProfile. It is plain data, explicitly constructed
// by the caller; there is no global collector.
type Profile struct {
	Ops   [opcodeCount]uint64
	Steps uint64
}

func (p *Profile) note(op Opcode) {
	p.Ops[op]++
	p.Steps++
}

// Reset zeroes all counters.
func (p *Profile) Reset() {
	*p = Profile{}
}

// String renders one line per executed opcode, in instruction-set order.
func (p *Profile) String() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("steps: %d\n", p.Steps))
	for op := 0; op < opcodeCount; op++ {
		if p.Ops[op] == 0 {
			continue
		}
		sb.WriteString(fmt.Sprintf("%-16s %d\n", OpcodeNames[Opcode(op)], p.Ops[op]))
	}
	return sb.String()
}
