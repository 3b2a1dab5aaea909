// Package token defines the eight Brainfuck command tokens.
package token

// Kind identifies one of the eight Brainfuck commands.
type Kind int

const (
	INC   Kind = iota // + increment the current cell
	DEC               // - decrement the current cell
	RIGHT             // > move the cursor right
	LEFT              // < move the cursor left
	OPEN              // [ loop open
	CLOSE             // ] loop close
	OUT               // . write the current cell
	IN                // , read into the current cell
)

var kindNames = map[Kind]string{
	INC:   "INC",
	DEC:   "DEC",
	RIGHT: "RIGHT",
	LEFT:  "LEFT",
	OPEN:  "OPEN",
	CLOSE: "CLOSE",
	OUT:   "OUT",
	IN:    "IN",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "UNKNOWN"
}

// FromByte maps a source byte to its command kind. Every non-command byte
// reports ok=false; Brainfuck treats those as comments.
func FromByte(b byte) (Kind, bool) {
	switch b {
	case '+':
		return INC, true
	case '-':
		return DEC, true
	case '>':
		return RIGHT, true
	case '<':
		return LEFT, true
	case '[':
		return OPEN, true
	case ']':
		return CLOSE, true
	case '.':
		return OUT, true
	case ',':
		return IN, true
	}
	return 0, false
}
