// Package lexer turns raw source bytes into a stream of command tokens.
package lexer

import (
	"github.com/funvibe/brainfuse/internal/token"
)

// Scanner walks a source buffer and yields command tokens one at a time,
// silently skipping comment bytes. It is not rewindable; restart by
// constructing a new Scanner over the same source.
type Scanner struct {
	src    []byte
	pos    int // position of the next unread byte
	offset int // byte offset of the most recently returned token
}

func New(src []byte) *Scanner {
	return &Scanner{src: src, offset: -1}
}

// Next returns the next command token. ok is false once the source is
// exhausted.
func (s *Scanner) Next() (token.Kind, bool) {
	for s.pos < len(s.src) {
		b := s.src[s.pos]
		s.pos++
		if kind, ok := token.FromByte(b); ok {
			s.offset = s.pos - 1
			return kind, true
		}
	}
	return 0, false
}

// Offset reports the byte offset of the token most recently returned by
// Next, or -1 before the first token.
func (s *Scanner) Offset() int {
	return s.offset
}
