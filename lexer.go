// Completion: 100% - Core scanner complete, supports all Wave tokens
package main

import (
	"fmt"
)

// Scanner walks the raw source bytes. Peek returns 0 at end of input, so EOF
// never needs a separate check in the probe loops.
type Scanner struct {
	src []byte
	pos int

	// ident holds the most recently parsed identifier, NUL-terminated.
	// At most nameBytes-1 characters are kept; the rest are consumed and
	// silently dropped, so two identifiers that differ only past byte 31
	// compare equal.
	ident symName
}

func NewScanner(src []byte) *Scanner {
	return &Scanner{src: src}
}

// Reset rewinds the scanner to the start of the source for the second pass.
func (s *Scanner) Reset() {
	s.pos = 0
}

func (s *Scanner) Peek() byte {
	if s.pos >= len(s.src) {
		return 0
	}
	return s.src[s.pos]
}

func (s *Scanner) PeekAt(k int) byte {
	if s.pos+k >= len(s.src) {
		return 0
	}
	return s.src[s.pos+k]
}

func (s *Scanner) Next() byte {
	b := s.Peek()
	if s.pos < len(s.src) {
		s.pos++
	}
	return b
}

func (s *Scanner) Advance(n int) {
	s.pos += n
	if s.pos > len(s.src) {
		s.pos = len(s.src)
	}
}

func (s *Scanner) SkipWhitespace() {
	for {
		switch s.Peek() {
		case ' ', '\t', '\r', '\n':
			s.pos++
		default:
			return
		}
	}
}

func (s *Scanner) SkipLine() {
	for {
		b := s.Next()
		if b == '\n' || b == 0 {
			return
		}
	}
}

func isIdentStart(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isIdentChar(b byte) bool {
	return isIdentStart(b) || isDigit(b) || b == '.'
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

// hasPrefix reports whether the raw bytes at the cursor spell kw, without
// advancing.
func (s *Scanner) hasPrefix(kw string) bool {
	if s.pos+len(kw) > len(s.src) {
		return false
	}
	return string(s.src[s.pos:s.pos+len(kw)]) == kw
}

// atKeyword is hasPrefix plus a delimiter check: the byte after the keyword
// must not continue an identifier. Used for keywords like "break" and "fn"
// that would otherwise shadow identifiers sharing the prefix.
func (s *Scanner) atKeyword(kw string) bool {
	return s.hasPrefix(kw) && !isIdentChar(s.PeekAt(len(kw)))
}

// ParseIdent consumes an identifier into the shared scratch slot. The caller
// must use IdentName before the next parse.
func (s *Scanner) ParseIdent() {
	s.ident = symName{}
	n := 0
	for isIdentChar(s.Peek()) {
		b := s.Next()
		if n < nameBytes-1 {
			s.ident[n] = b
			n++
		}
	}
}

// IdentName returns the current contents of the identifier scratch slot.
func (s *Scanner) IdentName() symName {
	return s.ident
}

// ParseNumber reads an optionally negative decimal integer.
func (s *Scanner) ParseNumber() int64 {
	neg := false
	if s.Peek() == '-' {
		neg = true
		s.pos++
	}
	var v int64
	for isDigit(s.Peek()) {
		v = v*10 + int64(s.Next()-'0')
	}
	if neg {
		return -v
	}
	return v
}

// ParseFixedPoint reads int[.frac] and returns the value scaled by 1000.
// Only the first three fraction digits carry weight; the rest are consumed.
func (s *Scanner) ParseFixedPoint() int64 {
	neg := false
	if s.Peek() == '-' {
		neg = true
		s.pos++
	}
	var v int64
	for isDigit(s.Peek()) {
		v = v*10 + int64(s.Next()-'0')
	}
	v *= 1000
	if s.Peek() == '.' {
		s.pos++
		scale := int64(100)
		for isDigit(s.Peek()) {
			d := int64(s.Next() - '0')
			if scale > 0 {
				v += d * scale
				scale /= 10
			}
		}
	}
	if neg {
		return -v
	}
	return v
}

func hexDigit(b byte) (byte, bool) {
	switch {
	case b >= '0' && b <= '9':
		return b - '0', true
	case b >= 'a' && b <= 'f':
		return b - 'a' + 10, true
	case b >= 'A' && b <= 'F':
		return b - 'A' + 10, true
	}
	return 0, false
}

// ParseStringLiteral consumes a double-quoted literal, decoding the escape
// set \n \t \r \0 \xHH; any other escaped byte passes through literally.
// The opening quote must be at the cursor.
func (s *Scanner) ParseStringLiteral() ([]byte, error) {
	if s.Peek() != '"' {
		return nil, newCompileError(CategorySyntax, "expected string literal")
	}
	s.pos++
	var out []byte
	for {
		b := s.Next()
		switch b {
		case 0:
			return nil, newCompileError(CategorySyntax, "unterminated string literal")
		case '"':
			return out, nil
		case '\\':
			e := s.Next()
			switch e {
			case 'n':
				out = append(out, '\n')
			case 't':
				out = append(out, '\t')
			case 'r':
				out = append(out, '\r')
			case '0':
				out = append(out, 0)
			case 'x':
				hi, ok1 := hexDigit(s.Next())
				lo, ok2 := hexDigit(s.Next())
				if !ok1 || !ok2 {
					return nil, newCompileError(CategorySyntax, "bad \\x escape in string literal")
				}
				out = append(out, hi<<4|lo)
			case 0:
				return nil, newCompileError(CategorySyntax, "unterminated string literal")
			default:
				out = append(out, e)
			}
		default:
			out = append(out, b)
		}
	}
}

// Expect consumes one byte and fails unless it matches.
func (s *Scanner) Expect(b byte) error {
	if s.Peek() != b {
		return newCompileError(CategorySyntax, fmt.Sprintf("expected %q", string(b)))
	}
	s.pos++
	return nil
}
