// prescan.go - First pass over the source collecting function declarations
package main

// Prescan walks the source once before code generation, recording every
// fn NAME PARAM... declaration (name, parameter names, arity) and skipping
// the body by brace-depth counting. This lets a call site compile before its
// callee's body has been reached. Entry offsets are filled in by the second
// pass; here they stay at the not-yet-emitted sentinel. The cursor is left
// rewound to the start of the source.
func Prescan(sc *Scanner, syms *SymbolTables) error {
	for {
		sc.SkipWhitespace()
		b := sc.Peek()
		switch {
		case b == 0:
			sc.Reset()
			return nil
		case b == '#':
			sc.SkipLine()
		case b == '"':
			if _, err := sc.ParseStringLiteral(); err != nil {
				return err
			}
		case sc.hasPrefix("fn") && isKwSpace(sc.PeekAt(2)):
			sc.Advance(2)
			if err := prescanFn(sc, syms); err != nil {
				return err
			}
		case isIdentStart(b):
			sc.ParseIdent()
		default:
			sc.Advance(1)
		}
	}
}

func prescanFn(sc *Scanner, syms *SymbolTables) error {
	sc.SkipWhitespace()
	if !isIdentStart(sc.Peek()) {
		return newCompileError(CategorySyntax, "expected function name")
	}
	sc.ParseIdent()
	fn, err := syms.DeclareFunc(sc.IdentName())
	if err != nil {
		return err
	}
	for {
		sc.SkipWhitespace()
		if sc.Peek() == '{' {
			break
		}
		if !isIdentStart(sc.Peek()) {
			return newCompileError(CategorySyntax, "expected parameter name")
		}
		if fn.paramCount >= maxParams {
			return newCompileError(CategoryLimit, "too many parameters")
		}
		sc.ParseIdent()
		fn.params[fn.paramCount] = sc.IdentName()
		fn.paramCount++
	}
	return skipBody(sc)
}

// skipBody consumes a brace-balanced body, ignoring braces inside comments
// and string literals. The opening brace must be at the cursor.
func skipBody(sc *Scanner) error {
	sc.Advance(1)
	depth := 1
	for depth > 0 {
		switch sc.Peek() {
		case 0:
			return newCompileError(CategorySyntax, "missing }")
		case '#':
			sc.SkipLine()
		case '"':
			if _, err := sc.ParseStringLiteral(); err != nil {
				return err
			}
		case '{':
			depth++
			sc.Advance(1)
		case '}':
			depth--
			sc.Advance(1)
		default:
			sc.Advance(1)
		}
	}
	return nil
}
