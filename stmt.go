// stmt.go - Per-construct statement compiler
package main

// Statement dispatch is keyword-probe driven: each recognized keyword
// consumes its own source span, identifiers fall through to assignment or
// call, and anything else skips the rest of the line.

func isOutDelim(b byte) bool {
	return b == ' ' || b == '\t' || b == '"'
}

func isKwSpace(b byte) bool {
	return b == ' ' || b == '\t'
}

func (c *Compiler) compileStatement() error {
	sc := c.sc
	switch {
	case sc.Peek() == '#':
		sc.SkipLine()
		return nil
	case sc.Peek() == '-' && sc.PeekAt(1) == '>':
		sc.Advance(2)
		return c.stmtReturn()
	case sc.hasPrefix("out") && isOutDelim(sc.PeekAt(3)):
		sc.Advance(3)
		return c.stmtStringWrite()
	case sc.hasPrefix("emit"):
		sc.Advance(4)
		return c.stmtStringWrite()
	case sc.hasPrefix("byte"):
		sc.Advance(4)
		return c.stmtByte()
	case sc.hasPrefix("putchar"):
		sc.Advance(7)
		return c.stmtByte()
	case sc.hasPrefix("syscall.exit"):
		sc.Advance(12)
		return c.stmtExit()
	case sc.hasPrefix("when"):
		sc.Advance(4)
		return c.stmtWhen()
	case sc.hasPrefix("loop"):
		sc.Advance(4)
		return c.stmtLoop()
	case sc.atKeyword("break"):
		sc.Advance(5)
		return c.stmtBreak()
	case sc.hasPrefix("fn") && isKwSpace(sc.PeekAt(2)):
		sc.Advance(2)
		return c.stmtFn()
	case sc.hasPrefix("unified"):
		sc.Advance(7)
		return c.stmtUnified()
	case sc.hasPrefix("fate"):
		sc.Advance(4)
		return c.stmtFate()
	case isIdentStart(sc.Peek()):
		return c.stmtAssignOrCall()
	default:
		sc.SkipLine()
		return nil
	}
}

// compileBlock compiles statements up to and including the closing brace.
func (c *Compiler) compileBlock() error {
	for {
		c.sc.SkipWhitespace()
		switch c.sc.Peek() {
		case '}':
			c.sc.Advance(1)
			return nil
		case 0:
			return newCompileError(CategorySyntax, "missing }")
		}
		if err := c.compileStatement(); err != nil {
			return err
		}
	}
}

// stmtStringWrite handles out "STR" and emit "RAW": the decoded bytes are
// embedded in the code stream behind a jump that skips them, then written to
// stdout through a RIP-relative reference.
func (c *Compiler) stmtStringWrite() error {
	c.sc.SkipWhitespace()
	lit, err := c.sc.ParseStringLiteral()
	if err != nil {
		return err
	}
	skip := c.out.Jump()
	litStart := c.out.Off()
	c.code.WriteBytes(lit)
	c.out.PatchJump(skip)
	c.out.LeaRsiRip(int32(litStart - (c.out.Off() + leaRipLen)))
	c.out.MovRegImm32("rdx", uint32(len(lit)))
	c.out.MovRegImm32("rdi", fdStdout)
	c.out.MovRegImm32("rax", sysWrite)
	c.out.Syscall()
	return nil
}

// stmtByte handles byte(expr) and putchar(expr): the low byte of the value
// is parked on the stack and written with write(STDOUT, rsp, 1).
func (c *Compiler) stmtByte() error {
	c.sc.SkipWhitespace()
	if err := c.sc.Expect('('); err != nil {
		return err
	}
	if err := c.compileExpression(); err != nil {
		return err
	}
	if err := c.sc.Expect(')'); err != nil {
		return err
	}
	c.out.PushReg("rax")
	c.out.WriteRspByte()
	c.out.PopReg("rax")
	return nil
}

func (c *Compiler) stmtExit() error {
	c.sc.SkipWhitespace()
	if err := c.sc.Expect('('); err != nil {
		return err
	}
	if err := c.compileExpression(); err != nil {
		return err
	}
	if err := c.sc.Expect(')'); err != nil {
		return err
	}
	c.out.ExitRax()
	return nil
}

func (c *Compiler) stmtWhen() error {
	if err := c.compileExpression(); err != nil {
		return err
	}
	c.sc.SkipWhitespace()
	if err := c.sc.Expect('{'); err != nil {
		return err
	}
	c.out.TestRaxRax()
	slot := c.out.JumpIfZero()
	if err := c.compileBlock(); err != nil {
		return err
	}
	c.out.PatchJump(slot)
	return nil
}

func (c *Compiler) stmtLoop() error {
	c.sc.SkipWhitespace()
	if err := c.sc.Expect('{'); err != nil {
		return err
	}
	if len(c.loops) >= maxLoopDepth {
		return newCompileError(CategoryLimit, "loops nested too deeply")
	}
	c.loops = append(c.loops, loopFrame{start: c.out.Off()})
	if err := c.compileBlock(); err != nil {
		return err
	}
	frame := c.loops[len(c.loops)-1]
	c.loops = c.loops[:len(c.loops)-1]
	c.out.JumpBack(frame.start)
	for _, slot := range frame.breaks {
		c.out.PatchJump(slot)
	}
	return nil
}

func (c *Compiler) stmtBreak() error {
	if len(c.loops) == 0 {
		return newCompileError(CategorySyntax, "break outside loop")
	}
	if c.breakFixups >= maxFixups {
		return newCompileError(CategoryLimit, "too many break fixups")
	}
	c.breakFixups++
	frame := &c.loops[len(c.loops)-1]
	frame.breaks = append(frame.breaks, c.out.Jump())
	return nil
}

// stmtFn emits a function body in place, behind a jump that skips it. The
// entry offset patches every call site that ran ahead of the body.
func (c *Compiler) stmtFn() error {
	c.sc.SkipWhitespace()
	if !isIdentStart(c.sc.Peek()) {
		return newCompileError(CategorySyntax, "expected function name")
	}
	c.sc.ParseIdent()
	name := c.sc.IdentName()

	var params []symName
	for {
		c.sc.SkipWhitespace()
		if c.sc.Peek() == '{' {
			break
		}
		if !isIdentStart(c.sc.Peek()) {
			return newCompileError(CategorySyntax, "expected parameter name")
		}
		if len(params) >= maxParams {
			return newCompileError(CategoryLimit, "too many parameters")
		}
		c.sc.ParseIdent()
		params = append(params, c.sc.IdentName())
	}
	c.sc.Advance(1) // {

	skip := c.out.Jump()
	entry := c.out.Off()

	fn := c.syms.LookupFunc(name)
	if fn == nil {
		return newCompileError(CategoryCodegen, "function not pre-scanned: "+name.String())
	}
	fn.codeOffset = entry
	for _, slot := range fn.pendingCalls {
		c.out.PatchCall(slot, entry)
	}
	fn.pendingCalls = nil

	c.out.Prologue(funcFrameSize)
	for i, p := range params {
		if i >= len(argRegs) {
			break
		}
		off := int32(8 * (i + 1))
		c.out.StoreArgToFrame(argRegs[i], -off)
		if err := c.syms.DefineParam(p, off); err != nil {
			return err
		}
	}

	if err := c.compileBlock(); err != nil {
		return err
	}

	// Default zero return for bodies that fall off the end.
	c.out.MovRegImm32("rax", 0)
	c.out.Epilogue(funcFrameSize)
	c.out.PatchJump(skip)
	return nil
}

// stmtReturn handles -> EXPR.
func (c *Compiler) stmtReturn() error {
	if err := c.compileExpression(); err != nil {
		return err
	}
	c.out.Epilogue(funcFrameSize)
	return nil
}

// stmtAssignOrCall handles NAME = EXPR and NAME(args...), and skips the line
// for anything else starting with an identifier.
func (c *Compiler) stmtAssignOrCall() error {
	c.sc.ParseIdent()
	name := c.sc.IdentName()
	c.sc.SkipWhitespace()
	switch {
	case c.sc.Peek() == '=' && c.sc.PeekAt(1) != '=':
		c.sc.Advance(1)
		if err := c.compileExpression(); err != nil {
			return err
		}
		off, err := c.syms.DefineVar(name)
		if err != nil {
			return err
		}
		c.out.StoreLocal(-off)
		return nil
	case c.sc.Peek() == '(':
		return c.compileCall(name)
	default:
		c.sc.SkipLine()
		return nil
	}
}

// stmtUnified parses unified { i: F, e: F, r: F } into the fixed-point
// compile-time state. No code is emitted.
func (c *Compiler) stmtUnified() error {
	c.sc.SkipWhitespace()
	if err := c.sc.Expect('{'); err != nil {
		return err
	}
	for {
		c.sc.SkipWhitespace()
		if c.sc.Peek() == '}' {
			c.sc.Advance(1)
			return nil
		}
		if !isIdentStart(c.sc.Peek()) {
			return newCompileError(CategorySyntax, "expected unified field name")
		}
		c.sc.ParseIdent()
		key := c.sc.IdentName()
		c.sc.SkipWhitespace()
		if err := c.sc.Expect(':'); err != nil {
			return err
		}
		c.sc.SkipWhitespace()
		v := c.sc.ParseFixedPoint()
		switch key {
		case makeName("i"):
			c.unifiedI = v
		case makeName("e"):
			c.unifiedE = v
		case makeName("r"):
			c.unifiedR = v
		default:
			return newCompileError(CategorySyntax, "unknown unified field "+key.String())
		}
		c.sc.SkipWhitespace()
		if c.sc.Peek() == ',' {
			c.sc.Advance(1)
		}
	}
}

// stmtFate parses fate on|off. Compile-time state only.
func (c *Compiler) stmtFate() error {
	c.sc.SkipWhitespace()
	if !isIdentStart(c.sc.Peek()) {
		return newCompileError(CategorySyntax, "expected on or off after fate")
	}
	c.sc.ParseIdent()
	switch c.sc.IdentName() {
	case makeName("on"):
		c.fateMode = true
	case makeName("off"):
		c.fateMode = false
	default:
		return newCompileError(CategorySyntax, "expected on or off after fate")
	}
	return nil
}
