// compiler.go - Second-pass code generation driver
package main

// loopFrame tracks one open loop: its back-edge target and the break sites
// waiting to be patched past it.
type loopFrame struct {
	start  int
	breaks []int
}

// Compiler owns the code-generation pass. It walks the source a second time
// (after the function pre-scan) and drives the instruction emitters
// statement by statement. There is no AST and no IR.
type Compiler struct {
	sc   *Scanner
	code *CodeBuffer
	out  *Out
	syms *SymbolTables

	loops       []loopFrame
	breakFixups int

	// Compile-time configuration from unified{} and fate directives.
	// Fixed-point, value times 1000; no effect on emitted code.
	unifiedI int64
	unifiedE int64
	unifiedR int64
	fateMode bool
}

func NewCompiler(sc *Scanner, syms *SymbolTables) *Compiler {
	code := NewCodeBuffer()
	return &Compiler{
		sc:   sc,
		code: code,
		out:  NewOut(code),
		syms: syms,
	}
}

// Compile emits the whole program: the top-level prologue (the ELF entry
// point), every statement in source order, and a trailing exit(0) so that a
// program without an explicit syscall.exit still terminates cleanly.
func (c *Compiler) Compile() ([]byte, error) {
	c.out.Prologue(topFrameSize)
	for {
		c.sc.SkipWhitespace()
		if c.sc.Peek() == 0 {
			break
		}
		if err := c.compileStatement(); err != nil {
			return nil, err
		}
	}
	c.out.MovRegImm32("rax", 0)
	c.out.ExitRax()
	if c.code.Off() > codeCapacity {
		return nil, newCompileError(CategoryLimit, "code buffer overflow")
	}
	return c.code.Bytes(), nil
}
