// frame.go - Stack frame setup and teardown
package main

// Frame sizes are fixed: every function reserves funcFrameSize bytes and the
// top-level program reserves topFrameSize, regardless of how many slots are
// actually used.
const (
	topFrameSize  = 0x2000
	funcFrameSize = 0x400
)

// argRegs lists the SysV argument registers in call order. Only the first
// four are supported.
var argRegs = [4]string{"rdi", "rsi", "rdx", "rcx"}

// Prologue generates push rbp; mov rbp, rsp; sub rsp, size.
func (o *Out) Prologue(size uint32) {
	o.trace("push rbp")
	o.Write(0x55)
	o.traceEnd()
	o.trace("mov rbp, rsp")
	o.Write(0x48)
	o.Write(0x89)
	o.Write(0xE5)
	o.traceEnd()
	o.trace("sub rsp, %d", size)
	o.Write(0x48)
	o.Write(0x81)
	o.Write(0xEC)
	o.code.Write32(size)
	o.traceEnd()
}

// Epilogue generates add rsp, size; pop rbp; ret.
func (o *Out) Epilogue(size uint32) {
	o.trace("add rsp, %d", size)
	o.Write(0x48)
	o.Write(0x81)
	o.Write(0xC4)
	o.code.Write32(size)
	o.traceEnd()
	o.trace("pop rbp")
	o.Write(0x5D)
	o.traceEnd()
	o.trace("ret")
	o.Write(0xC3)
	o.traceEnd()
}
