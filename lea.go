// Completion: 100% - Instruction implementation complete
package main

// LEA with RIP-relative addressing, used to take the address of a string
// literal embedded in the code stream.

const leaRipLen = 7 // REX.W + opcode + ModRM + disp32

// LeaRsiRip generates lea rsi, [rip+disp32]. The displacement is relative to
// the end of this instruction.
func (o *Out) LeaRsiRip(disp int32) {
	o.trace("lea rsi, [rip%+d]", disp)
	o.Write(0x48)
	o.Write(0x8D)
	o.Write(0x35) // ModR/M 00 110 101: rsi, RIP-relative
	o.code.Write32(uint32(disp))
	o.traceEnd()
}
