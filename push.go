// Completion: 100% - Instruction implementation complete
package main

// PUSH/POP in the compact one-byte encodings. The expression compiler uses
// the machine stack to stash left operands; byte() and getchar() borrow one
// slot as an I/O buffer.

// PushReg generates push reg (0x50+reg).
func (o *Out) PushReg(reg string) {
	o.trace("push %s", reg)
	o.Write(0x50 + gpReg[reg])
	o.traceEnd()
}

// PopReg generates pop reg (0x58+reg).
func (o *Out) PopReg(reg string) {
	o.trace("pop %s", reg)
	o.Write(0x58 + gpReg[reg])
	o.traceEnd()
}
