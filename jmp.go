// Completion: 100% - Instruction implementation complete
package main

// Branches. Forward jumps reserve their 4-byte displacement and are patched
// through PatchJump once the target offset is known; the only backward jump
// is the loop back-edge, whose displacement is computed immediately.

// JumpIfZero generates jz rel32 with a reserved displacement slot and
// returns the slot offset for patching.
func (o *Out) JumpIfZero() int {
	o.trace("jz <fixup>")
	o.Write(0x0F)
	o.Write(0x84)
	slot := o.code.Reserve32()
	o.traceEnd()
	return slot
}

// Jump generates jmp rel32 with a reserved displacement slot and returns the
// slot offset for patching.
func (o *Out) Jump() int {
	o.trace("jmp <fixup>")
	o.Write(0xE9)
	slot := o.code.Reserve32()
	o.traceEnd()
	return slot
}

// JumpBack generates jmp rel32 to an already-emitted target offset.
func (o *Out) JumpBack(target int) {
	o.trace("jmp %d", target)
	o.Write(0xE9)
	disp := int32(target - (o.Off() + 4))
	o.code.Write32(uint32(disp))
	o.traceEnd()
}

// PatchJump resolves a reserved displacement slot to the current offset:
// disp = target - slot - 4.
func (o *Out) PatchJump(slot int) {
	o.code.Patch32(slot, uint32(int32(o.Off()-slot-4)))
}
