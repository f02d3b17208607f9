// Completion: 100% - Module complete
package main

// CALL rel32. A call site whose callee body is already emitted computes its
// displacement directly; one that runs ahead of the body reserves the slot
// and parks it on the callee's pending list, patched when the body starts.

// CallTo generates call rel32 targeting a known entry offset.
func (o *Out) CallTo(entry int) {
	o.trace("call %d", entry)
	o.Write(0xE8)
	disp := int32(entry - (o.Off() + 4))
	o.code.Write32(uint32(disp))
	o.traceEnd()
}

// CallReserve generates call rel32 with a reserved displacement slot and
// returns the slot offset.
func (o *Out) CallReserve() int {
	o.trace("call <fixup>")
	o.Write(0xE8)
	slot := o.code.Reserve32()
	o.traceEnd()
	return slot
}

// PatchCall resolves a pending call-site slot to a function entry offset.
func (o *Out) PatchCall(slot, entry int) {
	o.code.Patch32(slot, uint32(int32(entry-slot-4)))
}
