// out.go - Emitter handle over the code buffer
package main

import (
	"fmt"
	"os"
)

// x86-64 general purpose register encodings used by the emitters. Only the
// low eight registers appear in generated code, so no REX.B/REX.R extension
// handling is needed anywhere.
var gpReg = map[string]uint8{
	"rax": 0,
	"rcx": 1,
	"rdx": 2,
	"rbx": 3,
	"rsp": 4,
	"rbp": 5,
	"rsi": 6,
	"rdi": 7,
}

// Out emits x86-64 instruction encodings into a CodeBuffer. One method per
// mnemonic shape; every method is a fixed byte sequence.
type Out struct {
	code *CodeBuffer
}

func NewOut(code *CodeBuffer) *Out {
	return &Out{code: code}
}

func (o *Out) Write(b byte) {
	o.code.Write(b)
}

func (o *Out) Off() int {
	return o.code.Off()
}

func (o *Out) trace(format string, a ...any) {
	if VerboseMode {
		fmt.Fprintf(os.Stderr, format+":", a...)
	}
}

func (o *Out) traceEnd() {
	if VerboseMode {
		fmt.Fprintln(os.Stderr)
	}
}
