// Completion: 100% - Platform support complete
package main

import (
	"fmt"
	"os"
)

const (
	// ELF structure sizes
	elfHeaderSize  = 64 // ELF64 header size
	progHeaderSize = 56 // Program header entry size (ELF64)
	headerSize     = elfHeaderSize + progHeaderSize

	// Memory layout
	defaultBaseAddr = 0x400000 // Virtual base address
	pageSize        = 0x1000   // 4KB page alignment

	// Program header offset (immediately after ELF header)
	progHeaderOffset = 0x40
)

// elfImage wraps the raw code in a minimal ELF64 executable: the 64-byte
// header, exactly one PT_LOAD program header mapping the whole file RWX, and
// the code itself. The entry point is the first code byte, at base+0x78.
func elfImage(code []byte, baseAddr uint64) []byte {
	img := NewCodeBuffer()
	w := img

	if VerboseMode {
		fmt.Fprintf(os.Stderr, "elfImage: text=%d bytes, base=0x%x\n", len(code), baseAddr)
	}

	// Magic and identification
	w.Write(0x7f)
	w.Write(0x45) // E
	w.Write(0x4c) // L
	w.Write(0x46) // F
	w.Write(2)    // 64-bit
	w.Write(1)    // little endian
	w.Write(1)    // ELF version
	w.Write(0)    // System V ABI
	for i := 0; i < 8; i++ {
		w.Write(0) // padding
	}

	w.Write(2) // e_type: executable
	w.Write(0)
	w.Write(0x3E) // e_machine: x86-64
	w.Write(0)
	w.Write32(1) // e_version

	entry := baseAddr + headerSize
	w.Write64(entry)
	w.Write64(progHeaderOffset) // e_phoff
	w.Write64(0)                // e_shoff: no section table
	w.Write32(0)                // e_flags
	w.Write(elfHeaderSize)      // e_ehsize
	w.Write(0)
	w.Write(progHeaderSize) // e_phentsize
	w.Write(0)
	w.Write(1) // e_phnum
	w.Write(0)
	w.Write(64) // e_shentsize
	w.Write(0)
	w.Write(0) // e_shnum
	w.Write(0)
	w.Write(0) // e_shstrndx
	w.Write(0)

	if VerboseMode {
		fmt.Fprintln(os.Stderr)
	}

	// Program header: one PT_LOAD covering the entire file
	w.Write32(1) // p_type: PT_LOAD
	w.Write32(7) // p_flags: R|W|X
	w.Write64(0) // p_offset
	w.Write64(baseAddr)
	w.Write64(baseAddr)
	fileSize := uint64(headerSize + len(code))
	w.Write64(fileSize) // p_filesz
	w.Write64(fileSize) // p_memsz
	w.Write64(pageSize) // p_align

	w.WriteBytes(code)

	if VerboseMode {
		fmt.Fprintln(os.Stderr)
	}

	return w.Bytes()
}
