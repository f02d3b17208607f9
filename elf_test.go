package main

import (
	"bytes"
	"debug/elf"
	"encoding/binary"
	"testing"
)

func buildImage(t *testing.T, source string) []byte {
	t.Helper()
	img, err := CompileWave([]byte(source), defaultBaseAddr)
	if err != nil {
		t.Fatalf("CompileWave: %v", err)
	}
	return img
}

func TestELFMagicNumber(t *testing.T) {
	img := buildImage(t, `syscall.exit(0)`)
	if len(img) < 4 {
		t.Fatal("ELF too small")
	}
	if img[0] != 0x7f || img[1] != 'E' || img[2] != 'L' || img[3] != 'F' {
		t.Fatal("Invalid ELF magic number")
	}
}

func TestELFIdent(t *testing.T) {
	img := buildImage(t, "")
	if img[4] != 2 {
		t.Errorf("Expected 64-bit ELF (class=2), got class=%d", img[4])
	}
	if img[5] != 1 {
		t.Errorf("Expected little-endian (1), got %d", img[5])
	}
	if img[6] != 1 {
		t.Errorf("Expected ELF version 1, got %d", img[6])
	}
	if img[7] != 0 {
		t.Errorf("Expected System V OS/ABI (0), got %d", img[7])
	}
	for i := 8; i < 16; i++ {
		if img[i] != 0 {
			t.Errorf("e_ident[%d] = %d, want 0", i, img[i])
		}
	}
}

func TestELFHeaderFields(t *testing.T) {
	img := buildImage(t, "")
	if typ := binary.LittleEndian.Uint16(img[16:18]); typ != 2 {
		t.Errorf("e_type = %d, want 2 (executable)", typ)
	}
	if mach := binary.LittleEndian.Uint16(img[18:20]); mach != 0x3E {
		t.Errorf("e_machine = %#x, want 0x3e (x86-64)", mach)
	}
	if entry := binary.LittleEndian.Uint64(img[24:32]); entry != defaultBaseAddr+0x78 {
		t.Errorf("e_entry = %#x, want %#x", entry, uint64(defaultBaseAddr+0x78))
	}
	if phoff := binary.LittleEndian.Uint64(img[32:40]); phoff != 0x40 {
		t.Errorf("e_phoff = %#x, want 0x40", phoff)
	}
	if shoff := binary.LittleEndian.Uint64(img[40:48]); shoff != 0 {
		t.Errorf("e_shoff = %d, want 0", shoff)
	}
	if phnum := binary.LittleEndian.Uint16(img[56:58]); phnum != 1 {
		t.Errorf("e_phnum = %d, want 1", phnum)
	}
}

func TestProgramHeader(t *testing.T) {
	img := buildImage(t, `out "x"`)
	ph := img[0x40:]
	if typ := binary.LittleEndian.Uint32(ph[0:4]); typ != 1 {
		t.Errorf("p_type = %d, want PT_LOAD", typ)
	}
	if flags := binary.LittleEndian.Uint32(ph[4:8]); flags != 7 {
		t.Errorf("p_flags = %d, want R|W|X", flags)
	}
	if off := binary.LittleEndian.Uint64(ph[8:16]); off != 0 {
		t.Errorf("p_offset = %d, want 0", off)
	}
	if vaddr := binary.LittleEndian.Uint64(ph[16:24]); vaddr != defaultBaseAddr {
		t.Errorf("p_vaddr = %#x, want %#x", vaddr, uint64(defaultBaseAddr))
	}
	filesz := binary.LittleEndian.Uint64(ph[32:40])
	memsz := binary.LittleEndian.Uint64(ph[40:48])
	if filesz != uint64(len(img)) {
		t.Errorf("p_filesz = %d, want %d (the whole file)", filesz, len(img))
	}
	if memsz != filesz {
		t.Errorf("p_memsz = %d, want %d", memsz, filesz)
	}
	if align := binary.LittleEndian.Uint64(ph[48:56]); align != pageSize {
		t.Errorf("p_align = %#x, want %#x", align, pageSize)
	}
}

func TestEntryPointsAtCode(t *testing.T) {
	img := buildImage(t, "")
	entry := binary.LittleEndian.Uint64(img[24:32])
	vaddr := binary.LittleEndian.Uint64(img[0x40+16 : 0x40+24])
	if entry-vaddr != headerSize {
		t.Errorf("e_entry - p_vaddr = %#x, want 0x78", entry-vaddr)
	}
	// The first code byte is the global prologue's push rbp.
	if img[headerSize] != 0x55 {
		t.Errorf("byte at entry = %#x, want push rbp", img[headerSize])
	}
}

func TestCustomBaseAddress(t *testing.T) {
	img := elfImage([]byte{0xC3}, 0x500000)
	if entry := binary.LittleEndian.Uint64(img[24:32]); entry != 0x500078 {
		t.Errorf("e_entry = %#x, want 0x500078", entry)
	}
}

func TestDebugElfParses(t *testing.T) {
	img := buildImage(t, `out "Hello\n"`+"\nsyscall.exit(0)")
	f, err := elf.NewFile(bytes.NewReader(img))
	if err != nil {
		t.Fatalf("debug/elf rejects the image: %v", err)
	}
	defer f.Close()
	if f.Type != elf.ET_EXEC {
		t.Errorf("Type = %v, want ET_EXEC", f.Type)
	}
	if f.Machine != elf.EM_X86_64 {
		t.Errorf("Machine = %v, want EM_X86_64", f.Machine)
	}
	if len(f.Progs) != 1 {
		t.Fatalf("Progs = %d, want 1", len(f.Progs))
	}
	p := f.Progs[0]
	if p.Type != elf.PT_LOAD {
		t.Errorf("prog type = %v, want PT_LOAD", p.Type)
	}
	if p.Filesz != uint64(len(img)) {
		t.Errorf("prog filesz = %d, want %d", p.Filesz, len(img))
	}
}
