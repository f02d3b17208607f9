package main

import (
	"bytes"
	"testing"
)

func TestWriteLittleEndian(t *testing.T) {
	cb := NewCodeBuffer()
	cb.Write(0x90)
	cb.Write24(0x010203)
	cb.Write32(0xAABBCCDD)
	cb.Write64(0x1122334455667788)

	want := []byte{
		0x90,
		0x03, 0x02, 0x01,
		0xDD, 0xCC, 0xBB, 0xAA,
		0x88, 0x77, 0x66, 0x55, 0x44, 0x33, 0x22, 0x11,
	}
	if !bytes.Equal(cb.Bytes(), want) {
		t.Errorf("buffer = % x, want % x", cb.Bytes(), want)
	}
	if cb.Off() != len(want) {
		t.Errorf("Off() = %d, want %d", cb.Off(), len(want))
	}
}

func TestReservePatch(t *testing.T) {
	cb := NewCodeBuffer()
	cb.Write(0xE9)
	slot := cb.Reserve32()
	if slot != 1 {
		t.Fatalf("slot = %d, want 1", slot)
	}
	cb.Write(0xC3)
	cb.Patch32(slot, 0xDEADBEEF)

	want := []byte{0xE9, 0xEF, 0xBE, 0xAD, 0xDE, 0xC3}
	if !bytes.Equal(cb.Bytes(), want) {
		t.Errorf("buffer = % x, want % x", cb.Bytes(), want)
	}
}

func TestReserveIsZeroFilled(t *testing.T) {
	cb := NewCodeBuffer()
	cb.Reserve32()
	if !bytes.Equal(cb.Bytes(), []byte{0, 0, 0, 0}) {
		t.Errorf("reserved slot = % x, want zeros", cb.Bytes())
	}
}
