// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rasterimg

import "testing"

func TestSubarrayDoesNotAdvanceParent(t *testing.T) {
	b := NewInputBuffer([]byte{1, 2, 3, 4, 5})
	sub, err := b.Subarray(3)
	if err != nil {
		t.Fatalf("Subarray: %v", err)
	}
	if sub.Remaining() != 3 {
		t.Errorf("sub.Remaining() = %d, want 3", sub.Remaining())
	}
	if b.Position() != 0 {
		t.Errorf("parent cursor advanced to %d, want 0", b.Position())
	}
}

func TestReadAfterPeekReturnsSameByte(t *testing.T) {
	b := NewInputBuffer([]byte{0xAB, 0xCD})
	peeked, err := b.Peek(1)
	if err != nil {
		t.Fatalf("Peek: %v", err)
	}
	peekedByte, _ := peeked.Read()

	readByte, err := b.Read()
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if readByte != peekedByte {
		t.Errorf("Read() = %#x, Peek() exposed %#x", readByte, peekedByte)
	}
}

func TestReadUint16Endianness(t *testing.T) {
	be := NewInputBufferOrder([]byte{0x01, 0x02}, true)
	v, _ := be.ReadUint16()
	if v != 0x0102 {
		t.Errorf("big-endian ReadUint16 = %#x, want 0x0102", v)
	}

	le := NewInputBufferOrder([]byte{0x01, 0x02}, false)
	v, _ = le.ReadUint16()
	if v != 0x0201 {
		t.Errorf("little-endian ReadUint16 = %#x, want 0x0201", v)
	}
}

func TestReadUint32AdvancesByFour(t *testing.T) {
	b := NewInputBuffer([]byte{0, 0, 0, 1, 0xFF})
	v, err := b.ReadUint32()
	if err != nil {
		t.Fatalf("ReadUint32: %v", err)
	}
	if v != 1 {
		t.Errorf("ReadUint32 = %d, want 1", v)
	}
	if b.Position() != 4 {
		t.Errorf("Position() = %d, want 4", b.Position())
	}
}

func TestReadUint64NoDowncast(t *testing.T) {
	b := NewInputBuffer([]byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF})
	v, err := b.ReadUint64()
	if err != nil {
		t.Fatalf("ReadUint64: %v", err)
	}
	if v != 0xFFFFFFFFFFFFFFFF {
		t.Errorf("ReadUint64 = %#x, want max uint64", v)
	}
}

func TestReadStringNulTerminated(t *testing.T) {
	b := NewInputBuffer([]byte("hi\x00rest"))
	s, err := b.ReadString()
	if err != nil {
		t.Fatalf("ReadString: %v", err)
	}
	if s != "hi" {
		t.Errorf("ReadString() = %q, want %q", s, "hi")
	}
	rest, _ := b.ReadString(4)
	if rest != "rest" {
		t.Errorf("remaining = %q, want %q", rest, "rest")
	}
}

func TestReadStringUnterminatedFails(t *testing.T) {
	b := NewInputBuffer([]byte("noterm"))
	if _, err := b.ReadString(); err == nil {
		t.Fatal("expected ErrUnterminatedString, got nil")
	}
}

func TestIndexOf(t *testing.T) {
	b := NewInputBuffer([]byte{1, 2, 0, 3})
	if idx := b.IndexOf(0); idx != 2 {
		t.Errorf("IndexOf(0) = %d, want 2", idx)
	}
	if idx := b.IndexOf(0xFF); idx != -1 {
		t.Errorf("IndexOf(missing) = %d, want -1", idx)
	}
}

func TestMemcpyMemset(t *testing.T) {
	b := NewInputBuffer(make([]byte, 8))
	b.Memset(0, 8, 0xAA)
	for i, v := range b.Bytes() {
		if v != 0xAA {
			t.Fatalf("Bytes()[%d] = %#x, want 0xAA", i, v)
		}
	}
	b.Memcpy(2, 2, []byte{1, 2})
	if b.Bytes()[2] != 1 || b.Bytes()[3] != 2 {
		t.Errorf("Memcpy result = %v", b.Bytes()[2:4])
	}
}

func TestEndOfStream(t *testing.T) {
	b := NewInputBuffer([]byte{1})
	if _, err := b.ReadUint32(); err == nil {
		t.Fatal("expected ErrEndOfStream")
	}
}
