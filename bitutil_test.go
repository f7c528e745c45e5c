// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rasterimg

import (
	"math"
	"testing"
)

func TestReinterpretRoundTrip(t *testing.T) {
	if got := int8FromUint8(0xFF); got != -1 {
		t.Errorf("int8FromUint8(0xFF) = %d, want -1", got)
	}
	if got := int16FromUint16(0xFFFF); got != -1 {
		t.Errorf("int16FromUint16(0xFFFF) = %d, want -1", got)
	}
	if got := int32FromUint32(0xFFFFFFFF); got != -1 {
		t.Errorf("int32FromUint32(0xFFFFFFFF) = %d, want -1", got)
	}
	bits := bitsFromFloat32(3.25)
	if got := float32FromBits(bits); got != 3.25 {
		t.Errorf("float32 round trip = %v, want 3.25", got)
	}
	bits64 := bitsFromFloat64(3.25)
	if got := float64FromBits(bits64); got != 3.25 {
		t.Errorf("float64 round trip = %v, want 3.25", got)
	}
}

func TestReverseBitsInByte(t *testing.T) {
	tests := []struct{ in, want byte }{
		{0x01, 0x80},
		{0x80, 0x01},
		{0xF0, 0x0F},
		{0b10110000, 0b00001101},
	}
	for _, tt := range tests {
		if got := reverseBitsInByte(tt.in); got != tt.want {
			t.Errorf("reverseBitsInByte(%08b) = %08b, want %08b", tt.in, got, tt.want)
		}
	}
}

func TestReverseBitsInPlace(t *testing.T) {
	buf := []byte{0x01, 0x80}
	reverseBitsInPlace(buf)
	if buf[0] != 0x80 || buf[1] != 0x01 {
		t.Errorf("reverseBitsInPlace result = %v, want [0x80 0x01]", buf)
	}
}

func TestTrailingZeros32(t *testing.T) {
	tests := []struct {
		v    uint32
		want int
	}{
		{0, 32},
		{1, 0},
		{8, 3},
		{1 << 31, 31},
	}
	for _, tt := range tests {
		if got := trailingZeros32(tt.v); got != tt.want {
			t.Errorf("trailingZeros32(%d) = %d, want %d", tt.v, got, tt.want)
		}
	}
}

func TestHalfFloatRoundTrip(t *testing.T) {
	tests := []float32{0, 1, -1, 0.5, 2.5, 65504}
	for _, f := range tests {
		h := float32ToHalf(f)
		back := halfToFloat32(h)
		if math.Abs(float64(back-f)) > 0.01 {
			t.Errorf("half round trip for %v = %v", f, back)
		}
	}
}
