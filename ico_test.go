// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rasterimg

import "testing"

func TestIcoStartDecodeEntryTable(t *testing.T) {
	// ICONDIR (6 bytes) + one ICONDIRENTRY (16 bytes).
	data := []byte{
		0x00, 0x00, 0x01, 0x00, // reserved, type=1 (icon)
		0x01, 0x00, // count=1
		16, 16, // width, height
		0x00,       // color count
		0x00,       // reserved
		0x01, 0x00, // planes
		0x20, 0x00, // bit count = 32
		0x28, 0x00, 0x00, 0x00, // bytesInRes = 40
		0x16, 0x00, 0x00, 0x00, // imageOffset = 22
	}
	c := &icoCodec{}
	info, err := c.startDecode(data)
	if err != nil {
		t.Fatalf("startDecode: %v", err)
	}
	if info.Width != 16 || info.Height != 16 || info.NumFrames != 1 {
		t.Errorf("info = %+v, want 16x16, 1 frame", info)
	}
	if len(c.entries) != 1 || c.entries[0].imageOffset != 22 || c.entries[0].bytesInRes != 40 {
		t.Errorf("parsed entry = %+v", c.entries[0])
	}
}

func TestIcoInvalidSignature(t *testing.T) {
	c := &icoCodec{}
	if c.isValidFile([]byte{0x01, 0x02, 0x03, 0x04}) {
		t.Fatal("expected isValidFile false for non-ICO data")
	}
}
