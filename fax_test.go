// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rasterimg

import (
	"errors"
	"testing"
)

// TestFaxT4OneDimAllWhiteRow covers an EOL code followed
// by the white-run terminating code for 8, in a width-8 one-dimensional
// row, decodes to an all-white row (all output bits 0).
func TestFaxT4OneDimAllWhiteRow(t *testing.T) {
	// EOL (0000 0000 0001) + white run-8 code (10011), zero-padded to 4
	// bytes so the run-table lookahead has enough bits to peek.
	data := []byte{0x00, 0x19, 0x80, 0x00}

	out, err := DecodeFax(data, FaxParams{
		Compression: FaxCompressionT4OneDim,
		Columns:     8,
		Rows:        1,
		FillOrder:   1,
	})
	if err != nil {
		t.Fatalf("DecodeFax: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("len(out) = %d, want 1", len(out))
	}
	if out[0] != 0x00 {
		t.Errorf("out[0] = %#x, want 0x00 (all white)", out[0])
	}
}

func TestFaxUnsupportedCompression(t *testing.T) {
	_, err := DecodeFax([]byte{0}, FaxParams{Compression: 99, Columns: 8, Rows: 1})
	if err == nil {
		t.Fatal("expected error for unsupported compression mode")
	}
}

func TestFaxInvalidColumns(t *testing.T) {
	if _, err := DecodeFax([]byte{0}, FaxParams{Compression: FaxCompressionT6, Columns: 0}); err == nil {
		t.Fatal("expected error for zero columns")
	}
}

// TestRead2DCodeExtensionUnsupported covers the T.6 uncompressed-mode
// extension code (7-bit prefix 0000001): read2DCode must reject it with
// ErrUnsupportedFeature rather than falling through to a generic decode
// error.
func TestRead2DCodeExtensionUnsupported(t *testing.T) {
	// 0000001 followed by padding so PeekBits(7) has enough bits.
	data := []byte{0x02, 0x00}
	d := &faxDecoder{
		br:     NewBitReader(NewInputBufferOrder(data, true)),
		width:  8,
		params: FaxParams{Columns: 8},
	}
	_, err := d.read2DCode()
	if !errors.Is(err, ErrUnsupportedFeature) {
		t.Fatalf("read2DCode error = %v, want ErrUnsupportedFeature", err)
	}
}
