// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rasterimg

import (
	"bytes"
	"compress/lzw"
	"io"
)

// TIFF's LZW dialect: 9-bit initial code width widening to 10/11/12 bits as
// the dictionary grows past 511/1023/2047 entries, clear code 256, and
// end-of-information code 257 with the table starting at 258. This is
// exactly the shape the standard library's compress/lzw package implements
// under lzw.MSB — Geek0x0-pdf's read.go opens TIFF-filter streams with
// `lzw.NewReader(rd, lzw.MSB, 8)` for precisely this reason, so
// DecodeLzw wraps that stdlib reader rather than re-deriving the dictionary
// state machine by hand.

// DecodeLzw decompresses a TIFF/PDF-dialect LZW stream. The reserved
// two-byte corrupt-stream signal 0x00 0x01 at the very start of the stream
// (no valid TIFF-LZW stream begins this way, since the first 9-bit code can
// never be 0 followed immediately by a second code packed to start with bit
// 1 in that position) is rejected explicitly.
func DecodeLzw(data []byte) ([]byte, error) {
	if len(data) >= 2 && data[0] == 0x00 && data[1] == 0x01 {
		return nil, wrapError("decodeLzw", ErrInvalidLzwStream)
	}

	r := lzw.NewReader(bytes.NewReader(data), lzw.MSB, 8)
	defer r.Close()

	out, err := io.ReadAll(r)
	if err != nil {
		return nil, wrapError("decodeLzw", ErrInvalidLzwStream)
	}
	return out, nil
}

// EncodeLzw compresses data using the same TIFF/PDF LZW dialect, used only
// by the round-trip contract (encode then decode must be identity).
func EncodeLzw(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w := lzw.NewWriter(&buf, lzw.MSB, 8)
	if _, err := w.Write(data); err != nil {
		w.Close()
		return nil, wrapError("encodeLzw", err)
	}
	if err := w.Close(); err != nil {
		return nil, wrapError("encodeLzw", err)
	}
	return buf.Bytes(), nil
}
