// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rasterimg

// PackBits is TIFF/Apple's byte-level RLE scheme. No stdlib or pack
// dependency implements it (Geek0x0-pdf's filter stack covers LZW/CCITT/
// Deflate but not PackBits), so this is a direct hand implementation of the
// documented header semantics, in the same small-function style as the
// PNG/TIFF predictor pass in filter_decode.go it is grounded on.

// DecodePackBits decodes a PackBits-compressed byte stream until exactly
// arraySize output bytes have been produced.
func DecodePackBits(data []byte, arraySize int) ([]byte, error) {
	out := make([]byte, 0, arraySize)
	i := 0
	for len(out) < arraySize {
		if i >= len(data) {
			return nil, wrapError("decodePackBits", ErrEndOfStream)
		}
		n := int(int8FromUint8(data[i]))
		i++

		switch {
		case n >= 0 && n <= 127:
			count := n + 1
			if i+count > len(data) {
				return nil, wrapError("decodePackBits", ErrEndOfStream)
			}
			out = append(out, data[i:i+count]...)
			i += count

		case n >= -127 && n <= -1:
			if i >= len(data) {
				return nil, wrapError("decodePackBits", ErrEndOfStream)
			}
			v := data[i]
			i++
			count := -n + 1
			for j := 0; j < count; j++ {
				out = append(out, v)
			}

		default: // n == -128, no-op
		}
	}
	if len(out) > arraySize {
		out = out[:arraySize]
	}
	return out, nil
}

// EncodePackBits compresses data with the PackBits scheme, used by the
// round-trip contract. It never emits an ambiguous -128 no-op byte, so
// packBits(unpackBits(x)) == x holds for its own output.
func EncodePackBits(data []byte) []byte {
	var out []byte
	i := 0
	for i < len(data) {
		runStart := i
		runLen := 1
		for runStart+runLen < len(data) && runLen < 128 && data[runStart+runLen] == data[runStart] {
			runLen++
		}

		if runLen >= 2 {
			out = append(out, byte(int8(-(runLen - 1))), data[runStart])
			i = runStart + runLen
			continue
		}

		// Accumulate a literal run until a repeat of length >= 2 appears.
		litStart := i
		litLen := 1
		i++
		for i < len(data) && litLen < 128 {
			if i+1 < len(data) && data[i] == data[i+1] {
				break
			}
			litLen++
			i++
		}
		out = append(out, byte(litLen-1))
		out = append(out, data[litStart:litStart+litLen]...)
	}
	return out
}
