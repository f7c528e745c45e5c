// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rasterimg

// Predictor reversal, grounded directly on Geek0x0-pdf's LZWPredictor
// (filter_decode.go): the same horizontal-differencing math PDF's
// /Predictor dictionary entry drives is reused here for TIFF's Predictor
// tag. PNG's own per-scanline filter byte is reversed internally by the
// standard library's image/png decoder (png.go delegates to it), so no
// PNG-specific filter pass lives in this package.

// ReverseHorizontalPredictor reverses TIFF predictor 2 (horizontal
// differencing) in place: for each row, each sample position i >=
// samplesPerPixel is replaced by out[i] + out[i-samplesPerPixel], with
// wraparound modulo the stored sample width (8, 16 or 32 bits).
// bytesPerSample gives the storage width of one channel sample (1, 2 or 4
// for the integer sample formats predictor 2 applies to).
func ReverseHorizontalPredictor(row []byte, samplesPerPixel, bytesPerSample int) {
	stride := samplesPerPixel * bytesPerSample
	switch bytesPerSample {
	case 1:
		for i := stride; i < len(row); i++ {
			row[i] += row[i-stride]
		}
	case 2:
		for i := stride; i+1 < len(row); i += 2 {
			prev := uint16(row[i-stride])<<8 | uint16(row[i-stride+1])
			cur := uint16(row[i])<<8 | uint16(row[i+1])
			sum := cur + prev
			row[i] = byte(sum >> 8)
			row[i+1] = byte(sum)
		}
	case 4:
		for i := stride; i+3 < len(row); i += 4 {
			prev := uint32(row[i-stride])<<24 | uint32(row[i-stride+1])<<16 | uint32(row[i-stride+2])<<8 | uint32(row[i-stride+3])
			cur := uint32(row[i])<<24 | uint32(row[i+1])<<16 | uint32(row[i+2])<<8 | uint32(row[i+3])
			sum := cur + prev
			row[i] = byte(sum >> 24)
			row[i+1] = byte(sum >> 16)
			row[i+2] = byte(sum >> 8)
			row[i+3] = byte(sum)
		}
	}
}

