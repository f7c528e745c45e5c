// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rasterimg

import "testing"

func TestIsValidFileMagicBytes(t *testing.T) {
	tests := []struct {
		name string
		c    Decoder
		data []byte
	}{
		{"png", &pngCodec{}, []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}},
		{"jpeg", &jpegCodec{}, []byte{0xFF, 0xD8, 0xFF, 0xE0}},
		{"bmp", &bmpCodec{}, []byte{0x42, 0x4D, 0, 0}},
		{"ico", &icoCodec{}, []byte{0x00, 0x00, 0x01, 0x00, 0, 0}},
		{"gif", &gifCodec{}, []byte("GIF89a")},
		{"webp", &webpCodec{}, append([]byte("RIFF\x00\x00\x00\x00"), []byte("WEBP")...)},
		{"pnm", &pnmCodec{}, []byte("P6\n")},
		{"psd", &psdCodec{}, append([]byte{0x38, 0x42, 0x50, 0x53, 0x00, 0x01}, make([]byte, 20)...)},
	}
	for _, tt := range tests {
		if !tt.c.isValidFile(tt.data) {
			t.Errorf("%s: isValidFile = false, want true", tt.name)
		}
	}
}

func TestIsValidFileRejectsGarbage(t *testing.T) {
	garbage := []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08}
	codecs := []Decoder{&pngCodec{}, &jpegCodec{}, &bmpCodec{}, &icoCodec{}, &gifCodec{}, &webpCodec{}, &psdCodec{}}
	for _, c := range codecs {
		if c.isValidFile(garbage) {
			t.Errorf("%T: isValidFile(garbage) = true, want false", c)
		}
	}
}

func TestDetectAndDecodeRejectsUnknownFormat(t *testing.T) {
	_, err := DetectAndDecode([]byte{0xDE, 0xAD, 0xBE, 0xEF})
	if err == nil {
		t.Fatal("expected ErrInvalidSignature for unrecognized data")
	}
}

func TestTiffCodecIsValidFile(t *testing.T) {
	c := &tiffCodec{}
	if !c.isValidFile([]byte{0x49, 0x49, 0x2A, 0x00}) {
		t.Error("little-endian TIFF signature not recognized")
	}
	if !c.isValidFile([]byte{0x4D, 0x4D, 0x00, 0x2A}) {
		t.Error("big-endian TIFF signature not recognized")
	}
}
