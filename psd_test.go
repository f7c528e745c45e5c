// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rasterimg

import "testing"

func putU16BE(dst []byte, v uint16) {
	dst[0] = byte(v >> 8)
	dst[1] = byte(v)
}

func putU32BE(dst []byte, v uint32) {
	dst[0] = byte(v >> 24)
	dst[1] = byte(v >> 16)
	dst[2] = byte(v >> 8)
	dst[3] = byte(v)
}

func buildMinimalPsd() []byte {
	header := make([]byte, 26)
	copy(header[0:4], []byte("8BPS"))
	putU16BE(header[4:], 1) // version
	// header[6:12] reserved, zero
	putU16BE(header[12:], 1)  // channels
	putU32BE(header[14:], 2)  // height
	putU32BE(header[18:], 2)  // width
	putU16BE(header[22:], 8)  // depth
	putU16BE(header[24:], psdModeGrayscale)

	var buf []byte
	buf = append(buf, header...)

	colorDataLen := make([]byte, 4)
	buf = append(buf, colorDataLen...) // length 0

	resourcesLen := make([]byte, 4)
	buf = append(buf, resourcesLen...) // length 0

	layerInfoLen := make([]byte, 4)
	buf = append(buf, layerInfoLen...) // length 0

	compression := make([]byte, 2) // 0 = raw
	buf = append(buf, compression...)

	buf = append(buf, []byte{10, 20, 30, 40}...) // 2x2 grayscale samples

	return buf
}

func TestDecodePsdMinimalGrayscale(t *testing.T) {
	data := buildMinimalPsd()
	img, err := DecodePSD(data)
	if err != nil {
		t.Fatalf("DecodePSD: %v", err)
	}
	if img.Width != 2 || img.Height != 2 {
		t.Fatalf("dims = %dx%d, want 2x2", img.Width, img.Height)
	}
	want := []uint32{10, 20, 30, 40}
	i := 0
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			got := img.getChannelRaw(x, y, 0)
			if got != want[i] {
				t.Errorf("pixel (%d,%d) = %d, want %d", x, y, got, want[i])
			}
			i++
		}
	}
}

func TestPsdInvalidSignature(t *testing.T) {
	c := &psdCodec{}
	if c.isValidFile([]byte{0x01, 0x02, 0x03, 0x04, 0, 1}) {
		t.Fatal("expected isValidFile false for non-PSD data")
	}
}

// buildPsdLayerRecord builds one layer record (rect + channel info + blend
// fields + extra data holding an empty mask, empty blend ranges, and the
// given Pascal-string name).
func buildPsdLayerRecord(name string) []byte {
	var rec []byte
	rec = append(rec, make([]byte, 16)...) // rect: top/left/bottom/right
	numChannels := make([]byte, 2)
	putU16BE(numChannels, 1)
	rec = append(rec, numChannels...)
	rec = append(rec, make([]byte, 6)...) // one channel's id+length
	rec = append(rec, []byte("8BIM")...)
	rec = append(rec, []byte("norm")...)
	rec = append(rec, make([]byte, 4)...) // opacity, clipping, flags, filler

	var extra []byte
	extra = append(extra, make([]byte, 4)...) // layer mask data length = 0
	extra = append(extra, make([]byte, 4)...) // layer blending ranges length = 0
	extra = append(extra, byte(len(name)))
	extra = append(extra, []byte(name)...)

	extraLen := make([]byte, 4)
	putU32BE(extraLen, uint32(len(extra)))
	rec = append(rec, extraLen...)
	rec = append(rec, extra...)
	return rec
}

func buildPsdWithLayerName(name string) []byte {
	header := make([]byte, 26)
	copy(header[0:4], []byte("8BPS"))
	putU16BE(header[4:], 1)
	putU16BE(header[12:], 1)
	putU32BE(header[14:], 1)
	putU32BE(header[18:], 1)
	putU16BE(header[22:], 8)
	putU16BE(header[24:], psdModeGrayscale)

	var buf []byte
	buf = append(buf, header...)
	buf = append(buf, make([]byte, 4)...) // color mode data length = 0
	buf = append(buf, make([]byte, 4)...) // image resources length = 0

	record := buildPsdLayerRecord(name)
	var layerInfo []byte
	count := make([]byte, 2)
	putU16BE(count, 1)
	layerInfo = append(layerInfo, count...)
	layerInfo = append(layerInfo, record...)

	var layerSection []byte
	layerInfoLen := make([]byte, 4)
	putU32BE(layerInfoLen, uint32(len(layerInfo)))
	layerSection = append(layerSection, layerInfoLen...)
	layerSection = append(layerSection, layerInfo...)

	sectionLen := make([]byte, 4)
	putU32BE(sectionLen, uint32(len(layerSection)))
	buf = append(buf, sectionLen...)
	buf = append(buf, layerSection...)

	buf = append(buf, make([]byte, 2)...) // compression = 0 (raw)
	buf = append(buf, []byte{42}...)      // 1x1 grayscale sample
	return buf
}

func TestDecodePsdLayerName(t *testing.T) {
	data := buildPsdWithLayerName("Background")
	img, err := DecodePSD(data)
	if err != nil {
		t.Fatalf("DecodePSD: %v", err)
	}
	if got := img.TextData["Layer 0 Name"]; got != "Background" {
		t.Fatalf("TextData[Layer 0 Name] = %q, want %q", got, "Background")
	}
}
