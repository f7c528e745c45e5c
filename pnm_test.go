// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rasterimg

import "testing"

func TestDecodePnmAsciiGray(t *testing.T) {
	data := []byte("P2\n2 2\n255\n0 128\n255 64\n")
	img, err := DecodePNM(data)
	if err != nil {
		t.Fatalf("DecodePNM: %v", err)
	}
	if img.Width != 2 || img.Height != 2 {
		t.Fatalf("dims = %dx%d, want 2x2", img.Width, img.Height)
	}
	want := [][2]int{{0, 0}, {1, 0}, {0, 1}, {1, 1}}
	wantVals := []uint32{0, 128, 255, 64}
	for i, p := range want {
		got := img.getChannelRaw(p[0], p[1], 0)
		if got != wantVals[i] {
			t.Errorf("pixel %v = %d, want %d", p, got, wantVals[i])
		}
	}
}

func TestDecodePnmAsciiBilevel(t *testing.T) {
	data := []byte("P1\n3 1\n1 0 1\n")
	img, err := DecodePNM(data)
	if err != nil {
		t.Fatalf("DecodePNM: %v", err)
	}
	want := []uint32{1, 0, 1}
	for x, w := range want {
		got := img.getChannelRaw(x, 0, 0)
		if got != w {
			t.Errorf("pixel %d = %d, want %d", x, got, w)
		}
	}
}

func TestDecodePnmRgbAscii(t *testing.T) {
	data := []byte("P3\n1 1\n255\n10 20 30\n")
	img, err := DecodePNM(data)
	if err != nil {
		t.Fatalf("DecodePNM: %v", err)
	}
	ch := img.getPixel(0, 0)
	want := []uint32{10, 20, 30}
	for i := range want {
		if ch[i] != want[i] {
			t.Errorf("channel %d = %d, want %d", i, ch[i], want[i])
		}
	}
}

func TestDecodePnmInvalidSignature(t *testing.T) {
	if _, err := DecodePNM([]byte("XY\n1 1\n255\n0\n")); err == nil {
		t.Fatal("expected ErrInvalidSignature")
	}
}
