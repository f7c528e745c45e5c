// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rasterimg

import "testing"

func TestNewImageBufferLength(t *testing.T) {
	img := NewImage(4, 2, FormatU8, 3, false)
	want := 4 * 2 * 3
	if len(img.Pix) != want {
		t.Errorf("len(Pix) = %d, want %d", len(img.Pix), want)
	}
}

func TestNewImageSubByteBufferLength(t *testing.T) {
	// 8x8 bilevel image: 1 channel, 1 bit per sample -> 8 bytes.
	img := NewImage(8, 8, FormatU1, 1, false)
	if len(img.Pix) != 8 {
		t.Errorf("len(Pix) = %d, want 8", len(img.Pix))
	}
}

func TestSetGetPixelRoundTrip(t *testing.T) {
	img := NewImage(2, 2, FormatU8, 3, false)
	img.setPixelRgb(1, 0, 10, 20, 30)
	got := img.getPixel(1, 0)
	want := []uint32{10, 20, 30}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("channel %d = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestGetPixelSafeMatchesGetPixelInBounds(t *testing.T) {
	img := NewImage(2, 2, FormatU8, 1, false)
	img.setChannelRaw(1, 1, 0, 200)
	safe := img.getPixelSafe(1, 1)
	direct := img.getPixel(1, 1)
	if safe[0] != direct[0] {
		t.Errorf("getPixelSafe = %v, getPixel = %v", safe, direct)
	}
}

func TestGetPixelSafeOutOfBounds(t *testing.T) {
	img := NewImage(2, 2, FormatU8, 1, false)
	got := img.getPixelSafe(5, 5)
	if got[0] != 0 {
		t.Errorf("getPixelSafe out of bounds = %v, want [0]", got)
	}
}

func TestSubBytePackedBitsRoundTrip(t *testing.T) {
	img := NewImage(8, 1, FormatU1, 1, false)
	for x := 0; x < 8; x++ {
		v := uint32(x % 2)
		img.setChannelRaw(x, 0, 0, v)
	}
	for x := 0; x < 8; x++ {
		want := uint32(x % 2)
		if got := img.getChannelRaw(x, 0, 0); got != want {
			t.Errorf("x=%d: got %d, want %d", x, got, want)
		}
	}
}

// TestBilinearInterpolationScenario covers a 2x2 single-channel
// image [[0,0],[0,255]] sampled at fx=0.5,fy=0.5 with bilinear
// interpolation yields 63 (truncated from 63.75).
func TestBilinearInterpolationScenario(t *testing.T) {
	img := NewImage(2, 2, FormatU8, 1, false)
	img.setChannelRaw(0, 0, 0, 0)
	img.setChannelRaw(1, 0, 0, 0)
	img.setChannelRaw(0, 1, 0, 0)
	img.setChannelRaw(1, 1, 0, 255)

	out := img.getPixelInterpolate(0.5, 0.5, InterpLinear)
	got := int(out[0])
	if got != 63 {
		t.Errorf("bilinear at (0.5,0.5) = %d, want 63 (truncated from 63.75)", got)
	}
}

func TestGetPixelInterpolateNearestEdge(t *testing.T) {
	img := NewImage(2, 2, FormatU8, 1, false)
	img.setChannelRaw(1, 1, 0, 99)
	out := img.getPixelInterpolate(5, 5, InterpNearest)
	if int(out[0]) != 99 {
		t.Errorf("nearest beyond boundary = %v, want 99 (clamped to edge)", out)
	}
}

func TestGetBytesRGB(t *testing.T) {
	img := NewImage(1, 1, FormatU8, 3, false)
	img.setPixelRgb(0, 0, 10, 20, 30)
	out := img.getBytes(OrderRGB)
	want := []byte{10, 20, 30}
	for i := range want {
		if out[i] != want[i] {
			t.Errorf("byte %d = %d, want %d", i, out[i], want[i])
		}
	}
}

func TestGetBytesBGRA(t *testing.T) {
	img := NewImage(1, 1, FormatU8, 4, false)
	img.setPixelRgba(0, 0, 10, 20, 30, 40)
	out := img.getBytes(OrderBGRA)
	want := []byte{30, 20, 10, 40}
	for i := range want {
		if out[i] != want[i] {
			t.Errorf("byte %d = %d, want %d", i, out[i], want[i])
		}
	}
}

func TestIterMutatesInPlace(t *testing.T) {
	img := NewImage(2, 1, FormatU8, 1, false)
	img.setChannelRaw(0, 0, 0, 10)
	img.setChannelRaw(1, 0, 0, 20)
	img.iter(func(x, y int, ch []uint32) []uint32 {
		return []uint32{ch[0] + 1}
	})
	if got := img.getChannelRaw(0, 0, 0); got != 11 {
		t.Errorf("after iter, pixel 0 = %d, want 11", got)
	}
	if got := img.getChannelRaw(1, 0, 0); got != 21 {
		t.Errorf("after iter, pixel 1 = %d, want 21", got)
	}
}

func TestComposeAddImageClamps(t *testing.T) {
	a := NewImage(1, 1, FormatU8, 1, false)
	b := NewImage(1, 1, FormatU8, 1, false)
	a.setChannelRaw(0, 0, 0, 200)
	b.setChannelRaw(0, 0, 0, 200)
	out := a.addImage(b)
	if got := out.getChannelRaw(0, 0, 0); got != 255 {
		t.Errorf("addImage clamp = %d, want 255", got)
	}
}

func TestComposeSubtractImageNoUnderflow(t *testing.T) {
	a := NewImage(1, 1, FormatU8, 1, false)
	b := NewImage(1, 1, FormatU8, 1, false)
	a.setChannelRaw(0, 0, 0, 10)
	b.setChannelRaw(0, 0, 0, 20)
	out := a.subtractImage(b)
	if got := out.getChannelRaw(0, 0, 0); got != 0 {
		t.Errorf("subtractImage underflow = %d, want 0", got)
	}
}

func TestComposeOverlapDimensions(t *testing.T) {
	a := NewImage(4, 4, FormatU8, 1, false)
	b := NewImage(2, 3, FormatU8, 1, false)
	out := a.addImage(b)
	if out.Width != 2 || out.Height != 3 {
		t.Errorf("compose dims = %dx%d, want 2x3", out.Width, out.Height)
	}
}
