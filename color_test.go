// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rasterimg

import "testing"

func TestLuminance(t *testing.T) {
	got := luminance(255, 255, 255)
	if got != 255 {
		t.Errorf("luminance(255,255,255) = %v, want 255", got)
	}
}

func TestAlphaBlendShortCircuits(t *testing.T) {
	src := RGBA{10, 20, 30, 255}
	dst := RGBA{40, 50, 60, 255}

	if got := alphaBlend(src, dst, 255); got != src {
		t.Errorf("srcA=255,opacity=255: got %v, want src %v", got, src)
	}

	src.A = 0
	if got := alphaBlend(src, dst, 255); got != dst {
		t.Errorf("srcA=0,opacity=255: got %v, want dst %v", got, dst)
	}
}

func TestRgbHslRoundTrip(t *testing.T) {
	for _, rgb := range [][3]uint8{{255, 0, 0}, {0, 255, 0}, {0, 0, 255}, {128, 64, 200}, {10, 10, 10}} {
		h, s, l := rgbToHsl(rgb[0], rgb[1], rgb[2])
		r, g, b := hslToRgb(h, s, l)
		if absDiffInt(int(r), int(rgb[0])) > 1 || absDiffInt(int(g), int(rgb[1])) > 1 || absDiffInt(int(b), int(rgb[2])) > 1 {
			t.Errorf("rgbToHsl/hslToRgb round trip for %v: got (%d,%d,%d)", rgb, r, g, b)
		}
	}
}

func absDiffInt(a, b int) int {
	if a < b {
		return b - a
	}
	return a - b
}

func TestCmykToRgbBlack(t *testing.T) {
	r, g, b := cmykToRgb(0, 0, 0, 1)
	if r != 0 || g != 0 || b != 0 {
		t.Errorf("cmykToRgb full black = (%d,%d,%d), want (0,0,0)", r, g, b)
	}
}

func TestRgbXyzRoundTrip(t *testing.T) {
	for _, rgb := range [][3]uint8{{255, 255, 255}, {0, 0, 0}, {128, 64, 200}} {
		x, y, z := rgbToXyz(rgb[0], rgb[1], rgb[2])
		r, g, b := xyzToRgb(x, y, z)
		if absDiffInt(int(r), int(rgb[0])) > 2 || absDiffInt(int(g), int(rgb[1])) > 2 || absDiffInt(int(b), int(rgb[2])) > 2 {
			t.Errorf("rgbToXyz/xyzToRgb round trip for %v: got (%d,%d,%d)", rgb, r, g, b)
		}
	}
}

func TestXyzLabRoundTrip(t *testing.T) {
	x, y, z := rgbToXyz(200, 100, 50)
	l, a, b := xyzToLab(x, y, z)
	x2, y2, z2 := labToXyz(l, a, b)
	if absDiffInt(int(x), int(x2)) > 1 || absDiffInt(int(y), int(y2)) > 1 || absDiffInt(int(z), int(z2)) > 1 {
		t.Errorf("xyzToLab/labToXyz round trip mismatch: (%v,%v,%v) vs (%v,%v,%v)", x, y, z, x2, y2, z2)
	}
}
