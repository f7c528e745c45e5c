// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rasterimg

import "testing"

func newTestGradient(w, h int) *Image {
	img := NewImage(w, h, FormatU8, 1, false)
	v := 0
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.setChannelRaw(x, y, 0, uint32(v%256))
			v++
		}
	}
	return img
}

func imagesEqual(a, b *Image) bool {
	if a.Width != b.Width || a.Height != b.Height || a.NumChannels != b.NumChannels {
		return false
	}
	for y := 0; y < a.Height; y++ {
		for x := 0; x < a.Width; x++ {
			pa, pb := a.getPixel(x, y), b.getPixel(x, y)
			for c := range pa {
				if pa[c] != pb[c] {
					return false
				}
			}
		}
	}
	return true
}

func TestFlipHorizontalInvolution(t *testing.T) {
	img := newTestGradient(5, 3)
	orig := newTestGradient(5, 3)
	flipHorizontal(img)
	flipHorizontal(img)
	if !imagesEqual(img, orig) {
		t.Error("flipHorizontal(flipHorizontal(I)) != I")
	}
}

func TestFlipVerticalInvolution(t *testing.T) {
	img := newTestGradient(4, 6)
	orig := newTestGradient(4, 6)
	flipVertical(img)
	flipVertical(img)
	if !imagesEqual(img, orig) {
		t.Error("flipVertical(flipVertical(I)) != I")
	}
}

func TestCopyRotateOrthogonalIdentity(t *testing.T) {
	img := newTestGradient(5, 7)
	rot, err := copyRotate(img, 90)
	if err != nil {
		t.Fatalf("copyRotate(90): %v", err)
	}
	back, err := copyRotate(rot, -90)
	if err != nil {
		t.Fatalf("copyRotate(-90): %v", err)
	}
	if !imagesEqual(back, img) {
		t.Error("copyRotate(copyRotate(I,90),-90) != I")
	}
}

func TestCopyRotate90Scenario(t *testing.T) {
	// 2x3 image, orientation rotate-90 (CW) -> 3x2, pixel
	// at original (0,0) moves to (2,0).
	img := NewImage(2, 3, FormatU8, 1, false)
	img.setChannelRaw(0, 0, 0, 42)
	rot, err := copyRotate(img, 90)
	if err != nil {
		t.Fatalf("copyRotate: %v", err)
	}
	if rot.Width != 3 || rot.Height != 2 {
		t.Fatalf("rotated dims = %dx%d, want 3x2", rot.Width, rot.Height)
	}
	if got := rot.getChannelRaw(2, 0, 0); got != 42 {
		t.Errorf("rotated pixel (2,0) = %d, want 42", got)
	}
}

func TestTrimIdempotence(t *testing.T) {
	img := NewImage(6, 6, FormatU8, 4, false)
	img.setPixelRgba(2, 2, 255, 0, 0, 255)
	img.setPixelRgba(3, 3, 0, 255, 0, 255)

	t1 := trim(img, TrimTransparent, TrimAll)
	t2 := trim(t1, TrimTransparent, TrimAll)
	if !imagesEqual(t1, t2) {
		t.Error("trim(trim(I)) != trim(I)")
	}
}

func TestCopyIntoCentering(t *testing.T) {
	dst := NewImage(10, 10, FormatU8, 1, false)
	src := NewImage(2, 2, FormatU8, 1, false)
	src.setChannelRaw(0, 0, 0, 7)
	copyInto(dst, src, 0, 0, 2, 2, 0, 0, true, false)
	if got := dst.getChannelRaw(4, 4, 0); got != 7 {
		t.Errorf("centered copyInto pixel at (4,4) = %d, want 7", got)
	}
}

func TestCopyResizeDerivesMissingDimension(t *testing.T) {
	img := newTestGradient(10, 5)
	out := copyResize(img, 20, 0, InterpNearest, false)
	if out.Width != 20 || out.Height != 10 {
		t.Errorf("dims = %dx%d, want 20x10", out.Width, out.Height)
	}
}

func TestBakeOrientationRotatesAndClearsTag(t *testing.T) {
	img := NewImage(2, 3, FormatU8, 1, false)
	img.Exif = map[int]any{0x0112: 6}
	out, err := bakeOrientation(img)
	if err != nil {
		t.Fatalf("bakeOrientation: %v", err)
	}
	if out.Width != 3 || out.Height != 2 {
		t.Errorf("dims after bake = %dx%d, want 3x2", out.Width, out.Height)
	}
	if _, ok := out.Exif[0x0112]; ok {
		t.Error("orientation tag not removed after bake")
	}
}
