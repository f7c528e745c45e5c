// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rasterimg

import "testing"

func TestAddFrameRejectsOutOfCanvasBounds(t *testing.T) {
	anim := NewFrameAnimation(4, 4, FrameTypeAnimation)
	f := Frame{Image: NewImage(3, 3, FormatU8, 4, false), XOffset: 2, YOffset: 2}
	if err := anim.AddFrame(f); err == nil {
		t.Fatal("expected error for frame exceeding canvas bounds")
	}
}

func TestAddFrameAccepted(t *testing.T) {
	anim := NewFrameAnimation(4, 4, FrameTypeAnimation)
	f := Frame{Image: NewImage(2, 2, FormatU8, 4, false), XOffset: 1, YOffset: 1}
	if err := anim.AddFrame(f); err != nil {
		t.Fatalf("AddFrame: %v", err)
	}
	if len(anim.Frames) != 1 {
		t.Fatalf("len(Frames) = %d, want 1", len(anim.Frames))
	}
}

func TestComposeSingleFrame(t *testing.T) {
	anim := NewFrameAnimation(2, 2, FrameTypeAnimation)
	frameImg := NewImage(2, 2, FormatU8, 4, false)
	frameImg.setPixelRgba(0, 0, 255, 0, 0, 255)
	anim.AddFrame(Frame{Image: frameImg})

	out, err := anim.Compose(0)
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	got := out.getPixel(0, 0)
	if got[0] != 255 {
		t.Errorf("composed pixel = %v, want red", got)
	}
}
