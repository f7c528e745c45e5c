// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rasterimg

import "image"

// fromGoImage converts a standard library (or golang.org/x/image) decoded
// image.Image into the engine's own Image, always as 8-bit RGBA. Used by
// every thin-wrapper codec (PNG/JPEG/GIF/BMP/WebP container parsing and
// pixel decode are out-of-scope "external collaborators").
func fromGoImage(src image.Image) *Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	out := NewImage(w, h, FormatU8, 4, false)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, bch, a := src.At(b.Min.X+x, b.Min.Y+y).RGBA()
			out.setPixelRgba(x, y, int(r>>8), int(g>>8), int(bch>>8), int(a>>8))
		}
	}
	return out
}
