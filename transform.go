// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rasterimg

import "math"

// flipHorizontal mirrors img left-right, in place.
func flipHorizontal(img *Image) {
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width/2; x++ {
			mx := img.Width - 1 - x
			a := img.getPixel(x, y)
			b := img.getPixel(mx, y)
			img.setPixel(x, y, b)
			img.setPixel(mx, y, a)
		}
	}
}

// flipVertical mirrors img top-bottom, in place.
func flipVertical(img *Image) {
	for y := 0; y < img.Height/2; y++ {
		my := img.Height - 1 - y
		for x := 0; x < img.Width; x++ {
			a := img.getPixel(x, y)
			b := img.getPixel(x, my)
			img.setPixel(x, y, b)
			img.setPixel(x, my, a)
		}
	}
}

// flipBoth flips both axes in place.
func flipBoth(img *Image) {
	flipHorizontal(img)
	flipVertical(img)
}

// copyRotate rotates img by one of the orthogonal angles 90, 180, -90/270,
// allocating a new buffer; 0 (mod 360) returns a copy. Any other angle is
// rejected.
func copyRotate(img *Image, degrees int) (*Image, error) {
	switch ((degrees % 360) + 360) % 360 {
	case 0:
		out := NewImage(img.Width, img.Height, img.Format, img.NumChannels, img.HasPalette)
		copy(out.Pix, img.Pix)
		out.Palette = img.Palette
		return out, nil
	case 90:
		out := NewImage(img.Height, img.Width, img.Format, img.NumChannels, img.HasPalette)
		out.Palette = img.Palette
		for y := 0; y < img.Height; y++ {
			for x := 0; x < img.Width; x++ {
				out.setPixel(img.Height-1-y, x, img.getPixel(x, y))
			}
		}
		return out, nil
	case 180:
		out := NewImage(img.Width, img.Height, img.Format, img.NumChannels, img.HasPalette)
		out.Palette = img.Palette
		for y := 0; y < img.Height; y++ {
			for x := 0; x < img.Width; x++ {
				out.setPixel(img.Width-1-x, img.Height-1-y, img.getPixel(x, y))
			}
		}
		return out, nil
	case 270:
		out := NewImage(img.Height, img.Width, img.Format, img.NumChannels, img.HasPalette)
		out.Palette = img.Palette
		for y := 0; y < img.Height; y++ {
			for x := 0; x < img.Width; x++ {
				out.setPixel(y, img.Width-1-x, img.getPixel(x, y))
			}
		}
		return out, nil
	default:
		return nil, wrapError("copyRotate", ErrUnsupportedFeature)
	}
}

// copyRotateArbitrary rotates img by an arbitrary angle (radians) about its
// center, producing an RGBA destination sized to fully contain the rotated
// source, with a transparent border where no source maps.
func copyRotateArbitrary(img *Image, theta float64, mode InterpolationMode) *Image {
	w, h := float64(img.Width), float64(img.Height)
	cosT, sinT := math.Cos(theta), math.Sin(theta)

	dstW := int(math.Ceil(math.Abs(w*cosT) + math.Abs(h*sinT)))
	dstH := int(math.Ceil(math.Abs(w*sinT) + math.Abs(h*cosT)))
	if dstW < 1 {
		dstW = 1
	}
	if dstH < 1 {
		dstH = 1
	}

	out := NewImage(dstW, dstH, FormatU8, 4, false)

	srcCx, srcCy := w/2, h/2
	dstCx, dstCy := float64(dstW)/2, float64(dstH)/2

	// Inverse rotation maps destination coordinates back to source space.
	invCos, invSin := math.Cos(-theta), math.Sin(-theta)

	for dy := 0; dy < dstH; dy++ {
		for dx := 0; dx < dstW; dx++ {
			rx := float64(dx) + 0.5 - dstCx
			ry := float64(dy) + 0.5 - dstCy
			sx := rx*invCos - ry*invSin + srcCx
			sy := rx*invSin + ry*invCos + srcCy

			if sx < -0.5 || sy < -0.5 || sx >= w+0.5 || sy >= h+0.5 {
				out.setPixelRgba(dx, dy, 0, 0, 0, 0)
				continue
			}
			ch := imgChannelsAsRgba(img, sx-0.5, sy-0.5, mode)
			out.setPixelRgba(dx, dy, int(ch[0]), int(ch[1]), int(ch[2]), int(ch[3]))
		}
	}
	return out
}

// imgChannelsAsRgba samples img at (fx,fy) and normalizes the result to a
// 4-element 0..255 RGBA tuple regardless of source channel count.
func imgChannelsAsRgba(img *Image, fx, fy float64, mode InterpolationMode) [4]float64 {
	vals := img.getPixelInterpolate(fx, fy, mode)
	max := float64(img.MaxChannelValue())
	if max == 0 {
		max = 1
	}
	scale := func(v float64) float64 { return clampFloat(v/max*255, 0, 255) }

	switch img.NumChannels {
	case 1:
		v := scale(vals[0])
		return [4]float64{v, v, v, 255}
	case 2:
		v := scale(vals[0])
		return [4]float64{v, v, v, scale(vals[1])}
	case 3:
		return [4]float64{scale(vals[0]), scale(vals[1]), scale(vals[2]), 255}
	default:
		return [4]float64{scale(vals[0]), scale(vals[1]), scale(vals[2]), scale(vals[3])}
	}
}

// copyResize scales img to (dstW, dstH). If either dimension is 0, it is
// derived from the other via the source aspect ratio. mode selects the
// sampling kernel; average selects a box-filter downsample instead.
func copyResize(img *Image, dstW, dstH int, mode InterpolationMode, average bool) *Image {
	if dstW == 0 && dstH == 0 {
		return img
	}
	if dstW == 0 {
		dstW = int(math.Round(float64(img.Width) * float64(dstH) / float64(img.Height)))
	}
	if dstH == 0 {
		dstH = int(math.Round(float64(img.Height) * float64(dstW) / float64(img.Width)))
	}
	if dstW < 1 {
		dstW = 1
	}
	if dstH < 1 {
		dstH = 1
	}

	out := NewImage(dstW, dstH, img.Format, img.NumChannels, false)
	scaleX := float64(img.Width) / float64(dstW)
	scaleY := float64(img.Height) / float64(dstH)

	if average {
		resizeBoxFilter(img, out, scaleX, scaleY)
		return out
	}

	for dy := 0; dy < dstH; dy++ {
		for dx := 0; dx < dstW; dx++ {
			fx := (float64(dx)+0.5)*scaleX - 0.5
			fy := (float64(dy)+0.5)*scaleY - 0.5
			vals := img.getPixelInterpolate(fx, fy, mode)
			ch := make([]uint32, img.NumChannels)
			for c := range ch {
				ch[c] = uint32(math.Round(vals[c]))
			}
			out.setPixel(dx, dy, ch)
		}
	}
	return out
}

// resizeBoxFilter averages all source pixels whose projected rectangle
// overlaps each destination pixel.
func resizeBoxFilter(src, dst *Image, scaleX, scaleY float64) {
	for dy := 0; dy < dst.Height; dy++ {
		srcY0 := int(math.Floor(float64(dy) * scaleY))
		srcY1 := int(math.Ceil(float64(dy+1) * scaleY))
		if srcY1 > src.Height {
			srcY1 = src.Height
		}
		for dx := 0; dx < dst.Width; dx++ {
			srcX0 := int(math.Floor(float64(dx) * scaleX))
			srcX1 := int(math.Ceil(float64(dx+1) * scaleX))
			if srcX1 > src.Width {
				srcX1 = src.Width
			}

			sums := make([]float64, src.NumChannels)
			count := 0
			for sy := srcY0; sy < srcY1; sy++ {
				for sx := srcX0; sx < srcX1; sx++ {
					ch := src.getPixel(sx, sy)
					for c := range sums {
						sums[c] += float64(ch[c])
					}
					count++
				}
			}
			if count == 0 {
				continue
			}
			ch := make([]uint32, src.NumChannels)
			for c := range ch {
				ch[c] = uint32(math.Round(sums[c] / float64(count)))
			}
			dst.setPixel(dx, dy, ch)
		}
	}
}

// copyInto copies a srcW x srcH rect of src starting at (srcX,srcY) into
// dst at (dstX,dstY). If center is true, dstX/dstY are computed to center
// the source rect within dst, clamped to 0.
func copyInto(dst, src *Image, srcX, srcY, srcW, srcH, dstX, dstY int, center, blend bool) {
	if center {
		dstX = (dst.Width - srcW) / 2
		dstY = (dst.Height - srcH) / 2
		if dstX < 0 {
			dstX = 0
		}
		if dstY < 0 {
			dstY = 0
		}
	}

	for y := 0; y < srcH; y++ {
		sy, dy := srcY+y, dstY+y
		if sy < 0 || sy >= src.Height || dy < 0 || dy >= dst.Height {
			continue
		}
		for x := 0; x < srcW; x++ {
			sx, dx := srcX+x, dstX+x
			if sx < 0 || sx >= src.Width || dx < 0 || dx >= dst.Width {
				continue
			}
			if blend && src.NumChannels == 4 && dst.NumChannels == 4 {
				sp := src.getPixel(sx, sy)
				dp := dst.getPixel(dx, dy)
				out := alphaBlend(
					RGBA{uint8(sp[0]), uint8(sp[1]), uint8(sp[2]), uint8(sp[3])},
					RGBA{uint8(dp[0]), uint8(dp[1]), uint8(dp[2]), uint8(dp[3])},
					255,
				)
				dst.setPixel(dx, dy, []uint32{uint32(out.R), uint32(out.G), uint32(out.B), uint32(out.A)})
			} else {
				dst.setPixel(dx, dy, src.getPixel(sx, sy))
			}
		}
	}
}

// TrimMode selects how trim identifies background pixels.
type TrimMode int

const (
	TrimTransparent TrimMode = iota
	TrimTopLeft
	TrimBottomRight
)

// Trim side bitmask flags.
const (
	TrimTop = 1 << iota
	TrimRight
	TrimBottom
	TrimLeft
	TrimAll = TrimTop | TrimRight | TrimBottom | TrimLeft
)

// trim computes the bounding rectangle of non-background pixels and returns
// a cropped copy. sides restricts which edges may move inward.
func trim(img *Image, mode TrimMode, sides int) *Image {
	bg := backgroundPixel(img, mode)

	top, bottom, left, right := 0, img.Height-1, 0, img.Width-1

	if sides&TrimTop != 0 {
		for top < img.Height && rowIsBackground(img, top, bg) {
			top++
		}
	}
	if sides&TrimBottom != 0 {
		for bottom >= top && rowIsBackground(img, bottom, bg) {
			bottom--
		}
	}
	if sides&TrimLeft != 0 {
		for left < img.Width && colIsBackground(img, left, top, bottom, bg) {
			left++
		}
	}
	if sides&TrimRight != 0 {
		for right >= left && colIsBackground(img, right, top, bottom, bg) {
			right--
		}
	}

	if top > bottom || left > right {
		return NewImage(0, 0, img.Format, img.NumChannels, img.HasPalette)
	}

	w, h := right-left+1, bottom-top+1
	out := NewImage(w, h, img.Format, img.NumChannels, img.HasPalette)
	out.Palette = img.Palette
	copyInto(out, img, left, top, w, h, 0, 0, false, false)
	return out
}

func backgroundPixel(img *Image, mode TrimMode) []uint32 {
	switch mode {
	case TrimTopLeft:
		return img.getPixel(0, 0)
	case TrimBottomRight:
		return img.getPixel(img.Width-1, img.Height-1)
	default:
		return make([]uint32, img.NumChannels)
	}
}

func pixelIsBackground(img *Image, x, y int, mode []uint32) bool {
	ch := img.getPixel(x, y)
	if img.NumChannels == 4 {
		// Transparent mode only cares about alpha.
		if len(mode) == img.NumChannels && allZero(mode) {
			return ch[3] == 0
		}
	}
	for c := range ch {
		if ch[c] != mode[c] {
			return false
		}
	}
	return true
}

func allZero(v []uint32) bool {
	for _, x := range v {
		if x != 0 {
			return false
		}
	}
	return true
}

func rowIsBackground(img *Image, y int, bg []uint32) bool {
	for x := 0; x < img.Width; x++ {
		if !pixelIsBackground(img, x, y, bg) {
			return false
		}
	}
	return true
}

func colIsBackground(img *Image, x, top, bottom int, bg []uint32) bool {
	for y := top; y <= bottom; y++ {
		if !pixelIsBackground(img, x, y, bg) {
			return false
		}
	}
	return true
}

// bakeOrientation applies the EXIF orientation tag (1..8) as a combination
// of 90-degree rotations and horizontal/vertical flips, then removes the tag.
func bakeOrientation(img *Image) (*Image, error) {
	const exifOrientationTag = 0x0112
	orientation := 1
	if v, ok := img.Exif[exifOrientationTag]; ok {
		if iv, ok := v.(int); ok {
			orientation = iv
		}
	}

	var out *Image
	var err error

	switch orientation {
	case 1:
		out = img
	case 2:
		out = img
		flipHorizontal(out)
	case 3:
		out, err = copyRotate(img, 180)
	case 4:
		out = img
		flipVertical(out)
	case 5:
		out, err = copyRotate(img, 90)
		if err == nil {
			flipHorizontal(out)
		}
	case 6:
		out, err = copyRotate(img, 90)
	case 7:
		out, err = copyRotate(img, 270)
		if err == nil {
			flipHorizontal(out)
		}
	case 8:
		out, err = copyRotate(img, 270)
	default:
		out = img
	}
	if err != nil {
		return nil, wrapError("bakeOrientation", err)
	}
	if out.Exif != nil {
		delete(out.Exif, exifOrientationTag)
	}
	return out, nil
}
