// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rasterimg

import "math"

// SampleFormat identifies the in-memory representation of one channel
// sample. Mirrors go-tiff32's pattern of one concrete pixel type per sample
// format, collapsed here into a single tagged Image rather than a type per
// format (see DESIGN.md).
type SampleFormat int

const (
	FormatU1 SampleFormat = iota
	FormatU2
	FormatU4
	FormatU8
	FormatU16
	FormatU32
	FormatI8
	FormatI16
	FormatI32
	FormatF16
	FormatF32
	FormatF64
)

// bitsPerSample returns the storage width of one sample in the given format.
func (f SampleFormat) bitsPerSample() int {
	switch f {
	case FormatU1:
		return 1
	case FormatU2:
		return 2
	case FormatU4:
		return 4
	case FormatU8, FormatI8:
		return 8
	case FormatU16, FormatI16, FormatF16:
		return 16
	case FormatU32, FormatI32, FormatF32:
		return 32
	case FormatF64:
		return 64
	default:
		return 8
	}
}

func (f SampleFormat) isSubByte() bool {
	return f == FormatU1 || f == FormatU2 || f == FormatU4
}

// InterpolationMode selects the kernel used by getPixelInterpolate.
type InterpolationMode int

const (
	InterpNearest InterpolationMode = iota
	InterpLinear
	InterpCubic
)

// Image is a uniform multi-channel raster buffer over one of the tagged
// sample formats in SampleFormat. Channel order for 4 channels is R,G,B,A;
// 1 channel is luminance; 2 channels are luminance+alpha.
type Image struct {
	Width       int
	Height      int
	Format      SampleFormat
	NumChannels int

	// Pix holds the packed sample buffer. For sub-byte formats, samples
	// are packed MSB-first within each byte and contiguously across rows,
	// with no row padding (mirroring InputBuffer's bit-level conventions).
	Pix []byte

	HasPalette bool
	Palette    []PaletteEntry

	Exif     map[int]any
	ICC      []byte
	TextData map[string]string
}

// PaletteEntry is one 3-channel colormap slot.
type PaletteEntry struct {
	R, G, B uint16
}

// NewImage constructs an Image with a freshly zeroed sample buffer.
func NewImage(width, height int, format SampleFormat, numChannels int, withPalette bool) *Image {
	img := &Image{
		Width:       width,
		Height:      height,
		Format:      format,
		NumChannels: numChannels,
	}
	img.Pix = make([]byte, img.bufferLength())
	if withPalette {
		img.HasPalette = true
		img.Palette = make([]PaletteEntry, 256)
	}
	return img
}

// bufferLength computes ceil(width*height*numChannels*bitsPerSample/8).
func (img *Image) bufferLength() int {
	totalBits := img.Width * img.Height * img.NumChannels * img.Format.bitsPerSample()
	return (totalBits + 7) / 8
}

// bytesPerSample returns the storage width in bytes for non-sub-byte
// formats; sub-byte formats must go through the bit-level accessors.
func (img *Image) bytesPerSample() int {
	return img.Format.bitsPerSample() / 8
}

// rowStrideBytes returns the bit length of one row's samples rounded up
// to whole bytes.
func (img *Image) rowStrideBytes() int {
	bits := img.Width * img.NumChannels * img.Format.bitsPerSample()
	return (bits + 7) / 8
}

// MaxChannelValue returns 2^bitsPerSample-1 for unsigned integer formats
// narrower than 32 bits and 2^31-1 (not 2^32-1) for 32-bit ones, 1.0 for
// float formats (returned as the integer ceiling for convenience
// where an integer clamp bound is needed), and the palette max otherwise.
func (img *Image) MaxChannelValue() int {
	if img.HasPalette {
		max := 0
		for _, p := range img.Palette {
			for _, v := range [3]uint16{p.R, p.G, p.B} {
				if int(v) > max {
					max = int(v)
				}
			}
		}
		return max
	}
	switch img.Format {
	case FormatF16, FormatF32, FormatF64:
		return 1
	default:
		bits := img.Format.bitsPerSample()
		if bits >= 32 {
			return 1<<31 - 1
		}
		return 1<<uint(bits) - 1
	}
}

// sampleIndex returns the linear sample index of channel c of pixel (x,y);
// callers multiply it by the sample width in bits or bytes.
func (img *Image) sampleIndex(x, y, c int) int {
	return (y*img.Width+x)*img.NumChannels + c
}

// getChannelRaw reads channel c of pixel (x,y) as an unsigned integer,
// regardless of storage format (floats are reinterpreted via their bit
// pattern scaled is NOT performed here; see getPixelFloat for that).
func (img *Image) getChannelRaw(x, y, c int) uint32 {
	bps := img.Format.bitsPerSample()
	if img.Format.isSubByte() {
		bitOffset := img.sampleIndex(x, y, c) * bps
		return img.readPackedBits(bitOffset, bps)
	}
	byteOffset := img.sampleIndex(x, y, c) * (bps / 8)
	switch img.Format {
	case FormatU8, FormatI8:
		return uint32(img.Pix[byteOffset])
	case FormatU16, FormatI16, FormatF16:
		return uint32(img.Pix[byteOffset])<<8 | uint32(img.Pix[byteOffset+1])
	case FormatU32, FormatI32, FormatF32:
		return uint32(img.Pix[byteOffset])<<24 | uint32(img.Pix[byteOffset+1])<<16 |
			uint32(img.Pix[byteOffset+2])<<8 | uint32(img.Pix[byteOffset+3])
	case FormatF64:
		// truncated to the high 32 bits is meaningless for F64; callers
		// needing full precision use getPixelFloat instead.
		return uint32(img.Pix[byteOffset])<<24 | uint32(img.Pix[byteOffset+1])<<16 |
			uint32(img.Pix[byteOffset+2])<<8 | uint32(img.Pix[byteOffset+3])
	default:
		return 0
	}
}

func (img *Image) setChannelRaw(x, y, c int, v uint32) {
	bps := img.Format.bitsPerSample()
	if img.Format.isSubByte() {
		bitOffset := img.sampleIndex(x, y, c) * bps
		img.writePackedBits(bitOffset, bps, v)
		return
	}
	byteOffset := img.sampleIndex(x, y, c) * (bps / 8)
	switch img.Format {
	case FormatU8, FormatI8:
		img.Pix[byteOffset] = byte(v)
	case FormatU16, FormatI16, FormatF16:
		img.Pix[byteOffset] = byte(v >> 8)
		img.Pix[byteOffset+1] = byte(v)
	case FormatU32, FormatI32, FormatF32:
		img.Pix[byteOffset] = byte(v >> 24)
		img.Pix[byteOffset+1] = byte(v >> 16)
		img.Pix[byteOffset+2] = byte(v >> 8)
		img.Pix[byteOffset+3] = byte(v)
	}
}

// readPackedBits reads n (<=8) MSB-first packed bits starting at absolute
// bit offset within img.Pix; rows are not padded, per the sub-byte packing
// convention.
func (img *Image) readPackedBits(bitOffset, n int) uint32 {
	var v uint32
	for i := 0; i < n; i++ {
		byteIdx := (bitOffset + i) / 8
		bitIdx := 7 - uint((bitOffset+i)%8)
		bit := (img.Pix[byteIdx] >> bitIdx) & 1
		v = v<<1 | uint32(bit)
	}
	return v
}

func (img *Image) writePackedBits(bitOffset, n int, v uint32) {
	for i := 0; i < n; i++ {
		bit := byte((v >> uint(n-1-i)) & 1)
		byteIdx := (bitOffset + i) / 8
		bitIdx := 7 - uint((bitOffset+i)%8)
		if bit == 1 {
			img.Pix[byteIdx] |= 1 << bitIdx
		} else {
			img.Pix[byteIdx] &^= 1 << bitIdx
		}
	}
}

// getPixel returns the raw channel values of pixel (x,y). No bounds check.
func (img *Image) getPixel(x, y int) []uint32 {
	out := make([]uint32, img.NumChannels)
	for c := range out {
		out[c] = img.getChannelRaw(x, y, c)
	}
	return out
}

// setPixel writes raw channel values to pixel (x,y). No bounds check.
func (img *Image) setPixel(x, y int, channels []uint32) {
	for c := 0; c < img.NumChannels && c < len(channels); c++ {
		img.setChannelRaw(x, y, c, channels[c])
	}
}

// getPixelSafe returns 0 (transparent black) for out-of-bounds coordinates,
// otherwise behaves like getPixel.
func (img *Image) getPixelSafe(x, y int) []uint32 {
	if x < 0 || y < 0 || x >= img.Width || y >= img.Height {
		return make([]uint32, img.NumChannels)
	}
	return img.getPixel(x, y)
}

func clampChannel(v int, max int) uint32 {
	if v < 0 {
		return 0
	}
	if v > max {
		return uint32(max)
	}
	return uint32(v)
}

// setPixelRgb writes an RGB triple, clamped to [0, maxChannelValue].
func (img *Image) setPixelRgb(x, y int, r, g, b int) {
	max := int(img.MaxChannelValue())
	vals := []uint32{clampChannel(r, max), clampChannel(g, max), clampChannel(b, max)}
	img.setPixel(x, y, vals)
}

// setPixelRgba writes an RGBA quad, clamped to [0, maxChannelValue].
func (img *Image) setPixelRgba(x, y int, r, g, b, a int) {
	max := int(img.MaxChannelValue())
	vals := []uint32{clampChannel(r, max), clampChannel(g, max), clampChannel(b, max), clampChannel(a, max)}
	img.setPixel(x, y, vals)
}

// getPixelFloat returns channel c of pixel (x,y) as a float64, correctly
// reinterpreting float-backed formats via their bit pattern; integer
// formats return their raw, unscaled value.
func (img *Image) getPixelFloat(x, y, c int) float64 {
	switch img.Format {
	case FormatF16:
		return float64(halfToFloat32(uint16(img.getChannelRaw(x, y, c))))
	case FormatF32:
		return float64(float32FromBits(img.getChannelRaw(x, y, c)))
	case FormatF64:
		bps := img.Format.bitsPerSample()
		byteOffset := img.sampleIndex(x, y, c) * (bps / 8)
		bits := uint64(0)
		for i := 0; i < 8; i++ {
			bits = bits<<8 | uint64(img.Pix[byteOffset+i])
		}
		return float64FromBits(bits)
	default:
		return float64(img.getChannelRaw(x, y, c))
	}
}

// getPixelInterpolate performs subpixel sampling at (fx, fy) using the
// requested mode. Pixels beyond the image boundary reuse the nearest
// in-bounds (center) value.
func (img *Image) getPixelInterpolate(fx, fy float64, mode InterpolationMode) []float64 {
	switch mode {
	case InterpNearest:
		x := int(math.Floor(fx + 0.5))
		y := int(math.Floor(fy + 0.5))
		return img.sampleClamped(x, y)
	case InterpCubic:
		return img.interpolateCubic(fx, fy)
	default:
		return img.interpolateLinear(fx, fy)
	}
}

func (img *Image) clampCoord(v, max int) int {
	if v < 0 {
		return 0
	}
	if v > max {
		return max
	}
	return v
}

// sampleClamped reads all channels at (x,y), clamping out-of-range
// coordinates to the nearest edge pixel (the "center" clamp policy).
func (img *Image) sampleClamped(x, y int) []float64 {
	x = img.clampCoord(x, img.Width-1)
	y = img.clampCoord(y, img.Height-1)
	out := make([]float64, img.NumChannels)
	for c := range out {
		out[c] = img.getPixelFloat(x, y, c)
	}
	return out
}

func (img *Image) interpolateLinear(fx, fy float64) []float64 {
	x0 := int(math.Floor(fx))
	y0 := int(math.Floor(fy))
	dx := fx - float64(x0)
	dy := fy - float64(y0)

	p00 := img.sampleClamped(x0, y0)
	p10 := img.sampleClamped(x0+1, y0)
	p01 := img.sampleClamped(x0, y0+1)
	p11 := img.sampleClamped(x0+1, y0+1)

	out := make([]float64, img.NumChannels)
	for c := range out {
		top := p00[c]*(1-dx) + p10[c]*dx
		bot := p01[c]*(1-dx) + p11[c]*dx
		out[c] = top*(1-dy) + bot*dy
	}
	return out
}

// catmullRom evaluates the Catmull-Rom-like cubic kernel at distance d
// given the four samples (p, c, n, a) = (previous, current, next, after).
func catmullRom(d, p, c, n, a float64) float64 {
	return c + 0.5*(d*(-p+n)+d*d*(2*p-5*c+4*n-a)+d*d*d*(-p+3*c-3*n+a))
}

func (img *Image) interpolateCubic(fx, fy float64) []float64 {
	x1 := int(math.Floor(fx))
	y1 := int(math.Floor(fy))
	dx := fx - float64(x1)
	dy := fy - float64(y1)

	out := make([]float64, img.NumChannels)
	rows := make([][]float64, 4)
	for j := -1; j <= 2; j++ {
		cols := make([][]float64, 4)
		for i := -1; i <= 2; i++ {
			cols[i+1] = img.sampleClamped(x1+i, y1+j)
		}
		row := make([]float64, img.NumChannels)
		for c := range row {
			row[c] = catmullRom(dx, cols[0][c], cols[1][c], cols[2][c], cols[3][c])
		}
		rows[j+1] = row
	}
	for c := range out {
		out[c] = catmullRom(dy, rows[0][c], rows[1][c], rows[2][c], rows[3][c])
	}
	return out
}

// PixelVisitor is called once per pixel by iter, in row-major order. The
// returned slice, if non-nil, is written back to the pixel.
type PixelVisitor func(x, y int, channels []uint32) []uint32

// iter walks every pixel in row-major order, allowing in-place mutation.
func (img *Image) iter(visit PixelVisitor) {
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			ch := img.getPixel(x, y)
			if out := visit(x, y, ch); out != nil {
				img.setPixel(x, y, out)
			}
		}
	}
}

// ColorOrder selects the channel ordering emitted by getBytes.
type ColorOrder int

const (
	OrderRGBA ColorOrder = iota
	OrderBGRA
	OrderABGR
	OrderARGB
	OrderRGB
	OrderBGR
	OrderLuminance
)

// getBytes emits the pixel buffer reordered to the requested byte layout.
// Output length is width*height*channelsOut*bytesPerSample.
func (img *Image) getBytes(order ColorOrder) []byte {
	bps := img.bytesPerSample()
	if bps == 0 {
		bps = 1
	}
	perm, channelsOut := colorOrderPermutation(order, img.NumChannels)
	out := make([]byte, img.Width*img.Height*channelsOut*bps)
	pos := 0
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			ch := img.getPixel(x, y)
			for _, c := range perm {
				v := lookupChannel(ch, c, img.NumChannels)
				pos += writeSample(out[pos:], v, bps)
			}
		}
	}
	return out
}

// lookupChannel maps a logical channel selector (0=R,1=G,2=B,3=A) onto the
// image's actual channel count: 1-channel images report luminance for R/G/B
// and max value for A; 2-channel images are luminance+alpha.
func lookupChannel(ch []uint32, sel, numChannels int) uint32 {
	switch numChannels {
	case 1:
		if sel == 3 {
			return 0xFFFFFFFF
		}
		return ch[0]
	case 2:
		if sel == 3 {
			return ch[1]
		}
		return ch[0]
	default:
		if sel < 0 {
			return uint32(luminance(float64(ch[0]), float64(ch[1]), float64(ch[2])))
		}
		if sel < len(ch) {
			return ch[sel]
		}
		return 0xFFFFFFFF
	}
}

// colorOrderPermutation returns the channel-selector sequence (0=R,1=G,2=B,
// 3=A, -1=luminance) for a given output order, plus its channel count.
func colorOrderPermutation(order ColorOrder, numChannels int) ([]int, int) {
	switch order {
	case OrderBGRA:
		return []int{2, 1, 0, 3}, 4
	case OrderABGR:
		return []int{3, 2, 1, 0}, 4
	case OrderARGB:
		return []int{3, 0, 1, 2}, 4
	case OrderRGB:
		return []int{0, 1, 2}, 3
	case OrderBGR:
		return []int{2, 1, 0}, 3
	case OrderLuminance:
		if numChannels <= 2 {
			return []int{0}, 1
		}
		return []int{-1}, 1
	default:
		return []int{0, 1, 2, 3}, 4
	}
}

func writeSample(dst []byte, v uint32, bps int) int {
	switch bps {
	case 1:
		dst[0] = byte(v)
	case 2:
		dst[0] = byte(v >> 8)
		dst[1] = byte(v)
	case 4:
		dst[0] = byte(v >> 24)
		dst[1] = byte(v >> 16)
		dst[2] = byte(v >> 8)
		dst[3] = byte(v)
	default:
		dst[0] = byte(v)
		return 1
	}
	return bps
}

// composeOp combines two images channel-by-channel into a new image sized
// to the overlap min(width,other.width) x min(height,other.height).
func (img *Image) composeOp(other *Image, op func(a, b uint32) uint32) *Image {
	w := img.Width
	if other.Width < w {
		w = other.Width
	}
	h := img.Height
	if other.Height < h {
		h = other.Height
	}
	out := NewImage(w, h, img.Format, img.NumChannels, false)
	max := uint32(img.MaxChannelValue())
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			a := img.getPixel(x, y)
			b := other.getPixel(x, y)
			res := make([]uint32, img.NumChannels)
			for c := range res {
				v := op(a[c], b[c])
				if img.Format != FormatF16 && img.Format != FormatF32 && img.Format != FormatF64 && v > max {
					v = max
				}
				res[c] = v
			}
			out.setPixel(x, y, res)
		}
	}
	return out
}

func (img *Image) addImage(other *Image) *Image {
	return img.composeOp(other, func(a, b uint32) uint32 { return a + b })
}

func (img *Image) subtractImage(other *Image) *Image {
	return img.composeOp(other, func(a, b uint32) uint32 {
		if b > a {
			return 0
		}
		return a - b
	})
}

func (img *Image) multiplyImage(other *Image) *Image {
	return img.composeOp(other, func(a, b uint32) uint32 { return a * b })
}

func (img *Image) orImage(other *Image) *Image {
	return img.composeOp(other, func(a, b uint32) uint32 { return a | b })
}

func (img *Image) andImage(other *Image) *Image {
	return img.composeOp(other, func(a, b uint32) uint32 { return a & b })
}

func (img *Image) modImage(other *Image) *Image {
	return img.composeOp(other, func(a, b uint32) uint32 {
		if b == 0 {
			return 0
		}
		return a % b
	})
}
