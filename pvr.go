// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rasterimg

// PVR container variants. detectVariant reports V3 when the file starts
// with the "PVR\x03" magic and V2 when "PVR!" sits at offset 44.
type pvrVariant int

const (
	pvrVariantNone pvrVariant = iota
	pvrVariantV2
	pvrVariantV3
)

const pvrV2HeaderSize = 52
const pvrV3HeaderSize = 52

// pvrCodec decodes PVRTC 4bpp RGB/RGBA textures, detecting the V2
// vs V3 container by its magic tag; the file size is not consulted.
type pvrCodec struct {
	data          []byte
	variant       pvrVariant
	width, height int
	hasAlpha      bool
}

func (c *pvrCodec) detectVariant(data []byte) pvrVariant {
	if len(data) >= 4 && data[0] == 'P' && data[1] == 'V' && data[2] == 'R' && data[3] == 3 {
		return pvrVariantV3
	}
	if len(data) >= pvrV2HeaderSize+4 {
		magic := data[44:48]
		if magic[0] == 'P' && magic[1] == 'V' && magic[2] == 'R' && magic[3] == '!' {
			return pvrVariantV2
		}
	}
	return pvrVariantNone
}

func (c *pvrCodec) isValidFile(data []byte) bool {
	return c.detectVariant(data) != pvrVariantNone
}

func (c *pvrCodec) startDecode(data []byte) (*DecodeInfo, error) {
	variant := c.detectVariant(data)
	if variant == pvrVariantNone {
		return nil, wrapFormatError("startDecode", "pvr", ErrInvalidSignature)
	}
	c.variant = variant
	c.data = data

	buf := NewInputBufferOrder(data, false)
	switch variant {
	case pvrVariantV3:
		buf.Skip(4) // magic
		buf.Skip(4) // flags
		pixelFormat, err := buf.ReadUint64()
		if err != nil {
			return nil, wrapFormatError("startDecode", "pvr", err)
		}
		buf.Skip(4) // color space
		buf.Skip(4) // channel type
		height, err := buf.ReadUint32()
		if err != nil {
			return nil, wrapFormatError("startDecode", "pvr", err)
		}
		width, err := buf.ReadUint32()
		if err != nil {
			return nil, wrapFormatError("startDecode", "pvr", err)
		}
		c.width, c.height = int(width), int(height)
		c.hasAlpha = pixelFormat == 3 // PVRTC 4bpp RGBA pixel format id
	case pvrVariantV2:
		headerSize, err := buf.ReadUint32()
		if err != nil || int(headerSize) != pvrV2HeaderSize {
			return nil, wrapFormatError("startDecode", "pvr", ErrInvalidHeader)
		}
		height, err := buf.ReadUint32()
		if err != nil {
			return nil, wrapFormatError("startDecode", "pvr", err)
		}
		width, err := buf.ReadUint32()
		if err != nil {
			return nil, wrapFormatError("startDecode", "pvr", err)
		}
		buf.Skip(4) // mipmap count
		pfFlags, err := buf.ReadUint32()
		if err != nil {
			return nil, wrapFormatError("startDecode", "pvr", err)
		}
		c.width, c.height = int(width), int(height)
		c.hasAlpha = pfFlags&0xFF == 0x18 // OGL_PVRTC4 with alpha channel flag
	}

	if c.width <= 0 || c.height <= 0 {
		return nil, wrapFormatError("startDecode", "pvr", ErrInvalidHeader)
	}

	return &DecodeInfo{Width: c.width, Height: c.height, NumFrames: 1}, nil
}

func (c *pvrCodec) decodeFrame(frameIndex int) (*Image, error) {
	if frameIndex != 0 || c.data == nil {
		return nil, wrapFormatError("decodeFrame", "pvr", ErrInvalidPixelCoordinate)
	}
	var headerSize int
	switch c.variant {
	case pvrVariantV3:
		headerSize = pvrV3HeaderSize
	case pvrVariantV2:
		headerSize = pvrV2HeaderSize
	default:
		return nil, wrapFormatError("decodeFrame", "pvr", ErrInvalidHeader)
	}
	payload := c.data[headerSize:]
	return decodePVRTC4bpp(payload, c.width, c.height, c.hasAlpha)
}

// pvrtcBlock is one decoded 8-byte PVRTC block: two endpoint colors plus
// their modulation data and punch-through flag.
type pvrtcBlock struct {
	colorA, colorB   [4]int // r,g,b,a, already expanded to 0..255
	modulation       uint32
	punchThrough     bool
}

// decodePVRTC4bpp decompresses a PVRTC 4-bits-per-pixel texture (RGB or
// RGBA) using the standard bilinear block-interpolation algorithm: each
// pixel blends the endpoint colors of its 2x2 neighborhood of blocks,
// weighted by distance, then is modulated by the high-frequency bit data.
func decodePVRTC4bpp(data []byte, width, height int, hasAlpha bool) (*Image, error) {
	if width <= 0 || height <= 0 {
		return nil, wrapFormatError("decodePVRTC4bpp", "pvr", ErrInvalidHeader)
	}
	blocksX := width / 4
	blocksY := height / 4
	if blocksX == 0 {
		blocksX = 1
	}
	if blocksY == 0 {
		blocksY = 1
	}
	numBlocks := blocksX * blocksY
	if len(data) < numBlocks*8 {
		return nil, wrapFormatError("decodePVRTC4bpp", "pvr", ErrEndOfStream)
	}

	blocks := make([]pvrtcBlock, numBlocks)
	for i := 0; i < numBlocks; i++ {
		off := i * 8
		modulation := uint32(data[off]) | uint32(data[off+1])<<8 | uint32(data[off+2])<<16 | uint32(data[off+3])<<24
		colorWord := uint32(data[off+4]) | uint32(data[off+5])<<8 | uint32(data[off+6])<<16 | uint32(data[off+7])<<24
		blocks[i] = decodePvrtcColorWord(colorWord, modulation)
	}

	img := NewImage(width, height, FormatU8, 4, false)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, a := interpolatePvrtcPixel(blocks, blocksX, blocksY, x, y)
			if !hasAlpha {
				a = 255
			}
			img.setPixelRgba(x, y, r, g, b, a)
		}
	}
	return img, nil
}

// decodePvrtcColorWord splits the 4-byte color word of a PVRTC block into
// its two endpoint colors (5/5/5 or 4/4/4/3 depending on the alpha bit)
// and records the punch-through-alpha flag.
func decodePvrtcColorWord(colorWord, modulation uint32) pvrtcBlock {
	var blk pvrtcBlock
	blk.modulation = modulation
	blk.punchThrough = colorWord&1 == 0

	// Color A: bit 15 of colorWord selects opaque (bit15=1, RGB555) vs
	// translucent (bit15=0, ARGB3444) representation in bits 0..14.
	aOpaque := colorWord&(1<<15) != 0
	if aOpaque {
		r := int((colorWord >> 10) & 0x1F)
		g := int((colorWord >> 5) & 0x1F)
		b := int(colorWord & 0x1F)
		blk.colorA = [4]int{expand5to8(r), expand5to8(g), expand5to8(b), 255}
	} else {
		a := int((colorWord >> 12) & 0x7)
		r := int((colorWord >> 8) & 0xF)
		g := int((colorWord >> 4) & 0xF)
		b := int(colorWord & 0xF)
		blk.colorA = [4]int{expand4to8(r), expand4to8(g), expand4to8(b), expand3to8(a)}
	}

	bOpaque := colorWord&(1<<31) != 0
	if bOpaque {
		r := int((colorWord >> 26) & 0x1F)
		g := int((colorWord >> 21) & 0x1F)
		b := int((colorWord >> 16) & 0x1F)
		blk.colorB = [4]int{expand5to8(r), expand5to8(g), expand5to8(b), 255}
	} else {
		a := int((colorWord >> 28) & 0x7)
		r := int((colorWord >> 24) & 0xF)
		g := int((colorWord >> 20) & 0xF)
		b := int((colorWord >> 16) & 0xF)
		blk.colorB = [4]int{expand4to8(r), expand4to8(g), expand4to8(b), expand3to8(a)}
	}
	return blk
}

func expand5to8(v int) int { return (v << 3) | (v >> 2) }
func expand4to8(v int) int { return (v << 4) | v }
func expand3to8(v int) int { return (v << 5) | (v << 2) | (v >> 1) }

// interpolatePvrtcPixel blends the endpoint colors of the 2x2 neighborhood
// of blocks surrounding (x,y) by bilinear distance weight, then applies the
// 2-bit modulation value for that pixel.
func interpolatePvrtcPixel(blocks []pvrtcBlock, blocksX, blocksY, x, y int) (r, g, b, a int) {
	bx := x / 4
	by := y / 4
	// Sub-block position determines which neighbor quadrant to blend with.
	fx := x%4 < 2
	fy := y%4 < 2

	nx := bx - 1
	if !fx {
		nx = bx + 1
	}
	ny := by - 1
	if !fy {
		ny = by + 1
	}
	nx = wrapIndex(nx, blocksX)
	ny = wrapIndex(ny, blocksY)
	bx = wrapIndex(bx, blocksX)
	by = wrapIndex(by, blocksY)

	weightX := pvrtcWeight(x % 4)
	weightY := pvrtcWeight(y % 4)

	b00 := blocks[by*blocksX+bx]
	b10 := blocks[by*blocksX+nx]
	b01 := blocks[ny*blocksX+bx]
	b11 := blocks[ny*blocksX+nx]

	blendColor := func(sel int) [4]int {
		var out [4]int
		for c := 0; c < 4; c++ {
			top := b00.colorA[c]*(8-weightX) + b10.colorA[c]*weightX
			bot := b01.colorA[c]*(8-weightX) + b11.colorA[c]*weightX
			colA := (top*(8-weightY) + bot*weightY) / 64

			top = b00.colorB[c]*(8-weightX) + b10.colorB[c]*weightX
			bot = b01.colorB[c]*(8-weightX) + b11.colorB[c]*weightX
			colB := (top*(8-weightY) + bot*weightY) / 64

			switch sel {
			case 0:
				out[c] = colA
			case 3:
				out[c] = colB
			case 1:
				out[c] = (colA*5 + colB*3) / 8
			default:
				out[c] = (colA*3 + colB*5) / 8
			}
		}
		return out
	}

	modSel := pvrtcModulationValue(b00.modulation, x%4, y%4, b00.punchThrough)
	col := blendColor(modSel)
	return col[0], col[1], col[2], col[3]
}

func wrapIndex(v, n int) int {
	if v < 0 {
		return v + n
	}
	if v >= n {
		return v - n
	}
	return v
}

// pvrtcWeight returns the bilinear weight (0..8) for a sub-block offset
// 0..3 along one axis.
func pvrtcWeight(offset int) int {
	switch offset {
	case 0:
		return 7
	case 1:
		return 5
	case 2:
		return 3
	default:
		return 1
	}
}

// pvrtcModulationValue extracts the 2-bit (or 1-bit, punch-through) mode
// selector for pixel (px,py) within its own block's 4x4 modulation grid.
func pvrtcModulationValue(modulation uint32, px, py int, punchThrough bool) int {
	bitIndex := uint(py*4+px) * 2
	v := int((modulation >> bitIndex) & 0x3)
	if punchThrough {
		// Punch-through mode only distinguishes opaque endpoints (0,3)
		// from a hard 50/50 blend (encoded as 1).
		if v == 1 {
			return 1
		}
		if v == 2 {
			return 3
		}
	}
	return v
}

// DecodePVR is the convenience single-call entry point for the PVR codec.
func DecodePVR(data []byte) (*Image, error) {
	return decode(&pvrCodec{}, data)
}
