// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rasterimg

import "fmt"

var psdSignature = []byte{0x38, 0x42, 0x50, 0x53} // "8BPS"

// psdColorMode values from the PSD file header.
const (
	psdModeBitmap       = 0
	psdModeGrayscale    = 1
	psdModeIndexed      = 2
	psdModeRGB          = 3
	psdModeCMYK         = 4
	psdModeMultichannel = 7
	psdModeDuotone      = 8
	psdModeLab          = 9
)

// psdCodec reads the PSD header plus the merged composite image section
// only; layer pixel data is not decoded (layer rendering is out of scope), though
// layer names are surfaced via the engine's textData map when present.
type psdCodec struct {
	data          []byte
	width, height int
	channels      int
	depth         int
	colorMode     int
	compositeOff  int
	layerNames    map[string]string
}

// parsePsdLayerNames walks the layer info sub-section (the first sectionLen
// bytes starting at buf's current position) and collects each layer
// record's Pascal-string name. It always returns with buf positioned
// wherever parsing stopped; the caller restores the exact section end
// itself, so a malformed or partially-parsed layer record only loses the
// remaining names rather than the whole decode.
func parsePsdLayerNames(buf *InputBuffer, sectionLen int) map[string]string {
	if sectionLen < 6 {
		return nil
	}
	sectionEnd := buf.Position() + sectionLen

	layerInfoLen, err := buf.ReadUint32()
	if err != nil || layerInfoLen < 2 {
		return nil
	}
	layerInfoEnd := buf.Position() + int(layerInfoLen)
	if layerInfoEnd > sectionEnd {
		layerInfoEnd = sectionEnd
	}

	count16, err := buf.ReadInt16()
	if err != nil {
		return nil
	}
	count := int(count16)
	if count < 0 {
		// A negative count signals the first alpha channel is the
		// transparency mask; the layer count itself is the absolute value.
		count = -count
	}

	names := make(map[string]string)
	for i := 0; i < count && buf.Position() < layerInfoEnd; i++ {
		if _, err := buf.ReadBytes(16); err != nil { // rect: top/left/bottom/right
			break
		}
		numChannels, err := buf.ReadUint16()
		if err != nil {
			break
		}
		if _, err := buf.ReadBytes(int(numChannels) * 6); err != nil { // channel info
			break
		}
		if _, err := buf.ReadBytes(4); err != nil { // blend mode signature "8BIM"
			break
		}
		if _, err := buf.ReadBytes(4); err != nil { // blend mode key
			break
		}
		if _, err := buf.ReadBytes(4); err != nil { // opacity, clipping, flags, filler
			break
		}
		extraLen, err := buf.ReadUint32()
		if err != nil {
			break
		}
		extraEnd := buf.Position() + int(extraLen)

		maskLen, err := buf.ReadUint32()
		if err != nil {
			break
		}
		buf.Skip(int(maskLen))

		blendRangesLen, err := buf.ReadUint32()
		if err != nil {
			break
		}
		buf.Skip(int(blendRangesLen))

		nameLen, err := buf.Read()
		if err != nil {
			break
		}
		name, err := buf.ReadString(int(nameLen))
		if err != nil {
			break
		}
		if name != "" {
			names[fmt.Sprintf("Layer %d Name", i)] = name
		}

		buf.SetPosition(extraEnd)
	}

	if len(names) == 0 {
		return nil
	}
	return names
}

func (c *psdCodec) isValidFile(data []byte) bool {
	if len(data) < 26 {
		return false
	}
	if data[0] != psdSignature[0] || data[1] != psdSignature[1] || data[2] != psdSignature[2] || data[3] != psdSignature[3] {
		return false
	}
	version := uint16(data[4])<<8 | uint16(data[5])
	return version == 1
}

func (c *psdCodec) startDecode(data []byte) (*DecodeInfo, error) {
	if !c.isValidFile(data) {
		return nil, wrapFormatError("startDecode", "psd", ErrInvalidSignature)
	}
	buf := NewInputBufferOrder(data, true)
	buf.Skip(4) // signature
	buf.Skip(2) // version
	buf.Skip(6) // reserved

	channels, err := buf.ReadUint16()
	if err != nil {
		return nil, wrapFormatError("startDecode", "psd", err)
	}
	height, err := buf.ReadUint32()
	if err != nil {
		return nil, wrapFormatError("startDecode", "psd", err)
	}
	width, err := buf.ReadUint32()
	if err != nil {
		return nil, wrapFormatError("startDecode", "psd", err)
	}
	depth, err := buf.ReadUint16()
	if err != nil {
		return nil, wrapFormatError("startDecode", "psd", err)
	}
	colorMode, err := buf.ReadUint16()
	if err != nil {
		return nil, wrapFormatError("startDecode", "psd", err)
	}

	if width == 0 || height == 0 {
		return nil, wrapFormatError("startDecode", "psd", ErrInvalidHeader)
	}

	// Skip color mode data section.
	colorDataLen, err := buf.ReadUint32()
	if err != nil {
		return nil, wrapFormatError("startDecode", "psd", err)
	}
	buf.Skip(int(colorDataLen))

	// Skip image resources section.
	resourcesLen, err := buf.ReadUint32()
	if err != nil {
		return nil, wrapFormatError("startDecode", "psd", err)
	}
	buf.Skip(int(resourcesLen))

	// Layer and mask information section: parsed (not merely skipped) for
	// layer names, which land in TextData; layer pixel data itself is not
	// decoded.
	layerInfoLen, err := buf.ReadUint32()
	if err != nil {
		return nil, wrapFormatError("startDecode", "psd", err)
	}
	sectionStart := buf.Position()
	c.layerNames = parsePsdLayerNames(buf, int(layerInfoLen))
	buf.SetPosition(sectionStart + int(layerInfoLen))

	c.data = data
	c.width, c.height = int(width), int(height)
	c.channels = int(channels)
	c.depth = int(depth)
	c.colorMode = int(colorMode)
	c.compositeOff = buf.Position()

	return &DecodeInfo{Width: c.width, Height: c.height, NumFrames: 1}, nil
}

func (c *psdCodec) decodeFrame(frameIndex int) (*Image, error) {
	if frameIndex != 0 || c.data == nil {
		return nil, wrapFormatError("decodeFrame", "psd", ErrInvalidPixelCoordinate)
	}
	buf := NewInputBufferOrder(c.data, true)
	buf.SetPosition(c.compositeOff)

	compression, err := buf.ReadUint16()
	if err != nil {
		return nil, wrapFormatError("decodeFrame", "psd", err)
	}

	bytesPerSample := c.depth / 8
	if bytesPerSample == 0 {
		bytesPerSample = 1
	}
	channelSize := c.width * c.height * bytesPerSample

	channelData := make([][]byte, c.channels)
	if compression == 1 {
		// RLE (PackBits): per-row byte counts for every channel precede
		// the data, for all channels' rows, in channel-major order.
		rowCounts := make([]int, c.channels*c.height)
		for i := range rowCounts {
			v, err := buf.ReadUint16()
			if err != nil {
				return nil, wrapFormatError("decodeFrame", "psd", err)
			}
			rowCounts[i] = int(v)
		}
		idx := 0
		for ch := 0; ch < c.channels; ch++ {
			out := make([]byte, 0, channelSize)
			for row := 0; row < c.height; row++ {
				n := rowCounts[idx]
				idx++
				raw, err := buf.ReadBytes(n)
				if err != nil {
					return nil, wrapFormatError("decodeFrame", "psd", err)
				}
				decoded, err := DecodePackBits(raw, c.width*bytesPerSample)
				if err != nil {
					return nil, wrapFormatError("decodeFrame", "psd", err)
				}
				out = append(out, decoded...)
			}
			channelData[ch] = out
		}
	} else {
		for ch := 0; ch < c.channels; ch++ {
			raw, err := buf.ReadBytes(channelSize)
			if err != nil {
				return nil, wrapFormatError("decodeFrame", "psd", err)
			}
			channelData[ch] = raw
		}
	}

	img, err := assemblePsdImage(c, channelData, bytesPerSample)
	if err != nil {
		return nil, err
	}
	if len(c.layerNames) > 0 {
		img.TextData = c.layerNames
	}
	return img, nil
}

func assemblePsdImage(c *psdCodec, channelData [][]byte, bytesPerSample int) (*Image, error) {
	numOut := 3
	if c.channels >= 4 && (c.colorMode == psdModeRGB) {
		numOut = 4
	}
	if c.colorMode == psdModeGrayscale || c.colorMode == psdModeBitmap {
		numOut = 1
		if c.channels >= 2 {
			numOut = 2
		}
	}

	img := NewImage(c.width, c.height, FormatU8, numOut, false)
	for y := 0; y < c.height; y++ {
		for x := 0; x < c.width; x++ {
			ch := make([]uint32, numOut)
			for cIdx := 0; cIdx < numOut && cIdx < len(channelData); cIdx++ {
				off := (y*c.width + x) * bytesPerSample
				if off+bytesPerSample > len(channelData[cIdx]) {
					continue
				}
				ch[cIdx] = readSampleAt(channelData[cIdx], off, bytesPerSample)
				if bytesPerSample > 1 {
					ch[cIdx] >>= uint((bytesPerSample - 1) * 8)
				}
			}
			img.setPixel(x, y, ch)
		}
	}
	return img, nil
}

// DecodePSD is the convenience single-call entry point for the PSD codec,
// returning only the merged composite image.
func DecodePSD(data []byte) (*Image, error) {
	return decode(&psdCodec{}, data)
}
