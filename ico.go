// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rasterimg

var icoSignature = []byte{0x00, 0x00, 0x01, 0x00}

// icoEntry is one ICONDIRENTRY record.
type icoEntry struct {
	width, height int
	bitCount      int
	bytesInRes    int
	imageOffset   int
}

// icoCodec parses the ICONDIR/ICONDIRENTRY table and dispatches each
// embedded image to the PNG or BMP codec by sniffing its own magic bytes
// (ICO containers commonly nest BMP or PNG images).
type icoCodec struct {
	data    []byte
	entries []icoEntry
}

func (c *icoCodec) isValidFile(data []byte) bool {
	if len(data) < 6 {
		return false
	}
	return data[0] == icoSignature[0] && data[1] == icoSignature[1] &&
		data[2] == icoSignature[2] && data[3] == icoSignature[3]
}

func (c *icoCodec) startDecode(data []byte) (*DecodeInfo, error) {
	if !c.isValidFile(data) {
		return nil, wrapFormatError("startDecode", "ico", ErrInvalidSignature)
	}
	buf := NewInputBufferOrder(data, false)
	buf.Skip(4)
	count, err := buf.ReadUint16()
	if err != nil {
		return nil, wrapFormatError("startDecode", "ico", err)
	}

	entries := make([]icoEntry, 0, count)
	var maxW, maxH int
	for i := 0; i < int(count); i++ {
		w, err := buf.Read()
		if err != nil {
			return nil, wrapFormatError("startDecode", "ico", err)
		}
		h, err := buf.Read()
		if err != nil {
			return nil, wrapFormatError("startDecode", "ico", err)
		}
		buf.Skip(1) // color count
		buf.Skip(1) // reserved
		buf.Skip(2) // planes
		bitCount, err := buf.ReadUint16()
		if err != nil {
			return nil, wrapFormatError("startDecode", "ico", err)
		}
		bytesInRes, err := buf.ReadUint32()
		if err != nil {
			return nil, wrapFormatError("startDecode", "ico", err)
		}
		imageOffset, err := buf.ReadUint32()
		if err != nil {
			return nil, wrapFormatError("startDecode", "ico", err)
		}

		width, height := int(w), int(h)
		if width == 0 {
			width = 256
		}
		if height == 0 {
			height = 256
		}
		if width > maxW {
			maxW = width
		}
		if height > maxH {
			maxH = height
		}

		entries = append(entries, icoEntry{
			width: width, height: height,
			bitCount:    int(bitCount),
			bytesInRes:  int(bytesInRes),
			imageOffset: int(imageOffset),
		})
	}

	c.data = data
	c.entries = entries
	return &DecodeInfo{Width: maxW, Height: maxH, NumFrames: len(entries)}, nil
}

func (c *icoCodec) decodeFrame(frameIndex int) (*Image, error) {
	if frameIndex < 0 || frameIndex >= len(c.entries) {
		return nil, wrapFormatError("decodeFrame", "ico", ErrInvalidPixelCoordinate)
	}
	e := c.entries[frameIndex]
	if e.imageOffset+e.bytesInRes > len(c.data) {
		return nil, wrapFormatError("decodeFrame", "ico", ErrTruncatedTile)
	}
	nested := c.data[e.imageOffset : e.imageOffset+e.bytesInRes]

	png := &pngCodec{}
	if png.isValidFile(nested) {
		return decode(png, nested)
	}
	return decodeIcoBmpDib(nested, e.width, e.height)
}

// decodeIcoBmpDib handles the common case where an ICO entry stores a raw
// BITMAPINFOHEADER DIB (no BITMAPFILEHEADER) by synthesizing the 14-byte
// file header golang.org/x/image/bmp expects, then delegating to bmpCodec.
func decodeIcoBmpDib(dib []byte, width, height int) (*Image, error) {
	if len(dib) < 4 {
		return nil, wrapFormatError("decodeIcoBmpDib", "ico", ErrInvalidHeader)
	}
	header := make([]byte, 14+len(dib))
	header[0], header[1] = 'B', 'M'
	fileSize := uint32(len(header))
	header[2] = byte(fileSize)
	header[3] = byte(fileSize >> 8)
	header[4] = byte(fileSize >> 16)
	header[5] = byte(fileSize >> 24)
	// pixel data offset: file header (14) + DIB header size, read at dib[0:4].
	dibHeaderSize := uint32(dib[0]) | uint32(dib[1])<<8 | uint32(dib[2])<<16 | uint32(dib[3])<<24
	pixelOffset := 14 + dibHeaderSize
	header[10] = byte(pixelOffset)
	header[11] = byte(pixelOffset >> 8)
	header[12] = byte(pixelOffset >> 16)
	header[13] = byte(pixelOffset >> 24)
	copy(header[14:], dib)

	b := &bmpCodec{}
	return decode(b, header)
}

// DecodeICO decodes the first icon image in directory order of an ICO
// container; entries are not ranked by resolution.
func DecodeICO(data []byte) (*Image, error) {
	return decode(&icoCodec{}, data)
}
