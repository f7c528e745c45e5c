// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rasterimg

import (
	"bytes"

	"golang.org/x/image/bmp"
)

var bmpSignature = []byte{0x42, 0x4D}

// bmpCodec decodes BMP via golang.org/x/image/bmp ("format-specific
// header sniffers for BMP ... thin parse-and-dispatch" is out of scope for
// a hand-rolled decoder here).
type bmpCodec struct {
	data []byte
}

func (c *bmpCodec) isValidFile(data []byte) bool {
	return bytes.HasPrefix(data, bmpSignature)
}

func (c *bmpCodec) startDecode(data []byte) (*DecodeInfo, error) {
	if !c.isValidFile(data) {
		return nil, wrapFormatError("startDecode", "bmp", ErrInvalidSignature)
	}
	cfg, err := bmp.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, wrapFormatError("startDecode", "bmp", err)
	}
	c.data = data
	return &DecodeInfo{Width: cfg.Width, Height: cfg.Height, NumFrames: 1}, nil
}

func (c *bmpCodec) decodeFrame(frameIndex int) (*Image, error) {
	if frameIndex != 0 || c.data == nil {
		return nil, wrapFormatError("decodeFrame", "bmp", ErrInvalidPixelCoordinate)
	}
	img, err := bmp.Decode(bytes.NewReader(c.data))
	if err != nil {
		return nil, wrapFormatError("decodeFrame", "bmp", err)
	}
	return fromGoImage(img), nil
}

// DecodeBMP is the convenience single-call entry point for the BMP codec.
func DecodeBMP(data []byte) (*Image, error) {
	return decode(&bmpCodec{}, data)
}
