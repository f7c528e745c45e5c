// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rasterimg

import (
	"bytes"
	goimage "image/jpeg"
)

var jpegSignature = []byte{0xFF, 0xD8, 0xFF}

// jpegCodec decodes baseline JPEG via the standard library ("JPEG
// baseline decoder ... reuse the same I/O and pixel model" is explicitly
// out of scope for this engine's own implementation).
type jpegCodec struct {
	data []byte
}

func (c *jpegCodec) isValidFile(data []byte) bool {
	return bytes.HasPrefix(data, jpegSignature)
}

func (c *jpegCodec) startDecode(data []byte) (*DecodeInfo, error) {
	if !c.isValidFile(data) {
		return nil, wrapFormatError("startDecode", "jpeg", ErrInvalidSignature)
	}
	cfg, err := goimage.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, wrapFormatError("startDecode", "jpeg", err)
	}
	c.data = data
	return &DecodeInfo{Width: cfg.Width, Height: cfg.Height, NumFrames: 1}, nil
}

func (c *jpegCodec) decodeFrame(frameIndex int) (*Image, error) {
	if frameIndex != 0 || c.data == nil {
		return nil, wrapFormatError("decodeFrame", "jpeg", ErrInvalidPixelCoordinate)
	}
	img, err := goimage.Decode(bytes.NewReader(c.data))
	if err != nil {
		return nil, wrapFormatError("decodeFrame", "jpeg", err)
	}
	return fromGoImage(img), nil
}

// DecodeJPEG is the convenience single-call entry point for the JPEG codec.
func DecodeJPEG(data []byte) (*Image, error) {
	return decode(&jpegCodec{}, data)
}
