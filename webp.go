// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rasterimg

import (
	"bytes"

	"golang.org/x/image/webp"
)

// webpCodec decodes VP8/VP8L WebP via golang.org/x/image/webp ("the
// WebP VP8/VP8L tree decoders ... reuse the same I/O and pixel model" is
// explicitly out of scope for this engine's own implementation).
type webpCodec struct {
	data []byte
}

func (c *webpCodec) isValidFile(data []byte) bool {
	if len(data) < 12 {
		return false
	}
	return bytes.Equal(data[0:4], []byte("RIFF")) && bytes.Equal(data[8:12], []byte("WEBP"))
}

func (c *webpCodec) startDecode(data []byte) (*DecodeInfo, error) {
	if !c.isValidFile(data) {
		return nil, wrapFormatError("startDecode", "webp", ErrInvalidSignature)
	}
	cfg, err := webp.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, wrapFormatError("startDecode", "webp", err)
	}
	c.data = data
	return &DecodeInfo{Width: cfg.Width, Height: cfg.Height, NumFrames: 1}, nil
}

func (c *webpCodec) decodeFrame(frameIndex int) (*Image, error) {
	if frameIndex != 0 || c.data == nil {
		return nil, wrapFormatError("decodeFrame", "webp", ErrInvalidPixelCoordinate)
	}
	img, err := webp.Decode(bytes.NewReader(c.data))
	if err != nil {
		return nil, wrapFormatError("decodeFrame", "webp", err)
	}
	return fromGoImage(img), nil
}

// DecodeWebP is the convenience single-call entry point for the WebP codec.
func DecodeWebP(data []byte) (*Image, error) {
	return decode(&webpCodec{}, data)
}
