// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rasterimg

var tiffSignatureLE = []byte{0x49, 0x49, 0x2A, 0x00}
var tiffSignatureBE = []byte{0x4D, 0x4D, 0x00, 0x2A}

// tiffCodec adapts DecodeTiffAnimation to the Decoder contract.
type tiffCodec struct {
	anim *FrameAnimation
}

func (c *tiffCodec) isValidFile(data []byte) bool {
	if len(data) < 4 {
		return false
	}
	for _, sig := range [][]byte{tiffSignatureLE, tiffSignatureBE} {
		if data[0] == sig[0] && data[1] == sig[1] && data[2] == sig[2] && data[3] == sig[3] {
			return true
		}
	}
	return false
}

func (c *tiffCodec) startDecode(data []byte) (*DecodeInfo, error) {
	if !c.isValidFile(data) {
		return nil, wrapFormatError("startDecode", "tiff", ErrInvalidSignature)
	}
	anim, err := DecodeTiffAnimation(data)
	if err != nil {
		return nil, err
	}
	c.anim = anim
	return &DecodeInfo{Width: anim.Width, Height: anim.Height, NumFrames: len(anim.Frames)}, nil
}

func (c *tiffCodec) decodeFrame(frameIndex int) (*Image, error) {
	if c.anim == nil || frameIndex < 0 || frameIndex >= len(c.anim.Frames) {
		return nil, wrapFormatError("decodeFrame", "tiff", ErrInvalidPixelCoordinate)
	}
	return c.anim.Frames[frameIndex].Image, nil
}
