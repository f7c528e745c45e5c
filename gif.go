// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rasterimg

import (
	"bytes"
	goimage "image/gif"
)

var gifSignatures = [][]byte{
	[]byte("GIF87a"),
	[]byte("GIF89a"),
}

// gifCodec decodes multi-frame GIF via the standard library's LZW-based
// decoder (LZW's contribution is captured by this engine's own TIFF-
// dialect LZW in lzw.go; GIF's own variable-width LZW framing is an
// out-of-scope container detail), converting frames into a FrameAnimation.
type gifCodec struct {
	data  []byte
	anim  *FrameAnimation
	goGif *goimage.GIF
}

func (c *gifCodec) isValidFile(data []byte) bool {
	for _, sig := range gifSignatures {
		if bytes.HasPrefix(data, sig) {
			return true
		}
	}
	return false
}

func (c *gifCodec) startDecode(data []byte) (*DecodeInfo, error) {
	if !c.isValidFile(data) {
		return nil, wrapFormatError("startDecode", "gif", ErrInvalidSignature)
	}
	g, err := goimage.DecodeAll(bytes.NewReader(data))
	if err != nil {
		return nil, wrapFormatError("startDecode", "gif", err)
	}
	c.data = data
	c.goGif = g

	anim := NewFrameAnimation(g.Config.Width, g.Config.Height, FrameTypeAnimation)
	anim.LoopCount = g.LoopCount
	for i, frameImg := range g.Image {
		b := frameImg.Bounds()
		converted := fromGoImage(frameImg)
		dispose := DisposeNone
		if i < len(g.Disposal) {
			switch g.Disposal[i] {
			case goimage.DisposalBackground:
				dispose = DisposeClear
			case goimage.DisposalPrevious:
				dispose = DisposePrevious
			}
		}
		duration := 0
		if i < len(g.Delay) {
			duration = g.Delay[i] * 10 // GIF delay is in 100ths of a second
		}
		anim.Frames = append(anim.Frames, Frame{
			Image:         converted,
			XOffset:       b.Min.X,
			YOffset:       b.Min.Y,
			Duration:      duration,
			DisposeMethod: dispose,
			BlendMethod:   BlendOver,
		})
	}
	c.anim = anim

	return &DecodeInfo{Width: anim.Width, Height: anim.Height, NumFrames: len(anim.Frames)}, nil
}

func (c *gifCodec) decodeFrame(frameIndex int) (*Image, error) {
	if c.anim == nil || frameIndex < 0 || frameIndex >= len(c.anim.Frames) {
		return nil, wrapFormatError("decodeFrame", "gif", ErrInvalidPixelCoordinate)
	}
	return c.anim.Frames[frameIndex].Image, nil
}

// DecodeGIF is the convenience single-call entry point for the GIF codec's
// first frame.
func DecodeGIF(data []byte) (*Image, error) {
	return decode(&gifCodec{}, data)
}

// DecodeGIFAnimation decodes every frame of a GIF into a FrameAnimation.
func DecodeGIFAnimation(data []byte) (*FrameAnimation, error) {
	c := &gifCodec{}
	if _, err := c.startDecode(data); err != nil {
		return nil, err
	}
	return c.anim, nil
}
