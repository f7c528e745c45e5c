// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rasterimg

// DecodeInfo is the result of a codec's header-only parse, returned by
// startDecode before any frame is materialized.
type DecodeInfo struct {
	Width           int
	Height          int
	NumFrames       int
	BackgroundColor *RGBA
}

// Decoder is the uniform per-format capability contract: a codec
// exposes signature sniffing, a header-only parse, and per-frame decode.
// decodeFrame is called only after a successful startDecode.
type Decoder interface {
	isValidFile(data []byte) bool
	startDecode(data []byte) (*DecodeInfo, error)
	decodeFrame(frameIndex int) (*Image, error)
}

// decode is the convenience entry point: startDecode then
// decodeFrame(frameIndex), defaulting frameIndex to 0.
func decode(d Decoder, data []byte, frameIndex ...int) (*Image, error) {
	if _, err := d.startDecode(data); err != nil {
		return nil, err
	}
	idx := 0
	if len(frameIndex) > 0 {
		idx = frameIndex[0]
	}
	return d.decodeFrame(idx)
}

// registeredCodecs lists the format sniffers tried, in order, by
// DetectAndDecode. TIFF and PNG are most specific (longest magic) and
// ordered first to avoid a shorter magic shadowing a longer one.
var registeredCodecs = []func() Decoder{
	func() Decoder { return &pngCodec{} },
	func() Decoder { return &tiffCodec{} },
	func() Decoder { return &jpegCodec{} },
	func() Decoder { return &gifCodec{} },
	func() Decoder { return &icoCodec{} },
	func() Decoder { return &bmpCodec{} },
	func() Decoder { return &webpCodec{} },
	func() Decoder { return &psdCodec{} },
	func() Decoder { return &pvrCodec{} },
	func() Decoder { return &pnmCodec{} },
}

// DetectAndDecode sniffs data against every registered codec's magic bytes
// and decodes with the first match.
func DetectAndDecode(data []byte) (*Image, error) {
	for _, newCodec := range registeredCodecs {
		c := newCodec()
		if c.isValidFile(data) {
			return decode(c, data)
		}
	}
	return nil, wrapError("DetectAndDecode", ErrInvalidSignature)
}
