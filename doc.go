// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package rasterimg implements decoding (and limited round-trip encoding) of
// raster images across a family of container and compression formats: TIFF,
// PNG, JPEG, BMP, ICO, GIF, WebP, PVR, PSD and PNM.
//
// # Overview
//
// The package exposes one uniform in-memory pixel buffer, [Image], regardless
// of source format. A decoder reads a format's own header and compressed
// payload and fills an Image; a small set of geometric transforms (flip,
// rotate, resize, crop, trim) and colour operations (blend, colour-space
// conversion) then operate uniformly on that buffer.
//
// TIFF receives the most complete treatment: its tag directory, tile/strip
// layout, and the LZW/PackBits/Deflate/CCITT-Fax decompressors it can carry
// are implemented in full, since TIFF exercises nearly every piece of the
// shared substrate (the endian-aware [InputBuffer], the MSB-first
// [BitReader], and the pixel reconstruction paths in [Image]). The remaining
// formats are thin header sniffers that either decode directly (PNM, PVR,
// PSD's composite layer) or delegate to the standard library or
// golang.org/x/image for their container/entropy stage (PNG, JPEG, GIF, BMP,
// WebP) before landing samples in the same Image.
//
// Every decoder implements the small [Decoder] capability contract:
// isValidFile, startDecode and decodeFrame, driven by the package-level
// decode helper. GIF and multi-page TIFF can also be decoded into a
// [FrameAnimation] (DecodeGIFAnimation, DecodeTiffAnimation); every other
// format, WebP included, decodes to a single [Image], and no length-one
// animation is built for single-frame formats.
package rasterimg

// BUG(rsc): Colour management beyond ICC passthrough storage, animation
// compositing beyond frame storage, printing/rendering and hardware
// acceleration are out of scope; see the package's design notes.

// Debug, when true, enables verbose decode-path logging via debugf. It is
// off by default; tests and callers investigating a partial-image fallback
// may turn it on.
var Debug = false
