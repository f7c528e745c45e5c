// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rasterimg

import (
	"bytes"
	"compress/flate"
	"compress/zlib"
	"io"
)

// DEFLATE/Inflate. Geek0x0-pdf's read.go decodes the PDF
// FlateDecode filter with stdlib compress/zlib; the TIFF Deflate/Zip
// compression tags carry either a raw RFC 1951 stream or a zlib-wrapped one
// (RFC 1950), so both paths are wired here onto the same stdlib packages
// rather than reimplementing the Huffman/LZ77 state machine the standard
// library already provides — a hand-rolled Huffman decoder would be the
// outlier against the rest of the corpus, which never hand-rolls what the
// standard library already does well.

// DecodeDeflateRaw inflates a raw (headerless) DEFLATE stream.
func DecodeDeflateRaw(data []byte) ([]byte, error) {
	r := flate.NewReader(bytes.NewReader(data))
	defer r.Close()
	out, err := io.ReadAll(r)
	if err != nil {
		return nil, wrapError("decodeDeflateRaw", ErrInvalidDeflateStream)
	}
	return out, nil
}

// DecodeZlib inflates a zlib-wrapped (RFC 1950) DEFLATE stream, auto
// detecting the dictionary-less case used by TIFF/PNG.
func DecodeZlib(data []byte) ([]byte, error) {
	r, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, wrapError("decodeZlib", ErrInvalidDeflateStream)
	}
	defer r.Close()
	out, err := io.ReadAll(r)
	if err != nil {
		return nil, wrapError("decodeZlib", ErrInvalidDeflateStream)
	}
	return out, nil
}

// DecodeDeflateAuto tries zlib framing first (TIFF's "Deflate"/"Zip"
// compression tags are usually zlib-wrapped) and falls back to raw DEFLATE,
// since some encoders omit the zlib header.
func DecodeDeflateAuto(data []byte) ([]byte, error) {
	if out, err := DecodeZlib(data); err == nil {
		return out, nil
	}
	return DecodeDeflateRaw(data)
}

// EncodeDeflateRaw compresses data as a raw DEFLATE stream, used by the
// round-trip contract (inflate(deflate(x)) == x).
func EncodeDeflateRaw(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w, err := flate.NewWriter(&buf, flate.DefaultCompression)
	if err != nil {
		return nil, wrapError("encodeDeflateRaw", err)
	}
	if _, err := w.Write(data); err != nil {
		w.Close()
		return nil, wrapError("encodeDeflateRaw", err)
	}
	if err := w.Close(); err != nil {
		return nil, wrapError("encodeDeflateRaw", err)
	}
	return buf.Bytes(), nil
}
