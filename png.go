// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rasterimg

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	goimage "image/png"
	"io"
)

var pngSignature = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}

// pngCodec decodes PNG via the standard library (deflate + filter
// passes are an out-of-scope external collaborator; only the container
// dispatch and pixel-model adaptation belong to this engine).
type pngCodec struct {
	data []byte
	info *DecodeInfo
}

func (c *pngCodec) isValidFile(data []byte) bool {
	return bytes.HasPrefix(data, pngSignature)
}

func (c *pngCodec) startDecode(data []byte) (*DecodeInfo, error) {
	if !c.isValidFile(data) {
		return nil, wrapFormatError("startDecode", "png", ErrInvalidSignature)
	}
	cfg, err := goimage.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, wrapFormatError("startDecode", "png", err)
	}
	c.data = data
	c.info = &DecodeInfo{Width: cfg.Width, Height: cfg.Height, NumFrames: 1}
	return c.info, nil
}

func (c *pngCodec) decodeFrame(frameIndex int) (*Image, error) {
	if frameIndex != 0 || c.data == nil {
		return nil, wrapFormatError("decodeFrame", "png", ErrInvalidPixelCoordinate)
	}
	img, err := goimage.Decode(bytes.NewReader(c.data))
	if err != nil {
		return nil, wrapFormatError("decodeFrame", "png", err)
	}
	out := fromGoImage(img)
	if text := readPngTextChunks(c.data); len(text) > 0 {
		out.TextData = text
	}
	return out, nil
}

// readPngTextChunks walks a PNG's chunk stream looking for tEXt, zTXt and
// iTXt chunks. The standard library's image/png decoder discards these, so
// this is a small hand-rolled scan alongside it rather than a replacement
// for it.
func readPngTextChunks(data []byte) map[string]string {
	if len(data) < len(pngSignature) {
		return nil
	}
	out := make(map[string]string)
	pos := len(pngSignature)
	for pos+8 <= len(data) {
		length := binary.BigEndian.Uint32(data[pos:])
		typ := string(data[pos+4 : pos+8])
		bodyStart := pos + 8
		bodyEnd := bodyStart + int(length)
		if bodyEnd > len(data) || bodyEnd < bodyStart {
			break
		}
		body := data[bodyStart:bodyEnd]
		switch typ {
		case "tEXt":
			if k, v, ok := splitNulTerminated(body); ok {
				out[k] = string(v)
			}
		case "zTXt":
			k, rest, ok := splitNulTerminated(body)
			if ok && len(rest) >= 1 {
				// rest[0] is the compression method (0 = zlib/deflate).
				if text, err := inflatePngText(rest[1:]); err == nil {
					out[k] = text
				}
			}
		case "iTXt":
			if k, v, ok := parseITXt(body); ok {
				out[k] = v
			}
		case "IEND":
			return out
		}
		pos = bodyEnd + 4 // skip CRC
	}
	return out
}

func splitNulTerminated(body []byte) (string, []byte, bool) {
	i := bytes.IndexByte(body, 0)
	if i < 0 {
		return "", nil, false
	}
	return string(body[:i]), body[i+1:], true
}

func inflatePngText(compressed []byte) (string, error) {
	r, err := zlib.NewReader(bytes.NewReader(compressed))
	if err != nil {
		return "", err
	}
	defer r.Close()
	out, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func parseITXt(body []byte) (string, string, bool) {
	keyword, rest, ok := splitNulTerminated(body)
	if !ok || len(rest) < 2 {
		return "", "", false
	}
	compressionFlag := rest[0]
	rest = rest[2:] // skip compressionFlag, compressionMethod
	_, rest, ok = splitNulTerminated(rest) // language tag
	if !ok {
		return "", "", false
	}
	_, rest, ok = splitNulTerminated(rest) // translated keyword
	if !ok {
		return "", "", false
	}
	if compressionFlag == 0 {
		return keyword, string(rest), true
	}
	text, err := inflatePngText(rest)
	if err != nil {
		return "", "", false
	}
	return keyword, text, true
}

// DecodePNG is the convenience single-call entry point for the PNG codec.
func DecodePNG(data []byte) (*Image, error) {
	return decode(&pngCodec{}, data)
}
