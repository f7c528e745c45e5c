// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rasterimg

import (
	"strings"
	"unicode/utf8"
)

// InputBuffer is an endian-aware, random-access view over an immutable byte
// sequence, shared (without copying) across every decoder. Sub-views created
// with Subarray or Peek share the underlying buffer with their parent but
// carry an independent cursor; mutating the backing bytes once a sub-view
// exists is the caller's responsibility to avoid (filter passes that need to
// mutate operate on a private owned buffer instead, see LZWPredictor-style
// decoders).
//
// Grounded on Geek0x0-pdf's lex.go buffer cursor (pos/offset fields,
// readByte/reload shape), generalized from a streaming io.Reader cursor to a
// fixed in-memory byte-slice view.
type InputBuffer struct {
	buf       []byte
	start     int
	end       int
	offset    int
	bigEndian bool
}

// NewInputBuffer wraps buf as a big-endian (TIFF BE / default) input buffer
// spanning the whole slice.
func NewInputBuffer(buf []byte) *InputBuffer {
	return &InputBuffer{buf: buf, start: 0, end: len(buf), offset: 0, bigEndian: true}
}

// NewInputBufferOrder wraps buf with an explicit endianness.
func NewInputBufferOrder(buf []byte, bigEndian bool) *InputBuffer {
	return &InputBuffer{buf: buf, start: 0, end: len(buf), offset: 0, bigEndian: bigEndian}
}

// BigEndian reports the configured byte order.
func (b *InputBuffer) BigEndian() bool { return b.bigEndian }

// SetBigEndian reconfigures byte order for subsequent multi-byte reads.
func (b *InputBuffer) SetBigEndian(v bool) { b.bigEndian = v }

// Length returns the total length of the underlying buffer (not the view).
func (b *InputBuffer) Length() int { return len(b.buf) }

// Position returns the cursor position relative to the view's start.
func (b *InputBuffer) Position() int { return b.offset - b.start }

// Remaining returns the number of unread bytes in the view.
func (b *InputBuffer) Remaining() int { return b.end - b.offset }

// HasBytes reports whether n more bytes can be read without underflow.
func (b *InputBuffer) HasBytes(n int) bool { return b.Remaining() >= n }

// Rewind resets the cursor to the start of the view.
func (b *InputBuffer) Rewind() { b.offset = b.start }

// Skip advances the cursor by n bytes without reading them. It does not
// validate against the view end; callers combine it with HasBytes when that
// matters.
func (b *InputBuffer) Skip(n int) { b.offset += n }

// SetPosition moves the cursor to an absolute position relative to the
// view's start, used by BitReader to save/restore state around PeekBits.
func (b *InputBuffer) SetPosition(pos int) { b.offset = b.start + pos }

// Subarray returns a new view sharing buf's storage, of length count,
// positioned at start+(position, if given, else the current offset
// relative-start)+offset. It does not advance the parent's cursor.
func (b *InputBuffer) Subarray(count int, positionAndOffset ...int) (*InputBuffer, error) {
	position := b.Position()
	offset := 0
	if len(positionAndOffset) > 0 {
		position = positionAndOffset[0]
	}
	if len(positionAndOffset) > 1 {
		offset = positionAndOffset[1]
	}

	begin := b.start + position + offset
	end := begin + count
	if begin < 0 || end > len(b.buf) || begin > end {
		return nil, wrapError("subarray", ErrEndOfStream)
	}
	return &InputBuffer{buf: b.buf, start: begin, end: end, offset: begin, bigEndian: b.bigEndian}, nil
}

// Peek returns a sub-view of n bytes starting at offset (relative to the
// current cursor), without advancing this buffer's own cursor.
func (b *InputBuffer) Peek(n int, offset ...int) (*InputBuffer, error) {
	off := 0
	if len(offset) > 0 {
		off = offset[0]
	}
	begin := b.offset + off
	end := begin + n
	if begin < b.start || end > b.end || begin > end {
		return nil, wrapError("peek", ErrEndOfStream)
	}
	return &InputBuffer{buf: b.buf, start: begin, end: end, offset: begin, bigEndian: b.bigEndian}, nil
}

// Read returns the next byte and advances the cursor by one.
func (b *InputBuffer) Read() (byte, error) {
	if b.offset >= b.end {
		return 0, wrapError("read", ErrEndOfStream)
	}
	v := b.buf[b.offset]
	b.offset++
	return v, nil
}

// ReadBytes reads n raw bytes and advances the cursor by n.
func (b *InputBuffer) ReadBytes(n int) ([]byte, error) {
	if b.offset+n > b.end {
		return nil, wrapError("readBytes", ErrEndOfStream)
	}
	v := b.buf[b.offset : b.offset+n]
	b.offset += n
	return v, nil
}

// ReadInt8 reads a signed 8-bit integer.
func (b *InputBuffer) ReadInt8() (int8, error) {
	v, err := b.Read()
	if err != nil {
		return 0, err
	}
	return int8FromUint8(v), nil
}

// ReadUint16 reads an unsigned 16-bit integer honoring BigEndian.
func (b *InputBuffer) ReadUint16() (uint16, error) {
	v, err := b.ReadBytes(2)
	if err != nil {
		return 0, err
	}
	if b.bigEndian {
		return uint16(v[0])<<8 | uint16(v[1]), nil
	}
	return uint16(v[1])<<8 | uint16(v[0]), nil
}

// ReadInt16 reads a signed 16-bit integer.
func (b *InputBuffer) ReadInt16() (int16, error) {
	v, err := b.ReadUint16()
	if err != nil {
		return 0, err
	}
	return int16FromUint16(v), nil
}

// ReadUint24 reads an unsigned 24-bit integer honoring BigEndian.
func (b *InputBuffer) ReadUint24() (uint32, error) {
	v, err := b.ReadBytes(3)
	if err != nil {
		return 0, err
	}
	if b.bigEndian {
		return uint32(v[0])<<16 | uint32(v[1])<<8 | uint32(v[2]), nil
	}
	return uint32(v[2])<<16 | uint32(v[1])<<8 | uint32(v[0]), nil
}

// ReadUint32 reads an unsigned 32-bit integer honoring BigEndian.
func (b *InputBuffer) ReadUint32() (uint32, error) {
	v, err := b.ReadBytes(4)
	if err != nil {
		return 0, err
	}
	if b.bigEndian {
		return uint32(v[0])<<24 | uint32(v[1])<<16 | uint32(v[2])<<8 | uint32(v[3]), nil
	}
	return uint32(v[3])<<24 | uint32(v[2])<<16 | uint32(v[1])<<8 | uint32(v[0]), nil
}

// ReadInt32 reads a signed 32-bit integer.
func (b *InputBuffer) ReadInt32() (int32, error) {
	v, err := b.ReadUint32()
	if err != nil {
		return 0, err
	}
	return int32FromUint32(v), nil
}

// ReadUint64 reads an unsigned 64-bit integer honoring BigEndian. 64-bit
// reads may exceed a native signed 32-bit range; this
// is represented with the dedicated uint64 type rather than downcast.
func (b *InputBuffer) ReadUint64() (uint64, error) {
	hi, lo := uint64(0), uint64(0)
	if b.bigEndian {
		h, err := b.ReadUint32()
		if err != nil {
			return 0, err
		}
		l, err := b.ReadUint32()
		if err != nil {
			return 0, err
		}
		hi, lo = uint64(h), uint64(l)
		return hi<<32 | lo, nil
	}
	l, err := b.ReadUint32()
	if err != nil {
		return 0, err
	}
	h, err := b.ReadUint32()
	if err != nil {
		return 0, err
	}
	hi, lo = uint64(h), uint64(l)
	return hi<<32 | lo, nil
}

// ReadFloat32 reads an IEEE-754 single-precision float.
func (b *InputBuffer) ReadFloat32() (float32, error) {
	v, err := b.ReadUint32()
	if err != nil {
		return 0, err
	}
	return float32FromBits(v), nil
}

// ReadFloat64 reads an IEEE-754 double-precision float.
func (b *InputBuffer) ReadFloat64() (float64, error) {
	v, err := b.ReadUint64()
	if err != nil {
		return 0, err
	}
	return float64FromBits(v), nil
}

// ReadString reads len bytes as Latin-1 if len >= 0 is given, otherwise reads
// until a NUL byte (exclusive) or fails with ErrUnterminatedString if EOF is
// reached first.
func (b *InputBuffer) ReadString(length ...int) (string, error) {
	if len(length) > 0 {
		raw, err := b.ReadBytes(length[0])
		if err != nil {
			return "", err
		}
		return latin1ToString(raw), nil
	}

	idx := b.IndexOf(0)
	if idx < 0 {
		return "", wrapError("readString", ErrUnterminatedString)
	}
	n := idx - b.Position()
	raw, err := b.ReadBytes(n)
	if err != nil {
		return "", err
	}
	b.Skip(1) // consume the NUL
	return latin1ToString(raw), nil
}

// ReadStringUtf8 decodes a UTF-8 string up to the next NUL byte, or EOF.
func (b *InputBuffer) ReadStringUtf8() (string, error) {
	idx := b.IndexOf(0)
	var raw []byte
	var err error
	if idx < 0 {
		raw, err = b.ReadBytes(b.Remaining())
		if err != nil {
			return "", err
		}
	} else {
		n := idx - b.Position()
		raw, err = b.ReadBytes(n)
		if err != nil {
			return "", err
		}
		b.Skip(1)
	}
	if !utf8.Valid(raw) {
		return strings.ToValidUTF8(string(raw), "�"), nil
	}
	return string(raw), nil
}

// IndexOf returns the position (relative to the view start) of the first
// occurrence of target at or after offset (relative to the current cursor),
// or -1 if not found within the view.
func (b *InputBuffer) IndexOf(target byte, offset ...int) int {
	off := 0
	if len(offset) > 0 {
		off = offset[0]
	}
	for i := b.offset + off; i < b.end; i++ {
		if b.buf[i] == target {
			return i - b.start
		}
	}
	return -1
}

// Memcpy copies length bytes from source (at sourceOffset) into this
// buffer's underlying storage starting at startOffset (relative to the
// view's start). It mutates shared storage in place and must only be used
// by codec-internal filter passes operating on a privately owned buffer.
func (b *InputBuffer) Memcpy(startOffset, length int, source []byte, sourceOffset ...int) {
	so := 0
	if len(sourceOffset) > 0 {
		so = sourceOffset[0]
	}
	copy(b.buf[b.start+startOffset:b.start+startOffset+length], source[so:so+length])
}

// Memset fills length bytes starting at startOffset (relative to the view's
// start) with value.
func (b *InputBuffer) Memset(startOffset, length int, value byte) {
	s := b.buf[b.start+startOffset : b.start+startOffset+length]
	for i := range s {
		s[i] = value
	}
}

// Bytes returns the raw backing slice for the view (start:end); callers must
// not hold onto it across a Memcpy/Memset from another view.
func (b *InputBuffer) Bytes() []byte { return b.buf[b.start:b.end] }

func latin1ToString(raw []byte) string {
	rs := make([]rune, len(raw))
	for i, c := range raw {
		rs[i] = rune(c)
	}
	return string(rs)
}
