// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rasterimg

// BitReader is an MSB-first bit-level reader layered on an InputBuffer, used
// by TIFF palette/bilevel expansion and the CCITT fax decoders. Grounded on
// Geek0x0-pdf's filter_decode.go bitReader (a byte accumulator fed one byte
// at a time), generalized from an io.Reader source to an InputBuffer source
// keeping explicit state: a current byte plus the count of
// unread bits remaining in it.
type BitReader struct {
	src         *InputBuffer
	bitBuffer   byte // current byte being consumed
	bitPosition int  // unread bits remaining in bitBuffer, 0..8
}

// NewBitReader wraps src for bit-level reads starting at its current cursor.
func NewBitReader(src *InputBuffer) *BitReader {
	return &BitReader{src: src}
}

// ReadBits assembles n (1..32) bits MSB-first from successive bytes of the
// underlying stream.
func (r *BitReader) ReadBits(n int) (uint32, error) {
	var result uint32
	remaining := n
	for remaining > 0 {
		if r.bitPosition == 0 {
			b, err := r.src.Read()
			if err != nil {
				return 0, wrapError("readBits", ErrEndOfStream)
			}
			r.bitBuffer = b
			r.bitPosition = 8
		}
		take := remaining
		if take > r.bitPosition {
			take = r.bitPosition
		}
		shift := r.bitPosition - take
		mask := byte((1 << uint(take)) - 1)
		bits := (r.bitBuffer >> uint(shift)) & mask
		result = result<<uint(take) | uint32(bits)
		r.bitPosition -= take
		remaining -= take
	}
	return result, nil
}

// PeekBits returns the next n bits without consuming them.
func (r *BitReader) PeekBits(n int) (uint32, error) {
	savedByte, savedPos, savedOffset := r.bitBuffer, r.bitPosition, r.src.Position()
	v, err := r.ReadBits(n)
	r.bitBuffer, r.bitPosition = savedByte, savedPos
	r.src.SetPosition(savedOffset)
	return v, err
}

// SkipBits discards n already-available or freshly-filled bits.
func (r *BitReader) SkipBits(n int) error {
	_, err := r.ReadBits(n)
	return err
}

// FlushByte discards any partially-consumed bits so the next read starts on
// a byte boundary of the underlying stream.
func (r *BitReader) FlushByte() {
	r.bitPosition = 0
	r.bitBuffer = 0
}

// BitPosition reports how many unread bits remain in the current byte, 0..8.
func (r *BitReader) BitPosition() int { return r.bitPosition }
