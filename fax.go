// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rasterimg

// CCITT Group 3/4 fax decoding, grounded on Geek0x0-pdf's CCITTFaxDecoder
// (filter_decode.go): the same reference-line/current-line byte-array
// representation, the same findB1/findB2 changing-element search and
// fillToColumn fill loop, and the same fixed Huffman run tables, rewired
// onto this package's own MSB-first BitReader instead of an io.Reader-backed
// bit cursor, and extended with a fillOrder flip and T.6 EOFB termination.
//
// Decoded pixel bits follow the CCITT convention: 0 = white, 1 = black.
// BlackIs1/WhiteIsZero photometric interpretation is applied by the TIFF
// pixel-reconstruction stage on top of this decoder's output, not here.

// FaxCompression selects the T.4/T.6 coding scheme.
type FaxCompression int

const (
	FaxCompressionT4OneDim FaxCompression = 2 // Group 3, 1D (Modified Huffman)
	FaxCompressionT4TwoDim FaxCompression = 3 // Group 3, mixed 1D/2D
	FaxCompressionT6       FaxCompression = 4 // Group 4, pure 2D
)

// FaxParams configures a fax decode, mirroring the CCITTFaxParams/
// DefaultCCITTFaxParams shape it is grounded on.
type FaxParams struct {
	Compression FaxCompression
	Columns     int
	Rows        int
	FillOrder   int // 1 = MSB-first (default), 2 = LSB-first (flipped before decode)
	BlackIs1    bool
	FillBits    bool // EOL codes byte-aligned with zero fill
}

// DefaultFaxParams returns sensible defaults (Group 4, MSB fill order).
func DefaultFaxParams() FaxParams {
	return FaxParams{Compression: FaxCompressionT6, FillOrder: 1}
}

type faxDecoder struct {
	br                                   *BitReader
	params                               FaxParams
	width, height                        int
	refLine, curLine                     []byte
	out                                  []byte
	rowBytes                             int
}

// DecodeFax decodes a CCITT T.4/T.6 stream into a packed, row-byte-aligned
// bit plane (MSB-first within each byte, bit = 1 for black).
// CCITT internal decode errors are caught by the caller (the partial-
// image policy): DecodeFax itself returns what it could decode along with
// the error so a caller may keep a partial tile rather than discard it.
func DecodeFax(data []byte, params FaxParams) ([]byte, error) {
	if params.Columns <= 0 {
		return nil, wrapFormatError("decodeFax", "tiff", ErrInvalidHeader)
	}

	raw := data
	if params.FillOrder == 2 {
		raw = append([]byte(nil), data...)
		reverseBitsInPlace(raw)
	}

	d := &faxDecoder{
		br:       NewBitReader(NewInputBufferOrder(raw, true)),
		params:   params,
		width:    params.Columns,
		rowBytes: (params.Columns + 7) / 8,
	}
	d.refLine = make([]byte, d.width)
	d.curLine = make([]byte, d.width)

	rows := params.Rows
	for row := 0; rows <= 0 || row < rows; row++ {
		var err error
		switch params.Compression {
		case FaxCompressionT4OneDim:
			err = d.decodeRow1D(true)
		case FaxCompressionT4TwoDim:
			err = d.decodeRowMixed()
		case FaxCompressionT6:
			err = d.decodeRow2D()
		default:
			return d.out, wrapFormatError("decodeFax", "tiff", ErrUnsupportedCompression)
		}
		if err != nil {
			if err == errFaxEOF {
				break
			}
			return d.out, err
		}
		d.outputRow()
		copy(d.refLine, d.curLine)
		for i := range d.curLine {
			d.curLine[i] = 0
		}
	}
	return d.out, nil
}

var errFaxEOF = wrapFormatError("decodeFax", "tiff", ErrEndOfStream)

func (d *faxDecoder) outputRow() {
	for i := 0; i < d.width; i += 8 {
		var b byte
		for j := 0; j < 8 && i+j < d.width; j++ {
			if d.curLine[i+j] != 0 {
				b |= 0x80 >> uint(j)
			}
		}
		d.out = append(d.out, b)
	}
}

// consumeEOL consumes a leading end-of-line code (0000 0000 0001), honoring
// FillBits byte alignment.
func (d *faxDecoder) consumeEOL() error {
	if d.params.FillBits {
		d.br.FlushByte()
	}
	for {
		v, err := d.br.PeekBits(12)
		if err != nil {
			return wrapFormatError("consumeEOL", "tiff", ErrFaxDecodeError)
		}
		if v == 1 {
			return d.br.SkipBits(12)
		}
		// Allow leading fill zero bits before the EOL code itself.
		bit, err := d.br.ReadBits(1)
		if err != nil {
			return wrapFormatError("consumeEOL", "tiff", ErrFaxDecodeError)
		}
		if bit != 0 {
			return wrapFormatError("consumeEOL", "tiff", ErrFaxDecodeError)
		}
	}
}

func (d *faxDecoder) decodeRow1D(expectEOL bool) error {
	if expectEOL {
		if err := d.consumeEOL(); err != nil {
			return err
		}
	}

	col := 0
	white := true
	for col < d.width {
		runLen, err := d.readRun(white)
		if err != nil {
			return wrapFormatError("decodeRow1D", "tiff", ErrFaxDecodeError)
		}
		val := byte(0)
		if !white {
			val = 1
		}
		for i := 0; i < runLen && col < d.width; i++ {
			d.curLine[col] = val
			col++
		}
		if runLen < 64 {
			white = !white
		}
	}
	return nil
}

func (d *faxDecoder) decodeRowMixed() error {
	if err := d.consumeEOL(); err != nil {
		return err
	}
	tag, err := d.br.ReadBits(1)
	if err != nil {
		return wrapFormatError("decodeRowMixed", "tiff", ErrFaxDecodeError)
	}
	if tag == 1 {
		return d.decodeRow1D(false)
	}
	return d.decode2DRowBody()
}

func (d *faxDecoder) decodeRow2D() error {
	return d.decode2DRowBody()
}

// 2D mode codes.
const (
	fax2DPass = iota
	fax2DHorizontal
	fax2DVertical0
	fax2DVerticalR1
	fax2DVerticalR2
	fax2DVerticalR3
	fax2DVerticalL1
	fax2DVerticalL2
	fax2DVerticalL3
	fax2DEOFB
)

func (d *faxDecoder) decode2DRowBody() error {
	col := 0
	a0 := -1

	for col < d.width {
		code, err := d.read2DCode()
		if err != nil {
			return err
		}

		switch code {
		case fax2DPass:
			b1 := d.findB1(a0, col)
			b2 := d.findB2(b1)
			d.fillToColumn(col, b2, a0)
			col = b2

		case fax2DHorizontal:
			isWhite := a0 < 0 || d.refLine[a0] == 0
			run1, err := d.readRun(isWhite)
			if err != nil {
				return wrapFormatError("decode2D", "tiff", ErrFaxDecodeError)
			}
			run2, err := d.readRun(!isWhite)
			if err != nil {
				return wrapFormatError("decode2D", "tiff", ErrFaxDecodeError)
			}

			val1 := byte(0)
			if !isWhite {
				val1 = 1
			}
			for i := 0; i < run1 && col < d.width; i++ {
				d.curLine[col] = val1
				col++
			}
			val2 := byte(1) - val1
			for i := 0; i < run2 && col < d.width; i++ {
				d.curLine[col] = val2
				col++
			}
			a0 = col - 1

		case fax2DVertical0, fax2DVerticalR1, fax2DVerticalR2, fax2DVerticalR3,
			fax2DVerticalL1, fax2DVerticalL2, fax2DVerticalL3:
			b1 := d.findB1(a0, col)
			var a1 int
			switch code {
			case fax2DVertical0:
				a1 = b1
			case fax2DVerticalR1:
				a1 = b1 + 1
			case fax2DVerticalR2:
				a1 = b1 + 2
			case fax2DVerticalR3:
				a1 = b1 + 3
			case fax2DVerticalL1:
				a1 = b1 - 1
			case fax2DVerticalL2:
				a1 = b1 - 2
			case fax2DVerticalL3:
				a1 = b1 - 3
			}
			if a1 < 0 {
				a1 = 0
			}
			if a1 > d.width {
				a1 = d.width
			}
			d.fillToColumn(col, a1, a0)
			col = a1
			a0 = col - 1

		case fax2DEOFB:
			return errFaxEOF
		}
	}
	return nil
}

// fillToColumn paints curLine[from:to) with the color that continues from
// position a0 (the color of a0+1, i.e. the opposite of curLine[a0]).
func (d *faxDecoder) fillToColumn(from, to, a0 int) {
	val := byte(0)
	if a0 >= 0 && a0 < d.width {
		val = 1 - d.curLine[a0]
	}
	for i := from; i < to && i < d.width; i++ {
		d.curLine[i] = val
	}
}

// findB1 finds the first changing element on the reference line to the
// right of a0 with a color opposite the color at a0 (i.e. matching the
// color about to be painted from a0 forward), matching getNextChangingElement.
func (d *faxDecoder) findB1(a0, col int) int {
	start := a0 + 1
	if start < 0 {
		start = 0
	}
	currentColor := byte(0)
	if a0 >= 0 && a0 < d.width {
		currentColor = d.curLine[a0]
	}
	for i := start; i < d.width; i++ {
		if d.refLine[i] != currentColor {
			return i
		}
	}
	return d.width
}

// findB2 finds the next changing element on the reference line after b1.
func (d *faxDecoder) findB2(b1 int) int {
	if b1 >= d.width {
		return d.width
	}
	color := d.refLine[b1]
	for i := b1 + 1; i < d.width; i++ {
		if d.refLine[i] != color {
			return i
		}
	}
	return d.width
}

func (d *faxDecoder) read2DCode() (int, error) {
	bits, err := d.br.PeekBits(7)
	if err != nil {
		return 0, wrapFormatError("read2DCode", "tiff", ErrFaxDecodeError)
	}

	switch {
	case bits>>6 == 1:
		d.br.SkipBits(1)
		return fax2DVertical0, nil
	case bits>>4 == 0b011:
		d.br.SkipBits(3)
		return fax2DVerticalR1, nil
	case bits>>4 == 0b010:
		d.br.SkipBits(3)
		return fax2DVerticalL1, nil
	case bits>>4 == 0b001:
		d.br.SkipBits(3)
		return fax2DHorizontal, nil
	case bits>>3 == 0b0001:
		d.br.SkipBits(4)
		return fax2DPass, nil
	case bits>>1 == 0b000011:
		d.br.SkipBits(6)
		return fax2DVerticalR2, nil
	case bits>>1 == 0b000010:
		d.br.SkipBits(6)
		return fax2DVerticalL2, nil
	case bits == 0b0000011:
		d.br.SkipBits(7)
		return fax2DVerticalR3, nil
	case bits == 0b0000010:
		d.br.SkipBits(7)
		return fax2DVerticalL3, nil
	case bits == 0b0000001:
		// T.6 extension code (uncompressed-mode signal). Only certain
		// uncompressed T.6 streams are well-formed; reject rather than
		// guess at the extension's sub-mode.
		d.br.SkipBits(7)
		return 0, wrapFormatError("read2DCode", "tiff", ErrUnsupportedFeature)
	}

	if bits == 0 {
		more, _ := d.br.PeekBits(12)
		if more == 0 {
			d.br.SkipBits(12)
			return fax2DEOFB, nil
		}
	}

	return 0, wrapFormatError("read2DCode", "tiff", ErrFaxDecodeError)
}

func (d *faxDecoder) readRun(white bool) (int, error) {
	table := blackRunTable
	if white {
		table = whiteRunTable
	}
	total := 0
	for {
		run, err := d.lookupRun(table)
		if err != nil {
			return 0, err
		}
		total += run
		if run < 64 {
			return total, nil
		}
	}
}

func (d *faxDecoder) lookupRun(table []faxHuffmanEntry) (int, error) {
	bits, err := d.br.PeekBits(13)
	if err != nil {
		return 0, err
	}
	for _, e := range table {
		shifted := bits >> uint(13-e.bits)
		if shifted == uint32(e.code) {
			d.br.SkipBits(int(e.bits))
			return int(e.runLen), nil
		}
	}
	return 0, wrapFormatError("lookupRun", "tiff", ErrFaxDecodeError)
}

// faxHuffmanEntry packs (code, bitsConsumed, terminating run length).
type faxHuffmanEntry struct {
	code   uint16
	bits   uint8
	runLen uint16
}
