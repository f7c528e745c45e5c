// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rasterimg

// TIFF compression tag values recognized by the decoder.
const (
	compNone       = 1
	compCCITTRLE   = 2 // CCITT Group 3, modified Huffman, 1D
	compCCITTFax3  = 3 // CCITT T.4 (optionally 2D)
	compCCITTFax4  = 4 // CCITT T.6 (Group 4)
	compLZW        = 5
	compOldJPEG    = 6
	compJPEG       = 7
	compDeflateAdobe = 8
	compPackBits   = 32773
	compDeflateZip = 32946
)

// Photometric interpretation values.
const (
	photoWhiteIsZero      = 0
	photoBlackIsZero      = 1
	photoRGB              = 2
	photoPalette           = 3
	photoTransparencyMask = 4
	photoSeparatedCMYK    = 5
	photoYCbCr            = 6
	photoCIELab           = 8
)

// tiffImageKind classifies the per-tile reconstruction path, derived from
// (photometric, bitsPerSample, samplesPerPixel).
type tiffImageKind int

const (
	kindBilevel tiffImageKind = iota
	kindGray4
	kindGray
	kindGrayAlpha
	kindRGB
	kindRGBA
	kindPalette
	kindCMYK
	kindYCbCrJPEG
)

// TiffHeader holds the parsed directory tags needed to lay out and decode
// one IFD's image.
type TiffHeader struct {
	entries map[uint16]*TiffEntry

	Width, Height int
	BitsPerSample int
	SamplesPerPixel int
	Compression   int
	Photometric   int
	Predictor     int
	FillOrder     int
	PlanarConfig  int

	TileWidth, TileHeight int
	tilesX, tilesY        int

	tileOffsets    []int64
	tileByteCounts []int64

	palette []PaletteEntry

	t4Options int
	t6Options int

	Orientation int

	NextIFDOffset uint32
}

func entryIntOr(entries map[uint16]*TiffEntry, tag uint16, def int) int {
	if e, ok := entries[tag]; ok && len(e.cachedInts) > 0 {
		return int(e.toInt())
	}
	return def
}

func entryIntSliceOr(entries map[uint16]*TiffEntry, tag uint16) []int64 {
	if e, ok := entries[tag]; ok {
		return e.toIntSlice()
	}
	return nil
}

// parseTiffHeader builds a TiffHeader from one parsed IFD entry map.
func parseTiffHeader(entries map[uint16]*TiffEntry, nextIFD uint32) (*TiffHeader, error) {
	h := &TiffHeader{
		entries:         entries,
		Width:           entryIntOr(entries, tagImageWidth, 0),
		Height:          entryIntOr(entries, tagImageLength, 0),
		BitsPerSample:   entryIntOr(entries, tagBitsPerSample, 1),
		SamplesPerPixel: entryIntOr(entries, tagSamplesPerPixel, 1),
		Compression:     entryIntOr(entries, tagCompression, compNone),
		Photometric:     entryIntOr(entries, tagPhotometricInterpretation, photoWhiteIsZero),
		Predictor:       entryIntOr(entries, tagPredictor, 1),
		FillOrder:       entryIntOr(entries, tagFillOrder, 1),
		PlanarConfig:    entryIntOr(entries, tagPlanarConfiguration, 1),
		t4Options:       entryIntOr(entries, tagT4Options, 0),
		t6Options:       entryIntOr(entries, tagT6Options, 0),
		Orientation:     entryIntOr(entries, tagOrientation, 1),
		NextIFDOffset:   nextIFD,
	}

	if h.Width <= 0 || h.Height <= 0 {
		return nil, wrapFormatError("parseTiffHeader", "tiff", ErrInvalidHeader)
	}

	if tw, ok := entries[tagTileWidth]; ok {
		h.TileWidth = int(tw.toInt())
		h.TileHeight = entryIntOr(entries, tagTileLength, h.Height)
		h.tileOffsets = entryIntSliceOr(entries, tagTileOffsets)
		h.tileByteCounts = entryIntSliceOr(entries, tagTileByteCounts)
	} else {
		h.TileWidth = h.Width
		rowsPerStrip := entryIntOr(entries, tagRowsPerStrip, h.Height)
		if rowsPerStrip <= 0 || rowsPerStrip >= 1<<31 {
			rowsPerStrip = h.Height
		}
		h.TileHeight = rowsPerStrip
		h.tileOffsets = entryIntSliceOr(entries, tagStripOffsets)
		h.tileByteCounts = entryIntSliceOr(entries, tagStripByteCounts)
	}
	if h.TileWidth <= 0 {
		h.TileWidth = h.Width
	}
	if h.TileHeight <= 0 {
		h.TileHeight = h.Height
	}

	h.tilesX = (h.Width + h.TileWidth - 1) / h.TileWidth
	h.tilesY = (h.Height + h.TileHeight - 1) / h.TileHeight

	if cm, ok := entries[tagColorMap]; ok {
		vals := cm.toIntSlice()
		n := len(vals) / 3
		h.palette = make([]PaletteEntry, n)
		shift := 0
		if h.BitsPerSample == 8 {
			shift = 8
		}
		for i := 0; i < n; i++ {
			h.palette[i] = PaletteEntry{
				R: uint16(vals[i]) >> shift,
				G: uint16(vals[n+i]) >> shift,
				B: uint16(vals[2*n+i]) >> shift,
			}
		}
	}

	return h, nil
}

// classify determines the pixel reconstruction path for this header.
func (h *TiffHeader) classify() tiffImageKind {
	if h.Photometric == photoPalette {
		return kindPalette
	}
	if h.Photometric == photoSeparatedCMYK {
		return kindCMYK
	}
	if h.Photometric == photoYCbCr && h.Compression == compJPEG {
		return kindYCbCrJPEG
	}
	if h.Photometric == photoTransparencyMask {
		return kindBilevel
	}
	if h.Photometric == photoWhiteIsZero || h.Photometric == photoBlackIsZero {
		switch h.BitsPerSample {
		case 1:
			return kindBilevel
		case 4:
			return kindGray4
		default:
			if h.SamplesPerPixel >= 2 {
				return kindGrayAlpha
			}
			return kindGray
		}
	}
	if h.SamplesPerPixel >= 4 {
		return kindRGBA
	}
	return kindRGB
}

// decompressTile returns the decompressed byte payload for one tile/strip.
func decompressTile(h *TiffHeader, raw []byte, expectedSize int) ([]byte, error) {
	switch h.Compression {
	case compNone:
		return raw, nil
	case compLZW:
		return DecodeLzw(raw)
	case compPackBits:
		return DecodePackBits(raw, expectedSize)
	case compDeflateAdobe, compDeflateZip:
		return DecodeDeflateAuto(raw)
	case compCCITTRLE, compCCITTFax3:
		params := FaxParams{
			Compression: FaxCompressionT4OneDim,
			Columns:     h.TileWidth,
			Rows:        h.TileHeight,
			FillOrder:   h.FillOrder,
			BlackIs1:    h.Photometric == photoBlackIsZero,
		}
		if h.t4Options&1 != 0 {
			params.Compression = FaxCompressionT4TwoDim
		}
		if h.t4Options&4 != 0 {
			params.FillBits = true
		}
		return DecodeFax(raw, params)
	case compCCITTFax4:
		params := FaxParams{
			Compression: FaxCompressionT6,
			Columns:     h.TileWidth,
			Rows:        h.TileHeight,
			FillOrder:   h.FillOrder,
			BlackIs1:    h.Photometric == photoBlackIsZero,
		}
		return DecodeFax(raw, params)
	default:
		return nil, wrapFormatError("decompressTile", "tiff", ErrUnsupportedCompression)
	}
}

// applyPredictorRows reverses horizontal differencing on one decompressed tile
// row-by-row, for sample formats supported by ReverseHorizontalPredictor.
func applyPredictorRows(h *TiffHeader, data []byte, rowBytes, rows int) {
	if h.Predictor != 2 {
		return
	}
	bytesPerSample := h.BitsPerSample / 8
	if bytesPerSample == 0 {
		return
	}
	for r := 0; r < rows; r++ {
		start := r * rowBytes
		end := start + rowBytes
		if end > len(data) {
			end = len(data)
		}
		if start >= end {
			break
		}
		ReverseHorizontalPredictor(data[start:end], h.SamplesPerPixel, bytesPerSample)
	}
}

// decodeTiffImage decodes the full pixel buffer for one IFD, given the
// whole-file buffer (for seeking to tile offsets).
func decodeTiffImage(buf *InputBuffer, h *TiffHeader) (*Image, error) {
	kind := h.classify()

	var img *Image
	switch kind {
	case kindPalette:
		img = NewImage(h.Width, h.Height, sampleFormatFor(h.BitsPerSample), 1, true)
		img.Palette = h.palette
	case kindBilevel:
		img = NewImage(h.Width, h.Height, FormatU1, 1, false)
	case kindGray4:
		img = NewImage(h.Width, h.Height, FormatU4, 1, false)
	case kindGray:
		img = NewImage(h.Width, h.Height, sampleFormatFor(h.BitsPerSample), 1, false)
	case kindGrayAlpha:
		img = NewImage(h.Width, h.Height, sampleFormatFor(h.BitsPerSample), 2, false)
	case kindRGB:
		img = NewImage(h.Width, h.Height, sampleFormatFor(h.BitsPerSample), 3, false)
	case kindCMYK:
		img = NewImage(h.Width, h.Height, sampleFormatFor(h.BitsPerSample), 4, false)
	default:
		img = NewImage(h.Width, h.Height, sampleFormatFor(h.BitsPerSample), 4, false)
	}

	if h.Orientation != 1 {
		img.Exif = map[int]any{tagOrientation: h.Orientation}
	}

	scratch := newTileScratchPool()

	for ty := 0; ty < h.tilesY; ty++ {
		for tx := 0; tx < h.tilesX; tx++ {
			idx := ty*h.tilesX + tx
			if idx >= len(h.tileOffsets) || idx >= len(h.tileByteCounts) {
				continue
			}
			offset := h.tileOffsets[idx]
			byteCount := h.tileByteCounts[idx]

			if int(offset)+int(byteCount) > buf.Length() {
				return nil, wrapFormatError("decodeTiffImage", "tiff", ErrTruncatedTile)
			}

			view, err := buf.Subarray(int(byteCount), int(offset))
			if err != nil {
				return nil, wrapFormatError("decodeTiffImage", "tiff", ErrTruncatedTile)
			}
			raw, err := view.ReadBytes(int(byteCount))
			if err != nil {
				return nil, wrapFormatError("decodeTiffImage", "tiff", ErrTruncatedTile)
			}

			tileRowBytes := (h.TileWidth*h.SamplesPerPixel*h.BitsPerSample + 7) / 8
			expectedSize := tileRowBytes * h.TileHeight

			decoded, decErr := decompressTile(h, raw, expectedSize)
			fromScratch := false
			if decErr != nil {
				if h.Compression == compCCITTRLE || h.Compression == compCCITTFax3 || h.Compression == compCCITTFax4 {
					// Partial-image policy: keep whatever was
					// decoded so far rather than failing the whole image.
					if decoded == nil {
						decoded = scratch.get(expectedSize)
						fromScratch = true
					}
				} else {
					return nil, decErr
				}
			}
			applyPredictorRows(h, decoded, tileRowBytes, h.TileHeight)

			writeTileIntoImage(img, h, decoded, kind, tx, ty, tileRowBytes)
			if fromScratch {
				scratch.put(decoded)
			}
		}
	}

	return img, nil
}

func sampleFormatFor(bitsPerSample int) SampleFormat {
	switch bitsPerSample {
	case 1:
		return FormatU1
	case 2:
		return FormatU2
	case 4:
		return FormatU4
	case 16:
		return FormatU16
	case 32:
		return FormatU32
	default:
		return FormatU8
	}
}

// writeTileIntoImage reconstructs pixels for one already-decompressed,
// predictor-reversed tile into img at its (tx,ty) tile position.
func writeTileIntoImage(img *Image, h *TiffHeader, decoded []byte, kind tiffImageKind, tx, ty int, tileRowBytes int) {
	originX := tx * h.TileWidth
	originY := ty * h.TileHeight

	maxY := h.TileHeight
	if originY+maxY > h.Height {
		maxY = h.Height - originY
	}
	maxX := h.TileWidth
	if originX+maxX > h.Width {
		maxX = h.Width - originX
	}
	if maxX <= 0 || maxY <= 0 {
		return
	}

	switch kind {
	case kindBilevel:
		writeBilevelTile(img, h, decoded, originX, originY, maxX, maxY, tileRowBytes)
	case kindPalette, kindGray4:
		writeSubByteTile(img, h, decoded, originX, originY, maxX, maxY, tileRowBytes)
	case kindCMYK:
		writeCMYKTile(img, h, decoded, originX, originY, maxX, maxY, tileRowBytes)
	default:
		writeDirectTile(img, h, decoded, originX, originY, maxX, maxY, tileRowBytes)
	}
}

func writeBilevelTile(img *Image, h *TiffHeader, decoded []byte, originX, originY, maxX, maxY, rowBytes int) {
	isWhiteZero := h.Photometric == photoWhiteIsZero
	for y := 0; y < maxY; y++ {
		rowStart := y * rowBytes
		if rowStart >= len(decoded) {
			break
		}
		br := NewBitReader(NewInputBuffer(decoded[rowStart:]))
		for x := 0; x < maxX; x++ {
			bit, err := br.ReadBits(1)
			if err != nil {
				break
			}
			v := uint32(bit)
			if isWhiteZero {
				v = 1 - v
			}
			img.setChannelRaw(originX+x, originY+y, 0, v)
		}
	}
}

func writeSubByteTile(img *Image, h *TiffHeader, decoded []byte, originX, originY, maxX, maxY, rowBytes int) {
	for y := 0; y < maxY; y++ {
		rowStart := y * rowBytes
		if rowStart >= len(decoded) {
			break
		}
		br := NewBitReader(NewInputBuffer(decoded[rowStart:]))
		for x := 0; x < maxX; x++ {
			idx, err := br.ReadBits(h.BitsPerSample)
			if err != nil {
				break
			}
			img.setChannelRaw(originX+x, originY+y, 0, idx)
		}
	}
}

func writeCMYKTile(img *Image, h *TiffHeader, decoded []byte, originX, originY, maxX, maxY, rowBytes int) {
	bytesPerSample := h.BitsPerSample / 8
	if bytesPerSample == 0 {
		bytesPerSample = 1
	}
	maxVal := float64(img.MaxChannelValue())
	for y := 0; y < maxY; y++ {
		for x := 0; x < maxX; x++ {
			off := y*rowBytes + x*h.SamplesPerPixel*bytesPerSample
			if off+4*bytesPerSample > len(decoded) {
				continue
			}
			c := readSampleAt(decoded, off, bytesPerSample)
			m := readSampleAt(decoded, off+bytesPerSample, bytesPerSample)
			yy := readSampleAt(decoded, off+2*bytesPerSample, bytesPerSample)
			k := readSampleAt(decoded, off+3*bytesPerSample, bytesPerSample)

			cf, mf, yf, kf := float64(c)/maxVal, float64(m)/maxVal, float64(yy)/maxVal, float64(k)/maxVal
			r, g, b := cmykToRgb(cf, mf, yf, kf)
			img.setPixelRgba(originX+x, originY+y, int(r), int(g), int(b), int(maxVal))
		}
	}
}

func writeDirectTile(img *Image, h *TiffHeader, decoded []byte, originX, originY, maxX, maxY, rowBytes int) {
	bytesPerSample := h.BitsPerSample / 8
	if bytesPerSample == 0 {
		bytesPerSample = 1
	}
	for y := 0; y < maxY; y++ {
		for x := 0; x < maxX; x++ {
			off := y*rowBytes + x*h.SamplesPerPixel*bytesPerSample
			if off+h.SamplesPerPixel*bytesPerSample > len(decoded) {
				continue
			}
			for c := 0; c < img.NumChannels && c < h.SamplesPerPixel; c++ {
				v := readSampleAt(decoded, off+c*bytesPerSample, bytesPerSample)
				img.setChannelRaw(originX+x, originY+y, c, v)
			}
		}
	}
}

func readSampleAt(data []byte, offset, bytesPerSample int) uint32 {
	switch bytesPerSample {
	case 1:
		return uint32(data[offset])
	case 2:
		return uint32(data[offset])<<8 | uint32(data[offset+1])
	case 4:
		return uint32(data[offset])<<24 | uint32(data[offset+1])<<16 | uint32(data[offset+2])<<8 | uint32(data[offset+3])
	default:
		return uint32(data[offset])
	}
}

// DecodeTiff decodes the first (or only) page of a TIFF byte stream into an
// Image. For multi-page files, use DecodeTiffAnimation.
func DecodeTiff(data []byte) (*Image, error) {
	anim, err := DecodeTiffAnimation(data)
	if err != nil {
		return nil, err
	}
	if len(anim.Frames) == 0 {
		return nil, wrapFormatError("DecodeTiff", "tiff", ErrInvalidHeader)
	}
	return anim.Frames[0].Image, nil
}

// DecodeTiffAnimation decodes every IFD (page) of a TIFF byte stream into a
// FrameAnimation of type page.
func DecodeTiffAnimation(data []byte) (*FrameAnimation, error) {
	if len(data) < 8 {
		return nil, wrapFormatError("DecodeTiffAnimation", "tiff", ErrInvalidSignature)
	}

	var bigEndian bool
	switch {
	case data[0] == 'I' && data[1] == 'I':
		bigEndian = false
	case data[0] == 'M' && data[1] == 'M':
		bigEndian = true
	default:
		return nil, wrapFormatError("DecodeTiffAnimation", "tiff", ErrInvalidSignature)
	}

	buf := NewInputBufferOrder(data, bigEndian)
	buf.Skip(2)
	magic, err := buf.ReadUint16()
	if err != nil || magic != 42 {
		return nil, wrapFormatError("DecodeTiffAnimation", "tiff", ErrInvalidSignature)
	}
	firstIFDOffset, err := buf.ReadUint32()
	if err != nil {
		return nil, wrapFormatError("DecodeTiffAnimation", "tiff", ErrInvalidHeader)
	}

	anim := NewFrameAnimation(0, 0, FrameTypePage)

	offset := firstIFDOffset
	for offset != 0 {
		buf.SetPosition(int(offset))
		entries, nextIFD, err := parseIFD(buf)
		if err != nil {
			return nil, err
		}
		header, err := parseTiffHeader(entries, nextIFD)
		if err != nil {
			return nil, err
		}
		img, err := decodeTiffImage(buf, header)
		if err != nil {
			return nil, err
		}
		if img.Width > anim.Width {
			anim.Width = img.Width
		}
		if img.Height > anim.Height {
			anim.Height = img.Height
		}
		anim.Frames = append(anim.Frames, Frame{Image: img})
		offset = nextIFD
	}

	return anim, nil
}
