// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rasterimg

// TIFF tag constants recognized by the decoder.
const (
	tagImageWidth                = 256
	tagImageLength                = 257
	tagBitsPerSample              = 258
	tagCompression                = 259
	tagPhotometricInterpretation  = 262
	tagFillOrder                  = 266
	tagStripOffsets               = 273
	tagSamplesPerPixel            = 277
	tagRowsPerStrip               = 278
	tagStripByteCounts            = 279
	tagPlanarConfiguration        = 284
	tagT4Options                  = 292
	tagT6Options                  = 293
	tagColorMap                   = 320
	tagTileWidth                  = 322
	tagTileLength                 = 323
	tagTileOffsets                = 324
	tagTileByteCounts             = 325
	tagExtraSamples               = 338
	tagSampleFormat                = 339
	tagYCbCrSubSampling            = 530
	tagPredictor                  = 317
	tagOrientation                = 274
)

// TIFF field types and their fixed byte sizes.
const (
	fieldByte      = 1
	fieldAscii     = 2
	fieldShort     = 3
	fieldLong      = 4
	fieldRational  = 5
	fieldSByte     = 6
	fieldUndefined = 7
	fieldSShort    = 8
	fieldSLong     = 9
	fieldSRational = 10
	fieldSingle    = 11
	fieldDouble    = 12
)

// fieldTypeSize returns the byte size of one value of the given field type,
// or 0 if the type is not recognized (isValid is false in that case).
func fieldTypeSize(fieldType int) int {
	switch fieldType {
	case fieldByte, fieldAscii, fieldSByte, fieldUndefined:
		return 1
	case fieldShort, fieldSShort:
		return 2
	case fieldLong, fieldSLong, fieldSingle:
		return 4
	case fieldRational, fieldSRational, fieldDouble:
		return 8
	default:
		return 0
	}
}

func fieldTypeValid(fieldType int) bool {
	return fieldType >= 1 && fieldType <= 12
}

// TiffEntry is one parsed IFD record: (tag, fieldType, count, valueOrOffset).
// Values are resolved and cached by read(), which parseIFD calls for every
// entry while it parses the directory; they are not deferred until first use.
type TiffEntry struct {
	Tag           uint16
	FieldType     int
	Count         uint32
	ValueOrOffset uint32

	cachedInts    []int64
	cachedFloats  []float64
	cachedData    []byte
	resolved      bool
}

// isValid reports whether the entry's field type is in the recognized set.
func (e *TiffEntry) isValid() bool {
	return fieldTypeValid(e.FieldType)
}

// typeSize returns the storage size of one value of this entry's field type.
func (e *TiffEntry) typeSize() int {
	return fieldTypeSize(e.FieldType)
}

// totalSize returns count * typeSize.
func (e *TiffEntry) totalSize() int {
	return int(e.Count) * e.typeSize()
}

// read resolves the entry's values against buf (the whole-file buffer;
// its cursor is not moved), following valueOrOffset as an absolute file
// offset when the inline 4-byte slot cannot hold the data.
func (e *TiffEntry) read(buf *InputBuffer) error {
	if e.resolved {
		return nil
	}
	size := e.totalSize()

	var src *InputBuffer
	var err error
	if size <= 4 {
		src, err = NewInputBufferOrder(encodeU32(e.ValueOrOffset, buf.BigEndian()), buf.BigEndian()), nil
	} else {
		src, err = buf.Subarray(size, int(e.ValueOrOffset))
	}
	if err != nil {
		return wrapFormatError("read IFD entry", "tiff", err)
	}

	switch e.FieldType {
	case fieldAscii, fieldUndefined:
		data, err := src.ReadBytes(size)
		if err != nil {
			return wrapFormatError("read IFD entry", "tiff", err)
		}
		e.cachedData = data
	default:
		ints := make([]int64, 0, e.Count)
		floats := make([]float64, 0, e.Count)
		for i := uint32(0); i < e.Count; i++ {
			iv, fv, err := readTiffValue(src, e.FieldType)
			if err != nil {
				return wrapFormatError("read IFD entry", "tiff", err)
			}
			ints = append(ints, iv)
			floats = append(floats, fv)
		}
		e.cachedInts = ints
		e.cachedFloats = floats
	}
	e.resolved = true
	return nil
}

func readTiffValue(src *InputBuffer, fieldType int) (int64, float64, error) {
	switch fieldType {
	case fieldByte, fieldUndefined:
		v, err := src.Read()
		return int64(v), float64(v), err
	case fieldSByte:
		v, err := src.ReadInt8()
		return int64(v), float64(v), err
	case fieldShort:
		v, err := src.ReadUint16()
		return int64(v), float64(v), err
	case fieldSShort:
		v, err := src.ReadInt16()
		return int64(v), float64(v), err
	case fieldLong:
		v, err := src.ReadUint32()
		return int64(v), float64(v), err
	case fieldSLong:
		v, err := src.ReadInt32()
		return int64(v), float64(v), err
	case fieldSingle:
		v, err := src.ReadFloat32()
		return int64(v), float64(v), err
	case fieldDouble:
		v, err := src.ReadFloat64()
		return int64(v), v, err
	case fieldRational:
		num, err := src.ReadUint32()
		if err != nil {
			return 0, 0, err
		}
		den, err := src.ReadUint32()
		if err != nil {
			return 0, 0, err
		}
		if den == 0 {
			return 0, 0, nil
		}
		return int64(num / den), float64(num) / float64(den), nil
	case fieldSRational:
		num, err := src.ReadInt32()
		if err != nil {
			return 0, 0, err
		}
		den, err := src.ReadInt32()
		if err != nil {
			return 0, 0, err
		}
		if den == 0 {
			return 0, 0, nil
		}
		return int64(num / den), float64(num) / float64(den), nil
	default:
		return 0, 0, wrapError("readTiffValue", ErrUnsupportedFeature)
	}
}

func encodeU32(v uint32, bigEndian bool) []byte {
	if bigEndian {
		return []byte{byte(v >> 24), byte(v >> 16), byte(v >> 8), byte(v)}
	}
	return []byte{byte(v), byte(v >> 8), byte(v >> 16), byte(v >> 24)}
}

// toInt returns the i'th value (default 0) as an int64. Must call read first.
func (e *TiffEntry) toInt(i ...int) int64 {
	idx := 0
	if len(i) > 0 {
		idx = i[0]
	}
	if idx < 0 || idx >= len(e.cachedInts) {
		return 0
	}
	return e.cachedInts[idx]
}

// toDouble returns the i'th value (default 0) as a float64.
func (e *TiffEntry) toDouble(i ...int) float64 {
	idx := 0
	if len(i) > 0 {
		idx = i[0]
	}
	if idx < 0 || idx >= len(e.cachedFloats) {
		return 0
	}
	return e.cachedFloats[idx]
}

// toData returns the raw ASCII/undefined payload, trimmed to the embedded
// NUL for ASCII strings.
func (e *TiffEntry) toData() []byte {
	if e.FieldType == fieldAscii {
		for i, b := range e.cachedData {
			if b == 0 {
				return e.cachedData[:i]
			}
		}
	}
	return e.cachedData
}

// toIntSlice returns all resolved integer values.
func (e *TiffEntry) toIntSlice() []int64 {
	return e.cachedInts
}

// parseIFD reads one Image File Directory starting at the current position
// of buf, returning the entry map and the file offset of the next IFD (0 if
// none).
func parseIFD(buf *InputBuffer) (map[uint16]*TiffEntry, uint32, error) {
	count, err := buf.ReadUint16()
	if err != nil {
		return nil, 0, wrapFormatError("parseIFD", "tiff", err)
	}

	entries := make(map[uint16]*TiffEntry, count)
	for i := 0; i < int(count); i++ {
		tag, err := buf.ReadUint16()
		if err != nil {
			return nil, 0, wrapFormatError("parseIFD", "tiff", err)
		}
		fieldType, err := buf.ReadUint16()
		if err != nil {
			return nil, 0, wrapFormatError("parseIFD", "tiff", err)
		}
		valCount, err := buf.ReadUint32()
		if err != nil {
			return nil, 0, wrapFormatError("parseIFD", "tiff", err)
		}
		valueOrOffset, err := buf.ReadUint32()
		if err != nil {
			return nil, 0, wrapFormatError("parseIFD", "tiff", err)
		}
		entry := &TiffEntry{Tag: tag, FieldType: int(fieldType), Count: valCount, ValueOrOffset: valueOrOffset}
		if err := entry.read(buf); err != nil {
			return nil, 0, err
		}
		entries[tag] = entry
	}

	nextIFD, err := buf.ReadUint32()
	if err != nil {
		return nil, 0, wrapFormatError("parseIFD", "tiff", err)
	}
	return entries, nextIFD, nil
}
