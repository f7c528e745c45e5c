// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rasterimg

import (
	"errors"
	"fmt"
)

// ImageError represents an error that occurred while decoding or transforming
// an image. It carries contextual information about where the error
// occurred, in the same shape as Geek0x0-pdf's PDFError (Op/Page/Path/Err).
type ImageError struct {
	Op     string // operation that failed (e.g. "decode tile", "read IFD")
	Format string // container format, if known (e.g. "tiff", "gif")
	Err    error  // underlying error
}

func (e *ImageError) Error() string {
	if e.Format != "" {
		return fmt.Sprintf("rasterimg: %s (%s): %v", e.Op, e.Format, e.Err)
	}
	return fmt.Sprintf("rasterimg: %s: %v", e.Op, e.Err)
}

func (e *ImageError) Unwrap() error {
	return e.Err
}

// Sentinel errors, one per documented failure kind.
var (
	// ErrInvalidSignature indicates magic bytes do not match the expected format.
	ErrInvalidSignature = errors.New("invalid file signature")

	// ErrInvalidHeader indicates a header field has an impossible value.
	ErrInvalidHeader = errors.New("invalid header")

	// ErrEndOfStream indicates a read past the end of the input buffer.
	ErrEndOfStream = errors.New("end of stream")

	// ErrUnsupportedFeature indicates a valid-but-unimplemented format path.
	ErrUnsupportedFeature = errors.New("unsupported feature")

	// ErrUnsupportedCompression indicates a compression tag outside the supported set.
	ErrUnsupportedCompression = errors.New("unsupported compression")

	// ErrUnsupportedSampleDepth indicates a bits-per-sample value that is not handled.
	ErrUnsupportedSampleDepth = errors.New("unsupported sample depth")

	// ErrInvalidLzwStream indicates corrupt LZW-compressed data.
	ErrInvalidLzwStream = errors.New("invalid LZW stream")

	// ErrInvalidDeflateStream indicates corrupt DEFLATE-compressed data.
	ErrInvalidDeflateStream = errors.New("invalid deflate stream")

	// ErrFaxDecodeError indicates a malformed CCITT fax code.
	ErrFaxDecodeError = errors.New("fax decode error")

	// ErrTruncatedTile indicates a tile/strip byte count exceeding the remaining stream.
	ErrTruncatedTile = errors.New("truncated tile")

	// ErrUnterminatedString indicates a NUL-terminated string reached EOF first.
	ErrUnterminatedString = errors.New("unterminated string")

	// ErrInvalidPixelCoordinate indicates an out-of-bounds strict pixel access.
	ErrInvalidPixelCoordinate = errors.New("invalid pixel coordinate")
)

// wrapError wraps err with operation context. Returns nil if err is nil.
func wrapError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &ImageError{Op: op, Err: err}
}

// wrapFormatError wraps err with operation and format context.
func wrapFormatError(op, format string, err error) error {
	if err == nil {
		return nil
	}
	return &ImageError{Op: op, Format: format, Err: err}
}
