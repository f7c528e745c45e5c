// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rasterimg

import (
	"errors"
	"testing"
)

func TestImageErrorFormatting(t *testing.T) {
	tests := []struct {
		name string
		err  *ImageError
		want string
	}{
		{
			name: "with format",
			err:  &ImageError{Op: "decode tile", Format: "tiff", Err: ErrTruncatedTile},
			want: "rasterimg: decode tile (tiff): truncated tile",
		},
		{
			name: "without format",
			err:  &ImageError{Op: "read IFD", Err: ErrEndOfStream},
			want: "rasterimg: read IFD: end of stream",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestImageErrorUnwrap(t *testing.T) {
	wrapped := wrapFormatError("decode frame", "gif", ErrUnsupportedCompression)
	if !errors.Is(wrapped, ErrUnsupportedCompression) {
		t.Errorf("errors.Is failed to find sentinel through wrap chain")
	}
}

func TestWrapErrorNil(t *testing.T) {
	if err := wrapError("op", nil); err != nil {
		t.Errorf("wrapError(op, nil) = %v, want nil", err)
	}
	if err := wrapFormatError("op", "png", nil); err != nil {
		t.Errorf("wrapFormatError(op, png, nil) = %v, want nil", err)
	}
}
