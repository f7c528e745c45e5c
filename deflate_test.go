// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rasterimg

import (
	"bytes"
	"testing"
)

func TestDeflateRawRoundTrip(t *testing.T) {
	want := []byte("the quick brown fox jumps over the lazy dog, repeated: the quick brown fox jumps over the lazy dog")
	enc, err := EncodeDeflateRaw(want)
	if err != nil {
		t.Fatalf("EncodeDeflateRaw: %v", err)
	}
	got, err := DecodeDeflateRaw(enc)
	if err != nil {
		t.Fatalf("DecodeDeflateRaw: %v", err)
	}
	if !bytes.Equal(got, want) {
		t.Errorf("round trip mismatch")
	}
}

func TestDecodeDeflateAutoFallsBackToRaw(t *testing.T) {
	want := []byte("raw deflate payload")
	enc, err := EncodeDeflateRaw(want)
	if err != nil {
		t.Fatalf("EncodeDeflateRaw: %v", err)
	}
	got, err := DecodeDeflateAuto(enc)
	if err != nil {
		t.Fatalf("DecodeDeflateAuto: %v", err)
	}
	if !bytes.Equal(got, want) {
		t.Errorf("DecodeDeflateAuto mismatch: got %q want %q", got, want)
	}
}

func TestDecodeDeflateInvalid(t *testing.T) {
	if _, err := DecodeDeflateRaw([]byte{0xFF, 0xFF, 0xFF}); err == nil {
		t.Fatal("expected ErrInvalidDeflateStream")
	}
}
