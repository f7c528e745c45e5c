// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rasterimg

import "testing"

func TestTileScratchPoolGetSize(t *testing.T) {
	p := newTileScratchPool()
	buf := p.get(128)
	if len(buf) != 128 {
		t.Errorf("len(buf) = %d, want 128", len(buf))
	}
	for _, b := range buf {
		if b != 0 {
			t.Fatal("scratch buffer not zeroed")
		}
	}
}

func TestTileScratchPoolReuse(t *testing.T) {
	p := newTileScratchPool()
	buf := p.get(64)
	buf[0] = 0xFF
	p.put(buf)
	buf2 := p.get(64)
	if buf2[0] != 0 {
		t.Error("reused buffer not cleared")
	}
}
