// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rasterimg

import "sync"

// tileScratchPool reuses tile-sized decompression buffers across tiles
// within one decode, the way memory_pools.go's sync.Pool wrappers reuse
// PDF text-extraction objects.
type tileScratchPool struct {
	pool sync.Pool
}

func newTileScratchPool() *tileScratchPool {
	return &tileScratchPool{
		pool: sync.Pool{
			New: func() interface{} {
				buf := make([]byte, 0, 4096)
				return &buf
			},
		},
	}
}

// get returns a zeroed buffer of exactly size bytes, reusing pooled
// capacity when available.
func (p *tileScratchPool) get(size int) []byte {
	bp := p.pool.Get().(*[]byte)
	buf := *bp
	if cap(buf) < size {
		buf = make([]byte, size)
	} else {
		buf = buf[:size]
		for i := range buf {
			buf[i] = 0
		}
	}
	return buf
}

// put returns buf to the pool for reuse by a later tile.
func (p *tileScratchPool) put(buf []byte) {
	if cap(buf) > 1<<20 {
		return
	}
	buf = buf[:0]
	p.pool.Put(&buf)
}
