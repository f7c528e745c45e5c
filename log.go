// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rasterimg

import "fmt"

// debugf writes a diagnostic message to stdout when Debug is set. Grounded on
// Geek0x0-pdf's DebugOn/fmt.Println pattern: no pack repo carries a
// structured logging dependency, so this stays on bare fmt rather than
// introducing one.
func debugf(format string, args ...any) {
	if !Debug {
		return
	}
	fmt.Printf("rasterimg: "+format+"\n", args...)
}
