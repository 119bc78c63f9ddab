// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of copperdag.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package mempool

import "unsafe"

// uintptrOf returns the address of a slice's backing array, used only to
// compute the alignment padding in newAlignedBuffer.
func uintptrOf(b []byte) uintptr {
	if len(b) == 0 {
		return 0
	}
	return uintptr(unsafe.Pointer(&b[0]))
}
