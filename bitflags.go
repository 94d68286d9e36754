// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package dxf

// isBitSet returns true when bit pos of n is set. Used by the packed
// flag-bitfield accessors the schema generates one getter/setter pair for
// per logical boolean (spec §4.3, "Flag bitfields").
func isBitSet(n int64, pos uint) bool {
	return n&(1<<pos) != 0
}

// setBit returns n with bit pos forced to value.
func setBit(n int64, pos uint, value bool) int64 {
	if value {
		return n | (1 << pos)
	}
	return n &^ (1 << pos)
}
