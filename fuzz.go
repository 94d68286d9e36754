// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package dxf

// Fuzz is a go-fuzz entry point: it must never panic on arbitrary input,
// only return an error through the normal Load path.
func Fuzz(data []byte) int {
	d, err := OpenBytes(data, nil)
	if err != nil || d == nil {
		return 0
	}
	return 1
}
