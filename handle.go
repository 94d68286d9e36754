// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package dxf

import (
	"strconv"
	"strings"
)

// Handle is a document-unique identifier for a record, referenced by
// pointer fields on other records. It is hex-encoded on the wire.
type Handle uint64

// NoHandle is the zero value: "unset".
const NoHandle Handle = 0

// AutoAssignHandle is a reserved sentinel meaning "assign a fresh handle
// when this record is inserted into a Drawing" (spec §3, §9). All-ones in
// the 64-bit space cannot collide with a handle a real document assigns,
// since Drawing.nextHandle only ever hands out small monotonically
// increasing values.
const AutoAssignHandle Handle = ^Handle(0)

// String renders the handle the way it appears on the wire: uppercase
// hex, no leading zero padding.
func (h Handle) String() string {
	return strings.ToUpper(strconv.FormatUint(uint64(h), 16))
}

// ParseHandle parses a hex handle as read from a code-300-range pair.
func ParseHandle(s string) (Handle, error) {
	v, err := strconv.ParseUint(s, 16, 64)
	if err != nil {
		return 0, err
	}
	return Handle(v), nil
}

// IsAutoAssign reports whether h is the sentinel that requests a fresh
// handle at insertion time.
func (h Handle) IsAutoAssign() bool { return h == AutoAssignHandle }

// IsSet reports whether h is anything other than NoHandle.
func (h Handle) IsSet() bool { return h != NoHandle }
