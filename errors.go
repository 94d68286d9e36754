// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package dxf

import (
	"errors"
	"fmt"
)

// Errors
var (
	// ErrUnexpectedEndOfInput is returned when the code-pair stream ends
	// mid-pair (a code line with no matching value line, or a binary file
	// truncated inside a value).
	ErrUnexpectedEndOfInput = errors.New("dxf: unexpected end of input")

	// ErrInvalidBinarySentinel is returned when a binary-form reader does
	// not find the "AutoCAD Binary DXF" preamble at the start of the file.
	ErrInvalidBinarySentinel = errors.New("dxf: not a binary DXF file, sentinel not found")

	// ErrInvalidDxbSentinel is returned when a DXB reader does not find the
	// "AutoCAD DXB 1.0\r\n" preamble.
	ErrInvalidDxbSentinel = errors.New("dxf: not a DXB file, sentinel not found")

	// ErrUnknownDxbItemTag is returned when the DXB reader encounters an
	// item tag byte it does not recognize.
	ErrUnknownDxbItemTag = errors.New("dxf: unknown DXB item tag")

	// ErrBlockBaseAfterEntities is returned when a DXB stream's BlockBase
	// item appears after entities have already been emitted.
	ErrBlockBaseAfterEntities = errors.New("dxf: DXB BlockBase item must precede every entity item")

	// ErrHandleNotFound is the error for a handle that does not match any
	// record in the Drawing. Drawing.Resolve does not return it; it reports
	// a miss through its boolean result.
	ErrHandleNotFound = errors.New("dxf: handle not found in drawing")
)

// MalformedValueError is returned when a code pair's value text cannot be
// decoded as the kind its code requires (e.g. non-numeric text on a Double
// code).
type MalformedValueError struct {
	Code   int
	Offset int64
	Reason string
}

func (e *MalformedValueError) Error() string {
	return fmt.Sprintf("dxf: malformed value for code %d at offset %d: %s", e.Code, e.Offset, e.Reason)
}

// UnexpectedCodePairError is returned by the section dispatcher when a pair
// arrives at a point where a specific boundary pair was expected.
type UnexpectedCodePairError struct {
	Pair    CodePair
	Context string
}

func (e *UnexpectedCodePairError) Error() string {
	return fmt.Sprintf("dxf: unexpected code pair %s, expected %s", e.Pair, e.Context)
}

// UnexpectedEnumValueError is returned when a raw integer fails to map to
// its schema-declared enum.
type UnexpectedEnumValueError struct {
	Field string
	Value int64
}

func (e *UnexpectedEnumValueError) Error() string {
	return fmt.Sprintf("dxf: %d is not a valid value for %s", e.Value, e.Field)
}

// WrongItemTypeError is returned by a typed pointer setter when the
// supplied item's runtime variant disagrees with the schema's required
// variant.
type WrongItemTypeError struct {
	Field    string
	Expected string
	Actual   string
}

func (e *WrongItemTypeError) Error() string {
	return fmt.Sprintf("dxf: %s expects a %s, got %s", e.Field, e.Expected, e.Actual)
}

// InvalidBinaryFileError reports DXB-specific structural violations beyond
// the sentinel errors above (e.g. a Bulge or Width item that does not
// follow a Vertex).
type InvalidBinaryFileError struct {
	Reason string
}

func (e *InvalidBinaryFileError) Error() string {
	return fmt.Sprintf("dxf: invalid binary file: %s", e.Reason)
}
