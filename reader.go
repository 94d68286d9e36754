// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package dxf

import "golang.org/x/text/encoding"

// PairReader produces the next CodePair in a stream, or (nil, nil) at a
// clean end of stream. Implementations never decode what a pair *means* —
// only how it is shaped on the wire (spec §4.1).
type PairReader interface {
	Next() (*CodePair, error)

	// SetVersion notifies the reader of the drawing's schema version once
	// $ACADVER has been read from the HEADER section, so that subsequent
	// string pairs are decoded with the correct text-encoding rule
	// (code-page vs. UTF-8, see spec §4.1).
	SetVersion(v Version)

	// SetCodePage overrides the byte-to-character encoding used for
	// pre-R2007 string pairs. A nil encoding resets to DefaultEncoding.
	SetCodePage(enc encoding.Encoding)
}

// pushbackReader wraps a PairReader with an unbounded single-stream
// pushback slot, used by the section dispatcher, the record codec, and the
// composite coalescer as three independent layers (spec §9, "Composite
// children and the put-back iterator").
type pushbackReader struct {
	inner PairReader
	stack []CodePair
}

// NewPushbackReader wraps inner with its own pushback stack.
func NewPushbackReader(inner PairReader) *pushbackReader {
	return &pushbackReader{inner: inner}
}

func (r *pushbackReader) Next() (*CodePair, error) {
	if n := len(r.stack); n > 0 {
		p := r.stack[n-1]
		r.stack = r.stack[:n-1]
		return &p, nil
	}
	return r.inner.Next()
}

// PutBack pushes pair back so the next Next() call returns it again.
func (r *pushbackReader) PutBack(pair CodePair) {
	r.stack = append(r.stack, pair)
}

func (r *pushbackReader) SetVersion(v Version)             { r.inner.SetVersion(v) }
func (r *pushbackReader) SetCodePage(enc encoding.Encoding) { r.inner.SetCodePage(enc) }
