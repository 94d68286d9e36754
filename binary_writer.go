// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package dxf

import (
	"bufio"
	"encoding/binary"
	"io"
	"math"

	"golang.org/x/text/encoding"
)

func floatFromBits(bits uint64) float64 { return math.Float64frombits(bits) }
func floatToBits(f float64) uint64      { return math.Float64bits(f) }

type binaryWriter struct {
	w        *bufio.Writer
	version  Version
	codePage encoding.Encoding
}

// NewBinaryWriter builds a PairWriter over the little-endian binary form.
func NewBinaryWriter(w io.Writer, version Version) PairWriter {
	return &binaryWriter{w: bufio.NewWriter(w), version: version, codePage: DefaultEncoding}
}

func (b *binaryWriter) SetCodePage(enc encoding.Encoding) { b.codePage = enc }
func (b *binaryWriter) Flush() error                      { return b.w.Flush() }

func (b *binaryWriter) WritePrelude() error {
	_, err := b.w.Write(BinarySentinel)
	return err
}

func (b *binaryWriter) writeCode(code int) error {
	if code >= 0 && code < 0xFF {
		return b.w.WriteByte(byte(code))
	}
	if err := b.w.WriteByte(0xFF); err != nil {
		return err
	}
	var buf [2]byte
	binary.LittleEndian.PutUint16(buf[:], uint16(int16(code)))
	_, err := b.w.Write(buf[:])
	return err
}

func (b *binaryWriter) Write(pair CodePair) error {
	if err := b.writeCode(pair.Code); err != nil {
		return err
	}
	v := pair.Value
	switch v.Kind {
	case KindBoolean:
		var x byte
		if v.Boolean {
			x = 1
		}
		return b.w.WriteByte(x)
	case KindShort:
		var buf [2]byte
		binary.LittleEndian.PutUint16(buf[:], uint16(v.Short))
		_, err := b.w.Write(buf[:])
		return err
	case KindInteger:
		var buf [4]byte
		binary.LittleEndian.PutUint32(buf[:], uint32(v.Integer))
		_, err := b.w.Write(buf[:])
		return err
	case KindLong:
		var buf [8]byte
		binary.LittleEndian.PutUint64(buf[:], uint64(v.Long))
		_, err := b.w.Write(buf[:])
		return err
	case KindDouble:
		var buf [8]byte
		binary.LittleEndian.PutUint64(buf[:], floatToBits(v.Double))
		_, err := b.w.Write(buf[:])
		return err
	case KindBinary:
		if len(v.Binary) > 0xFFFF {
			return &InvalidBinaryFileError{Reason: "binary blob too large for a 16-bit length prefix"}
		}
		var lenBuf [2]byte
		binary.LittleEndian.PutUint16(lenBuf[:], uint16(len(v.Binary)))
		if _, err := b.w.Write(lenBuf[:]); err != nil {
			return err
		}
		_, err := b.w.Write(v.Binary)
		return err
	case KindString:
		raw, err := encodeText(v.Str, b.version, b.codePage)
		if err != nil {
			return err
		}
		if _, err := b.w.Write(raw); err != nil {
			return err
		}
		return b.w.WriteByte(0)
	}
	return nil
}
