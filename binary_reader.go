// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package dxf

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"io"

	"golang.org/x/text/encoding"
)

// BinarySentinel is the preamble every binary-form Format file starts
// with: the literal text followed by a Ctrl-Z and a NUL.
var BinarySentinel = append([]byte("AutoCAD Binary DXF"), 0x1A, 0x00)

type binaryReader struct {
	r        *bufio.Reader
	version  Version
	codePage encoding.Encoding
	sawPrelude bool
}

// NewBinaryReader builds a PairReader over the little-endian binary form.
// It consumes and validates the sentinel before the first Next() call.
func NewBinaryReader(r io.Reader) (PairReader, error) {
	br := &binaryReader{r: bufio.NewReader(r), codePage: DefaultEncoding}
	sentinel := make([]byte, len(BinarySentinel))
	if _, err := io.ReadFull(br.r, sentinel); err != nil {
		return nil, ErrInvalidBinarySentinel
	}
	if !bytes.Equal(sentinel, BinarySentinel) {
		return nil, ErrInvalidBinarySentinel
	}
	br.sawPrelude = true
	return br, nil
}

func (b *binaryReader) SetVersion(v Version)             { b.version = v }
func (b *binaryReader) SetCodePage(enc encoding.Encoding) { b.codePage = enc }

func (b *binaryReader) readByte() (byte, error) {
	return b.r.ReadByte()
}

func (b *binaryReader) readN(n int) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := io.ReadFull(b.r, buf); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return nil, ErrUnexpectedEndOfInput
		}
		return nil, err
	}
	return buf, nil
}

func (b *binaryReader) readCode() (int, error) {
	first, err := b.readByte()
	if err != nil {
		if err == io.EOF {
			return 0, io.EOF
		}
		return 0, ErrUnexpectedEndOfInput
	}
	if first != 0xFF {
		return int(first), nil
	}
	buf, err := b.readN(2)
	if err != nil {
		return 0, err
	}
	return int(int16(binary.LittleEndian.Uint16(buf))), nil
}

func (b *binaryReader) readCString() (string, error) {
	var buf []byte
	for {
		c, err := b.readByte()
		if err != nil {
			return "", ErrUnexpectedEndOfInput
		}
		if c == 0 {
			break
		}
		buf = append(buf, c)
	}
	return decodeText(buf, b.version, b.codePage)
}

func (b *binaryReader) Next() (*CodePair, error) {
	code, err := b.readCode()
	if err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, err
	}

	kind, ok := KindOfCode(code)
	if !ok {
		return nil, &MalformedValueError{Code: code, Reason: "code outside any published range"}
	}

	var value Value
	switch kind {
	case KindBoolean:
		buf, err := b.readN(1)
		if err != nil {
			return nil, err
		}
		value = BooleanValue(buf[0] != 0)
	case KindShort:
		buf, err := b.readN(2)
		if err != nil {
			return nil, err
		}
		value = ShortValue(int16(binary.LittleEndian.Uint16(buf)))
	case KindInteger:
		buf, err := b.readN(4)
		if err != nil {
			return nil, err
		}
		value = IntegerValue(int32(binary.LittleEndian.Uint32(buf)))
	case KindLong:
		buf, err := b.readN(8)
		if err != nil {
			return nil, err
		}
		value = LongValue(int64(binary.LittleEndian.Uint64(buf)))
	case KindDouble:
		buf, err := b.readN(8)
		if err != nil {
			return nil, err
		}
		value = DoubleValue(floatFromBits(binary.LittleEndian.Uint64(buf)))
	case KindBinary:
		lenBuf, err := b.readN(2)
		if err != nil {
			return nil, err
		}
		n := binary.LittleEndian.Uint16(lenBuf)
		buf, err := b.readN(int(n))
		if err != nil {
			return nil, err
		}
		value = BinaryValue(buf)
	case KindString:
		s, err := b.readCString()
		if err != nil {
			return nil, err
		}
		value = StringValue(s)
	}
	return &CodePair{Code: code, Value: value}, nil
}
