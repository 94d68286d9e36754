// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package dxf

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"golang.org/x/text/encoding"
)

// asciiReader lexes the line-oriented ASCII form: for each pair, one line
// holding the code, then one line holding the value (spec §4.1).
type asciiReader struct {
	r        *bufio.Reader
	offset   int64
	version  Version
	codePage encoding.Encoding
}

// NewASCIIReader builds a PairReader over the line-oriented ASCII form.
func NewASCIIReader(r io.Reader) PairReader {
	return &asciiReader{r: bufio.NewReader(r), codePage: DefaultEncoding}
}

func (a *asciiReader) SetVersion(v Version)             { a.version = v }
func (a *asciiReader) SetCodePage(enc encoding.Encoding) { a.codePage = enc }

func (a *asciiReader) readLine() (string, error) {
	line, err := a.r.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	a.offset += int64(len(line))
	return strings.TrimRight(line, "\r\n"), nil
}

func (a *asciiReader) Next() (*CodePair, error) {
	codeLine, err := a.readLine()
	if err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, err
	}
	codeLine = strings.TrimSpace(codeLine)
	if codeLine == "" {
		return a.Next()
	}
	code, err := strconv.Atoi(codeLine)
	if err != nil {
		return nil, &MalformedValueError{Offset: a.offset, Reason: "code line is not an integer: " + codeLine}
	}

	valueLine, err := a.readLine()
	if err != nil {
		if err == io.EOF {
			return nil, ErrUnexpectedEndOfInput
		}
		return nil, err
	}

	kind, ok := KindOfCode(code)
	if !ok {
		return nil, &MalformedValueError{Code: code, Offset: a.offset, Reason: "code outside any published range"}
	}

	value, err := a.parseValue(code, kind, valueLine)
	if err != nil {
		return nil, err
	}
	return &CodePair{Code: code, Value: value}, nil
}

func (a *asciiReader) parseValue(code int, kind ValueKind, text string) (Value, error) {
	switch kind {
	case KindBoolean:
		switch strings.TrimSpace(text) {
		case "0":
			return BooleanValue(false), nil
		case "1":
			return BooleanValue(true), nil
		default:
			return Value{}, &MalformedValueError{Code: code, Offset: a.offset, Reason: "expected 0 or 1, got " + text}
		}
	case KindShort:
		n, err := strconv.ParseInt(strings.TrimSpace(text), 10, 16)
		if err != nil {
			return Value{}, &MalformedValueError{Code: code, Offset: a.offset, Reason: err.Error()}
		}
		return ShortValue(int16(n)), nil
	case KindInteger:
		n, err := strconv.ParseInt(strings.TrimSpace(text), 10, 32)
		if err != nil {
			return Value{}, &MalformedValueError{Code: code, Offset: a.offset, Reason: err.Error()}
		}
		return IntegerValue(int32(n)), nil
	case KindLong:
		n, err := strconv.ParseInt(strings.TrimSpace(text), 10, 64)
		if err != nil {
			return Value{}, &MalformedValueError{Code: code, Offset: a.offset, Reason: err.Error()}
		}
		return LongValue(n), nil
	case KindDouble:
		f, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
		if err != nil {
			return Value{}, &MalformedValueError{Code: code, Offset: a.offset, Reason: err.Error()}
		}
		return DoubleValue(f), nil
	case KindBinary:
		b, err := decodeHex(strings.TrimSpace(text))
		if err != nil {
			return Value{}, &MalformedValueError{Code: code, Offset: a.offset, Reason: err.Error()}
		}
		return BinaryValue(b), nil
	case KindString:
		if code == 999 {
			return StringValue(text), nil
		}
		s, err := decodeText([]byte(text), a.version, a.codePage)
		if err != nil {
			return Value{}, &MalformedValueError{Code: code, Offset: a.offset, Reason: err.Error()}
		}
		return StringValue(s), nil
	}
	return Value{}, &MalformedValueError{Code: code, Offset: a.offset, Reason: "unhandled kind"}
}

func decodeHex(s string) ([]byte, error) {
	if len(s)%2 != 0 {
		return nil, &MalformedValueError{Reason: "odd-length hex string"}
	}
	out := make([]byte, len(s)/2)
	for i := range out {
		hi, err := hexDigit(s[i*2])
		if err != nil {
			return nil, err
		}
		lo, err := hexDigit(s[i*2+1])
		if err != nil {
			return nil, err
		}
		out[i] = hi<<4 | lo
	}
	return out, nil
}

func hexDigit(c byte) (byte, error) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', nil
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, nil
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, nil
	}
	return 0, &MalformedValueError{Reason: "invalid hex digit"}
}
