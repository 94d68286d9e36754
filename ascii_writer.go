// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package dxf

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/text/encoding"
)

// PairWriter emits CodePairs in one of the Format's two wire forms.
type PairWriter interface {
	Write(pair CodePair) error
	// WritePrelude emits whatever bytes must precede the first pair (the
	// binary sentinel in binary form, nothing in ASCII form).
	WritePrelude() error
	Flush() error
}

type asciiWriter struct {
	w        *bufio.Writer
	version  Version
	codePage encoding.Encoding
}

// NewASCIIWriter builds a PairWriter over the line-oriented ASCII form for
// the given schema version.
func NewASCIIWriter(w io.Writer, version Version) PairWriter {
	return &asciiWriter{w: bufio.NewWriter(w), version: version, codePage: DefaultEncoding}
}

// SetCodePage overrides the byte-to-character encoding used for pre-R2007
// string pairs.
func (a *asciiWriter) SetCodePage(enc encoding.Encoding) { a.codePage = enc }

func (a *asciiWriter) WritePrelude() error { return nil }
func (a *asciiWriter) Flush() error        { return a.w.Flush() }

func (a *asciiWriter) Write(pair CodePair) error {
	codeWidth := 3
	if pair.Code > 999 || pair.Code < -999 {
		codeWidth = 4
	}
	if _, err := fmt.Fprintf(a.w, "%*d\n", codeWidth, pair.Code); err != nil {
		return err
	}
	text, err := a.formatValue(pair.Code, pair.Value)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(a.w, "%s\n", text)
	return err
}

func (a *asciiWriter) formatValue(code int, v Value) (string, error) {
	switch v.Kind {
	case KindBoolean:
		if v.Boolean {
			return "1", nil
		}
		return "0", nil
	case KindShort:
		return fmt.Sprintf("%-5d", v.Short), nil
	case KindInteger:
		return fmt.Sprintf("%-9d", v.Integer), nil
	case KindLong:
		return fmt.Sprintf("%-12d", v.Long), nil
	case KindDouble:
		return formatDouble(v.Double, a.version), nil
	case KindBinary:
		return encodeHex(v.Binary), nil
	case KindString:
		if code == 999 {
			return v.Str, nil
		}
		raw, err := encodeText(v.Str, a.version, a.codePage)
		if err != nil {
			return "", err
		}
		return string(raw), nil
	}
	return "", fmt.Errorf("dxf: cannot format value of kind %s", v.Kind)
}

// formatDouble renders a double the way the Format's ASCII writer does:
// always a decimal point, full round-trip precision at R2004+, a shorter
// ~16 significant-digit rendering before that (spec §4.1).
func formatDouble(f float64, version Version) string {
	prec := -1
	if version.Before(R2004) {
		prec = 16
	}
	s := strconv.FormatFloat(f, 'g', prec, 64)
	return ensureDecimalPoint(s)
}

func ensureDecimalPoint(s string) string {
	mantissa, exponent, hasExp := s, "", false
	if i := strings.IndexAny(s, "eE"); i >= 0 {
		mantissa, exponent, hasExp = s[:i], s[i:], true
	}
	if !strings.Contains(mantissa, ".") {
		mantissa += ".0"
	}
	if hasExp {
		return mantissa + exponent
	}
	return mantissa
}

func encodeHex(b []byte) string {
	const digits = "0123456789ABCDEF"
	out := make([]byte, len(b)*2)
	for i, c := range b {
		out[i*2] = digits[c>>4]
		out[i*2+1] = digits[c&0xf]
	}
	return string(out)
}
