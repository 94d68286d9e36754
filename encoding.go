// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package dxf

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

// DefaultEncoding is the byte-to-character encoding used when a caller
// does not select one: Windows code page 1252.
var DefaultEncoding encoding.Encoding = charmap.Windows1252

// escapeNonASCII rewrites every rune outside the printable ASCII range as
// a `\U+XXXX` escape. Pre-R2007 ASCII files store all text in the selected
// 8-bit code page and fall back to these escapes for characters the page
// can't represent; R2007+ stores UTF-8 directly and never escapes.
func escapeNonASCII(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= 0x20 && r < 0x7f {
			b.WriteRune(r)
			continue
		}
		fmt.Fprintf(&b, "\\U+%04X", r)
	}
	return b.String()
}

// unescapeNonASCII reverses escapeNonASCII. decodeText applies it only to
// pre-R2007 text; R2007+ UTF-8 input is returned with escapes intact.
func unescapeNonASCII(s string) string {
	if !strings.Contains(s, "\\U+") {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); {
		if i+7 <= len(s) && s[i:i+3] == "\\U+" {
			if cp, err := strconv.ParseUint(s[i+3:i+7], 16, 32); err == nil {
				b.WriteRune(rune(cp))
				i += 7
				continue
			}
		}
		b.WriteByte(s[i])
		i++
	}
	return b.String()
}

// decodeText turns the raw bytes of a string code pair into a Go string,
// honoring the version-dependent wire encoding: UTF-8 verbatim at R2007+,
// otherwise codePage-decoded with `\U+XXXX` escapes unescaped.
func decodeText(raw []byte, version Version, codePage encoding.Encoding) (string, error) {
	if version.AtLeast(R2007) {
		return string(raw), nil
	}
	if codePage == nil {
		codePage = DefaultEncoding
	}
	decoded, err := codePage.NewDecoder().Bytes(raw)
	if err != nil {
		return "", err
	}
	return unescapeNonASCII(string(decoded)), nil
}

// encodeText turns a Go string into the raw bytes to write on the wire,
// honoring the same version split as decodeText.
func encodeText(s string, version Version, codePage encoding.Encoding) ([]byte, error) {
	if version.AtLeast(R2007) {
		return []byte(s), nil
	}
	if codePage == nil {
		codePage = DefaultEncoding
	}
	return codePage.NewEncoder().Bytes([]byte(escapeNonASCII(s)))
}
