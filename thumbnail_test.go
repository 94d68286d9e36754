// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package dxf

import (
	"encoding/binary"
	"testing"
)

// buildDIB constructs a minimal uncompressed, uncolor-mapped 24-bit DIB
// payload (a BITMAPINFOHEADER with no palette) so synthesizeBitmapFile's
// data-offset arithmetic can be checked without needing an image library.
func buildDIB(width, height int32) []byte {
	const headerSize = 40
	rowBytes := (int(width)*3 + 3) &^ 3
	pixels := rowBytes * int(height)
	dib := make([]byte, headerSize+pixels)
	binary.LittleEndian.PutUint32(dib[0:4], headerSize)
	binary.LittleEndian.PutUint32(dib[4:8], uint32(width))
	binary.LittleEndian.PutUint32(dib[8:12], uint32(height))
	binary.LittleEndian.PutUint16(dib[14:16], 24) // bits per pixel
	return dib
}

func TestSynthesizeBitmapFile_NoPalette(t *testing.T) {
	dib := buildDIB(2, 2)
	full, err := synthesizeBitmapFile(dib)
	if err != nil {
		t.Fatalf("synthesizeBitmapFile failed: %v", err)
	}
	if full[0] != 'B' || full[1] != 'M' {
		t.Fatalf("got magic %q, want \"BM\"", full[0:2])
	}
	gotLen := binary.LittleEndian.Uint32(full[2:6])
	if int(gotLen) != len(full) {
		t.Errorf("got file-size field %d, want %d", gotLen, len(full))
	}
	gotOffset := binary.LittleEndian.Uint32(full[10:14])
	wantOffset := uint32(bitmapFileHeaderSize + 40) // no palette for 24bpp
	if gotOffset != wantOffset {
		t.Errorf("got data offset %d, want %d", gotOffset, wantOffset)
	}
	if len(full) != bitmapFileHeaderSize+len(dib) {
		t.Errorf("got total length %d, want %d", len(full), bitmapFileHeaderSize+len(dib))
	}
}

func TestSynthesizeBitmapFile_WithPalette(t *testing.T) {
	const headerSize = 40
	dib := make([]byte, headerSize+16) // header + 4-entry palette, no pixel data
	binary.LittleEndian.PutUint32(dib[0:4], headerSize)
	binary.LittleEndian.PutUint16(dib[14:16], 1) // 1 bit per pixel -> 2 palette entries by default
	binary.LittleEndian.PutUint32(dib[32:36], 4) // explicit palette color count

	full, err := synthesizeBitmapFile(dib)
	if err != nil {
		t.Fatalf("synthesizeBitmapFile failed: %v", err)
	}
	gotOffset := binary.LittleEndian.Uint32(full[10:14])
	wantOffset := uint32(bitmapFileHeaderSize + headerSize + 4*4)
	if gotOffset != wantOffset {
		t.Errorf("got data offset %d, want %d (header + explicit 4-color palette)", gotOffset, wantOffset)
	}
}

func TestSynthesizeBitmapFile_TooShort(t *testing.T) {
	if _, err := synthesizeBitmapFile(make([]byte, 10)); err == nil {
		t.Error("expected an error for a DIB payload shorter than a header")
	}
}
