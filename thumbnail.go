// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package dxf

import (
	"bytes"
	"encoding/binary"
	"image"

	"golang.org/x/image/bmp"
)

// bitmapFileHeaderSize is the size of the 14-byte "BM" file header the
// Format omits from its stored payload (spec §4.9).
const bitmapFileHeaderSize = 14

// readThumbnail reads the THUMBNAILIMAGE section body: a length prefix
// (code 90) followed by the hex payload split across repeated code-310
// pairs, synthesizes the missing bitmap file header, and decodes the
// result with the platform's bitmap codec.
func readThumbnail(pr *pushbackReader, d *Drawing) error {
	var declaredLen int64
	var payload []byte
	for {
		pair, err := pr.Next()
		if err != nil {
			return err
		}
		if pair == nil {
			break
		}
		if pair.Code == 0 {
			pr.PutBack(*pair)
			break
		}
		switch pair.Code {
		case 90:
			declaredLen = pair.Value.AsInt()
		case 310:
			payload = append(payload, pair.Value.Binary...)
		}
	}
	if len(payload) == 0 {
		return nil
	}
	if declaredLen > 0 && int64(len(payload)) > declaredLen {
		payload = payload[:declaredLen]
	}

	full, err := synthesizeBitmapFile(payload)
	if err != nil {
		d.addAnomaly("thumbnail payload could not be reconstructed: " + err.Error())
		return nil
	}
	img, err := bmp.Decode(bytes.NewReader(full))
	if err != nil {
		d.addAnomaly("thumbnail bitmap failed to decode: " + err.Error())
		return nil
	}
	d.Thumbnail = img
	return nil
}

// synthesizeBitmapFile prepends a 14-byte "BM" file header to a raw DIB
// payload, computing the image-data offset from the DIB header size (the
// first 4 bytes of the payload) and, for paletted images, the palette
// color count stored at DIB offset 32 (spec §4.9).
func synthesizeBitmapFile(dib []byte) ([]byte, error) {
	if len(dib) < 40 {
		return nil, errShortThumbnail
	}
	dibHeaderSize := binary.LittleEndian.Uint32(dib[0:4])
	bitsPerPixel := binary.LittleEndian.Uint16(dib[14:16])
	paletteColors := binary.LittleEndian.Uint32(dib[32:36])
	if paletteColors == 0 && bitsPerPixel <= 8 {
		paletteColors = 1 << bitsPerPixel
	}
	paletteBytes := uint32(0)
	if bitsPerPixel <= 8 {
		paletteBytes = paletteColors * 4
	}
	dataOffset := bitmapFileHeaderSize + dibHeaderSize + paletteBytes

	total := uint32(bitmapFileHeaderSize) + uint32(len(dib))
	out := make([]byte, 0, total)
	out = append(out, 'B', 'M')
	var lenBuf, reservedBuf, offBuf [4]byte
	binary.LittleEndian.PutUint32(lenBuf[:], total)
	binary.LittleEndian.PutUint32(offBuf[:], dataOffset)
	out = append(out, lenBuf[:]...)
	out = append(out, reservedBuf[:]...)
	out = append(out, offBuf[:]...)
	out = append(out, dib...)
	return out, nil
}

var errShortThumbnail = &InvalidBinaryFileError{Reason: "thumbnail payload shorter than a DIB header"}

// writeThumbnail emits the THUMBNAILIMAGE section for img: strips the
// synthesized 14-byte file header back off, then chunks the remaining DIB
// bytes into 128-byte code-310 records (spec §4.9). Only called when
// version >= R2000 and a thumbnail is present.
func writeThumbnail(w PairWriter, img image.Image) error {
	var buf bytes.Buffer
	if err := bmp.Encode(&buf, img); err != nil {
		return err
	}
	full := buf.Bytes()
	if len(full) < bitmapFileHeaderSize {
		return errShortThumbnail
	}
	dib := full[bitmapFileHeaderSize:]

	if err := w.Write(CodePair{Code: 0, Value: StringValue("SECTION")}); err != nil {
		return err
	}
	if err := w.Write(CodePair{Code: 2, Value: StringValue("THUMBNAILIMAGE")}); err != nil {
		return err
	}
	if err := w.Write(CodePair{Code: 90, Value: IntegerValue(int32(len(dib)))}); err != nil {
		return err
	}
	const chunk = 128
	for i := 0; i < len(dib); i += chunk {
		end := i + chunk
		if end > len(dib) {
			end = len(dib)
		}
		if err := w.Write(CodePair{Code: 310, Value: BinaryValue(dib[i:end])}); err != nil {
			return err
		}
	}
	return w.Write(CodePair{Code: 0, Value: StringValue("ENDSEC")})
}
