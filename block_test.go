// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package dxf

import (
	"strings"
	"testing"
)

func TestLoad_Block(t *testing.T) {
	text := asciiFromPairs([]CodePair{
		pair(0, StringValue("SECTION")),
		pair(2, StringValue("BLOCKS")),
		pair(0, StringValue("BLOCK")),
		pair(8, StringValue("0")),
		pair(2, StringValue("MYBLOCK")),
		pair(70, ShortValue(0)),
		pair(10, DoubleValue(1)),
		pair(20, DoubleValue(2)),
		pair(30, DoubleValue(0)),
		pair(0, StringValue("LINE")),
		pair(10, DoubleValue(0)),
		pair(20, DoubleValue(0)),
		pair(30, DoubleValue(0)),
		pair(11, DoubleValue(1)),
		pair(21, DoubleValue(1)),
		pair(31, DoubleValue(1)),
		pair(0, StringValue("ENDBLK")),
		pair(0, StringValue("ENDSEC")),
		pair(0, StringValue("EOF")),
	})

	d, err := Load(strings.NewReader(text))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(d.Blocks) != 1 {
		t.Fatalf("got %d blocks, want 1", len(d.Blocks))
	}
	b := d.Blocks[0]
	if b.Name != "MYBLOCK" {
		t.Errorf("got Name=%q, want MYBLOCK", b.Name)
	}
	if b.BasePoint != (Point{1, 2, 0}) {
		t.Errorf("got BasePoint=%v, want (1,2,0)", b.BasePoint)
	}
	if len(b.Entities) != 1 {
		t.Fatalf("got %d block entities, want 1", len(b.Entities))
	}
	if _, ok := b.Entities[0].Data.(*LineData); !ok {
		t.Fatalf("block entity 0 is a %T, want *LineData", b.Entities[0].Data)
	}
}

func TestSaveLoad_BlockRoundTrip(t *testing.T) {
	d := NewDrawing(R2013)
	d.AddBlock(&Block{
		Name:      "MYBLOCK",
		Layer:     "0",
		BasePoint: Point{3, 4, 0},
		Entities: []*Entity{
			{Type: "LINE", Data: &LineData{
				EntityCommonExtra: DefaultEntityCommonExtra(),
				P1:                Point{0, 0, 0},
				P2:                Point{1, 1, 1},
			}},
		},
	})

	var buf strings.Builder
	if err := Save(&buf, d); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	text := buf.String()
	if !strings.Contains(text, "AcDbBlockBegin") {
		t.Errorf("expected the serialized BLOCK record to carry an AcDbBlockBegin subclass marker")
	}

	d2, err := Load(strings.NewReader(text))
	if err != nil {
		t.Fatalf("Load of round-tripped drawing failed: %v", err)
	}
	if len(d2.Blocks) != 1 {
		t.Fatalf("got %d blocks after round trip, want 1", len(d2.Blocks))
	}
	if d2.Blocks[0].Name != "MYBLOCK" || d2.Blocks[0].BasePoint != (Point{3, 4, 0}) {
		t.Errorf("got Name=%q BasePoint=%v, want MYBLOCK/(3,4,0)", d2.Blocks[0].Name, d2.Blocks[0].BasePoint)
	}
	if len(d2.Blocks[0].Entities) != 1 {
		t.Fatalf("got %d block entities after round trip, want 1", len(d2.Blocks[0].Entities))
	}
}
