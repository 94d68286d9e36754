// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package dxf

import (
	"bytes"
	"encoding/binary"
	"math"
	"testing"
)

// dxbBuilder accumulates raw DXB bytes for a test fixture.
type dxbBuilder struct {
	buf bytes.Buffer
}

func newDxbBuilder() *dxbBuilder {
	b := &dxbBuilder{}
	b.buf.WriteString(dxbSentinel)
	b.buf.WriteByte(0x1A)
	b.buf.WriteByte(0x00)
	// Float mode throughout, matching what every writer emits.
	b.tag(dxbNumberMode)
	b.w(1)
	return b
}

func (b *dxbBuilder) tag(t dxbItemTag) *dxbBuilder {
	b.buf.WriteByte(byte(t))
	return b
}

func (b *dxbBuilder) n(v float64) *dxbBuilder {
	binary.Write(&b.buf, binary.LittleEndian, math.Float32bits(float32(v)))
	return b
}

func (b *dxbBuilder) w(v int16) *dxbBuilder {
	binary.Write(&b.buf, binary.LittleEndian, v)
	return b
}

func (b *dxbBuilder) eof() []byte {
	b.buf.WriteByte(byte(dxbEOF))
	return b.buf.Bytes()
}

func TestLoadDXB_Line(t *testing.T) {
	data := newDxbBuilder().
		tag(dxbLine).n(1).n(2).n(3).n(4).n(5).n(6).
		eof()

	d, err := LoadDXB(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("LoadDXB failed: %v", err)
	}
	entities := d.Entities()
	if len(entities) != 1 {
		t.Fatalf("got %d entities, want 1", len(entities))
	}
	line, ok := entities[0].Data.(*LineData)
	if !ok {
		t.Fatalf("entity 0 is a %T, want *LineData", entities[0].Data)
	}
	want := LineData{P1: Point{1, 2, 3}, P2: Point{4, 5, 6}}
	if line.P1 != want.P1 || line.P2 != want.P2 {
		t.Errorf("got P1=%v P2=%v, want P1=%v P2=%v", line.P1, line.P2, want.P1, want.P2)
	}
}

func TestLoadDXB_PolylineWithVertexAndBulge(t *testing.T) {
	b := newDxbBuilder()
	b.tag(dxbPolyline).w(0)
	b.tag(dxbVertex).n(1).n(2)
	b.tag(dxbBulge).n(0.75)
	b.tag(dxbWidth).n(0.1).n(0.2)
	raw := b.eof()

	d, err := LoadDXB(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("LoadDXB failed: %v", err)
	}
	entities := d.entities
	if len(entities) != 1 {
		t.Fatalf("got %d top-level entities, want 1 (coalesced POLYLINE)", len(entities))
	}
	poly, ok := entities[0].Data.(*PolylineData)
	if !ok {
		t.Fatalf("entity 0 is a %T, want *PolylineData", entities[0].Data)
	}
	if len(poly.Vertices) != 1 {
		t.Fatalf("got %d vertices, want 1", len(poly.Vertices))
	}
	v := poly.Vertices[0]
	if v.Location.X != 1 || v.Location.Y != 2 {
		t.Errorf("vertex location = %v, want (1, 2)", v.Location)
	}
	if v.Bulge != 0.75 {
		t.Errorf("vertex bulge = %v, want 0.75", v.Bulge)
	}
	if v.StartWidth != float64(float32(0.1)) || v.EndWidth != float64(float32(0.2)) {
		t.Errorf("vertex width = (%v, %v), want (0.1, 0.2)", v.StartWidth, v.EndWidth)
	}
}

func TestLoadDXB_BulgeWithoutVertexFails(t *testing.T) {
	data := newDxbBuilder().
		tag(dxbLine).n(0).n(0).n(0).n(0).n(0).n(0).
		tag(dxbBulge).n(1).
		eof()

	if _, err := LoadDXB(bytes.NewReader(data)); err == nil {
		t.Fatal("expected an error for a Bulge item not following a Vertex")
	}
}

func TestLoadDXB_BlockBaseAfterEntityFails(t *testing.T) {
	data := newDxbBuilder().
		tag(dxbLine).n(0).n(0).n(0).n(0).n(0).n(0).
		tag(dxbBlockBase).n(1).n(1).
		eof()

	_, err := LoadDXB(bytes.NewReader(data))
	if err != ErrBlockBaseAfterEntities {
		t.Fatalf("got err %v, want ErrBlockBaseAfterEntities", err)
	}
}

func TestLoadDXB_InvalidSentinel(t *testing.T) {
	if _, err := LoadDXB(bytes.NewReader([]byte("not a dxb file"))); err != ErrInvalidDxbSentinel {
		t.Fatalf("got err %v, want ErrInvalidDxbSentinel", err)
	}
}

func TestSaveLoadDXBRoundTrip(t *testing.T) {
	d := NewDrawing(R2013)
	d.AddEntity(&Entity{Type: "LINE", Data: &LineData{
		EntityCommonExtra: DefaultEntityCommonExtra(),
		P1:                Point{1, 2, 0},
		P2:                Point{3, 4, 0},
	}})
	d.AddEntity(&Entity{Type: "CIRCLE", Data: &CircleData{
		EntityCommonExtra: DefaultEntityCommonExtra(),
		Center:            Point{5, 6, 0},
		Radius:            7,
	}})

	var buf bytes.Buffer
	if err := SaveDXB(&buf, d); err != nil {
		t.Fatalf("SaveDXB failed: %v", err)
	}

	d2, err := LoadDXB(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("LoadDXB of round-tripped stream failed: %v", err)
	}
	entities := d2.Entities()
	if len(entities) != 2 {
		t.Fatalf("got %d entities after round trip, want 2", len(entities))
	}
	line, ok := entities[0].Data.(*LineData)
	if !ok {
		t.Fatalf("entity 0 is a %T, want *LineData", entities[0].Data)
	}
	if line.P1 != (Point{1, 2, 0}) || line.P2 != (Point{3, 4, 0}) {
		t.Errorf("got P1=%v P2=%v, want (1,2,0)/(3,4,0)", line.P1, line.P2)
	}
	circle, ok := entities[1].Data.(*CircleData)
	if !ok {
		t.Fatalf("entity 1 is a %T, want *CircleData", entities[1].Data)
	}
	if circle.Center != (Point{5, 6, 0}) || circle.Radius != 7 {
		t.Errorf("got Center=%v Radius=%v, want (5,6,0)/7", circle.Center, circle.Radius)
	}
}
