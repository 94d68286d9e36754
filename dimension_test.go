// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package dxf

import (
	"strings"
	"testing"
)

func TestLoad_AlignedDimension(t *testing.T) {
	text := asciiFromPairs([]CodePair{
		pair(0, StringValue("SECTION")),
		pair(2, StringValue("ENTITIES")),
		pair(0, StringValue("DIMENSION")),
		pair(2, StringValue("*D1")),
		pair(10, DoubleValue(1)),
		pair(20, DoubleValue(2)),
		pair(30, DoubleValue(0)),
		pair(11, DoubleValue(3)),
		pair(21, DoubleValue(4)),
		pair(31, DoubleValue(0)),
		pair(70, ShortValue(0)),
		pair(1, StringValue("")),
		pair(100, StringValue("AcDbEntity")),
		pair(100, StringValue("AcDbDimension")),
		pair(100, StringValue("AcDbAlignedDimension")),
		pair(13, DoubleValue(5)),
		pair(23, DoubleValue(6)),
		pair(33, DoubleValue(0)),
		pair(14, DoubleValue(7)),
		pair(24, DoubleValue(8)),
		pair(34, DoubleValue(0)),
		pair(50, DoubleValue(45)),
		pair(0, StringValue("ENDSEC")),
		pair(0, StringValue("EOF")),
	})

	d, err := Load(strings.NewReader(text))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	entities := d.Entities()
	if len(entities) != 1 {
		t.Fatalf("got %d entities, want 1", len(entities))
	}
	dim, ok := entities[0].Data.(*DimensionData)
	if !ok {
		t.Fatalf("entity 0 is a %T, want *DimensionData", entities[0].Data)
	}
	if dim.Rotated == nil {
		t.Fatal("expected a populated Rotated subclass payload")
	}
	if dim.Rotated.ExtLine1 != (Point{5, 6, 0}) || dim.Rotated.ExtLine2 != (Point{7, 8, 0}) {
		t.Errorf("got ExtLine1=%v ExtLine2=%v, want (5,6,0)/(7,8,0)", dim.Rotated.ExtLine1, dim.Rotated.ExtLine2)
	}
	if dim.Rotated.Rotation != 45 {
		t.Errorf("got Rotation=%v, want 45", dim.Rotated.Rotation)
	}
	if dim.DefPoint != (Point{1, 2, 0}) || dim.TextMidPoint != (Point{3, 4, 0}) {
		t.Errorf("got DefPoint=%v TextMidPoint=%v, want (1,2,0)/(3,4,0)", dim.DefPoint, dim.TextMidPoint)
	}
}

func TestLoad_RadialDimension(t *testing.T) {
	text := asciiFromPairs([]CodePair{
		pair(0, StringValue("SECTION")),
		pair(2, StringValue("ENTITIES")),
		pair(0, StringValue("DIMENSION")),
		pair(10, DoubleValue(0)),
		pair(20, DoubleValue(0)),
		pair(30, DoubleValue(0)),
		pair(11, DoubleValue(0)),
		pair(21, DoubleValue(0)),
		pair(31, DoubleValue(0)),
		pair(70, ShortValue(4)),
		pair(100, StringValue("AcDbEntity")),
		pair(100, StringValue("AcDbDimension")),
		pair(100, StringValue("AcDbRadialDimension")),
		pair(15, DoubleValue(9)),
		pair(25, DoubleValue(10)),
		pair(35, DoubleValue(0)),
		pair(40, DoubleValue(2.5)),
		pair(0, StringValue("ENDSEC")),
		pair(0, StringValue("EOF")),
	})

	d, err := Load(strings.NewReader(text))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	entities := d.Entities()
	if len(entities) != 1 {
		t.Fatalf("got %d entities, want 1", len(entities))
	}
	dim, ok := entities[0].Data.(*DimensionData)
	if !ok {
		t.Fatalf("entity 0 is a %T, want *DimensionData", entities[0].Data)
	}
	if dim.Radial == nil {
		t.Fatal("expected a populated Radial subclass payload")
	}
	if dim.Radial.LeaderPoint != (Point{9, 10, 0}) {
		t.Errorf("got LeaderPoint=%v, want (9,10,0)", dim.Radial.LeaderPoint)
	}
	if dim.Radial.LeaderLength != 2.5 {
		t.Errorf("got LeaderLength=%v, want 2.5", dim.Radial.LeaderLength)
	}
}

func TestLoad_DimensionUnknownSubclassDropped(t *testing.T) {
	text := asciiFromPairs([]CodePair{
		pair(0, StringValue("SECTION")),
		pair(2, StringValue("ENTITIES")),
		pair(0, StringValue("DIMENSION")),
		pair(10, DoubleValue(0)),
		pair(20, DoubleValue(0)),
		pair(30, DoubleValue(0)),
		pair(100, StringValue("AcDbEntity")),
		pair(100, StringValue("AcDbDimension")),
		pair(100, StringValue("AcDbOrdinateDimension")),
		pair(13, DoubleValue(1)),
		pair(23, DoubleValue(2)),
		pair(33, DoubleValue(0)),
		pair(0, StringValue("LINE")),
		pair(10, DoubleValue(1)),
		pair(20, DoubleValue(1)),
		pair(30, DoubleValue(1)),
		pair(11, DoubleValue(2)),
		pair(21, DoubleValue(2)),
		pair(31, DoubleValue(2)),
		pair(0, StringValue("ENDSEC")),
		pair(0, StringValue("EOF")),
	})

	d, err := Load(strings.NewReader(text))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	entities := d.Entities()
	if len(entities) != 1 {
		t.Fatalf("got %d entities, want 1 (DIMENSION dropped, LINE kept)", len(entities))
	}
	if _, ok := entities[0].Data.(*LineData); !ok {
		t.Fatalf("entity 0 is a %T, want *LineData", entities[0].Data)
	}
	found := false
	for _, a := range d.Anomalies {
		if a == AnoDimensionSubclassDropped {
			found = true
		}
	}
	if !found {
		t.Errorf("expected %q anomaly for an unrecognized DIMENSION subclass marker", AnoDimensionSubclassDropped)
	}
}

func TestSaveLoad_DimensionRoundTrip(t *testing.T) {
	d := NewDrawing(R2013)
	d.AddEntity(&Entity{Type: "DIMENSION", Data: &DimensionData{
		EntityCommonExtra: DefaultEntityCommonExtra(),
		DefPoint:          Point{1, 2, 0},
		TextMidPoint:      Point{3, 4, 0},
		DimensionType:     0,
		Rotated: &RotatedDimensionExtra{
			ExtLine1: Point{5, 6, 0},
			ExtLine2: Point{7, 8, 0},
			Rotation: 90,
		},
	}})

	var buf strings.Builder
	if err := Save(&buf, d); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	d2, err := Load(strings.NewReader(buf.String()))
	if err != nil {
		t.Fatalf("Load of round-tripped drawing failed: %v", err)
	}
	entities := d2.Entities()
	if len(entities) != 1 {
		t.Fatalf("got %d entities after round trip, want 1", len(entities))
	}
	dim, ok := entities[0].Data.(*DimensionData)
	if !ok {
		t.Fatalf("entity 0 is a %T, want *DimensionData", entities[0].Data)
	}
	if dim.Rotated == nil {
		t.Fatal("expected Rotated payload to survive the round trip")
	}
	if dim.Rotated.ExtLine1 != (Point{5, 6, 0}) || dim.Rotated.Rotation != 90 {
		t.Errorf("got ExtLine1=%v Rotation=%v, want (5,6,0)/90", dim.Rotated.ExtLine1, dim.Rotated.Rotation)
	}
}
