// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package dxf

import (
	"strings"
	"testing"
)

func TestLoad_LayerTableRecord(t *testing.T) {
	text := asciiFromPairs([]CodePair{
		pair(0, StringValue("SECTION")),
		pair(2, StringValue("TABLES")),
		pair(0, StringValue("TABLE")),
		pair(2, StringValue("LAYER")),
		pair(70, IntegerValue(1)),
		pair(0, StringValue("LAYER")),
		pair(2, StringValue("WALLS")),
		pair(70, ShortValue(0)),
		pair(62, ShortValue(3)),
		pair(6, StringValue("DASHED")),
		pair(0, StringValue("ENDTAB")),
		pair(0, StringValue("ENDSEC")),
		pair(0, StringValue("EOF")),
	})

	d, err := Load(strings.NewReader(text))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	var rec *TableRecord
	for _, r := range d.Tables["LAYER"] {
		if r.Name == "WALLS" {
			rec = r
		}
	}
	if rec == nil {
		t.Fatal("expected a LAYER \"WALLS\" table record")
	}
	layer, ok := rec.Data.(*LayerData)
	if !ok {
		t.Fatalf("record data is a %T, want *LayerData", rec.Data)
	}
	if layer.Color != 3 || layer.LineType != "DASHED" {
		t.Errorf("got Color=%v LineType=%q, want Color=3 LineType=DASHED", layer.Color, layer.LineType)
	}
}

func TestEncodeTableRecord_EmitsSubclassMarkers(t *testing.T) {
	rec := &TableRecord{
		Type: "LAYER",
		Name: "WALLS",
		Data: &LayerData{Color: 3, IsPlottable: true, LineWeight: -1, LineType: "Continuous"},
	}

	var buf strings.Builder
	w := NewASCIIWriter(&buf, R2013)
	if err := encodeTableRecord(w, R2013, rec); err != nil {
		t.Fatalf("encodeTableRecord failed: %v", err)
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush failed: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "AcDbSymbolTableRecord") {
		t.Error("expected the shared AcDbSymbolTableRecord marker")
	}
	if !strings.Contains(out, "AcDbLayerTableRecord") {
		t.Error("expected the LAYER-specific AcDbLayerTableRecord marker")
	}
	nameIdx := strings.Index(out, "WALLS")
	symIdx := strings.Index(out, "AcDbSymbolTableRecord")
	layerIdx := strings.Index(out, "AcDbLayerTableRecord")
	if !(nameIdx < symIdx && symIdx < layerIdx) {
		t.Errorf("expected order Name < AcDbSymbolTableRecord < AcDbLayerTableRecord, got indices %d/%d/%d", nameIdx, symIdx, layerIdx)
	}
}

func TestSaveLoad_ViewPortAndUcsRoundTrip(t *testing.T) {
	d := NewDrawing(R2013)
	d.Tables["VPORT"] = append(d.Tables["VPORT"], &TableRecord{
		Type: "VPORT", Name: "*ACTIVE2", Data: &ViewPortData{Center: Point{1, 2, 0}, Height: 9},
	})
	d.Tables["UCS"] = append(d.Tables["UCS"], &TableRecord{
		Type: "UCS", Name: "MYUCS", Data: &UcsData{Origin: Point{5, 6, 7}},
	})
	d.Normalize()

	var buf strings.Builder
	if err := Save(&buf, d); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	d2, err := Load(strings.NewReader(buf.String()))
	if err != nil {
		t.Fatalf("Load of round-tripped drawing failed: %v", err)
	}
	var vport, ucs *TableRecord
	for _, r := range d2.Tables["VPORT"] {
		if r.Name == "*ACTIVE2" {
			vport = r
		}
	}
	for _, r := range d2.Tables["UCS"] {
		if r.Name == "MYUCS" {
			ucs = r
		}
	}
	if vport == nil {
		t.Fatal("expected a VPORT \"*ACTIVE2\" table record after round trip")
	}
	if vpData := vport.Data.(*ViewPortData); vpData.Center != (Point{1, 2, 0}) || vpData.Height != 9 {
		t.Errorf("got VPORT data %+v, want Center=(1,2,0) Height=9", vpData)
	}
	if ucs == nil {
		t.Fatal("expected a UCS \"MYUCS\" table record after round trip")
	}
	if ucsData := ucs.Data.(*UcsData); ucsData.Origin != (Point{5, 6, 7}) {
		t.Errorf("got UCS data %+v, want Origin=(5,6,7)", ucsData)
	}
}
