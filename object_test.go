// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package dxf

import (
	"strings"
	"testing"
)

func TestLoad_Dictionary(t *testing.T) {
	text := asciiFromPairs([]CodePair{
		pair(0, StringValue("SECTION")),
		pair(2, StringValue("OBJECTS")),
		pair(0, StringValue("DICTIONARY")),
		pair(280, ShortValue(1)),
		pair(3, StringValue("ACAD_GROUP")),
		pair(350, StringValue("2A")),
		pair(3, StringValue("ACAD_LAYOUT")),
		pair(350, StringValue("2B")),
		pair(0, StringValue("ENDSEC")),
		pair(0, StringValue("EOF")),
	})

	d, err := Load(strings.NewReader(text))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	objs := d.Objects()
	if len(objs) != 1 {
		t.Fatalf("got %d objects, want 1", len(objs))
	}
	dict, ok := objs[0].Data.(*DictionaryData)
	if !ok {
		t.Fatalf("object 0 is a %T, want *DictionaryData", objs[0].Data)
	}
	if !dict.HardOwned {
		t.Error("expected HardOwned to be true")
	}
	if len(dict.Entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(dict.Entries))
	}
	if dict.Entries[0].Key != "ACAD_GROUP" || dict.Entries[0].Target != 0x2A {
		t.Errorf("got entry 0 = %+v, want Key=ACAD_GROUP Target=0x2A", dict.Entries[0])
	}
	if dict.Entries[1].Key != "ACAD_LAYOUT" || dict.Entries[1].Target != 0x2B {
		t.Errorf("got entry 1 = %+v, want Key=ACAD_LAYOUT Target=0x2B", dict.Entries[1])
	}
}

func TestLoad_Group(t *testing.T) {
	text := asciiFromPairs([]CodePair{
		pair(0, StringValue("SECTION")),
		pair(2, StringValue("OBJECTS")),
		pair(0, StringValue("GROUP")),
		pair(300, StringValue("a selection")),
		pair(71, ShortValue(1)),
		pair(340, StringValue("10")),
		pair(340, StringValue("11")),
		pair(0, StringValue("ENDSEC")),
		pair(0, StringValue("EOF")),
	})

	d, err := Load(strings.NewReader(text))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	group, ok := d.Objects()[0].Data.(*GroupData)
	if !ok {
		t.Fatalf("object 0 is a %T, want *GroupData", d.Objects()[0].Data)
	}
	if group.Description != "a selection" || !group.Selectable {
		t.Errorf("got Description=%q Selectable=%v, want \"a selection\"/true", group.Description, group.Selectable)
	}
	if len(group.Handles) != 2 || group.Handles[0] != 0x10 || group.Handles[1] != 0x11 {
		t.Errorf("got Handles=%v, want [0x10 0x11]", group.Handles)
	}
}

func TestSaveLoad_LayoutAndImageDefRoundTrip(t *testing.T) {
	d := NewDrawing(R2013)
	d.AddObject(&Object{Type: "LAYOUT", Data: &LayoutData{Name: "Layout1", TabOrder: 2}})
	d.AddObject(&Object{Type: "IMAGEDEF", Data: &ImageDefData{
		FileName: "photo.jpg", PixelWidth: 640, PixelHeight: 480, IsLoaded: true,
	}})

	var buf strings.Builder
	if err := Save(&buf, d); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	text := buf.String()
	for _, marker := range []string{"AcDbLayout", "AcDbRasterImageDef"} {
		if !strings.Contains(text, marker) {
			t.Errorf("expected the serialized OBJECTS section to carry a %q subclass marker", marker)
		}
	}

	d2, err := Load(strings.NewReader(text))
	if err != nil {
		t.Fatalf("Load of round-tripped drawing failed: %v", err)
	}
	objs := d2.Objects()
	if len(objs) != 2 {
		t.Fatalf("got %d objects after round trip, want 2", len(objs))
	}
	layout, ok := objs[0].Data.(*LayoutData)
	if !ok || layout.Name != "Layout1" || layout.TabOrder != 2 {
		t.Errorf("got layout=%+v ok=%v, want Name=Layout1 TabOrder=2", layout, ok)
	}
	imgdef, ok := objs[1].Data.(*ImageDefData)
	if !ok || imgdef.FileName != "photo.jpg" || imgdef.PixelWidth != 640 || !imgdef.IsLoaded {
		t.Errorf("got imgdef=%+v ok=%v, want FileName=photo.jpg PixelWidth=640 IsLoaded=true", imgdef, ok)
	}
}
