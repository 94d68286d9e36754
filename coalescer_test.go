// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package dxf

import (
	"strings"
	"testing"
)

func TestLoad_InsertWithAttributes(t *testing.T) {
	text := asciiFromPairs([]CodePair{
		pair(0, StringValue("SECTION")),
		pair(2, StringValue("ENTITIES")),
		pair(0, StringValue("INSERT")),
		pair(66, ShortValue(1)),
		pair(2, StringValue("TITLEBLOCK")),
		pair(0, StringValue("ATTRIB")),
		pair(2, StringValue("PROJECT")),
		pair(1, StringValue("Acme Widget")),
		pair(0, StringValue("ATTRIB")),
		pair(2, StringValue("REV")),
		pair(1, StringValue("A")),
		pair(0, StringValue("SEQEND")),
		pair(0, StringValue("LINE")),
		pair(0, StringValue("ENDSEC")),
		pair(0, StringValue("EOF")),
	})

	d, err := Load(strings.NewReader(text))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(d.entities) != 2 {
		t.Fatalf("got %d top-level entities, want 2 (Insert, Line)", len(d.entities))
	}
	insert, ok := d.entities[0].Data.(*InsertData)
	if !ok {
		t.Fatalf("entity 0 is a %T, want *InsertData", d.entities[0].Data)
	}
	if insert.BlockName != "TITLEBLOCK" || !insert.HasAttributes {
		t.Errorf("got BlockName=%q HasAttributes=%v, want TITLEBLOCK/true", insert.BlockName, insert.HasAttributes)
	}
	if len(insert.Attributes) != 2 {
		t.Fatalf("got %d attributes, want 2", len(insert.Attributes))
	}
	if insert.Attributes[0].Tag != "PROJECT" || insert.Attributes[0].Value != "Acme Widget" {
		t.Errorf("got attribute 0 = %+v, want Tag=PROJECT Value=\"Acme Widget\"", insert.Attributes[0])
	}
	if insert.Attributes[1].Tag != "REV" || insert.Attributes[1].Value != "A" {
		t.Errorf("got attribute 1 = %+v, want Tag=REV Value=A", insert.Attributes[1])
	}
	// SEQEND and the two ATTRIB records are folded into children, not left
	// as their own top-level entities.
	if len(d.entities[0].Children) != 3 {
		t.Errorf("got %d children on the INSERT, want 3 (2 ATTRIB + SEQEND)", len(d.entities[0].Children))
	}
	if _, ok := d.entities[1].Data.(*LineData); !ok {
		t.Errorf("entity 1 is a %T, want *LineData", d.entities[1].Data)
	}
	if len(d.Anomalies) != 0 {
		t.Errorf("got anomalies %v, want none", d.Anomalies)
	}
}

func TestLoad_InsertWithoutAttributesFlagIgnoresFollowingAttrib(t *testing.T) {
	// HasAttributes is unset (0/absent), so a following ATTRIB belongs to
	// whatever comes next, not to this INSERT.
	text := asciiFromPairs([]CodePair{
		pair(0, StringValue("SECTION")),
		pair(2, StringValue("ENTITIES")),
		pair(0, StringValue("INSERT")),
		pair(2, StringValue("TITLEBLOCK")),
		pair(0, StringValue("ATTRIB")),
		pair(2, StringValue("PROJECT")),
		pair(1, StringValue("Acme Widget")),
		pair(0, StringValue("LINE")),
		pair(0, StringValue("ENDSEC")),
		pair(0, StringValue("EOF")),
	})

	d, err := Load(strings.NewReader(text))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(d.entities) != 3 {
		t.Fatalf("got %d top-level entities, want 3 (Insert, Attrib, Line)", len(d.entities))
	}
	insert := d.entities[0].Data.(*InsertData)
	if insert.HasAttributes {
		t.Error("expected HasAttributes to be false")
	}
	if len(insert.Attributes) != 0 {
		t.Errorf("got %d attributes, want 0", len(insert.Attributes))
	}
}

func TestLoad_UnterminatedInsertWithAttributes(t *testing.T) {
	text := asciiFromPairs([]CodePair{
		pair(0, StringValue("SECTION")),
		pair(2, StringValue("ENTITIES")),
		pair(0, StringValue("INSERT")),
		pair(66, ShortValue(1)),
		pair(2, StringValue("TITLEBLOCK")),
		pair(0, StringValue("ATTRIB")),
		pair(2, StringValue("PROJECT")),
		pair(1, StringValue("Acme Widget")),
		pair(0, StringValue("LINE")),
		pair(0, StringValue("ENDSEC")),
		pair(0, StringValue("EOF")),
	})

	d, err := Load(strings.NewReader(text))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(d.entities) != 2 {
		t.Fatalf("got %d top-level entities, want 2 (Insert, Line)", len(d.entities))
	}
	insert := d.entities[0].Data.(*InsertData)
	if len(insert.Attributes) != 1 {
		t.Fatalf("got %d attributes, want 1", len(insert.Attributes))
	}
	found := false
	for _, a := range d.Anomalies {
		if a == AnoTruncatedCompositeSequence {
			found = true
		}
	}
	if !found {
		t.Errorf("got anomalies %v, want one AnoTruncatedCompositeSequence", d.Anomalies)
	}
}

func TestSaveLoad_InsertWithAttributesRoundTrip(t *testing.T) {
	d := NewDrawing(R2013)
	attrib := &AttributeData{EntityCommonExtra: DefaultEntityCommonExtra(), Tag: "PROJECT", Value: "Acme Widget"}
	insert := &Entity{
		Type: "INSERT",
		Data: &InsertData{
			EntityCommonExtra: DefaultEntityCommonExtra(),
			BlockName:         "TITLEBLOCK",
			HasAttributes:     true,
			Attributes:        []*AttributeData{attrib},
		},
		Children: []*Entity{
			{Type: "ATTRIB", Data: attrib},
			{Type: "SEQEND", Data: &SeqEndData{EntityCommonExtra: DefaultEntityCommonExtra()}},
		},
	}
	d.AddEntity(insert)

	var buf strings.Builder
	if err := Save(&buf, d); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	text := buf.String()
	if !strings.Contains(text, "ATTRIB") || !strings.Contains(text, "SEQEND") {
		t.Error("expected the serialized INSERT to be followed by an ATTRIB and a SEQEND")
	}

	d2, err := Load(strings.NewReader(text))
	if err != nil {
		t.Fatalf("Load of round-tripped drawing failed: %v", err)
	}
	if len(d2.entities) != 1 {
		t.Fatalf("got %d top-level entities after round trip, want 1", len(d2.entities))
	}
	insert, ok := d2.entities[0].Data.(*InsertData)
	if !ok {
		t.Fatalf("entity 0 is a %T, want *InsertData", d2.entities[0].Data)
	}
	if len(insert.Attributes) != 1 || insert.Attributes[0].Tag != "PROJECT" || insert.Attributes[0].Value != "Acme Widget" {
		t.Errorf("got attributes=%+v, want one PROJECT/\"Acme Widget\" attribute", insert.Attributes)
	}
}
