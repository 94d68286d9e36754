// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package dxf

import (
	"strings"
	"testing"
)

func TestLoad_Classes(t *testing.T) {
	text := asciiFromPairs([]CodePair{
		pair(0, StringValue("SECTION")),
		pair(2, StringValue("CLASSES")),
		pair(0, StringValue("CLASS")),
		pair(1, StringValue("ACDBDICTIONARYWDFLT")),
		pair(2, StringValue("AcDbDictionaryWithDefault")),
		pair(3, StringValue("ObjectDBX Classes")),
		pair(90, IntegerValue(0)),
		pair(280, BooleanValue(false)),
		pair(281, BooleanValue(false)),
		pair(0, StringValue("ENDSEC")),
		pair(0, StringValue("EOF")),
	})

	d, err := Load(strings.NewReader(text))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(d.Classes) != 1 {
		t.Fatalf("got %d classes, want 1", len(d.Classes))
	}
	c := d.Classes[0]
	if c.RecordName != "ACDBDICTIONARYWDFLT" {
		t.Errorf("got RecordName=%q, want ACDBDICTIONARYWDFLT", c.RecordName)
	}
	if c.CppClassName != "AcDbDictionaryWithDefault" {
		t.Errorf("got CppClassName=%q, want AcDbDictionaryWithDefault", c.CppClassName)
	}
	if c.AppName != "ObjectDBX Classes" {
		t.Errorf("got AppName=%q, want ObjectDBX Classes", c.AppName)
	}
}

func TestEncodeClass(t *testing.T) {
	c := &Class{
		RecordName:   "SUN",
		CppClassName: "AcDbSun",
		AppName:      "SCENEOE",
		IsEntity:     true,
	}
	var buf strings.Builder
	w := NewASCIIWriter(&buf, R2013)
	if err := encodeClass(w, R2013, c); err != nil {
		t.Fatalf("encodeClass failed: %v", err)
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush failed: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"SUN", "AcDbSun", "SCENEOE"} {
		if !strings.Contains(out, want) {
			t.Errorf("encoded CLASS record missing %q:\n%s", want, out)
		}
	}
}
