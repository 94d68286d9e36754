// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package dxf

import "testing"

func TestResolve(t *testing.T) {
	d := NewDrawing(R2013)
	d.AddEntity(&Entity{Type: "LINE", Data: &LineData{EntityCommonExtra: DefaultEntityCommonExtra()}})
	d.AddBlock(&Block{Name: "B1", Layer: "0"})
	d.AddObject(&Object{Type: "DICTIONARY", Data: &DictionaryData{}})

	entity := d.entities[0]
	block := d.Blocks[0]
	object := d.objects[0]
	var layer *TableRecord
	for _, r := range d.Tables["LAYER"] {
		if r.Name == "0" {
			layer = r
		}
	}
	if layer == nil {
		t.Fatal("expected a LAYER \"0\" table record to exist")
	}

	item, ok := d.Resolve(entity.Common.Handle)
	if !ok || item.Kind != ItemEntity || item.Entity != entity {
		t.Errorf("Resolve(entity handle) = %+v, %v; want the entity", item, ok)
	}
	item, ok = d.Resolve(block.Common.Handle)
	if !ok || item.Kind != ItemBlock || item.Block != block {
		t.Errorf("Resolve(block handle) = %+v, %v; want the block", item, ok)
	}
	item, ok = d.Resolve(object.Common.Handle)
	if !ok || item.Kind != ItemObject || item.Object != object {
		t.Errorf("Resolve(object handle) = %+v, %v; want the object", item, ok)
	}
	item, ok = d.Resolve(layer.Common.Handle)
	if !ok || item.Kind != ItemTableRecord || item.TableRecord != layer {
		t.Errorf("Resolve(layer handle) = %+v, %v; want the layer table record", item, ok)
	}

	if _, ok := d.Resolve(Handle(0xDEADBEEF)); ok {
		t.Error("Resolve of an unknown handle should fail")
	}
	if _, ok := d.Resolve(NoHandle); ok {
		t.Error("Resolve of NoHandle should fail")
	}
}

func TestItem_AsAccessors(t *testing.T) {
	entity := &Entity{Type: "LINE", Data: &LineData{}}
	item := Item{Kind: ItemEntity, Entity: entity}

	got, err := item.AsEntity()
	if err != nil || got != entity {
		t.Errorf("AsEntity() = %v, %v; want the wrapped entity", got, err)
	}
	if _, err := item.AsObject(); err == nil {
		t.Error("AsObject() on an Entity item should fail")
	}
	if _, err := item.AsTableRecord(); err == nil {
		t.Error("AsTableRecord() on an Entity item should fail")
	}

	var wrongType *WrongItemTypeError
	_, err = item.AsObject()
	if err == nil {
		t.Fatal("expected an error")
	}
	if wte, ok := err.(*WrongItemTypeError); !ok {
		t.Errorf("got error of type %T, want *WrongItemTypeError", err)
	} else {
		wrongType = wte
		if wrongType.Expected != "Object" || wrongType.Actual != "Entity" {
			t.Errorf("got %+v, want Expected=Object Actual=Entity", wrongType)
		}
	}
}
