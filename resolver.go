// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package dxf

// ItemKind discriminates which collection an Item came from.
type ItemKind int

const (
	ItemNone ItemKind = iota
	ItemEntity
	ItemObject
	ItemBlock
	ItemTableRecord
)

// Item is the sum type a pointer resolves to: exactly one of Entity,
// Object, Block, or TableRecord is set, per ItemKind (spec §4.5).
type Item struct {
	Kind        ItemKind
	Entity      *Entity
	Object      *Object
	Block       *Block
	TableRecord *TableRecord
}

// Resolve walks the drawing's collections in this order: the table records
// (APPID, BLOCK_RECORD, DIMSTYLE, LAYER, LTYPE, STYLE, UCS, VIEW, VPORT),
// then each block followed by its entities, then the top-level entities
// with their children, then the objects; it returns the first record whose
// handle matches. Unresolvable handles return (Item{}, false) rather than
// an error (spec §4.5).
func (d *Drawing) Resolve(h Handle) (Item, bool) {
	if !h.IsSet() {
		return Item{}, false
	}
	tableOrder := []string{"APPID", "BLOCK_RECORD", "DIMSTYLE", "LAYER", "LTYPE", "STYLE", "UCS", "VIEW", "VPORT"}
	for _, t := range tableOrder {
		for _, rec := range d.Tables[t] {
			if rec.Common.Handle == h {
				return Item{Kind: ItemTableRecord, TableRecord: rec}, true
			}
		}
	}
	for _, b := range d.Blocks {
		if b.Common.Handle == h {
			return Item{Kind: ItemBlock, Block: b}, true
		}
		if item, ok := resolveInEntities(b.Entities, h); ok {
			return item, ok
		}
	}
	if item, ok := resolveInEntities(d.entities, h); ok {
		return item, ok
	}
	for _, o := range d.objects {
		if o.Common.Handle == h {
			return Item{Kind: ItemObject, Object: o}, true
		}
	}
	return Item{}, false
}

func resolveInEntities(list []*Entity, h Handle) (Item, bool) {
	for _, e := range list {
		if e.Common.Handle == h {
			return Item{Kind: ItemEntity, Entity: e}, true
		}
		for _, c := range e.Children {
			if c.Common.Handle == h {
				return Item{Kind: ItemEntity, Entity: c}, true
			}
		}
	}
	return Item{}, false
}

// AsEntity narrows an Item to *Entity, returning WrongItemType when the
// dynamic kind disagrees (spec §4.5, "Access helpers").
func (it Item) AsEntity() (*Entity, error) {
	if it.Kind != ItemEntity {
		return nil, &WrongItemTypeError{Expected: "Entity", Actual: it.kindName()}
	}
	return it.Entity, nil
}

// AsObject narrows an Item to *Object.
func (it Item) AsObject() (*Object, error) {
	if it.Kind != ItemObject {
		return nil, &WrongItemTypeError{Expected: "Object", Actual: it.kindName()}
	}
	return it.Object, nil
}

// AsTableRecord narrows an Item to *TableRecord.
func (it Item) AsTableRecord() (*TableRecord, error) {
	if it.Kind != ItemTableRecord {
		return nil, &WrongItemTypeError{Expected: "TableRecord", Actual: it.kindName()}
	}
	return it.TableRecord, nil
}

func (it Item) kindName() string {
	switch it.Kind {
	case ItemEntity:
		return "Entity"
	case ItemObject:
		return "Object"
	case ItemBlock:
		return "Block"
	case ItemTableRecord:
		return "TableRecord"
	default:
		return "None"
	}
}
