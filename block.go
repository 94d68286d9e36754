// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package dxf

// Block is one block definition: a BLOCK header record, its owned
// entities, and the closing ENDBLK record (spec §3, "blocks").
type Block struct {
	Common     CommonData
	Name       string
	Layer      string
	BasePoint  Point
	Flags      int32
	Entities   []*Entity
	EndCommon  CommonData
}

var blockLayerSchema = []FieldSchema[Block]{
	{
		Name: "Layer", Code: 8, Kind: KindString, MaxVersion: MaxVersion,
		Get: func(r *Block) Value { return StringValue(r.Layer) },
		Set: func(r *Block, v Value) { r.Layer = v.Str },
	},
}

var blockNameAndFlagsSchema = []FieldSchema[Block]{
	{
		Name: "Name", Code: 2, Kind: KindString, MaxVersion: MaxVersion,
		Get: func(r *Block) Value { return StringValue(r.Name) },
		Set: func(r *Block, v Value) { r.Name = v.Str },
	},
	{
		Name: "Flags", Code: 70, Kind: KindShort, MaxVersion: MaxVersion,
		WriteIf: func(r *Block) bool { return r.Flags != 0 },
		Get:     func(r *Block) Value { return ShortValue(int16(r.Flags)) },
		Set:     func(r *Block, v Value) { r.Flags = int32(v.AsInt()) },
	},
}

var blockHeaderSchema = append(append([]FieldSchema[Block]{}, blockLayerSchema...), blockNameAndFlagsSchema...)

var blockBasePointSchema = pointFields(10, func(r *Block) *Point { return &r.BasePoint })

// decodeBlockHeader reads the "0/BLOCK" record body, stopping at the
// first child entity boundary (the caller reads entities itself, since a
// Block's body is a nested flat record run rather than a single schema).
func decodeBlockHeader(pr *pushbackReader, version Version) (*Block, error) {
	b := &Block{}
	full := append(append([]FieldSchema[Block]{}, blockHeaderSchema...), blockBasePointSchema...)
	if err := decodeFields(pr, version, &b.Common, full, b); err != nil {
		return nil, err
	}
	return b, nil
}

// encodeBlockHeader writes the "0/BLOCK" record: common fields, then the
// AcDbEntity subclass (layer only, a BLOCK carries no other entity-common
// attribute), then AcDbBlockBegin's own fields (spec §4.3, "Record Codec").
func encodeBlockHeader(w PairWriter, version Version, b *Block) error {
	if err := w.Write(CodePair{Code: 0, Value: StringValue("BLOCK")}); err != nil {
		return err
	}
	if err := encodeFields(w, version, commonSchema, &b.Common); err != nil {
		return err
	}
	if err := w.Write(CodePair{Code: 100, Value: StringValue("AcDbEntity")}); err != nil {
		return err
	}
	if err := encodeFields(w, version, blockLayerSchema, b); err != nil {
		return err
	}
	if err := w.Write(CodePair{Code: 100, Value: StringValue("AcDbBlockBegin")}); err != nil {
		return err
	}
	rest := append(append([]FieldSchema[Block]{}, blockNameAndFlagsSchema...), blockBasePointSchema...)
	if err := encodeFields(w, version, rest, b); err != nil {
		return err
	}
	return encodeRecordTrailer(w, version, &b.Common)
}

func encodeBlockEnd(w PairWriter, version Version, b *Block) error {
	if err := w.Write(CodePair{Code: 0, Value: StringValue("ENDBLK")}); err != nil {
		return err
	}
	if err := encodeFields(w, version, commonSchema, &b.EndCommon); err != nil {
		return err
	}
	return encodeRecordTrailer(w, version, &b.EndCommon)
}
