// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package dxf

// Object is one non-graphical record of the OBJECTS section: its shared
// bookkeeping (CommonData) plus a type-tagged specific payload, analogous
// to Entity but without layer/color/line-type attributes (spec §3,
// "Object").
type Object struct {
	Common CommonData
	Type   string
	Data   any
}

type objectKind struct {
	decode func(pr *pushbackReader, version Version, common *CommonData) (any, error)
	encode func(w PairWriter, version Version, data any) error
}

var objectRegistry = map[string]objectKind{}

// registerObject wires one concrete object record type T into the
// dispatch table used by decodeObject/encodeObject. subclassMarker is the
// type's AcDb<Type> subclass name, written at code 100 before the
// type-specific fields, per the Format's class hierarchy (spec §4.3,
// "Record Codec").
func registerObject[T any](typeName, subclassMarker string, schema []FieldSchema[T], newRec func() *T) {
	objectRegistry[typeName] = objectKind{
		decode: func(pr *pushbackReader, version Version, common *CommonData) (any, error) {
			rec := newRec()
			if err := decodeFields(pr, version, common, schema, rec); err != nil {
				return nil, err
			}
			return rec, nil
		},
		encode: func(w PairWriter, version Version, data any) error {
			rec := data.(*T)
			if subclassMarker != "" {
				if err := w.Write(CodePair{Code: 100, Value: StringValue(subclassMarker)}); err != nil {
					return err
				}
			}
			return encodeFields(w, version, schema, rec)
		},
	}
}

func decodeObject(pr *pushbackReader, version Version, typeName string, anomalies *[]string) (*Object, error) {
	kind, ok := objectRegistry[typeName]
	if !ok {
		if err := skipUnknownRecord(pr); err != nil {
			return nil, err
		}
		*anomalies = append(*anomalies, AnoUnknownRecordType+": "+typeName)
		return nil, nil
	}
	var common CommonData
	data, err := kind.decode(pr, version, &common)
	if err != nil {
		return nil, err
	}
	return &Object{Common: common, Type: typeName, Data: data}, nil
}

func encodeObject(w PairWriter, version Version, o *Object) error {
	if err := w.Write(CodePair{Code: 0, Value: StringValue(o.Type)}); err != nil {
		return err
	}
	if err := encodeFields(w, version, commonSchema, &o.Common); err != nil {
		return err
	}
	if kind, ok := objectRegistry[o.Type]; ok {
		if err := kind.encode(w, version, o.Data); err != nil {
			return err
		}
	}
	return encodeRecordTrailer(w, version, &o.Common)
}

// DictionaryEntry is one string-keyed pointer held by a Dictionary.
type DictionaryEntry struct {
	Key    string
	Target Handle
}

// DictionaryData is the specific payload of a DICTIONARY object: an
// ordered mapping from names to owned-object handles (spec §3, "Object").
type DictionaryData struct {
	HardOwned bool
	Entries   []DictionaryEntry
	pendingKey string // set by code 3, consumed by the following code 350
}

var dictionarySchema = []FieldSchema[DictionaryData]{
	{
		Name: "HardOwned", Code: 280, Kind: KindShort, MaxVersion: MaxVersion,
		WriteIf: func(r *DictionaryData) bool { return r.HardOwned },
		Get:     func(r *DictionaryData) Value { return ShortValue(boolShort(r.HardOwned)) },
		Set:     func(r *DictionaryData, v Value) { r.HardOwned = v.AsInt() != 0 },
	},
	{
		Name: "EntryName", Code: 3, Kind: KindString, MaxVersion: MaxVersion,
		AllowMultiples: true,
		Get:            func(r *DictionaryData) Value { return StringValue("") },
		Set:            func(r *DictionaryData, v Value) { r.pendingKey = v.Str },
		Append:         func(r *DictionaryData, v Value) { r.pendingKey = v.Str },
	},
	{
		Name: "EntryHandle", Code: 350, Kind: KindString, MaxVersion: MaxVersion,
		AllowMultiples: true,
		Get:            func(r *DictionaryData) Value { return StringValue("") },
		Set:            func(r *DictionaryData, v Value) { r.appendEntry(v.Str) },
		Append:         func(r *DictionaryData, v Value) { r.appendEntry(v.Str) },
	},
}

func (d *DictionaryData) appendEntry(handleStr string) {
	h, _ := ParseHandle(handleStr)
	d.Entries = append(d.Entries, DictionaryEntry{Key: d.pendingKey, Target: h})
	d.pendingKey = ""
}

func boolShort(b bool) int16 {
	if b {
		return 1
	}
	return 0
}

// GroupData is the specific payload of a GROUP object: a named,
// selectable set of entity handles.
type GroupData struct {
	Description string
	Selectable  bool
	Handles     []Handle
}

var groupSchema = []FieldSchema[GroupData]{
	{
		Name: "Description", Code: 300, Kind: KindString, MaxVersion: MaxVersion,
		Get: func(r *GroupData) Value { return StringValue(r.Description) },
		Set: func(r *GroupData, v Value) { r.Description = v.Str },
	},
	{
		Name: "Selectable", Code: 71, Kind: KindShort, MaxVersion: MaxVersion,
		Get: func(r *GroupData) Value { return ShortValue(boolShort(r.Selectable)) },
		Set: func(r *GroupData, v Value) { r.Selectable = v.AsInt() != 0 },
	},
	{
		Name: "Member", Code: 340, Kind: KindString, MaxVersion: MaxVersion,
		AllowMultiples: true,
		Get:            func(r *GroupData) Value { return StringValue("") },
		Set: func(r *GroupData, v Value) {
			if h, err := ParseHandle(v.Str); err == nil {
				r.Handles = append(r.Handles, h)
			}
		},
		Append: func(r *GroupData, v Value) {
			if h, err := ParseHandle(v.Str); err == nil {
				r.Handles = append(r.Handles, h)
			}
		},
	},
}

// LayoutData is the specific payload of a LAYOUT object.
type LayoutData struct {
	Name          string
	TabOrder      int32
	BlockTableRec Handle
}

var layoutSchema = []FieldSchema[LayoutData]{
	{
		Name: "Name", Code: 1, Kind: KindString, MaxVersion: MaxVersion,
		Get: func(r *LayoutData) Value { return StringValue(r.Name) },
		Set: func(r *LayoutData, v Value) { r.Name = v.Str },
	},
	{
		Name: "TabOrder", Code: 71, Kind: KindShort, MaxVersion: MaxVersion,
		Get: func(r *LayoutData) Value { return ShortValue(int16(r.TabOrder)) },
		Set: func(r *LayoutData, v Value) { r.TabOrder = int32(v.AsInt()) },
	},
	{
		Name: "BlockTableRecord", Code: 330, Kind: KindString, MaxVersion: MaxVersion,
		WriteIf: func(r *LayoutData) bool { return r.BlockTableRec.IsSet() },
		Get:     func(r *LayoutData) Value { return StringValue(r.BlockTableRec.String()) },
		Set: func(r *LayoutData, v Value) {
			if h, err := ParseHandle(v.Str); err == nil {
				r.BlockTableRec = h
			}
		},
	},
}

// ImageDefData is the specific payload of an IMAGEDEF object: a pointer
// to an external raster image file plus its reported pixel size.
type ImageDefData struct {
	FileName     string
	ImageWidth   float64
	ImageHeight  float64
	PixelWidth   int32
	PixelHeight  int32
	IsLoaded     bool
}

var imageDefSchema = []FieldSchema[ImageDefData]{
	{
		Name: "FileName", Code: 1, Kind: KindString, MaxVersion: MaxVersion,
		Get: func(r *ImageDefData) Value { return StringValue(r.FileName) },
		Set: func(r *ImageDefData, v Value) { r.FileName = v.Str },
	},
	{
		Name: "ImageWidth", Code: 10, Kind: KindDouble, MaxVersion: MaxVersion,
		Get: func(r *ImageDefData) Value { return DoubleValue(r.ImageWidth) },
		Set: func(r *ImageDefData, v Value) { r.ImageWidth = v.AsFloat() },
	},
	{
		Name: "ImageHeight", Code: 20, Kind: KindDouble, MaxVersion: MaxVersion,
		Get: func(r *ImageDefData) Value { return DoubleValue(r.ImageHeight) },
		Set: func(r *ImageDefData, v Value) { r.ImageHeight = v.AsFloat() },
	},
	{
		Name: "PixelWidth", Code: 90, Kind: KindInteger, MaxVersion: MaxVersion,
		Get: func(r *ImageDefData) Value { return IntegerValue(r.PixelWidth) },
		Set: func(r *ImageDefData, v Value) { r.PixelWidth = int32(v.AsInt()) },
	},
	{
		Name: "PixelHeight", Code: 91, Kind: KindInteger, MaxVersion: MaxVersion,
		Get: func(r *ImageDefData) Value { return IntegerValue(r.PixelHeight) },
		Set: func(r *ImageDefData, v Value) { r.PixelHeight = int32(v.AsInt()) },
	},
	{
		Name: "IsLoaded", Code: 280, Kind: KindShort, MaxVersion: MaxVersion,
		WriteIf: func(r *ImageDefData) bool { return r.IsLoaded },
		Get:     func(r *ImageDefData) Value { return ShortValue(boolShort(r.IsLoaded)) },
		Set:     func(r *ImageDefData, v Value) { r.IsLoaded = v.AsInt() != 0 },
	},
}

func init() {
	registerObject("DICTIONARY", "AcDbDictionary", dictionarySchema, func() *DictionaryData { return &DictionaryData{} })
	registerObject("GROUP", "AcDbGroup", groupSchema, func() *GroupData { return &GroupData{Selectable: true} })
	registerObject("LAYOUT", "AcDbLayout", layoutSchema, func() *LayoutData { return &LayoutData{} })
	registerObject("IMAGEDEF", "AcDbRasterImageDef", imageDefSchema, func() *ImageDefData { return &ImageDefData{} })
}
