// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package dxf

// TableRecord is one entry of a table (Layer, LineType, Style, AppId,
// DimStyle, Ucs, View, ViewPort, BlockRecord): a handle, a case-sensitive
// name, and type-specific fields (spec §3, "Table records").
type TableRecord struct {
	Common CommonData
	Type   string
	Name   string
	Data   any
}

type tableRecordKind struct {
	decode func(pr *pushbackReader, version Version, common *CommonData) (any, string, error)
	encode func(w PairWriter, version Version, data any, name string) error
}

var tableRecordRegistry = map[string]tableRecordKind{}

// registerTableRecord wires one table record type whose Name field lives
// at code 2, the convention every table record shares. subclassMarker is
// the type's AcDb<Type>TableRecord subclass name, written at code 100
// after the shared AcDbSymbolTableRecord marker and before the
// type-specific fields, per the Format's class hierarchy (spec §4.3,
// "Record Codec").
func registerTableRecord[T any](typeName, subclassMarker string, schema []FieldSchema[T], nameOf func(*T) *string, newRec func() *T) {
	nameField := FieldSchema[T]{
		Name: "Name", Code: 2, Kind: KindString, MaxVersion: MaxVersion,
		Get: func(r *T) Value { return StringValue(*nameOf(r)) },
		Set: func(r *T, v Value) { *nameOf(r) = v.Str },
	}
	full := append([]FieldSchema[T]{nameField}, schema...)
	tableRecordRegistry[typeName] = tableRecordKind{
		decode: func(pr *pushbackReader, version Version, common *CommonData) (any, string, error) {
			rec := newRec()
			if err := decodeFields(pr, version, common, full, rec); err != nil {
				return nil, "", err
			}
			return rec, *nameOf(rec), nil
		},
		encode: func(w PairWriter, version Version, data any, name string) error {
			rec := data.(*T)
			*nameOf(rec) = name
			if err := encodeFields(w, version, []FieldSchema[T]{nameField}, rec); err != nil {
				return err
			}
			if err := w.Write(CodePair{Code: 100, Value: StringValue("AcDbSymbolTableRecord")}); err != nil {
				return err
			}
			if subclassMarker != "" {
				if err := w.Write(CodePair{Code: 100, Value: StringValue(subclassMarker)}); err != nil {
					return err
				}
			}
			return encodeFields(w, version, schema, rec)
		},
	}
}

func decodeTableRecord(pr *pushbackReader, version Version, typeName string, anomalies *[]string) (*TableRecord, error) {
	kind, ok := tableRecordRegistry[typeName]
	if !ok {
		if err := skipUnknownRecord(pr); err != nil {
			return nil, err
		}
		*anomalies = append(*anomalies, AnoUnknownRecordType+": "+typeName)
		return nil, nil
	}
	var common CommonData
	data, name, err := kind.decode(pr, version, &common)
	if err != nil {
		return nil, err
	}
	return &TableRecord{Common: common, Type: typeName, Name: name, Data: data}, nil
}

func encodeTableRecord(w PairWriter, version Version, r *TableRecord) error {
	if err := w.Write(CodePair{Code: 0, Value: StringValue(r.Type)}); err != nil {
		return err
	}
	if err := encodeFields(w, version, commonSchema, &r.Common); err != nil {
		return err
	}
	if kind, ok := tableRecordRegistry[r.Type]; ok {
		if err := kind.encode(w, version, r.Data, r.Name); err != nil {
			return err
		}
	}
	return encodeRecordTrailer(w, version, &r.Common)
}

// LayerData is the specific payload of a LAYER table record.
type LayerData struct {
	name      string
	Flags     int32
	Color     int16
	LineType  string
	IsPlottable bool
	LineWeight int16
}

var layerSchema = []FieldSchema[LayerData]{
	{
		Name: "Flags", Code: 70, Kind: KindShort, MaxVersion: MaxVersion,
		WriteIf: func(r *LayerData) bool { return r.Flags != 0 },
		Get:     func(r *LayerData) Value { return ShortValue(int16(r.Flags)) },
		Set:     func(r *LayerData, v Value) { r.Flags = int32(v.AsInt()) },
	},
	{
		Name: "Color", Code: 62, Kind: KindShort, MaxVersion: MaxVersion,
		Get: func(r *LayerData) Value { return ShortValue(r.Color) },
		Set: func(r *LayerData, v Value) { r.Color = int16(v.AsInt()) },
	},
	{
		Name: "LineType", Code: 6, Kind: KindString, MaxVersion: MaxVersion,
		Get: func(r *LayerData) Value { return StringValue(r.LineType) },
		Set: func(r *LayerData, v Value) { r.LineType = v.Str },
	},
	{
		Name: "IsPlottable", Code: 290, Kind: KindBoolean, MinVersion: R2000, MaxVersion: MaxVersion,
		WriteIf: func(r *LayerData) bool { return !r.IsPlottable },
		Get:     func(r *LayerData) Value { return BooleanValue(r.IsPlottable) },
		Set:     func(r *LayerData, v Value) { r.IsPlottable = v.Boolean },
	},
	{
		Name: "LineWeight", Code: 370, Kind: KindShort, MinVersion: R2000, MaxVersion: MaxVersion,
		Get: func(r *LayerData) Value { return ShortValue(r.LineWeight) },
		Set: func(r *LayerData, v Value) { r.LineWeight = int16(v.AsInt()) },
	},
}

// LineTypeData is the specific payload of an LTYPE table record.
type LineTypeData struct {
	name        string
	Description string
	PatternLen  float64
	Dashes      []float64
}

var lineTypeSchema = []FieldSchema[LineTypeData]{
	{
		Name: "Description", Code: 3, Kind: KindString, MaxVersion: MaxVersion,
		Get: func(r *LineTypeData) Value { return StringValue(r.Description) },
		Set: func(r *LineTypeData, v Value) { r.Description = v.Str },
	},
	{
		Name: "PatternLen", Code: 40, Kind: KindDouble, MaxVersion: MaxVersion,
		Get: func(r *LineTypeData) Value { return DoubleValue(r.PatternLen) },
		Set: func(r *LineTypeData, v Value) { r.PatternLen = v.AsFloat() },
	},
	{
		Name: "DashLength", Code: 49, Kind: KindDouble, MaxVersion: MaxVersion,
		AllowMultiples: true,
		Get:            func(r *LineTypeData) Value { return DoubleValue(0) },
		Set:            func(r *LineTypeData, v Value) { r.Dashes = append(r.Dashes, v.AsFloat()) },
		Append:         func(r *LineTypeData, v Value) { r.Dashes = append(r.Dashes, v.AsFloat()) },
	},
}

// StyleData is the specific payload of a STYLE (text style) table record.
type StyleData struct {
	name       string
	Flags      int32
	TextHeight float64
	WidthFactor float64
	FontFile   string
}

var styleSchema = []FieldSchema[StyleData]{
	{
		Name: "Flags", Code: 70, Kind: KindShort, MaxVersion: MaxVersion,
		Get: func(r *StyleData) Value { return ShortValue(int16(r.Flags)) },
		Set: func(r *StyleData, v Value) { r.Flags = int32(v.AsInt()) },
	},
	{
		Name: "TextHeight", Code: 40, Kind: KindDouble, MaxVersion: MaxVersion,
		Get: func(r *StyleData) Value { return DoubleValue(r.TextHeight) },
		Set: func(r *StyleData, v Value) { r.TextHeight = v.AsFloat() },
	},
	{
		Name: "WidthFactor", Code: 41, Kind: KindDouble, MaxVersion: MaxVersion,
		Get: func(r *StyleData) Value { return DoubleValue(valueOr(r.WidthFactor, 1)) },
		Set: func(r *StyleData, v Value) { r.WidthFactor = v.AsFloat() },
	},
	{
		Name: "FontFile", Code: 3, Kind: KindString, MaxVersion: MaxVersion,
		Get: func(r *StyleData) Value { return StringValue(r.FontFile) },
		Set: func(r *StyleData, v Value) { r.FontFile = v.Str },
	},
}

// AppIdData is the specific payload of an APPID table record.
type AppIdData struct {
	name string
}

var appIdSchema = []FieldSchema[AppIdData]{}

// BlockRecordData is the specific payload of a BLOCK_RECORD table record:
// the pointer target INSERT entities and BLOCK definitions reference.
type BlockRecordData struct {
	name string
}

var blockRecordSchema = []FieldSchema[BlockRecordData]{}

// DimStyleData is the specific payload of a DIMSTYLE table record. The
// Format defines on the order of 80 dimension-style variables; this
// models the handful that govern text and arrow scale, leaving the rest
// to silently-ignored unknown codes within the record.
type DimStyleData struct {
	name       string
	TextHeight float64
	ArrowSize  float64
}

var dimStyleSchema = []FieldSchema[DimStyleData]{
	{
		Name: "TextHeight", Code: 140, Kind: KindDouble, MaxVersion: MaxVersion,
		Get: func(r *DimStyleData) Value { return DoubleValue(valueOr(r.TextHeight, 0.18)) },
		Set: func(r *DimStyleData, v Value) { r.TextHeight = v.AsFloat() },
	},
	{
		Name: "ArrowSize", Code: 41, Kind: KindDouble, MaxVersion: MaxVersion,
		Get: func(r *DimStyleData) Value { return DoubleValue(valueOr(r.ArrowSize, 0.18)) },
		Set: func(r *DimStyleData, v Value) { r.ArrowSize = v.AsFloat() },
	},
}

// ViewPortData is the specific payload of a VPORT table record.
type ViewPortData struct {
	name       string
	Center     Point
	Height     float64
}

var viewPortSchema = append(
	pointFields(12, func(r *ViewPortData) *Point { return &r.Center }),
	FieldSchema[ViewPortData]{
		Name: "Height", Code: 40, Kind: KindDouble, MaxVersion: MaxVersion,
		Get: func(r *ViewPortData) Value { return DoubleValue(valueOr(r.Height, 1)) },
		Set: func(r *ViewPortData, v Value) { r.Height = v.AsFloat() },
	},
)

// ViewData is the specific payload of a VIEW table record.
type ViewData struct {
	name   string
	Height float64
	Width  float64
}

var viewSchema = []FieldSchema[ViewData]{
	{
		Name: "Height", Code: 40, Kind: KindDouble, MaxVersion: MaxVersion,
		Get: func(r *ViewData) Value { return DoubleValue(r.Height) },
		Set: func(r *ViewData, v Value) { r.Height = v.AsFloat() },
	},
	{
		Name: "Width", Code: 41, Kind: KindDouble, MaxVersion: MaxVersion,
		Get: func(r *ViewData) Value { return DoubleValue(r.Width) },
		Set: func(r *ViewData, v Value) { r.Width = v.AsFloat() },
	},
}

// UcsData is the specific payload of a UCS table record.
type UcsData struct {
	name   string
	Origin Point
}

var ucsSchema = pointFields(10, func(r *UcsData) *Point { return &r.Origin })

func init() {
	registerTableRecord("LAYER", "AcDbLayerTableRecord", layerSchema, func(r *LayerData) *string { return &r.name }, func() *LayerData {
		return &LayerData{Color: 7, IsPlottable: true, LineWeight: -1, LineType: "Continuous"}
	})
	registerTableRecord("LTYPE", "AcDbLinetypeTableRecord", lineTypeSchema, func(r *LineTypeData) *string { return &r.name }, func() *LineTypeData {
		return &LineTypeData{}
	})
	registerTableRecord("STYLE", "AcDbTextStyleTableRecord", styleSchema, func(r *StyleData) *string { return &r.name }, func() *StyleData {
		return &StyleData{WidthFactor: 1}
	})
	registerTableRecord("APPID", "AcDbRegAppTableRecord", appIdSchema, func(r *AppIdData) *string { return &r.name }, func() *AppIdData {
		return &AppIdData{}
	})
	registerTableRecord("BLOCK_RECORD", "AcDbBlockTableRecord", blockRecordSchema, func(r *BlockRecordData) *string { return &r.name }, func() *BlockRecordData {
		return &BlockRecordData{}
	})
	registerTableRecord("DIMSTYLE", "AcDbDimStyleTableRecord", dimStyleSchema, func(r *DimStyleData) *string { return &r.name }, func() *DimStyleData {
		return &DimStyleData{TextHeight: 0.18, ArrowSize: 0.18}
	})
	registerTableRecord("VPORT", "AcDbViewportTableRecord", viewPortSchema, func(r *ViewPortData) *string { return &r.name }, func() *ViewPortData {
		return &ViewPortData{Height: 1}
	})
	registerTableRecord("VIEW", "AcDbViewTableRecord", viewSchema, func(r *ViewData) *string { return &r.name }, func() *ViewData {
		return &ViewData{}
	})
	registerTableRecord("UCS", "AcDbUCSTableRecord", ucsSchema, func(r *UcsData) *string { return &r.name }, func() *UcsData {
		return &UcsData{}
	})
}
