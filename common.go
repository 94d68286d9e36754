// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package dxf

// CommonData holds the handful of fields every record family shares:
// its handle, its owner's handle, and the two schema-agnostic trailers
// every record may carry (extension groups, XData). decodeFields always
// routes codes 5/330/102/1000+ through this struct before consulting a
// record's own schema (spec §3, §4.7).
type CommonData struct {
	Handle          Handle
	OwnerHandle     Handle
	ExtensionGroups []ExtensionGroup
	XData           []XDataGroup
}

var commonSchema = []FieldSchema[CommonData]{
	{
		Name: "Handle", Code: 5, Kind: KindString,
		MaxVersion: MaxVersion,
		WriteIf:    func(r *CommonData) bool { return r.Handle.IsSet() },
		Get:        func(r *CommonData) Value { return StringValue(r.Handle.String()) },
		Set: func(r *CommonData, v Value) {
			if h, err := ParseHandle(v.Str); err == nil {
				r.Handle = h
			}
		},
	},
	{
		Name: "OwnerHandle", Code: 330, Kind: KindString,
		MinVersion: R13, MaxVersion: MaxVersion,
		WriteIf: func(r *CommonData) bool { return r.OwnerHandle.IsSet() },
		Get:     func(r *CommonData) Value { return StringValue(r.OwnerHandle.String()) },
		Set: func(r *CommonData, v Value) {
			if h, err := ParseHandle(v.Str); err == nil {
				r.OwnerHandle = h
			}
		},
	},
}

// EntityCommonExtra is the nine-field common part every Entity variant
// carries beyond CommonData: layer, line type, color and the other
// drawing-presentation attributes (spec §3, "Entity").
type EntityCommonExtra struct {
	Layer          string
	LineTypeName   string
	Color          int16 // 256 = ByLayer, 0 = ByBlock, 1-255 = explicit index
	LineTypeScale  float64
	Visible        bool
	LineWeight     int16
	Thickness      float64
	IsInPaperSpace bool
	MaterialHandle Handle
}

// DefaultEntityCommonExtra returns the schema-declared defaults every new
// entity variant is constructed with.
func DefaultEntityCommonExtra() EntityCommonExtra {
	return EntityCommonExtra{
		Layer:         "0",
		LineTypeName:  "BYLAYER",
		Color:         256,
		LineTypeScale: 1.0,
		Visible:       true,
		LineWeight:    -1, // ByLayer
	}
}

// commonEntityFields builds the shared entity-common field descriptors
// for any concrete entity record type T, given an accessor into its
// embedded EntityCommonExtra. Every concrete entity schema table is this
// slice followed by the entity's own specific fields (spec §4.3).
func commonEntityFields[T any](get func(*T) *EntityCommonExtra) []FieldSchema[T] {
	return []FieldSchema[T]{
		{
			Name: "Layer", Code: 8, Kind: KindString, MaxVersion: MaxVersion,
			Get: func(r *T) Value { return StringValue(get(r).Layer) },
			Set: func(r *T, v Value) { get(r).Layer = v.Str },
		},
		{
			Name: "LineTypeName", Code: 6, Kind: KindString, MaxVersion: MaxVersion,
			WriteIf: func(r *T) bool { return get(r).LineTypeName != "" && get(r).LineTypeName != "BYLAYER" },
			Get:     func(r *T) Value { return StringValue(get(r).LineTypeName) },
			Set:     func(r *T, v Value) { get(r).LineTypeName = v.Str },
		},
		{
			Name: "Color", Code: 62, Kind: KindShort, MaxVersion: MaxVersion,
			WriteIf: func(r *T) bool { return get(r).Color != 256 },
			Get:     func(r *T) Value { return ShortValue(get(r).Color) },
			Set:     func(r *T, v Value) { get(r).Color = int16(v.AsInt()) },
		},
		{
			Name: "IsInPaperSpace", Code: 67, Kind: KindShort,
			MinVersion: R13, MaxVersion: MaxVersion,
			WriteIf: func(r *T) bool { return get(r).IsInPaperSpace },
			Get:     func(r *T) Value { return ShortValue(boolShort(get(r).IsInPaperSpace)) },
			Set:     func(r *T, v Value) { get(r).IsInPaperSpace = v.AsInt() != 0 },
		},
		{
			Name: "LineTypeScale", Code: 48, Kind: KindDouble, MaxVersion: MaxVersion,
			WriteIf: func(r *T) bool { return get(r).LineTypeScale != 1.0 },
			Get:     func(r *T) Value { return DoubleValue(get(r).LineTypeScale) },
			Set:     func(r *T, v Value) { get(r).LineTypeScale = v.AsFloat() },
		},
		{
			Name: "Visible", Code: 60, Kind: KindShort, MaxVersion: MaxVersion,
			WriteIf: func(r *T) bool { return !get(r).Visible },
			Get:     func(r *T) Value { return ShortValue(boolShort(!get(r).Visible)) },
			Set:     func(r *T, v Value) { get(r).Visible = v.AsInt() == 0 },
		},
		{
			Name: "LineWeight", Code: 370, Kind: KindShort,
			MinVersion: R2000, MaxVersion: MaxVersion,
			WriteIf: func(r *T) bool { return get(r).LineWeight != -1 },
			Get:     func(r *T) Value { return ShortValue(get(r).LineWeight) },
			Set:     func(r *T, v Value) { get(r).LineWeight = int16(v.AsInt()) },
		},
		{
			Name: "Thickness", Code: 39, Kind: KindDouble, MaxVersion: MaxVersion,
			WriteIf: func(r *T) bool { return get(r).Thickness != 0 },
			Get:     func(r *T) Value { return DoubleValue(get(r).Thickness) },
			Set:     func(r *T, v Value) { get(r).Thickness = v.AsFloat() },
		},
		{
			Name: "MaterialHandle", Code: 347, Kind: KindString,
			MinVersion: R2007, MaxVersion: MaxVersion,
			WriteIf: func(r *T) bool { return get(r).MaterialHandle.IsSet() },
			Get:     func(r *T) Value { return StringValue(get(r).MaterialHandle.String()) },
			Set: func(r *T, v Value) {
				if h, err := ParseHandle(v.Str); err == nil {
					get(r).MaterialHandle = h
				}
			},
		},
	}
}

// ObjectCommonExtra is the common part of non-graphical Object records:
// much smaller than an entity's, since objects have no layer or color.
type ObjectCommonExtra struct {
	// reserved for future shared object fields; kept as a distinct type
	// (rather than reusing CommonData directly) so object schema tables
	// follow the same commonXxxFields(accessor) shape entity ones do.
}

func commonObjectFields[T any](get func(*T) *ObjectCommonExtra) []FieldSchema[T] {
	_ = get
	return nil
}
