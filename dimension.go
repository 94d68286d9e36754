// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package dxf

import "errors"

// errRecordDropped is a sentinel a record decoder returns to mean "caught
// an unsupported variant, discard silently" rather than a real read
// failure; decodeEntity turns it into an anomaly instead of aborting the
// section (spec §4.3, DIMENSION subclass handling).
var errRecordDropped = errors.New("record dropped")

// RotatedDimensionExtra holds the AcDbRotatedDimension/AcDbAlignedDimension
// subclass fields: the two extension line origins and the rotation angle
// of a linear dimension.
type RotatedDimensionExtra struct {
	ExtLine1 Point
	ExtLine2 Point
	Rotation float64
}

// RadialDimensionExtra holds the AcDbRadialDimension/AcDbDiametricDimension
// subclass fields: the point the leader is drawn to and its length.
type RadialDimensionExtra struct {
	LeaderPoint  Point
	LeaderLength float64
}

// DimensionData is the AcDbDimension base class shared by every dimension
// subtype, plus whichever subclass payload its 100-marker resolved to.
type DimensionData struct {
	EntityCommonExtra
	BlockName         string
	StyleName         string
	DefPoint          Point
	TextMidPoint      Point
	DimensionType     int16
	AttachmentPoint   int16
	ActualMeasurement float64
	Text              string
	TextRotation      float64

	Subclass string
	Rotated  *RotatedDimensionExtra
	Radial   *RadialDimensionExtra
}

var dimensionBaseSchema = []FieldSchema[DimensionData]{
	{Name: "BlockName", Code: 2, Kind: KindString, MaxVersion: MaxVersion,
		Get: func(r *DimensionData) Value { return StringValue(r.BlockName) },
		Set: func(r *DimensionData, v Value) { r.BlockName = v.Str }},
	{Name: "StyleName", Code: 3, Kind: KindString, MaxVersion: MaxVersion,
		Get: func(r *DimensionData) Value { return StringValue(r.StyleName) },
		Set: func(r *DimensionData, v Value) { r.StyleName = v.Str }},
	{Name: "DimensionType", Code: 70, Kind: KindShort, MaxVersion: MaxVersion,
		Get: func(r *DimensionData) Value { return ShortValue(r.DimensionType) },
		Set: func(r *DimensionData, v Value) { r.DimensionType = int16(v.AsInt()) }},
	{Name: "AttachmentPoint", Code: 71, Kind: KindShort, MinVersion: R2000, MaxVersion: MaxVersion,
		Get: func(r *DimensionData) Value { return ShortValue(r.AttachmentPoint) },
		Set: func(r *DimensionData, v Value) { r.AttachmentPoint = int16(v.AsInt()) }},
	{Name: "Text", Code: 1, Kind: KindString, MaxVersion: MaxVersion,
		Get: func(r *DimensionData) Value { return StringValue(r.Text) },
		Set: func(r *DimensionData, v Value) { r.Text = v.Str }},
	{Name: "TextRotation", Code: 53, Kind: KindDouble, MaxVersion: MaxVersion,
		WriteIf: func(r *DimensionData) bool { return r.TextRotation != 0 },
		Get:     func(r *DimensionData) Value { return DoubleValue(r.TextRotation) },
		Set:     func(r *DimensionData, v Value) { r.TextRotation = v.AsFloat() }},
	{Name: "ActualMeasurement", Code: 42, Kind: KindDouble, MaxVersion: MaxVersion,
		Get: func(r *DimensionData) Value { return DoubleValue(r.ActualMeasurement) },
		Set: func(r *DimensionData, v Value) { r.ActualMeasurement = v.AsFloat() }},
}

var dimensionDefPointFields = pointFields(10, func(r *DimensionData) *Point { return &r.DefPoint })
var dimensionTextMidFields = pointFields(11, func(r *DimensionData) *Point { return &r.TextMidPoint })

// decodeDimension is DIMENSION's reader override (spec §4.3). Its base
// class fields are shared by every kind of dimension, but the 100-code
// subclass marker that follows selects which further fields apply; a
// marker this reader doesn't recognize drops the whole entity rather than
// risk silently mis-assigning foreign field codes (spec §4.3, dimension
// polymorphism).
func decodeDimension(pr *pushbackReader, version Version, common *CommonData) (any, *EntityCommonExtra, error) {
	rec := &DimensionData{EntityCommonExtra: DefaultEntityCommonExtra()}
	dropped := false

	for {
		pair, err := pr.Next()
		if err != nil {
			return nil, nil, err
		}
		if pair == nil {
			break
		}
		if pair.Code == 0 {
			pr.PutBack(*pair)
			break
		}
		switch {
		case pair.Code == 100:
			switch pair.Value.Str {
			case "AcDbEntity", "AcDbDimension":
				// Base classes; nothing further to do.
			case "AcDbAlignedDimension", "AcDbRotatedDimension":
				rec.Subclass = pair.Value.Str
				rec.Rotated = &RotatedDimensionExtra{}
			case "AcDbRadialDimension", "AcDbDiametricDimension":
				rec.Subclass = pair.Value.Str
				rec.Radial = &RadialDimensionExtra{}
			default:
				dropped = true
			}
		case pair.Code == 102:
			g, err := readExtensionGroup(pr, *pair)
			if err != nil {
				return nil, nil, err
			}
			common.ExtensionGroups = append(common.ExtensionGroups, g)
		case pair.Code == 1001:
			xd, err := readXData(pr, *pair)
			if err != nil {
				return nil, nil, err
			}
			common.XData = append(common.XData, xd)
		case applyField(commonSchema, version, common, *pair):
		case applyField(commonEntityFields(func(r *DimensionData) *EntityCommonExtra { return &r.EntityCommonExtra }), version, rec, *pair):
		case applyField(dimensionBaseSchema, version, rec, *pair):
		case applyField(dimensionDefPointFields, version, rec, *pair):
		case applyField(dimensionTextMidFields, version, rec, *pair):
		case rec.Rotated != nil && applyField(rotatedDimensionFields, version, rec.Rotated, *pair):
		case rec.Radial != nil && applyField(radialDimensionFields, version, rec.Radial, *pair):
		default:
			// Unknown code within a known record: ignored.
		}
	}

	if dropped {
		return nil, nil, errRecordDropped
	}
	return rec, &rec.EntityCommonExtra, nil
}

var rotatedDimensionFields = append(
	append([]FieldSchema[RotatedDimensionExtra]{}, pointFields(13, func(r *RotatedDimensionExtra) *Point { return &r.ExtLine1 })...),
	append(pointFields(14, func(r *RotatedDimensionExtra) *Point { return &r.ExtLine2 }),
		FieldSchema[RotatedDimensionExtra]{Name: "Rotation", Code: 50, Kind: KindDouble, MaxVersion: MaxVersion,
			Get: func(r *RotatedDimensionExtra) Value { return DoubleValue(r.Rotation) },
			Set: func(r *RotatedDimensionExtra, v Value) { r.Rotation = v.AsFloat() }},
	)...,
)

var radialDimensionFields = append(
	pointFields(15, func(r *RadialDimensionExtra) *Point { return &r.LeaderPoint }),
	FieldSchema[RadialDimensionExtra]{Name: "LeaderLength", Code: 40, Kind: KindDouble, MaxVersion: MaxVersion,
		Get: func(r *RadialDimensionExtra) Value { return DoubleValue(r.LeaderLength) },
		Set: func(r *RadialDimensionExtra, v Value) { r.LeaderLength = v.AsFloat() }},
)

func encodeDimension(w PairWriter, version Version, data any, extra *EntityCommonExtra) error {
	rec := data.(*DimensionData)
	schema := commonEntityFields(func(r *DimensionData) *EntityCommonExtra { return &r.EntityCommonExtra })
	if err := encodeFields(w, version, schema, rec); err != nil {
		return err
	}
	if err := w.Write(CodePair{Code: 100, Value: StringValue("AcDbEntity")}); err != nil {
		return err
	}
	if err := w.Write(CodePair{Code: 100, Value: StringValue("AcDbDimension")}); err != nil {
		return err
	}
	if err := encodeFields(w, version, dimensionBaseSchema, rec); err != nil {
		return err
	}
	if err := encodeFields(w, version, dimensionDefPointFields, rec); err != nil {
		return err
	}
	if err := encodeFields(w, version, dimensionTextMidFields, rec); err != nil {
		return err
	}
	subclass := rec.Subclass
	switch {
	case rec.Rotated != nil:
		if subclass == "" {
			subclass = "AcDbRotatedDimension"
		}
		if err := w.Write(CodePair{Code: 100, Value: StringValue(subclass)}); err != nil {
			return err
		}
		return encodeFields(w, version, rotatedDimensionFields, rec.Rotated)
	case rec.Radial != nil:
		if subclass == "" {
			subclass = "AcDbRadialDimension"
		}
		if err := w.Write(CodePair{Code: 100, Value: StringValue(subclass)}); err != nil {
			return err
		}
		return encodeFields(w, version, radialDimensionFields, rec.Radial)
	}
	return nil
}

func init() {
	entityRegistry["DIMENSION"] = entityKind{decode: decodeDimension, encode: encodeDimension}
}
