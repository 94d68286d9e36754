// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package dxf

// decodeLwPolyline is LWPOLYLINE's reader override (spec §4.3). Its
// vertices are not fixed fields but a repeating group: each new code-10
// pair starts a fresh LwPolylineVertex, and the 20/40/41/42 pairs that
// follow populate it, until either the next 10 or the record boundary.
// This shape cannot be expressed by the flat FieldSchema model, so it is
// parsed by hand instead of through decodeFields.
func decodeLwPolyline(pr *pushbackReader, version Version, common *CommonData) (any, *EntityCommonExtra, error) {
	rec := &LwPolylineData{EntityCommonExtra: DefaultEntityCommonExtra()}
	var cur *LwPolylineVertex

	for {
		pair, err := pr.Next()
		if err != nil {
			return nil, nil, err
		}
		if pair == nil {
			return rec, &rec.EntityCommonExtra, nil
		}
		switch {
		case pair.Code == 0:
			pr.PutBack(*pair)
			return rec, &rec.EntityCommonExtra, nil
		case pair.Code == 100:
			continue
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
		case applyField(commonEntityFields(func(r *LwPolylineData) *EntityCommonExtra { return &r.EntityCommonExtra }), version, rec, *pair):
		case pair.Code == 70:
			rec.Flags = int32(pair.Value.AsInt())
		case pair.Code == 38:
			rec.Elevation = pair.Value.AsFloat()
		case pair.Code == 39:
			rec.Thickness = pair.Value.AsFloat()
		case pair.Code == 43:
			rec.ConstantWidth = pair.Value.AsFloat()
		case pair.Code == 90:
			// Advisory vertex count; Vertices is grown as vertices arrive
			// instead of being preallocated from this.
		case pair.Code == 10:
			rec.Vertices = append(rec.Vertices, LwPolylineVertex{X: pair.Value.AsFloat()})
			cur = &rec.Vertices[len(rec.Vertices)-1]
		case pair.Code == 20 && cur != nil:
			cur.Y = pair.Value.AsFloat()
		case pair.Code == 40 && cur != nil:
			cur.StartWidth = pair.Value.AsFloat()
		case pair.Code == 41 && cur != nil:
			cur.EndWidth = pair.Value.AsFloat()
		case pair.Code == 42 && cur != nil:
			cur.Bulge = pair.Value.AsFloat()
		case pair.Code == 91:
			// Per-vertex identifier (R2010+); not surfaced on LwPolylineVertex.
		default:
			// Unknown code within a known record: ignored (spec §4.3 step 3).
		}
	}
}

func encodeLwPolyline(w PairWriter, version Version, data any, extra *EntityCommonExtra) error {
	rec := data.(*LwPolylineData)
	schema := commonEntityFields(func(r *LwPolylineData) *EntityCommonExtra { return &r.EntityCommonExtra })
	if err := encodeFields(w, version, schema, rec); err != nil {
		return err
	}
	if err := w.Write(CodePair{Code: 100, Value: StringValue("AcDbEntity")}); err != nil {
		return err
	}
	if err := w.Write(CodePair{Code: 100, Value: StringValue("AcDbPolyline")}); err != nil {
		return err
	}
	if err := w.Write(CodePair{Code: 90, Value: IntegerValue(int32(len(rec.Vertices)))}); err != nil {
		return err
	}
	if rec.Flags != 0 {
		if err := w.Write(CodePair{Code: 70, Value: ShortValue(int16(rec.Flags))}); err != nil {
			return err
		}
	}
	if rec.ConstantWidth != 0 {
		if err := w.Write(CodePair{Code: 43, Value: DoubleValue(rec.ConstantWidth)}); err != nil {
			return err
		}
	}
	if rec.Elevation != 0 {
		if err := w.Write(CodePair{Code: 38, Value: DoubleValue(rec.Elevation)}); err != nil {
			return err
		}
	}
	if rec.Thickness != 0 {
		if err := w.Write(CodePair{Code: 39, Value: DoubleValue(rec.Thickness)}); err != nil {
			return err
		}
	}
	for _, v := range rec.Vertices {
		if err := w.Write(CodePair{Code: 10, Value: DoubleValue(v.X)}); err != nil {
			return err
		}
		if err := w.Write(CodePair{Code: 20, Value: DoubleValue(v.Y)}); err != nil {
			return err
		}
		if v.StartWidth != 0 || v.EndWidth != 0 {
			if err := w.Write(CodePair{Code: 40, Value: DoubleValue(v.StartWidth)}); err != nil {
				return err
			}
			if err := w.Write(CodePair{Code: 41, Value: DoubleValue(v.EndWidth)}); err != nil {
				return err
			}
		}
		if v.Bulge != 0 {
			if err := w.Write(CodePair{Code: 42, Value: DoubleValue(v.Bulge)}); err != nil {
				return err
			}
		}
	}
	return nil
}
