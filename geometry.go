// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package dxf

// Point is a 3D coordinate. Most entities place one on a code triple
// (10/20/30, 11/21/31, ...); Z defaults to 0 when the record omits it.
type Point struct {
	X, Y, Z float64
}

// pointFields builds the three FieldSchema rows for a Point reached
// through accessor get, rooted at the given X code (Y = code+10, Z =
// code+20, per the Format's longstanding convention).
func pointFields[T any](xCode int, get func(*T) *Point) []FieldSchema[T] {
	return []FieldSchema[T]{
		{
			Name: "X", Code: xCode, Kind: KindDouble, MaxVersion: MaxVersion,
			Get: func(r *T) Value { return DoubleValue(get(r).X) },
			Set: func(r *T, v Value) { get(r).X = v.AsFloat() },
		},
		{
			Name: "Y", Code: xCode + 10, Kind: KindDouble, MaxVersion: MaxVersion,
			Get: func(r *T) Value { return DoubleValue(get(r).Y) },
			Set: func(r *T, v Value) { get(r).Y = v.AsFloat() },
		},
		{
			Name: "Z", Code: xCode + 20, Kind: KindDouble, MaxVersion: MaxVersion,
			WriteIf: func(r *T) bool { return get(r).Z != 0 },
			Get:     func(r *T) Value { return DoubleValue(get(r).Z) },
			Set:     func(r *T, v Value) { get(r).Z = v.AsFloat() },
		},
	}
}
